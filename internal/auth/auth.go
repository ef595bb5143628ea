package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mwhitby/chorus/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// tokenTimeout bounds every call to the token endpoint so a dead provider
// cannot suspend the caller indefinitely.
const tokenTimeout = 15 * time.Second

// scopes enumerates every permission the application requests, one string
// per capability, space-joined into the authorize URL.
var scopes = []string{
	"user-read-private",
	"user-read-email",
	"user-library-read",
	"user-library-modify",
	"user-top-read",
	"playlist-read-private",
	"playlist-modify-public",
	"playlist-modify-private",
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"user-read-recently-played",
	"streaming",
}

// Authenticator owns the Spotify OAuth2 authorization-code lifecycle: it
// builds the authorize redirect, completes the callback exchange, refreshes
// expired tokens, and hands out usable access tokens.
//
// Uses [oauth2.Config] for the code and refresh-token grants, which sends
// HTTP Basic client credentials and a form-encoded body to the token endpoint.
type Authenticator struct {
	config *oauth2.Config
	store  *TokenStore
	logger *log.Logger

	// httpClient is used for token-endpoint calls only, injected via the
	// oauth2.HTTPClient context value so exchanges carry a bounded timeout.
	httpClient *http.Client

	// flight coalesces concurrent refresh attempts into one in-flight call,
	// shared by every pending retry.
	flight singleflight.Group
}

// New creates an [Authenticator] from the given OAuth2 credentials.
// Requires "client_id" and "client_secret"; "redirect_uri" falls back to the
// local callback listener.
func New(credentials map[string]string, store *TokenStore, logger *log.Logger) (*Authenticator, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &Authenticator{
		config:     config,
		store:      store,
		logger:     logger,
		httpClient: &http.Client{Timeout: tokenTimeout},
	}, nil
}

// AuthorizationURL generates a fresh random state value, persists it, and
// returns the fully-formed authorize redirect URL carrying the client id,
// response type "code", redirect URI, state, and the scope list.
func (a *Authenticator) AuthorizationURL() (string, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return "", err
	}

	if err := a.store.SaveState(state); err != nil {
		return "", fmt.Errorf("failed to persist state: %w", err)
	}

	return a.config.AuthCodeURL(state), nil
}

// Complete finishes the authorization flow from the callback's query
// parameters: it rejects provider errors, verifies the state value against
// the stored one before any network call, exchanges the code for tokens, and
// persists the resulting record. The stored state is consumed either way.
func (a *Authenticator) Complete(ctx context.Context, query url.Values) (*TokenRecord, error) {
	if errParam := query.Get("error"); errParam != "" {
		a.store.ConsumeState()
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthorizationDenied, errParam)
	}

	stored, err := a.store.ConsumeState()
	if err != nil {
		return nil, err
	}

	state := query.Get("state")
	if state == "" || state != stored {
		return nil, shared.ErrStateMismatch
	}

	code := query.Get("code")
	if code == "" {
		return nil, shared.ErrMissingCode
	}

	token, err := a.config.Exchange(a.tokenContext(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rec := recordFromToken(token, "")
	if err := a.store.Save(rec); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}

	a.logger.Debug("authorization complete", "expires_at", rec.ExpiresAt)

	return &rec, nil
}

// Refresh exchanges the stored refresh token for a new token set and persists
// it. When the response omits a refresh token the stored one is kept.
// Concurrent callers share a single in-flight refresh.
func (a *Authenticator) Refresh(ctx context.Context) (*TokenRecord, error) {
	v, err, _ := a.flight.Do("refresh", func() (any, error) {
		return a.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.(*TokenRecord), nil
}

func (a *Authenticator) refresh(ctx context.Context) (*TokenRecord, error) {
	refreshToken, err := a.store.RefreshToken()
	if err != nil {
		return nil, err
	}
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	source := a.config.TokenSource(a.tokenContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	rec := recordFromToken(token, refreshToken)
	if err := a.store.Save(rec); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}

	a.logger.Debug("token refreshed", "expires_at", rec.ExpiresAt)

	return &rec, nil
}

// AccessToken returns a usable access token: the stored one when still valid,
// otherwise the result of a refresh. When the refresh fails every stored
// token is cleared and "" is returned, which callers treat as "not
// authenticated" rather than an error.
func (a *Authenticator) AccessToken(ctx context.Context) (string, error) {
	if a.store.Valid() {
		rec, err := a.store.Load()
		if err != nil {
			return "", err
		}
		if rec != nil {
			return rec.AccessToken, nil
		}
	}

	rec, err := a.Refresh(ctx)
	if err != nil {
		a.logger.Warn("refresh failed, clearing stored tokens", "error", err)
		if clearErr := a.store.Clear(); clearErr != nil {
			return "", clearErr
		}
		return "", nil
	}

	return rec.AccessToken, nil
}

// HasCredentials reports whether a session could plausibly be resumed: either
// a still-valid access token or a refresh token is stored.
func (a *Authenticator) HasCredentials() bool {
	if a.store.Valid() {
		return true
	}
	refreshToken, err := a.store.RefreshToken()
	return err == nil && refreshToken != ""
}

// Logout removes every stored token and any transient state.
func (a *Authenticator) Logout() error {
	return a.store.Clear()
}

// Store exposes the underlying [TokenStore].
func (a *Authenticator) Store() *TokenStore {
	return a.store
}

// tokenContext injects the bounded-timeout HTTP client into the context used
// for token-endpoint calls.
func (a *Authenticator) tokenContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
}

// recordFromToken builds a [TokenRecord] from an oauth2 token response.
// The expiry is fixed here, at receipt time, and never recomputed.
func recordFromToken(token *oauth2.Token, fallbackRefresh string) TokenRecord {
	refresh := token.RefreshToken
	if refresh == "" {
		refresh = fallbackRefresh
	}

	return TokenRecord{
		AccessToken:  token.AccessToken,
		RefreshToken: refresh,
		ExpiresAt:    token.Expiry,
	}
}
