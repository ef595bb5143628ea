package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mwhitby/chorus/internal/auth"
	"github.com/mwhitby/chorus/internal/shared"
	"golang.org/x/time/rate"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// defaultRate keeps the client comfortably inside Spotify's rolling rate
// window (~180 requests per 30 seconds).
var defaultRate = rate.Limit(5)

// Authorizer supplies access tokens for outbound requests and performs
// refreshes when a request comes back unauthorized.
type Authorizer interface {
	// AccessToken returns a usable token, or "" when no session exists.
	AccessToken(ctx context.Context) (string, error)
	// Refresh forces a token refresh and returns the new record.
	Refresh(ctx context.Context) (*auth.TokenRecord, error)
	// Logout discards every stored credential.
	Logout() error
}

// APIError represents a non-2xx response from the Spotify API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error: status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return shared.ErrAPIRequest
}

// Client is an authenticated Spotify Web API client.
//
// Every request obtains a token from the [Authorizer] before sending and is
// aborted with [shared.ErrNotAuthenticated] when none is available. A 401
// response triggers exactly one refresh followed by one replay of the
// original request; a second 401 propagates as an [APIError].
type Client struct {
	baseURL    string
	auth       Authorizer
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a Spotify API client. An empty baseURL selects the
// production API; a nil httpClient falls back to [http.DefaultClient].
func NewClient(baseURL string, auth Authorizer, httpClient *http.Client, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		auth:       auth,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(defaultRate, 10),
		logger:     logger,
	}
}

// do performs an authenticated request against the API. The attempt counter
// makes the single-retry rule explicit: only attempt zero may refresh and
// replay after a 401.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, result any, attempt int) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := c.auth.AccessToken(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return shared.ErrNotAuthenticated
	}

	var reqBody io.Reader
	if body != nil {
		// Marshalled fresh per attempt so replays carry the identical payload.
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Debug("401 response, refreshing token", "endpoint", endpoint)

		if _, err := c.auth.Refresh(ctx); err != nil {
			// A dead refresh token means the session cannot recover.
			c.auth.Logout()
			return err
		}

		return c.do(ctx, method, endpoint, body, result, attempt+1)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// get issues an authenticated GET for the endpoint and decodes into result.
func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, result, 0)
}

// clampLimit normalizes a page size into Spotify's accepted 1..50 range.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 50 {
		return 50
	}
	return limit
}
