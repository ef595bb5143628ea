// Package session tracks process-wide authentication state: whether a user is
// signed in and who they are.
//
// A [Session] is an explicitly constructed object handed to whichever layer
// needs it, not ambient package state. Its lifecycle is
// Unknown → {Authenticated, Unauthenticated}; once resolved it never returns
// to Unknown, and Authenticated degrades to Unauthenticated only on explicit
// logout or an authenticated request failing its single retry.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mwhitby/chorus/internal/shared"
	"github.com/mwhitby/chorus/internal/spotify"
)

// State is the session's authentication state.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Authorizer is the credential surface the session needs from the auth layer.
type Authorizer interface {
	// HasCredentials reports whether a valid token or a refresh token exists.
	HasCredentials() bool
	// Logout discards every stored credential.
	Logout() error
}

// ProfileAPI fetches the current user's profile.
type ProfileAPI interface {
	CurrentUser(ctx context.Context) (*spotify.User, error)
}

// Session owns the authenticated user's profile. It is the sole writer of it.
type Session struct {
	auth   Authorizer
	api    ProfileAPI
	logger *log.Logger

	mu    sync.RWMutex
	state State
	user  *spotify.User
}

// New creates a [Session] in the Unknown state.
func New(auth Authorizer, api ProfileAPI, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Session{
		auth:   auth,
		api:    api,
		logger: logger,
		state:  StateUnknown,
	}
}

// Initialize resolves the session state. Without any stored credentials it
// marks the session unauthenticated immediately, with no network call.
// Otherwise it fetches the current user's profile exactly once: success marks
// the session authenticated, any failure logs the user out. The client's own
// single 401-retry already covers transient token expiry, so no retry loop
// exists here.
func (s *Session) Initialize(ctx context.Context) error {
	if !s.auth.HasCredentials() {
		s.setState(StateUnauthenticated, nil)
		return nil
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("profile fetch failed, ending session", "error", err)
		if logoutErr := s.Logout(); logoutErr != nil {
			return logoutErr
		}
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	s.setState(StateAuthenticated, user)
	s.logger.Debug("session initialized", "user", user.ID)

	return nil
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// User returns the signed-in user's profile, or nil.
func (s *Session) User() *spotify.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Logout clears every stored token and the local profile, leaving the
// session unauthenticated.
func (s *Session) Logout() error {
	s.setState(StateUnauthenticated, nil)

	if err := s.auth.Logout(); err != nil {
		return fmt.Errorf("failed to clear stored tokens: %w", err)
	}

	return nil
}

func (s *Session) setState(state State, user *spotify.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}
