package session

import (
	"context"
	"errors"
	"testing"

	"github.com/mwhitby/chorus/internal/spotify"
)

type fakeAuthorizer struct {
	hasCredentials bool
	loggedOut      bool
	logoutErr      error
}

func (f *fakeAuthorizer) HasCredentials() bool {
	return f.hasCredentials
}

func (f *fakeAuthorizer) Logout() error {
	f.loggedOut = true
	return f.logoutErr
}

type fakeProfileAPI struct {
	user  *spotify.User
	err   error
	calls int
}

func (f *fakeProfileAPI) CurrentUser(ctx context.Context) (*spotify.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestInitialize(t *testing.T) {
	t.Run("Starts Unknown", func(t *testing.T) {
		s := New(&fakeAuthorizer{}, &fakeProfileAPI{}, nil)

		if s.State() != StateUnknown {
			t.Errorf("expected unknown state, got %s", s.State())
		}
		if s.Authenticated() {
			t.Error("expected not authenticated before initialization")
		}
	})

	t.Run("No Credentials Skips Network", func(t *testing.T) {
		api := &fakeProfileAPI{}
		s := New(&fakeAuthorizer{hasCredentials: false}, api, nil)

		if err := s.Initialize(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if s.State() != StateUnauthenticated {
			t.Errorf("expected unauthenticated state, got %s", s.State())
		}
		if api.calls != 0 {
			t.Errorf("expected no profile fetch, got %d", api.calls)
		}
	})

	t.Run("Valid Credentials Fetch Profile Once", func(t *testing.T) {
		api := &fakeProfileAPI{user: &spotify.User{ID: "user_1", DisplayName: "Someone"}}
		s := New(&fakeAuthorizer{hasCredentials: true}, api, nil)

		if err := s.Initialize(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !s.Authenticated() {
			t.Error("expected authenticated state")
		}
		if api.calls != 1 {
			t.Errorf("expected exactly one profile fetch, got %d", api.calls)
		}

		user := s.User()
		if user == nil || user.ID != "user_1" {
			t.Errorf("expected profile to be stored, got %+v", user)
		}
	})

	t.Run("Profile Failure Logs Out", func(t *testing.T) {
		fetchErr := errors.New("profile unavailable")
		auth := &fakeAuthorizer{hasCredentials: true}
		api := &fakeProfileAPI{err: fetchErr}
		s := New(auth, api, nil)

		err := s.Initialize(context.Background())
		if !errors.Is(err, fetchErr) {
			t.Errorf("expected fetch error to propagate, got %v", err)
		}

		if s.State() != StateUnauthenticated {
			t.Errorf("expected unauthenticated state, got %s", s.State())
		}
		if !auth.loggedOut {
			t.Error("expected stored tokens to be cleared")
		}
		if api.calls != 1 {
			t.Errorf("expected exactly one profile fetch, got %d", api.calls)
		}
	})
}

func TestLogout(t *testing.T) {
	auth := &fakeAuthorizer{hasCredentials: true}
	api := &fakeProfileAPI{user: &spotify.User{ID: "user_1"}}
	s := New(auth, api, nil)

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !s.Authenticated() {
		t.Fatal("expected authenticated state")
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if s.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated state, got %s", s.State())
	}
	if s.User() != nil {
		t.Errorf("expected profile to be dropped, got %+v", s.User())
	}
	if !auth.loggedOut {
		t.Error("expected stored tokens to be cleared")
	}
}

func TestStateString(t *testing.T) {
	cases := []struct {
		state State
		want  string
	}{
		{StateUnknown, "unknown"},
		{StateAuthenticated, "authenticated"},
		{StateUnauthenticated, "unauthenticated"},
	}

	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}
