package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mwhitby/chorus/internal/auth"
	"github.com/mwhitby/chorus/internal/shared"
	tu "github.com/mwhitby/chorus/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestRunner builds a Runner over an in-memory database with a stored valid
// token, routing all HTTP traffic through the given round tripper.
func newTestRunner(t *testing.T, rt http.RoundTripper) (*Runner, *strings.Builder) {
	t.Helper()

	db := tu.NewAuthDB(t)
	store := auth.NewTokenStore(db)
	if err := store.Save(auth.TokenRecord{
		AccessToken:  "token_1",
		RefreshToken: "refresh_1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("failed to seed tokens: %v", err)
	}

	config := shared.DefaultConfig()
	config.Credentials.Spotify.ClientID = "test_client"
	config.Credentials.Spotify.ClientSecret = "test_secret"

	var out strings.Builder
	r := NewRunner(RunnerOpts{
		Config:     config,
		DB:         db,
		HTTPClient: &http.Client{Transport: rt},
		Logger:     shared.NewLogger(io.Discard),
		Output:     &out,
	})

	return r, &out
}

func runCommand(t *testing.T, r *Runner, args ...string) error {
	t.Helper()

	root := &cli.Command{
		Name:     "chorus",
		Commands: r.register(),
	}

	return root.Run(context.Background(), append([]string{"chorus"}, args...))
}

func TestNewRunner(t *testing.T) {
	r := NewRunner(RunnerOpts{})

	if r.config == nil {
		t.Error("expected default config")
	}
	if r.logger == nil {
		t.Error("expected default logger")
	}
	if r.output == nil {
		t.Error("expected default output writer")
	}
	if r.httpClient == nil {
		t.Error("expected default http client")
	}
}

func TestWriteJSON(t *testing.T) {
	t.Run("Compact", func(t *testing.T) {
		var out strings.Builder
		r := NewRunner(RunnerOpts{Output: &out})

		if err := r.writeJSON(map[string]string{"key": "value"}, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.String() != `{"key":"value"}`+"\n" {
			t.Errorf("unexpected output: %q", out.String())
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		var out strings.Builder
		r := NewRunner(RunnerOpts{Output: &out})

		if err := r.writeJSON(map[string]string{"key": "value"}, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out.String(), "  \"key\": \"value\"") {
			t.Errorf("expected indented output, got %q", out.String())
		}
	})

	t.Run("Write Failure", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

		if err := r.writeJSON(map[string]string{"key": "value"}, false); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}

func TestWritePlain(t *testing.T) {
	var out strings.Builder
	r := NewRunner(RunnerOpts{Output: &out})

	if err := r.writePlain("hello %s\n", "there"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.String() != "hello there\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRegister(t *testing.T) {
	r := NewRunner(RunnerOpts{})
	commands := r.register()

	want := []string{"auth", "browse", "library", "playlist", "search", "artist", "album", "track", "top", "player", "setup"}
	if len(commands) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(commands))
	}

	names := make(map[string]bool)
	for _, c := range commands {
		names[c.Name] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("expected command %q to be registered", name)
		}
	}
}

func TestLibraryTracksCommand(t *testing.T) {
	rt := tu.NewSequenceRoundTripper(
		tu.JSONResponse(http.StatusOK, `{"items": [{"track": {"id": "t1", "name": "Song", "artists": [{"name": "Band"}]}, "added_at": "2025-06-01"}], "total": 1}`),
	)
	r, out := newTestRunner(t, rt)

	if err := runCommand(t, r, "library", "tracks"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	req := rt.Requests[0]
	if req.URL.Path != "/v1/me/tracks" {
		t.Errorf("expected saved tracks request, got %s", req.URL.Path)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer token_1" {
		t.Errorf("expected stored token on request, got %s", got)
	}

	if !strings.Contains(out.String(), "Song") {
		t.Errorf("expected track listing, got %q", out.String())
	}
}

func TestLibraryTracksCommandJSON(t *testing.T) {
	rt := tu.NewSequenceRoundTripper(
		tu.JSONResponse(http.StatusOK, `{"items": [], "total": 0}`),
	)
	r, out := newTestRunner(t, rt)

	if err := runCommand(t, r, "library", "tracks", "--json"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(out.String(), `"total":0`) {
		t.Errorf("expected JSON output, got %q", out.String())
	}
}

func TestLibrarySaveCommand(t *testing.T) {
	t.Run("Missing ID", func(t *testing.T) {
		r, _ := newTestRunner(t, tu.NewSequenceRoundTripper())

		if err := runCommand(t, r, "library", "save"); err == nil {
			t.Error("expected error when --id is missing")
		}
	})

	t.Run("Saves Track", func(t *testing.T) {
		rt := tu.NewSequenceRoundTripper(tu.JSONResponse(http.StatusOK, ""))
		r, out := newTestRunner(t, rt)

		if err := runCommand(t, r, "library", "save", "--id", "t1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if rt.Requests[0].Method != http.MethodPut {
			t.Errorf("expected PUT request, got %s", rt.Requests[0].Method)
		}
		if !strings.Contains(out.String(), "t1") {
			t.Errorf("expected confirmation output, got %q", out.String())
		}
	})
}

func TestAuthStatusCommand(t *testing.T) {
	t.Run("Authenticated", func(t *testing.T) {
		rt := tu.NewSequenceRoundTripper(
			tu.JSONResponse(http.StatusOK, `{"id": "user_1", "display_name": "Someone"}`),
		)
		r, out := newTestRunner(t, rt)

		if err := runCommand(t, r, "auth", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(out.String(), "Someone") {
			t.Errorf("expected signed-in user in output, got %q", out.String())
		}
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		db := tu.NewAuthDB(t)
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientID = ""
		config.Credentials.Spotify.ClientSecret = ""

		r := NewRunner(RunnerOpts{
			Config: config,
			DB:     db,
			Logger: shared.NewLogger(io.Discard),
			Output: &strings.Builder{},
		})

		err := runCommand(t, r, "auth", "status")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}
