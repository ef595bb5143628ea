package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mwhitby/chorus/internal/auth"
	"github.com/mwhitby/chorus/internal/shared"
)

type fakeCompleter struct {
	record *auth.TokenRecord
	err    error
	query  url.Values
	calls  int
}

func (f *fakeCompleter) Complete(ctx context.Context, query url.Values) (*auth.TokenRecord, error) {
	f.calls++
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func TestCallbackHandler(t *testing.T) {
	t.Run("Routes", func(t *testing.T) {
		h := NewCallbackHandler(&fakeCompleter{})

		routes := h.Routes()
		if len(routes) != 1 || routes[0] != "/callback" {
			t.Errorf("expected single /callback route, got %v", routes)
		}
	})

	t.Run("Successful Callback", func(t *testing.T) {
		flow := &fakeCompleter{record: &auth.TokenRecord{AccessToken: "access_1"}}
		h := NewCallbackHandler(flow)

		req := httptest.NewRequest(http.MethodGet, "/callback?code=code_1&state=state_1", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Authorization Successful") {
			t.Error("expected success page in response")
		}

		if flow.query.Get("code") != "code_1" || flow.query.Get("state") != "state_1" {
			t.Errorf("expected query parameters to be forwarded, got %v", flow.query)
		}

		result := <-h.Result()
		if result.Error() != nil {
			t.Errorf("expected no error, got %v", result.Error())
		}
		if result.Record == nil || result.Record.AccessToken != "access_1" {
			t.Errorf("expected token record, got %+v", result.Record)
		}
	})

	t.Run("Second Callback Rejected", func(t *testing.T) {
		flow := &fakeCompleter{record: &auth.TokenRecord{AccessToken: "access_1"}}
		h := NewCallbackHandler(flow)

		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?code=c&state=s", nil))

		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?code=c&state=s", nil))

		if second.Code != http.StatusBadRequest {
			t.Errorf("expected status 400 on replay, got %d", second.Code)
		}
		if flow.calls != 1 {
			t.Errorf("expected flow to run once, got %d", flow.calls)
		}
	})

	t.Run("Error Statuses", func(t *testing.T) {
		cases := []struct {
			name       string
			err        error
			wantStatus int
			wantBody   string
		}{
			{"Authorization Denied", shared.ErrAuthorizationDenied, http.StatusBadRequest, "Authorization denied"},
			{"State Mismatch", shared.ErrStateMismatch, http.StatusBadRequest, "Invalid state parameter"},
			{"Missing Code", shared.ErrMissingCode, http.StatusBadRequest, "No authorization code received"},
			{"Exchange Failure", shared.ErrRefreshFailed, http.StatusInternalServerError, "Token exchange failed"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				h := NewCallbackHandler(&fakeCompleter{err: tc.err})

				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback", nil))

				if w.Code != tc.wantStatus {
					t.Errorf("expected status %d, got %d", tc.wantStatus, w.Code)
				}
				if !strings.Contains(w.Body.String(), tc.wantBody) {
					t.Errorf("expected %q in body, got %s", tc.wantBody, w.Body.String())
				}

				result := <-h.Result()
				if result.Error() == nil {
					t.Error("expected error in result")
				}
			})
		}
	})

	t.Run("Send Is One Shot", func(t *testing.T) {
		h := NewCallbackHandler(&fakeCompleter{})

		h.Send(CallbackResult{Record: &auth.TokenRecord{AccessToken: "first"}})
		h.Send(CallbackResult{Record: &auth.TokenRecord{AccessToken: "second"}})

		result := <-h.Result()
		if result.Record.AccessToken != "first" {
			t.Errorf("expected first result to win, got %s", result.Record.AccessToken)
		}

		if _, ok := <-h.Result(); ok {
			t.Error("expected channel to be closed after the single result")
		}
	})
}
