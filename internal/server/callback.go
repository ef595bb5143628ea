package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/mwhitby/chorus/internal/auth"
	"github.com/mwhitby/chorus/internal/shared"
)

// Completer finishes an authorization flow from callback query parameters.
// Implemented by [auth.Authenticator].
type Completer interface {
	Complete(ctx context.Context, query url.Values) (*auth.TokenRecord, error)
}

// CallbackResult contains the result of an OAuth authorization flow.
type CallbackResult struct {
	Record *auth.TokenRecord
	err    error
}

func (c *CallbackResult) Error() error {
	return c.err
}

// CallbackHandler handles the OAuth2 authorization-code callback.
// Implements the Handler interface for registration with a Router.
//
// Validation and the code exchange are delegated to the [Completer], which
// checks the state parameter before any network call and consumes it on use.
// The handler processes at most one callback to prevent replays.
type CallbackHandler struct {
	flow        Completer
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a callback handler that delegates completion to flow.
func NewCallbackHandler(flow Completer) *CallbackHandler {
	return &CallbackHandler{
		flow:       flow,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the OAuth callback request and sends the outcome through
// the result channel.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only handle callback once
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	rec, err := h.flow.Complete(r.Context(), r.URL.Query())
	if err != nil {
		h.Send(CallbackResult{err: err})
		http.Error(w, userMessage(err), statusFor(err))
		return
	}

	h.Send(CallbackResult{Record: rec})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// Send sends the callback result through the channel (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

// statusFor maps completion errors to HTTP status codes: callback-parameter
// failures are client errors, a failed exchange is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrAuthorizationDenied),
		errors.Is(err, shared.ErrStateMismatch),
		errors.Is(err, shared.ErrMissingCode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrAuthorizationDenied):
		return "Authorization denied"
	case errors.Is(err, shared.ErrStateMismatch):
		return "Invalid state parameter"
	case errors.Is(err, shared.ErrMissingCode):
		return "No authorization code received"
	default:
		return "Token exchange failed"
	}
}

const successPage = `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`
