package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mwhitby/chorus/internal/shared"
)

// Logging returns [Middleware] that logs each request with a generated
// request id, method, path, and duration.
func Logging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := shared.GenerateID()

			next.ServeHTTP(w, r)

			logger.Debug("request handled",
				"id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}
