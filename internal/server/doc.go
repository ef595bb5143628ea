// Package server provides the HTTP routing, middleware, and callback
// handling behind the loopback OAuth flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. [Logging] tags each request with a
// generated id.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method filtering.
//
// # OAuth Callback Handler
//
// [CallbackHandler] receives the provider redirect and hands the query
// parameters to a [Completer] (the auth package's Authenticator), which
// validates the state parameter before any network call and exchanges the
// authorization code for tokens. The outcome is delivered through a channel
// that receives exactly one result.
//
// Only one callback is processed per handler to prevent replay attacks.
//
// # Usage
//
// When the user runs `chorus auth login`, a temporary HTTP server starts on
// the configured host/port, handles the callback, and shuts down after the
// result arrives.
package server
