package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mwhitby/chorus/internal/server"
	"github.com/mwhitby/chorus/internal/shared"
	"github.com/urfave/cli/v3"
)

// authTimeout bounds how long the loopback flow waits for the provider redirect.
const authTimeout = 2 * time.Minute

// AuthLogin performs the OAuth2 authorization-code flow.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// waits for the callback to exchange the code for tokens.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	authURL, err := r.auth.AuthorizationURL()
	if err != nil {
		return fmt.Errorf("failed to build authorization URL: %w", err)
	}

	handler := server.NewCallbackHandler(r.auth)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(handler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return fmt.Errorf("authorization failed: %w", result.Error())
	}

	if err := r.session.Initialize(ctx); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	if user := r.session.User(); user != nil {
		r.writePlain("Signed in as %s (%s)\n", user.DisplayName, user.ID)
	}

	return nil
}

// AuthStatus resolves the session and reports whether a user is signed in.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	if err := r.session.Initialize(ctx); err != nil {
		r.logger.Warnf("session initialization failed %v", err)
	}

	if !r.session.Authenticated() {
		r.writePlain("✗ Not authenticated\n")
		r.writePlain("Run 'chorus auth login' to sign in.\n")
		return nil
	}

	user := r.session.User()
	r.writePlain("✓ Authenticated\n")
	r.writePlain("User: %s (%s)\n", user.DisplayName, user.ID)
	if user.Email != "" {
		r.writePlain("Email: %s\n", user.Email)
	}
	if user.Product != "" {
		r.writePlain("Plan: %s\n", user.Product)
	}

	return nil
}

// AuthRefresh forces a token refresh using the stored refresh token.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	rec, err := r.auth.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	r.writePlain("✓ Token refreshed\n")
	r.writePlain("Expires at: %s\n", rec.ExpiresAt.Format(time.RFC3339))

	return nil
}

// AuthLogout clears all stored tokens and the session profile.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	if err := r.session.Logout(); err != nil {
		return err
	}

	r.writePlain("✓ Logged out\n")

	return nil
}
