// Package auth implements the Spotify OAuth2 authorization-code lifecycle.
//
// # Token Store
//
// [TokenStore] persists the access token, refresh token, and expiry under
// fixed key names in the auth_state table, alongside the transient CSRF
// state value. All three token fields are written together; logout or a
// failed refresh removes all of them.
//
// # Authorization Flow
//
// [Authenticator.AuthorizationURL] generates and persists a random state
// value and returns the provider redirect. [Authenticator.Complete] handles
// the callback: provider errors map to [shared.ErrAuthorizationDenied], a
// state mismatch fails with [shared.ErrStateMismatch] before any network
// call, and a successful code exchange persists the new token set.
//
// # Token Accessor
//
// [Authenticator.AccessToken] returns the stored token while it remains
// valid and otherwise refreshes. Refreshes are coalesced with
// [singleflight.Group] so concurrent expired requests trigger exactly one
// token-endpoint call, and all token-endpoint traffic carries a bounded
// timeout.
package auth
