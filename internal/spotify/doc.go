// Package spotify implements the authenticated Spotify Web API client.
//
// # Request Pipeline
//
// Every call runs through an internal request function with two cross-cutting
// stages. Outbound: a token is obtained from the [Authorizer] and attached as
// a Bearer header; without one the request is aborted with
// [shared.ErrNotAuthenticated] before touching the network. Inbound: a 401
// response triggers exactly one refresh and one replay of the original
// request, tracked by an explicit attempt counter. A failing refresh clears
// the stored session; a second 401 surfaces as an [APIError].
//
// Outbound calls are additionally paced with [rate.Limiter] to stay inside
// the API's rolling rate window.
//
// # Endpoints
//
// The typed operations map one-to-one onto the consumed Web API surface:
// profile, browse (featured playlists, new releases, categories), library
// (saved tracks and albums), playlists (list, detail, create, add tracks),
// search, artists (detail, albums, top tracks, follow), albums, tracks, top
// items, and playback (current state, recently played). Each is a thin
// parameter-to-query-string mapping with no independent logic.
package spotify
