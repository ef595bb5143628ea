package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mwhitby/chorus/internal/shared"
)

// CurrentUser retrieves the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FeaturedPlaylists retrieves Spotify's featured playlists.
func (c *Client) FeaturedPlaylists(ctx context.Context, limit int) (*FeaturedPlaylists, error) {
	var featured FeaturedPlaylists
	endpoint := fmt.Sprintf("/browse/featured-playlists?limit=%d", clampLimit(limit))
	if err := c.get(ctx, endpoint, &featured); err != nil {
		return nil, err
	}
	return &featured, nil
}

// NewReleases retrieves newly released albums.
func (c *Client) NewReleases(ctx context.Context, limit int) (*NewReleases, error) {
	var releases NewReleases
	endpoint := fmt.Sprintf("/browse/new-releases?limit=%d", clampLimit(limit))
	if err := c.get(ctx, endpoint, &releases); err != nil {
		return nil, err
	}
	return &releases, nil
}

// Categories retrieves browse categories.
func (c *Client) Categories(ctx context.Context, limit int) (*CategoryPage, error) {
	var page CategoryPage
	endpoint := fmt.Sprintf("/browse/categories?limit=%d", clampLimit(limit))
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SavedTracks retrieves the user's saved tracks with pagination.
func (c *Client) SavedTracks(ctx context.Context, limit, offset int) (*Paging[SavedTrack], error) {
	var page Paging[SavedTrack]
	endpoint := fmt.Sprintf("/me/tracks?limit=%d&offset=%d", clampLimit(limit), offset)
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SaveTrack adds a track to the user's library.
func (c *Client) SaveTrack(ctx context.Context, trackID string) error {
	if trackID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}
	body := map[string][]string{"ids": {trackID}}
	return c.do(ctx, http.MethodPut, "/me/tracks", body, nil, 0)
}

// RemoveTrack removes a track from the user's library.
func (c *Client) RemoveTrack(ctx context.Context, trackID string) error {
	if trackID == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}
	endpoint := "/me/tracks?ids=" + url.QueryEscape(trackID)
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, 0)
}

// SavedAlbums retrieves the user's saved albums with pagination.
func (c *Client) SavedAlbums(ctx context.Context, limit, offset int) (*Paging[SavedAlbum], error) {
	var page Paging[SavedAlbum]
	endpoint := fmt.Sprintf("/me/albums?limit=%d&offset=%d", clampLimit(limit), offset)
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UserPlaylists retrieves the current user's playlists with pagination.
func (c *Client) UserPlaylists(ctx context.Context, limit, offset int) (*Paging[SimplePlaylist], error) {
	var page Paging[SimplePlaylist]
	endpoint := fmt.Sprintf("/me/playlists?limit=%d&offset=%d", clampLimit(limit), offset)
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Playlist retrieves a playlist by ID.
func (c *Client) Playlist(ctx context.Context, playlistID string) (*Playlist, error) {
	var playlist Playlist
	endpoint := fmt.Sprintf("/playlists/%s", playlistID)
	if err := c.get(ctx, endpoint, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// CreatePlaylist creates a playlist owned by the given user.
func (c *Client) CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (*Playlist, error) {
	if userID == "" || name == "" {
		return nil, fmt.Errorf("%w: user id and playlist name", shared.ErrMissingArgument)
	}

	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}

	var playlist Playlist
	endpoint := fmt.Sprintf("/users/%s/playlists", userID)
	if err := c.do(ctx, http.MethodPost, endpoint, body, &playlist, 0); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddTracksToPlaylist appends track URIs to a playlist.
func (c *Client) AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string) (*Snapshot, error) {
	if len(uris) == 0 {
		return nil, fmt.Errorf("%w: no track URIs provided", shared.ErrInvalidInput)
	}

	body := map[string][]string{"uris": uris}

	var snapshot Snapshot
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	if err := c.do(ctx, http.MethodPost, endpoint, body, &snapshot, 0); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Search queries the catalog. The types slice defaults to all four entity
// types when empty.
func (c *Client) Search(ctx context.Context, query string, types []string, limit int) (*SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}
	if len(types) == 0 {
		types = []string{"track", "artist", "album", "playlist"}
	}

	endpoint := fmt.Sprintf(
		"/search?q=%s&type=%s&limit=%d",
		url.QueryEscape(query), strings.Join(types, ","), clampLimit(limit),
	)

	var result SearchResult
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Artist retrieves an artist by ID.
func (c *Client) Artist(ctx context.Context, artistID string) (*Artist, error) {
	var artist Artist
	endpoint := fmt.Sprintf("/artists/%s", artistID)
	if err := c.get(ctx, endpoint, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ArtistAlbums retrieves an artist's albums.
func (c *Client) ArtistAlbums(ctx context.Context, artistID string, limit int) (*Paging[Album], error) {
	var page Paging[Album]
	endpoint := fmt.Sprintf("/artists/%s/albums?limit=%d", artistID, clampLimit(limit))
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ArtistTopTracks retrieves an artist's top tracks in the user's market.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID string) ([]Track, error) {
	var response struct {
		Tracks []Track `json:"tracks"`
	}

	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=from_token", artistID)
	if err := c.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return response.Tracks, nil
}

// FollowArtist follows an artist for the current user.
func (c *Client) FollowArtist(ctx context.Context, artistID string) error {
	endpoint := "/me/following?type=artist&ids=" + url.QueryEscape(artistID)
	return c.do(ctx, http.MethodPut, endpoint, nil, nil, 0)
}

// UnfollowArtist unfollows an artist for the current user.
func (c *Client) UnfollowArtist(ctx context.Context, artistID string) error {
	endpoint := "/me/following?type=artist&ids=" + url.QueryEscape(artistID)
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, 0)
}

// Album retrieves an album by ID.
func (c *Client) Album(ctx context.Context, albumID string) (*Album, error) {
	var album Album
	endpoint := fmt.Sprintf("/albums/%s", albumID)
	if err := c.get(ctx, endpoint, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// Track retrieves a single track by ID.
func (c *Client) Track(ctx context.Context, trackID string) (*Track, error) {
	var track Track
	endpoint := fmt.Sprintf("/tracks/%s", trackID)
	if err := c.get(ctx, endpoint, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// TopArtists retrieves the user's top artists over the given time range
// (short_term, medium_term, or long_term).
func (c *Client) TopArtists(ctx context.Context, timeRange string, limit int) (*Paging[Artist], error) {
	var page Paging[Artist]
	endpoint := fmt.Sprintf("/me/top/artists?time_range=%s&limit=%d", normalizeRange(timeRange), clampLimit(limit))
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TopTracks retrieves the user's top tracks over the given time range.
func (c *Client) TopTracks(ctx context.Context, timeRange string, limit int) (*Paging[Track], error) {
	var page Paging[Track]
	endpoint := fmt.Sprintf("/me/top/tracks?time_range=%s&limit=%d", normalizeRange(timeRange), clampLimit(limit))
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CurrentPlayback retrieves the playback state, or nil when nothing is playing.
func (c *Client) CurrentPlayback(ctx context.Context) (*PlaybackState, error) {
	var state PlaybackState
	if err := c.get(ctx, "/me/player", &state); err != nil {
		return nil, err
	}
	if state.Item == nil && state.Device.ID == "" {
		return nil, nil
	}
	return &state, nil
}

// RecentlyPlayed retrieves the user's recently played tracks.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) (*RecentlyPlayed, error) {
	var recent RecentlyPlayed
	endpoint := fmt.Sprintf("/me/player/recently-played?limit=%d", clampLimit(limit))
	if err := c.get(ctx, endpoint, &recent); err != nil {
		return nil, err
	}
	return &recent, nil
}

func normalizeRange(timeRange string) string {
	switch timeRange {
	case "short_term", "medium_term", "long_term":
		return timeRange
	default:
		return "medium_term"
	}
}
