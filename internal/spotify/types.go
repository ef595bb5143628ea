// Spotify Web API response types, based on
// https://developer.spotify.com/documentation/web-api/reference/
package spotify

type followers struct {
	Total int `json:"total"`
}

// User represents a Spotify user profile.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Country     string    `json:"country"`
	Product     string    `json:"product"` // premium, free, etc.
	Followers   followers `json:"followers"`
	Images      []Image   `json:"images"`
}

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type externalIDs struct {
	ISRC string `json:"isrc"`
}

// Track represents a Spotify track.
type Track struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Artists     []Artist    `json:"artists"`
	Album       Album       `json:"album"`
	DurationMS  int         `json:"duration_ms"`
	Explicit    bool        `json:"explicit"`
	ExternalIDs externalIDs `json:"external_ids"`
	Popularity  int         `json:"popularity"`
	URI         string      `json:"uri"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Genres    []string  `json:"genres"`
	Followers followers `json:"followers"`
	Images    []Image   `json:"images"`
	URI       string    `json:"uri"`
}

// Album represents a Spotify album.
type Album struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Artists     []Artist       `json:"artists"`
	ReleaseDate string         `json:"release_date"`
	TotalTracks int            `json:"total_tracks"`
	Images      []Image        `json:"images"`
	Tracks      *Paging[Track] `json:"tracks,omitempty"`
	URI         string         `json:"uri"`
}

// Owner identifies the user owning a playlist.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Playlist represents a full Spotify playlist, including its track page.
type Playlist struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Owner       Owner                 `json:"owner"`
	Public      bool                  `json:"public"`
	Tracks      Paging[PlaylistTrack] `json:"tracks"`
	Images      []Image               `json:"images"`
	URI         string                `json:"uri"`
}

// PlaylistTrack represents a track within a playlist context.
type PlaylistTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

type simplePlaylistTracks struct {
	Total int `json:"total"`
}

// SimplePlaylist represents a simplified playlist object (used in lists).
type SimplePlaylist struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Owner       Owner                `json:"owner"`
	Public      bool                 `json:"public"`
	Tracks      simplePlaylistTracks `json:"tracks"`
	Images      []Image              `json:"images"`
	URI         string               `json:"uri"`
}

// SavedTrack represents a track saved in the user's library.
type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// SavedAlbum represents an album saved in the user's library.
type SavedAlbum struct {
	AddedAt string `json:"added_at"`
	Album   Album  `json:"album"`
}

// Category represents a browse category.
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Icons []Image `json:"icons"`
}

// Paging represents a paginated Spotify response envelope.
type Paging[T any] struct {
	Items    []T     `json:"items"`
	Total    int     `json:"total"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// FeaturedPlaylists is the /browse/featured-playlists response.
type FeaturedPlaylists struct {
	Message   string                 `json:"message"`
	Playlists Paging[SimplePlaylist] `json:"playlists"`
}

// NewReleases is the /browse/new-releases response.
type NewReleases struct {
	Albums Paging[Album] `json:"albums"`
}

// CategoryPage is the /browse/categories response.
type CategoryPage struct {
	Categories Paging[Category] `json:"categories"`
}

// SearchResult holds the per-type pages of a /search response. Pages for
// types not requested are nil.
type SearchResult struct {
	Tracks    *Paging[Track]          `json:"tracks,omitempty"`
	Artists   *Paging[Artist]         `json:"artists,omitempty"`
	Albums    *Paging[Album]          `json:"albums,omitempty"`
	Playlists *Paging[SimplePlaylist] `json:"playlists,omitempty"`
}

// Snapshot is returned by playlist mutation endpoints.
type Snapshot struct {
	SnapshotID string `json:"snapshot_id"`
}

// Device represents a Spotify Connect playback device.
type Device struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	VolumePercent int    `json:"volume_percent"`
}

// PlaybackState is the /me/player response. A 204 from the endpoint means no
// active playback, surfaced as a nil state.
type PlaybackState struct {
	Device     Device `json:"device"`
	IsPlaying  bool   `json:"is_playing"`
	ProgressMS int    `json:"progress_ms"`
	Item       *Track `json:"item"`
}

// PlayHistory represents one entry of the recently-played feed.
type PlayHistory struct {
	Track    Track  `json:"track"`
	PlayedAt string `json:"played_at"`
}

// RecentlyPlayed is the /me/player/recently-played response.
type RecentlyPlayed struct {
	Items []PlayHistory `json:"items"`
}
