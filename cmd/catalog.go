package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwhitby/chorus/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the catalog for tracks, artists, albums, and playlists.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	var types []string
	if typeFlag := cmd.String("type"); typeFlag != "" {
		types = strings.Split(typeFlag, ",")
	}

	r.logger.Infof("searching for %q", query)

	result, err := r.client.Search(ctx, query, types, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	if result.Tracks != nil && len(result.Tracks.Items) > 0 {
		r.writePlain("Tracks:\n")
		for i, track := range result.Tracks.Items {
			r.writePlain("  %d. %s", i+1, track.Name)
			if len(track.Artists) > 0 {
				r.writePlain(" - %s", track.Artists[0].Name)
			}
			r.writePlain(" (%s)\n", track.ID)
		}
	}

	if result.Artists != nil && len(result.Artists.Items) > 0 {
		r.writePlain("Artists:\n")
		for i, artist := range result.Artists.Items {
			r.writePlain("  %d. %s (%s)\n", i+1, artist.Name, artist.ID)
		}
	}

	if result.Albums != nil && len(result.Albums.Items) > 0 {
		r.writePlain("Albums:\n")
		for i, album := range result.Albums.Items {
			r.writePlain("  %d. %s (%s)\n", i+1, album.Name, album.ID)
		}
	}

	if result.Playlists != nil && len(result.Playlists.Items) > 0 {
		r.writePlain("Playlists:\n")
		for i, p := range result.Playlists.Items {
			r.writePlain("  %d. %s (%s)\n", i+1, p.Name, p.ID)
		}
	}

	return nil
}

// AlbumShow prints an album with its tracks.
func (r *Runner) AlbumShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	albumID := cmd.String("id")
	if albumID == "" {
		return fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("fetching album %v", albumID)

	album, err := r.client.Album(ctx, albumID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(album, cmd.Bool("pretty"))
	}

	r.writePlain("Album: %s\n", album.Name)
	if len(album.Artists) > 0 {
		r.writePlain("Artist: %s\n", album.Artists[0].Name)
	}
	r.writePlain("Released: %s | Tracks: %d\n", album.ReleaseDate, album.TotalTracks)

	if album.Tracks != nil {
		r.writePlain("\n")
		for i, track := range album.Tracks.Items {
			r.writePlain("%d. %s\n", i+1, track.Name)
		}
	}

	return nil
}

// TrackShow prints a single track.
func (r *Runner) TrackShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	trackID := cmd.String("id")
	if trackID == "" {
		return fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("fetching track %v", trackID)

	track, err := r.client.Track(ctx, trackID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}

	r.writePlain("Track: %s\n", track.Name)
	if len(track.Artists) > 0 {
		r.writePlain("Artist: %s\n", track.Artists[0].Name)
	}
	if track.Album.Name != "" {
		r.writePlain("Album: %s\n", track.Album.Name)
	}
	r.writePlain("Duration: %ds", track.DurationMS/1000)
	if track.ExternalIDs.ISRC != "" {
		r.writePlain(" | ISRC: %s", track.ExternalIDs.ISRC)
	}
	r.writePlain("\n")

	return nil
}
