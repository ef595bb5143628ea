package main

import (
	"context"
	"fmt"

	"github.com/mwhitby/chorus/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistList lists the current user's playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	offset := cmd.Int("offset")
	r.logger.Infof("listing playlists limit %v offset %v", limit, offset)

	page, err := r.client.UserPlaylists(ctx, limit, offset)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d playlists:\n\n", page.Total)
	for i, p := range page.Items {
		r.writePlain("%d. %s\n", offset+i+1, p.Name)
		if p.Description != "" {
			r.writePlain("   Description: %s\n", p.Description)
		}
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Tracks: %d\n", p.Tracks.Total)
		if p.Public {
			r.writePlain("   Visibility: Public\n")
		} else {
			r.writePlain("   Visibility: Private\n")
		}
		r.writePlain("\n")
	}

	return nil
}

// PlaylistShow prints a playlist with its tracks.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	playlistID := cmd.String("id")
	if playlistID == "" {
		return fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("fetching playlist %v", playlistID)

	playlist, err := r.client.Playlist(ctx, playlistID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, cmd.Bool("pretty"))
	}

	r.writePlain("Playlist: %s\n", playlist.Name)
	if playlist.Description != "" {
		r.writePlain("Description: %s\n", playlist.Description)
	}
	r.writePlain("Owner: %s\n", playlist.Owner.DisplayName)
	r.writePlain("Tracks: %d\n\n", playlist.Tracks.Total)

	for i, item := range playlist.Tracks.Items {
		track := item.Track
		r.writePlain("%d. %s", i+1, track.Name)
		if len(track.Artists) > 0 {
			r.writePlain(" - %s", track.Artists[0].Name)
		}
		r.writePlain("\n")
	}

	return nil
}

// PlaylistCreate creates a new playlist for the signed-in user.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	name := cmd.String("name")
	if name == "" {
		return fmt.Errorf("%w: --name flag is required", shared.ErrMissingArgument)
	}

	if err := r.session.Initialize(ctx); err != nil {
		return err
	}

	user := r.session.User()
	if user == nil {
		return shared.ErrNotAuthenticated
	}

	r.logger.Infof("creating playlist %v for %v", name, user.ID)

	playlist, err := r.client.CreatePlaylist(ctx, user.ID, name, cmd.String("description"), cmd.Bool("public"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Playlist created\n")
	r.writePlain("  Name: %s\n", playlist.Name)
	r.writePlain("  ID: %s\n", playlist.ID)

	return nil
}

// PlaylistAdd appends tracks to an existing playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	playlistID := cmd.String("id")
	if playlistID == "" {
		return fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}

	uris := cmd.StringSlice("uri")
	if len(uris) == 0 {
		return fmt.Errorf("%w: at least one --uri is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("adding %v tracks to playlist %v", len(uris), playlistID)

	snapshot, err := r.client.AddTracksToPlaylist(ctx, playlistID, uris)
	if err != nil {
		return err
	}

	r.writePlain("✓ Added %d tracks (snapshot %s)\n", len(uris), snapshot.SnapshotID)

	return nil
}
