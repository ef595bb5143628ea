package main

import (
	"context"
	"fmt"

	"github.com/mwhitby/chorus/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryTracks lists the user's saved tracks.
func (r *Runner) LibraryTracks(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	offset := cmd.Int("offset")
	r.logger.Infof("fetching saved tracks limit %v offset %v", limit, offset)

	page, err := r.client.SavedTracks(ctx, limit, offset)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Saved tracks (%d of %d):\n\n", len(page.Items), page.Total)
	for i, saved := range page.Items {
		track := saved.Track
		r.writePlain("%d. %s", offset+i+1, track.Name)
		if len(track.Artists) > 0 {
			r.writePlain(" - %s", track.Artists[0].Name)
		}
		r.writePlain("\n   ID: %s | Added: %s\n", track.ID, saved.AddedAt)
	}

	return nil
}

// LibraryAlbums lists the user's saved albums.
func (r *Runner) LibraryAlbums(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	offset := cmd.Int("offset")
	r.logger.Infof("fetching saved albums limit %v offset %v", limit, offset)

	page, err := r.client.SavedAlbums(ctx, limit, offset)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Saved albums (%d of %d):\n\n", len(page.Items), page.Total)
	for i, saved := range page.Items {
		album := saved.Album
		r.writePlain("%d. %s", offset+i+1, album.Name)
		if len(album.Artists) > 0 {
			r.writePlain(" - %s", album.Artists[0].Name)
		}
		r.writePlain("\n   ID: %s | Tracks: %d\n", album.ID, album.TotalTracks)
	}

	return nil
}

// LibrarySave adds a track to the user's library.
func (r *Runner) LibrarySave(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	trackID := cmd.String("id")
	if trackID == "" {
		return fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("saving track %v", trackID)

	if err := r.client.SaveTrack(ctx, trackID); err != nil {
		return err
	}

	r.writePlain("✓ Track %s saved to library\n", trackID)

	return nil
}

// LibraryRemove removes a track from the user's library.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	trackID := cmd.String("id")
	if trackID == "" {
		return fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("removing track %v", trackID)

	if err := r.client.RemoveTrack(ctx, trackID); err != nil {
		return err
	}

	r.writePlain("✓ Track %s removed from library\n", trackID)

	return nil
}
