package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// BrowseFeatured lists Spotify's featured playlists.
func (r *Runner) BrowseFeatured(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	r.logger.Infof("fetching featured playlists with limit %v", limit)

	featured, err := r.client.FeaturedPlaylists(ctx, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(featured, cmd.Bool("pretty"))
	}

	if featured.Message != "" {
		r.writePlain("%s\n\n", featured.Message)
	}

	for i, p := range featured.Playlists.Items {
		r.writePlain("%d. %s\n", i+1, p.Name)
		if p.Description != "" {
			r.writePlain("   %s\n", p.Description)
		}
		r.writePlain("   ID: %s | Tracks: %d\n", p.ID, p.Tracks.Total)
	}

	return nil
}

// BrowseReleases lists newly released albums.
func (r *Runner) BrowseReleases(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	r.logger.Infof("fetching new releases with limit %v", limit)

	releases, err := r.client.NewReleases(ctx, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(releases, cmd.Bool("pretty"))
	}

	for i, album := range releases.Albums.Items {
		r.writePlain("%d. %s", i+1, album.Name)
		if len(album.Artists) > 0 {
			r.writePlain(" - %s", album.Artists[0].Name)
		}
		r.writePlain("\n   Released: %s | ID: %s\n", album.ReleaseDate, album.ID)
	}

	return nil
}

// BrowseCategories lists browse categories.
func (r *Runner) BrowseCategories(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	r.logger.Infof("fetching categories with limit %v", limit)

	page, err := r.client.Categories(ctx, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	for i, category := range page.Categories.Items {
		r.writePlain("%d. %s (%s)\n", i+1, category.Name, category.ID)
	}

	return nil
}
