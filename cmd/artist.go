package main

import (
	"context"
	"fmt"

	"github.com/mwhitby/chorus/internal/shared"
	"github.com/urfave/cli/v3"
)

func requireArtistID(cmd *cli.Command) (string, error) {
	artistID := cmd.String("id")
	if artistID == "" {
		return "", fmt.Errorf("%w: --id flag is required", shared.ErrMissingArgument)
	}
	return artistID, nil
}

// ArtistShow prints an artist's profile.
func (r *Runner) ArtistShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	artistID, err := requireArtistID(cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("fetching artist %v", artistID)

	artist, err := r.client.Artist(ctx, artistID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(artist, cmd.Bool("pretty"))
	}

	r.writePlain("Artist: %s\n", artist.Name)
	if len(artist.Genres) > 0 {
		r.writePlain("Genres: %v\n", artist.Genres)
	}
	r.writePlain("Followers: %d\n", artist.Followers.Total)

	return nil
}

// ArtistAlbums lists an artist's albums.
func (r *Runner) ArtistAlbums(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	artistID, err := requireArtistID(cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("fetching albums for artist %v", artistID)

	page, err := r.client.ArtistAlbums(ctx, artistID, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	for i, album := range page.Items {
		r.writePlain("%d. %s (%s)\n", i+1, album.Name, album.ReleaseDate)
	}

	return nil
}

// ArtistTop lists an artist's top tracks.
func (r *Runner) ArtistTop(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	artistID, err := requireArtistID(cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("fetching top tracks for artist %v", artistID)

	tracks, err := r.client.ArtistTopTracks(ctx, artistID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	for i, track := range tracks {
		r.writePlain("%d. %s (%s)\n", i+1, track.Name, track.ID)
	}

	return nil
}

// ArtistFollow follows an artist.
func (r *Runner) ArtistFollow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	artistID, err := requireArtistID(cmd)
	if err != nil {
		return err
	}

	if err := r.client.FollowArtist(ctx, artistID); err != nil {
		return err
	}

	r.writePlain("✓ Following artist %s\n", artistID)

	return nil
}

// ArtistUnfollow unfollows an artist.
func (r *Runner) ArtistUnfollow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	artistID, err := requireArtistID(cmd)
	if err != nil {
		return err
	}

	if err := r.client.UnfollowArtist(ctx, artistID); err != nil {
		return err
	}

	r.writePlain("✓ Unfollowed artist %s\n", artistID)

	return nil
}
