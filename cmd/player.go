package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// PlayerNow prints the current playback state.
func (r *Runner) PlayerNow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	r.logger.Info("fetching current playback")

	state, err := r.client.CurrentPlayback(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(state, cmd.Bool("pretty"))
	}

	if state == nil || state.Item == nil {
		r.writePlain("Nothing is playing.\n")
		return nil
	}

	track := state.Item
	if state.IsPlaying {
		r.writePlain("▶ %s", track.Name)
	} else {
		r.writePlain("⏸ %s", track.Name)
	}
	if len(track.Artists) > 0 {
		r.writePlain(" - %s", track.Artists[0].Name)
	}
	r.writePlain("\n%d:%02d / %d:%02d",
		state.ProgressMS/60000, state.ProgressMS/1000%60,
		track.DurationMS/60000, track.DurationMS/1000%60,
	)
	if state.Device.Name != "" {
		r.writePlain(" on %s", state.Device.Name)
	}
	r.writePlain("\n")

	return nil
}

// PlayerRecent lists recently played tracks.
func (r *Runner) PlayerRecent(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	limit := cmd.Int("limit")
	r.logger.Infof("fetching recently played with limit %v", limit)

	recent, err := r.client.RecentlyPlayed(ctx, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(recent, cmd.Bool("pretty"))
	}

	for i, item := range recent.Items {
		r.writePlain("%d. %s", i+1, item.Track.Name)
		if len(item.Track.Artists) > 0 {
			r.writePlain(" - %s", item.Track.Artists[0].Name)
		}
		r.writePlain(" (played %s)\n", item.PlayedAt)
	}

	return nil
}

// TopArtists lists the user's top artists.
func (r *Runner) TopArtists(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	timeRange := cmd.String("range")
	r.logger.Infof("fetching top artists for range %v", timeRange)

	page, err := r.client.TopArtists(ctx, timeRange, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	for i, artist := range page.Items {
		r.writePlain("%d. %s (%s)\n", i+1, artist.Name, artist.ID)
	}

	return nil
}

// TopTracks lists the user's top tracks.
func (r *Runner) TopTracks(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensure(); err != nil {
		return err
	}

	timeRange := cmd.String("range")
	r.logger.Infof("fetching top tracks for range %v", timeRange)

	page, err := r.client.TopTracks(ctx, timeRange, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	for i, track := range page.Items {
		r.writePlain("%d. %s", i+1, track.Name)
		if len(track.Artists) > 0 {
			r.writePlain(" - %s", track.Artists[0].Name)
		}
		r.writePlain("\n")
	}

	return nil
}
