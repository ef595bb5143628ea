// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

func limitFlag(value int) *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "limit",
		Usage: "Maximum number of items to return",
		Value: value,
	}
}

func offsetFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "offset",
		Usage: "Index of the first item to return",
	}
}

func idFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "id",
		Usage:    usage,
		Required: true,
	}
}

func rangeFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "range",
		Usage: "Time range: short_term, medium_term, or long_term",
		Value: "medium_term",
	}
}

// authCommand handles login, logout, and token lifecycle operations.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Sign in via the browser authorization flow",
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear all stored tokens",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session state",
				Action: r.AuthStatus,
			},
			{
				Name:   "refresh",
				Usage:  "Force a token refresh",
				Action: r.AuthRefresh,
			},
		},
	}
}

// browseCommand handles the catalog browse endpoints.
func browseCommand(r *Runner) *cli.Command {
	flags := append([]cli.Flag{limitFlag(20)}, outputFlags()...)

	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the Spotify catalog",
		Commands: []*cli.Command{
			{
				Name:   "featured",
				Usage:  "List featured playlists",
				Flags:  flags,
				Action: r.BrowseFeatured,
			},
			{
				Name:   "releases",
				Usage:  "List new album releases",
				Flags:  flags,
				Action: r.BrowseReleases,
			},
			{
				Name:   "categories",
				Usage:  "List browse categories",
				Flags:  flags,
				Action: r.BrowseCategories,
			},
		},
	}
}

// libraryCommand handles the user's saved tracks and albums.
func libraryCommand(r *Runner) *cli.Command {
	listFlags := append([]cli.Flag{limitFlag(20), offsetFlag()}, outputFlags()...)

	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage your library",
		Commands: []*cli.Command{
			{
				Name:   "tracks",
				Usage:  "List saved tracks",
				Flags:  listFlags,
				Action: r.LibraryTracks,
			},
			{
				Name:   "albums",
				Usage:  "List saved albums",
				Flags:  listFlags,
				Action: r.LibraryAlbums,
			},
			{
				Name:   "save",
				Usage:  "Save a track to your library",
				Flags:  []cli.Flag{idFlag("Track ID to save")},
				Action: r.LibrarySave,
			},
			{
				Name:   "remove",
				Usage:  "Remove a track from your library",
				Flags:  []cli.Flag{idFlag("Track ID to remove")},
				Action: r.LibraryRemove,
			},
		},
	}
}

// playlistCommand handles playlist operations.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List your playlists",
				Flags:  append([]cli.Flag{limitFlag(20), offsetFlag()}, outputFlags()...),
				Action: r.PlaylistList,
			},
			{
				Name:   "show",
				Usage:  "Show a playlist with its tracks",
				Flags:  append([]cli.Flag{idFlag("Playlist ID")}, outputFlags()...),
				Action: r.PlaylistShow,
			},
			{
				Name:  "create",
				Usage: "Create a new playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Playlist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Playlist description",
					},
					&cli.BoolFlag{
						Name:  "public",
						Usage: "Make the playlist public",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "add",
				Usage: "Add tracks to a playlist",
				Flags: []cli.Flag{
					idFlag("Playlist ID"),
					&cli.StringSliceFlag{
						Name:  "uri",
						Usage: "Track URI to add (repeatable)",
					},
				},
				Action: r.PlaylistAdd,
			},
		},
	}
}

// searchCommand queries the catalog.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search tracks, artists, albums, and playlists",
		ArgsUsage: "<query>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "Comma-separated entity types (track,artist,album,playlist)",
			},
			limitFlag(10),
		}, outputFlags()...),
		Action: r.Search,
	}
}

// artistCommand handles artist operations.
func artistCommand(r *Runner) *cli.Command {
	idFlags := append([]cli.Flag{idFlag("Artist ID")}, outputFlags()...)

	return &cli.Command{
		Name:  "artist",
		Usage: "Artist operations",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show an artist's profile",
				Flags:  idFlags,
				Action: r.ArtistShow,
			},
			{
				Name:   "albums",
				Usage:  "List an artist's albums",
				Flags:  append([]cli.Flag{idFlag("Artist ID"), limitFlag(20)}, outputFlags()...),
				Action: r.ArtistAlbums,
			},
			{
				Name:   "top",
				Usage:  "List an artist's top tracks",
				Flags:  idFlags,
				Action: r.ArtistTop,
			},
			{
				Name:   "follow",
				Usage:  "Follow an artist",
				Flags:  []cli.Flag{idFlag("Artist ID")},
				Action: r.ArtistFollow,
			},
			{
				Name:   "unfollow",
				Usage:  "Unfollow an artist",
				Flags:  []cli.Flag{idFlag("Artist ID")},
				Action: r.ArtistUnfollow,
			},
		},
	}
}

// catalogCommands handles album and track lookups.
func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "album",
		Usage:  "Show an album with its tracks",
		Flags:  append([]cli.Flag{idFlag("Album ID")}, outputFlags()...),
		Action: r.AlbumShow,
	}
}

func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "track",
		Usage:  "Show a track",
		Flags:  append([]cli.Flag{idFlag("Track ID")}, outputFlags()...),
		Action: r.TrackShow,
	}
}

// topCommand handles the user's top artists and tracks.
func topCommand(r *Runner) *cli.Command {
	flags := append([]cli.Flag{rangeFlag(), limitFlag(20)}, outputFlags()...)

	return &cli.Command{
		Name:  "top",
		Usage: "Your top artists and tracks",
		Commands: []*cli.Command{
			{
				Name:   "artists",
				Usage:  "List your top artists",
				Flags:  flags,
				Action: r.TopArtists,
			},
			{
				Name:   "tracks",
				Usage:  "List your top tracks",
				Flags:  flags,
				Action: r.TopTracks,
			},
		},
	}
}

// playerCommand handles playback state.
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "Playback state",
		Commands: []*cli.Command{
			{
				Name:   "now",
				Usage:  "Show current playback",
				Flags:  outputFlags(),
				Action: r.PlayerNow,
			},
			{
				Name:   "recent",
				Usage:  "List recently played tracks",
				Flags:  append([]cli.Flag{limitFlag(20)}, outputFlags()...),
				Action: r.PlayerRecent,
			},
		},
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file and database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, browseCommand, libraryCommand, playlistCommand,
		searchCommand, artistCommand, albumCommand, trackCommand, topCommand, playerCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}
