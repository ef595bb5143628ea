package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mwhitby/chorus/internal/auth"
	"github.com/mwhitby/chorus/internal/session"
	"github.com/mwhitby/chorus/internal/shared"
	"github.com/mwhitby/chorus/internal/spotify"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	db         *sql.DB
	auth       *auth.Authenticator
	client     *spotify.Client
	session    *session.Session
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Pre-populated fields are kept as-is, which lets tests inject fakes.
type RunnerOpts struct {
	Config     *shared.Config
	DB         *sql.DB
	Auth       *auth.Authenticator
	Client     *spotify.Client
	Session    *session.Session
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		db:         opts.DB,
		auth:       opts.Auth,
		client:     opts.Client,
		session:    opts.Session,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// ensure lazily builds the storage, auth, client, and session stack in
// dependency order, keeping any piece that was injected up front.
func (r *Runner) ensure() error {
	if r.db == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		r.db = db
	}

	if r.auth == nil {
		if err := r.config.Credentials.Spotify.Validate(); err != nil {
			return err
		}

		store := auth.NewTokenStore(r.db)
		authenticator, err := auth.New(r.config.Credentials.Spotify.Map(), store, r.logger)
		if err != nil {
			return fmt.Errorf("failed to create authenticator: %w", err)
		}

		r.auth = authenticator
	}

	if r.client == nil {
		r.client = spotify.NewClient("", r.auth, r.httpClient, r.logger)
	}

	if r.session == nil {
		r.session = session.New(r.auth, r.client, r.logger)
	}

	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
