package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sonar-libras/sonar/internal/applicator"
	"github.com/sonar-libras/sonar/internal/config"
	"github.com/sonar-libras/sonar/internal/courses"
	"github.com/sonar-libras/sonar/internal/database"
	"github.com/sonar-libras/sonar/internal/forms"
	"github.com/sonar-libras/sonar/internal/identity"
	"github.com/sonar-libras/sonar/internal/idgen"
	"github.com/sonar-libras/sonar/internal/jobs"
	"github.com/sonar-libras/sonar/internal/logging"
	"github.com/sonar-libras/sonar/pkg/models"
)

// App is the dependency container for the CLI application
type App struct {
	DB           *sql.DB
	Config       *config.Config
	Logger       *slog.Logger
	Store        *database.Store
	Identity     *identity.Manager
	Jobs         *jobs.Board
	Courses      *courses.Tracker
	Applications *applicator.Applicator
	Validator    *forms.Validator
}

// NewApp loads the user configuration and opens the record store it points to
func NewApp(ctx context.Context) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return NewWithConfig(ctx, config.AppConfig, os.Stderr)
}

// NewWithConfig builds the services over the database described by cfg.
// Logs are written to logOut.
func NewWithConfig(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)

	db, err := database.Open(ctx, cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ids, err := idgen.NewSnowflake(cfg.NodeID)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := database.NewStore(db, logger)

	var seeds []models.JobPosting
	if cfg.SeedJobs {
		seeds = jobs.Seeds()
	}
	board := jobs.NewBoard(store, ids, jobs.WithSeeds(seeds), jobs.WithLogger(logger))

	a := &App{
		DB:           db,
		Config:       cfg,
		Logger:       logger,
		Store:        store,
		Identity:     identity.NewManager(store, ids, identity.WithLogger(logger)),
		Jobs:         board,
		Courses:      courses.NewTracker(store, courses.WithLogger(logger)),
		Applications: applicator.New(store, board, ids, applicator.WithLogger(logger)),
		Validator:    forms.New(),
	}

	if err := a.start(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// start runs the startup upgrades and restores the persisted session
func (a *App) start(ctx context.Context) error {
	if a.Config.SeedJobs {
		if err := a.Jobs.MergeSeeds(ctx); err != nil {
			return fmt.Errorf("failed to merge seed jobs: %w", err)
		}
	}
	if err := a.Identity.RestoreSession(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	return a.UpgradeSessionData(ctx)
}

// UpgradeSessionData upgrades the stored records of the session user, if any
func (a *App) UpgradeSessionData(ctx context.Context) error {
	s, ok := a.Identity.Current()
	if !ok {
		return nil
	}
	if err := a.Courses.UpgradeEnrollments(ctx, s.ID); err != nil {
		return fmt.Errorf("failed to upgrade enrollments: %w", err)
	}
	return nil
}

// Session returns the logged in user or ErrUnauthorized
func (a *App) Session() (models.Session, error) {
	s, ok := a.Identity.Current()
	if !ok {
		return models.Session{}, ErrUnauthorized
	}
	return s, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
