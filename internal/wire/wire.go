// Package wire provides dependency injection for the tpp application.
// Services are built once, lazily, from the configuration the CLI installs
// with Configure.
package wire

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/tpp/internal/adapters/cli"
	"github.com/example/tpp/internal/adapters/persistence"
	"github.com/example/tpp/internal/adapters/postgres"
	"github.com/example/tpp/internal/adapters/s3store"
	"github.com/example/tpp/internal/adapters/sqlite"
	"github.com/example/tpp/internal/app"
	"github.com/example/tpp/internal/config"
	"github.com/example/tpp/internal/db"
	"github.com/example/tpp/internal/ports/primary"
	"github.com/example/tpp/internal/ports/secondary"
)

// Container holds the services built from one configuration.
type Container struct {
	SymptomService    primary.SymptomService
	PeriodService     primary.PeriodService
	OnboardingService primary.OnboardingService
	ActivityService   primary.ActivityService

	// Store is the key-value store calendar data lives in.
	Store secondary.KeyValueStore
	// Years reads stored years directly, for diagnostics.
	Years secondary.YearRepository
	// StorageDescription names the store for diagnostics.
	StorageDescription string

	closers []io.Closer
}

// Close releases database connections.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}

// Build creates every service for cfg. The activity log always lives in the
// local SQLite database; calendar data lives in the configured backend.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{}

	sqlitePath := cfg.Storage.SQLitePath
	if sqlitePath == "" {
		var err error
		if sqlitePath, err = db.DefaultPath(); err != nil {
			return nil, err
		}
	}
	local, err := db.Open(sqlitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.closers = append(c.closers, local)

	store, desc, err := buildStore(ctx, cfg.Storage, local, c)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Store = store
	c.StorageDescription = desc

	// Create repository adapters (secondary ports)
	yearRepo := persistence.NewYearRepository(store)
	profileRepo := persistence.NewProfileRepository(store)
	activityRepo := sqlite.NewActivityRepository(local)
	activityWriter := sqlite.NewActivityWriterAdapter(activityRepo)

	// Create services (primary ports implementation)
	periodService := app.NewPeriodService(yearRepo, activityWriter, logger)
	c.SymptomService = app.NewSymptomService(yearRepo, activityWriter, logger)
	c.PeriodService = periodService
	c.OnboardingService = app.NewOnboardingService(profileRepo, periodService, activityWriter, logger)
	c.ActivityService = app.NewActivityService(activityRepo)
	c.Years = yearRepo

	logger.Debug("services initialized", zap.String("storage", desc), zap.String("activity_db", sqlitePath))
	return c, nil
}

func buildStore(ctx context.Context, cfg config.StorageConfig, local *sql.DB, c *Container) (secondary.KeyValueStore, string, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pg, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, "", err
		}
		c.closers = append(c.closers, pg)
		return postgres.NewKVStore(pg), "postgres", nil

	case config.BackendS3:
		client, err := s3store.NewClient(ctx, s3store.ClientConfig{Region: cfg.AWSRegion, Profile: cfg.AWSProfile})
		if err != nil {
			return nil, "", err
		}
		return s3store.NewKVStore(client, cfg.S3Bucket, cfg.S3Prefix),
			fmt.Sprintf("s3://%s/%s", cfg.S3Bucket, cfg.S3Prefix), nil

	case config.BackendSQLite, "":
		return sqlite.NewKVStore(local), "sqlite", nil

	default:
		return nil, "", fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

var (
	currentConfig *config.Config
	logger        *zap.Logger
	container     *Container
	initErr       error
	once          sync.Once
)

// Configure installs the configuration and logger used by Services.
// It must be called before the first Services call.
func Configure(cfg *config.Config, l *zap.Logger) {
	currentConfig = cfg
	logger = l
}

// Services returns the singleton Container, building it on first use.
func Services(ctx context.Context) (*Container, error) {
	once.Do(func() {
		cfg := currentConfig
		if cfg == nil {
			cfg = config.Default()
		}
		container, initErr = Build(ctx, cfg, logger)
	})
	return container, initErr
}

// Shutdown closes the singleton Container if it was built. The next Services
// call builds a new one.
func Shutdown() error {
	var err error
	if container != nil {
		err = container.Close()
	}
	container, initErr = nil, nil
	once = sync.Once{}
	return err
}

// CalendarAdapter returns a new CalendarAdapter writing to stdout.
func CalendarAdapter(ctx context.Context) (*cliadapter.CalendarAdapter, error) {
	return CalendarAdapterWithOutput(ctx, os.Stdout)
}

// CalendarAdapterWithOutput returns a new CalendarAdapter writing to out.
func CalendarAdapterWithOutput(ctx context.Context, out io.Writer) (*cliadapter.CalendarAdapter, error) {
	c, err := Services(ctx)
	if err != nil {
		return nil, err
	}
	return cliadapter.NewCalendarAdapter(c.SymptomService, c.PeriodService, out), nil
}

// OnboardingAdapter returns a new OnboardingAdapter writing to stdout.
func OnboardingAdapter(ctx context.Context) (*cliadapter.OnboardingAdapter, error) {
	c, err := Services(ctx)
	if err != nil {
		return nil, err
	}
	return cliadapter.NewOnboardingAdapter(c.OnboardingService, os.Stdout), nil
}

// ActivityAdapter returns a new ActivityAdapter writing to stdout.
func ActivityAdapter(ctx context.Context) (*cliadapter.ActivityAdapter, error) {
	c, err := Services(ctx)
	if err != nil {
		return nil, err
	}
	return cliadapter.NewActivityAdapter(c.ActivityService, os.Stdout), nil
}
