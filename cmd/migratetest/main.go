package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/scenario"
	"github.com/avirtanen/siderovalley/internal/sqlite"
	"github.com/avirtanen/siderovalley/internal/testhelpers"
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("SIDERO_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "SIDERO_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	// Load and validate the whole scenario as a smoke test of the migrated
	// schema and fixtures.
	var loaded *models.Scenario
	if loaded, err = scenario.NewRepository(db, logger).Load(ctx); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error loading scenario", errors.SlogError(err))
		os.Exit(1)
	}
	if len(loaded.Villages) == 0 {
		logger.LogAttrs(ctx, slog.LevelError, "no villages found, something is likely wrong")
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "village count", slog.Int("count", len(loaded.Villages)))

	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
