package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"

	"github.com/avirtanen/siderovalley/internal/ai"
	"github.com/avirtanen/siderovalley/internal/broker"
	"github.com/avirtanen/siderovalley/internal/consequence"
	"github.com/avirtanen/siderovalley/internal/envstruct"
	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/interview"
	"github.com/avirtanen/siderovalley/internal/lab"
	"github.com/avirtanen/siderovalley/internal/logging"
	"github.com/avirtanen/siderovalley/internal/models"
	"github.com/avirtanen/siderovalley/internal/pprofserver"
	"github.com/avirtanen/siderovalley/internal/scenario"
	"github.com/avirtanen/siderovalley/internal/sqlite"
)

type config struct {
	Addr             string `env:"SIDERO_ADDR" envDefault:"localhost:4444"`
	PprofPort        string `env:"SIDERO_PPROF_PORT" envDefault:":6060"`
	SqliteURL        string `env:"SIDERO_SQLITE_URL" envDefault:"./siderovalley.sqlite"`
	OpenAIKey        string `env:"OPENAI_API_KEY" envDefault:""`
	FacilitatorToken string `env:"SIDERO_FACILITATOR_TOKEN" envDefault:""`
}

type application struct {
	logger           *slog.Logger
	sessionManager   *scs.SessionManager
	scenario         *models.Scenario
	interviews       *interview.Service
	lab              *lab.Service
	scorecard        *consequence.Scorecard
	answerBroker     *broker.ChannelBroker[string, string]
	htmx             *htmx.HTMX
	facilitatorToken string
}

func main() {
	ctx := context.Background()
	loggerHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})
	logger := slog.New(logging.NewContextHandler(loggerHandler))

	// A missing .env file is fine, the environment may be set by other means.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "load .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}

// run wires the application together and starts the server. It is the
// testable entrypoint: the e2e test harness calls it with its own logger and
// environment.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse environment")
	}

	// pprof listens on localhost only so that it's not open to the world.
	if cfg.PprofPort != "" {
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}

	scen, err := scenario.NewRepository(db, logger).Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load scenario")
	}
	if err = scenario.Validate(scen); err != nil {
		return errors.Wrap(err, "validate scenario")
	}

	scorecard, err := consequence.DefaultScorecard()
	if err != nil {
		return errors.Wrap(err, "load scorecard")
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	var phraser ai.Phraser = ai.StaticPhraser{}
	if cfg.OpenAIKey != "" {
		phraser = ai.NewClient(cfg.OpenAIKey)
	} else {
		logger.LogAttrs(ctx, slog.LevelInfo, "no OPENAI_API_KEY, NPCs answer with authored fragments")
	}

	answerBroker := broker.NewChannelBroker[string, string]()
	go answerBroker.Start()
	defer answerBroker.Stop()

	app := application{
		logger:           logger,
		sessionManager:   sessionManager,
		scenario:         scen,
		interviews:       interview.NewService(scen, phraser, logger),
		lab:              lab.NewService(scen),
		scorecard:        scorecard,
		answerBroker:     answerBroker,
		htmx:             htmx.New(),
		facilitatorToken: cfg.FacilitatorToken,
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
