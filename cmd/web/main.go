package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/bertomill/hyrox-workout-generator/internal/envstruct"
	"github.com/bertomill/hyrox-workout-generator/internal/errors"
	"github.com/bertomill/hyrox-workout-generator/internal/flightrecorder"
	"github.com/bertomill/hyrox-workout-generator/internal/logging"
	"github.com/bertomill/hyrox-workout-generator/internal/pprofserver"
	"github.com/bertomill/hyrox-workout-generator/internal/sqlite"
	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	workoutService *workout.Service
	flightRecorder *flightrecorder.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"HYROX_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"HYROX_SQLITE_URL" envDefault:"./hyrox.sqlite3"`
	// OpenAIAPIKey enables AI-composed workouts. Leave empty to always use the rule-based generator.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
	// PProfAddr is the optional address to listen on for the pprof server.
	PProfAddr string `env:"HYROX_PPROF_ADDR" envDefault:""`
	// TracesDir enables the flight recorder. Request timeouts dump an
	// execution trace into this directory.
	TracesDir string `env:"HYROX_TRACES_DIR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if cfg.PProfAddr != "" {
		pprofserver.Launch(ctx, cfg.PProfAddr, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var recorder *flightrecorder.Service
	if cfg.TracesDir != "" {
		if recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			TracesDirectory: cfg.TracesDir,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
	}

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db),
		workoutService: workout.NewService(db, logger, cfg.OpenAIAPIKey),
		flightRecorder: recorder,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 12 * time.Hour                                               //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
