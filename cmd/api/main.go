package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"

	"cohort.clinicaltrials.dev/internal/app"
	"cohort.clinicaltrials.dev/internal/appconf"
	"cohort.clinicaltrials.dev/internal/logging"
	"cohort.clinicaltrials.dev/internal/restapi"
	"cohort.clinicaltrials.dev/internal/trials"
	"cohort.clinicaltrials.dev/internal/webui"
)

func main() {
	// Flag defaults come from the environment, optionally seeded from a .env
	// file, so deployments can configure the server without long invocations.
	envFileFound := godotenv.Load() == nil

	defaults, err := appconf.LoadEnvDefaults()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		port          = flag.Int("port", defaults.Port, "API server port")
		envFlag       = flag.String("env", defaults.Env, "Environment (development|test|production)")
		apiKeysFlag   = flag.String("api-keys", defaults.ApiKeys, "Comma separated API keys (empty leaves the API open)")
		rateLimit     = flag.Int("rate-limit", defaults.RateLimit, "Requests per second per client (0 disables)")
		allowedOrigin = flag.String("allowed-origin", defaults.AllowedOrigin, "Browser origin allowed to call the API")
		ctgovURL      = flag.String("ctgov-url", defaults.CTGovURL, "ClinicalTrials.gov v2 studies endpoint")
		ctgovPageSize = flag.Int("ctgov-page-size", defaults.CTGovPageSize, "Studies fetched per refresh")
		ctgovTimeout  = flag.Duration("ctgov-timeout", defaults.CTGovTimeout, "ClinicalTrials.gov request timeout")
		eudractFile   = flag.String("eudract-file", defaults.EudractPath, "Path to the EudraCT register export")
		dbPath        = flag.String("db-path", defaults.TrialsDBPath, "SQLite database path")
		snapshotPath  = flag.String("snapshot-path", defaults.SnapshotPath, "Raw ClinicalTrials.gov snapshot path")
		refreshEvery  = flag.Duration("refresh-interval", defaults.RefreshInterval, "Periodic refresh cadence (0 disables)")
		retryAfter    = flag.Duration("retry-interval", defaults.RetryInterval, "Delay before retrying a failed refresh")
		verbose       = flag.Bool("verbose", defaults.Verbose, "Verbose logging")
	)
	flag.Parse()

	environment := appconf.EnvFlagToEnvironment(*envFlag)
	logger := logging.NewLoggerForEnv(os.Stdout, environment, *verbose)
	if !envFileFound {
		logger.Debug("no .env file found, using process environment")
	}

	var apiKeys []string
	if *apiKeysFlag != "" {
		apiKeys = strings.Split(*apiKeysFlag, ",")
		for i := range apiKeys {
			apiKeys[i] = strings.TrimSpace(apiKeys[i])
		}
	}

	trialsConfig := trials.Config{
		CTGovURL:        *ctgovURL,
		CTGovPageSize:   *ctgovPageSize,
		CTGovTimeout:    *ctgovTimeout,
		EudractPath:     *eudractFile,
		DBPath:          *dbPath,
		SnapshotPath:    *snapshotPath,
		RefreshInterval: *refreshEvery,
		RetryInterval:   *retryAfter,
		Env:             environment,
		Verbose:         *verbose,
	}

	trialManager, err := trials.InitTrialManager(trialsConfig, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialize trial manager", err)
		os.Exit(1)
	}

	app := &app.Application{
		Config: appconf.Config{
			Port:          *port,
			Env:           environment,
			ApiKeys:       apiKeys,
			RateLimit:     *rateLimit,
			AllowedOrigin: *allowedOrigin,
		},
		TrialsConfig: trialsConfig,
		Logger:       logger,
		TrialManager: trialManager,
	}

	router := httprouter.New()
	api := restapi.NewRestAPI(app)
	api.SetRoutes(router)
	webui.NewWebUI(app).SetWebUIRoutes(router)

	handler := api.WithSecurityHeaders(
		restapi.CompressionMiddleware(
			restapi.NewRequestLoggingMiddleware(logger)(router)))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Config.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: time.Minute, // POST /refresh waits on the upstream fetch
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		logger.Info("shutting down server", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		trialManager.Shutdown()
		shutdownErr <- err
	}()

	logger.Info("starting server",
		slog.String("addr", srv.Addr),
		slog.String("env", environment.String()))

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logging.LogError(logger, "server error", err)
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logging.LogError(logger, "server shutdown error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
