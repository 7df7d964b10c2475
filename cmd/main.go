package main

//
//  @title           investlens API
//  @version         1.0
//  @description     Market time-series analysis: returns, weekly aggregates, moving-average deviation and notable-move highlights.
//  @termsOfService  https://github.com/guttosm/investlens
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/investlens
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        analysis
//  @tag.description Derived views of one ticker over a date range
//
//  @tag.name        quote
//  @tag.description Latest prices and intraday series
//
//  @tag.name        watchlist
//  @tag.description Followed tickers
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/investlens/config"
	_ "github.com/guttosm/investlens/docs" // swagger docs
	"github.com/guttosm/investlens/internal/app"
	"github.com/guttosm/investlens/internal/ingestion"
	"github.com/guttosm/investlens/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the investlens application.
//
// Modes (selected via --mode flag):
//   - migrate: Applies the embedded database migrations.
//   - ingest:  Imports <SYMBOL>.csv bar files from --dir into the bar store.
//   - sync:    Refreshes the bar store from the market data provider once.
//   - api:     Starts the REST API and the periodic bar store refresh.
//
// Flags:
//   - --mode:     Execution mode. Default: "api".
//   - --dir:      Directory containing .csv input files. Default: "./data/input".
//   - --parallel: Files or tickers processed concurrently (0 = default).
//   - --force:    Re-import files whose range is already recorded.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: migrate, ingest, sync or api")
	dir := flag.String("dir", "./data/input", "Directory with <SYMBOL>.csv files")
	parallel := flag.Int("parallel", 0, "How many files or tickers to process concurrently (0=default)")
	force := flag.Bool("force", false, "Re-import files even if their range is already stored")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	if err := run(ctx, *mode, *dir, *parallel, *force, *port); err != nil {
		logger.L().Fatal().Err(err).Str("mode", *mode).Msg("run failed")
	}
}

// run executes one mode to completion. API mode returns after graceful shutdown.
func run(ctx context.Context, mode, dir string, parallel int, force bool, port string) error {
	cfg := config.AppConfig

	switch mode {
	case "migrate", "ingest", "sync":
		// Direct DB connection for batch modes
		db, err := app.InitPostgres(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		switch mode {
		case "migrate":
			return app.Migrate(ctx, db)

		case "ingest":
			logger.L().Info().Str("dir", dir).Msg("running ingestion")
			if err := ingestion.ProcessDirectory(ctx, dir, db, parallel, force); err != nil {
				return err
			}
			logger.L().Info().Msg("ingestion completed successfully")
			return nil

		default:
			if parallel > 0 {
				cfg.Sync.Parallel = parallel
			}
			c, err := app.NewComponents(cfg, db)
			if err != nil {
				return err
			}
			results, err := c.Syncer.Run(ctx)
			logger.L().Info().Int("tickers", len(results)).Msg("sync completed")
			return err
		}

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}

		server := startServer(router, port)
		gracefulShutdown(ctx, server, cleanup)
		return nil

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}
