package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/investlens/config"
	"github.com/guttosm/investlens/internal/api"
	"github.com/guttosm/investlens/internal/domain/models"
	"github.com/guttosm/investlens/internal/logger"
	"github.com/guttosm/investlens/internal/marketdata"
	"github.com/guttosm/investlens/internal/pipeline"
	"github.com/guttosm/investlens/internal/scheduler"
	"github.com/guttosm/investlens/internal/service"
	"github.com/guttosm/investlens/internal/storage"
	"github.com/guttosm/investlens/internal/watchlist"
)

// Components is the dependency graph shared by every run mode.
type Components struct {
	Repo      storage.BarsRepository
	Upstream  *marketdata.YahooSource
	Source    *marketdata.StoreSource
	Analysis  service.AnalysisService
	Quotes    service.QuoteService
	Watchlist *watchlist.Watchlist
	Syncer    *marketdata.Syncer
}

// NewComponents wires the market data, service and watchlist layers on top of db.
func NewComponents(cfg config.Config, db *sql.DB) (*Components, error) {
	repo := storage.NewBarsRepository(db)

	upstream := marketdata.NewYahooSource(
		marketdata.WithBaseURL(cfg.Market.BaseURL),
		marketdata.WithTimeout(cfg.Market.Timeout),
		marketdata.WithRateLimit(cfg.Market.RateLimit),
		marketdata.WithLogger(logger.Component("yahoo")),
	)

	// Analyses read through the bar store; quotes need the live day and go upstream.
	source := marketdata.NewStoreSource(repo, upstream, marketdata.SourceName, logger.Component("store"))

	direction, err := models.ParseDirection(cfg.Analysis.Direction)
	if err != nil {
		return nil, fmt.Errorf("analysis direction: %w", err)
	}
	analysis := service.NewAnalysisService(
		source,
		pipeline.NewCache(cfg.Analysis.CacheSize, cfg.Analysis.CacheTTL),
		service.Defaults{
			LookbackDays: cfg.Analysis.LookbackDays,
			MAWindow:     cfg.Analysis.MAWindow,
			Threshold:    cfg.Analysis.Threshold,
			Direction:    direction,
		},
		logger.Component("analysis"),
	)
	quotes := service.NewQuoteService(upstream, upstream, logger.Component("quote"))

	wl, err := watchlist.New(quotes, logger.Component("watchlist"), watchlist.DefaultSeed...)
	if err != nil {
		return nil, fmt.Errorf("seed watchlist: %w", err)
	}

	syncer := marketdata.NewSyncer(upstream, repo, models.Catalog(), cfg.Sync.Years, cfg.Sync.Parallel,
		marketdata.SourceName, logger.Component("sync"))

	return &Components{
		Repo:      repo,
		Upstream:  upstream,
		Source:    source,
		Analysis:  analysis,
		Quotes:    quotes,
		Watchlist: wl,
		Syncer:    syncer,
	}, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Wires the bar store, market data sources, services and watchlist.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Starts the bar store refresh scheduler when SYNC_CRON is set.
//   - Provides a cleanup function to stop the scheduler and close the DB.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	c, err := NewComponents(cfg, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(c.Analysis, c.Quotes, c.Watchlist)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	api.NewHealthHandler(db.PingContext).Register(router)

	var sched *scheduler.Scheduler
	if cfg.Sync.Cron != "" {
		sched, err = scheduler.New(cfg.Sync.Cron, c.Syncer, logger.Component("scheduler"))
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		sched.Start()
	}

	// Cleanup resources on shutdown
	cleanup := func() {
		if sched != nil {
			sched.Stop()
		}
		_ = db.Close()
	}

	return router, cleanup, nil
}
