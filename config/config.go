package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, the Postgres bar store, the upstream market data
// provider and analysis defaults.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=investlens
//	MARKET_BASE_URL=https://query1.finance.yahoo.com
//	ANALYSIS_MA_WINDOW=100
//	SYNC_CRON="0 30 22 * * 1-5"
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Market   MarketConfig   // Upstream market data provider
	Analysis AnalysisConfig // Pipeline defaults and result cache
	Sync     SyncConfig     // Bar store refresh
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// MarketConfig configures the chart API client.
type MarketConfig struct {
	BaseURL   string        // e.g., "https://query1.finance.yahoo.com"
	Timeout   time.Duration // per-request HTTP timeout
	RateLimit int           // upstream requests per second
}

// AnalysisConfig holds defaults applied when a request omits a parameter.
type AnalysisConfig struct {
	LookbackDays int           // minimum calendar days fetched before the window start
	CacheSize    int           // result cache capacity; 0 disables caching
	CacheTTL     time.Duration // how long a cached result stays fresh
	MAWindow     int           // default moving average window
	Threshold    float64       // default highlight threshold (%)
	Direction    string        // default highlight direction: up|down|either
}

// SyncConfig drives the periodic bar store refresh in API mode.
type SyncConfig struct {
	Cron     string // cron spec with seconds; empty disables the scheduler
	Years    int    // years of history refreshed per ticker
	Parallel int    // concurrent tickers
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or out of range, validateConfig() will
//     terminate the app with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "investlens")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("MARKET_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("MARKET_TIMEOUT", "30s")
	viper.SetDefault("MARKET_RATE_LIMIT", 5)

	viper.SetDefault("ANALYSIS_LOOKBACK_DAYS", 200)
	viper.SetDefault("ANALYSIS_CACHE_SIZE", 64)
	viper.SetDefault("ANALYSIS_CACHE_TTL", "1m")
	viper.SetDefault("ANALYSIS_MA_WINDOW", 100)
	viper.SetDefault("ANALYSIS_THRESHOLD", 5.0)
	viper.SetDefault("ANALYSIS_DIRECTION", "down")

	viper.SetDefault("SYNC_CRON", "0 30 22 * * 1-5")
	viper.SetDefault("SYNC_YEARS", 5)
	viper.SetDefault("SYNC_PARALLEL", 4)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Market: MarketConfig{
			BaseURL:   viper.GetString("MARKET_BASE_URL"),
			Timeout:   viper.GetDuration("MARKET_TIMEOUT"),
			RateLimit: viper.GetInt("MARKET_RATE_LIMIT"),
		},
		Analysis: AnalysisConfig{
			LookbackDays: viper.GetInt("ANALYSIS_LOOKBACK_DAYS"),
			CacheSize:    viper.GetInt("ANALYSIS_CACHE_SIZE"),
			CacheTTL:     viper.GetDuration("ANALYSIS_CACHE_TTL"),
			MAWindow:     viper.GetInt("ANALYSIS_MA_WINDOW"),
			Threshold:    viper.GetFloat64("ANALYSIS_THRESHOLD"),
			Direction:    viper.GetString("ANALYSIS_DIRECTION"),
		},
		Sync: SyncConfig{
			Cron:     viper.GetString("SYNC_CRON"),
			Years:    viper.GetInt("SYNC_YEARS"),
			Parallel: viper.GetInt("SYNC_PARALLEL"),
		},
	}

	AppConfig.Postgres.URL = DSN(AppConfig.Postgres)

	validateConfig()
}

// DSN builds the PostgreSQL connection string used by database/sql.
func DSN(pg PostgresConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pg.User,
		pg.Password,
		pg.Host,
		pg.Port,
		pg.DBName,
		pg.SSLMode,
	)
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing or invalid.
func validateConfig() {
	if bad := problems(AppConfig); len(bad) > 0 {
		log.Fatalf("❌ Invalid configuration: %v\n", bad)
	}
}

// problems lists the keys of cfg that are missing or out of range.
func problems(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if cfg.Market.BaseURL == "" {
		missing = append(missing, "MARKET_BASE_URL")
	}
	if cfg.Market.RateLimit <= 0 {
		missing = append(missing, "MARKET_RATE_LIMIT")
	}
	if cfg.Analysis.MAWindow < 1 || cfg.Analysis.MAWindow > 200 {
		missing = append(missing, "ANALYSIS_MA_WINDOW")
	}
	if cfg.Analysis.Threshold < 0 {
		missing = append(missing, "ANALYSIS_THRESHOLD")
	}
	switch cfg.Analysis.Direction {
	case "up", "down", "either":
	default:
		missing = append(missing, "ANALYSIS_DIRECTION")
	}

	return missing
}
