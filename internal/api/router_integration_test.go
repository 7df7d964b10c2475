//go:build integration
// +build integration

package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/investlens/config"
	"github.com/guttosm/investlens/internal/app"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "investlens",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=investlens sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "investlens")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func openAndMigrate(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := app.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedWeekdays stores one close per weekday of [from, to] for symbol and
// records the range as synced. It returns how many of them fall in year.
func seedWeekdays(t *testing.T, db *sql.DB, symbol string, from, to time.Time, year int) int {
	t.Helper()
	inYear := 0
	px := 100.0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		px *= 1.001
		if _, err := db.Exec(`INSERT INTO bars (symbol, bar_date, close) VALUES ($1, $2, $3)`, symbol, d, px); err != nil {
			t.Fatalf("seed bar %s: %v", d.Format("2006-01-02"), err)
		}
		if d.Year() == year {
			inYear++
		}
	}
	if _, err := db.Exec(`INSERT INTO sync_log (symbol, range_start, range_end, row_count, source) VALUES ($1, $2, $3, $4, 'seed')`,
		symbol, from, to, inYear); err != nil {
		t.Fatalf("seed sync_log: %v", err)
	}
	return inYear
}

func TestAPI_E2E_Analysis_FromStore(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()
	db := openAndMigrate(t, dsn)
	defer db.Close()

	want := seedWeekdays(t, db, "QLD",
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
		2022)

	// Any upstream call fails, so a 200 proves the store served the range.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	// Point application config to containerized DB
	config.LoadConfig()
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig.Postgres.Host = host
	p, _ := nat.ParsePort(port.Port())
	config.AppConfig.Postgres.Port = int(p)
	config.AppConfig.Postgres.User = "postgres"
	config.AppConfig.Postgres.Password = "postgres"
	config.AppConfig.Postgres.DBName = "investlens"
	config.AppConfig.Postgres.SSLMode = "disable"
	config.AppConfig.Postgres.URL = config.DSN(config.AppConfig.Postgres)
	config.AppConfig.Market.BaseURL = upstream.URL
	config.AppConfig.Sync.Cron = ""

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis?ticker=QLD&start_year=2022&end_year=2022&ma_window=20&threshold=1&direction=either", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var body struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Daily []struct {
			Date         string   `json:"date"`
			ReturnPct    *float64 `json:"return_pct"`
			DeviationPct *float64 `json:"deviation_pct"`
		} `json:"daily"`
		Weekly []struct {
			WeekStart string `json:"week_start"`
		} `json:"weekly"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Start != "2022-01-01" || body.End != "2022-12-31" {
		t.Fatalf("unexpected window %s..%s", body.Start, body.End)
	}
	if len(body.Daily) != want {
		t.Fatalf("expected %d daily rows, got %d", want, len(body.Daily))
	}
	// newest first, and the lookback makes every visible row fully defined
	if body.Daily[0].Date != "2022-12-30" {
		t.Fatalf("unexpected newest row %s", body.Daily[0].Date)
	}
	last := body.Daily[len(body.Daily)-1]
	if last.ReturnPct == nil || last.DeviationPct == nil {
		t.Fatalf("oldest visible row should be defined: %+v", last)
	}
	if len(body.Weekly) == 0 {
		t.Fatalf("expected weekly rows")
	}

	// a range outside the store goes upstream, which is down
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analysis?ticker=SOXL&years=1", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 from failing upstream, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz: %d", w.Code)
	}
}
