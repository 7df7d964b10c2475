// Package ingestion imports historical closes from CSV files into the bar store.
package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/investlens/internal/domain/models"
	"github.com/guttosm/investlens/internal/logger"
	"github.com/guttosm/investlens/internal/marketdata"
	"github.com/guttosm/investlens/internal/storage"
)

const (
	fileSuffix   = ".csv"
	sourcePrefix = "csv:"
	maxParallel  = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.BarsRepository {
	return storage.NewBarsRepository(db)
}

// now is swapped in tests to pin the coverage cap.
var now = time.Now

// job is one input file resolved to its catalog ticker.
type job struct {
	path   string
	ticker models.Ticker
}

// ProcessDirectory imports every "<SYMBOL>.csv" file of dir.
//
//   - dir: directory containing .csv input files.
//   - db:  open *sql.DB (PostgreSQL).
//
// Behavior:
//   - SYMBOL is a catalog provider symbol or display name (e.g. "^GSPC.csv", "QLD.csv").
//   - Unknown symbols fail the whole run before anything is written.
//   - Uses a concurrency limit based on CPU count (min(8, NumCPU)) unless parallel is set.
//   - A file whose date range the sync log already covers is skipped unless force.
//   - Bars are aligned, then replace the stored range of their file.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	// use indirection to allow tests to swap repository constructor
	repo := repoCtor(db)

	jobs, err := collect(dir)
	if err != nil {
		return err
	}

	log := logger.Component("ingestion")
	log.Info().Int("files", len(jobs)).Str("dir", dir).Msg("ingestion start")

	// Concurrency: default to min(maxParallel, NumCPU), or use provided clamp(1..maxParallel)
	limit := maxParallel
	if parallel > 0 {
		limit = min(parallel, maxParallel)
	} else if c := runtime.NumCPU(); c < limit {
		limit = c
	}
	log.Info().Int("max_parallel", limit).Msg("ingestion configured")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, limit)

	for i, j := range jobs {
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(j.path)
			flog := log.With().Int("idx", i+1).Int("total", len(jobs)).Str("file", base).Str("symbol", j.ticker.Symbol).Logger()
			flog.Info().Msg("file start")

			bars, err := parseFile(gctx, j.path)
			if err != nil {
				flog.Error().Err(err).Msg("parse failed")
				return fmt.Errorf("file %s: %w", j.path, err)
			}
			if len(bars) == 0 {
				flog.Warn().Msg("no rows")
				return nil
			}

			w := span(bars)

			// Idempotency: skip if already ingested, unless force
			if !force {
				covered, err := repo.HasCoverage(gctx, j.ticker.Symbol, coverable(w, now()))
				if err != nil {
					flog.Error().Err(err).Msg("check sync log failed")
					return fmt.Errorf("file %s: check sync log: %w", j.path, err)
				}
				if covered {
					flog.Info().Bool("skipped", true).Msg("already ingested")
					return nil
				}
			}

			rows, err := marketdata.Persist(gctx, repo, j.ticker.Symbol, w, bars, sourcePrefix+base, now())
			if err != nil {
				flog.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("file failed")
				return fmt.Errorf("file %s: %w", j.path, err)
			}
			flog.Info().Int("rows", rows).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}

// collect lists the input files of dir in name order and resolves their tickers.
func collect(dir string) ([]job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var (
		jobs    []job
		unknown []string
	)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), fileSuffix) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		t, err := models.LookupTicker(name)
		if err != nil {
			unknown = append(unknown, e.Name())
			continue
		}
		jobs = append(jobs, job{path: filepath.Join(dir, e.Name()), ticker: t})
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown symbols in file names: %s", strings.Join(unknown, ", "))
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no %s files in %s", fileSuffix, dir)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].path < jobs[k].path })
	return jobs, nil
}

// span is the calendar range of bars, which need not be sorted.
func span(bars []models.Bar) models.DateWindow {
	w := models.DateWindow{Start: models.DateOf(bars[0].Date), End: models.DateOf(bars[0].Date)}
	for _, b := range bars[1:] {
		d := models.DateOf(b.Date)
		if d.Before(w.Start) {
			w.Start = d
		}
		if d.After(w.End) {
			w.End = d
		}
	}
	return w
}

// coverable caps w the way the sync log records it, so a file ending today
// still matches its own earlier import.
func coverable(w models.DateWindow, at time.Time) models.DateWindow {
	if yesterday := models.DateOf(at).AddDate(0, 0, -1); w.End.After(yesterday) {
		w.End = yesterday
	}
	if w.End.Before(w.Start) {
		w.End = w.Start
	}
	return w
}
