package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Syncer refreshes the bar store from upstream for a set of tickers.
type Syncer struct {
	upstream Source
	store    BarStore
	tickers  []models.Ticker
	years    int
	parallel int
	name     string
	log      zerolog.Logger
	now      func() time.Time
}

// SyncResult is the outcome for one ticker.
type SyncResult struct {
	Ticker string
	Rows   int
	Err    error
}

// NewSyncer builds a syncer refreshing the last years of every ticker, at
// most parallel tickers at a time.
func NewSyncer(upstream Source, store BarStore, tickers []models.Ticker, years, parallel int, name string, log zerolog.Logger) *Syncer {
	if years < 1 {
		years = 1
	}
	if parallel < 1 {
		parallel = 1
	}
	return &Syncer{
		upstream: upstream,
		store:    store,
		tickers:  tickers,
		years:    years,
		parallel: parallel,
		name:     name,
		log:      log,
		now:      time.Now,
	}
}

// Run refreshes every ticker. A failing ticker does not stop the others;
// all failures are joined into the returned error.
func (s *Syncer) Run(ctx context.Context) ([]SyncResult, error) {
	now := s.now()
	today := models.DateOf(now)
	w := models.DateWindow{Start: today.AddDate(-s.years, 0, 0), End: today}

	// each goroutine owns results[i]
	results := make([]SyncResult, len(s.tickers))

	g := new(errgroup.Group)
	g.SetLimit(s.parallel)

	s.log.Info().Int("tickers", len(s.tickers)).Int("years", s.years).Int("max_parallel", s.parallel).Msg("sync start")

	for i, t := range s.tickers {
		g.Go(func() error {
			start := time.Now()
			res := SyncResult{Ticker: t.Name}

			bars, err := s.upstream.Fetch(ctx, t.Symbol, w.Start, w.End)
			if err == nil {
				res.Rows, err = Persist(ctx, s.store, t.Symbol, w, bars, s.name, now)
			}
			if err != nil {
				res.Err = fmt.Errorf("%s: %w", t.Name, err)
				s.log.Error().Err(err).Str("ticker", t.Name).Msg("sync failed")
			} else {
				s.log.Info().Str("ticker", t.Name).Int("rows", res.Rows).Dur("elapsed", time.Since(start)).Msg("sync done")
			}

			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}
