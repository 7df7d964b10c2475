package marketdata

import (
	"context"
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
	"github.com/guttosm/investlens/internal/pipeline"
	"github.com/rs/zerolog"
)

// StoreSource serves bars from the bar store when the sync log covers the
// requested range and falls back to the upstream source otherwise, writing
// what it fetched back to the store.
//
// Coverage is never recorded past yesterday, so the live day is always
// fetched fresh. A range ending today whose history is covered is served
// from the store with only the live tail fetched upstream.
type StoreSource struct {
	store    BarStore
	upstream Source
	name     string
	log      zerolog.Logger
	now      func() time.Time
}

// NewStoreSource wraps upstream with a read-through store. name is recorded
// as the sync log source of bars written back.
func NewStoreSource(store BarStore, upstream Source, name string, log zerolog.Logger) *StoreSource {
	return &StoreSource{
		store:    store,
		upstream: upstream,
		name:     name,
		log:      log,
		now:      time.Now,
	}
}

// Fetch implements Source.
func (s *StoreSource) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	w, err := models.NewDateWindow(start, end)
	if err != nil {
		return nil, err
	}

	if bars, ok := s.fromStore(ctx, symbol, w); ok {
		return bars, nil
	}

	if hist, tail, ok := splitLive(w, s.now()); ok {
		if bars, ok := s.fromStore(ctx, symbol, hist); ok {
			live, err := s.upstream.Fetch(ctx, symbol, tail.Start, tail.End)
			if err != nil {
				return nil, err
			}
			return append(bars, live...), nil
		}
	}

	bars, err := s.upstream.Fetch(ctx, symbol, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	s.writeBack(ctx, symbol, w, bars)
	return bars, nil
}

// fromStore returns the stored bars of w when the sync log covers it.
// Store errors are logged and reported as a miss.
func (s *StoreSource) fromStore(ctx context.Context, symbol string, w models.DateWindow) ([]models.Bar, bool) {
	covered, err := s.store.HasCoverage(ctx, symbol, w)
	if err != nil {
		// The store is an optimization; degrade to upstream.
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("coverage lookup failed")
		return nil, false
	}
	if !covered {
		return nil, false
	}
	bars, err := s.store.GetBars(ctx, symbol, w)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("store read failed")
		return nil, false
	}
	s.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("served from store")
	return bars, true
}

// splitLive cuts w at yesterday into the part coverage can hold and the live
// tail. ok is false when w lies entirely on one side.
func splitLive(w models.DateWindow, now time.Time) (hist, tail models.DateWindow, ok bool) {
	yesterday := models.DateOf(now).AddDate(0, 0, -1)
	if !w.End.After(yesterday) || w.Start.After(yesterday) {
		return hist, tail, false
	}
	hist = models.DateWindow{Start: w.Start, End: yesterday}
	tail = models.DateWindow{Start: yesterday.AddDate(0, 0, 1), End: w.End}
	return hist, tail, true
}

// writeBack persists bars for w and records coverage up to yesterday.
// Failures are logged and never surface to the caller.
func (s *StoreSource) writeBack(ctx context.Context, symbol string, w models.DateWindow, bars []models.Bar) {
	if _, err := Persist(ctx, s.store, symbol, w, bars, s.name, s.now()); err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("write back failed")
	}
}

// Persist aligns bars, replaces w in the store with them and records the
// covered range, capped at the day before now. It returns the stored count.
func Persist(ctx context.Context, store BarStore, symbol string, w models.DateWindow, bars []models.Bar, source string, now time.Time) (int, error) {
	aligned, err := pipeline.Align(bars)
	if err != nil {
		return 0, err
	}
	if err := store.ReplaceBars(ctx, symbol, w, aligned); err != nil {
		return 0, err
	}

	cov := w
	if yesterday := models.DateOf(now).AddDate(0, 0, -1); cov.End.After(yesterday) {
		cov.End = yesterday
	}
	if cov.Start.After(cov.End) {
		return len(aligned), nil
	}
	if err := store.UpsertSyncLog(ctx, symbol, cov, len(aligned), source); err != nil {
		return len(aligned), err
	}
	return len(aligned), nil
}
