package marketdata

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
)

var errBoom = errors.New("boom")

// memStore is an in-memory BarStore.
type memStore struct {
	mu        sync.Mutex
	bars      map[string][]models.Bar
	coverage  map[string][]models.DateWindow
	sources   map[string]string
	coverErr  error
	getErr    error
	replErr   error
	replCalls int
	getCalls  int
}

func newMemStore() *memStore {
	return &memStore{
		bars:     map[string][]models.Bar{},
		coverage: map[string][]models.DateWindow{},
		sources:  map[string]string{},
	}
}

func (m *memStore) GetBars(_ context.Context, symbol string, w models.DateWindow) ([]models.Bar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []models.Bar
	for _, b := range m.bars[symbol] {
		if w.Contains(b.Date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) HasCoverage(_ context.Context, symbol string, w models.DateWindow) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.coverErr != nil {
		return false, m.coverErr
	}
	for _, c := range m.coverage[symbol] {
		if !c.Start.After(w.Start) && !c.End.Before(w.End) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ReplaceBars(_ context.Context, symbol string, w models.DateWindow, bars []models.Bar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replCalls++
	if m.replErr != nil {
		return m.replErr
	}
	var kept []models.Bar
	for _, b := range m.bars[symbol] {
		if !w.Contains(b.Date) {
			kept = append(kept, b)
		}
	}
	m.bars[symbol] = append(kept, bars...)
	return nil
}

func (m *memStore) UpsertSyncLog(_ context.Context, symbol string, w models.DateWindow, _ int, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coverage[symbol] = append(m.coverage[symbol], w)
	m.sources[symbol] = source
	return nil
}

// stubSource returns canned bars per symbol and counts calls.
type stubSource struct {
	mu    sync.Mutex
	bars  map[string][]models.Bar
	errs  map[string]error
	calls int
}

func (s *stubSource) Fetch(_ context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err := s.errs[symbol]; err != nil {
		return nil, err
	}
	w := models.DateWindow{Start: start, End: end}
	var out []models.Bar
	for _, b := range s.bars[symbol] {
		if w.Contains(b.Date) {
			out = append(out, b)
		}
	}
	return out, nil
}

// recordingSource is a stubSource that keeps every requested window.
type recordingSource struct {
	stubSource
	windows []models.DateWindow
}

func (s *recordingSource) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	s.mu.Lock()
	s.windows = append(s.windows, models.DateWindow{Start: start, End: end})
	s.mu.Unlock()
	return s.stubSource.Fetch(ctx, symbol, start, end)
}

func daily(start time.Time, closes ...float64) []models.Bar {
	out := make([]models.Bar, len(closes))
	for i, c := range closes {
		out[i] = models.Bar{Date: start.AddDate(0, 0, i), Close: c}
	}
	return out
}
