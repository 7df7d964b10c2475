// Package watchlist keeps the set of tickers followed on the realtime view.
// Each entry is independent and addressed by an opaque ID.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/investlens/internal/domain/models"
	"github.com/guttosm/investlens/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned for IDs that are not in the list.
var ErrNotFound = errors.New("watchlist entry not found")

// DefaultSeed is the initial content of a new watchlist.
var DefaultSeed = []string{"S&P500", "NASDAQ100", "QLD", "SOXL", "BTC", "ETH"}

// maxParallelQuotes bounds concurrent upstream quote requests.
const maxParallelQuotes = 4

// Entry is one followed ticker.
type Entry struct {
	ID      string        `json:"id"`
	Ticker  models.Ticker `json:"ticker"`
	AddedAt time.Time     `json:"added_at"`
}

// QuoteResult pairs an entry with its quote or the error that prevented it.
type QuoteResult struct {
	Entry Entry
	Quote *models.Quote
	Err   error
}

// Watchlist is safe for concurrent use.
type Watchlist struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string

	quotes service.QuoteService
	log    zerolog.Logger
	now    func() time.Time
}

// New builds a watchlist holding seed in order.
func New(quotes service.QuoteService, log zerolog.Logger, seed ...string) (*Watchlist, error) {
	w := &Watchlist{
		entries: make(map[string]Entry),
		quotes:  quotes,
		log:     log,
		now:     time.Now,
	}
	for _, name := range seed {
		if _, err := w.Add(name); err != nil {
			return nil, fmt.Errorf("seed %q: %w", name, err)
		}
	}
	return w, nil
}

// Add appends ticker and returns the new entry.
func (w *Watchlist) Add(ticker string) (Entry, error) {
	t, err := models.LookupTicker(ticker)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{ID: uuid.NewString(), Ticker: t, AddedAt: w.now()}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries[e.ID] = e
	w.order = append(w.order, e.ID)
	return e, nil
}

// Update points entry id at another ticker, keeping its position.
func (w *Watchlist) Update(id, ticker string) (Entry, error) {
	t, err := models.LookupTicker(ticker)
	if err != nil {
		return Entry{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.Ticker = t
	w.entries[id] = e
	return e, nil
}

// Remove deletes entry id.
func (w *Watchlist) Remove(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.entries[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(w.entries, id)
	for i, cur := range w.order {
		if cur == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the entries in insertion order.
func (w *Watchlist) List() []Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Entry, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entries[id])
	}
	return out
}

// Quotes fetches a quote for every entry in parallel. One failing entry
// does not affect the others; its error is reported in its result.
func (w *Watchlist) Quotes(ctx context.Context) []QuoteResult {
	entries := w.List()
	results := make([]QuoteResult, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelQuotes)
	for i, e := range entries {
		g.Go(func() error {
			q, err := w.quotes.Quote(gctx, e.Ticker.Name)
			if err != nil {
				w.log.Warn().Err(err).Str("id", e.ID).Str("ticker", e.Ticker.Name).Msg("watchlist quote failed")
			}
			results[i] = QuoteResult{Entry: e, Quote: q, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
