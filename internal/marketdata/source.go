// Package marketdata fetches raw daily closes from the upstream chart API and
// keeps a Postgres read-through copy of them.
package marketdata

import (
	"context"
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
)

// Source returns the daily bars of symbol between start and end, bounds
// included. An empty result is valid. Unknown symbols and an unreachable
// provider fail with models.ErrDataUnavailable.
type Source interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error)
}

// IntradaySource returns the 1-minute prices of the current session.
type IntradaySource interface {
	Intraday(ctx context.Context, symbol string) ([]models.IntradayPoint, error)
}

// BarStore is the persistence subset the read-through source and the syncer
// need. storage.BarsRepository satisfies it.
type BarStore interface {
	GetBars(ctx context.Context, symbol string, w models.DateWindow) ([]models.Bar, error)
	HasCoverage(ctx context.Context, symbol string, w models.DateWindow) (bool, error)
	ReplaceBars(ctx context.Context, symbol string, w models.DateWindow, bars []models.Bar) error
	UpsertSyncLog(ctx context.Context, symbol string, w models.DateWindow, rowCount int, source string) error
}
