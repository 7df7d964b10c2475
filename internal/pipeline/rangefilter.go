package pipeline

import (
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
)

// Keyed is any derived point with a period key (a date or a week start).
type Keyed interface {
	Key() time.Time
}

// FilterRange keeps the points whose period key lies within w, bounds
// included. It only trims: a lookback buffer must be fetched by the caller.
func FilterRange[T Keyed](series []T, w models.DateWindow) []T {
	out := make([]T, 0, len(series))
	for _, p := range series {
		if w.Contains(p.Key()) {
			out = append(out, p)
		}
	}
	return out
}

// FilterDaily is FilterRange for a DailySeries.
func FilterDaily(series models.DailySeries, w models.DateWindow) models.DailySeries {
	return models.DailySeries(FilterRange([]models.Bar(series), w))
}
