// Package pipeline derives returns, weekly aggregates, moving-average
// deviations and notable-move flags from a daily closing series.
//
// Every function is pure: inputs are never mutated and each stage returns a
// freshly allocated series, so results can be shared read-only between
// goroutines. Nothing in this package logs; violations surface as errors
// wrapping the sentinels in the models package.
package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/guttosm/investlens/internal/domain/models"
)

// Align normalizes raw bars into a DailySeries: dates truncated to calendar
// days, ascending order, duplicates collapsed.
//
// Behavior:
//   - Identical duplicates (same date, same close) collapse silently.
//   - Duplicates with different closes fail with ErrDataIntegrity.
//   - Non-positive or non-finite closes fail with ErrInvalidPrice.
//   - Empty input yields an empty series.
func Align(bars []models.Bar) (models.DailySeries, error) {
	if len(bars) == 0 {
		return models.DailySeries{}, nil
	}

	sorted := make([]models.Bar, len(bars))
	for i, b := range bars {
		if b.Close <= 0 || math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			return nil, fmt.Errorf("%w: close %v on %s", models.ErrInvalidPrice, b.Close, b.Date.Format(models.DateLayout))
		}
		sorted[i] = models.Bar{Date: models.DateOf(b.Date), Close: b.Close}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	out := make(models.DailySeries, 0, len(sorted))
	for _, b := range sorted {
		if n := len(out); n > 0 && out[n-1].Date.Equal(b.Date) {
			if out[n-1].Close != b.Close {
				return nil, fmt.Errorf("%w: %s has closes %v and %v", models.ErrDataIntegrity,
					b.Date.Format(models.DateLayout), out[n-1].Close, b.Close)
			}
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
