package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
)

// monday is 2024-01-01, a Monday.
var monday = models.Date(2024, time.January, 1)

func day(offset int) time.Time { return monday.AddDate(0, 0, offset) }

// consecutive builds one bar per calendar day starting at day(offset).
func consecutive(offset int, closes ...float64) models.DailySeries {
	out := make(models.DailySeries, len(closes))
	for i, c := range closes {
		out[i] = models.Bar{Date: day(offset + i), Close: c}
	}
	return out
}

func approx(t *testing.T, what string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s: got %v want %v", what, got, want)
	}
}
