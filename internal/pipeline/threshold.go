package pipeline

import (
	"fmt"
	"math"

	"github.com/guttosm/investlens/internal/domain/models"
)

// ValidateThreshold returns ErrInvalidParameter for negative or NaN thresholds.
func ValidateThreshold(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return fmt.Errorf("%w: threshold %v must be a non-negative percentage", models.ErrInvalidParameter, t)
	}
	return nil
}

// Qualifies reports whether a return is a notable move:
// up needs r >= t, down needs r <= -t, either needs |r| >= t.
func Qualifies(returnPct, threshold float64, dir models.Direction) bool {
	if dir == models.DirectionEither {
		return math.Abs(returnPct) >= threshold
	}
	return dir.Sign()*returnPct >= threshold
}

// Classify flags every period of a return series.
func Classify(points []models.ReturnPoint, threshold float64, dir models.Direction) ([]models.ThresholdFlag, error) {
	if err := validateClassifier(threshold, dir); err != nil {
		return nil, err
	}
	out := make([]models.ThresholdFlag, len(points))
	for i, p := range points {
		out[i] = models.ThresholdFlag{
			Date:      p.Date,
			ReturnPct: p.ReturnPct,
			Qualifies: Qualifies(p.ReturnPct, threshold, dir),
		}
	}
	return out, nil
}

// Notable returns the subsequence of periods that qualify. The input series is
// left untouched; the result only drives presentation marks.
func Notable(points []models.ReturnPoint, threshold float64, dir models.Direction) ([]models.ReturnPoint, error) {
	if err := validateClassifier(threshold, dir); err != nil {
		return nil, err
	}
	out := make([]models.ReturnPoint, 0)
	for _, p := range points {
		if Qualifies(p.ReturnPct, threshold, dir) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Regions turns qualifying flags into chart spans of span days each
// (7 for weeks, 1 for days).
func Regions(flags []models.ThresholdFlag, span int) []models.HighlightRegion {
	out := make([]models.HighlightRegion, 0)
	for _, f := range flags {
		if !f.Qualifies {
			continue
		}
		out = append(out, models.HighlightRegion{Start: f.Date, End: f.Date.AddDate(0, 0, span-1)})
	}
	return out
}

func validateClassifier(threshold float64, dir models.Direction) error {
	if err := ValidateThreshold(threshold); err != nil {
		return err
	}
	if !dir.Valid() {
		return fmt.Errorf("%w: unknown direction %q", models.ErrInvalidParameter, dir)
	}
	return nil
}
