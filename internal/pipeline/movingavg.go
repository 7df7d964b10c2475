package pipeline

import (
	"fmt"

	"github.com/guttosm/investlens/internal/domain/models"
)

const (
	// MinMAWindow and MaxMAWindow bound the moving-average window, inclusive.
	MinMAWindow = 1
	MaxMAWindow = 200
)

// ValidateMAWindow returns ErrInvalidParameter when w is outside [1, 200].
func ValidateMAWindow(w int) error {
	if w < MinMAWindow || w > MaxMAWindow {
		return fmt.Errorf("%w: moving average window %d outside [%d, %d]",
			models.ErrInvalidParameter, w, MinMAWindow, MaxMAWindow)
	}
	return nil
}

// MovingAverage computes a trailing simple moving average of window w and the
// percentage deviation of each close from it.
//
// Point i averages closes [i-w+1 .. i]. The first w-1 points have no complete
// window and are left out of the result, so its length is max(0, n-w+1).
func MovingAverage(series models.DailySeries, w int) ([]models.MovingAveragePoint, error) {
	if err := ValidateMAWindow(w); err != nil {
		return nil, err
	}
	if len(series) < w {
		return []models.MovingAveragePoint{}, nil
	}

	out := make([]models.MovingAveragePoint, 0, len(series)-w+1)
	for i := w - 1; i < len(series); i++ {
		// summed per window so w=1 reproduces the close exactly
		sum := 0.0
		for _, b := range series[i-w+1 : i+1] {
			sum += b.Close
		}
		ma := sum / float64(w)
		if ma == 0 {
			return nil, fmt.Errorf("%w: zero moving average on %s", models.ErrInvalidPrice,
				series[i].Date.Format(models.DateLayout))
		}
		out = append(out, models.MovingAveragePoint{
			Date:         series[i].Date,
			Close:        series[i].Close,
			MA:           ma,
			DeviationPct: (series[i].Close - ma) / ma * 100,
		})
	}
	return out, nil
}
