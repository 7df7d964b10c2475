package pipeline

import (
	"fmt"

	"github.com/guttosm/investlens/internal/domain/models"
)

// Returns computes the period-over-period percentage change of an ordered
// series. The result has max(0, n-1) points mapped onto points 1..n-1, in
// percent (3.25 means 3.25%).
//
// A preceding value of exactly zero fails with ErrInvalidPrice.
func Returns(points []models.Point) ([]models.ReturnPoint, error) {
	if len(points) < 2 {
		return []models.ReturnPoint{}, nil
	}

	out := make([]models.ReturnPoint, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Value
		if prev == 0 {
			return nil, fmt.Errorf("%w: zero value on %s precedes %s", models.ErrInvalidPrice,
				points[i-1].Date.Format(models.DateLayout), points[i].Date.Format(models.DateLayout))
		}
		out = append(out, models.ReturnPoint{
			Date:      points[i].Date,
			Value:     points[i].Value,
			ReturnPct: (points[i].Value - prev) / prev * 100,
		})
	}
	return out, nil
}

// DailyReturns is Returns over the closes of a daily series.
func DailyReturns(series models.DailySeries) ([]models.ReturnPoint, error) {
	return Returns(series.Points())
}

// WeeklyReturns is Returns over weekly closes, keyed by week start.
func WeeklyReturns(weeks []models.WeeklyPoint) ([]models.ReturnPoint, error) {
	points := make([]models.Point, len(weeks))
	for i, w := range weeks {
		points[i] = w.Point()
	}
	return Returns(points)
}
