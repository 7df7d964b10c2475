package pipeline

import (
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
)

// AggregateWeekly resamples a daily series into calendar weeks.
//
// Buckets are 7 days ending on Sunday. Each emitted point carries the close of
// the latest bar inside the bucket and is labeled with the bucket start
// (Sunday minus 6 days, i.e. Monday), never with the last trading day.
// Weeks without observations are absent; nothing is interpolated.
//
// The series is expected to come from Align (ascending dates).
func AggregateWeekly(series models.DailySeries) []models.WeeklyPoint {
	out := make([]models.WeeklyPoint, 0, len(series)/5+1)
	for _, b := range series {
		start := WeekStart(b.Date)
		if n := len(out); n > 0 && out[n-1].WeekStart.Equal(start) {
			out[n-1].Close = b.Close
			continue
		}
		out = append(out, models.WeeklyPoint{WeekStart: start, Close: b.Close})
	}
	return out
}

// WeekStart returns the Monday of the week containing d, as a calendar date.
func WeekStart(d time.Time) time.Time {
	d = models.DateOf(d)
	end := d.AddDate(0, 0, (7-int(d.Weekday()))%7) // Sunday boundary
	return end.AddDate(0, 0, -6)
}
