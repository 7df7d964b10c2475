package models

import "time"

// Bar is one observed closing price for a calendar date.
//
// Fields:
//   - Date: calendar date normalized to UTC midnight (see DateOf).
//   - Close: closing price, always > 0 once ingested.
type Bar struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Key returns the period key used by range filtering.
func (b Bar) Key() time.Time { return b.Date }

// Point returns the bar as a generic dated value.
func (b Bar) Point() Point { return Point{Date: b.Date, Value: b.Close} }

// DailySeries is an ordered sequence of bars with unique ascending dates.
// Gaps are allowed (markets may be closed).
type DailySeries []Bar

// Points projects the series onto dated values for return calculation.
func (s DailySeries) Points() []Point {
	out := make([]Point, len(s))
	for i, b := range s {
		out[i] = b.Point()
	}
	return out
}

// Point is a generic dated numeric value.
type Point struct {
	Date  time.Time
	Value float64
}

func (p Point) Key() time.Time { return p.Date }

// ReturnPoint carries the percentage change of Value from the preceding
// point of the same series. The head of a series never has one.
type ReturnPoint struct {
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	ReturnPct float64   `json:"return_pct"`
}

func (r ReturnPoint) Key() time.Time { return r.Date }

// WeeklyPoint is the last close observed within [WeekStart, WeekStart+6].
// WeekStart is always the Monday of the calendar week.
type WeeklyPoint struct {
	WeekStart time.Time `json:"week_start"`
	Close     float64   `json:"close"`
}

func (w WeeklyPoint) Key() time.Time { return w.WeekStart }

// Point returns the weekly close as a dated value keyed by the week start.
func (w WeeklyPoint) Point() Point { return Point{Date: w.WeekStart, Value: w.Close} }

// WeekEnd returns the Sunday closing the week.
func (w WeeklyPoint) WeekEnd() time.Time { return w.WeekStart.AddDate(0, 0, 6) }

// MovingAveragePoint holds the trailing simple moving average ending at Date
// and the percentage deviation of Close from it.
type MovingAveragePoint struct {
	Date         time.Time `json:"date"`
	Close        float64   `json:"close"`
	MA           float64   `json:"ma"`
	DeviationPct float64   `json:"deviation_pct"`
}

func (m MovingAveragePoint) Key() time.Time { return m.Date }

// ThresholdFlag marks whether the period starting at Date is a notable move.
type ThresholdFlag struct {
	Date      time.Time `json:"date"`
	ReturnPct float64   `json:"return_pct"`
	Qualifies bool      `json:"qualifies"`
}

func (f ThresholdFlag) Key() time.Time { return f.Date }

// HighlightRegion is an inclusive date span to mark on a chart.
type HighlightRegion struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (h HighlightRegion) Key() time.Time { return h.Start }
