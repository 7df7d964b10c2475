package pipeline

import (
	"fmt"

	"github.com/guttosm/investlens/internal/domain/models"
)

// Params are the user-chosen settings of one analysis.
type Params struct {
	Window    models.DateWindow
	MAWindow  int
	Threshold float64
	Direction models.Direction
	Basis     models.Basis
}

// Validate rejects out-of-bounds parameters before any computation runs.
func (p Params) Validate() error {
	if err := p.Window.Validate(); err != nil {
		return err
	}
	if err := ValidateMAWindow(p.MAWindow); err != nil {
		return err
	}
	if err := validateClassifier(p.Threshold, p.Direction); err != nil {
		return err
	}
	if p.Basis != models.BasisWeekly && p.Basis != models.BasisDaily {
		return fmt.Errorf("%w: unknown highlight basis %q", models.ErrInvalidParameter, p.Basis)
	}
	return nil
}

// Result holds every derived series trimmed to the requested window.
// It is shared by reference (e.g. through Cache) and must be treated as read-only.
type Result struct {
	Daily         models.DailySeries
	DailyReturns  []models.ReturnPoint
	Weekly        []models.WeeklyPoint
	WeeklyReturns []models.ReturnPoint
	MovingAverage []models.MovingAveragePoint
	Flags         []models.ThresholdFlag
	Highlights    []models.HighlightRegion
}

// Run derives all views from raw bars.
//
// Flow:
//
//	bars → Align → {DailyReturns, AggregateWeekly → WeeklyReturns, MovingAverage}
//	     → Classify (on the basis series) → FilterRange on every output
//
// Bars before p.Window.Start act as lookback so that the first return and the
// moving average are defined at the window start; they never reach the output.
func Run(bars []models.Bar, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	series, err := Align(bars)
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}

	dailyReturns, err := DailyReturns(series)
	if err != nil {
		return nil, fmt.Errorf("daily returns: %w", err)
	}

	weekly := AggregateWeekly(series)
	weeklyReturns, err := WeeklyReturns(weekly)
	if err != nil {
		return nil, fmt.Errorf("weekly returns: %w", err)
	}

	ma, err := MovingAverage(series, p.MAWindow)
	if err != nil {
		return nil, fmt.Errorf("moving average: %w", err)
	}

	basis, span := weeklyReturns, 7
	if p.Basis == models.BasisDaily {
		basis, span = dailyReturns, 1
	}
	flags, err := Classify(FilterRange(basis, p.Window), p.Threshold, p.Direction)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	return &Result{
		Daily:         FilterDaily(series, p.Window),
		DailyReturns:  FilterRange(dailyReturns, p.Window),
		Weekly:        FilterRange(weekly, p.Window),
		WeeklyReturns: FilterRange(weeklyReturns, p.Window),
		MovingAverage: FilterRange(ma, p.Window),
		Flags:         flags,
		Highlights:    Regions(flags, span),
	}, nil
}

// DailyRows joins closes, returns and deviations by date, oldest first.
func (r *Result) DailyRows() []models.DailyRow {
	returns := make(map[int64]float64, len(r.DailyReturns))
	for _, p := range r.DailyReturns {
		returns[p.Date.Unix()] = p.ReturnPct
	}
	deviations := make(map[int64]float64, len(r.MovingAverage))
	for _, p := range r.MovingAverage {
		deviations[p.Date.Unix()] = p.DeviationPct
	}

	rows := make([]models.DailyRow, len(r.Daily))
	for i, b := range r.Daily {
		row := models.DailyRow{Date: b.Date, Close: b.Close}
		if v, ok := returns[b.Date.Unix()]; ok {
			row.ReturnPct = &v
		}
		if v, ok := deviations[b.Date.Unix()]; ok {
			row.DeviationPct = &v
		}
		rows[i] = row
	}
	return rows
}

// WeeklyRows lists weeks that have a return (the first aggregated week of the
// fetched series has none), oldest first.
func (r *Result) WeeklyRows() []models.WeeklyRow {
	rows := make([]models.WeeklyRow, len(r.WeeklyReturns))
	for i, p := range r.WeeklyReturns {
		rows[i] = models.WeeklyRow{WeekStart: p.Date, Close: p.Value, ReturnPct: p.ReturnPct}
	}
	return rows
}
