// Package service resolves user queries into pipeline runs over market data.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
	"github.com/guttosm/investlens/internal/marketdata"
	"github.com/guttosm/investlens/internal/pipeline"
	"github.com/rs/zerolog"
)

// SharedFetchTimeout bounds a fetch shared by concurrent identical requests.
// It runs detached from any one request so a caller that leaves does not
// fail the others.
const SharedFetchTimeout = 30 * time.Second

// Relative lookback bounds, in years.
const (
	MinYears = 1
	MaxYears = 30
)

// Defaults are applied to every Query field left empty.
type Defaults struct {
	LookbackDays int
	MAWindow     int
	Threshold    float64
	Direction    models.Direction
}

// Query is one analysis request as a client expresses it.
//
// The date range is exactly one of:
//   - Years: the last N years up to today (1..30),
//   - Max: the full catalog history of the ticker,
//   - StartYear/EndYear: Jan 1 of StartYear through Dec 31 of EndYear.
//
// With none of them set the last year is used. Numeric fields are pointers
// so an explicit zero is validated instead of taken as absent.
type Query struct {
	Ticker    string
	Years     *int
	Max       bool
	StartYear *int
	EndYear   *int
	MAWindow  *int     // nil means default
	Threshold *float64 // nil means default
	Direction string   // empty means default
	Basis     string   // empty means weekly
}

// AnalysisService defines business logic for analysing one ticker.
type AnalysisService interface {
	Analyze(ctx context.Context, q Query) (*models.Analysis, error)
}

type analysisService struct {
	source        marketdata.Source
	cache         *pipeline.Cache
	defaults      Defaults
	sharedTimeout time.Duration
	log           zerolog.Logger
	now           func() time.Time
}

// NewAnalysisService wires the analysis flow. cache may be nil.
func NewAnalysisService(source marketdata.Source, cache *pipeline.Cache, d Defaults, log zerolog.Logger) AnalysisService {
	return &analysisService{
		source:        source,
		cache:         cache,
		defaults:      d,
		sharedTimeout: SharedFetchTimeout,
		log:           log,
		now:           time.Now,
	}
}

func (s *analysisService) Analyze(ctx context.Context, q Query) (*models.Analysis, error) {
	start := time.Now()

	ticker, err := models.LookupTicker(q.Ticker)
	if err != nil {
		return nil, err
	}
	window, err := ResolveWindow(ticker, q, s.now())
	if err != nil {
		return nil, err
	}
	p, err := s.params(q, window)
	if err != nil {
		return nil, err
	}

	compute := func(fctx context.Context) (*pipeline.Result, error) {
		fetch := window.Extend(s.lookbackDays(p.MAWindow))
		bars, err := s.source.Fetch(fctx, ticker.Symbol, fetch.Start, fetch.End)
		if err != nil {
			return nil, err
		}
		return pipeline.Run(bars, p)
	}

	var res *pipeline.Result
	if s.cache != nil {
		res, err = s.cache.DoContext(ctx, pipeline.CacheKey{Ticker: ticker.Symbol, Params: p}, func() (*pipeline.Result, error) {
			shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sharedTimeout)
			defer cancel()
			return compute(shared)
		})
	} else {
		res, err = compute(ctx)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("ticker", ticker.Name).Msg("analysis failed")
		return nil, fmt.Errorf("analyze %s: %w", ticker.Name, err)
	}

	out := &models.Analysis{
		Ticker:     ticker,
		Window:     window,
		MAWindow:   p.MAWindow,
		Threshold:  p.Threshold,
		Direction:  p.Direction,
		Basis:      p.Basis,
		Daily:      newestFirst(res.DailyRows()),
		Weekly:     newestFirst(res.WeeklyRows()),
		Highlights: res.Highlights,
		ComputedAt: s.now(),
	}

	s.log.Info().
		Str("ticker", ticker.Name).
		Str("start", window.Start.Format(models.DateLayout)).
		Str("end", window.End.Format(models.DateLayout)).
		Int("daily_rows", len(out.Daily)).
		Int("weekly_rows", len(out.Weekly)).
		Int("highlights", len(out.Highlights)).
		Dur("elapsed", time.Since(start)).
		Msg("analysis done")
	return out, nil
}

// params applies defaults and validates everything before any fetch.
func (s *analysisService) params(q Query, w models.DateWindow) (pipeline.Params, error) {
	p := pipeline.Params{
		Window:    w,
		MAWindow:  s.defaults.MAWindow,
		Threshold: s.defaults.Threshold,
		Direction: s.defaults.Direction,
	}
	if q.MAWindow != nil {
		p.MAWindow = *q.MAWindow
	}
	if q.Threshold != nil {
		p.Threshold = *q.Threshold
	}
	if q.Direction != "" {
		d, err := models.ParseDirection(q.Direction)
		if err != nil {
			return p, err
		}
		p.Direction = d
	}
	b, err := models.ParseBasis(q.Basis)
	if err != nil {
		return p, err
	}
	p.Basis = b

	return p, p.Validate()
}

// lookbackDays is the calendar buffer fetched before the window so that the
// first return and the moving average are defined on the first visible day.
func (s *analysisService) lookbackDays(maWindow int) int {
	// maWindow trading days plus weekends, holidays and one extra week.
	need := 2*maWindow + 7
	if s.defaults.LookbackDays > need {
		return s.defaults.LookbackDays
	}
	return need
}

// ResolveWindow turns the range fields of q into an inclusive date window
// for ticker, relative to now.
func ResolveWindow(t models.Ticker, q Query, now time.Time) (models.DateWindow, error) {
	today := models.DateOf(now)
	explicit := q.StartYear != nil || q.EndYear != nil

	modes := 0
	for _, set := range []bool{q.Years != nil, q.Max, explicit} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return models.DateWindow{}, fmt.Errorf("%w: use only one of years, max or start_year/end_year", models.ErrInvalidParameter)
	}

	switch {
	case q.Max:
		return models.NewDateWindow(models.Date(t.StartYear, time.January, 1), today)

	case explicit:
		if q.StartYear == nil || q.EndYear == nil {
			return models.DateWindow{}, fmt.Errorf("%w: start_year and end_year must both be set", models.ErrInvalidParameter)
		}
		from, to := *q.StartYear, *q.EndYear
		if from > to {
			return models.DateWindow{}, fmt.Errorf("%w: start_year %d after end_year %d", models.ErrInvalidParameter, from, to)
		}
		if from < t.StartYear {
			return models.DateWindow{}, fmt.Errorf("%w: %s has no data before %d", models.ErrInvalidParameter, t.Name, t.StartYear)
		}
		if to > today.Year() {
			return models.DateWindow{}, fmt.Errorf("%w: end_year %d is in the future", models.ErrInvalidParameter, to)
		}
		end := models.Date(to, time.December, 31)
		if end.After(today) {
			end = today
		}
		return models.NewDateWindow(models.Date(from, time.January, 1), end)

	default:
		years := MinYears
		if q.Years != nil {
			years = *q.Years
		}
		if years < MinYears || years > MaxYears {
			return models.DateWindow{}, fmt.Errorf("%w: years must be within [%d, %d], got %d", models.ErrInvalidParameter, MinYears, MaxYears, years)
		}
		return models.NewDateWindow(today.AddDate(0, 0, 1).AddDate(-years, 0, 0), today)
	}
}

func newestFirst[T any](rows []T) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}
