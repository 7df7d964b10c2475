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

// quoteLookbackDays covers long weekends so two closes are always in reach.
const quoteLookbackDays = 10

// QuoteService returns the latest price picture of a ticker.
type QuoteService interface {
	Quote(ctx context.Context, ticker string) (*models.Quote, error)
}

type quoteService struct {
	daily    marketdata.Source
	intraday marketdata.IntradaySource
	log      zerolog.Logger
	now      func() time.Time
}

func NewQuoteService(daily marketdata.Source, intraday marketdata.IntradaySource, log zerolog.Logger) QuoteService {
	return &quoteService{daily: daily, intraday: intraday, log: log, now: time.Now}
}

// Quote compares the last two daily closes and attaches the 1-minute series
// of the current session. A failing intraday fetch leaves Intraday empty.
func (s *quoteService) Quote(ctx context.Context, name string) (*models.Quote, error) {
	ticker, err := models.LookupTicker(name)
	if err != nil {
		return nil, err
	}

	today := models.DateOf(s.now())
	bars, err := s.daily.Fetch(ctx, ticker.Symbol, today.AddDate(0, 0, -quoteLookbackDays), today)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", ticker.Name, err)
	}
	series, err := pipeline.Align(bars)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", ticker.Name, err)
	}
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: quote %s: need two closes, have %d", models.ErrDataUnavailable, ticker.Name, len(series))
	}

	last, prev := series[len(series)-1], series[len(series)-2]
	q := &models.Quote{
		Ticker:        ticker,
		Price:         last.Close,
		PreviousClose: prev.Close,
		ChangePct:     (last.Close - prev.Close) / prev.Close * 100,
	}

	if s.intraday != nil {
		pts, err := s.intraday.Intraday(ctx, ticker.Symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("ticker", ticker.Name).Msg("intraday unavailable")
		} else if len(pts) > 0 {
			q.Intraday = pts
			q.SessionStart = pts[0].Time
			q.SessionEnd = pts[0].Time.Add(ticker.SessionLength())
		}
	}
	return q, nil
}
