package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"
	_ "time/tzdata" // exchange timezones on minimal images

	"github.com/guttosm/investlens/internal/domain/models"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL of the chart API.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// SourceName is recorded in the sync log for bars loaded from this provider.
	SourceName = "yahoo"
)

// YahooSource implements Source and IntradaySource on top of the public
// Yahoo Finance chart endpoint.
type YahooSource struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// YahooOption configures the YahooSource.
type YahooOption func(*YahooSource)

// WithBaseURL sets a custom base URL. Empty keeps the default.
func WithBaseURL(baseURL string) YahooOption {
	return func(y *YahooSource) {
		if baseURL != "" {
			y.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) YahooOption {
	return func(y *YahooSource) {
		y.httpClient = c
	}
}

// WithTimeout sets the HTTP timeout on the default client.
func WithTimeout(d time.Duration) YahooOption {
	return func(y *YahooSource) {
		if d > 0 {
			y.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) YahooOption {
	return func(y *YahooSource) {
		if requestsPerSecond > 0 {
			y.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithLogger sets a logger.
func WithLogger(l zerolog.Logger) YahooOption {
	return func(y *YahooSource) {
		y.log = l
	}
}

// NewYahooSource creates a chart API client.
func NewYahooSource(opts ...YahooOption) *YahooSource {
	y := &YahooSource{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// chartResponse is the subset of the v8 chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// sample is one non-null close with its exchange-local timestamp.
type sample struct {
	at    time.Time
	close float64
}

// samples pairs timestamps with closes, skipping nulls (holidays, halted
// minutes). Timestamps are placed in the exchange timezone when known.
func (r chartResult) samples() []sample {
	loc := time.UTC
	if r.Meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(r.Meta.ExchangeTimezoneName); err == nil {
			loc = l
		}
	}
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	closes := r.Indicators.Quote[0].Close

	out := make([]sample, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		out = append(out, sample{at: time.Unix(ts, 0).In(loc), close: *closes[i]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at.Before(out[j].at) })
	return out
}

// Fetch returns the daily closes of symbol in [start, end], dated by the
// exchange-local calendar day.
func (y *YahooSource) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	w, err := models.NewDateWindow(start, end)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("period1", strconv.FormatInt(w.Start.Unix(), 10))
	// period2 is exclusive upstream; push it to the end of the last day.
	params.Set("period2", strconv.FormatInt(w.End.AddDate(0, 0, 1).Unix(), 10))
	params.Set("interval", "1d")
	params.Set("events", "history")

	res, err := y.chart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}

	samples := res.samples()
	bars := make([]models.Bar, 0, len(samples))
	for _, s := range samples {
		d := models.DateOf(s.at)
		if !w.Contains(d) {
			continue
		}
		bars = append(bars, models.Bar{Date: d, Close: s.close})
	}

	y.log.Debug().
		Str("symbol", symbol).
		Str("start", w.Start.Format(models.DateLayout)).
		Str("end", w.End.Format(models.DateLayout)).
		Int("bars", len(bars)).
		Msg("daily bars fetched")
	return bars, nil
}

// Intraday returns the 1-minute prices of the latest session of symbol.
func (y *YahooSource) Intraday(ctx context.Context, symbol string) ([]models.IntradayPoint, error) {
	params := url.Values{}
	params.Set("range", "1d")
	params.Set("interval", "1m")

	res, err := y.chart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}

	samples := res.samples()
	out := make([]models.IntradayPoint, len(samples))
	for i, s := range samples {
		out[i] = models.IntradayPoint{Time: s.at, Price: s.close}
	}
	return out, nil
}

// chart performs one rate-limited request and maps every failure to
// models.ErrDataUnavailable.
func (y *YahooSource) chart(ctx context.Context, symbol string, params url.Values) (*chartResult, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", models.ErrDataUnavailable, err)
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.baseURL, url.PathEscape(symbol), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrDataUnavailable, symbol, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %w", models.ErrDataUnavailable, symbol, err)
	}

	var chart chartResponse
	decodeErr := json.Unmarshal(body, &chart)

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("status %d", resp.StatusCode)
		if decodeErr == nil && chart.Chart.Error != nil {
			msg += ": " + chart.Chart.Error.Description
		}
		y.log.Warn().Str("symbol", symbol).Int("status", resp.StatusCode).Msg("chart request failed")
		return nil, fmt.Errorf("%w: %s: %s", models.ErrDataUnavailable, symbol, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %s: decode: %w", models.ErrDataUnavailable, symbol, decodeErr)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", models.ErrDataUnavailable, symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		// A known symbol with nothing in range.
		return &chartResult{}, nil
	}
	return &chart.Chart.Result[0], nil
}
