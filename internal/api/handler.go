package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/investlens/internal/domain/dto"
	"github.com/guttosm/investlens/internal/domain/models"
	"github.com/guttosm/investlens/internal/middleware"
	"github.com/guttosm/investlens/internal/service"
	"github.com/guttosm/investlens/internal/watchlist"
)

// Watchlist is the subset of *watchlist.Watchlist the handlers use.
type Watchlist interface {
	Add(ticker string) (watchlist.Entry, error)
	Update(id, ticker string) (watchlist.Entry, error)
	Remove(id string) error
	List() []watchlist.Entry
	Quotes(ctx context.Context) []watchlist.QuoteResult
}

// Handler provides HTTP handlers for the analysis, quote and watchlist endpoints.
//
// Responsibilities:
//   - Parse and validate incoming HTTP query parameters
//   - Delegate to the service layer
//   - Translate domain results into response DTOs
//   - Map domain errors onto HTTP status codes
type Handler struct {
	analysis  service.AnalysisService
	quotes    service.QuoteService
	watchlist Watchlist
}

// NewHandler constructs a new Handler instance.
func NewHandler(analysis service.AnalysisService, quotes service.QuoteService, wl Watchlist) *Handler {
	return &Handler{analysis: analysis, quotes: quotes, watchlist: wl}
}

// statusFor maps the domain error taxonomy onto HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidParameter):
		return http.StatusBadRequest, "invalid parameter"
	case errors.Is(err, watchlist.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timeout"
	case errors.Is(err, models.ErrDataUnavailable):
		return http.StatusBadGateway, "market data unavailable"
	case errors.Is(err, models.ErrDataIntegrity), errors.Is(err, models.ErrInvalidPrice):
		return http.StatusUnprocessableEntity, "inconsistent market data"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	middleware.AbortWithError(c, status, msg, err)
}

// ListTickers godoc
// @Summary      List supported tickers
// @Description  Returns the fixed instrument catalog
// @Tags         tickers
// @Produce      json
// @Success      200  {array}  dto.TickerResponse
// @Router       /api/v1/tickers [get]
func (h *Handler) ListTickers(c *gin.Context) {
	catalog := models.Catalog()
	out := make([]dto.TickerResponse, len(catalog))
	for i, t := range catalog {
		out[i] = dto.NewTickerResponse(t)
	}
	c.JSON(http.StatusOK, out)
}

// GetAnalysis handles GET /api/v1/analysis requests.
//
// Query Parameters:
//   - ticker (string, required): catalog name, e.g. "S&P500" or "QLD".
//   - years (string, optional): 1..30 or "max". Exclusive with start_year/end_year.
//   - start_year, end_year (int, optional): explicit calendar years, both required together.
//   - ma_window (int, optional): moving average window, 1..200.
//   - threshold (float, optional): highlight threshold in percent, >= 0.
//   - direction (string, optional): up|down|either.
//   - basis (string, optional): weekly|daily highlight series.
//
// GetAnalysis godoc
// @Summary      Analyse a ticker
// @Description  Daily returns, weekly aggregation, moving-average deviation and highlight regions over a date range
// @Tags         analysis
// @Produce      json
// @Param        ticker      query     string  true   "Catalog ticker" example(S&P500)
// @Param        years       query     string  false  "Relative years 1-30 or max" example(5)
// @Param        start_year  query     int     false  "First calendar year" example(2020)
// @Param        end_year    query     int     false  "Last calendar year" example(2023)
// @Param        ma_window   query     int     false  "Moving average window (1-200)" example(100)
// @Param        threshold   query     number  false  "Highlight threshold in percent" example(5)
// @Param        direction   query     string  false  "up, down or either" example(down)
// @Param        basis       query     string  false  "weekly or daily" example(weekly)
// @Success      200         {object}  dto.AnalysisResponse  "Success"
// @Failure      400         {object}  dto.ErrorResponse     "Bad Request"
// @Failure      422         {object}  dto.ErrorResponse     "Inconsistent data"
// @Failure      502         {object}  dto.ErrorResponse     "Upstream unavailable"
// @Router       /api/v1/analysis [get]
func (h *Handler) GetAnalysis(c *gin.Context) {
	// ─── Validate "ticker" param ──────────────────────────────
	ticker := strings.TrimSpace(c.Query("ticker"))
	if ticker == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "ticker is required", nil)
		return
	}

	// ─── Parse the rest ───────────────────────────────────────
	q, err := parseAnalysisQuery(c, ticker)
	if err != nil {
		respondError(c, err)
		return
	}

	// ─── Query service (with request context) ─────────────────
	a, err := h.analysis.Analyze(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAnalysisResponse(a))
}

func parseAnalysisQuery(c *gin.Context, ticker string) (service.Query, error) {
	q := service.Query{
		Ticker:    ticker,
		Direction: c.Query("direction"),
		Basis:     c.Query("basis"),
	}

	switch years := strings.TrimSpace(c.Query("years")); {
	case years == "":
	case strings.EqualFold(years, "max"):
		q.Max = true
	default:
		n, err := strconv.Atoi(years)
		if err != nil {
			return q, fmt.Errorf("%w: years must be an integer or max, got %q", models.ErrInvalidParameter, years)
		}
		q.Years = &n
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"start_year", &q.StartYear},
		{"end_year", &q.EndYear},
		{"ma_window", &q.MAWindow},
	}
	for _, p := range ints {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("%w: %s must be an integer, got %q", models.ErrInvalidParameter, p.name, raw)
		}
		*p.dst = &n
	}

	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, fmt.Errorf("%w: threshold must be a number, got %q", models.ErrInvalidParameter, raw)
		}
		q.Threshold = &v
	}
	return q, nil
}

// GetQuote godoc
// @Summary      Latest quote
// @Description  Current price, change from the previous close and the intraday 1-minute series
// @Tags         quote
// @Produce      json
// @Param        ticker  query     string  true  "Catalog ticker" example(BTC)
// @Success      200     {object}  dto.QuoteResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502     {object}  dto.ErrorResponse  "Upstream unavailable"
// @Router       /api/v1/quote [get]
func (h *Handler) GetQuote(c *gin.Context) {
	ticker := strings.TrimSpace(c.Query("ticker"))
	if ticker == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "ticker is required", nil)
		return
	}

	q, err := h.quotes.Quote(c.Request.Context(), ticker)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}
