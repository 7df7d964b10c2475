package dto

import (
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
)

// IntradayPointResponse is one 1-minute sample.
type IntradayPointResponse struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price" example:"5432.1"`
}

// QuoteResponse represents the JSON structure returned by GET /api/v1/quote.
type QuoteResponse struct {
	Ticker            TickerResponse          `json:"ticker"`
	Price             float64                 `json:"price" example:"5432.1"`
	PriceText         string                  `json:"price_text" example:"5432.10"`
	PreviousClose     float64                 `json:"previous_close" example:"5400"`
	PreviousCloseText string                  `json:"previous_close_text" example:"5400.00"`
	ChangePct         float64                 `json:"change_pct" example:"0.59"`
	ChangeText        string                  `json:"change_text" example:"+0.59%"`
	Up                bool                    `json:"up" example:"true"`
	SessionStart      *time.Time              `json:"session_start,omitempty"`
	SessionEnd        *time.Time              `json:"session_end,omitempty"`
	Intraday          []IntradayPointResponse `json:"intraday"`
}

func NewQuoteResponse(q *models.Quote) QuoteResponse {
	resp := QuoteResponse{
		Ticker:            NewTickerResponse(q.Ticker),
		Price:             q.Price,
		PriceText:         FormatPrice(q.Price),
		PreviousClose:     q.PreviousClose,
		PreviousCloseText: FormatPrice(q.PreviousClose),
		ChangePct:         q.ChangePct,
		ChangeText:        FormatPct(q.ChangePct),
		Up:                q.ChangePct >= 0,
		Intraday:          make([]IntradayPointResponse, len(q.Intraday)),
	}
	if !q.SessionStart.IsZero() {
		start, end := q.SessionStart, q.SessionEnd
		resp.SessionStart = &start
		resp.SessionEnd = &end
	}
	for i, p := range q.Intraday {
		resp.Intraday[i] = IntradayPointResponse{Time: p.Time, Price: p.Price}
	}
	return resp
}
