package dto

import "time"

// WatchlistRequest is the body of POST /api/v1/watchlist and
// PUT /api/v1/watchlist/{id}.
type WatchlistRequest struct {
	Ticker string `json:"ticker" binding:"required" example:"QLD"`
}

// WatchlistEntryResponse is one followed ticker.
type WatchlistEntryResponse struct {
	ID      string         `json:"id" example:"5f2b1c9e-8d7a-4a53-9a51-1f0f4b7e2c11"`
	Ticker  TickerResponse `json:"ticker"`
	AddedAt time.Time      `json:"added_at"`
}

// WatchlistQuoteResponse is the quote of one entry, or the reason it is missing.
type WatchlistQuoteResponse struct {
	ID    string         `json:"id"`
	Quote *QuoteResponse `json:"quote,omitempty"`
	Error string         `json:"error,omitempty"`
}
