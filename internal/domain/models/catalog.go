package models

import (
	"fmt"
	"strings"
	"time"
)

// Ticker describes one instrument of the fixed catalog.
//
// Fields:
//   - Name: display name used by clients (e.g., "S&P500").
//   - Symbol: provider symbol (e.g., "^GSPC").
//   - StartYear: first year with usable daily history.
//   - SessionHours: length of a trading session, 24 for round-the-clock markets.
type Ticker struct {
	Name         string  `json:"name" example:"S&P500"`
	Symbol       string  `json:"symbol" example:"^GSPC"`
	StartYear    int     `json:"start_year" example:"1928"`
	SessionHours float64 `json:"session_hours" example:"6.5"`
}

// SessionLength returns the trading session as a duration.
func (t Ticker) SessionLength() time.Duration {
	return time.Duration(t.SessionHours * float64(time.Hour))
}

var catalog = []Ticker{
	{Name: "S&P500", Symbol: "^GSPC", StartYear: 1928, SessionHours: 6.5},
	{Name: "NASDAQ100", Symbol: "^NDX", StartYear: 1985, SessionHours: 6.5},
	{Name: "QLD", Symbol: "QLD", StartYear: 2006, SessionHours: 6.5},
	{Name: "SOXL", Symbol: "SOXL", StartYear: 2010, SessionHours: 6.5},
	{Name: "BTC", Symbol: "BTC-USD", StartYear: 2014, SessionHours: 24},
	{Name: "ETH", Symbol: "ETH-USD", StartYear: 2017, SessionHours: 24},
	{Name: "GOLD", Symbol: "GC=F", StartYear: 2000, SessionHours: 24},
	{Name: "USD/JPY", Symbol: "JPY=X", StartYear: 1996, SessionHours: 24},
}

// Catalog returns a copy of the supported tickers in display order.
func Catalog() []Ticker {
	out := make([]Ticker, len(catalog))
	copy(out, catalog)
	return out
}

// LookupTicker resolves a display name (case-insensitive) or a provider symbol.
func LookupTicker(name string) (Ticker, error) {
	n := strings.TrimSpace(name)
	for _, t := range catalog {
		if strings.EqualFold(t.Name, n) || t.Symbol == n {
			return t, nil
		}
	}
	return Ticker{}, fmt.Errorf("%w: unknown ticker %q", ErrInvalidParameter, name)
}
