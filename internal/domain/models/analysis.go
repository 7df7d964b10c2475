package models

import "time"

// DailyRow joins the daily views for one date. ReturnPct is nil on the first
// bar of the fetched series and DeviationPct is nil while the moving-average
// window is still filling.
type DailyRow struct {
	Date         time.Time
	Close        float64
	ReturnPct    *float64
	DeviationPct *float64
}

// WeeklyRow is one aggregated week with its return from the previous week.
type WeeklyRow struct {
	WeekStart time.Time
	Close     float64
	ReturnPct float64
}

// Analysis is the derived view of one ticker over one window.
// Rows are ordered newest first, the way tables are displayed.
type Analysis struct {
	Ticker     Ticker
	Window     DateWindow
	MAWindow   int
	Threshold  float64
	Direction  Direction
	Basis      Basis
	Daily      []DailyRow
	Weekly     []WeeklyRow
	Highlights []HighlightRegion
	ComputedAt time.Time
}

// IntradayPoint is one intraday price sample.
type IntradayPoint struct {
	Time  time.Time
	Price float64
}

// Quote is the latest price picture of a ticker.
type Quote struct {
	Ticker        Ticker
	Price         float64
	PreviousClose float64
	ChangePct     float64
	Intraday      []IntradayPoint
	SessionStart  time.Time
	SessionEnd    time.Time
}
