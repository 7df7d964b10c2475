package dto

import (
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
)

// TickerResponse describes one catalog entry.
type TickerResponse struct {
	Name         string  `json:"name" example:"S&P500"`
	Symbol       string  `json:"symbol" example:"^GSPC"`
	StartYear    int     `json:"start_year" example:"1928"`
	SessionHours float64 `json:"session_hours" example:"6.5"`
}

func NewTickerResponse(t models.Ticker) TickerResponse {
	return TickerResponse{Name: t.Name, Symbol: t.Symbol, StartYear: t.StartYear, SessionHours: t.SessionHours}
}

// DailyRowResponse is one row of the daily table. Raw percentages are null
// where undefined; the *_text fields are display strings.
type DailyRowResponse struct {
	Date          string   `json:"date" example:"2024-06-07"`
	Close         float64  `json:"close" example:"101.5"`
	CloseText     string   `json:"close_text" example:"101.50"`
	ReturnPct     *float64 `json:"return_pct" example:"3.25"`
	ReturnText    string   `json:"return_text,omitempty" example:"+3.25%"`
	DeviationPct  *float64 `json:"deviation_pct" example:"-1.2"`
	DeviationText string   `json:"deviation_text,omitempty" example:"-1.20%"`
}

// WeeklyRowResponse is one row of the weekly table.
type WeeklyRowResponse struct {
	WeekStart  string  `json:"week_start" example:"2024-06-03"`
	WeekEnd    string  `json:"week_end" example:"2024-06-09"`
	Close      float64 `json:"close" example:"101.5"`
	CloseText  string  `json:"close_text" example:"101.50"`
	ReturnPct  float64 `json:"return_pct" example:"-5.4"`
	ReturnText string  `json:"return_text" example:"-5.40%"`
}

// HighlightResponse is an inclusive date span to mark on a chart.
type HighlightResponse struct {
	Start string `json:"start" example:"2024-06-03"`
	End   string `json:"end" example:"2024-06-09"`
}

// AnalysisResponse represents the JSON structure returned by the
// GET /api/v1/analysis endpoint. Tables are ordered newest first.
type AnalysisResponse struct {
	Ticker     TickerResponse      `json:"ticker"`
	Start      string              `json:"start" example:"2023-06-11"`
	End        string              `json:"end" example:"2024-06-10"`
	MAWindow   int                 `json:"ma_window" example:"100"`
	Threshold  float64             `json:"threshold" example:"5"`
	Direction  string              `json:"direction" example:"down"`
	Basis      string              `json:"basis" example:"weekly"`
	Daily      []DailyRowResponse  `json:"daily"`
	Weekly     []WeeklyRowResponse `json:"weekly"`
	Highlights []HighlightResponse `json:"highlights"`
	ComputedAt time.Time           `json:"computed_at"`
}

// NewAnalysisResponse maps a domain analysis onto the API contract.
func NewAnalysisResponse(a *models.Analysis) AnalysisResponse {
	resp := AnalysisResponse{
		Ticker:     NewTickerResponse(a.Ticker),
		Start:      a.Window.Start.Format(models.DateLayout),
		End:        a.Window.End.Format(models.DateLayout),
		MAWindow:   a.MAWindow,
		Threshold:  a.Threshold,
		Direction:  string(a.Direction),
		Basis:      string(a.Basis),
		Daily:      make([]DailyRowResponse, len(a.Daily)),
		Weekly:     make([]WeeklyRowResponse, len(a.Weekly)),
		Highlights: make([]HighlightResponse, len(a.Highlights)),
		ComputedAt: a.ComputedAt,
	}
	for i, r := range a.Daily {
		resp.Daily[i] = DailyRowResponse{
			Date:          r.Date.Format(models.DateLayout),
			Close:         r.Close,
			CloseText:     FormatPrice(r.Close),
			ReturnPct:     r.ReturnPct,
			ReturnText:    formatPctPtr(r.ReturnPct),
			DeviationPct:  r.DeviationPct,
			DeviationText: formatPctPtr(r.DeviationPct),
		}
	}
	for i, r := range a.Weekly {
		resp.Weekly[i] = WeeklyRowResponse{
			WeekStart:  r.WeekStart.Format(models.DateLayout),
			WeekEnd:    r.WeekStart.AddDate(0, 0, 6).Format(models.DateLayout),
			Close:      r.Close,
			CloseText:  FormatPrice(r.Close),
			ReturnPct:  r.ReturnPct,
			ReturnText: FormatPct(r.ReturnPct),
		}
	}
	for i, h := range a.Highlights {
		resp.Highlights[i] = HighlightResponse{
			Start: h.Start.Format(models.DateLayout),
			End:   h.End.Format(models.DateLayout),
		}
	}
	return resp
}
