package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date layout used across the API and files.
const DateLayout = "2006-01-02"

// DateWindow is an inclusive calendar date range.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateWindow normalizes both bounds to calendar dates and rejects
// windows whose start falls after their end.
func NewDateWindow(start, end time.Time) (DateWindow, error) {
	w := DateWindow{Start: DateOf(start), End: DateOf(end)}
	if err := w.Validate(); err != nil {
		return DateWindow{}, err
	}
	return w, nil
}

// Validate returns ErrInvalidParameter when Start > End.
func (w DateWindow) Validate() error {
	if w.Start.After(w.End) {
		return fmt.Errorf("%w: window start %s after end %s", ErrInvalidParameter,
			w.Start.Format(DateLayout), w.End.Format(DateLayout))
	}
	return nil
}

// Contains reports whether d lies within the window, bounds included.
func (w DateWindow) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Extend returns a copy of the window whose start moves back by days.
func (w DateWindow) Extend(days int) DateWindow {
	return DateWindow{Start: w.Start.AddDate(0, 0, -days), End: w.End}
}

// DateOf truncates t to its calendar date (in t's own location) and returns
// that date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
