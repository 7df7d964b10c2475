package pipeline

import (
	"errors"
	"testing"

	"github.com/guttosm/investlens/internal/domain/models"
)

func TestReturns_LengthAndFormula(t *testing.T) {
	for n := 0; n <= 6; n++ {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = float64(10 + i*i)
		}
		s := consecutive(0, closes...)
		out, err := DailyReturns(s)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := n - 1
		if want < 0 {
			want = 0
		}
		if len(out) != want {
			t.Fatalf("n=%d: want len %d got %d", n, want, len(out))
		}
		for k, p := range out {
			approx(t, "return", p.ReturnPct, (s[k+1].Close-s[k].Close)/s[k].Close*100)
			if !p.Date.Equal(s[k+1].Date) {
				t.Fatalf("return %d keyed on %v, want %v", k, p.Date, s[k+1].Date)
			}
		}
	}
}

func TestReturns_Scenario(t *testing.T) {
	out, err := DailyReturns(consecutive(0, 100, 105, 94.5))
	if err != nil {
		t.Fatalf("returns: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 returns, got %d", len(out))
	}
	approx(t, "first", out[0].ReturnPct, 5.0)
	approx(t, "second", out[1].ReturnPct, -10.0)
}

func TestReturns_ZeroPredecessor(t *testing.T) {
	points := []models.Point{{Date: day(0), Value: 0}, {Date: day(1), Value: 3}}
	if _, err := Returns(points); !errors.Is(err, models.ErrInvalidPrice) {
		t.Fatalf("want ErrInvalidPrice, got %v", err)
	}
}

func TestWeeklyReturns_KeyedByWeekStart(t *testing.T) {
	weeks := []models.WeeklyPoint{{WeekStart: day(0), Close: 50}, {WeekStart: day(7), Close: 55}}
	out, err := WeeklyReturns(weeks)
	if err != nil {
		t.Fatalf("weekly returns: %v", err)
	}
	if len(out) != 1 || !out[0].Date.Equal(day(7)) {
		t.Fatalf("unexpected: %+v", out)
	}
	approx(t, "weekly", out[0].ReturnPct, 10)
}
