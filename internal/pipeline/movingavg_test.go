package pipeline

import (
	"errors"
	"testing"

	"github.com/guttosm/investlens/internal/domain/models"
)

func TestMovingAverage_Scenario(t *testing.T) {
	out, err := MovingAverage(consecutive(0, 10, 20, 30, 40, 50), 3)
	if err != nil {
		t.Fatalf("ma: %v", err)
	}
	wantMA := []float64{20, 30, 40}
	wantDev := []float64{50, 100.0 / 3, 25}
	if len(out) != 3 {
		t.Fatalf("want 3 points, got %d", len(out))
	}
	for i, p := range out {
		approx(t, "ma", p.MA, wantMA[i])
		approx(t, "deviation", p.DeviationPct, wantDev[i])
		if !p.Date.Equal(day(i + 2)) {
			t.Fatalf("point %d dated %v", i, p.Date)
		}
	}
}

func TestMovingAverage_Lengths(t *testing.T) {
	s := consecutive(0, 3, 4, 5, 6, 7, 8, 9)
	for w := 1; w <= 10; w++ {
		out, err := MovingAverage(s, w)
		if err != nil {
			t.Fatalf("w=%d: %v", w, err)
		}
		want := len(s) - w + 1
		if want < 0 {
			want = 0
		}
		if len(out) != want {
			t.Fatalf("w=%d: want %d got %d", w, want, len(out))
		}
	}
}

func TestMovingAverage_WindowOneIsIdentity(t *testing.T) {
	s := consecutive(0, 101.25, 99.5, 100.75, 3.3)
	out, err := MovingAverage(s, 1)
	if err != nil {
		t.Fatalf("ma: %v", err)
	}
	for i, p := range out {
		if p.MA != s[i].Close || p.DeviationPct != 0 {
			t.Fatalf("point %d: ma=%v dev=%v close=%v", i, p.MA, p.DeviationPct, s[i].Close)
		}
	}
}

func TestMovingAverage_SinglePoint(t *testing.T) {
	s := consecutive(0, 42)
	out, err := MovingAverage(s, 1)
	if err != nil || len(out) != 1 || out[0].DeviationPct != 0 {
		t.Fatalf("w=1: out=%+v err=%v", out, err)
	}
	out, err = MovingAverage(s, 2)
	if err != nil || len(out) != 0 {
		t.Fatalf("w=2: out=%+v err=%v", out, err)
	}
}

func TestMovingAverage_InvalidWindow(t *testing.T) {
	for _, w := range []int{0, -1, 201} {
		if _, err := MovingAverage(consecutive(0, 1, 2), w); !errors.Is(err, models.ErrInvalidParameter) {
			t.Fatalf("w=%d: want ErrInvalidParameter, got %v", w, err)
		}
	}
	if _, err := MovingAverage(nil, 200); err != nil {
		t.Fatalf("w=200 on empty series: %v", err)
	}
}
