package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
)

func TestErrorResponse_ErrorForm(t *testing.T) {
	cases := []struct {
		name string
		resp ErrorResponse
		want string
	}{
		{name: "message only", resp: ErrorResponse{Message: "analysis failed"}, want: "analysis failed"},
		{name: "with details", resp: ErrorResponse{Message: "invalid parameter", ErrorDetails: "years must be within [1, 30], got 0"},
			want: "invalid parameter: years must be within [1, 30], got 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var err error = tc.resp
			if err.Error() != tc.want {
				t.Fatalf("want %q got %q", tc.want, err.Error())
			}
		})
	}
}

func TestNewErrorResponse_WrapsDomainError(t *testing.T) {
	before := time.Now().UTC()
	cause := fmt.Errorf("%w: ma_window must be within [1, 200], got 0", models.ErrInvalidParameter)
	e := NewErrorResponse("invalid parameter", cause)

	if e.Message != "invalid parameter" || e.ErrorDetails != cause.Error() {
		t.Fatalf("unexpected %+v", e)
	}
	if e.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp not UTC: %v", e.Timestamp.Location())
	}
	if e.Timestamp.Before(before) || time.Since(e.Timestamp) > time.Second {
		t.Fatalf("timestamp %v not stamped now", e.Timestamp)
	}
	// the response travels through c.Error as an error value
	var asErr error = e
	if !strings.HasPrefix(asErr.Error(), "invalid parameter: ") {
		t.Fatalf("error form %q", asErr.Error())
	}
}

func TestNewErrorResponse_NilCauseOmitsDetails(t *testing.T) {
	e := NewErrorResponse("analysis failed", nil)
	if e.ErrorDetails != "" || e.Error() != "analysis failed" {
		t.Fatalf("unexpected %+v", e)
	}

	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), `"error"`) {
		t.Fatalf("empty details must be omitted: %s", raw)
	}
	var back map[string]any
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	ts, _ := back["timestamp"].(string)
	if !strings.HasSuffix(ts, "Z") {
		t.Fatalf("timestamp %q not in UTC", ts)
	}
	if errors.Is(e, models.ErrInvalidParameter) {
		t.Fatalf("plain response must not match domain sentinels")
	}
}
