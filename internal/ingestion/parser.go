package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
)

// expectedHeaders enforces strict column ordering for bar files.
// If the header doesn't match (order + count, case-insensitive), ingestion must fail.
var expectedHeaders = []string{"Date", "Close"}

// parseFile opens, validates and parses one bar file.
// It fails on:
//   - header not matching expected order/length
//   - malformed dates or prices, with the offending line number
//   - non-positive closes (ErrInvalidPrice)
//   - unrecoverable I/O errors
//
// It tolerates:
//   - empty close cells (the day is skipped, like a null provider close)
//   - blank lines
func parseFile(ctx context.Context, path string) ([]models.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parseBars(ctx, f)
}

func parseBars(ctx context.Context, src io.Reader) ([]models.Bar, error) {
	r := csv.NewReader(src)
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // allow variable but we’ll check explicitly

	// Validate headers strictly.
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if !strings.EqualFold(h, expectedHeaders[i]) {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	var bars []models.Bar
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		line, _ := r.FieldPos(0)
		if len(rec) != len(expectedHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(expectedHeaders), len(rec))
		}

		bar, ok, err := recordToBar(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if ok {
			bars = append(bars, bar)
		}
	}
	return bars, nil
}

// recordToBar converts one validated record. ok is false for an empty close.
//
// Columns:
//
//	0 Date  → Bar.Date (DATE, "2006-01-02")
//	1 Close → Bar.Close (float, comma or dot decimals)
func recordToBar(rec []string) (models.Bar, bool, error) {
	var b models.Bar

	s := strings.TrimSpace(rec[0])
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return b, false, fmt.Errorf("invalid Date %q: %v", s, err)
	}
	b.Date = d

	s = strings.TrimSpace(rec[1])
	if s == "" {
		return b, false, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return b, false, fmt.Errorf("invalid Close %q: %v", s, err)
	}
	if v <= 0 {
		return b, false, fmt.Errorf("%w: close %v on %s", models.ErrInvalidPrice, v, d.Format(models.DateLayout))
	}
	b.Close = v
	return b, true, nil
}
