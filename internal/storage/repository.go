package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/investlens/internal/domain/models"
	pq "github.com/lib/pq"
)

// BarsRepository defines contract for DB operations on raw daily bars.
//
// Only raw closes are persisted. Derived series are always recomputed.
type BarsRepository interface {
	InsertBarsBatch(ctx context.Context, symbol string, bars []models.Bar) error
	ReplaceBars(ctx context.Context, symbol string, w models.DateWindow, bars []models.Bar) error
	GetBars(ctx context.Context, symbol string, w models.DateWindow) ([]models.Bar, error)
	HasCoverage(ctx context.Context, symbol string, w models.DateWindow) (bool, error)
	UpsertSyncLog(ctx context.Context, symbol string, w models.DateWindow, rowCount int, source string) error
	DeleteBarsBySymbol(ctx context.Context, symbol string) error
}

type barsRepository struct {
	db *sql.DB
}

func NewBarsRepository(db *sql.DB) BarsRepository {
	return &barsRepository{db: db}
}

// InsertBarsBatch bulk loads bars for one symbol in a single transaction.
// Rows already present for the same (symbol, date) make the copy fail.
func (r *barsRepository) InsertBarsBatch(ctx context.Context, symbol string, bars []models.Bar) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := copyBars(ctx, tx, symbol, bars); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ReplaceBars swaps every stored bar of symbol inside w for bars, atomically.
func (r *barsRepository) ReplaceBars(ctx context.Context, symbol string, w models.DateWindow, bars []models.Bar) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM bars WHERE symbol = $1 AND bar_date >= $2 AND bar_date <= $3`,
		symbol, w.Start, w.End,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete range: %w", err)
	}

	if err := copyBars(ctx, tx, symbol, bars); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// copyBars streams bars through COPY FROM STDIN on tx. The caller owns the
// transaction and rolls it back on error.
func copyBars(ctx context.Context, tx *sql.Tx, symbol string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("bars", "symbol", "bar_date", "close"))
	if err != nil {
		return err
	}

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, b.Date, b.Close); err != nil {
			_ = stmt.Close()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return err
	}
	return stmt.Close()
}

// GetBars returns the stored bars of symbol inside w, oldest first.
func (r *barsRepository) GetBars(ctx context.Context, symbol string, w models.DateWindow) ([]models.Bar, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT bar_date, close
		FROM bars
		WHERE symbol = $1 AND bar_date >= $2 AND bar_date <= $3
		ORDER BY bar_date
	`, symbol, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Bar
	for rows.Next() {
		var (
			d  time.Time
			px float64
		)
		if err := rows.Scan(&d, &px); err != nil {
			return nil, err
		}
		out = append(out, models.Bar{Date: models.DateOf(d), Close: px})
	}
	return out, rows.Err()
}

// HasCoverage reports whether a single sync_log entry spans all of w.
func (r *barsRepository) HasCoverage(ctx context.Context, symbol string, w models.DateWindow) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sync_log WHERE symbol = $1 AND range_start <= $2 AND range_end >= $3)`,
		symbol, w.Start, w.End,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertSyncLog records that w was loaded for symbol from source.
//
// Entries overlapping or adjacent to w are merged with it into a single row,
// so a range growing one day at a time keeps one entry and HasCoverage can
// still answer from it. rowCount is the number of bars written for w; the
// stored row_count covers the whole merged range.
func (r *barsRepository) UpsertSyncLog(ctx context.Context, symbol string, w models.DateWindow, rowCount int, source string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	merged := w
	if err := tx.QueryRowContext(ctx, `
		SELECT LEAST(MIN(range_start), $2::date), GREATEST(MAX(range_end), $3::date)
		FROM sync_log
		WHERE symbol = $1 AND range_start <= $3::date + 1 AND range_end >= $2::date - 1
	`, symbol, w.Start, w.End).Scan(&merged.Start, &merged.End); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("merge range: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sync_log WHERE symbol = $1 AND range_start >= $2 AND range_end <= $3`,
		symbol, merged.Start, merged.End,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("drop merged ranges: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sync_log (symbol, range_start, range_end, row_count, source)
		VALUES ($1, $2, $3, $4 + (
			SELECT COUNT(*) FROM bars
			WHERE symbol = $1 AND bar_date >= $2 AND bar_date <= $3
			  AND (bar_date < $5 OR bar_date > $6)
		), $7)
	`, symbol, merged.Start, merged.End, rowCount, w.Start, w.End, source); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// DeleteBarsBySymbol removes every bar and coverage entry of symbol.
func (r *barsRepository) DeleteBarsBySymbol(ctx context.Context, symbol string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bars WHERE symbol = $1`, symbol); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sync_log WHERE symbol = $1`, symbol); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
