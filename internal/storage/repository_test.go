package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/investlens/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*barsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &barsRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

var (
	d1 = models.Date(2024, time.January, 2)
	d2 = models.Date(2024, time.January, 3)
	w  = models.DateWindow{Start: d1, End: d2}
)

func sampleBars() []models.Bar {
	return []models.Bar{{Date: d1, Close: 100}, {Date: d2, Close: 101.5}}
}

func TestNewBarsRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewBarsRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

func TestGetBars_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := sqlmock.NewRows([]string{"bar_date", "close"}).
		AddRow(d1, 100.0).
		AddRow(d2, 101.5)
	mock.ExpectQuery(`SELECT bar_date, close\s+FROM bars\s+WHERE symbol = \$1`).
		WithArgs("^GSPC", d1, d2).
		WillReturnRows(rows)

	got, err := repo.GetBars(context.Background(), "^GSPC", w)
	if err != nil {
		t.Fatalf("GetBars: %v", err)
	}
	if len(got) != 2 || !got[1].Date.Equal(d2) || got[1].Close != 101.5 {
		t.Fatalf("unexpected bars %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetBars_QueryError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT bar_date, close`).WillReturnError(dummyErr{})
	if _, err := repo.GetBars(context.Background(), "X", w); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSyncLog_SQLMock(t *testing.T) {
	cases := []struct {
		name   string
		exists bool
	}{
		{name: "covered", exists: true},
		{name: "not covered", exists: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM sync_log WHERE symbol = $1 AND range_start <= $2 AND range_end >= $3)")).
				WithArgs("QLD", d1, d2).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists))
			ok, err := repo.HasCoverage(context.Background(), "QLD", w)
			if err != nil || ok != tc.exists {
				t.Fatalf("HasCoverage: ok=%v err=%v", ok, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestUpsertSyncLog_SQLMock(t *testing.T) {
	earlier := models.Date(2023, time.December, 1)

	cases := []struct {
		name        string
		mergedStart time.Time
		mergeErr    error
		wantErr     bool
	}{
		{name: "no neighbours", mergedStart: d1},
		{name: "extends an earlier range", mergedStart: earlier},
		{name: "merge query fails", mergeErr: dummyErr{}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			mock.ExpectBegin()
			merge := mock.ExpectQuery(`SELECT LEAST\(MIN\(range_start\), \$2::date\), GREATEST\(MAX\(range_end\), \$3::date\)`).
				WithArgs("QLD", d1, d2)
			if tc.mergeErr != nil {
				merge.WillReturnError(tc.mergeErr)
				mock.ExpectRollback()
			} else {
				merge.WillReturnRows(sqlmock.NewRows([]string{"least", "greatest"}).AddRow(tc.mergedStart, d2))
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sync_log WHERE symbol = $1 AND range_start >= $2 AND range_end <= $3`)).
					WithArgs("QLD", tc.mergedStart, d2).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO sync_log \(symbol, range_start, range_end, row_count, source\)`).
					WithArgs("QLD", tc.mergedStart, d2, 2, d1, d2, "yahoo").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			}

			err := repo.UpsertSyncLog(context.Background(), "QLD", w, 2, "yahoo")
			if (err != nil) != tc.wantErr {
				t.Fatalf("UpsertSyncLog err=%v, wantErr=%v", err, tc.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestDeleteBarsBySymbol_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bars WHERE symbol = $1")).
		WithArgs("QLD").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sync_log WHERE symbol = $1")).
		WithArgs("QLD").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteBarsBySymbol(context.Background(), "QLD"); err != nil {
		t.Fatalf("DeleteBarsBySymbol: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteBarsBySymbol_RollbackOnError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bars WHERE symbol = $1")).WillReturnError(dummyErr{})
	mock.ExpectRollback()

	if err := repo.DeleteBarsBySymbol(context.Background(), "QLD"); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertBarsBatch_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	// pq.CopyIn is driver specific; sqlmock sees a prepared statement with
	// one Exec per row and a final argument-less Exec that flushes the copy.
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WithArgs("^GSPC", d1, 100.0).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("^GSPC", d2, 101.5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.InsertBarsBatch(context.Background(), "^GSPC", sampleBars()); err != nil {
		t.Fatalf("InsertBarsBatch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertBarsBatch_Errors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "begin",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dummyErr{})
			},
		},
		{
			name: "set local",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "row exec",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "final exec",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(".*").WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.setup(mock)
			if err := repo.InsertBarsBatch(context.Background(), "X", sampleBars()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestReplaceBars_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bars WHERE symbol = $1 AND bar_date >= $2 AND bar_date <= $3")).
		WithArgs("SOXL", d1, d2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.ReplaceBars(context.Background(), "SOXL", w, sampleBars()); err != nil {
		t.Fatalf("ReplaceBars: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// An empty replacement only clears the range.
func TestReplaceBars_EmptyClearsRange(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bars")).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := repo.ReplaceBars(context.Background(), "SOXL", w, nil); err != nil {
		t.Fatalf("ReplaceBars: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceBars_DeleteError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bars")).WillReturnError(dummyErr{})
	mock.ExpectRollback()

	if err := repo.ReplaceBars(context.Background(), "SOXL", w, sampleBars()); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
