package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/stockscope/internal/domain/models"
	pq "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*watchlistRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &watchlistRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func TestList_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	at := time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"symbol", "notes", "added_at"}).
		AddRow("AAPL", "core", at).
		AddRow("KO", "", at.Add(time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT symbol, notes, added_at FROM watchlist ORDER BY added_at, symbol`)).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.Ticker("AAPL"), got[0].Symbol)
	assert.Equal(t, "core", got[0].Notes)
	assert.Equal(t, models.Ticker("KO"), got[1].Symbol)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT symbol, notes, added_at FROM watchlist`).
		WillReturnRows(sqlmock.NewRows([]string{"symbol", "notes", "added_at"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_QueryError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT symbol, notes, added_at FROM watchlist`).WillReturnError(dummyErr{})

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dummyErr{})
}

func TestGet_UsesArrayParameter(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	at := time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE symbol = ANY($1)`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"symbol", "notes", "added_at"}).AddRow("MSFT", "", at))

	got, err := repo.Get(context.Background(), []models.Ticker{"MSFT", "NOPE"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.Ticker("MSFT"), got[0].Symbol)

	none, err := repo.Get(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd_SQLMock(t *testing.T) {
	at := time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "inserted"},
		{name: "duplicate", err: &pq.Error{Code: "23505"}, wantErr: ErrAlreadyExists},
		{name: "db failure", err: dummyErr{}, wantErr: dummyErr{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			exp := mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO watchlist (symbol, notes) VALUES ($1, $2) RETURNING added_at`)).
				WithArgs("AAPL", "long term")
			if tc.err != nil {
				exp.WillReturnError(tc.err)
			} else {
				exp.WillReturnRows(sqlmock.NewRows([]string{"added_at"}).AddRow(at))
			}

			got, err := repo.Add(context.Background(), "AAPL", "long term")
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.Ticker("AAPL"), got.Symbol)
			assert.Equal(t, at, got.AddedAt)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRemove_SQLMock(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{name: "removed", affected: 1},
		{name: "missing", affected: 0, wantErr: ErrNotFound},
		{name: "db failure", execErr: dummyErr{}, wantErr: dummyErr{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			exp := mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM watchlist WHERE symbol = $1`)).WithArgs("KO")
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tc.affected))
			}

			err := repo.Remove(context.Background(), "KO")
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPing_SQLMock(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(dummyErr{})
	repo := NewWatchlistRepository(db)
	assert.Error(t, repo.Ping(context.Background()))
}
