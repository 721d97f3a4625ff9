package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guttosm/stockscope/internal/domain/models"
	pq "github.com/lib/pq"
)

var (
	// ErrNotFound is returned when the symbol is not on the watchlist.
	ErrNotFound = errors.New("watchlist entry not found")
	// ErrAlreadyExists is returned when the symbol is already on the watchlist.
	ErrAlreadyExists = errors.New("watchlist entry already exists")
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// WatchlistRepository defines contract for watchlist DB operations.
type WatchlistRepository interface {
	List(ctx context.Context) ([]models.WatchlistEntry, error)
	Get(ctx context.Context, symbols []models.Ticker) ([]models.WatchlistEntry, error)
	Add(ctx context.Context, symbol models.Ticker, notes string) (*models.WatchlistEntry, error)
	Remove(ctx context.Context, symbol models.Ticker) error
	Ping(ctx context.Context) error
}

type watchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func scanEntries(rows *sql.Rows) ([]models.WatchlistEntry, error) {
	defer func() { _ = rows.Close() }()

	out := make([]models.WatchlistEntry, 0)
	for rows.Next() {
		var e models.WatchlistEntry
		var sym string
		if err := rows.Scan(&sym, &e.Notes, &e.AddedAt); err != nil {
			return nil, err
		}
		e.Symbol = models.Ticker(sym)
		out = append(out, e)
	}
	return out, rows.Err()
}

// List returns every entry, oldest first.
func (r *watchlistRepository) List(ctx context.Context) ([]models.WatchlistEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT symbol, notes, added_at FROM watchlist ORDER BY added_at, symbol`)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return scanEntries(rows)
}

// Get returns the entries for the given symbols; unknown symbols are skipped.
func (r *watchlistRepository) Get(ctx context.Context, symbols []models.Ticker) ([]models.WatchlistEntry, error) {
	if len(symbols) == 0 {
		return []models.WatchlistEntry{}, nil
	}
	raw := make([]string, len(symbols))
	for i, s := range symbols {
		raw[i] = string(s)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT symbol, notes, added_at FROM watchlist WHERE symbol = ANY($1) ORDER BY added_at, symbol`,
		pq.Array(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("get watchlist: %w", err)
	}
	return scanEntries(rows)
}

// Add inserts a new entry. A duplicate symbol yields ErrAlreadyExists.
func (r *watchlistRepository) Add(ctx context.Context, symbol models.Ticker, notes string) (*models.WatchlistEntry, error) {
	e := models.WatchlistEntry{Symbol: symbol, Notes: notes}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO watchlist (symbol, notes) VALUES ($1, $2) RETURNING added_at`,
		string(symbol), notes,
	).Scan(&e.AddedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("add watchlist entry: %w", err)
	}
	return &e, nil
}

// Remove deletes an entry; ErrNotFound when no row matched.
func (r *watchlistRepository) Remove(ctx context.Context, symbol models.Ticker) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM watchlist WHERE symbol = $1`, string(symbol))
	if err != nil {
		return fmt.Errorf("remove watchlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *watchlistRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
