package models

import "time"

// WatchlistEntry is one symbol saved by the user.
type WatchlistEntry struct {
	Symbol  Ticker
	Notes   string
	AddedAt time.Time
}
