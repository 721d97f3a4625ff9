package service

import (
	"context"
	"time"

	"github.com/guttosm/stockscope/internal/domain/dto"
	"github.com/guttosm/stockscope/internal/domain/models"
	"github.com/guttosm/stockscope/internal/storage"
)

// WatchlistService manages the saved symbols.
//
// Every method returns ErrWatchlistDisabled when no repository is configured;
// storage.ErrNotFound and storage.ErrAlreadyExists pass through unchanged.
type WatchlistService interface {
	List(ctx context.Context, symbols ...string) ([]dto.WatchlistItem, error)
	Add(ctx context.Context, req dto.WatchlistRequest) (*dto.WatchlistItem, error)
	Remove(ctx context.Context, symbol string) error
}

type watchlistService struct {
	repo storage.WatchlistRepository
}

// NewWatchlistService creates a WatchlistService; repo may be nil.
func NewWatchlistService(repo storage.WatchlistRepository) WatchlistService {
	return &watchlistService{repo: repo}
}

func watchlistItem(e models.WatchlistEntry) dto.WatchlistItem {
	return dto.WatchlistItem{
		Symbol:  string(e.Symbol),
		Notes:   e.Notes,
		AddedAt: e.AddedAt.UTC().Format(time.RFC3339),
	}
}

// List returns every entry, or only the given symbols when any are passed.
// Blank symbols are ignored.
func (s *watchlistService) List(ctx context.Context, symbols ...string) ([]dto.WatchlistItem, error) {
	if s.repo == nil {
		return nil, ErrWatchlistDisabled
	}

	var filter []models.Ticker
	for _, raw := range symbols {
		if t := models.NormalizeTicker(raw); t != "" {
			filter = append(filter, t)
		}
	}

	var (
		entries []models.WatchlistEntry
		err     error
	)
	if len(filter) > 0 {
		entries, err = s.repo.Get(ctx, filter)
	} else {
		entries, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.WatchlistItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, watchlistItem(e))
	}
	return out, nil
}

func (s *watchlistService) Add(ctx context.Context, req dto.WatchlistRequest) (*dto.WatchlistItem, error) {
	if s.repo == nil {
		return nil, ErrWatchlistDisabled
	}
	ticker, err := requireSymbol(req.Symbol)
	if err != nil {
		return nil, err
	}
	e, err := s.repo.Add(ctx, ticker, req.Notes)
	if err != nil {
		return nil, err
	}
	item := watchlistItem(*e)
	return &item, nil
}

func (s *watchlistService) Remove(ctx context.Context, symbol string) error {
	if s.repo == nil {
		return ErrWatchlistDisabled
	}
	ticker, err := requireSymbol(symbol)
	if err != nil {
		return err
	}
	return s.repo.Remove(ctx, ticker)
}
