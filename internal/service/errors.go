package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/stockscope/internal/domain/models"
)

// ErrWatchlistDisabled is returned by the watchlist service when no store is configured.
var ErrWatchlistDisabled = errors.New("watchlist is disabled")

// MissingParameterError reports a required request parameter that was not supplied.
type MissingParameterError struct {
	Param   string
	Message string
}

func (e *MissingParameterError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s is required", e.Param)
}

// InvalidParameterError reports a parameter that was supplied but unusable.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// UnavailableError means every provider for a logical fetch failed to produce
// a usable record. Details carries one reason per failed provider.
type UnavailableError struct {
	Message string
	Details []string
}

func (e *UnavailableError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// requireSymbol normalizes the symbol parameter or reports it missing.
func requireSymbol(raw string) (models.Ticker, error) {
	t := models.NormalizeTicker(raw)
	if t == "" {
		return "", &MissingParameterError{Param: "symbol", Message: "Stock symbol is required"}
	}
	return t, nil
}
