package service

import (
	"github.com/guttosm/stockscope/internal/normalize"
	"github.com/guttosm/stockscope/internal/provider"
)

// priceFrom returns the first positive price among quote results and the
// provider that supplied it. Failures are recorded on fs when not nil.
func priceFrom(results []provider.Result, fs *failureSet) (*float64, string) {
	var price *float64
	var source string
	for _, r := range results {
		if !r.OK() {
			if fs != nil {
				fs.result(r)
			}
			continue
		}
		if price != nil {
			continue
		}
		if p := normalize.Quote(r.Provider, r.Payload); p != nil {
			price, source = p, r.Provider
		} else if fs != nil {
			fs.noData(r, "No price in quote response")
		}
	}
	return price, source
}
