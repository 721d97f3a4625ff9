package service

import (
	"context"
	"time"

	"github.com/guttosm/stockscope/internal/domain/dto"
	"github.com/guttosm/stockscope/internal/fanout"
	"github.com/guttosm/stockscope/internal/normalize"
	"github.com/guttosm/stockscope/internal/provider"
)

// SentimentService reads the CNN Fear & Greed index.
type SentimentService interface {
	GetFearGreed(ctx context.Context) (*dto.FearGreedResponse, error)
}

type sentimentService struct {
	gatherer fanout.Gatherer
}

// NewSentimentService creates a SentimentService.
func NewSentimentService(g fanout.Gatherer) SentimentService {
	return &sentimentService{gatherer: g}
}

const fearGreedRoot = "$.fear_and_greed"

// GetFearGreed returns the current score with its historical comparisons.
// A response without a score is reported as unavailable.
func (s *sentimentService) GetFearGreed(ctx context.Context) (*dto.FearGreedResponse, error) {
	results := s.gatherer.Gather(ctx, []provider.Call{provider.CNNFearGreed()})

	var fs failureSet
	r := results[0]
	if !r.OK() {
		fs.result(r)
		return nil, fs.unavailable("Fear & Greed index unavailable")
	}

	score := normalize.Number(r.Payload, fearGreedRoot+".score")
	if score == nil {
		fs.noData(r, "No Fear & Greed score in response")
		return nil, fs.unavailable("Fear & Greed index unavailable")
	}

	resp := &dto.FearGreedResponse{
		Score:         score,
		Rating:        ptrString(normalize.Text(r.Payload, fearGreedRoot+".rating")),
		Timestamp:     fearGreedTimestamp(r.Payload),
		PreviousClose: normalize.Number(r.Payload, fearGreedRoot+".previous_close"),
		PreviousWeek:  normalize.Number(r.Payload, fearGreedRoot+".previous_1_week"),
		PreviousMonth: normalize.Number(r.Payload, fearGreedRoot+".previous_1_month"),
		PreviousYear:  normalize.Number(r.Payload, fearGreedRoot+".previous_1_year"),
	}

	serviceLog().Debug().Float64("score", *score).Msg("fear greed assembled")
	return resp, nil
}

// fearGreedTimestamp accepts either an RFC 3339 string or epoch milliseconds.
func fearGreedTimestamp(payload any) *string {
	if ts := normalize.Text(payload, fearGreedRoot+".timestamp"); ts != "" {
		return &ts
	}
	if ms := normalize.Number(payload, fearGreedRoot+".timestamp"); ms != nil {
		return ptrString(time.UnixMilli(int64(*ms)).UTC().Format(time.RFC3339))
	}
	return nil
}
