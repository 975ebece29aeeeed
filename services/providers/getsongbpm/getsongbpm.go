// Package getsongbpm implements the text-keyed fallback tempo provider. It
// exists for catalog-coverage gaps in the identity-keyed path and only
// reports integer tempo.
package getsongbpm

import (
	"context"
	"math"
	"strconv"

	"tempo-api-go/logcolors"
	"tempo-api-go/services/providers"

	log "github.com/sirupsen/logrus"
)

const (
	// ProviderName is the provenance tag for fallback-resolved tempos.
	ProviderName = "fallback-tempo"

	// CachePrefix is the cache key prefix for fallback-resolved tempos.
	CachePrefix = "fallback-tempo"
)

// FallbackProvider implements providers.Provider via GetSongBPM text search.
type FallbackProvider struct {
	client *Client
}

// NewProvider creates a new fallback provider instance
func NewProvider() *FallbackProvider {
	return &FallbackProvider{client: NewClient()}
}

// Name returns the provider identifier
func (p *FallbackProvider) Name() string {
	return ProviderName
}

// CacheKeyPrefix returns the cache key prefix for this provider
func (p *FallbackProvider) CacheKeyPrefix() string {
	return CachePrefix
}

// FetchTempo searches by title, scores every candidate against the full
// query, and returns the best-scoring candidate that carries a tempo value.
// Unlike the identity path there is no minimum score: any tempo-bearing
// candidate qualifies, and only the total absence of one is a failure.
func (p *FallbackProvider) FetchTempo(ctx context.Context, title, artist string) (*providers.TempoResult, error) {
	if title == "" || artist == "" {
		return nil, providers.NewProviderError(ProviderName, "missing track or artist name", providers.ErrMissingInput)
	}

	candidates, err := p.client.Search(ctx, title)
	if err != nil {
		return nil, err
	}

	best, bestScore := selectBestCandidate(candidates, title, artist)
	if best == nil {
		log.Debugf("%s No tempo-bearing candidate for %q by %q", logcolors.LogGetSongBPM, title, artist)
		return nil, providers.NewProviderError(ProviderName, "no suitable match found", providers.ErrNoMatch)
	}

	tempo, err := strconv.ParseFloat(best.Tempo, 64)
	if err != nil {
		return nil, providers.NewProviderError(ProviderName, "candidate tempo is not numeric", providers.ErrMalformedResponse)
	}

	bpm := int(math.Round(tempo))
	log.Infof("%s Found tempo %d for %q by %q (score: %d)", logcolors.LogGetSongBPM, bpm, best.Title, best.Artist.Name, bestScore)

	return &providers.TempoResult{
		Bpm:      bpm,
		Provider: ProviderName,
	}, nil
}

// selectBestCandidate keeps the first tempo-bearing candidate to reach the
// top score. Candidates without a tempo value are skipped entirely.
func selectBestCandidate(candidates []SongCandidate, title, artist string) (*SongCandidate, int) {
	var best *SongCandidate
	bestScore := -1

	for i := range candidates {
		cand := &candidates[i]
		if cand.Tempo == "" {
			continue
		}

		score := providers.ScoreMatch(cand.Title, cand.Artist.Name, title, artist)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	if best == nil {
		return nil, 0
	}
	return best, bestScore
}

// init registers the fallback provider with the global registry.
func init() {
	providers.Register(NewProvider())
}
