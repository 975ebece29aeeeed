// Package identitytempo resolves tempo through the identity-keyed path:
// MusicBrainz maps (title, artist) to a stable recording ID, then
// AcousticBrainz supplies the decimal tempo for that recording. This is the
// primary provider; when it succeeds its tempo is more precise than the
// text-keyed fallback's integer estimate.
package identitytempo

import (
	"context"

	"tempo-api-go/logcolors"
	"tempo-api-go/services/providers"
	"tempo-api-go/services/providers/acousticbrainz"
	"tempo-api-go/services/providers/musicbrainz"

	log "github.com/sirupsen/logrus"
)

const (
	// ProviderName is the provenance tag for identity-resolved tempos.
	ProviderName = "identity-tempo"

	// CachePrefix is the cache key prefix for identity-resolved tempos.
	CachePrefix = "identity-tempo"
)

// identityResolver is implemented by the MusicBrainz client.
type identityResolver interface {
	SearchRecording(ctx context.Context, title, artist string) (*providers.RecordingMatch, error)
}

// tempoFetcher is implemented by the AcousticBrainz client.
type tempoFetcher interface {
	FetchTempoByID(ctx context.Context, recordingID string) (*acousticbrainz.Tempo, error)
}

// IdentityTempoProvider implements providers.Provider by chaining the
// identity catalog and the analysis catalog.
type IdentityTempoProvider struct {
	resolver identityResolver
	fetcher  tempoFetcher
}

// NewProvider creates the identity-tempo provider with live clients.
func NewProvider() *IdentityTempoProvider {
	return &IdentityTempoProvider{
		resolver: musicbrainz.NewClient(),
		fetcher:  acousticbrainz.NewClient(),
	}
}

// Name returns the provider identifier
func (p *IdentityTempoProvider) Name() string {
	return ProviderName
}

// CacheKeyPrefix returns the cache key prefix for this provider
func (p *IdentityTempoProvider) CacheKeyPrefix() string {
	return CachePrefix
}

// FetchTempo resolves the recording identity first, then fetches its tempo.
// A failure at either stage surfaces as this provider's failure; the caller
// decides whether to fall back.
func (p *IdentityTempoProvider) FetchTempo(ctx context.Context, title, artist string) (*providers.TempoResult, error) {
	if title == "" || artist == "" {
		return nil, providers.NewProviderError(ProviderName, "missing track or artist name", providers.ErrMissingInput)
	}

	match, err := p.resolver.SearchRecording(ctx, title, artist)
	if err != nil {
		return nil, err
	}

	log.Debugf("%s Resolved %q by %q to recording %s", logcolors.LogBpm, title, artist, match.ID)

	tempo, err := p.fetcher.FetchTempoByID(ctx, match.ID)
	if err != nil {
		return nil, err
	}

	return &providers.TempoResult{
		Bpm:        tempo.Bpm,
		PreciseBpm: tempo.PreciseBpm,
		Provider:   ProviderName,
	}, nil
}

// init registers the identity-tempo provider with the global registry. It is
// registered first: identity-keyed lookup always runs before the fallback.
func init() {
	providers.Register(NewProvider())
}
