package identitytempo

import (
	"context"
	"errors"
	"testing"

	"tempo-api-go/services/providers"
	"tempo-api-go/services/providers/acousticbrainz"
)

type fakeResolver struct {
	match *providers.RecordingMatch
	err   error
	calls int
}

func (f *fakeResolver) SearchRecording(ctx context.Context, title, artist string) (*providers.RecordingMatch, error) {
	f.calls++
	return f.match, f.err
}

type fakeFetcher struct {
	tempo *acousticbrainz.Tempo
	err   error
	calls int
	seen  string
}

func (f *fakeFetcher) FetchTempoByID(ctx context.Context, recordingID string) (*acousticbrainz.Tempo, error) {
	f.calls++
	f.seen = recordingID
	return f.tempo, f.err
}

func TestFetchTempo_Success(t *testing.T) {
	resolver := &fakeResolver{match: &providers.RecordingMatch{ID: "mbid-1", Title: "Shape of You", Artist: "Ed Sheeran"}}
	fetcher := &fakeFetcher{tempo: &acousticbrainz.Tempo{Bpm: 95, PreciseBpm: 95.2}}
	p := &IdentityTempoProvider{resolver: resolver, fetcher: fetcher}

	result, err := p.FetchTempo(context.Background(), "Shape of You", "Ed Sheeran")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Bpm != 95 || result.PreciseBpm != 95.2 {
		t.Errorf("Expected bpm 95 / precise 95.2, got %d / %v", result.Bpm, result.PreciseBpm)
	}
	if result.Provider != ProviderName {
		t.Errorf("Expected provider %q, got %q", ProviderName, result.Provider)
	}
	if fetcher.seen != "mbid-1" {
		t.Errorf("Fetcher should receive the resolved recording id, got %q", fetcher.seen)
	}
}

func TestFetchTempo_IdentityFailureShortCircuits(t *testing.T) {
	resolver := &fakeResolver{err: providers.NewProviderError("musicbrainz", "no suitable match found", providers.ErrNoMatch)}
	fetcher := &fakeFetcher{}
	p := &IdentityTempoProvider{resolver: resolver, fetcher: fetcher}

	_, err := p.FetchTempo(context.Background(), "Shape of You", "Ed Sheeran")
	if !errors.Is(err, providers.ErrNoMatch) {
		t.Errorf("Expected ErrNoMatch, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Errorf("Tempo fetch must not run when identity resolution fails")
	}
}

func TestFetchTempo_TempoFailurePropagates(t *testing.T) {
	resolver := &fakeResolver{match: &providers.RecordingMatch{ID: "mbid-1"}}
	fetcher := &fakeFetcher{err: providers.NewProviderError("acousticbrainz", "no tempo data available", providers.ErrNoMatch)}
	p := &IdentityTempoProvider{resolver: resolver, fetcher: fetcher}

	_, err := p.FetchTempo(context.Background(), "Shape of You", "Ed Sheeran")
	if !errors.Is(err, providers.ErrNoMatch) {
		t.Errorf("Expected ErrNoMatch, got %v", err)
	}
}

func TestFetchTempo_MissingInput(t *testing.T) {
	resolver := &fakeResolver{}
	fetcher := &fakeFetcher{}
	p := &IdentityTempoProvider{resolver: resolver, fetcher: fetcher}

	_, err := p.FetchTempo(context.Background(), "", "")
	if !errors.Is(err, providers.ErrMissingInput) {
		t.Errorf("Expected ErrMissingInput, got %v", err)
	}
	if resolver.calls != 0 || fetcher.calls != 0 {
		t.Error("Missing input must not reach either upstream")
	}
}
