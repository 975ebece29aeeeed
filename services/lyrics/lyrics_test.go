package lyrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tempo-api-go/cache"
	"tempo-api-go/services/providers"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    baseURL,
		userAgent:  "tempo-api-test/1.0",
	}
}

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("track_name") != "Shape of You" {
			t.Errorf("Unexpected track_name: %q", r.URL.Query().Get("track_name"))
		}
		w.Write([]byte(`{"plainLyrics":"The club isn't the best place","syncedLyrics":"[00:08.00] The club isn't the best place"}`))
	}))
	defer server.Close()

	plain, synced, err := testClient(server.URL).Fetch(context.Background(), "Shape of You", "Ed Sheeran")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if plain != "The club isn't the best place" {
		t.Errorf("Unexpected plain lyrics: %q", plain)
	}
	if synced == "" {
		t.Error("Expected synced lyrics")
	}
}

func TestClientFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, _, err := testClient(server.URL).Fetch(context.Background(), "Ghost Track", "Nobody")
	if !errors.Is(err, providers.ErrNoMatch) {
		t.Errorf("Expected ErrNoMatch for 404, got %v", err)
	}
}

func TestClientFetchEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plainLyrics":"","syncedLyrics":""}`))
	}))
	defer server.Close()

	_, _, err := testClient(server.URL).Fetch(context.Background(), "Instrumental", "Artist")
	if !errors.Is(err, providers.ErrNoMatch) {
		t.Errorf("Expected ErrNoMatch for empty lyrics, got %v", err)
	}
}

func TestClientFetchMissingInput(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	_, _, err := testClient(server.URL).Fetch(context.Background(), "", "Ed Sheeran")
	if !errors.Is(err, providers.ErrMissingInput) {
		t.Errorf("Expected ErrMissingInput, got %v", err)
	}
	if calls.Load() != 0 {
		t.Error("Missing input must not hit the network")
	}
}

type fakeFetcher struct {
	plain  string
	synced string
	err    error
	calls  atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, title, artist string) (string, string, error) {
	f.calls.Add(1)
	return f.plain, f.synced, f.err
}

func TestServiceCachesResults(t *testing.T) {
	f := &fakeFetcher{plain: "[Verse 1]\nSome lyrics"}
	s := &Service{cache: cache.NewMemory(), client: f}

	first := s.GetLyrics(context.Background(), "Shape of You", "Ed Sheeran")
	second := s.GetLyrics(context.Background(), "Shape of You", "Ed Sheeran")

	if f.calls.Load() != 1 {
		t.Errorf("Expected one upstream call across both lookups, got %d", f.calls.Load())
	}
	if first.Lyrics != second.Lyrics || first.Lyrics == "" {
		t.Errorf("Cached result mismatch: %q vs %q", first.Lyrics, second.Lyrics)
	}
}

func TestServiceCachesFailures(t *testing.T) {
	f := &fakeFetcher{err: providers.ErrNoMatch}
	s := &Service{cache: cache.NewMemory(), client: f}

	first := s.GetLyrics(context.Background(), "Ghost Track", "Nobody")
	s.GetLyrics(context.Background(), "Ghost Track", "Nobody")

	if first.Error == "" {
		t.Error("Expected an error message in the result")
	}
	if f.calls.Load() != 1 {
		t.Errorf("Expected failure to be cached, got %d upstream calls", f.calls.Load())
	}
}

func TestServiceMissingInput(t *testing.T) {
	f := &fakeFetcher{plain: "lyrics"}
	s := &Service{cache: cache.NewMemory(), client: f}

	result := s.GetLyrics(context.Background(), "", "")
	if result.Error == "" {
		t.Error("Expected an error message for missing input")
	}
	if f.calls.Load() != 0 {
		t.Error("Missing input must not reach the upstream client")
	}
}

func TestCleanContentCutsToSectionHeader(t *testing.T) {
	raw := "12 Contributors\nShape of You Lyrics\n[Verse 1]\nThe club isn't the best place"
	got := CleanContent(raw)
	if got != "[Verse 1]\nThe club isn't the best place" {
		t.Errorf("CleanContent() = %q", got)
	}
}

func TestCleanContentStripsBoilerplate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "contributor count and title line",
			raw:      "5 Contributors\nSong Title Lyrics\nActual first line\nSecond line",
			expected: "Actual first line\nSecond line",
		},
		{
			name:     "quoted description line",
			raw:      "\"A song about things\"\nActual first line",
			expected: "Actual first line",
		},
		{
			name:     "embedded link",
			raw:      "See https://example.com for more\nActual first line",
			expected: "Actual first line",
		},
		{
			name:     "collapses extra blank lines",
			raw:      "First line\n\n\n\nSecond line",
			expected: "First line\n\nSecond line",
		},
		{
			name:     "empty input unchanged",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanContent(tt.raw); got != tt.expected {
				t.Errorf("CleanContent() = %q, want %q", got, tt.expected)
			}
		})
	}
}
