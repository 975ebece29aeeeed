package acousticbrainz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tempo-api-go/services/providers"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 2 * time.Second},
		baseURL:    baseURL,
		userAgent:  "tempo-api-test/1.0",
	}
}

const mbid = "b1a9c0e9-d987-4042-ae91-78d6a3267d69"

func TestFetchTempoByID_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("recording_ids"); got != mbid {
			t.Errorf("Expected recording_ids=%s, got %s", mbid, got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"%s": {"0": {"rhythm": {"bpm": 95.234}}}}`, mbid)
	}))
	defer server.Close()

	client := testClient(server.URL)
	tempo, err := client.FetchTempoByID(context.Background(), mbid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tempo.Bpm != 95 {
		t.Errorf("Expected display bpm 95, got %d", tempo.Bpm)
	}
	if tempo.PreciseBpm != 95.2 {
		t.Errorf("Expected precise bpm 95.2, got %v", tempo.PreciseBpm)
	}
}

func TestFetchTempoByID_RoundsUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"%s": {"0": {"rhythm": {"bpm": 127.56}}}}`, mbid)
	}))
	defer server.Close()

	client := testClient(server.URL)
	tempo, err := client.FetchTempoByID(context.Background(), mbid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tempo.Bpm != 128 {
		t.Errorf("Expected display bpm 128, got %d", tempo.Bpm)
	}
	if tempo.PreciseBpm != 127.6 {
		t.Errorf("Expected precise bpm 127.6, got %v", tempo.PreciseBpm)
	}
}

func TestFetchTempoByID_MissingID(t *testing.T) {
	client := testClient("http://unused")
	_, err := client.FetchTempoByID(context.Background(), "")
	if !errors.Is(err, providers.ErrMissingInput) {
		t.Errorf("Expected ErrMissingInput, got %v", err)
	}
}

func TestFetchTempoByID_NotFound(t *testing.T) {
	t.Run("404 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		client := testClient(server.URL)
		_, err := client.FetchTempoByID(context.Background(), mbid)
		if !errors.Is(err, providers.ErrNoMatch) {
			t.Errorf("Expected ErrNoMatch, got %v", err)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := testClient(server.URL)
		_, err := client.FetchTempoByID(context.Background(), mbid)
		if !errors.Is(err, providers.ErrNoMatch) {
			t.Errorf("Expected ErrNoMatch, got %v", err)
		}
	})

	t.Run("analysis without rhythm bpm", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"%s": {"0": {"rhythm": {}}}}`, mbid)
		}))
		defer server.Close()

		client := testClient(server.URL)
		_, err := client.FetchTempoByID(context.Background(), mbid)
		if !errors.Is(err, providers.ErrNoMatch) {
			t.Errorf("Expected ErrNoMatch, got %v", err)
		}
	})
}

func TestFetchTempoByID_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.FetchTempoByID(context.Background(), mbid)
	if !errors.Is(err, providers.ErrMalformedResponse) {
		t.Errorf("Expected ErrMalformedResponse, got %v", err)
	}
}
