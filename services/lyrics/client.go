// Package lyrics fetches song lyrics from LRCLIB and caches them. LRCLIB is
// keyless, so unlike the tempo providers there is no configuration gate.
package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"tempo-api-go/config"
	"tempo-api-go/services/providers"
)

// Client talks to the LRCLIB get endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient() *Client {
	conf := config.Get()
	return &Client{
		httpClient: &http.Client{Timeout: conf.HTTPTimeout()},
		baseURL:    conf.Configuration.LrclibBaseURL,
		userAgent:  conf.Configuration.UserAgent,
	}
}

type apiResponse struct {
	PlainLyrics  string `json:"plainLyrics"`
	SyncedLyrics string `json:"syncedLyrics"`
}

// Fetch retrieves lyrics for the given track. A 404 means the catalog has no
// entry and maps to ErrNoMatch, not a transport error.
func (c *Client) Fetch(ctx context.Context, title, artist string) (plain, synced string, err error) {
	if title == "" || artist == "" {
		return "", "", providers.ErrMissingInput
	}

	params := url.Values{}
	params.Set("track_name", title)
	params.Set("artist_name", artist)

	reqURL := fmt.Sprintf("%s/api/get?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", "", providers.NewProviderError("lrclib", "failed to create request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", providers.NewProviderError("lrclib", "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", "", providers.ErrNoMatch
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", "", providers.NewProviderError("lrclib", "rate limited", providers.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return "", "", providers.NewProviderError("lrclib", fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", providers.NewProviderError("lrclib", "failed to decode response", providers.ErrMalformedResponse)
	}

	if payload.PlainLyrics == "" && payload.SyncedLyrics == "" {
		return "", "", providers.ErrNoMatch
	}
	return payload.PlainLyrics, payload.SyncedLyrics, nil
}
