package getsongbpm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"tempo-api-go/config"
	"tempo-api-go/logcolors"
	"tempo-api-go/services/providers"

	log "github.com/sirupsen/logrus"
)

var conf = config.Get()

// Client searches the GetSongBPM catalog by title text. Searching by title
// only gives broader recall than an exact artist+title query; the artist is
// reconciled afterwards by scoring.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// NewClient creates a GetSongBPM client from the configured credential.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: conf.HTTPTimeout()},
		baseURL:    conf.Configuration.GetSongBPMBaseURL,
		apiKey:     conf.Configuration.GetSongBPMAPIKey,
		userAgent:  conf.Configuration.UserAgent,
	}
}

// Search runs a song-type search for the given title and returns the raw
// candidate list.
func (c *Client) Search(ctx context.Context, title string) ([]SongCandidate, error) {
	if c.apiKey == "" {
		return nil, providers.NewProviderError(ProviderName, "API key is not configured", providers.ErrNotConfigured)
	}

	reqURL := fmt.Sprintf("%s/search/?api_key=%s&type=song&lookup=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(title))
	log.Debugf("%s Searching for %q", logcolors.LogGetSongBPM, title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, providers.NewProviderError(ProviderName, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.NewProviderError(ProviderName, "search request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		return nil, providers.NewProviderError(ProviderName, "rate limit exceeded", providers.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, providers.NewProviderError(ProviderName, fmt.Sprintf("search returned status %d", resp.StatusCode), nil)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, providers.NewProviderError(ProviderName, "failed to parse response", providers.ErrMalformedResponse)
	}

	// The API reports "no results" as an error object in place of the
	// candidate array; the raw message decodes to an empty list.
	return searchResp.Search.Candidates, nil
}
