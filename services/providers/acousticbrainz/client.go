package acousticbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"tempo-api-go/config"
	"tempo-api-go/logcolors"
	"tempo-api-go/services/providers"

	log "github.com/sirupsen/logrus"
)

// ProviderName is the identifier used in errors and logs.
const ProviderName = "acousticbrainz"

var conf = config.Get()

// Client fetches low-level acoustic analysis data keyed by MusicBrainz
// recording ID. Coverage is partial; a missing analysis is routine.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates an AcousticBrainz client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: conf.HTTPTimeout()},
		baseURL:    conf.Configuration.AcousticBrainzBaseURL,
		userAgent:  conf.Configuration.UserAgent,
	}
}

// Tempo is the tempo extracted from one recording's acoustic analysis.
type Tempo struct {
	// Bpm is the tempo rounded to the nearest integer.
	Bpm int

	// PreciseBpm is the raw tempo rounded to one decimal place.
	PreciseBpm float64
}

// FetchTempoByID looks up the low-level analysis for a recording and extracts
// the rhythm tempo from its first analysis segment.
func (c *Client) FetchTempoByID(ctx context.Context, recordingID string) (*Tempo, error) {
	if recordingID == "" {
		return nil, providers.NewProviderError(ProviderName, "missing recording id", providers.ErrMissingInput)
	}

	reqURL := fmt.Sprintf("%s/low-level?recording_ids=%s", c.baseURL, url.QueryEscape(recordingID))
	log.Debugf("%s Fetching tempo for recording %s", logcolors.LogAcousticBrainz, recordingID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, providers.NewProviderError(ProviderName, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.NewProviderError(ProviderName, "lookup request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		log.Debugf("%s Recording %s not found", logcolors.LogAcousticBrainz, recordingID)
		return nil, providers.NewProviderError(ProviderName, "recording not found", providers.ErrNoMatch)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		return nil, providers.NewProviderError(ProviderName, "rate limit exceeded", providers.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, providers.NewProviderError(ProviderName, fmt.Sprintf("lookup returned status %d", resp.StatusCode), nil)
	}

	// The payload maps recording ID to numbered analysis segments.
	var payload map[string]map[string]segmentAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, providers.NewProviderError(ProviderName, "failed to parse response", providers.ErrMalformedResponse)
	}

	segments, ok := payload[recordingID]
	if !ok {
		log.Debugf("%s No data for recording %s", logcolors.LogAcousticBrainz, recordingID)
		return nil, providers.NewProviderError(ProviderName, "recording not found", providers.ErrNoMatch)
	}

	segment, ok := segments["0"]
	if !ok || segment.Rhythm.Bpm <= 0 {
		log.Debugf("%s No tempo data for recording %s", logcolors.LogAcousticBrainz, recordingID)
		return nil, providers.NewProviderError(ProviderName, "no tempo data available", providers.ErrNoMatch)
	}

	bpm := segment.Rhythm.Bpm
	tempo := &Tempo{
		Bpm:        int(math.Round(bpm)),
		PreciseBpm: math.Round(bpm*10) / 10,
	}
	log.Infof("%s Found tempo %.1f for recording %s", logcolors.LogAcousticBrainz, tempo.PreciseBpm, recordingID)
	return tempo, nil
}
