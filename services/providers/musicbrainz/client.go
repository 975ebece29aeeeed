package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"tempo-api-go/config"
	"tempo-api-go/logcolors"
	"tempo-api-go/services/providers"

	log "github.com/sirupsen/logrus"
)

// ProviderName is the identifier used in errors and logs.
const ProviderName = "musicbrainz"

var conf = config.Get()

// The MusicBrainz usage policy is a global budget, not a per-caller one, so
// every client in the process shares a single pacer. Burst 1 means requests
// queue FIFO at one per interval.
var (
	sharedPacer     *rate.Limiter
	sharedPacerOnce sync.Once
)

func pacer() *rate.Limiter {
	sharedPacerOnce.Do(func() {
		sharedPacer = rate.NewLimiter(rate.Every(conf.MusicBrainzInterval()), 1)
	})
	return sharedPacer
}

// Client searches the MusicBrainz recording catalog and resolves a
// (title, artist) pair to a stable recording ID.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	searchLimit int
	userAgent   string
	limiter     *rate.Limiter
}

// NewClient creates a MusicBrainz client using the process-wide pacer.
func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: conf.HTTPTimeout()},
		baseURL:     conf.Configuration.MusicBrainzBaseURL,
		searchLimit: conf.Configuration.MusicBrainzSearchLimit,
		userAgent:   conf.Configuration.UserAgent,
		limiter:     pacer(),
	}
}

// luceneEscaper escapes characters reserved by the Lucene query syntax so
// titles like "What? (Interlude)" search as literal text.
var luceneEscaper = strings.NewReplacer(
	`\`, `\\`,
	`+`, `\+`,
	`-`, `\-`,
	`&`, `\&`,
	`|`, `\|`,
	`!`, `\!`,
	`(`, `\(`,
	`)`, `\)`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`^`, `\^`,
	`"`, `\"`,
	`~`, `\~`,
	`*`, `\*`,
	`?`, `\?`,
	`:`, `\:`,
)

func escapeLucene(s string) string {
	return luceneEscaper.Replace(s)
}

// SearchRecording queries the recording search endpoint and returns the best
// scoring candidate. Waits on the shared pacer before touching the network.
func (c *Client) SearchRecording(ctx context.Context, title, artist string) (*providers.RecordingMatch, error) {
	if title == "" || artist == "" {
		return nil, providers.NewProviderError(ProviderName, "missing track or artist name", providers.ErrMissingInput)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, providers.NewProviderError(ProviderName, "rate limiter wait aborted", err)
	}

	query := fmt.Sprintf(`artist:"%s" AND recording:"%s"`, escapeLucene(artist), escapeLucene(title))
	reqURL := fmt.Sprintf("%s/recording?query=%s&fmt=json&limit=%d", c.baseURL, url.QueryEscape(query), c.searchLimit)

	log.Debugf("%s Searching for %q by %q", logcolors.LogMusicBrainz, title, artist)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, providers.NewProviderError(ProviderName, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.NewProviderError(ProviderName, "search request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests:
		log.Warnf("%s Rate limit exceeded (%d)", logcolors.LogMusicBrainz, resp.StatusCode)
		return nil, providers.NewProviderError(ProviderName, "rate limit exceeded", providers.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, providers.NewProviderError(ProviderName, fmt.Sprintf("search returned status %d", resp.StatusCode), nil)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, providers.NewProviderError(ProviderName, "failed to parse response", providers.ErrMalformedResponse)
	}

	if len(searchResp.Recordings) == 0 {
		log.Debugf("%s No recordings found for %q by %q", logcolors.LogMusicBrainz, title, artist)
		return nil, providers.NewProviderError(ProviderName, "no recordings found", providers.ErrNoMatch)
	}

	best, bestScore := selectBestRecording(searchResp.Recordings, title, artist)
	if best == nil || bestScore <= 0 {
		log.Debugf("%s No suitable match for %q by %q", logcolors.LogMusicBrainz, title, artist)
		return nil, providers.NewProviderError(ProviderName, "no suitable match found", providers.ErrNoMatch)
	}

	match := &providers.RecordingMatch{
		ID:     best.ID,
		Title:  best.Title,
		Artist: best.primaryArtist(),
	}
	log.Infof("%s Matched %q by %q (id: %s, score: %d)", logcolors.LogMatch, match.Title, match.Artist, match.ID, bestScore)
	return match, nil
}

// selectBestRecording scores every candidate and keeps the first one to reach
// the top score. Later candidates with an equal score never displace an
// earlier one.
func selectBestRecording(recordings []recording, title, artist string) (*recording, int) {
	var best *recording
	bestScore := 0

	for i := range recordings {
		rec := &recordings[i]
		score := providers.ScoreMatch(rec.Title, rec.primaryArtist(), title, artist)
		if score > bestScore {
			bestScore = score
			best = rec
		}
	}

	return best, bestScore
}
