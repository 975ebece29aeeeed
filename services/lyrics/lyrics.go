package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tempo-api-go/cache"
	"tempo-api-go/logcolors"
	"tempo-api-go/services/providers"
	"tempo-api-go/utils"

	log "github.com/sirupsen/logrus"
)

// Result is the unit returned to callers and stored in the cache.
type Result struct {
	Lyrics       string `json:"lyrics,omitempty"`
	SyncedLyrics string `json:"syncedLyrics,omitempty"`
	Error        string `json:"error,omitempty"`
}

type fetcher interface {
	Fetch(ctx context.Context, title, artist string) (plain, synced string, err error)
}

// Service resolves lyrics through the cache and the LRCLIB client.
type Service struct {
	cache  *cache.Cache
	client fetcher
}

func NewService(c *cache.Cache) *Service {
	return &Service{cache: c, client: NewClient()}
}

// GetLyrics looks up lyrics for a raw (title, artist) pair. Like the tempo
// chain it never returns an error: failures come back as a Result with an
// error message, and are cached so repeat misses stay cheap.
func (s *Service) GetLyrics(ctx context.Context, rawTitle, artist string) Result {
	if rawTitle == "" || artist == "" {
		log.Warnf("%s Missing track or artist name", logcolors.LogLyrics)
		return Result{Error: providers.ErrMissingInput.Error()}
	}

	cleaned := utils.CleanTrackTitle(rawTitle)
	key := strings.ToLower(fmt.Sprintf("%s-%s", artist, cleaned))

	if raw, ok := s.cache.Get(cache.NamespaceLyrics, key); ok {
		var cached Result
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			log.Debugf("%s Cache hit for key: %s", logcolors.LogCache, key)
			return cached
		}
		s.cache.Delete(cache.NamespaceLyrics, key)
	}

	log.Infof("%s Fetching lyrics for %q by %q", logcolors.LogLyrics, cleaned, artist)

	plain, synced, err := s.client.Fetch(ctx, cleaned, artist)
	if err != nil {
		log.Infof("%s No lyrics for %q by %q: %v", logcolors.LogLyrics, cleaned, artist, err)
		result := Result{Error: "No lyrics found"}
		s.store(key, result)
		return result
	}

	result := Result{
		Lyrics:       CleanContent(plain),
		SyncedLyrics: synced,
	}
	s.store(key, result)
	log.Infof("%s Successfully fetched lyrics for %q", logcolors.LogSuccess, cleaned)
	return result
}

func (s *Service) store(key string, result Result) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Errorf("%s Failed to marshal lyrics result: %v", logcolors.LogLyrics, err)
		return
	}
	s.cache.Set(cache.NamespaceLyrics, key, string(data))
}
