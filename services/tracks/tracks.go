// Package tracks remembers the most recently resolved track so clients can
// show "now playing" style state without re-resolving. The entry lives in the
// short-TTL tracks namespace and simply ages out.
package tracks

import (
	"encoding/json"
	"time"

	"tempo-api-go/cache"
	"tempo-api-go/logcolors"
	"tempo-api-go/services/bpm"

	log "github.com/sirupsen/logrus"
)

const lastResolvedKey = "last-resolved"

// LastTrack is the snapshot stored after every successful resolve.
type LastTrack struct {
	Name       string   `json:"name"`
	Artist     string   `json:"artist"`
	Bpm        *int     `json:"bpm"`
	PreciseBpm *float64 `json:"preciseBpm,omitempty"`
	Source     *string  `json:"source"`
	ResolvedAt int64    `json:"resolvedAt"`
}

// Service records and serves the last resolved track.
type Service struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewService(c *cache.Cache) *Service {
	return &Service{cache: c, now: time.Now}
}

// Record stores the outcome of a resolve. Error results are not recorded;
// the last known good track stays visible until it expires.
func (s *Service) Record(title, artist string, result bpm.Result) {
	if result.Bpm == nil {
		return
	}

	snapshot := LastTrack{
		Name:       title,
		Artist:     artist,
		Bpm:        result.Bpm,
		PreciseBpm: result.PreciseBpm,
		Source:     result.Source,
		ResolvedAt: s.now().UnixMilli(),
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("%s Failed to marshal last track: %v", logcolors.LogCache, err)
		return
	}
	s.cache.Set(cache.NamespaceTracks, lastResolvedKey, string(data))
}

// Last returns the most recently resolved track, if one is still fresh.
func (s *Service) Last() (LastTrack, bool) {
	raw, ok := s.cache.Get(cache.NamespaceTracks, lastResolvedKey)
	if !ok {
		return LastTrack{}, false
	}

	var snapshot LastTrack
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		s.cache.Delete(cache.NamespaceTracks, lastResolvedKey)
		return LastTrack{}, false
	}
	return snapshot, true
}
