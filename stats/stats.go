package stats

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats holds all server statistics with atomic counters
type Stats struct {
	// Server info
	StartTime time.Time

	// Request counters
	TotalRequests  atomic.Int64
	BpmRequests    atomic.Int64
	LyricsRequests atomic.Int64
	CacheRequests  atomic.Int64
	StatsRequests  atomic.Int64
	HealthRequests atomic.Int64
	OtherRequests  atomic.Int64

	// Cache performance
	CacheHits   atomic.Int64
	CacheMisses atomic.Int64

	// Rate limiting
	RateLimitExceeded atomic.Int64

	// Response status codes
	Status2xx atomic.Int64
	Status4xx atomic.Int64
	Status5xx atomic.Int64

	// Per-provider outcomes
	providerMu        sync.RWMutex
	providerSuccesses map[string]int64
	providerFailures  map[string]int64
}

// Global stats instance
var global = &Stats{
	StartTime:         time.Now(),
	providerSuccesses: make(map[string]int64),
	providerFailures:  make(map[string]int64),
}

// Get returns the global stats instance
func Get() *Stats {
	return global
}

// RecordRequest records a request to a specific endpoint
func (s *Stats) RecordRequest(endpoint string) {
	s.TotalRequests.Add(1)
	switch endpoint {
	case "/getBpm":
		s.BpmRequests.Add(1)
	case "/getLyrics":
		s.LyricsRequests.Add(1)
	case "/cache":
		s.CacheRequests.Add(1)
	case "/stats":
		s.StatsRequests.Add(1)
	case "/health":
		s.HealthRequests.Add(1)
	default:
		s.OtherRequests.Add(1)
	}
}

// RecordCacheHit records a cache hit
func (s *Stats) RecordCacheHit() {
	s.CacheHits.Add(1)
}

// RecordCacheMiss records a cache miss
func (s *Stats) RecordCacheMiss() {
	s.CacheMisses.Add(1)
}

// RecordRateLimitExceeded records a rejected request (429)
func (s *Stats) RecordRateLimitExceeded() {
	s.RateLimitExceeded.Add(1)
}

// RecordStatusCode records a response status code
func (s *Stats) RecordStatusCode(code int) {
	switch {
	case code >= 200 && code < 300:
		s.Status2xx.Add(1)
	case code >= 400 && code < 500:
		s.Status4xx.Add(1)
	case code >= 500:
		s.Status5xx.Add(1)
	}
}

// RecordProviderSuccess records a tempo served by the named provider
func (s *Stats) RecordProviderSuccess(provider string) {
	s.providerMu.Lock()
	s.providerSuccesses[provider]++
	s.providerMu.Unlock()
}

// RecordProviderFailure records a failed lookup at the named provider
func (s *Stats) RecordProviderFailure(provider string) {
	s.providerMu.Lock()
	s.providerFailures[provider]++
	s.providerMu.Unlock()
}

// ProviderOutcomes returns copies of the per-provider counters
func (s *Stats) ProviderOutcomes() (successes, failures map[string]int64) {
	s.providerMu.RLock()
	defer s.providerMu.RUnlock()

	successes = make(map[string]int64, len(s.providerSuccesses))
	for k, v := range s.providerSuccesses {
		successes[k] = v
	}
	failures = make(map[string]int64, len(s.providerFailures))
	for k, v := range s.providerFailures {
		failures[k] = v
	}
	return successes, failures
}

// Snapshot is the JSON shape served by /stats
type Snapshot struct {
	UptimeSeconds float64 `json:"uptime_seconds"`

	Requests struct {
		Total  int64 `json:"total"`
		Bpm    int64 `json:"bpm"`
		Lyrics int64 `json:"lyrics"`
		Cache  int64 `json:"cache"`
		Stats  int64 `json:"stats"`
		Health int64 `json:"health"`
		Other  int64 `json:"other"`
	} `json:"requests"`

	Cache struct {
		Hits           int64   `json:"hits"`
		Misses         int64   `json:"misses"`
		HitRatePercent float64 `json:"hit_rate_percent"`
	} `json:"cache"`

	Providers struct {
		Successes map[string]int64 `json:"successes"`
		Failures  map[string]int64 `json:"failures"`
	} `json:"providers"`

	RateLimitExceeded int64 `json:"rate_limit_exceeded"`

	StatusCodes struct {
		Status2xx int64 `json:"2xx"`
		Status4xx int64 `json:"4xx"`
		Status5xx int64 `json:"5xx"`
	} `json:"status_codes"`
}

// GetSnapshot returns a point-in-time copy of all counters
func (s *Stats) GetSnapshot() Snapshot {
	var snap Snapshot
	snap.UptimeSeconds = time.Since(s.StartTime).Seconds()

	snap.Requests.Total = s.TotalRequests.Load()
	snap.Requests.Bpm = s.BpmRequests.Load()
	snap.Requests.Lyrics = s.LyricsRequests.Load()
	snap.Requests.Cache = s.CacheRequests.Load()
	snap.Requests.Stats = s.StatsRequests.Load()
	snap.Requests.Health = s.HealthRequests.Load()
	snap.Requests.Other = s.OtherRequests.Load()

	hits := s.CacheHits.Load()
	misses := s.CacheMisses.Load()
	snap.Cache.Hits = hits
	snap.Cache.Misses = misses
	if total := hits + misses; total > 0 {
		snap.Cache.HitRatePercent = float64(hits) / float64(total) * 100
	}

	snap.Providers.Successes, snap.Providers.Failures = s.ProviderOutcomes()
	snap.RateLimitExceeded = s.RateLimitExceeded.Load()

	snap.StatusCodes.Status2xx = s.Status2xx.Load()
	snap.StatusCodes.Status4xx = s.Status4xx.Load()
	snap.StatusCodes.Status5xx = s.Status5xx.Load()

	return snap
}
