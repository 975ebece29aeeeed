// Package bpm coordinates tempo resolution across providers. The resolve
// chain is a linear pipeline: probe the cache, run the identity-keyed
// primary, fall back to the text-keyed secondary, cache whatever came out.
// It always produces a Result; provider failures are routine and never
// escape as errors.
package bpm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"tempo-api-go/cache"
	"tempo-api-go/circuitbreaker"
	"tempo-api-go/config"
	"tempo-api-go/logcolors"
	"tempo-api-go/services/providers"
	"tempo-api-go/stats"
	"tempo-api-go/utils"

	log "github.com/sirupsen/logrus"
)

// Result is the unit returned to callers and stored in the cache. Exactly
// one of Bpm or Error is meaningful; Source is null iff Bpm is null.
type Result struct {
	Bpm        *int     `json:"bpm"`
	PreciseBpm *float64 `json:"preciseBpm,omitempty"`
	Source     *string  `json:"source"`
	Error      string   `json:"error,omitempty"`

	// Cached reports whether this result came from the cache. Not part of
	// the wire format; the HTTP layer turns it into a header.
	Cached bool `json:"-"`
}

// Resolver runs the resolve chain. Providers are tried in slice order; the
// identity-keyed provider comes first by construction.
type Resolver struct {
	cache     *cache.Cache
	providers []providers.Provider
	breakers  map[string]*circuitbreaker.CircuitBreaker

	// Providers that reported a missing credential are skipped for the
	// lifetime of the process.
	mu       sync.Mutex
	disabled map[string]bool
}

// NewResolver creates a resolver over the given providers, in priority order.
// Each provider gets its own circuit breaker so one flapping upstream cannot
// slow the whole chain down.
func NewResolver(c *cache.Cache, ps []providers.Provider) *Resolver {
	conf := config.Get()

	breakers := make(map[string]*circuitbreaker.CircuitBreaker, len(ps))
	for _, p := range ps {
		breakers[p.Name()] = circuitbreaker.New(circuitbreaker.Config{
			Name:      p.Name(),
			Threshold: conf.Configuration.CircuitBreakerThreshold,
			Cooldown:  time.Duration(conf.Configuration.CircuitBreakerCooldownSecs) * time.Second,
		})
	}

	return &Resolver{
		cache:     c,
		providers: ps,
		breakers:  breakers,
		disabled:  make(map[string]bool),
	}
}

// Resolve looks up the tempo for a raw (title, artist) pair. The title is
// cleaned before any cache probe or network call. Never returns an error:
// total failure is a Result with a null bpm and an error message.
func (r *Resolver) Resolve(ctx context.Context, rawTitle, artist string) Result {
	if rawTitle == "" || artist == "" {
		log.Warnf("%s Missing track or artist name", logcolors.LogBpm)
		return errorResult(providers.ErrMissingInput.Error())
	}

	cleaned := utils.CleanTrackTitle(rawTitle)

	if cached, key, ok := r.probeCache(artist, cleaned); ok {
		log.Debugf("%s Cache hit for key: %s", logcolors.LogCacheBpm, key)
		stats.Get().RecordCacheHit()
		return cached
	}
	stats.Get().RecordCacheMiss()

	log.Infof("%s Resolving %q by %q", logcolors.LogBpm, cleaned, artist)

	var lastErr error
	for _, p := range r.providers {
		if r.isDisabled(p.Name()) {
			continue
		}

		breaker := r.breakers[p.Name()]
		if breaker != nil && !breaker.Allow() {
			log.Warnf("%s Provider %s circuit is open, skipping", logcolors.LogBpm, p.Name())
			lastErr = circuitbreaker.ErrCircuitOpen
			continue
		}

		result, err := p.FetchTempo(ctx, cleaned, artist)
		if err == nil && result != nil {
			if breaker != nil {
				breaker.RecordSuccess()
			}
			stats.Get().RecordProviderSuccess(p.Name())
			final := successResult(result)
			r.cache.Set(cache.NamespaceBpm, cache.BpmKey(p.CacheKeyPrefix(), artist, cleaned), marshalResult(final))
			log.Infof("%s Resolved %q by %q to %d bpm via %s", logcolors.LogSuccess, cleaned, artist, result.Bpm, p.Name())
			return final
		}

		lastErr = err
		stats.Get().RecordProviderFailure(p.Name())

		switch {
		case errors.Is(err, providers.ErrNotConfigured):
			log.Warnf("%s Provider %s is not configured, disabling it", logcolors.LogBpm, p.Name())
			r.disable(p.Name())
		case errors.Is(err, providers.ErrNoMatch):
			// A catalog miss means the upstream answered; the breaker only
			// tracks service failures.
			if breaker != nil {
				breaker.RecordSuccess()
			}
			log.Infof("%s Provider %s: %v, trying next", logcolors.LogFallback, p.Name(), err)
		case errors.Is(err, providers.ErrRateLimited):
			if breaker != nil {
				breaker.RecordFailure()
			}
			log.Warnf("%s Provider %s: %v", logcolors.LogBpm, p.Name(), err)
		default:
			if breaker != nil {
				breaker.RecordFailure()
			}
			log.Infof("%s Provider %s: %v, trying next", logcolors.LogFallback, p.Name(), err)
		}
	}

	message := "no tempo data found in any source"
	if lastErr != nil {
		message = lastErr.Error()
	}
	log.Infof("%s No tempo for %q by %q: %s", logcolors.LogBpm, cleaned, artist, message)

	// Failures are cached too, under the legacy unqualified key since no
	// provider owns them. Repeat lookups for missing tracks stay cheap.
	final := errorResult(message)
	r.cache.Set(cache.NamespaceBpm, cache.LegacyBpmKey(artist, cleaned), marshalResult(final))
	return final
}

// probeCache tries every candidate key in priority order: one qualified key
// per provider, then the legacy unqualified key.
func (r *Resolver) probeCache(artist, cleanedTitle string) (Result, string, bool) {
	prefixes := make([]string, len(r.providers))
	for i, p := range r.providers {
		prefixes[i] = p.CacheKeyPrefix()
	}

	for _, key := range cache.CandidateBpmKeys(prefixes, artist, cleanedTitle) {
		raw, ok := r.cache.Get(cache.NamespaceBpm, key)
		if !ok {
			continue
		}

		var result Result
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			log.Warnf("%s Dropping undecodable entry for key %s: %v", logcolors.LogCacheBpm, key, err)
			r.cache.Delete(cache.NamespaceBpm, key)
			continue
		}
		result.Cached = true
		return result, key, true
	}
	return Result{}, "", false
}

func (r *Resolver) isDisabled(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disabled[name]
}

func (r *Resolver) disable(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled[name] = true
}

func successResult(t *providers.TempoResult) Result {
	bpm := t.Bpm
	source := t.Provider
	result := Result{
		Bpm:    &bpm,
		Source: &source,
	}
	if t.PreciseBpm != 0 {
		precise := t.PreciseBpm
		result.PreciseBpm = &precise
	}
	return result
}

func errorResult(message string) Result {
	return Result{Error: message}
}

func marshalResult(r Result) string {
	data, err := json.Marshal(r)
	if err != nil {
		// Result is a plain value type; this cannot fail in practice.
		log.Errorf("%s Failed to marshal result: %v", logcolors.LogBpm, err)
		return "{}"
	}
	return string(data)
}
