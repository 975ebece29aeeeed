package cache

import (
	"sync"
	"time"

	"tempo-api-go/config"
	"tempo-api-go/logcolors"
	"tempo-api-go/utils"

	log "github.com/sirupsen/logrus"
)

var conf = config.Get()

// Namespace identifies one cache with its own default TTL.
type Namespace string

const (
	// NamespaceBpm holds resolved BPM results; stable, one week.
	NamespaceBpm Namespace = "bpm"

	// NamespaceLyrics holds fetched lyrics; one day.
	NamespaceLyrics Namespace = "lyrics"

	// NamespaceTracks holds short-lived track bookkeeping; minutes.
	NamespaceTracks Namespace = "tracks"
)

// Entry is a cached value with its expiry. Values are strings (callers
// JSON-marshal structured data) and may be stored compressed.
type Entry struct {
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Cache is a namespaced TTL cache. Reads lazily evict expired entries, so a
// Get never returns stale data; SweepExpired only bounds growth.
type Cache struct {
	mu       sync.RWMutex
	data     map[Namespace]map[string]Entry
	ttls     map[Namespace]time.Duration
	store    *boltStore
	compress bool
	now      func() time.Time
}

func defaultTTLs() map[Namespace]time.Duration {
	return map[Namespace]time.Duration{
		NamespaceBpm:    time.Duration(conf.Configuration.BpmCacheTTLInSeconds) * time.Second,
		NamespaceLyrics: time.Duration(conf.Configuration.LyricsCacheTTLInSeconds) * time.Second,
		NamespaceTracks: time.Duration(conf.Configuration.TracksCacheTTLInSeconds) * time.Second,
	}
}

func newCache() *Cache {
	c := &Cache{
		data:     make(map[Namespace]map[string]Entry),
		ttls:     defaultTTLs(),
		compress: conf.FeatureFlags.CacheCompression,
		now:      time.Now,
	}
	for ns := range c.ttls {
		c.data[ns] = make(map[string]Entry)
	}
	return c
}

// NewMemory creates an in-memory cache with config-default TTLs.
func NewMemory() *Cache {
	return newCache()
}

// NewPersistent creates a cache backed by a BoltDB file. Entries are written
// through to disk and loaded back on startup; expired entries are dropped
// during the load.
func NewPersistent(dbPath string) (*Cache, error) {
	c := newCache()

	store, err := openBoltStore(dbPath)
	if err != nil {
		return nil, err
	}
	c.store = store

	loaded, err := store.loadAll(c)
	if err != nil {
		log.Warnf("%s Failed to preload cache from disk: %v", logcolors.LogCacheInit, err)
	} else {
		log.Infof("%s Loaded %d entries from %s", logcolors.LogCacheInit, loaded, dbPath)
	}
	return c, nil
}

// DefaultTTL returns the namespace's configured TTL.
func (c *Cache) DefaultTTL(ns Namespace) time.Duration {
	return c.ttls[ns]
}

// Get returns the cached value for (namespace, key). An expired entry is
// evicted on the spot and reported as a miss.
func (c *Cache) Get(ns Namespace, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.data[ns][key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}

	if c.now().UnixNano() > entry.ExpiresAt {
		c.Delete(ns, key)
		log.Debugf("%s Expired %s entry for key: %s", logcolors.LogCache, ns, key)
		return "", false
	}

	value := entry.Value
	if c.compress {
		decompressed, err := utils.DecompressString(value)
		if err != nil {
			log.Errorf("%s Error decompressing value for key %s: %v", logcolors.LogCache, key, err)
			return "", false
		}
		value = decompressed
	}
	return value, true
}

// Set stores a value under (namespace, key) with the namespace default TTL,
// overwriting any existing entry.
func (c *Cache) Set(ns Namespace, key, value string) {
	c.SetWithTTL(ns, key, value, c.ttls[ns])
}

// SetWithTTL stores a value with an explicit TTL.
func (c *Cache) SetWithTTL(ns Namespace, key, value string, ttl time.Duration) {
	stored := value
	if c.compress {
		compressed, err := utils.CompressString(value)
		if err != nil {
			log.Errorf("%s Error compressing value for key %s: %v", logcolors.LogCache, key, err)
			return
		}
		stored = compressed
	}

	entry := Entry{
		Value:     stored,
		ExpiresAt: c.now().Add(ttl).UnixNano(),
	}

	c.mu.Lock()
	bucket, ok := c.data[ns]
	if !ok {
		bucket = make(map[string]Entry)
		c.data[ns] = bucket
	}
	bucket[key] = entry
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.save(ns, key, entry); err != nil {
			log.Warnf("%s Failed to persist key %s: %v", logcolors.LogCache, key, err)
		}
	}
}

// Delete removes a key from a namespace.
func (c *Cache) Delete(ns Namespace, key string) {
	c.mu.Lock()
	delete(c.data[ns], key)
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.remove(ns, key); err != nil {
			log.Warnf("%s Failed to delete persisted key %s: %v", logcolors.LogCache, key, err)
		}
	}
}

// Clear empties one namespace, or every namespace when ns is empty.
func (c *Cache) Clear(ns Namespace) {
	c.mu.Lock()
	if ns == "" {
		for n := range c.data {
			c.data[n] = make(map[string]Entry)
		}
	} else {
		c.data[ns] = make(map[string]Entry)
	}
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.clear(ns); err != nil {
			log.Warnf("%s Failed to clear persisted namespace %q: %v", logcolors.LogCache, ns, err)
		}
	}
	log.Infof("%s Cleared namespace %q", logcolors.LogCache, ns)
}

// SweepExpired removes every expired entry across all namespaces and returns
// the number removed. Safe to call at any time; lazy eviction on Get keeps
// reads correct even if this never runs.
func (c *Cache) SweepExpired() int {
	now := c.now().UnixNano()
	type expiredKey struct {
		ns  Namespace
		key string
	}
	var expired []expiredKey

	c.mu.Lock()
	for ns, bucket := range c.data {
		for key, entry := range bucket {
			if now > entry.ExpiresAt {
				delete(bucket, key)
				expired = append(expired, expiredKey{ns, key})
			}
		}
	}
	c.mu.Unlock()

	if c.store != nil {
		for _, e := range expired {
			if err := c.store.remove(e.ns, e.key); err != nil {
				log.Warnf("%s Failed to delete persisted key %s: %v", logcolors.LogSweep, e.key, err)
			}
		}
	}

	if len(expired) > 0 {
		log.Infof("%s Removed %d expired entries", logcolors.LogSweep, len(expired))
	}
	return len(expired)
}

// NamespaceStats describes one namespace for the /cache endpoint.
type NamespaceStats struct {
	Size int           `json:"size"`
	TTL  time.Duration `json:"ttl_ns"`
}

// Stats returns per-namespace entry counts and TTLs.
func (c *Cache) Stats() map[Namespace]NamespaceStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := make(map[Namespace]NamespaceStats, len(c.data))
	for ns, bucket := range c.data {
		stats[ns] = NamespaceStats{Size: len(bucket), TTL: c.ttls[ns]}
	}
	return stats
}

// Range iterates over all entries in a namespace. The value passed to fn is
// the stored (possibly compressed) form.
func (c *Cache) Range(ns Namespace, fn func(key string, entry Entry) bool) {
	c.mu.RLock()
	snapshot := make(map[string]Entry, len(c.data[ns]))
	for k, v := range c.data[ns] {
		snapshot[k] = v
	}
	c.mu.RUnlock()

	for k, v := range snapshot {
		if !fn(k, v) {
			return
		}
	}
}

// Close releases the persistent store, if any.
func (c *Cache) Close() error {
	if c.store != nil {
		return c.store.close()
	}
	return nil
}
