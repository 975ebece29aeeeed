package main

import "tempo-api-go/cache"

// CacheDump maps cache keys to their stored entries for one namespace
type CacheDump map[string]cache.Entry

// CacheDumpResponse is the payload served by /cache
type CacheDumpResponse struct {
	NumberOfKeys int                                  `json:"NumberOfKeys"`
	SizeInKB     int                                  `json:"SizeInKB"`
	Namespaces   map[cache.Namespace]cache.NamespaceStats `json:"Namespaces"`
	Cache        map[cache.Namespace]CacheDump        `json:"Cache"`
}

// HealthResponse is the payload served by /health
type HealthResponse struct {
	Status        string   `json:"status"`
	UptimeSeconds float64  `json:"uptime_seconds"`
	CacheEntries  int      `json:"cache_entries"`
	Providers     []string `json:"providers"`
}
