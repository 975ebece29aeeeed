package main

import (
	"net/http"

	"tempo-api-go/cache"
	"tempo-api-go/logcolors"
	"tempo-api-go/services/bpm"
	"tempo-api-go/services/lyrics"
	"tempo-api-go/services/providers"
	"tempo-api-go/services/tracks"
	"tempo-api-go/stats"

	log "github.com/sirupsen/logrus"
)

// app wires the cache and services into the HTTP handlers
type app struct {
	cache    *cache.Cache
	resolver *bpm.Resolver
	lyrics   *lyrics.Service
	tracks   *tracks.Service
}

// queryParam reads a value that clients send under several historical names
func queryParam(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.URL.Query().Get(name); v != "" {
			return v
		}
	}
	return ""
}

func (a *app) getBpm(w http.ResponseWriter, r *http.Request) {
	songName := queryParam(r, "s", "song", "songName")
	artistName := queryParam(r, "a", "artist", "artistName")

	if songName == "" || artistName == "" {
		Respond(w).Error(http.StatusUnprocessableEntity, map[string]interface{}{
			"error": "Song name or artist name not provided",
		})
		return
	}

	result := a.resolver.Resolve(r.Context(), songName, artistName)
	a.tracks.Record(songName, artistName, result)

	resp := Respond(w)
	if result.Cached {
		resp.SetCacheStatus("HIT")
	} else {
		resp.SetCacheStatus("MISS")
	}
	if result.Source != nil {
		resp.SetSource(*result.Source)
	}

	if result.Bpm == nil {
		resp.Error(http.StatusNotFound, result)
		return
	}
	resp.JSON(result)
}

func (a *app) getLyrics(w http.ResponseWriter, r *http.Request) {
	songName := queryParam(r, "s", "song", "songName")
	artistName := queryParam(r, "a", "artist", "artistName")

	if songName == "" || artistName == "" {
		Respond(w).Error(http.StatusUnprocessableEntity, map[string]interface{}{
			"error": "Song name or artist name not provided",
		})
		return
	}

	result := a.lyrics.GetLyrics(r.Context(), songName, artistName)
	if result.Error != "" {
		Respond(w).Error(http.StatusNotFound, result)
		return
	}
	Respond(w).JSON(result)
}

func (a *app) getLastResolved(w http.ResponseWriter, r *http.Request) {
	last, ok := a.tracks.Last()
	if !ok {
		Respond(w).Error(http.StatusNotFound, map[string]interface{}{
			"error": "No track resolved recently",
		})
		return
	}
	Respond(w).JSON(last)
}

// authorized gates the cache management endpoints behind the access token
func (a *app) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != conf.Configuration.CacheAccessToken {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func (a *app) getCacheDump(w http.ResponseWriter, r *http.Request) {
	if !a.authorized(w, r) {
		return
	}

	dump := make(map[cache.Namespace]CacheDump)
	size := 0
	keys := 0
	for _, ns := range []cache.Namespace{cache.NamespaceBpm, cache.NamespaceLyrics, cache.NamespaceTracks} {
		nsDump := CacheDump{}
		a.cache.Range(ns, func(key string, entry cache.Entry) bool {
			nsDump[key] = entry
			size += len(key) + len(entry.Value) + 8
			keys++
			return true
		})
		dump[ns] = nsDump
	}

	Respond(w).JSON(CacheDumpResponse{
		NumberOfKeys: keys,
		SizeInKB:     size / 1024,
		Namespaces:   a.cache.Stats(),
		Cache:        dump,
	})
}

func (a *app) clearCache(w http.ResponseWriter, r *http.Request) {
	if !a.authorized(w, r) {
		return
	}

	ns := cache.Namespace(r.URL.Query().Get("namespace"))
	cleared := "all"
	if ns != "" {
		cleared = string(ns)
	}

	a.cache.Clear(ns)
	log.Infof("%s Cache cleared via API: %s", logcolors.LogCache, cleared)

	Respond(w).JSON(map[string]interface{}{
		"status":  "ok",
		"cleared": cleared,
	})
}

func (a *app) getStats(w http.ResponseWriter, r *http.Request) {
	Respond(w).JSON(map[string]interface{}{
		"server": stats.Get().GetSnapshot(),
		"cache":  a.cache.Stats(),
	})
}

func (a *app) getHealthStatus(w http.ResponseWriter, r *http.Request) {
	entries := 0
	for _, nsStats := range a.cache.Stats() {
		entries += nsStats.Size
	}

	Respond(w).JSON(HealthResponse{
		Status:        "ok",
		UptimeSeconds: stats.Get().GetSnapshot().UptimeSeconds,
		CacheEntries:  entries,
		Providers:     providers.List(),
	})
}

func (a *app) helpHandler(w http.ResponseWriter, r *http.Request) {
	Respond(w).JSON(map[string]interface{}{
		"help": "Use /getBpm to get the tempo of a song. Provide the song name and artist name as query parameters. Example: /getBpm?s=Shape%20of%20You&a=Ed%20Sheeran",
	})
}
