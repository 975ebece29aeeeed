package main

import (
	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes for the API
func setupRoutes(router *mux.Router, a *app) {
	// Tempo resolution
	router.HandleFunc("/getBpm", a.getBpm)

	// Lyrics
	router.HandleFunc("/getLyrics", a.getLyrics)

	// Most recently resolved track
	router.HandleFunc("/lastResolved", a.getLastResolved)

	// Cache management endpoints
	router.HandleFunc("/cache", a.getCacheDump)
	router.HandleFunc("/cache/clear", a.clearCache)

	// Health and stats endpoints
	router.HandleFunc("/health", a.getHealthStatus)
	router.HandleFunc("/stats", a.getStats)

	// Help endpoint
	router.HandleFunc("/", a.helpHandler)
}
