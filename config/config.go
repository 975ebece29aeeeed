package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var conf = mustLoad()

type Config struct {
	Configuration struct {
		RateLimitPerSecond  int `envconfig:"RATE_LIMIT_PER_SECOND" default:"2"`
		RateLimitBurstLimit int `envconfig:"RATE_LIMIT_BURST_LIMIT" default:"5"`

		// Upstream politeness: MusicBrainz allows one request per second.
		MusicBrainzIntervalMs  int    `envconfig:"MUSICBRAINZ_INTERVAL_MS" default:"1000"`
		MusicBrainzBaseURL     string `envconfig:"MUSICBRAINZ_BASE_URL" default:"https://musicbrainz.org/ws/2"`
		MusicBrainzSearchLimit int    `envconfig:"MUSICBRAINZ_SEARCH_LIMIT" default:"5"`

		AcousticBrainzBaseURL string `envconfig:"ACOUSTICBRAINZ_BASE_URL" default:"https://acousticbrainz.org/api/v1"`

		GetSongBPMBaseURL string `envconfig:"GETSONGBPM_BASE_URL" default:"https://api.getsong.co"`
		GetSongBPMAPIKey  string `envconfig:"GETSONGBPM_API_KEY" default:""`

		LrclibBaseURL string `envconfig:"LRCLIB_BASE_URL" default:"https://lrclib.net"`

		UserAgent       string `envconfig:"USER_AGENT" default:"tempo-api/1.0"`
		HTTPTimeoutSecs int    `envconfig:"HTTP_TIMEOUT_SECS" default:"10"`

		// Cache TTLs: BPM values are stable for a week, lyrics for a day,
		// track bookkeeping only minutes.
		BpmCacheTTLInSeconds    int `envconfig:"BPM_CACHE_TTL_IN_SECONDS" default:"604800"`
		LyricsCacheTTLInSeconds int `envconfig:"LYRICS_CACHE_TTL_IN_SECONDS" default:"86400"`
		TracksCacheTTLInSeconds int `envconfig:"TRACKS_CACHE_TTL_IN_SECONDS" default:"300"`

		CacheSweepIntervalInSeconds int    `envconfig:"CACHE_SWEEP_INTERVAL_IN_SECONDS" default:"1800"`
		CacheDBPath                 string `envconfig:"CACHE_DB_PATH" default:""`
		CacheAccessToken            string `envconfig:"CACHE_ACCESS_TOKEN" default:""`

		CircuitBreakerThreshold    int `envconfig:"CIRCUIT_BREAKER_THRESHOLD" default:"5"`
		CircuitBreakerCooldownSecs int `envconfig:"CIRCUIT_BREAKER_COOLDOWN_SECS" default:"300"`
	}

	FeatureFlags struct {
		CacheCompression bool `envconfig:"FF_CACHE_COMPRESSION" default:"true"`
	}
}

// MusicBrainzInterval returns the minimum spacing between MusicBrainz requests.
func (c Config) MusicBrainzInterval() time.Duration {
	return time.Duration(c.Configuration.MusicBrainzIntervalMs) * time.Millisecond
}

// HTTPTimeout returns the transport timeout applied to all upstream clients.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Configuration.HTTPTimeoutSecs) * time.Second
}

// load loads the configuration from the environment.
func load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warnf("Error loading env config: %v", err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	return cfg, err
}

func mustLoad() Config {
	c, err := load()
	if err != nil {
		log.WithError(err).Warnf("Unable to load configuration")
	}

	return c
}

func Get() Config {
	return conf
}
