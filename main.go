package main

import (
	"net/http"
	"os"
	"time"

	"tempo-api-go/cache"
	"tempo-api-go/config"
	"tempo-api-go/logcolors"
	"tempo-api-go/middleware"
	"tempo-api-go/services/bpm"
	"tempo-api-go/services/lyrics"
	"tempo-api-go/services/providers"
	"tempo-api-go/services/providers/getsongbpm"
	"tempo-api-go/services/providers/identitytempo"
	"tempo-api-go/services/tracks"

	"golang.org/x/time/rate"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

var conf = config.Get()

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel) // Set to InfoLevel (change to DebugLevel for detailed logs)

	err := godotenv.Load()
	if err != nil {
		log.Warn("Error loading .env file, using environment variables")
	}
}

// newAppCache builds the cache: bbolt-backed when CACHE_DB_PATH is set,
// in-memory otherwise
func newAppCache() *cache.Cache {
	dbPath := conf.Configuration.CacheDBPath
	if dbPath == "" {
		log.Infof("%s No CACHE_DB_PATH configured, using in-memory cache", logcolors.LogCacheInit)
		return cache.NewMemory()
	}

	c, err := cache.NewPersistent(dbPath)
	if err != nil {
		log.Errorf("%s Failed to open persistent cache at %s: %v, falling back to in-memory", logcolors.LogCacheInit, dbPath, err)
		return cache.NewMemory()
	}
	return c
}

// sweepLoop periodically removes expired cache entries. Lazy eviction on
// reads keeps results correct without it; the sweep only bounds memory.
func sweepLoop(c *cache.Cache) {
	interval := time.Duration(conf.Configuration.CacheSweepIntervalInSeconds) * time.Second
	log.Infof("%s Starting cache sweep goroutine (interval: %v)", logcolors.LogSweep, interval)
	for {
		time.Sleep(interval)
		c.SweepExpired()
	}
}

func main() {
	appCache := newAppCache()
	defer appCache.Close()

	go sweepLoop(appCache)

	// The identity-keyed provider registers first and always runs before
	// the text-keyed fallback.
	a := &app{
		cache: appCache,
		resolver: bpm.NewResolver(appCache, []providers.Provider{
			identitytempo.NewProvider(),
			getsongbpm.NewProvider(),
		}),
		lyrics: lyrics.NewService(appCache),
		tracks: tracks.NewService(appCache),
	}

	router := mux.NewRouter()
	setupRoutes(router, a)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	limiter := middleware.NewIPRateLimiter(
		rate.Limit(conf.Configuration.RateLimitPerSecond),
		conf.Configuration.RateLimitBurstLimit,
	)

	// logging middleware
	loggedRouter := middleware.LoggingMiddleware(router)
	// chain cors middleware
	corsHandler := c.Handler(loggedRouter)
	// chain rate limiter
	handler := middleware.RateLimitMiddleware(corsHandler, limiter)

	log.Infof("%s Server listening on port %s", logcolors.LogServer, port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
