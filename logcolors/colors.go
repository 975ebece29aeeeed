package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Red    = "\033[31m"
)

// Cache-related log prefixes
const (
	LogCacheInit = Blue + "[Cache:Init]" + Reset
	LogCache     = Blue + "[Cache]" + Reset
	LogSweep     = Cyan + "[Cache:Sweep]" + Reset
	LogCacheBpm  = Green + "[Cache:Bpm]" + Reset
)

// Rate limiting log prefixes
const (
	LogRateLimit = Purple + "[RateLimit]" + Reset
	LogPacer     = Purple + "[Pacer]" + Reset
)

// Server/Init log prefixes
const (
	LogServer = Green + "[Server]" + Reset
	LogConfig = Cyan + "[Config]" + Reset
	LogStats  = Blue + "[Stats]" + Reset
)

// Provider log prefixes
const (
	LogMusicBrainz    = Blue + "[MusicBrainz]" + Reset
	LogAcousticBrainz = Cyan + "[AcousticBrainz]" + Reset
	LogGetSongBPM     = Purple + "[GetSongBPM]" + Reset
	LogBpm            = Green + "[Bpm]" + Reset
	LogLyrics         = Blue + "[Lyrics]" + Reset
	LogSearch         = Blue + "[Search]" + Reset
	LogMatch          = Green + "[Match]" + Reset
	LogSuccess        = Green + "[Success]" + Reset
	LogFallback       = Cyan + "[Fallback]" + Reset
	LogWarning        = Red + "[Warning]" + Reset
)

// CircuitBreakerPrefix returns a colored circuit breaker prefix with the given name
func CircuitBreakerPrefix(name string) string {
	return Purple + "[CircuitBreaker:" + name + "]" + Reset
}
