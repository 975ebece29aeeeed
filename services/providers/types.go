package providers

import "errors"

// Sentinel errors classifying provider failures. Callers branch with
// errors.Is; everything else coming out of a provider is a transport-level
// failure wrapped in a ProviderError.
var (
	// ErrMissingInput means the caller passed an empty title or artist.
	ErrMissingInput = errors.New("missing track or artist name")

	// ErrNotConfigured means the provider's credential is absent and the
	// provider cannot be used for the lifetime of the process.
	ErrNotConfigured = errors.New("provider is not configured")

	// ErrNoMatch means the catalog had no suitable candidate. Routine;
	// triggers fallback.
	ErrNoMatch = errors.New("no suitable match found")

	// ErrRateLimited means the upstream rejected the request with a 503/429.
	ErrRateLimited = errors.New("upstream rate limit exceeded")

	// ErrMalformedResponse means the upstream payload could not be parsed
	// or did not have the expected shape.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// TempoResult is the standardized result from any tempo provider.
type TempoResult struct {
	// Bpm is the tempo rounded to the nearest integer, for display.
	Bpm int `json:"bpm"`

	// PreciseBpm is the raw tempo rounded to one decimal place. Zero when
	// the provider only reports integer tempo.
	PreciseBpm float64 `json:"preciseBpm,omitempty"`

	// Provider is the name of the provider that produced this tempo.
	Provider string `json:"provider"`
}

// RecordingMatch identifies a recording resolved from the identity catalog.
type RecordingMatch struct {
	ID     string
	Title  string
	Artist string
}

// ProviderError represents an error from a provider with additional context
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Provider + ": " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}
