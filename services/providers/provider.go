package providers

import (
	"context"
	"fmt"
	"sync"
)

// Provider defines the interface that all tempo providers must implement
type Provider interface {
	// Name returns the provider's identifier (e.g., "identity-tempo",
	// "fallback-tempo"). The name is also the provenance tag stamped on
	// results served from this provider.
	Name() string

	// FetchTempo fetches the tempo for the given track.
	// Parameters:
	//   - ctx: context for cancellation and timeouts
	//   - title: cleaned track title
	//   - artist: primary artist name
	// Returns:
	//   - *TempoResult: the tempo result if found
	//   - error: classified by the sentinel errors in this package
	FetchTempo(ctx context.Context, title, artist string) (*TempoResult, error)

	// CacheKeyPrefix returns the prefix used for cache keys
	// (e.g., "identity-tempo", "fallback-tempo").
	CacheKeyPrefix() string
}

// Registry holds all registered providers
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	order     []string
}

var (
	globalRegistry *Registry
	registryOnce   sync.Once
)

// GetRegistry returns the global provider registry
func GetRegistry() *Registry {
	registryOnce.Do(func() {
		globalRegistry = &Registry{
			providers: make(map[string]Provider),
		}
	})
	return globalRegistry
}

// Register adds a provider to the registry. Registration order is preserved
// and defines fallback priority.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[p.Name()]; !exists {
		r.order = append(r.order, p.Name())
	}
	r.providers[p.Name()] = p
}

// Get retrieves a provider by name
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}
	return p, nil
}

// List returns all registered provider names in registration order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Ordered returns all registered providers in registration order
func (r *Registry) Ordered() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		ordered = append(ordered, r.providers[name])
	}
	return ordered
}

// Has checks if a provider is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[name]
	return ok
}

// Register is a convenience function to register a provider in the global registry
func Register(p Provider) {
	GetRegistry().Register(p)
}

// Get is a convenience function to get a provider from the global registry
func Get(name string) (Provider, error) {
	return GetRegistry().Get(name)
}

// List is a convenience function to list all providers in the global registry
func List() []string {
	return GetRegistry().List()
}

// Has is a convenience function to check if a provider exists in the global registry
func Has(name string) bool {
	return GetRegistry().Has(name)
}
