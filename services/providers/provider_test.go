package providers

import (
	"context"
	"testing"
)

// mockProvider is a simple provider for testing
type mockProvider struct {
	name           string
	cacheKeyPrefix string
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) CacheKeyPrefix() string {
	return m.cacheKeyPrefix
}

func (m *mockProvider) FetchTempo(ctx context.Context, title, artist string) (*TempoResult, error) {
	return &TempoResult{
		Bpm:      120,
		Provider: m.name,
	}, nil
}

func newMockProvider(name, prefix string) *mockProvider {
	return &mockProvider{name: name, cacheKeyPrefix: prefix}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("Register single provider", func(t *testing.T) {
		r := &Registry{providers: make(map[string]Provider)}
		p := newMockProvider("test", "test")

		r.Register(p)

		if !r.Has("test") {
			t.Error("Provider 'test' should be registered")
		}
	})

	t.Run("Register multiple providers", func(t *testing.T) {
		r := &Registry{providers: make(map[string]Provider)}

		r.Register(newMockProvider("identity-tempo", "identity-tempo"))
		r.Register(newMockProvider("fallback-tempo", "fallback-tempo"))

		if len(r.providers) != 2 {
			t.Errorf("Expected 2 providers, got %d", len(r.providers))
		}
	})

	t.Run("Register overwrites existing provider", func(t *testing.T) {
		r := &Registry{providers: make(map[string]Provider)}

		r.Register(newMockProvider("test", "old_prefix"))
		r.Register(newMockProvider("test", "new_prefix"))

		p, err := r.Get("test")
		if err != nil {
			t.Fatalf("Failed to get provider: %v", err)
		}

		if p.CacheKeyPrefix() != "new_prefix" {
			t.Errorf("Expected new_prefix, got %s", p.CacheKeyPrefix())
		}
	})
}

func TestRegistry_Get(t *testing.T) {
	r := &Registry{providers: make(map[string]Provider)}
	r.Register(newMockProvider("identity-tempo", "identity-tempo"))

	t.Run("Get existing provider", func(t *testing.T) {
		p, err := r.Get("identity-tempo")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p.Name() != "identity-tempo" {
			t.Errorf("Expected 'identity-tempo', got %s", p.Name())
		}
	})

	t.Run("Get non-existent provider returns error", func(t *testing.T) {
		if _, err := r.Get("nope"); err == nil {
			t.Error("Expected error for unknown provider")
		}
	})
}

func TestRegistry_Order(t *testing.T) {
	// Fallback priority is registration order: identity-keyed primary first,
	// text-keyed fallback second.
	r := &Registry{providers: make(map[string]Provider)}
	r.Register(newMockProvider("identity-tempo", "identity-tempo"))
	r.Register(newMockProvider("fallback-tempo", "fallback-tempo"))

	names := r.List()
	if len(names) != 2 || names[0] != "identity-tempo" || names[1] != "fallback-tempo" {
		t.Errorf("Expected registration order preserved, got %v", names)
	}

	ordered := r.Ordered()
	if len(ordered) != 2 || ordered[0].Name() != "identity-tempo" {
		t.Errorf("Ordered() did not preserve registration order")
	}

	t.Run("re-registering does not duplicate order entry", func(t *testing.T) {
		r.Register(newMockProvider("identity-tempo", "identity-tempo"))
		if len(r.List()) != 2 {
			t.Errorf("Expected 2 names after re-register, got %v", r.List())
		}
	})
}
