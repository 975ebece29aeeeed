package cache

import (
	"reflect"
	"testing"
)

func TestBpmKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		artist   string
		title    string
		expected string
	}{
		{
			name:     "lower-cases all parts",
			prefix:   "identity-tempo",
			artist:   "Ed Sheeran",
			title:    "Shape of You",
			expected: "identity-tempo-ed sheeran-shape of you",
		},
		{
			name:     "fallback provider prefix",
			prefix:   "fallback-tempo",
			artist:   "Daft Punk",
			title:    "One More Time",
			expected: "fallback-tempo-daft punk-one more time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BpmKey(tt.prefix, tt.artist, tt.title); got != tt.expected {
				t.Errorf("BpmKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLegacyBpmKey(t *testing.T) {
	if got := LegacyBpmKey("Ed Sheeran", "Shape of You"); got != "ed sheeran-shape of you" {
		t.Errorf("LegacyBpmKey() = %q", got)
	}
}

func TestCandidateBpmKeys_Order(t *testing.T) {
	got := CandidateBpmKeys([]string{"identity-tempo", "fallback-tempo"}, "Ed Sheeran", "Shape of You")

	expected := []string{
		"identity-tempo-ed sheeran-shape of you",
		"fallback-tempo-ed sheeran-shape of you",
		"ed sheeran-shape of you",
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("CandidateBpmKeys() = %v, want %v", got, expected)
	}
}

func TestCandidateBpmKeys_NoProviders(t *testing.T) {
	// Even with no known providers the legacy key is still probed.
	got := CandidateBpmKeys(nil, "Ed Sheeran", "Shape of You")
	if len(got) != 1 || got[0] != "ed sheeran-shape of you" {
		t.Errorf("CandidateBpmKeys(nil, ...) = %v", got)
	}
}
