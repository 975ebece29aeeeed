package cache

import (
	"fmt"
	"strings"
)

// BPM cache keys are provider-qualified so results from different providers
// for the same track never collide or shadow one another. Entries written
// before provider qualification used the bare "<artist>-<title>" form, so
// lookups probe the qualified keys first and the legacy key last.

// BpmKey returns the provider-qualified cache key for a resolved track.
func BpmKey(providerPrefix, artist, cleanedTitle string) string {
	return strings.ToLower(fmt.Sprintf("%s-%s-%s", providerPrefix, artist, cleanedTitle))
}

// LegacyBpmKey returns the unqualified key used before provider-qualified
// keying. Kept for backward compatibility with previously cached entries.
func LegacyBpmKey(artist, cleanedTitle string) string {
	return strings.ToLower(fmt.Sprintf("%s-%s", artist, cleanedTitle))
}

// CandidateBpmKeys returns the ordered list of keys to probe for a track:
// one qualified key per known provider prefix, in provider priority order,
// then the legacy unqualified key.
func CandidateBpmKeys(providerPrefixes []string, artist, cleanedTitle string) []string {
	keys := make([]string, 0, len(providerPrefixes)+1)
	for _, prefix := range providerPrefixes {
		keys = append(keys, BpmKey(prefix, artist, cleanedTitle))
	}
	return append(keys, LegacyBpmKey(artist, cleanedTitle))
}
