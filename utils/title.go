package utils

import (
	"regexp"
	"strings"
)

var (
	parenPattern   = regexp.MustCompile(`\s*\(.*?\)\s*`)
	bracketPattern = regexp.MustCompile(`\s*\[.*?\]\s*`)
)

// Suffixes stripped from track titles before catalog lookups. Order matters:
// longer variants come before their shorter prefixes so "- Remastered Version"
// is removed whole instead of leaving a dangling "- Remastered".
var titleSuffixes = []string{
	"- Remastered Version",
	"- Remastered",
	"- Live Version",
	"- Live",
	"- Radio Edit",
	"- Single Version",
	"- Acoustic Version",
	"- Acoustic",
	"- Bonus Track",
}

// CleanTrackTitle strips parenthesized and bracketed annotations and known
// version suffixes from a raw track title so that catalog searches match the
// canonical recording. If cleaning would reduce the title to an empty string,
// the original title is returned unchanged — an empty lookup key is useless.
func CleanTrackTitle(title string) string {
	if title == "" {
		return ""
	}

	cleaned := parenPattern.ReplaceAllString(title, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = bracketPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	for _, suffix := range titleSuffixes {
		if strings.HasSuffix(strings.ToLower(cleaned), strings.ToLower(suffix)) {
			cleaned = cleaned[:len(cleaned)-len(suffix)]
		}
	}

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return title
	}
	return cleaned
}
