package lyrics

import (
	"regexp"
	"strings"
)

// Lyrics sources prepend page furniture: contributor counts, translation
// links, a quoted title line. Cleaning either cuts to the first song section
// header or strips known boilerplate lines from the top.
var (
	sectionHeaderPattern = regexp.MustCompile(`(?i)\[(?:Verse|Chorus|Intro|Bridge|Outro|Pre-Chorus|Refrain|Hook|Break|Interlude|Spoken|Rap)(?:\s+\d+)?[^\]]*\]`)
	extraBlankLines      = regexp.MustCompile(`\n\s*\n\s*\n`)

	boilerplatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\d+\s+Contributors?`),
		regexp.MustCompile(`(?i)Translations`),
		regexp.MustCompile(`(?i)Lyrics$`),
		regexp.MustCompile(`^".*"$`),
		regexp.MustCompile(`(?i)Read More`),
		regexp.MustCompile(`(?i)https?://`),
	}
)

// CleanContent normalizes raw lyrics text for display.
func CleanContent(raw string) string {
	if raw == "" {
		return raw
	}

	if loc := sectionHeaderPattern.FindStringIndex(raw); loc != nil {
		cleaned := raw[loc[0]:]
		cleaned = extraBlankLines.ReplaceAllString(cleaned, "\n\n")
		return strings.TrimSpace(cleaned)
	}

	lines := strings.Split(raw, "\n")
	start := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isBoilerplate(trimmed) {
			continue
		}
		start = i
		break
	}

	cleaned := strings.Join(lines[start:], "\n")
	cleaned = extraBlankLines.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

func isBoilerplate(line string) bool {
	for _, p := range boilerplatePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
