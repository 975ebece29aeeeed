package providers

import "strings"

// ScoreMatch scores how well a catalog candidate matches the searched track.
// Title and artist contribute independently: 2 points for a case-insensitive
// exact match, 1 point when one string contains the other. Maximum score is 4.
func ScoreMatch(candidateTitle, candidateArtist, queryTitle, queryArtist string) int {
	score := 0

	ct := strings.ToLower(candidateTitle)
	qt := strings.ToLower(queryTitle)
	if ct != "" && qt != "" {
		if ct == qt {
			score += 2
		} else if strings.Contains(ct, qt) || strings.Contains(qt, ct) {
			score += 1
		}
	}

	ca := strings.ToLower(candidateArtist)
	qa := strings.ToLower(queryArtist)
	if ca != "" && qa != "" {
		if ca == qa {
			score += 2
		} else if strings.Contains(ca, qa) || strings.Contains(qa, ca) {
			score += 1
		}
	}

	return score
}
