package acousticbrainz

// segmentAnalysis is the slice of the low-level payload we care about. The
// full document carries dozens of feature blocks; only rhythm.bpm is read.
type segmentAnalysis struct {
	Rhythm struct {
		Bpm float64 `json:"bpm"`
	} `json:"rhythm"`
}
