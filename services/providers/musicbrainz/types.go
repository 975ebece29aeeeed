package musicbrainz

// searchResponse is the JSON shape of /recording?query=...&fmt=json
type searchResponse struct {
	Recordings []recording `json:"recordings"`
}

type recording struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	ArtistCredit []artistCredit `json:"artist-credit"`
}

type artistCredit struct {
	Name string `json:"name"`
}

// primaryArtist returns the first credited artist, or empty when the
// recording carries no artist credit at all.
func (r *recording) primaryArtist() string {
	if len(r.ArtistCredit) == 0 {
		return ""
	}
	return r.ArtistCredit[0].Name
}
