package getsongbpm

import "encoding/json"

// searchResponse is the JSON shape of /search/?type=song&lookup=...
type searchResponse struct {
	Search searchPayload `json:"search"`
}

// searchPayload absorbs the API's union shape: a candidate array on success,
// an {"error": "..."} object when the search found nothing.
type searchPayload struct {
	Candidates []SongCandidate
	Error      string
}

func (s *searchPayload) UnmarshalJSON(data []byte) error {
	var candidates []SongCandidate
	if err := json.Unmarshal(data, &candidates); err == nil {
		s.Candidates = candidates
		return nil
	}

	var obj struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.Error = obj.Error
	return nil
}

// SongCandidate is one search hit. Tempo comes back as a string and may be
// empty for songs the catalog has not analyzed.
type SongCandidate struct {
	Title  string `json:"title"`
	Tempo  string `json:"tempo"`
	Artist struct {
		Name string `json:"name"`
	} `json:"artist"`
}
