package model

// UnitMetadata travels with a retrieval unit through the index and is what
// lets a citation resolve back to a video and a time range.
type UnitMetadata struct {
	Title   string `json:"title"`
	VideoID string `json:"video_id"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// RetrievalUnit is the indexed, searchable representation of a chunk. The
// id is derived from (video id, chunk ordinal) and never changes across
// re-ingestions.
type RetrievalUnit struct {
	ID       uint64       `json:"id"`
	Text     string       `json:"text"`
	Metadata UnitMetadata `json:"metadata"`
}

// Hit is one search result, ordered by descending similarity.
type Hit struct {
	Unit  RetrievalUnit `json:"unit"`
	Score float32       `json:"score"`
}

// Citation points an answer back to a source passage and its time range.
// SourceIndex is -1 when the reply named a video but not a context source.
type Citation struct {
	SourceIndex  int    `json:"source_index"`
	VideoID      string `json:"video_id"`
	StartSeconds int    `json:"start_seconds"`
	EndSeconds   int    `json:"end_seconds"`
	Quote        string `json:"quote,omitempty"`
}

// Answer is the composed reply plus whatever citations could be recovered
// from it. Zero citations is a valid outcome.
type Answer struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}
