package models

// Document is one catalog entry: a game's metadata flattened into a
// human-readable text blob. Documents are immutable once embedded.
type Document struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"-"`
}

// Candidate is a document returned by a nearest-neighbor query together
// with its vector similarity score. Candidates live only for the duration
// of one retrieval call.
type Candidate struct {
	Document Document `json:"document"`
	Score    float32  `json:"score"`
}
