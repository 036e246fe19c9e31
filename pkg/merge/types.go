package merge

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyInput is returned by Merge when there are no documents to merge.
var ErrEmptyInput = errors.New("merge: no documents to merge")

// SourceDocument is one platform's answer to the research question.
// It is created by the dispatch layer and never mutated here.
type SourceDocument struct {
	OriginID   string    `json:"origin_id"`
	Text       string    `json:"text"`
	ProducedAt time.Time `json:"produced_at"`
	Failed     bool      `json:"failed"`
}

// UniqueSentence is a surviving sentence with the origin that first contributed it.
type UniqueSentence struct {
	Text   string `json:"text"`
	Origin string `json:"origin"`
}

// UniqueContent holds the deduplicated sentences in first-seen order.
// A plain map would lose insertion order, which downstream section
// ordering depends on.
type UniqueContent []UniqueSentence

// SectionEntry is a classified sentence inside a report section.
type SectionEntry struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// SectionStructure maps section name to its classified sentences,
// in the order they were encountered during classification.
type SectionStructure map[string][]SectionEntry

// Attribution records what a single platform actually delivered,
// independent of what survived deduplication.
type Attribution struct {
	WordCount int    `json:"word_count"`
	Timestamp string `json:"timestamp"`
	HasError  bool   `json:"has_error"`
}

// AttributionMap maps origin ID to its attribution record.
type AttributionMap map[string]Attribution

// MergeResult is the complete outcome of one merge invocation.
type MergeResult struct {
	SessionID         uuid.UUID        `json:"session_id"`
	QueryID           uuid.UUID        `json:"query_id"`
	OriginalResponses []SourceDocument `json:"original_responses"`
	MergedText        string           `json:"merged_text"`
	Fallback          bool             `json:"fallback"`
	Structure         SectionStructure `json:"structure"`
	Attribution       AttributionMap   `json:"attribution"`
	CreatedAt         time.Time        `json:"created_at"`
}
