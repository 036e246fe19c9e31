package merge

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Merger runs the merge pipeline: deduplicate, classify, attribute,
// assemble, validate, fall back. It is stateless aside from logging,
// so one Merger may serve concurrent merge calls.
type Merger struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Merger with the given config, logging to slog.Default.
func New(cfg Config) *Merger {
	return &Merger{cfg: cfg, logger: slog.Default()}
}

// NewWithLogger creates a Merger that logs through the given logger.
func NewWithLogger(cfg Config, logger *slog.Logger) *Merger {
	return &Merger{cfg: cfg, logger: logger}
}

// composed is the internal tagged outcome of report assembly: either
// the synthesized report or the fallback. Callers of Merge only see
// the flattened text; the distinction stays observable in logs.
type composed struct {
	text     string
	fallback bool
}

func (m *Merger) compose(structure SectionStructure, attribution AttributionMap, documents []SourceDocument) composed {
	report := m.BuildReport(structure, attribution, documents)
	if m.Validate(report) {
		return composed{text: report}
	}

	m.logger.Warn("Synthesized report failed validation, substituting fallback", "report_length", len(report))
	return composed{text: m.BuildFallback(documents), fallback: true}
}

// Merge runs the full pipeline over the documents and packages the
// result. The only fatal condition is an empty document list; every
// other irregularity degrades to an emptier report or the fallback.
func (m *Merger) Merge(documents []SourceDocument, sessionID, queryID uuid.UUID) (*MergeResult, error) {
	if len(documents) == 0 {
		return nil, ErrEmptyInput
	}

	unique := m.Deduplicate(documents)
	structure := m.Classify(unique)
	attribution := m.Attribute(documents)

	outcome := m.compose(structure, attribution, documents)

	m.logger.Info("Merge complete",
		"documents", len(documents),
		"unique_sentences", len(unique),
		"used_fallback", outcome.fallback)

	return &MergeResult{
		SessionID:         sessionID,
		QueryID:           queryID,
		OriginalResponses: documents,
		MergedText:        outcome.text,
		Fallback:          outcome.fallback,
		Structure:         structure,
		Attribution:       attribution,
		CreatedAt:         time.Now(),
	}, nil
}
