package merge

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestMergeEmptyInput(t *testing.T) {
	m := New(DefaultConfig())

	_, err := m.Merge(nil, uuid.New(), uuid.New())
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Merge(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestMergeHappyPath(t *testing.T) {
	m := New(DefaultConfig())
	sessionID, queryID := uuid.New(), uuid.New()

	docs := []SourceDocument{
		doc("chatgpt", "This overview covers climate policy in depth. The data shows emissions are falling. Governments should accelerate the transition."),
		doc("claude", "The data shows emissions are falling. Careful analysis reveals regional differences. Consider investing in grid storage."),
	}

	result, err := m.Merge(docs, sessionID, queryID)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if result.SessionID != sessionID || result.QueryID != queryID {
		t.Errorf("result IDs not propagated")
	}
	if !strings.HasPrefix(result.MergedText, "# Research Summary") {
		t.Errorf("expected synthesized report, got:\n%s", result.MergedText)
	}
	if result.Fallback {
		t.Errorf("healthy merge should not be tagged as fallback")
	}
	if len(result.Attribution) != 2 {
		t.Errorf("attribution has %d entries, want 2", len(result.Attribution))
	}
	if len(result.OriginalResponses) != 2 {
		t.Errorf("original responses not preserved")
	}

	// The duplicated sentence survives once, attributed to chatgpt.
	var duplicated []SectionEntry
	for _, entries := range result.Structure {
		for _, e := range entries {
			if e.Text == "The data shows emissions are falling." {
				duplicated = append(duplicated, e)
			}
		}
	}
	if len(duplicated) != 1 {
		t.Fatalf("duplicated sentence appears %d times across sections, want 1", len(duplicated))
	}
	if duplicated[0].Source != "chatgpt" {
		t.Errorf("duplicated sentence attributed to %q, want first-seen chatgpt", duplicated[0].Source)
	}
}

func TestMergeFallsBackOnShortInput(t *testing.T) {
	m := New(DefaultConfig())

	// Every fragment is under the minimum sentence length, so the
	// synthesized report has no body and fails the length check.
	docs := []SourceDocument{
		doc("chatgpt", "Yes. No. Maybe so."),
	}

	result, err := m.Merge(docs, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if !strings.HasPrefix(result.MergedText, "# Research Results") {
		t.Errorf("expected fallback report, got:\n%s", result.MergedText)
	}
	if !result.Fallback {
		t.Errorf("fallback result should be tagged as such")
	}
	if strings.HasPrefix(result.MergedText, "# Research Summary") {
		t.Errorf("synthesized report should have been discarded")
	}
}

func TestMergeFailedDocumentHandling(t *testing.T) {
	m := New(DefaultConfig())

	docs := []SourceDocument{
		doc("chatgpt", "The survey found broad support for the policy."),
		doc("gemini", "Careful analysis reveals a different picture entirely."),
		{OriginID: "claude", Text: "", Failed: true},
	}

	result, err := m.Merge(docs, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if len(result.Attribution) != 3 {
		t.Errorf("attribution has %d entries, want 3 including the failed document", len(result.Attribution))
	}
	if !result.Attribution["claude"].HasError {
		t.Errorf("failed document should carry the error flag in attribution")
	}

	total := 0
	for _, entries := range result.Structure {
		total += len(entries)
	}
	if total != 2 {
		t.Errorf("structure holds %d sentences, want 2 (failed document contributes none)", total)
	}
}

func TestComposeTagsFallback(t *testing.T) {
	m := New(DefaultConfig())

	// Fragments under the minimum sentence length leave the report
	// without a body, so it fails validation.
	docs := []SourceDocument{doc("chatgpt", "Yes. No. Maybe so.")}
	structure := m.Classify(m.Deduplicate(docs))
	outcome := m.compose(structure, m.Attribute(docs), docs)

	if !outcome.fallback {
		t.Errorf("compose should tag the fallback path")
	}
	if !strings.HasPrefix(outcome.text, "# Research Results") {
		t.Errorf("fallback text = %q", outcome.text)
	}
}

func TestMergeIsDeterministic(t *testing.T) {
	m := New(DefaultConfig())

	docs := []SourceDocument{
		doc("chatgpt", "This overview covers the market. The data shows steady growth. Investors should stay patient."),
		doc("claude", "Fresh analysis reveals hidden risks. The data shows steady growth."),
	}

	first, err := m.Merge(docs, uuid.Nil, uuid.Nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	second, err := m.Merge(docs, uuid.Nil, uuid.Nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if first.MergedText != second.MergedText {
		t.Errorf("merged text differs between identical runs")
	}
}
