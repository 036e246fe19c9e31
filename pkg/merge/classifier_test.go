package merge

import "testing"

func TestClassifySentence(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     string
	}{
		{
			name:     "Recommendation keyword",
			sentence: "We recommend increasing the budget.",
			want:     "recommendations",
		},
		{
			name:     "Priority order favors introduction",
			sentence: "This overview presents key data points.",
			want:     "introduction",
		},
		{
			name:     "Findings keyword",
			sentence: "The data shows a clear trend.",
			want:     "findings",
		},
		{
			name:     "Analysis keyword",
			sentence: "The implication is a slower recovery.",
			want:     "analysis",
		},
		{
			name:     "Keyword matching is case-insensitive",
			sentence: "ANALYSIS of the figures tells a different story.",
			want:     "analysis",
		},
		{
			name:     "No keyword defaults to findings",
			sentence: "The weather was pleasant throughout the week.",
			want:     "findings",
		},
		{
			name:     "Should lands in recommendations",
			sentence: "Cities should invest in public transport.",
			want:     "recommendations",
		},
	}

	m := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.classifySentence(tt.sentence); got != tt.want {
				t.Errorf("classifySentence(%q) = %q, want %q", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestClassifyIsExhaustive(t *testing.T) {
	m := New(DefaultConfig())

	unique := UniqueContent{
		{Text: "This overview covers the basics.", Origin: "chatgpt"},
		{Text: "The data shows growth.", Origin: "chatgpt"},
		{Text: "Deeper analysis reveals risks.", Origin: "claude"},
		{Text: "We suggest waiting a quarter.", Origin: "claude"},
		{Text: "Nothing matches any keyword here.", Origin: "gemini"},
	}

	structure := m.Classify(unique)

	total := 0
	for _, entries := range structure {
		total += len(entries)
	}
	if total != len(unique) {
		t.Errorf("classified %d sentences across sections, want %d", total, len(unique))
	}
	if len(structure["findings"]) != 2 {
		t.Errorf("findings = %d entries, want 2 (one match, one default)", len(structure["findings"]))
	}
}

func TestClassifyPreservesOrder(t *testing.T) {
	m := New(DefaultConfig())

	unique := UniqueContent{
		{Text: "First fact about the data.", Origin: "chatgpt"},
		{Text: "Second fact about the data.", Origin: "claude"},
		{Text: "Third fact about the data.", Origin: "gemini"},
	}

	structure := m.Classify(unique)
	findings := structure["findings"]
	if len(findings) != 3 {
		t.Fatalf("findings = %d entries, want 3", len(findings))
	}
	for i, want := range []string{"chatgpt", "claude", "gemini"} {
		if findings[i].Source != want {
			t.Errorf("findings[%d].Source = %q, want %q", i, findings[i].Source, want)
		}
	}
}

func TestClassifyWithCustomTaxonomy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sections = []Section{
		{Name: "risks", Heading: "Risks", Keywords: []string{"risk", "danger"}, Cap: 5, Layout: LayoutBullets},
	}
	cfg.DefaultSection = "risks"
	m := New(cfg)

	structure := m.Classify(UniqueContent{
		{Text: "There is a danger of overfitting.", Origin: "chatgpt"},
		{Text: "Completely unrelated sentence here.", Origin: "claude"},
	})

	if len(structure["risks"]) != 2 {
		t.Errorf("risks = %d entries, want 2", len(structure["risks"]))
	}
}
