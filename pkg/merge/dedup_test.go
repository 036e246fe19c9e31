package merge

import (
	"testing"
	"time"
)

func doc(origin, text string) SourceDocument {
	return SourceDocument{
		OriginID:   origin,
		Text:       text,
		ProducedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "Two sentences",
			input: "Climate change is real. It is caused by emissions.",
			want:  []string{"Climate change is real.", "It is caused by emissions."},
		},
		{
			name:  "Exclamation and question",
			input: "This is surprising! Is it really true? Yes it is.",
			want:  []string{"This is surprising!", "Is it really true?", "Yes it is."},
		},
		{
			name:  "Punctuation run kept",
			input: "Unbelievable!!! More text follows here.",
			want:  []string{"Unbelievable!!!", "More text follows here."},
		},
		{
			name:  "No terminal punctuation",
			input: "a sentence without an ending",
			want:  []string{"a sentence without an ending"},
		},
		{
			name:  "Empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSentences(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitSentences(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"Case insensitive", "Climate Change Is Real.", "climate change is real"},
		{"Punctuation stripped", "Hello, world!", "Hello world"},
		{"Whitespace collapsed", "too   many    spaces here", "too many spaces here"},
		{"Leading and trailing space", "  padded sentence.  ", "padded sentence"},
		{"Cyrillic case and punctuation", "Экономика растёт быстро!", "экономика растёт быстро"},
		{"CJK punctuation stripped", "気候変動は現実です!", "気候変動は現実です"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if normalizeKey(tt.a) != normalizeKey(tt.b) {
				t.Errorf("normalizeKey(%q) = %q, normalizeKey(%q) = %q; want equal",
					tt.a, normalizeKey(tt.a), tt.b, normalizeKey(tt.b))
			}
		})
	}
}

func TestDeduplicateCrossSource(t *testing.T) {
	m := New(DefaultConfig())

	docs := []SourceDocument{
		doc("chatgpt", "Climate change is real. It is caused by emissions."),
		doc("claude", "Climate change is real. New policies are recommended."),
	}

	unique := m.Deduplicate(docs)

	want := []UniqueSentence{
		{Text: "Climate change is real.", Origin: "chatgpt"},
		{Text: "It is caused by emissions.", Origin: "chatgpt"},
		{Text: "New policies are recommended.", Origin: "claude"},
	}

	if len(unique) != len(want) {
		t.Fatalf("got %d unique sentences, want %d: %v", len(unique), len(want), unique)
	}
	for i := range want {
		if unique[i] != want[i] {
			t.Errorf("unique[%d] = %+v, want %+v", i, unique[i], want[i])
		}
	}
}

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name string
		docs []SourceDocument
		want int
	}{
		{
			name: "Short fragment discarded",
			docs: []SourceDocument{doc("chatgpt", "OK sure. This longer sentence survives the cut.")},
			want: 1,
		},
		{
			name: "Case and punctuation duplicates collapse",
			docs: []SourceDocument{
				doc("chatgpt", "The economy is growing rapidly."),
				doc("claude", "THE ECONOMY IS GROWING, RAPIDLY!"),
			},
			want: 1,
		},
		{
			name: "Same document repeats itself",
			docs: []SourceDocument{
				doc("chatgpt", "Renewables are getting cheaper. Renewables are getting cheaper."),
			},
			want: 1,
		},
		{
			name: "Empty document list",
			docs: nil,
			want: 0,
		},
		{
			name: "All empty texts",
			docs: []SourceDocument{doc("chatgpt", ""), doc("claude", "")},
			want: 0,
		},
		{
			name: "Near-duplicates with wording differences are kept",
			docs: []SourceDocument{
				doc("chatgpt", "Solar power adoption is increasing."),
				doc("claude", "Solar power adoption is rising."),
			},
			want: 2,
		},
		{
			name: "Distinct non-Latin sentences are kept",
			docs: []SourceDocument{
				doc("gemini", "気候変動は現実です! 経済は急成長しています!"),
			},
			want: 2,
		},
		{
			name: "Non-Latin duplicates across sources collapse",
			docs: []SourceDocument{
				doc("chatgpt", "Экономика растёт быстро!"),
				doc("claude", "экономика растёт, быстро."),
			},
			want: 1,
		},
	}

	m := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique := m.Deduplicate(tt.docs)
			if len(unique) != tt.want {
				t.Errorf("got %d unique sentences, want %d: %v", len(unique), tt.want, unique)
			}
		})
	}
}

func TestDeduplicateKeysAreUnique(t *testing.T) {
	m := New(DefaultConfig())

	docs := []SourceDocument{
		doc("chatgpt", "The study found strong results. Analysts recommend caution going forward."),
		doc("claude", "The study FOUND strong results! Budgets should be reviewed quarterly."),
		doc("gemini", "Analysts recommend caution going forward. The outlook remains uncertain overall."),
	}

	unique := m.Deduplicate(docs)
	keys := make(map[string]struct{}, len(unique))
	for _, s := range unique {
		keys[normalizeKey(s.Text)] = struct{}{}
	}
	if len(keys) != len(unique) {
		t.Errorf("got %d distinct keys for %d sentences; keys must be unique", len(keys), len(unique))
	}
}
