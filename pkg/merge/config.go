package merge

// SectionLayout controls how a section's entries are rendered in the report.
type SectionLayout int

const (
	// LayoutParagraph joins the capped entries with single spaces.
	LayoutParagraph SectionLayout = iota
	// LayoutBullets renders each capped entry as a markdown bullet.
	LayoutBullets
)

// Section defines one entry of the report taxonomy. Keyword matching is
// case-insensitive substring matching against the sentence text.
type Section struct {
	Name     string
	Heading  string
	Keywords []string
	// Cap bounds how many entries make it into the rendered report.
	// The full list stays available on the SectionStructure.
	Cap    int
	Layout SectionLayout
}

// Config carries the merge tuning knobs. The taxonomy and all numeric
// limits are data so tests and deployments can substitute alternates
// without touching the pipeline.
type Config struct {
	// Sections in classification priority order. The first section whose
	// keyword set matches wins.
	Sections []Section

	// DefaultSection receives sentences that match no keyword set.
	DefaultSection string

	// MinSentenceLen discards shorter fragments (stray punctuation,
	// list markers) after whitespace stripping.
	MinSentenceLen int

	// FallbackCharLimit truncates each source's text in the fallback report.
	FallbackCharLimit int

	// Validator thresholds.
	MinReportLen   int
	MaxReportLen   int
	MinReportLines int
}

// DefaultConfig returns the standard taxonomy and limits.
func DefaultConfig() Config {
	return Config{
		Sections: []Section{
			{
				Name:     "introduction",
				Heading:  "Introduction",
				Keywords: []string{"intro", "overview", "summary", "background", "context"},
				Cap:      3,
				Layout:   LayoutParagraph,
			},
			{
				Name:     "findings",
				Heading:  "Key Findings",
				Keywords: []string{"found", "data", "result", "discover", "evidence", "fact", "statistic"},
				Cap:      7,
				Layout:   LayoutBullets,
			},
			{
				Name:     "analysis",
				Heading:  "Analysis",
				Keywords: []string{"analysis", "analyze", "implication", "insight", "interpretation", "significance"},
				Cap:      4,
				Layout:   LayoutParagraph,
			},
			{
				Name:     "recommendations",
				Heading:  "Recommendations",
				Keywords: []string{"recommend", "suggest", "should", "action", "next step", "consider", "advise"},
				Cap:      5,
				Layout:   LayoutBullets,
			},
		},
		DefaultSection:    "findings",
		MinSentenceLen:    10,
		FallbackCharLimit: 3000,
		MinReportLen:      100,
		MaxReportLen:      50000,
		MinReportLines:    3,
	}
}
