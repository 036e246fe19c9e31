package merge

import (
	"fmt"
	"strings"
	"unicode"
)

// BuildReport assembles the synthesized markdown report, section by
// section in taxonomy order. Empty sections are omitted entirely. Each
// section renders at most its configured cap of entries; the unabridged
// lists stay on the SectionStructure for downstream callers. The
// sources footer lists one line per document, in input order.
func (m *Merger) BuildReport(structure SectionStructure, attribution AttributionMap, documents []SourceDocument) string {
	var b strings.Builder
	b.WriteString("# Research Summary\n")

	for _, section := range m.cfg.Sections {
		entries := structure[section.Name]
		if len(entries) == 0 {
			continue
		}
		if len(entries) > section.Cap {
			entries = entries[:section.Cap]
		}

		b.WriteString("\n## " + section.Heading + "\n\n")
		switch section.Layout {
		case LayoutBullets:
			for _, entry := range entries {
				b.WriteString("- " + entry.Text + "\n")
			}
		default:
			texts := make([]string, len(entries))
			for i, entry := range entries {
				texts[i] = entry.Text
			}
			b.WriteString(strings.Join(texts, " ") + "\n")
		}
	}

	b.WriteString("\n---\n\n## Sources\n\n")

	// Attribution is a map; the document list fixes the footer order.
	for _, doc := range documents {
		attr, ok := attribution[doc.OriginID]
		if !ok {
			continue
		}
		status := "contributed"
		if attr.HasError {
			status = "error"
		}
		b.WriteString(fmt.Sprintf("- **%s**: %d words (%s)\n", titleCase(doc.OriginID), attr.WordCount, status))
	}

	return b.String()
}

// BuildFallback renders each non-failed document verbatim under its own
// heading. No dedup, no classification: this is the guaranteed-readable
// representation used when the synthesized report fails validation.
func (m *Merger) BuildFallback(documents []SourceDocument) string {
	blocks := []string{"# Research Results"}

	for _, doc := range documents {
		if doc.Failed {
			continue
		}
		text := doc.Text
		if runes := []rune(text); len(runes) > m.cfg.FallbackCharLimit {
			text = string(runes[:m.cfg.FallbackCharLimit]) + "\n\n[Truncated]"
		}
		blocks = append(blocks, "## "+titleCase(doc.OriginID)+"\n\n"+text)
	}

	return strings.Join(blocks, "\n\n")
}

// Attribute computes per-origin word counts and error flags from the
// original documents, independent of what survived deduplication.
func (m *Merger) Attribute(documents []SourceDocument) AttributionMap {
	attribution := make(AttributionMap, len(documents))
	for _, doc := range documents {
		attribution[doc.OriginID] = Attribution{
			WordCount: len(strings.Fields(doc.Text)),
			Timestamp: doc.ProducedAt.Format("2006-01-02T15:04:05Z07:00"),
			HasError:  doc.Failed,
		}
	}
	return attribution
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
