package merge

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// sentenceEnd matches a run of terminal punctuation followed by
	// whitespace. The punctuation stays attached to the preceding
	// sentence; the whitespace is consumed.
	//
	// This deliberately mis-splits abbreviations ("Dr. Smith") and
	// decimals ("3.14"). Dedup granularity and the per-section caps
	// depend on these splitting semantics, so they stay as-is.
	sentenceEnd = regexp.MustCompile(`[.!?]+[ \t\r\n]+`)

	// nonWord strips everything that is not a letter, digit, underscore,
	// or whitespace. Go's \w is ASCII-only, which would erase CJK and
	// Cyrillic text entirely and collapse distinct sentences to one key.
	nonWord  = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	spaceRun = regexp.MustCompile(`\s+`)
)

// splitSentences splits text at sentence boundaries, keeping the
// terminal punctuation on each sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		end := loc[0]
		for end < loc[1] && (text[end] == '.' || text[end] == '!' || text[end] == '?') {
			end++
		}
		sentences = append(sentences, text[start:end])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// normalizeKey reduces a sentence to its comparison form: lowercase,
// punctuation removed, whitespace runs collapsed. Used only for
// equality, never for display.
func normalizeKey(sentence string) string {
	key := strings.ToLower(sentence)
	key = nonWord.ReplaceAllString(key, "")
	key = spaceRun.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

// Deduplicate splits every document into sentences and keeps the first
// occurrence of each normalized form across all documents. Document
// order fixes the first-seen-wins tie-break, so callers must pass a
// stable ordering. The seen-set is local to this call; concurrent
// merges need no synchronization.
func (m *Merger) Deduplicate(documents []SourceDocument) UniqueContent {
	var unique UniqueContent
	seen := make(map[string]struct{})

	for _, doc := range documents {
		for _, raw := range splitSentences(doc.Text) {
			sentence := strings.TrimSpace(raw)
			if utf8.RuneCountInString(sentence) < m.cfg.MinSentenceLen {
				if sentence != "" {
					m.logger.Debug("Discarding short fragment", "origin", doc.OriginID, "fragment", sentence)
				}
				continue
			}

			key := normalizeKey(sentence)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			unique = append(unique, UniqueSentence{Text: sentence, Origin: doc.OriginID})
		}
	}

	return unique
}
