package merge

import "strings"

// Classify assigns every unique sentence to exactly one section.
// Sections are tested in taxonomy order and the first keyword match
// wins; sentences matching nothing land in the default section, which
// makes classification total. Pure function of its input.
func (m *Merger) Classify(unique UniqueContent) SectionStructure {
	structure := make(SectionStructure, len(m.cfg.Sections))
	for _, section := range m.cfg.Sections {
		structure[section.Name] = nil
	}

	for _, sentence := range unique {
		name := m.classifySentence(sentence.Text)
		structure[name] = append(structure[name], SectionEntry{
			Text:   sentence.Text,
			Source: sentence.Origin,
		})
	}

	return structure
}

func (m *Merger) classifySentence(text string) string {
	lower := strings.ToLower(text)
	for _, section := range m.cfg.Sections {
		for _, keyword := range section.Keywords {
			if strings.Contains(lower, keyword) {
				return section.Name
			}
		}
	}
	return m.cfg.DefaultSection
}
