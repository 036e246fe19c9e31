package merge

import (
	"strings"
	"unicode/utf8"
)

// Validate applies the minimal quality heuristics to a synthesized
// report. All rules must pass; the failing rule is logged for
// diagnosis but the outcome stays boolean. Lengths are counted in
// runes, matching the sentence-length rule in dedup.
func (m *Merger) Validate(report string) bool {
	stripped := utf8.RuneCountInString(strings.TrimSpace(report))

	if stripped < m.cfg.MinReportLen {
		m.logger.Debug("Report rejected: too short", "length", stripped, "min", m.cfg.MinReportLen)
		return false
	}
	if total := utf8.RuneCountInString(report); total > m.cfg.MaxReportLen {
		m.logger.Debug("Report rejected: too long", "length", total, "max", m.cfg.MaxReportLen)
		return false
	}
	if strings.Count(report, "\n") < m.cfg.MinReportLines {
		m.logger.Debug("Report rejected: missing section structure", "newlines", strings.Count(report, "\n"))
		return false
	}

	return true
}
