// Package export writes merged research reports to disk as markdown.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/polyquery/research-aggregator/pkg/merge"
)

// Exporter writes reports into a fixed output directory.
type Exporter struct {
	Dir string
}

func New(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// Write saves the merged report as research_<query-id>.md and returns
// the written path. The output directory is created on first use.
func (e *Exporter) Write(result *merge.MergeResult) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("research_%s.md", result.QueryID)
	path := filepath.Join(e.Dir, filename)

	if err := os.WriteFile(path, []byte(result.MergedText), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
