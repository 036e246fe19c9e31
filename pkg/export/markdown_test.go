package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/polyquery/research-aggregator/pkg/merge"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	exporter := New(filepath.Join(dir, "reports"))

	result := &merge.MergeResult{
		QueryID:    uuid.New(),
		MergedText: "# Research Summary\n\nSolar capacity grew 20% in 2024.\n",
	}

	path, err := exporter.Write(result)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if !strings.HasSuffix(path, "research_"+result.QueryID.String()+".md") {
		t.Errorf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != result.MergedText {
		t.Errorf("written content does not match merged text")
	}
}
