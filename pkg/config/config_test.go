package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want default 8081", cfg.Port)
	}
	if cfg.CollectionName != "research_memory" {
		t.Errorf("CollectionName = %q", cfg.CollectionName)
	}
	if cfg.Merge.FindingsCap != 7 {
		t.Errorf("FindingsCap = %d, want 7", cfg.Merge.FindingsCap)
	}
}

func TestMergeConfigMapsTuning(t *testing.T) {
	t.Setenv("MERGE_FINDINGS_CAP", "2")
	t.Setenv("MERGE_MIN_REPORT_LEN", "250")

	cfg := Load()
	mc := cfg.MergeConfig()

	if mc.MinReportLen != 250 {
		t.Errorf("MinReportLen = %d, want 250", mc.MinReportLen)
	}

	found := false
	for _, s := range mc.Sections {
		if s.Name == "findings" {
			found = true
			if s.Cap != 2 {
				t.Errorf("findings cap = %d, want 2", s.Cap)
			}
		}
	}
	if !found {
		t.Fatalf("findings section missing from merge config")
	}
}

func TestGetEnvAsIntRejectsGarbage(t *testing.T) {
	t.Setenv("MERGE_FINDINGS_CAP", "not-a-number")

	cfg := Load()
	if cfg.Merge.FindingsCap != 7 {
		t.Errorf("FindingsCap = %d, want default 7 on parse failure", cfg.Merge.FindingsCap)
	}
}
