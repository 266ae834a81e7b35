package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"docket/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.PracticeRoot != filepath.Join(tempHome, "Practice_Root") {
		t.Fatalf("unexpected practice root: %q", cfg.Paths.PracticeRoot)
	}
	wantData := filepath.Join(tempHome, ".local", "share", "docket")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Dedup.NearThreshold != 0.85 {
		t.Fatalf("unexpected near threshold: %v", cfg.Dedup.NearThreshold)
	}
	if cfg.Dedup.ComparisonWindow != 500 {
		t.Fatalf("unexpected comparison window: %d", cfg.Dedup.ComparisonWindow)
	}
	if cfg.Classify.ReviewThreshold != 0.70 {
		t.Fatalf("unexpected review threshold: %v", cfg.Classify.ReviewThreshold)
	}
	if got := cfg.UnsortedInbox(); got != filepath.Join(cfg.Paths.PracticeRoot, "09_Inbox", "01_Unsorted") {
		t.Fatalf("unexpected unsorted inbox: %q", got)
	}
}

func TestLoadParsesFileAndNormalizesExtensions(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfgPath := filepath.Join(tempHome, "docket.toml")
	body := `
[paths]
practice_root = "~/organized"

[dedup]
near_threshold = 0.9
document_extensions = ["PDF", "docx"]

[logging]
format = "JSON"
`
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Paths.PracticeRoot != filepath.Join(tempHome, "organized") {
		t.Fatalf("practice root not expanded: %q", cfg.Paths.PracticeRoot)
	}
	if cfg.Dedup.NearThreshold != 0.9 {
		t.Fatalf("threshold override lost: %v", cfg.Dedup.NearThreshold)
	}
	want := []string{".pdf", ".docx"}
	if len(cfg.Dedup.DocumentExtensions) != len(want) {
		t.Fatalf("unexpected extensions: %v", cfg.Dedup.DocumentExtensions)
	}
	for i, ext := range want {
		if cfg.Dedup.DocumentExtensions[i] != ext {
			t.Fatalf("extension %d: got %q want %q", i, cfg.Dedup.DocumentExtensions[i], ext)
		}
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging format not normalized: %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.Dedup.NearThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for threshold > 1")
	}
}

func TestValidateRejectsBadLogFormat(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfgPath := filepath.Join(tempHome, "docket.toml")
	if err := os.WriteFile(cfgPath, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(cfgPath); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestCreateSample(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("sample config is empty")
	}
}
