package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docket/internal/pipeline"
)

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	rules := filepath.Join(base, "rules.yaml")
	if err := os.WriteFile(rules, []byte(`
rules:
  - {name: billing, kind: filename, pattern: "invoice", target: "03_Billing/", confidence: 0.9}
`), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	configPath := filepath.Join(base, "docket.toml")
	content := fmt.Sprintf(`
[paths]
practice_root = %q
data_dir = %q
log_dir = %q
report_dir = %q
rules_path = %q

[inventory]
source_dirs = [%q]
`,
		filepath.Join(base, "practice"),
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "reports"),
		rules,
		filepath.Join(base, "source"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, base
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestScanPlanMigrateFlow(t *testing.T) {
	configPath, base := writeTestConfig(t)
	source := filepath.Join(base, "source")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}
	if err := os.WriteFile(filepath.Join(source, "invoice_march.txt"), []byte("total due"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(source, "notes.txt"), []byte("misc"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	out, err := runCLI(t, configPath, "scan")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "Inventoried 2 files") {
		t.Fatalf("unexpected scan output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(base, "reports", "manifest.csv")); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}

	out, err = runCLI(t, configPath, "plan")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out, "1 matched") {
		t.Fatalf("unexpected plan output:\n%s", out)
	}

	// Dry run first: nothing moves.
	if _, err = runCLI(t, configPath, "migrate"); err != nil {
		t.Fatalf("migrate dry run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(source, "invoice_march.txt")); err != nil {
		t.Fatal("dry run must not move files")
	}

	if _, err = runCLI(t, configPath, "migrate", "--apply"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	moved := filepath.Join(base, "practice", "03_Billing", "invoice_march.txt")
	if _, err := os.Stat(moved); err != nil {
		t.Fatalf("expected migrated file at %s: %v", moved, err)
	}
	if _, err := os.Stat(filepath.Join(source, "notes.txt")); err != nil {
		t.Fatal("review-flagged file must be skipped without --include-review")
	}
	if _, err := os.Stat(filepath.Join(base, "logs", "migration_log.csv")); err != nil {
		t.Fatalf("migration log missing: %v", err)
	}
}

func TestDupesCommand(t *testing.T) {
	configPath, base := writeTestConfig(t)
	source := filepath.Join(base, "source")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}
	for _, name := range []string{"a.txt", "copy_of_a.txt"} {
		if err := os.WriteFile(filepath.Join(source, name), []byte("same bytes"), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}

	if _, err := runCLI(t, configPath, "scan"); err != nil {
		t.Fatalf("scan: %v", err)
	}
	out, err := runCLI(t, configPath, "dedup")
	if err != nil {
		t.Fatalf("dupes: %v", err)
	}
	if !strings.Contains(out, "Report:") {
		t.Fatalf("unexpected dupes output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(base, "reports", "duplicates.csv")); err != nil {
		t.Fatalf("duplicate report missing: %v", err)
	}
}

func TestDupesRequiresInventory(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	if _, err := runCLI(t, configPath, "dedup"); !errors.Is(err, pipeline.ErrNotFound) {
		t.Fatalf("expected a not-found error for an empty inventory, got %v", err)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without --overwrite")
	}
}
