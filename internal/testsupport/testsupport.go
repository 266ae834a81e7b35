// Package testsupport provides shared helpers for package tests: temp-backed
// configs, manifest fixtures, and store lifecycle management.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"docket/internal/config"
	"docket/internal/inventory"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.PracticeRoot = filepath.Join(base, "practice")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportDir = filepath.Join(base, "reports")
	cfg.Paths.RulesPath = filepath.Join(base, "rules.yaml")
	cfg.Inventory.SourceDirs = []string{filepath.Join(base, "source")}
	cfg.Watch.HotDir = filepath.Join(base, "hot")
	cfg.Watch.EmailDir = filepath.Join(base, "email")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSourceDirs overrides the scanner source directories.
func WithSourceDirs(dirs ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Inventory.SourceDirs = dirs
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MustOpenStore opens an inventory.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *inventory.Store {
	t.Helper()

	store, err := inventory.Open(cfg)
	if err != nil {
		t.Fatalf("inventory.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Record builds a FileRecord fixture with derived fields filled in.
func Record(path string, size int64, digest string, modified time.Time) inventory.FileRecord {
	rec := inventory.NewRecord(path)
	rec.SizeBytes = size
	rec.ContentDigest = digest
	rec.CreatedAt = modified
	rec.ModifiedAt = modified
	return rec
}

// SeedManifest replaces the store manifest with the given records.
func SeedManifest(t testing.TB, store *inventory.Store, records []inventory.FileRecord) {
	t.Helper()

	if err := store.Replace(context.Background(), records); err != nil {
		t.Fatalf("store.Replace: %v", err)
	}
}
