package inventory_test

import (
	"context"
	"path/filepath"
	"testing"

	"docket/internal/inventory"
	"docket/internal/logging"
	"docket/internal/testsupport"
)

func TestScannerProducesRecordsAndSkipsHidden(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := cfg.Inventory.SourceDirs[0]
	testsupport.WriteFile(t, filepath.Join(source, "brief.txt"), "plaintiff motion for summary judgment")
	testsupport.WriteFile(t, filepath.Join(source, "nested", "exhibit.PDF"), "exhibit body")
	testsupport.WriteFile(t, filepath.Join(source, ".hidden.txt"), "secret")
	testsupport.WriteFile(t, filepath.Join(source, ".git", "config"), "noise")

	scanner := inventory.NewScanner(cfg, logging.NewNop())
	var calls int
	records, err := scanner.Scan(context.Background(), func(done, total int) { calls++ })
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	byName := map[string]inventory.FileRecord{}
	for _, rec := range records {
		byName[rec.Filename] = rec
	}
	brief, ok := byName["brief.txt"]
	if !ok {
		t.Fatalf("brief.txt missing from manifest: %+v", records)
	}
	if !brief.HasDigest() {
		t.Fatalf("expected digest for readable file, got %q", brief.ContentDigest)
	}
	if brief.SizeBytes == 0 {
		t.Fatal("expected non-zero size")
	}
	if brief.MIMEType == "" {
		t.Fatal("expected MIME type")
	}
	if brief.ModifiedAt.IsZero() {
		t.Fatal("expected modified timestamp")
	}
	exhibit := byName["exhibit.PDF"]
	if exhibit.Extension != ".pdf" {
		t.Fatalf("extension should be lower-cased: %q", exhibit.Extension)
	}
	if calls != 2 {
		t.Fatalf("expected 2 progress callbacks, got %d", calls)
	}
}

func TestScannerIncludesHiddenWhenConfigured(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Inventory.IncludeHidden = true
	source := cfg.Inventory.SourceDirs[0]
	testsupport.WriteFile(t, filepath.Join(source, ".hidden.txt"), "secret")

	scanner := inventory.NewScanner(cfg, logging.NewNop())
	records, err := scanner.Scan(context.Background(), nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected hidden file to be scanned, got %d records", len(records))
	}
}

func TestScannerMissingSourceIsSkipped(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSourceDirs(filepath.Join(t.TempDir(), "missing")))

	scanner := inventory.NewScanner(cfg, logging.NewNop())
	records, err := scanner.Scan(context.Background(), nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty manifest, got %d records", len(records))
	}
}

func TestInventoryCSVRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := cfg.Inventory.SourceDirs[0]
	testsupport.WriteFile(t, filepath.Join(source, "letter.txt"), "dear counsel")

	scanner := inventory.NewScanner(cfg, logging.NewNop())
	records, err := scanner.Scan(context.Background(), nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	csvPath := filepath.Join(cfg.Paths.ReportDir, "inventory.csv")
	if err := inventory.WriteCSV(csvPath, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	back, err := inventory.ReadCSV(csvPath)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(back) != len(records) {
		t.Fatalf("expected %d records after round trip, got %d", len(records), len(back))
	}
	if back[0].Path != records[0].Path || back[0].ContentDigest != records[0].ContentDigest {
		t.Fatalf("round trip mismatch: %+v vs %+v", back[0], records[0])
	}
}
