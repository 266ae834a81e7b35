package dedup_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"docket/internal/dedup"
	"docket/internal/extract"
	"docket/internal/inventory"
	"docket/internal/testsupport"
)

func nearOpts() dedup.NearOptions {
	return dedup.NearOptions{
		Threshold:          0.85,
		Window:             500,
		DocumentExtensions: []string{".txt", ".pdf"},
		MaxTextChars:       5000,
	}
}

func TestFindNearDuplicatesReportsSimilarPair(t *testing.T) {
	dir := t.TempDir()
	body := "settlement agreement between acme corporation and jane doe covering all claims arising from the 2025 incident"
	pathA := filepath.Join(dir, "settlement_v1.txt")
	pathB := filepath.Join(dir, "settlement_v2.txt")
	testsupport.WriteFile(t, pathA, body+" draft one")
	testsupport.WriteFile(t, pathB, body+" draft two")

	now := time.Now().UTC()
	records := []inventory.FileRecord{
		testsupport.Record(pathB, 110, "dig-b", now),
		testsupport.Record(pathA, 112, "dig-a", now),
	}

	pairs, err := dedup.FindNearDuplicates(context.Background(), records, extract.Default(), nearOpts())
	if err != nil {
		t.Fatalf("FindNearDuplicates: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	pair := pairs[0]
	if pair.A.Path != pathA || pair.B.Path != pathB {
		t.Fatalf("pair not canonicalized by path: %q / %q", pair.A.Path, pair.B.Path)
	}
	if pair.Score.Combined < 0.85 {
		t.Fatalf("pair below threshold: %v", pair.Score.Combined)
	}
}

func TestFindNearDuplicatesSkipsExactDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "same.txt")
	testsupport.WriteFile(t, path, "identical content")

	now := time.Now().UTC()
	records := []inventory.FileRecord{
		testsupport.Record(filepath.Join(dir, "same.txt"), 17, "dig", now),
		testsupport.Record(filepath.Join(dir, "same.txt"), 17, "dig", now),
	}

	pairs, err := dedup.FindNearDuplicates(context.Background(), records, extract.Default(), nearOpts())
	if err != nil {
		t.Fatalf("FindNearDuplicates: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("equal digests must be skipped, got %d pairs", len(pairs))
	}
}

func TestFindNearDuplicatesIgnoresNonDocuments(t *testing.T) {
	now := time.Now().UTC()
	records := []inventory.FileRecord{
		testsupport.Record("/media/video_a.mkv", 100, "m1", now),
		testsupport.Record("/media/video_b.mkv", 100, "m2", now),
	}

	pairs, err := dedup.FindNearDuplicates(context.Background(), records, extract.Default(), nearOpts())
	if err != nil {
		t.Fatalf("FindNearDuplicates: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("non-documents must be excluded, got %d pairs", len(pairs))
	}
}

func TestFindNearDuplicatesHonorsWindow(t *testing.T) {
	// Identical filenames and sizes guarantee the pair would match, but a
	// window of 2 only reaches the adjacent record, keeping the first and
	// third from ever being compared.
	now := time.Now().UTC()
	records := []inventory.FileRecord{
		testsupport.Record("/docs/report_a.pdf", 100, "d1", now),
		testsupport.Record("/docs/zzz_unrelated_name_entirely.pdf", 999999, "d2", now),
		testsupport.Record("/docs/report_b.pdf", 100, "d3", now),
	}

	opts := nearOpts()
	// No extractor below, so only filename and size terms contribute.
	opts.Threshold = 0.45
	opts.Window = 2
	pairs, err := dedup.FindNearDuplicates(context.Background(), records, nil, opts)
	if err != nil {
		t.Fatalf("FindNearDuplicates: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("window should prevent comparison, got %d pairs", len(pairs))
	}

	opts.Window = 3
	pairs, err = dedup.FindNearDuplicates(context.Background(), records, nil, opts)
	if err != nil {
		t.Fatalf("FindNearDuplicates: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected the wider window to find the pair, got %d", len(pairs))
	}
}

func TestStageDuplicatesDryRunLeavesFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := cfg.Inventory.SourceDirs[0]
	keeperPath := filepath.Join(source, "keep.txt")
	dupPath := filepath.Join(source, "old", "keep.txt")
	testsupport.WriteFile(t, keeperPath, "same bytes")
	testsupport.WriteFile(t, dupPath, "same bytes")

	now := time.Now().UTC()
	groups := dedup.FindExactGroups([]inventory.FileRecord{
		testsupport.Record(keeperPath, 10, "dig", now),
		testsupport.Record(dupPath, 10, "dig", now.Add(-time.Minute)),
	})

	staging := filepath.Join(testsupport.BaseDir(cfg), "duplicates")
	results, err := dedup.StageDuplicates(context.Background(), groups, staging, true, nil)
	if err != nil {
		t.Fatalf("StageDuplicates: %v", err)
	}
	if len(results) != 1 || results[0].Action != dedup.ActionDryRun {
		t.Fatalf("unexpected results: %+v", results)
	}
	if _, err := filepath.Glob(staging + "/*"); err != nil {
		t.Fatalf("glob staging: %v", err)
	}
	if !fileExists(t, dupPath) {
		t.Fatal("dry run must not move the duplicate")
	}
}

func TestStageDuplicatesMovesDuplicateOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := cfg.Inventory.SourceDirs[0]
	keeperPath := filepath.Join(source, "keep.txt")
	dupPath := filepath.Join(source, "old", "keep.txt")
	testsupport.WriteFile(t, keeperPath, "same bytes")
	testsupport.WriteFile(t, dupPath, "same bytes")

	now := time.Now().UTC()
	groups := dedup.FindExactGroups([]inventory.FileRecord{
		testsupport.Record(keeperPath, 10, "dig", now),
		testsupport.Record(dupPath, 10, "dig", now.Add(-time.Minute)),
	})

	staging := filepath.Join(testsupport.BaseDir(cfg), "duplicates")
	results, err := dedup.StageDuplicates(context.Background(), groups, staging, false, nil)
	if err != nil {
		t.Fatalf("StageDuplicates: %v", err)
	}
	if len(results) != 1 || results[0].Action != dedup.ActionMoved {
		t.Fatalf("unexpected results: %+v", results)
	}
	if fileExists(t, dupPath) {
		t.Fatal("duplicate should have been moved away")
	}
	if !fileExists(t, keeperPath) {
		t.Fatal("keeper must stay in place")
	}
	if !fileExists(t, results[0].StagedTo) {
		t.Fatalf("staged copy missing at %q", results[0].StagedTo)
	}
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	matches, err := filepath.Glob(path)
	if err != nil {
		t.Fatalf("glob %s: %v", path, err)
	}
	return len(matches) == 1
}
