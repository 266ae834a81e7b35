package migrate

import (
	"errors"
	"path/filepath"
	"testing"

	"docket/internal/pipeline"
	"docket/internal/testsupport"
)

func TestNamerClaimsSequentialSuffixes(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "report.pdf")

	names := newNamer()
	first, err := names.Claim(target)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if first != target {
		t.Fatalf("free path should be claimed as-is, got %q", first)
	}
	second, err := names.Claim(target)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if second != filepath.Join(base, "report_001.pdf") {
		t.Fatalf("unexpected suffix %q", second)
	}
	third, err := names.Claim(target)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if third != filepath.Join(base, "report_002.pdf") {
		t.Fatalf("unexpected suffix %q", third)
	}
}

func TestNamerSeesExistingFiles(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "report.pdf")
	testsupport.WriteFile(t, target, "filed earlier")
	testsupport.WriteFile(t, filepath.Join(base, "report_001.pdf"), "also filed")

	names := newNamer()
	got, err := names.Claim(target)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if got != filepath.Join(base, "report_002.pdf") {
		t.Fatalf("unexpected claim %q", got)
	}
}

func TestNamerExhaustsSuffixes(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.pdf")

	names := newNamer()
	for i := 0; i <= maxCollisionSuffix; i++ {
		if _, err := names.Claim(target); err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
	}
	if _, err := names.Claim(target); !errors.Is(err, pipeline.ErrValidation) {
		t.Fatalf("expected a validation error once suffixes run out, got %v", err)
	}
}

func TestNamerExtensionlessFiles(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "README")
	testsupport.WriteFile(t, target, "x")

	names := newNamer()
	got, err := names.Claim(target)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if got != filepath.Join(base, "README_001") {
		t.Fatalf("unexpected claim %q", got)
	}
}
