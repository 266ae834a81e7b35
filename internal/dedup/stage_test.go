package dedup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"docket/internal/inventory"
	"docket/internal/testsupport"
)

func stagingGroup(t *testing.T, base string) Group {
	t.Helper()
	keeper := filepath.Join(base, "docs", "report.txt")
	dup := filepath.Join(base, "old", "report.txt")
	testsupport.WriteFile(t, keeper, "same bytes")
	testsupport.WriteFile(t, dup, "same bytes")

	now := time.Now()
	return Group{
		Digest: "deadbeef",
		Keeper: testsupport.Record(keeper, 10, "deadbeef", now),
		Duplicates: []inventory.FileRecord{
			testsupport.Record(dup, 10, "deadbeef", now),
		},
	}
}

func TestStageDuplicatesMovesOnlyDuplicates(t *testing.T) {
	base := t.TempDir()
	group := stagingGroup(t, base)
	stagingDir := filepath.Join(base, "staging")

	staged, err := StageDuplicates(context.Background(), []Group{group}, stagingDir, false, nil)
	if err != nil {
		t.Fatalf("StageDuplicates: %v", err)
	}
	if len(staged) != 1 || staged[0].Action != ActionMoved {
		t.Fatalf("unexpected results %+v", staged)
	}
	if _, err := os.Stat(group.Keeper.Path); err != nil {
		t.Fatal("keeper must never be staged")
	}
	if _, err := os.Stat(group.Duplicates[0].Path); !os.IsNotExist(err) {
		t.Fatal("duplicate must be moved out of place")
	}
	if _, err := os.Stat(staged[0].StagedTo); err != nil {
		t.Fatalf("staged copy missing at %s: %v", staged[0].StagedTo, err)
	}
	if filepath.Dir(staged[0].StagedTo) != stagingDir {
		t.Fatalf("staged file must land directly in the staging dir, got %s", staged[0].StagedTo)
	}
}

func TestStageDuplicatesDryRun(t *testing.T) {
	base := t.TempDir()
	group := stagingGroup(t, base)
	stagingDir := filepath.Join(base, "staging")

	staged, err := StageDuplicates(context.Background(), []Group{group}, stagingDir, true, nil)
	if err != nil {
		t.Fatalf("StageDuplicates: %v", err)
	}
	if len(staged) != 1 || staged[0].Action != ActionDryRun {
		t.Fatalf("unexpected results %+v", staged)
	}
	if _, err := os.Stat(group.Duplicates[0].Path); err != nil {
		t.Fatal("dry run must not move files")
	}
	if _, err := os.Stat(stagingDir); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the staging dir")
	}
}

func TestStageDuplicatesRecordsErrors(t *testing.T) {
	base := t.TempDir()
	group := stagingGroup(t, base)
	if err := os.Remove(group.Duplicates[0].Path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	staged, err := StageDuplicates(context.Background(), []Group{group}, filepath.Join(base, "staging"), false, nil)
	if err != nil {
		t.Fatalf("StageDuplicates: %v", err)
	}
	if len(staged) != 1 || staged[0].Action != ActionError || staged[0].Err == "" {
		t.Fatalf("unexpected results %+v", staged)
	}
}

func TestFlattenPath(t *testing.T) {
	got := flattenPath(filepath.Join(string(os.PathSeparator)+"a", "b", "c.txt"))
	if got != "a__b__c.txt" {
		t.Fatalf("unexpected flattened name %q", got)
	}
}
