package inventory_test

import (
	"context"
	"testing"
	"time"

	"docket/internal/inventory"
	"docket/internal/testsupport"
)

func TestStoreReplaceAndRecordsRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	records := []inventory.FileRecord{
		testsupport.Record("/store/a/contract.pdf", 2048, "aaa", now),
		testsupport.Record("/store/b/invoice.docx", 512, "bbb", now.Add(-time.Hour)),
		testsupport.Record("/store/c/broken.pdf", 0, inventory.DigestError, now),
	}
	testsupport.SeedManifest(t, store, records)

	got, err := store.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i].Path != records[i].Path {
			t.Fatalf("record %d out of order: got %q want %q", i, got[i].Path, records[i].Path)
		}
	}
	if !got[0].ModifiedAt.Equal(now) {
		t.Fatalf("modified time lost: got %v want %v", got[0].ModifiedAt, now)
	}
	if got[2].HasDigest() {
		t.Fatal("ERROR digest must not count as usable")
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
}

func TestStoreReplaceClearsPrevious(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	now := time.Now().UTC()
	testsupport.SeedManifest(t, store, []inventory.FileRecord{
		testsupport.Record("/old/a.txt", 1, "old", now),
	})
	testsupport.SeedManifest(t, store, []inventory.FileRecord{
		testsupport.Record("/new/b.txt", 2, "new", now),
	})

	got, err := store.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(got) != 1 || got[0].Path != "/new/b.txt" {
		t.Fatalf("replace did not clear previous manifest: %+v", got)
	}
}

func TestNewRecordDerivesFields(t *testing.T) {
	rec := inventory.NewRecord("/a/b/Motion To Dismiss.PDF")
	if rec.Filename != "Motion To Dismiss.PDF" {
		t.Fatalf("filename: %q", rec.Filename)
	}
	if rec.Extension != ".pdf" {
		t.Fatalf("extension should be lower-cased: %q", rec.Extension)
	}
}
