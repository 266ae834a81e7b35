package classify

import "testing"

func TestExtractIdentifiersFromFilename(t *testing.T) {
	vars := ExtractIdentifiers("client_ACME42_retainer.pdf", "", 2000)
	if vars[PlaceholderClient] != "ACME42" {
		t.Fatalf("expected client ACME42, got %q", vars[PlaceholderClient])
	}
}

func TestExtractIdentifiersFilenameBeatsText(t *testing.T) {
	vars := ExtractIdentifiers("client_FIRST1.txt", "client SECOND2 matter THIRD3", 2000)
	if vars[PlaceholderClient] != "FIRST1" {
		t.Fatalf("expected filename capture to win, got %q", vars[PlaceholderClient])
	}
	if vars[PlaceholderMatter] != "SECOND2" {
		t.Fatalf("expected second distinct capture as matter, got %q", vars[PlaceholderMatter])
	}
}

func TestExtractIdentifiersDocketNumber(t *testing.T) {
	vars := ExtractIdentifiers("scan0001.pdf", "Re: ACM-2041 status conference", 2000)
	if vars[PlaceholderClient] != "ACM-2041" {
		t.Fatalf("expected docket-style capture, got %q", vars[PlaceholderClient])
	}
}

func TestExtractIdentifiersKeywordBeatsDocketCode(t *testing.T) {
	// The client keyword pattern runs over the whole haystack before the
	// generic docket pattern, even when the code sits in the filename.
	vars := ExtractIdentifiers("ACME-12345 scan.pdf", "client BETA1 engagement letter", 2000)
	if vars[PlaceholderClient] != "BETA1" {
		t.Fatalf("expected keyword capture as client, got %q", vars[PlaceholderClient])
	}
	if vars[PlaceholderMatter] != "ACME-12345" {
		t.Fatalf("expected docket code as matter, got %q", vars[PlaceholderMatter])
	}
}

func TestExtractIdentifiersScanBound(t *testing.T) {
	text := "padding padding padding client HIDDEN9"
	vars := ExtractIdentifiers("scan.pdf", text, 10)
	if _, ok := vars[PlaceholderClient]; ok {
		t.Fatal("capture beyond scan bound should be ignored")
	}
}

func TestExtractIdentifiersNoDuplicateValue(t *testing.T) {
	vars := ExtractIdentifiers("", "client ACME42 client ACME42", 2000)
	if vars[PlaceholderClient] != "ACME42" {
		t.Fatalf("expected client ACME42, got %q", vars[PlaceholderClient])
	}
	if _, ok := vars[PlaceholderMatter]; ok {
		t.Fatal("repeated value must not fill the matter slot")
	}
}
