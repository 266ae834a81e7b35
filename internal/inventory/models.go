package inventory

import (
	"path/filepath"
	"strings"
	"time"
)

// FileRecord describes one file discovered by the scanner. Records are
// immutable once produced; every downstream stage treats them as read-only
// input keyed by Path.
type FileRecord struct {
	Path          string
	Filename      string
	Extension     string
	SizeBytes     int64
	CreatedAt     time.Time
	ModifiedAt    time.Time
	ContentDigest string
	MIMEType      string
}

// DigestError is the sentinel digest recorded for unreadable files. Records
// carrying it are excluded from exact-duplicate grouping but remain eligible
// for filename/extension classification.
const DigestError = "ERROR"

// HasDigest reports whether the record carries a usable content digest.
func (r FileRecord) HasDigest() bool {
	return r.ContentDigest != "" && r.ContentDigest != DigestError
}

// NewRecord fills the derived fields (filename, lower-cased extension) from
// the path.
func NewRecord(path string) FileRecord {
	return FileRecord{
		Path:      path,
		Filename:  filepath.Base(path),
		Extension: strings.ToLower(filepath.Ext(path)),
	}
}
