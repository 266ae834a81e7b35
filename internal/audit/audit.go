// Package audit maintains an append-only JSON Lines trail of everything the
// watchers and migration runs do to files. Each entry carries a unique id so
// downstream tooling can reference individual events.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event names the kind of action an entry records.
type Event string

const (
	EventScanned    Event = "scanned"
	EventClassified Event = "classified"
	EventTransfer   Event = "transfer"
	EventIngested   Event = "ingested"
	EventError      Event = "error"
)

// Entry is one audit trail record.
type Entry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Event       Event     `json:"event"`
	Path        string    `json:"path,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Rule        string    `json:"rule,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
	Action      string    `json:"action,omitempty"`
	Verified    string    `json:"verified,omitempty"`
	Note        string    `json:"note,omitempty"`
}

// Trail is an append-only JSONL audit log. Appends are serialized so
// concurrent watchers produce whole lines.
type Trail struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// Open opens or creates the trail at path for appending.
func Open(path string) (*Trail, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Trail{file: f, enc: json.NewEncoder(f)}, nil
}

// Append writes one entry, assigning an id and timestamp when the caller
// left them empty.
func (t *Trail) Append(entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enc.Encode(entry)
}

// Close flushes and closes the underlying file.
func (t *Trail) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.Close()
}

// Read loads every entry from the trail at path, oldest first. Used by
// reporting and tests; the trail itself is written forward only.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	dec := json.NewDecoder(f)
	for dec.More() {
		var entry Entry
		if err := dec.Decode(&entry); err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
