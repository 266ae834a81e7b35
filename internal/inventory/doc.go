// Package inventory produces and persists the file manifest the rest of the
// pipeline consumes.
//
// The Scanner walks configured source directories and emits one immutable
// FileRecord per file: path, size, timestamps, SHA-256 content digest (or the
// ERROR sentinel when unreadable), and MIME type. Records are persisted in a
// SQLite store so dedup, classification, and migration passes can re-read the
// same ordered manifest without rescanning, and can be exported to CSV for
// interchange with spreadsheet review.
//
// Schema changes bump schemaVersion in schema.go; the database is a per-run
// working set, not an archive, so users re-scan after upgrades.
package inventory
