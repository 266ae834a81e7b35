package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"docket/internal/config"
)

// Store persists the scanned manifest in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the inventory database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.InventoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Replace swaps the full manifest inside one transaction. Insertion order is
// preserved as the canonical record order.
func (s *Store) Replace(ctx context.Context, records []FileRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM file_records"); err != nil {
		return fmt.Errorf("clear manifest: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO file_records (
        path, filename, extension, size_bytes,
        created_at, modified_at, content_digest, mime_type
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Path,
			rec.Filename,
			rec.Extension,
			rec.SizeBytes,
			rec.CreatedAt.UTC().Format(time.RFC3339Nano),
			rec.ModifiedAt.UTC().Format(time.RFC3339Nano),
			rec.ContentDigest,
			rec.MIMEType,
		); err != nil {
			return fmt.Errorf("insert record %q: %w", rec.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Records returns the full manifest in insertion order.
func (s *Store) Records(ctx context.Context) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
        path, filename, extension, size_bytes,
        created_at, modified_at, content_digest, mime_type
    FROM file_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var rec FileRecord
		var created, modified string
		if err := rows.Scan(
			&rec.Path,
			&rec.Filename,
			&rec.Extension,
			&rec.SizeBytes,
			&created,
			&modified,
			&rec.ContentDigest,
			&rec.MIMEType,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if rec.CreatedAt, err = parseStoredTime(created); err != nil {
			return nil, fmt.Errorf("parse created_at for %q: %w", rec.Path, err)
		}
		if rec.ModifiedAt, err = parseStoredTime(modified); err != nil {
			return nil, fmt.Errorf("parse modified_at for %q: %w", rec.Path, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of records in the manifest.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM file_records").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

func parseStoredTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
