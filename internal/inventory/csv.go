package inventory

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var csvHeader = []string{
	"filepath",
	"filename",
	"extension",
	"size_bytes",
	"created_date",
	"modified_date",
	"sha256",
	"mime_type",
}

// WriteCSV exports the manifest in the interchange layout spreadsheets and
// downstream tooling expect.
func WriteCSV(path string, records []FileRecord) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create inventory csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Path,
			rec.Filename,
			rec.Extension,
			strconv.FormatInt(rec.SizeBytes, 10),
			rec.CreatedAt.Format(time.RFC3339),
			rec.ModifiedAt.Format(time.RFC3339),
			rec.ContentDigest,
			rec.MIMEType,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row for %q: %w", rec.Path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush inventory csv: %w", err)
	}
	return f.Close()
}

// ReadCSV imports a manifest previously produced by WriteCSV (or an external
// inventory feed using the same column layout).
func ReadCSV(path string) ([]FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read inventory csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]FileRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+2, len(csvHeader), len(row))
		}
		size, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: size_bytes: %w", i+2, err)
		}
		created, err := parseCSVTime(row[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: created_date: %w", i+2, err)
		}
		modified, err := parseCSVTime(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: modified_date: %w", i+2, err)
		}
		records = append(records, FileRecord{
			Path:          row[0],
			Filename:      row[1],
			Extension:     row[2],
			SizeBytes:     size,
			CreatedAt:     created,
			ModifiedAt:    modified,
			ContentDigest: row[6],
			MIMEType:      row[7],
		})
	}
	return records, nil
}

func parseCSVTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}
