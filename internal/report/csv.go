package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"docket/internal/classify"
	"docket/internal/dedup"
	"docket/internal/migrate"
)

// ActionPlanned marks duplicate rows that have not been staged yet.
const ActionPlanned = "PLANNED"

// WriteDuplicateReport writes exact duplicate groups as CSV, one row per
// removable duplicate alongside its keeper. When staging results are
// provided, each row carries the staged destination and outcome; otherwise
// the action is recorded as planned.
func WriteDuplicateReport(path string, groups []dedup.Group, staged []dedup.StagedDuplicate) error {
	byPath := make(map[string]dedup.StagedDuplicate, len(staged))
	for _, s := range staged {
		byPath[s.Duplicate.Path] = s
	}
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{"sha256", "keeper", "duplicate", "duplicate_size_bytes", "action", "staged_to"}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, group := range groups {
			for _, dup := range group.Duplicates {
				action, destination := ActionPlanned, ""
				if s, ok := byPath[dup.Path]; ok {
					action, destination = s.Action, s.StagedTo
				}
				row := []string{
					group.Digest,
					group.Keeper.Path,
					dup.Path,
					strconv.FormatInt(dup.SizeBytes, 10),
					action,
					destination,
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteNearDuplicateReport writes scored near-duplicate pairs as CSV.
// Scores are rounded to three decimals. Every pair is marked for review
// since near duplicates may be distinct document versions.
func WriteNearDuplicateReport(path string, pairs []dedup.Pair) error {
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{
			"file_a", "file_b",
			"content_score", "filename_score", "size_score", "combined_score",
			"size_a_bytes", "size_b_bytes", "modified_a", "modified_b", "review",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, pair := range pairs {
			row := []string{
				pair.A.Path,
				pair.B.Path,
				formatScore(pair.Score.Content),
				formatScore(pair.Score.Filename),
				formatScore(pair.Score.Size),
				formatScore(pair.Score.Combined),
				strconv.FormatInt(pair.A.SizeBytes, 10),
				strconv.FormatInt(pair.B.SizeBytes, 10),
				pair.A.ModifiedAt.UTC().Format(time.RFC3339),
				pair.B.ModifiedAt.UTC().Format(time.RFC3339),
				"REVIEW",
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WritePlan writes a classification plan as CSV in plan order.
func WritePlan(path string, plan *classify.Plan) error {
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{"filepath", "filename", "extension", "size_bytes", "target", "confidence", "rule", "kind", "needs_review"}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, result := range plan.Results {
			row := []string{
				result.Path,
				result.Filename,
				result.Extension,
				strconv.FormatInt(result.SizeBytes, 10),
				result.Target,
				formatScore(result.Confidence),
				result.RuleName,
				string(result.Kind),
				strconv.FormatBool(result.NeedsReview),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

var migrationLogHeader = []string{"timestamp", "source", "destination", "action", "status", "verified", "rule", "confidence", "note"}

// AppendMigrationLog appends run entries to the migration log at path,
// writing the header only when creating the file. The log is append-only so
// successive runs build one continuous history.
func AppendMigrationLog(path string, entries []migrate.LogEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	info, err := os.Stat(path)
	needHeader := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(migrationLogHeader); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		row := []string{
			entry.Timestamp.UTC().Format(time.RFC3339),
			entry.Source,
			entry.Destination,
			string(entry.Action),
			entry.Status,
			entry.Verified,
			entry.Rule,
			formatScore(entry.Confidence),
			entry.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func writeCSV(path string, fill func(*csv.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
