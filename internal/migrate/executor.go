package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"docket/internal/classify"
	"docket/internal/fileutil"
	"docket/internal/logging"
)

// Action labels the outcome of a single transfer.
type Action string

const (
	ActionCopied  Action = "COPIED"
	ActionMoved   Action = "MOVED"
	ActionSkipped Action = "SKIPPED"
	ActionDryRun  Action = "DRY_RUN"
	ActionError   Action = "ERROR"
)

// Status summarizes how a transfer ended, independent of the action taken.
const (
	StatusOK      = "OK"
	StatusError   = "ERROR"
	StatusSkipped = "SKIPPED"
)

// Verification states recorded in the migration log. An empty value means
// verification was not applicable (skips and dry runs).
const (
	VerifiedYes    = "YES"
	VerifiedFailed = "FAILED"
)

// LogEntry is one migration log row.
type LogEntry struct {
	Timestamp   time.Time
	Source      string
	Destination string
	Action      Action
	Status      string
	Verified    string
	Rule        string
	Confidence  float64
	Note        string
}

// Options configure an execution run.
type Options struct {
	// Root is the practice root destinations resolve under.
	Root string
	// Move deletes the source after a verified transfer. Copy mode leaves
	// sources in place.
	Move bool
	// DryRun resolves destinations and logs intent without touching files.
	DryRun bool
	// IncludeReview transfers files whose classification was flagged for
	// manual review. Off by default: review-flagged files are skipped.
	IncludeReview bool
}

// Summary aggregates an execution run.
type Summary struct {
	Transferred int
	Skipped     int
	Errors      int
	DryRun      int
	Entries     []LogEntry
}

// Executor carries out classification plans against the filesystem.
type Executor struct {
	opts   Options
	logger *slog.Logger
	names  *namer
	copyFn func(src, dst string) error
	hashFn func(path string) (string, error)
}

// NewExecutor builds an executor for one run's options. The destination
// claim table lives on the executor, so every Execute call against the same
// executor shares it; long-lived callers routing files one at a time get the
// same collision guarantees as a batch run.
func NewExecutor(opts Options, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{
		opts:   opts,
		logger: logger,
		names:  newNamer(),
		copyFn: fileutil.CopyFile,
		hashFn: fileutil.HashFile,
	}
}

// Execute transfers every plan result, one file at a time so a cancelled run
// leaves no half-finished transfer behind. Per-file failures are recorded
// and do not stop the run.
func (e *Executor) Execute(ctx context.Context, results []classify.Result) (*Summary, error) {
	summary := &Summary{Entries: make([]LogEntry, 0, len(results))}
	for _, result := range results {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		entry := e.transfer(result)
		summary.Entries = append(summary.Entries, entry)
		switch entry.Action {
		case ActionCopied, ActionMoved:
			summary.Transferred++
		case ActionSkipped:
			summary.Skipped++
		case ActionDryRun:
			summary.DryRun++
		case ActionError:
			summary.Errors++
			e.logger.Warn("transfer failed",
				logging.String(logging.FieldPath, entry.Source),
				logging.String(logging.FieldDestination, entry.Destination),
				logging.String("note", entry.Note))
		}
	}
	e.logger.Info("migration run complete",
		logging.Int("transferred", summary.Transferred),
		logging.Int("skipped", summary.Skipped),
		logging.Int("errors", summary.Errors),
		logging.Bool("dry_run", e.opts.DryRun))
	return summary, nil
}

func (e *Executor) transfer(result classify.Result) LogEntry {
	entry := LogEntry{
		Timestamp:  time.Now().UTC(),
		Source:     result.Path,
		Action:     ActionError,
		Status:     StatusError,
		Rule:       result.RuleName,
		Confidence: result.Confidence,
	}

	if result.NeedsReview && !e.opts.IncludeReview {
		entry.Action = ActionSkipped
		entry.Status = StatusSkipped
		entry.Note = "needs review"
		return entry
	}
	if _, err := os.Stat(result.Path); err != nil {
		entry.Action = ActionSkipped
		entry.Status = StatusSkipped
		entry.Note = fmt.Sprintf("source unavailable: %v", err)
		return entry
	}

	planned := classify.DestinationPath(e.opts.Root, result, filepath.Base(result.Path))
	destination, err := e.names.Claim(planned)
	if err != nil {
		entry.Note = err.Error()
		return entry
	}
	entry.Destination = destination

	if e.opts.DryRun {
		entry.Action = ActionDryRun
		entry.Status = StatusOK
		return entry
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		entry.Note = fmt.Sprintf("create destination directory: %v", err)
		return entry
	}
	if err := e.copyFn(result.Path, destination); err != nil {
		os.Remove(destination)
		entry.Note = fmt.Sprintf("copy: %v", err)
		return entry
	}

	sourceDigest, err := e.hashFn(result.Path)
	if err != nil {
		os.Remove(destination)
		entry.Note = fmt.Sprintf("hash source: %v", err)
		return entry
	}
	destDigest, err := e.hashFn(destination)
	if err != nil {
		os.Remove(destination)
		entry.Note = fmt.Sprintf("hash destination: %v", err)
		return entry
	}
	if sourceDigest != destDigest {
		os.Remove(destination)
		entry.Verified = VerifiedFailed
		entry.Note = "digest mismatch after copy"
		return entry
	}
	entry.Verified = VerifiedYes
	entry.Action = ActionCopied
	entry.Status = StatusOK

	if e.opts.Move {
		if err := os.Remove(result.Path); err != nil {
			entry.Status = StatusError
			entry.Action = ActionError
			entry.Note = fmt.Sprintf("remove source after verified copy: %v", err)
			return entry
		}
		entry.Action = ActionMoved
	}
	return entry
}
