package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"docket/internal/audit"
	"docket/internal/classify"
	"docket/internal/config"
	"docket/internal/extract"
	"docket/internal/fileutil"
	"docket/internal/inventory"
	"docket/internal/logging"
	"docket/internal/migrate"
	"docket/internal/pipeline"
	"docket/internal/report"
)

// Router classifies settled drops and carries out the verified transfer into
// the practice tree, mirroring what a batch migrate run does for one file.
type Router struct {
	cfg       *config.Config
	engine    *classify.Engine
	extractor extract.Extractor
	trail     *audit.Trail
	executor  *migrate.Executor
	logger    *slog.Logger
}

// NewRouter wires a router from loaded configuration and a compiled rule
// engine. One executor serves every Route call, so concurrent watchers
// claiming the same destination name get distinct collision suffixes.
func NewRouter(cfg *config.Config, engine *classify.Engine, extractor extract.Extractor, trail *audit.Trail, logger *slog.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	executor := migrate.NewExecutor(migrate.Options{
		Root:          cfg.Paths.PracticeRoot,
		Move:          cfg.Watch.Move,
		IncludeReview: true,
	}, logger)
	return &Router{cfg: cfg, engine: engine, extractor: extractor, trail: trail, executor: executor, logger: logger}
}

// Route ingests one settled file: classify, transfer with digest
// verification, audit. Review-flagged files are still transferred; their
// fallback or low-confidence destination parks them for human attention
// instead of leaving them in the drop folder.
func (r *Router) Route(ctx context.Context, path string) error {
	record, err := statRecord(path)
	if err != nil {
		r.auditError(path, err)
		return err
	}

	var text string
	if r.extractor != nil {
		text = r.extractor.Text(path, r.cfg.Dedup.MaxTextChars)
	}
	result := r.engine.Classify(record, text)
	r.trail.Append(audit.Entry{
		Event:      audit.EventClassified,
		Path:       path,
		Rule:       result.RuleName,
		Confidence: result.Confidence,
	})

	summary, err := r.executor.Execute(ctx, []classify.Result{result})
	if err != nil {
		return err
	}
	entry := summary.Entries[0]
	r.trail.Append(audit.Entry{
		Event:       audit.EventTransfer,
		Path:        entry.Source,
		Destination: entry.Destination,
		Rule:        entry.Rule,
		Confidence:  entry.Confidence,
		Action:      string(entry.Action),
		Verified:    entry.Verified,
		Note:        entry.Note,
	})
	if err := report.AppendMigrationLog(r.cfg.MigrationLogPath(), summary.Entries); err != nil {
		r.logger.Warn("migration log append failed", logging.Error(err))
	}
	if entry.Action == migrate.ActionError {
		marker := pipeline.ErrTransient
		if entry.Verified == migrate.VerifiedFailed {
			marker = pipeline.ErrVerification
		}
		return pipeline.Wrap(marker, "watch", "route", fmt.Sprintf("transfer %s: %s", path, entry.Note), nil)
	}

	r.logger.Info("file routed",
		logging.String(logging.FieldPath, path),
		logging.String(logging.FieldDestination, entry.Destination),
		logging.String(logging.FieldRule, entry.Rule),
		logging.Float64(logging.FieldConfidence, entry.Confidence),
		logging.String(logging.FieldAction, string(entry.Action)))
	return nil
}

func (r *Router) auditError(path string, err error) {
	r.trail.Append(audit.Entry{
		Event: audit.EventError,
		Path:  path,
		Note:  err.Error(),
	})
}

// statRecord builds an inventory record for a single on-disk file.
func statRecord(path string) (inventory.FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return inventory.FileRecord{}, err
	}
	record := inventory.NewRecord(path)
	record.SizeBytes = info.Size()
	record.ModifiedAt = info.ModTime()
	record.ContentDigest = fileutil.HashFileOrError(path)
	return record, nil
}
