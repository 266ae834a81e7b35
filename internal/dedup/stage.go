package dedup

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"docket/internal/fileutil"
	"docket/internal/inventory"
	"docket/internal/logging"
)

// Staging actions recorded per duplicate.
const (
	ActionMoved  = "MOVED"
	ActionDryRun = "DRY_RUN"
	ActionError  = "ERROR"
)

// StagedDuplicate records what happened to one duplicate file.
type StagedDuplicate struct {
	Digest     string
	KeeperPath string
	Duplicate  inventory.FileRecord
	StagedTo   string
	Action     string
	Err        string
}

// StageDuplicates moves every duplicate (never the keeper) into stagingDir,
// flattening the original path into the staged filename so provenance stays
// visible. Dry-run records decisions without touching the filesystem.
// Per-file failures are recorded and do not stop the batch.
func StageDuplicates(ctx context.Context, groups []Group, stagingDir string, dryRun bool, logger *slog.Logger) ([]StagedDuplicate, error) {
	logger = logging.NewComponentLogger(logger, "dedup")

	if !dryRun {
		if err := os.MkdirAll(stagingDir, 0o755); err != nil {
			return nil, err
		}
	}

	var results []StagedDuplicate
	for _, group := range groups {
		for _, dup := range group.Duplicates {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			staged := StagedDuplicate{
				Digest:     group.Digest,
				KeeperPath: group.Keeper.Path,
				Duplicate:  dup,
			}
			dest := filepath.Join(stagingDir, flattenPath(dup.Path))
			staged.StagedTo = dest

			if dryRun {
				staged.Action = ActionDryRun
				results = append(results, staged)
				continue
			}

			if err := moveFile(dup.Path, dest); err != nil {
				logger.Warn("failed to stage duplicate",
					logging.String(logging.FieldPath, dup.Path),
					logging.Error(err))
				staged.Action = ActionError
				staged.Err = err.Error()
			} else {
				staged.Action = ActionMoved
			}
			results = append(results, staged)
		}
	}
	return results, nil
}

// moveFile renames src to dst, falling back to copy-and-delete across
// filesystem boundaries.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			if copyErr := fileutil.CopyFile(src, dst); copyErr != nil {
				return copyErr
			}
			return os.Remove(src)
		}
		return err
	}
	return nil
}

// flattenPath turns /a/b/c.txt into a__b__c.txt.
func flattenPath(path string) string {
	trimmed := strings.TrimPrefix(path, string(os.PathSeparator))
	return strings.ReplaceAll(trimmed, string(os.PathSeparator), "__")
}
