package inventory

import (
	"context"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"docket/internal/config"
	"docket/internal/fileutil"
	"docket/internal/logging"
)

const fallbackMIME = "application/octet-stream"

// ProgressFunc receives scan progress updates: files processed so far and the
// total discovered.
type ProgressFunc func(done, total int)

// Scanner walks source directories and produces the file manifest.
type Scanner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewScanner constructs a scanner for the configured source directories.
func NewScanner(cfg *config.Config, logger *slog.Logger) *Scanner {
	return &Scanner{cfg: cfg, logger: logging.NewComponentLogger(logger, "scanner")}
}

// Scan walks the configured sources and returns one record per regular file,
// in walk order. Digest and MIME detection fan out across a bounded worker
// pool; per-file read failures produce the ERROR digest rather than aborting.
func (s *Scanner) Scan(ctx context.Context, progress ProgressFunc) ([]FileRecord, error) {
	paths, err := s.collectPaths()
	if err != nil {
		return nil, err
	}

	records := make([]FileRecord, len(paths))
	jobs := make(chan int)
	var done int
	var progressMu sync.Mutex

	workerCount := runtime.GOMAXPROCS(0)
	if workerCount > len(paths) && len(paths) > 0 {
		workerCount = len(paths)
	}

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				records[idx] = s.inspect(paths[idx])
				if progress != nil {
					progressMu.Lock()
					done++
					progress(done, len(paths))
					progressMu.Unlock()
				}
			}
		}()
	}

	var cancelErr error
dispatch:
	for idx := range paths {
		select {
		case <-ctx.Done():
			cancelErr = ctx.Err()
			break dispatch
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelErr != nil {
		return nil, cancelErr
	}
	return records, nil
}

func (s *Scanner) collectPaths() ([]string, error) {
	var all []string
	for _, sourceDir := range s.cfg.Inventory.SourceDirs {
		info, err := os.Stat(sourceDir)
		if err != nil || !info.IsDir() {
			s.logger.Warn("source directory missing, skipping", logging.String("dir", sourceDir))
			continue
		}
		err = filepath.WalkDir(sourceDir, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				s.logger.Warn("walk error, skipping", logging.String("path", path), logging.Error(walkErr))
				if entry != nil && entry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			hidden := strings.HasPrefix(entry.Name(), ".") && path != sourceDir
			if entry.IsDir() {
				if hidden && !s.cfg.Inventory.IncludeHidden {
					return fs.SkipDir
				}
				return nil
			}
			if hidden && !s.cfg.Inventory.IncludeHidden {
				return nil
			}
			if !entry.Type().IsRegular() {
				return nil
			}
			all = append(all, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return all, nil
}

func (s *Scanner) inspect(path string) FileRecord {
	rec := NewRecord(path)

	info, err := os.Stat(path)
	if err != nil {
		s.logger.Warn("cannot stat file", logging.String(logging.FieldPath, path), logging.Error(err))
		rec.ContentDigest = DigestError
		rec.MIMEType = fallbackMIME
		return rec
	}

	rec.SizeBytes = info.Size()
	rec.ModifiedAt = info.ModTime()
	rec.CreatedAt = createdTime(info)
	rec.ContentDigest = fileutil.HashFileOrError(path)
	if rec.ContentDigest == DigestError {
		s.logger.Warn("cannot read file for digest", logging.String(logging.FieldPath, path))
	}
	rec.MIMEType = detectMIME(path)
	return rec
}

func detectMIME(path string) string {
	if detected, err := mimetype.DetectFile(path); err == nil {
		return detected.String()
	}
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		// Strip parameters such as "; charset=utf-8".
		if idx := strings.IndexByte(byExt, ';'); idx >= 0 {
			byExt = strings.TrimSpace(byExt[:idx])
		}
		return byExt
	}
	return fallbackMIME
}
