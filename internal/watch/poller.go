package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docket/internal/logging"
	"docket/internal/pipeline"
)

// Handler routes one settled file. A nil error means the file was consumed;
// the poller forgets it and will only revisit the path if a new file appears
// there.
type Handler func(ctx context.Context, path string) error

type observation struct {
	size     int64
	modTime  time.Time
	lastSeen time.Time
	stable   time.Time
}

// Poller watches one drop directory by listing it on an interval. A file is
// handed off once its size and modification time have been stable for the
// settle window, so partially written drops are never ingested.
type Poller struct {
	dir        string
	interval   time.Duration
	settle     time.Duration
	extensions map[string]bool
	handler    Handler
	logger     *slog.Logger

	pending map[string]*observation
	now     func() time.Time
}

// NewPoller builds a poller over dir. An empty extension list accepts every
// regular file; otherwise only the listed extensions are considered.
func NewPoller(dir string, interval, settle time.Duration, extensions []string, handler Handler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = logging.NewNop()
	}
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}
	return &Poller{
		dir:        dir,
		interval:   interval,
		settle:     settle,
		extensions: extSet,
		handler:    handler,
		logger:     logger,
		pending:    make(map[string]*observation),
		now:        time.Now,
	}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("watching drop folder",
		logging.String(logging.FieldPath, p.dir),
		logging.Duration("interval", p.interval))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.Poll(ctx); err != nil {
				return err
			}
		}
	}
}

// Poll performs one listing pass, handing off every file that has settled.
// Per-file ingestion failures are logged and retried on a later pass; a
// fatal error stops the poller.
func (p *Poller) Poll(ctx context.Context) error {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		p.logger.Warn("drop folder unreadable",
			logging.String(logging.FieldPath, p.dir),
			logging.Error(err))
		return nil
	}

	seen := make(map[string]bool, len(entries))
	now := p.now()
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if len(p.extensions) > 0 && !p.extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(p.dir, entry.Name())
		seen[path] = true
		if err := p.observe(ctx, path, info.Size(), info.ModTime(), now); err != nil {
			return err
		}
	}

	// Drop state for files that left the folder between polls.
	for path := range p.pending {
		if !seen[path] {
			delete(p.pending, path)
		}
	}
	return nil
}

func (p *Poller) observe(ctx context.Context, path string, size int64, modTime, now time.Time) error {
	obs, known := p.pending[path]
	if !known || obs.size != size || !obs.modTime.Equal(modTime) {
		p.pending[path] = &observation{size: size, modTime: modTime, lastSeen: now, stable: now}
		return nil
	}
	obs.lastSeen = now
	if now.Sub(obs.stable) < p.settle {
		return nil
	}

	delete(p.pending, path)
	if err := p.handler(ctx, path); err != nil {
		if pipeline.IsFatal(err) {
			return err
		}
		p.logger.Warn("ingestion failed",
			logging.String(logging.FieldPath, path),
			logging.Error(err))
	}
	return nil
}
