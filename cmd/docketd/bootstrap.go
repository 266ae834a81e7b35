package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"docket/internal/config"
	"docket/internal/logging"
)

// newLogger builds the daemon logger writing to both the console and the
// daemon log file.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stderr",
			filepath.Join(cfg.Paths.LogDir, "docketd.log"),
		},
	})
}

// acquireLock enforces single-instance execution via a lock file in the log
// directory.
func acquireLock(cfg *config.Config) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "docketd.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another docketd instance is already running")
	}
	return lock, nil
}

func releaseLock(lock *flock.Flock, logger *slog.Logger) {
	if err := lock.Unlock(); err != nil {
		logger.Warn("failed to release daemon lock", logging.Error(err))
	}
}
