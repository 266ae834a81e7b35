package main

import (
	"testing"

	"docket/internal/testsupport"
)

func TestAcquireLockIsExclusive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	lock, err := acquireLock(cfg)
	if err != nil {
		t.Fatalf("acquireLock: %v", err)
	}
	defer lock.Unlock()

	if _, err := acquireLock(cfg); err == nil {
		t.Fatal("second acquisition must fail while the lock is held")
	}
}

func TestNewLoggerWritesLogFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("startup check")
}
