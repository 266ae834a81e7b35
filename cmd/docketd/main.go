// Command docketd is the ingestion daemon: it watches the hot folder and the
// email drop folder and routes settled files into the practice tree.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"docket/internal/config"
	"docket/internal/logging"
	"docket/internal/watch"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	lock, err := acquireLock(cfg)
	if err != nil {
		logger.Error("acquire daemon lock", logging.Error(err))
		return
	}
	defer releaseLock(lock, logger)

	svc, err := watch.NewService(cfg, logger)
	if err != nil {
		logger.Error("start watchers", logging.Error(err))
		return
	}

	logger.Info("docketd started",
		logging.String("hot_dir", cfg.Watch.HotDir),
		logging.String("email_dir", cfg.Watch.EmailDir))

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watcher stopped", logging.Error(err))
		return
	}
	logger.Info("docketd shutting down")
}
