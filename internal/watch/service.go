package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"docket/internal/audit"
	"docket/internal/classify"
	"docket/internal/config"
	"docket/internal/extract"
	"docket/internal/logging"
	"docket/internal/pipeline"
)

// Service runs the hot folder and email drop watchers for docketd.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger

	trail   *audit.Trail
	pollers []*Poller
}

// NewService loads the rule set and wires both watchers. The email watcher
// is only started when an email drop folder is configured.
func NewService(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	if cfg.Watch.HotDir == "" {
		return nil, pipeline.Wrap(pipeline.ErrConfiguration, "watch", "setup", "watch.hot_dir must be set", nil)
	}

	rules, err := classify.LoadRules(cfg.Paths.RulesPath)
	if err != nil {
		return nil, err
	}
	extractor := extract.Default()
	engine := classify.NewEngine(rules, extractor, classify.Options{
		ReviewThreshold:     cfg.Classify.ReviewThreshold,
		IdentifierScanChars: cfg.Classify.IdentifierScanChars,
		MaxTextChars:        cfg.Dedup.MaxTextChars,
	}, logger)

	trail, err := audit.Open(cfg.AuditTrailPath())
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrConfiguration, "watch", "open-audit", "open audit trail", err)
	}

	svc := &Service{cfg: cfg, logger: logger, trail: trail}
	router := NewRouter(cfg, engine, extractor, trail, logger)

	if err := os.MkdirAll(cfg.Watch.HotDir, 0o755); err != nil {
		trail.Close()
		return nil, err
	}
	svc.pollers = append(svc.pollers, NewPoller(
		cfg.Watch.HotDir,
		cfg.PollInterval(),
		cfg.SettleWindow(),
		nil,
		router.Route,
		logging.NewComponentLogger(logger, "hot-folder"),
	))

	if cfg.Watch.EmailDir != "" {
		if err := os.MkdirAll(cfg.Watch.EmailDir, 0o755); err != nil {
			trail.Close()
			return nil, err
		}
		ingest := func(ctx context.Context, path string) error {
			trail.Append(audit.Entry{Event: audit.EventIngested, Path: path})
			return router.Route(ctx, path)
		}
		svc.pollers = append(svc.pollers, NewPoller(
			cfg.Watch.EmailDir,
			cfg.PollInterval(),
			cfg.SettleWindow(),
			[]string{".eml"},
			ingest,
			logging.NewComponentLogger(logger, "email-drop"),
		))
	}
	return svc, nil
}

// Run drives all watchers until the context is cancelled or a poller hits a
// fatal error, then releases the audit trail.
func (s *Service) Run(ctx context.Context) error {
	defer s.trail.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, len(s.pollers))
	var wg sync.WaitGroup
	for _, poller := range s.pollers {
		wg.Add(1)
		go func(p *Poller) {
			defer wg.Done()
			if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errs <- err
				cancel()
			}
		}(poller)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return err
	}
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
