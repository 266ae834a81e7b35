package watch

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"docket/internal/pipeline"
	"docket/internal/testsupport"
)

func TestNewServiceRequiresRules(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := NewService(cfg, nil); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Fatalf("expected configuration error without a rule file, got %v", err)
	}
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg.Paths.RulesPath, routerRules)

	svc, err := NewService(cfg, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if len(svc.pollers) != 2 {
		t.Fatalf("expected hot folder and email watchers, got %d", len(svc.pollers))
	}
	if _, err := os.Stat(cfg.Watch.HotDir); err != nil {
		t.Fatalf("hot folder must be created: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancelled run should return nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancellation")
	}
}
