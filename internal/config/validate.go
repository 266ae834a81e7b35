package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDedup(); err != nil {
		return err
	}
	if err := c.validateClassify(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.PracticeRoot) == "" {
		return errors.New("paths.practice_root must be set")
	}
	if strings.TrimSpace(c.Paths.RulesPath) == "" {
		return errors.New("paths.rules_path must be set")
	}
	return nil
}

func (c *Config) validateDedup() error {
	if c.Dedup.NearThreshold < 0 || c.Dedup.NearThreshold > 1 {
		return errors.New("dedup.near_threshold must be between 0 and 1")
	}
	if c.Dedup.ComparisonWindow <= 0 {
		return errors.New("dedup.comparison_window must be positive")
	}
	return nil
}

func (c *Config) validateClassify() error {
	if c.Classify.ReviewThreshold < 0 || c.Classify.ReviewThreshold > 1 {
		return errors.New("classify.review_threshold must be between 0 and 1")
	}
	if c.Classify.IdentifierScanChars <= 0 {
		return errors.New("classify.identifier_scan_chars must be positive")
	}
	return nil
}

func (c *Config) validateWatch() error {
	if err := ensurePositiveMap(map[string]int{
		"watch.poll_interval":  c.Watch.PollInterval,
		"watch.settle_seconds": c.Watch.SettleSeconds,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
