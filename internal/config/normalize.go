package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDedup()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.PracticeRoot, err = expandPath(c.Paths.PracticeRoot); err != nil {
		return fmt.Errorf("paths.practice_root: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	if c.Paths.RulesPath, err = expandPath(c.Paths.RulesPath); err != nil {
		return fmt.Errorf("paths.rules_path: %w", err)
	}
	c.Paths.UnsortedDir = strings.Trim(strings.TrimSpace(c.Paths.UnsortedDir), "/")
	if c.Paths.UnsortedDir == "" {
		c.Paths.UnsortedDir = defaultUnsortedDir
	}

	for i, dir := range c.Inventory.SourceDirs {
		if c.Inventory.SourceDirs[i], err = expandPath(dir); err != nil {
			return fmt.Errorf("inventory.source_dirs[%d]: %w", i, err)
		}
	}
	if c.Watch.HotDir != "" {
		if c.Watch.HotDir, err = expandPath(c.Watch.HotDir); err != nil {
			return fmt.Errorf("watch.hot_dir: %w", err)
		}
	}
	if c.Watch.EmailDir != "" {
		if c.Watch.EmailDir, err = expandPath(c.Watch.EmailDir); err != nil {
			return fmt.Errorf("watch.email_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeDedup() {
	if len(c.Dedup.DocumentExtensions) == 0 {
		c.Dedup.DocumentExtensions = defaultDocumentExtensions()
	}
	for i, ext := range c.Dedup.DocumentExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Dedup.DocumentExtensions[i] = ext
	}
	if c.Dedup.MaxTextChars <= 0 {
		c.Dedup.MaxTextChars = defaultMaxTextChars
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
