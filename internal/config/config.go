package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for a practice document store.
type Paths struct {
	// PracticeRoot is the root of the governed folder taxonomy files are
	// migrated into.
	PracticeRoot string `toml:"practice_root"`
	// DataDir holds the inventory database.
	DataDir     string `toml:"data_dir"`
	LogDir      string `toml:"log_dir"`
	ReportDir   string `toml:"report_dir"`
	RulesPath   string `toml:"rules_path"`
	UnsortedDir string `toml:"unsorted_dir"`
}

// Inventory contains settings for the source scanner.
type Inventory struct {
	SourceDirs    []string `toml:"source_dirs"`
	IncludeHidden bool     `toml:"include_hidden"`
}

// Dedup contains settings for exact and near duplicate detection.
type Dedup struct {
	// NearThreshold is the combined similarity score at or above which a
	// pair is reported for review.
	NearThreshold float64 `toml:"near_threshold"`
	// ComparisonWindow bounds how many later records within an extension
	// bucket each file is compared against. Recall/cost tradeoff.
	ComparisonWindow int `toml:"comparison_window"`
	// DocumentExtensions restricts near-duplicate analysis to document-like
	// files.
	DocumentExtensions []string `toml:"document_extensions"`
	// MaxTextChars caps how much extracted text feeds the fingerprint.
	MaxTextChars int `toml:"max_text_chars"`
}

// Classify contains settings for the rule engine.
type Classify struct {
	// ReviewThreshold is the confidence below which a decision requires
	// human review.
	ReviewThreshold float64 `toml:"review_threshold"`
	// IdentifierScanChars bounds how much extracted text is scanned for
	// client/matter identifiers.
	IdentifierScanChars int `toml:"identifier_scan_chars"`
}

// Watch contains settings for the docketd ingestion daemon.
type Watch struct {
	// HotDir is the drop folder polled for new files.
	HotDir string `toml:"hot_dir"`
	// EmailDir is the drop folder polled for raw .eml messages.
	EmailDir string `toml:"email_dir"`
	// PollInterval is the polling period in seconds.
	PollInterval int `toml:"poll_interval"`
	// SettleSeconds is how long a file must be unchanged before ingestion.
	SettleSeconds int `toml:"settle_seconds"`
	// Move controls whether routed files are moved (true) or copied.
	Move bool `toml:"move"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for docket.
//
// Sections by subsystem:
//   - Paths: practice root, data/log/report directories, rule set location
//   - Inventory: scanner sources and hidden-file handling
//   - Dedup: near-duplicate threshold, comparison window, extension filter
//   - Classify: review threshold and identifier scan bounds
//   - Watch: hot folder and email drop folder ingestion
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Inventory Inventory `toml:"inventory"`
	Dedup     Dedup     `toml:"dedup"`
	Classify  Classify  `toml:"classify"`
	Watch     Watch     `toml:"watch"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/docket/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was actually found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("docket.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories batch commands and the daemon
// rely on.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.ReportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	// Best-effort so commands still run when the organized tree lives on
	// storage that is temporarily offline.
	if strings.TrimSpace(c.Paths.PracticeRoot) != "" {
		_ = os.MkdirAll(c.Paths.PracticeRoot, 0o755)
	}
	return nil
}

// UnsortedInbox returns the absolute path of the well-known unsorted inbox
// inside the practice root.
func (c *Config) UnsortedInbox() string {
	return filepath.Join(c.Paths.PracticeRoot, c.Paths.UnsortedDir)
}

// InventoryDBPath returns the SQLite inventory database location.
func (c *Config) InventoryDBPath() string {
	return filepath.Join(c.Paths.DataDir, "inventory.db")
}

// MigrationLogPath returns the append-only migration log location.
func (c *Config) MigrationLogPath() string {
	return filepath.Join(c.Paths.LogDir, "migration_log.csv")
}

// AuditTrailPath returns the JSONL audit trail location.
func (c *Config) AuditTrailPath() string {
	return filepath.Join(c.Paths.LogDir, "audit.jsonl")
}

// PollInterval returns the watcher polling period as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Watch.PollInterval) * time.Second
}

// SettleWindow returns how long a dropped file must stay unchanged before
// ingestion.
func (c *Config) SettleWindow() time.Duration {
	return time.Duration(c.Watch.SettleSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
