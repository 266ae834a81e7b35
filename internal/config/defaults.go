package config

const (
	defaultPracticeRoot        = "~/Practice_Root"
	defaultDataDir             = "~/.local/share/docket"
	defaultLogDir              = "~/.local/share/docket/logs"
	defaultReportDir           = "~/.local/share/docket/reports"
	defaultRulesPath           = "~/.config/docket/classification_rules.yaml"
	defaultUnsortedDir         = "09_Inbox/01_Unsorted"
	defaultNearThreshold       = 0.85
	defaultComparisonWindow    = 500
	defaultMaxTextChars        = 5000
	defaultReviewThreshold     = 0.70
	defaultIdentifierScanChars = 2000
	defaultWatchPollInterval   = 10
	defaultWatchSettleSeconds  = 2
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

func defaultDocumentExtensions() []string {
	return []string{".pdf", ".docx", ".doc", ".txt", ".rtf", ".md"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PracticeRoot: defaultPracticeRoot,
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			ReportDir:    defaultReportDir,
			RulesPath:    defaultRulesPath,
			UnsortedDir:  defaultUnsortedDir,
		},
		Dedup: Dedup{
			NearThreshold:      defaultNearThreshold,
			ComparisonWindow:   defaultComparisonWindow,
			DocumentExtensions: defaultDocumentExtensions(),
			MaxTextChars:       defaultMaxTextChars,
		},
		Classify: Classify{
			ReviewThreshold:     defaultReviewThreshold,
			IdentifierScanChars: defaultIdentifierScanChars,
		},
		Watch: Watch{
			PollInterval:  defaultWatchPollInterval,
			SettleSeconds: defaultWatchSettleSeconds,
			Move:          true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
