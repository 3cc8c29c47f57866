package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The thresholds and stale window match what the agent's documentation
// guide asks for: files should stay under ~5KB and be reviewed monthly.
const (
	// DefaultLargeThresholdBytes is the size above which a document is Large.
	DefaultLargeThresholdBytes = 5000

	// DefaultCriticalThresholdBytes is the size above which a document is Critical.
	DefaultCriticalThresholdBytes = 10000

	// DefaultStaleDays is the age in days above which a document is stale.
	DefaultStaleDays = 30

	// DefaultGuidePath is the summarization guide printed by `summarize`.
	DefaultGuidePath = "docs/SUMMARIZATION_GUIDE.md"

	// DefaultComponentsDir holds the component directories `self-reflect` picks from.
	DefaultComponentsDir = "core"

	// DefaultSchedule is the cron expression used by `watch`.
	DefaultSchedule = "@daily"

	// AppName is the application name used for XDG directory paths.
	AppName = "dochealth"
)

// Age sources accepted by Config.AgeSource.
const (
	// AgeSourceModTime computes age from the filesystem modification time.
	AgeSourceModTime = "mtime"

	// AgeSourceGit computes age from the last commit touching the file and
	// falls back to the modification time when git has no answer.
	AgeSourceGit = "git"
)

// DefaultWatchedPaths returns the documents watched when nothing is configured.
// A new slice is returned on every call.
func DefaultWatchedPaths() []string {
	return []string{
		"README.md",
		"CLAUDE.md",
		"ARCHITECTURE.md",
		"docs/PRINCIPLES.md",
		"docs/MEMORY.md",
	}
}

// Config holds every option for one run. It is built once from defaults,
// the config file, the environment and CLI flags, and is not modified while
// a scan is running.
type Config struct {
	// Root is the directory watched paths are resolved against.
	Root string

	// LargeThresholdBytes is the exclusive lower bound of the Large tier.
	LargeThresholdBytes int64

	// CriticalThresholdBytes is the exclusive lower bound of the Critical tier.
	CriticalThresholdBytes int64

	// StaleDays is the age in days a document may reach before it is stale.
	StaleDays int

	// WatchedPaths is the ordered list of documents to scan.
	// Paths are relative to Root.
	WatchedPaths []string

	// GuidePath is the summarization guide, relative to Root.
	GuidePath string

	// ComponentsDir is the directory whose subdirectories self-reflect picks from.
	ComponentsDir string

	// AgeSource selects how document age is computed (mtime or git).
	AgeSource string

	// DetectIdentical adds an identical-content check to the duplication scan.
	DetectIdentical bool

	// ExtraRules are pattern rules appended to the built-in table.
	ExtraRules []RuleSpec

	// DisabledRules names built-in or extra rules to skip.
	DisabledRules []string

	// Schedule is the cron expression used by the watch command.
	Schedule string

	// StepTimeout bounds each scan. Zero means no bound; a scan that runs
	// out of time ends the run with partial results.
	StepTimeout time.Duration

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the current directory, the XDG config
	// directory and the home directory.
	ConfigFilePath string

	// Verbose enables debug logging on stderr.
	Verbose bool

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// Color enables ANSI colors in the text report.
	Color bool

	// HideEmpty leaves scans without findings out of the text report.
	HideEmpty bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Root:                   ".",
		LargeThresholdBytes:    DefaultLargeThresholdBytes,
		CriticalThresholdBytes: DefaultCriticalThresholdBytes,
		StaleDays:              DefaultStaleDays,
		WatchedPaths:           DefaultWatchedPaths(),
		GuidePath:              DefaultGuidePath,
		ComponentsDir:          DefaultComponentsDir,
		AgeSource:              AgeSourceModTime,
		DetectIdentical:        true,
		Schedule:               DefaultSchedule,
	}
}

// XDGConfigDir returns the XDG config directory for dochealth.
// On Linux: ~/.config/dochealth
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if len(c.WatchedPaths) == 0 {
		return ErrNoWatchedPaths
	}

	if c.LargeThresholdBytes < 0 {
		return ErrInvalidLargeThreshold
	}

	// Critical must sit at or above Large, otherwise the Large tier is empty
	// and the classification stops being monotonic.
	if c.CriticalThresholdBytes < c.LargeThresholdBytes {
		return ErrInvalidCriticalThreshold
	}

	if c.StaleDays < 0 {
		return ErrInvalidStaleDays
	}

	if c.StepTimeout < 0 {
		return ErrInvalidTimeout
	}

	if c.AgeSource != AgeSourceModTime && c.AgeSource != AgeSourceGit {
		return ErrInvalidAgeSource
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
