package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and by the loaders, so
// callers can use errors.Is() while users still get a readable message.
var (
	// ErrNoWatchedPaths is returned when the watch list is empty.
	ErrNoWatchedPaths = errors.New("no watched paths: configure at least one document to scan")

	// ErrInvalidLargeThreshold is returned when the large threshold is negative.
	ErrInvalidLargeThreshold = errors.New("invalid large threshold: must be non-negative")

	// ErrInvalidCriticalThreshold is returned when the critical threshold is
	// below the large threshold.
	ErrInvalidCriticalThreshold = errors.New("invalid critical threshold: must be at least the large threshold")

	// ErrInvalidStaleDays is returned when the stale window is negative.
	ErrInvalidStaleDays = errors.New("invalid stale days: must be non-negative")

	// ErrInvalidTimeout is returned when the per-scan timeout is negative.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidAgeSource is returned for age sources other than mtime and git.
	ErrInvalidAgeSource = errors.New("invalid age source: must be mtime or git")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidEnv is returned when a DOCHEALTH_* variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment variable")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
