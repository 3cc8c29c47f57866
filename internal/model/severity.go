package model

import "strings"

// Severity represents how urgently a finding should be looked at.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityWarn marks findings that are worth cleaning up but do not
	// expose anything. Duplicated topics and bare IP addresses are Warn.
	SeverityWarn Severity = iota

	// SeverityAlert marks findings that may expose a credential.
	// Examples: API-key-shaped tokens, URLs carrying user:password.
	SeverityAlert
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "WARN"
	case SeverityAlert:
		return "ALERT"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a configuration string into a Severity.
// Matching is case-insensitive. The second return value is false when
// the string is not a known severity.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warn", "warning":
		return SeverityWarn, true
	case "alert":
		return SeverityAlert, true
	default:
		return SeverityWarn, false
	}
}

// Category groups pattern rules by the scan that evaluates them.
type Category string

const (
	// CategoryDuplication rules look for the same topic in several documents.
	CategoryDuplication Category = "duplication"

	// CategorySecurity rules look for secret-like content in any document.
	CategorySecurity Category = "security"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryDuplication || c == CategorySecurity
}
