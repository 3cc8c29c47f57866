package model

import "time"

// Tier is the size classification of a watched document.
type Tier int

const (
	// TierNormal is a document at or below the large threshold.
	TierNormal Tier = iota

	// TierLarge is a document above the large threshold and at or below
	// the critical threshold.
	TierLarge

	// TierCritical is a document above the critical threshold.
	TierCritical
)

// String returns the label used in reports.
func (t Tier) String() string {
	switch t {
	case TierNormal:
		return "normal"
	case TierLarge:
		return "large"
	case TierCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ClassifyTier returns the tier for a document of sizeBytes.
// The result depends only on its three arguments:
//
//	size >  critical            -> TierCritical
//	large < size <= critical    -> TierLarge
//	otherwise                   -> TierNormal
func ClassifyTier(sizeBytes, largeThreshold, criticalThreshold int64) Tier {
	switch {
	case sizeBytes > criticalThreshold:
		return TierCritical
	case sizeBytes > largeThreshold:
		return TierLarge
	default:
		return TierNormal
	}
}

// DocumentRecord holds the metrics collected for one watched document.
// A record is built once per scan and never modified afterwards.
type DocumentRecord struct {
	// Path is the watched path as configured, slash separated.
	Path string `json:"path"`

	// SizeBytes is the file size reported by stat.
	SizeBytes int64 `json:"size_bytes"`

	// LineCount is the number of newline characters, matching `wc -l`.
	LineCount int `json:"line_count"`

	// AgeDays is floor((now - last modification) / 24h), never negative.
	AgeDays int `json:"age_days"`

	// Tier is derived from SizeBytes and the configured thresholds.
	Tier Tier `json:"tier"`

	// TierText is Tier.String(), kept for JSON consumers.
	TierText string `json:"tier_text"`

	// Stale is true when AgeDays exceeds the configured stale days.
	Stale bool `json:"stale"`

	// ModTime is the timestamp the age was computed from.
	ModTime time.Time `json:"mod_time"`
}

// ProblemKind describes why a watched path produced no record.
type ProblemKind int

const (
	// ProblemMissingFile means the path does not exist.
	ProblemMissingFile ProblemKind = iota

	// ProblemUnreadableFile means the path exists but could not be read.
	// Reports treat it exactly like a missing file.
	ProblemUnreadableFile
)

// String returns a short label for the problem kind.
func (k ProblemKind) String() string {
	switch k {
	case ProblemMissingFile:
		return "missing"
	case ProblemUnreadableFile:
		return "unreadable"
	default:
		return "unknown"
	}
}

// FileProblem is the warning recorded for a watched path that could not be scanned.
type FileProblem struct {
	Kind   ProblemKind `json:"kind"`
	Reason string      `json:"reason,omitempty"`
}
