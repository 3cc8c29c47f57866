package model

import "time"

// Scan names recorded in Report.PerformedScans.
const (
	ScanHealth      = "health"
	ScanDuplication = "duplication"
	ScanSecurity    = "security"
)

// HealthEntry is the outcome for one watched path.
// Exactly one of Document and Problem is set.
type HealthEntry struct {
	// Path is the watched path as configured.
	Path string `json:"path"`

	// Document holds the metrics when the file could be read.
	Document *DocumentRecord `json:"document,omitempty"`

	// Problem is set when the file is missing or unreadable.
	Problem *FileProblem `json:"problem,omitempty"`
}

// Missing reports whether the entry is a missing or unreadable file.
func (e HealthEntry) Missing() bool {
	return e.Problem != nil
}

// HealthSummary tallies the health scan.
// Missing and unreadable files contribute to no counter.
type HealthSummary struct {
	CriticalCount int `json:"critical_count"`
	LargeCount    int `json:"large_count"`
	StaleCount    int `json:"stale_count"`
}

// NeedsSummarization reports whether any document is large or critical.
func (s HealthSummary) NeedsSummarization() bool {
	return s.CriticalCount+s.LargeCount > 0
}

// HealthReport is the result of a health scan.
type HealthReport struct {
	// Entries follow the order of the watched paths.
	Entries []HealthEntry `json:"entries"`

	// Summary is computed from Entries when the scan completes.
	Summary HealthSummary `json:"summary"`
}

// Documents returns the records of all readable entries in order.
func (h *HealthReport) Documents() []DocumentRecord {
	docs := make([]DocumentRecord, 0, len(h.Entries))
	for _, e := range h.Entries {
		if e.Document != nil {
			docs = append(docs, *e.Document)
		}
	}
	return docs
}

// Problems returns the entries that could not be scanned, in order.
func (h *HealthReport) Problems() []HealthEntry {
	var out []HealthEntry
	for _, e := range h.Entries {
		if e.Missing() {
			out = append(out, e)
		}
	}
	return out
}

// Finding is a duplication or security match reported across watched files.
type Finding struct {
	// Rule is the name of the PatternRule that produced the finding.
	Rule string `json:"rule"`

	// Title is the human-readable rule title.
	Title string `json:"title"`

	// Category is the scan the finding belongs to.
	Category Category `json:"category"`

	// Severity is copied from the rule.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Paths lists the matching watched files in watched order.
	Paths []string `json:"paths"`

	// Sample is the first match, redacted for security findings.
	Sample string `json:"sample,omitempty"`
}

// Report is the value threaded through a scan run.
//
// Design decision: the tallies live in Report.Health.Summary rather than
// in package-level counters so one process can run several scans (watch mode)
// without state leaking between them.
type Report struct {
	// RunID identifies the run in logs and JSON output.
	RunID string `json:"run_id"`

	// Root is the directory watched paths are resolved against.
	Root string `json:"root"`

	// GeneratedAt is when the run started.
	GeneratedAt time.Time `json:"generated_at"`

	// PerformedScans lists completed scans in execution order.
	PerformedScans []string `json:"performed_scans"`

	// Health is nil unless the health scan ran.
	Health *HealthReport `json:"health,omitempty"`

	// Duplication holds duplication findings.
	Duplication []Finding `json:"duplication"`

	// Security holds security findings.
	Security []Finding `json:"security"`

	// TimedOut is set when the run was cancelled before all scans finished.
	TimedOut bool `json:"timed_out"`
}

// NewReport creates an empty report for root.
func NewReport(runID, root string, now time.Time) *Report {
	return &Report{
		RunID:          runID,
		Root:           root,
		GeneratedAt:    now,
		PerformedScans: make([]string, 0, 3),
		Duplication:    make([]Finding, 0),
		Security:       make([]Finding, 0),
	}
}

// Performed reports whether the named scan ran.
func (r *Report) Performed(scan string) bool {
	for _, s := range r.PerformedScans {
		if s == scan {
			return true
		}
	}
	return false
}

// NeedsSummarization reports whether the recommendation line should be shown.
// A health scan cut short leaves counts the report does not show, so only a
// completed one counts.
func (r *Report) NeedsSummarization() bool {
	return r.Performed(ScanHealth) && r.Health != nil && r.Health.Summary.NeedsSummarization()
}

// AlertCount returns the number of security findings at SeverityAlert.
func (r *Report) AlertCount() int {
	n := 0
	for _, f := range r.Security {
		if f.Severity == SeverityAlert {
			n++
		}
	}
	return n
}
