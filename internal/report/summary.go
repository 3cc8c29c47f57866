package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/lifeform/dochealth/internal/model"
)

// SummaryWriter prints one tally line per report, e.g.
//
//	dochealth: 1 critical, 2 large, 0 stale, 1 missing; 1 duplication, 2 security (1 alert)
//
// Only the scans that ran are tallied.
type SummaryWriter struct {
	baseWriter

	// destination is appended as "-> path" when set.
	destination string
}

// NewSummaryWriter creates a SummaryWriter. destination names where the
// full report went and may be empty.
func NewSummaryWriter(output io.Writer, destination string) *SummaryWriter {
	return &SummaryWriter{baseWriter: newBaseWriter(output), destination: destination}
}

// Write outputs the tally line.
func (w *SummaryWriter) Write(report *model.Report) (int, error) {
	return io.WriteString(w.output, SummaryLine(report, w.destination)+"\n")
}

// SummaryLine formats the tally without a trailing newline.
func SummaryLine(report *model.Report, destination string) string {
	var parts []string
	if report.Performed(model.ScanHealth) && report.Health != nil {
		s := report.Health.Summary
		parts = append(parts, fmt.Sprintf("%d critical, %d large, %d stale, %d missing",
			s.CriticalCount, s.LargeCount, s.StaleCount, len(report.Health.Problems())))
	}

	var findings []string
	if report.Performed(model.ScanDuplication) {
		findings = append(findings, fmt.Sprintf("%d duplication", len(report.Duplication)))
	}
	if report.Performed(model.ScanSecurity) {
		findings = append(findings, fmt.Sprintf("%d security (%d alert)", len(report.Security), report.AlertCount()))
	}
	if len(findings) > 0 {
		parts = append(parts, strings.Join(findings, ", "))
	}
	if len(parts) == 0 {
		parts = append(parts, "no scans completed")
	}

	line := "dochealth: " + strings.Join(parts, "; ")
	if report.TimedOut {
		line += " (interrupted)"
	}
	if destination != "" {
		line += " -> " + destination
	}
	return line
}
