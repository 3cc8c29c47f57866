package main

import (
	"github.com/spf13/cobra"

	"github.com/lifeform/dochealth/internal/model"
)

// NewHealthCmd creates the health command.
func NewHealthCmd() *cobra.Command {
	return newScanCmd(model.ScanHealth,
		"Report document size tiers and staleness",
		`Health stats every watched document and classifies it by size:

  normal    at or below the large threshold
  large     above the large threshold, at or below the critical threshold
  critical  above the critical threshold

Documents older than the stale window are flagged. Missing or unreadable
documents are listed as warnings and never counted.`)
}

// NewDuplicationCmd creates the duplication command.
func NewDuplicationCmd() *cobra.Command {
	return newScanCmd(model.ScanDuplication,
		"Report topics written up in more than one document",
		`Duplication runs every duplication rule over the watched documents and
reports a finding when two or more documents match the same rule. Documents
with identical content are reported as well unless disabled in the
configuration file.`)
}

// NewSecurityCmd creates the security command.
func NewSecurityCmd() *cobra.Command {
	return newScanCmd(model.ScanSecurity,
		"Report secret-shaped content in the watched documents",
		`Security runs every security rule over the watched documents and reports
one finding per rule listing the documents that match. Matched samples are
redacted in the report.`)
}

// newScanCmd creates a command running a single scan.
func newScanCmd(scan, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   scan,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScans(cmd, []string{scan})
		},
	}
}
