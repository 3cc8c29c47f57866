package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lifeform/dochealth/internal/guide"
)

// NewSummarizeCmd creates the summarize command.
func NewSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Print the guidelines for condensing large documents",
		Long: `Summarize prints the condensing guidelines together with the section
headings of the summarization guide (docs/SUMMARIZATION_GUIDE.md by default).

If the guide does not exist, a single error line is printed and the exit
status is 1.`,
		Args: cobra.NoArgs,
		RunE: runSummarizeCmd,
	}
}

// runSummarizeCmd executes the summarize command.
func runSummarizeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := guide.Load(os.DirFS(cfg.Root), cfg.GuidePath,
		guide.Guidelines(cfg.LargeThresholdBytes, cfg.CriticalThresholdBytes, cfg.StaleDays))
	if err != nil {
		return err
	}
	return s.Write(cmd.OutOrStdout())
}
