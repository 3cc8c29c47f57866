package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lifeform/dochealth/internal/config"
)

// NewRootCmd creates the root command for dochealth.
// Without a subcommand it runs the health, duplication and security scans.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dochealth",
		Short: "Documentation health reporter for agent repositories",
		Long: `dochealth scans a fixed list of documentation files and reports:
- size tiers (normal, large, critical) and stale documents
- topics written up in more than one document
- API-key-shaped tokens, credentialed URLs and IP addresses

Without a subcommand all three scans run in sequence, followed by a
summarization suggestion when any document is large or critical.

The exit status is 0 whatever the documents contain. Only usage errors,
configuration errors and "summarize" without a guide exit with 1.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScans(cmd, nil)
		},
	}

	// Global flags that apply to all commands
	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("log-json", false, "Write logs as JSON")
	pf.StringP("config", "c", "",
		"Configuration file path (default: .dochealth.yaml in root, XDG config dir or home)")
	pf.StringP("root", "r", ".", "Repository root that watched paths are relative to")
	pf.StringArrayP("watch", "w", nil, "Watched document (repeatable, replaces the configured list)")
	pf.Int64("large", config.DefaultLargeThresholdBytes, "Size in bytes above which a document is large")
	pf.Int64("critical", config.DefaultCriticalThresholdBytes, "Size in bytes above which a document is critical")
	pf.Int("stale-days", config.DefaultStaleDays, "Age in days above which a document is stale")
	pf.Duration("timeout", 0, "Time limit per scan, e.g. 30s (0 means none); partial results are reported")
	pf.String("age-source", config.AgeSourceModTime, "How document age is computed: mtime or git")
	pf.BoolP("json", "j", false, "Output JSON report (mutually exclusive with --markdown)")
	pf.BoolP("markdown", "m", false, "Output Markdown report (mutually exclusive with --json)")
	pf.StringP("output", "o", "", "Write report to specified file path (creates directories if needed)")
	pf.Bool("color", false, "Colorize the text report")
	pf.Bool("hide-empty", false, "Leave scans without findings out of the text report")

	cmd.AddCommand(NewHealthCmd())
	cmd.AddCommand(NewDuplicationCmd())
	cmd.AddCommand(NewSecurityCmd())
	cmd.AddCommand(NewSummarizeCmd())
	cmd.AddCommand(NewSelfReflectCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// run executes the CLI with args and returns the process exit code.
// Errors are printed to stderr as a single line.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
