package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lifeform/dochealth/internal/config"
	dlog "github.com/lifeform/dochealth/internal/log"
	"github.com/lifeform/dochealth/internal/model"
	"github.com/lifeform/dochealth/internal/pipeline"
	"github.com/lifeform/dochealth/internal/report"
	"github.com/lifeform/dochealth/internal/rules"
	"github.com/lifeform/dochealth/internal/scan"
)

// runScans runs the named scans (all when empty) and writes the report.
// Findings never make it fail; only configuration and output errors do.
func runScans(cmd *cobra.Command, scans []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := executeScans(ctx, cfg, scans, logger)
	if err != nil {
		return err
	}
	return outputReport(cfg, rep, cmd.OutOrStdout())
}

// commandContext returns the command's context or Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// executeScans builds the generator and pipeline for cfg and runs them.
// A cancelled run returns the partial report with TimedOut set.
func executeScans(ctx context.Context, cfg *config.Config, scans []string, logger *slog.Logger) (*model.Report, error) {
	rs, err := rules.ForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	for _, r := range rs {
		logger.Debug("rule loaded", "rule", r.Name, "category", r.Category, "pattern", r.Pattern())
	}

	gen := newGenerator(cfg, logger)
	p, err := pipeline.ForScans(gen, cfg, rs, scans,
		pipeline.WithLogger(logger),
		pipeline.WithStepTimeout(cfg.StepTimeout),
	)
	if err != nil {
		return nil, err
	}

	rep := model.NewReport(uuid.NewString(), cfg.Root, time.Now())
	logger.Info("starting scan",
		"run_id", rep.RunID,
		"root", cfg.Root,
		"scans", p.StepNames(),
		"watched", len(cfg.WatchedPaths),
	)

	if err := p.Execute(ctx, rep); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("scan interrupted, reporting partial results", "run_id", rep.RunID)
			return rep, nil
		}
		return nil, err
	}
	return rep, nil
}

// newGenerator creates the scanner rooted at cfg.Root.
func newGenerator(cfg *config.Config, logger *slog.Logger) *scan.Generator {
	opts := []scan.Option{scan.WithLogger(logger)}
	if cfg.AgeSource == config.AgeSourceGit {
		opts = append(opts, scan.WithAgeSource(scan.NewGitSource(cfg.Root)))
	}
	return scan.New(os.DirFS(cfg.Root), opts...)
}

// buildConfig layers defaults, .env, the config file, DOCHEALTH_* variables
// and explicitly set flags, then validates the result.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	root, err := flags.GetString("root")
	if err != nil {
		return nil, err
	}
	if cfg.Root, err = filepath.Abs(root); err != nil {
		return nil, fmt.Errorf("invalid root %s: %w", root, err)
	}

	if err := config.LoadDotEnv(filepath.Join(cfg.Root, ".env")); err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently keep the defaults if no file is found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath, cfg.Root)
	switch {
	case configPath != "":
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := config.ApplyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// applyFlags copies the flags the user set onto cfg. Unset flags keep the
// values from the file and environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("watch") {
		if cfg.WatchedPaths, err = flags.GetStringArray("watch"); err != nil {
			return err
		}
	}
	if flags.Changed("large") {
		if cfg.LargeThresholdBytes, err = flags.GetInt64("large"); err != nil {
			return err
		}
	}
	if flags.Changed("critical") {
		if cfg.CriticalThresholdBytes, err = flags.GetInt64("critical"); err != nil {
			return err
		}
	}
	if flags.Changed("stale-days") {
		if cfg.StaleDays, err = flags.GetInt("stale-days"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.StepTimeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("age-source") {
		if cfg.AgeSource, err = flags.GetString("age-source"); err != nil {
			return err
		}
	}

	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return err
	}
	if cfg.Color, err = flags.GetBool("color"); err != nil {
		return err
	}
	if cfg.HideEmpty, err = flags.GetBool("hide-empty"); err != nil {
		return err
	}
	return nil
}

// setupLogger creates the redacting logger on the command's stderr.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")   //nolint:errcheck // flag is always registered
	jsonLogs, _ := cmd.Flags().GetBool("log-json") //nolint:errcheck // flag is always registered

	if jsonLogs {
		return dlog.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return dlog.NewSecureLogger(cmd.ErrOrStderr(), verbose)
}

// outputReport writes the report in the requested format to stdout, or to
// the report file with a one-line summary on stdout.
func outputReport(cfg *config.Config, rep *model.Report, stdout io.Writer) error {
	if cfg.ReportFile == "" {
		return writeReport(formatWriter(cfg, stdout), rep)
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may quote redacted secrets and internal paths, so only the
	// owner can read them.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	return writeReport(report.NewMultiWriter(
		formatWriter(cfg, f),
		report.NewSummaryWriter(stdout, cfg.ReportFile),
	), rep)
}

// formatWriter returns the writer selected by --json, --markdown or neither.
func formatWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output,
			report.WithVerbose(cfg.Verbose),
			report.WithColor(cfg.Color),
			report.WithShowEmpty(!cfg.HideEmpty),
		)
	}
}

func writeReport(w report.Writer, rep *model.Report) error {
	if _, err := w.Write(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
