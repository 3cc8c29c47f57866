package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/lifeform/dochealth/internal/config"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the full scan on a schedule until interrupted",
		Long: `Watch runs health, duplication and security once immediately and then
again on every tick of a cron schedule, until interrupted with Ctrl+C.

The schedule accepts standard five-field cron expressions and descriptors
such as @hourly, @daily or "@every 6h".

Examples:
  dochealth watch
  dochealth watch --schedule "0 9 * * 1-5"
  dochealth watch --schedule "@every 30m" -o reports/health.txt`,
		Args: cobra.NoArgs,
		RunE: runWatchCmd,
	}

	cmd.Flags().String("schedule", config.DefaultSchedule, "Cron schedule for repeated scans")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("schedule") {
		if cfg.Schedule, err = cmd.Flags().GetString("schedule"); err != nil {
			return err
		}
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}

	logger := setupLogger(cmd)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	job := func() {
		rep, err := executeScans(ctx, cfg, nil, logger)
		if err != nil {
			logger.Error("scheduled scan failed", "error", err)
			return
		}
		if err := outputReport(cfg, rep, out); err != nil {
			logger.Error("failed to write report", "error", err)
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	job()

	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(cfg.Schedule, job); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}

	logger.Info("watching documents", "schedule", cfg.Schedule, "root", cfg.Root)
	c.Start()
	<-ctx.Done()

	// Wait for a running scan to finish before returning.
	<-c.Stop().Done()
	logger.Info("watch stopped")
	return nil
}

// cronLogger routes the scheduler's own logs into slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
