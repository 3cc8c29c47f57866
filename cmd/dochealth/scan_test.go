package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifeform/dochealth/internal/config"
	"github.com/lifeform/dochealth/internal/model"
	"github.com/lifeform/dochealth/internal/report"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newParsedRootCmd returns a root command whose flags were parsed from args.
// ParseFlags also merges the persistent flags into cmd.Flags().
func newParsedRootCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := NewRootCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return cmd
}

// TestBuildConfig tests configuration layering of file and flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := newParsedRootCmd(t, "--root", t.TempDir())
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LargeThresholdBytes != config.DefaultLargeThresholdBytes {
			t.Errorf("expected default large threshold, got %d", cfg.LargeThresholdBytes)
		}
		if len(cfg.WatchedPaths) != len(config.DefaultWatchedPaths()) {
			t.Errorf("expected default watch list, got %v", cfg.WatchedPaths)
		}
		if !filepath.IsAbs(cfg.Root) {
			t.Errorf("expected absolute root, got %q", cfg.Root)
		}
	})

	t.Run("config file in root is applied", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			config.DefaultConfigFile: "thresholds:\n  largeBytes: 10\n  criticalBytes: 20\nwatch:\n  - NOTES.md\n",
		})

		cmd := newParsedRootCmd(t, "--root", dir)
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LargeThresholdBytes != 10 || cfg.CriticalThresholdBytes != 20 {
			t.Errorf("expected thresholds 10/20, got %d/%d", cfg.LargeThresholdBytes, cfg.CriticalThresholdBytes)
		}
		if len(cfg.WatchedPaths) != 1 || cfg.WatchedPaths[0] != "NOTES.md" {
			t.Errorf("expected watch list from file, got %v", cfg.WatchedPaths)
		}
	})

	t.Run("flags override the config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			config.DefaultConfigFile: "thresholds:\n  largeBytes: 10\n  criticalBytes: 20\nstaleDays: 3\n",
		})

		cmd := newParsedRootCmd(t, "--root", dir, "--large", "1000", "--critical", "2000")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LargeThresholdBytes != 1000 || cfg.CriticalThresholdBytes != 2000 {
			t.Errorf("expected thresholds 1000/2000, got %d/%d", cfg.LargeThresholdBytes, cfg.CriticalThresholdBytes)
		}
		if cfg.StaleDays != 3 {
			t.Errorf("expected stale days from file, got %d", cfg.StaleDays)
		}
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{config.DefaultConfigFile: "thresholds: [oops\n"})

		cmd := newParsedRootCmd(t, "--root", dir)
		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for malformed config file")
		}
	})
}

// TestOutputReport tests the output formats and the report file.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	newReport := func() *model.Report {
		r := model.NewReport("run-1", "/repo", testNow)
		r.PerformedScans = []string{model.ScanHealth}
		r.Health = &model.HealthReport{
			Entries: []model.HealthEntry{{
				Path: "README.md",
				Document: &model.DocumentRecord{
					Path: "README.md", SizeBytes: 12000, LineCount: 40,
					Tier: model.TierCritical, TierText: "critical", ModTime: testNow,
				},
			}},
			Summary: model.HealthSummary{CriticalCount: 1},
		}
		return r
	}

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		cfg := config.NewConfig()
		cfg.JSONReport = true
		if err := outputReport(cfg, newReport(), &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got report.JSONReport
		if err := json.Unmarshal([]byte(buf.String()), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if !got.NeedsSummarization {
			t.Error("expected needs_summarization to be true")
		}
		if got.Report == nil || got.Report.RunID != "run-1" {
			t.Errorf("unexpected report %+v", got.Report)
		}
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if err := outputReport(config.NewConfig(), newReport(), &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[CRITICAL] README.md") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("markdown to nested file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "reports", "nested", "health.md")
		cfg := config.NewConfig()
		cfg.MarkdownReport = true
		cfg.ReportFile = path

		var stdout strings.Builder
		if err := outputReport(cfg, newReport(), &stdout); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "dochealth: 1 critical, 0 large, 0 stale, 0 missing -> " + path + "\n"
		if stdout.String() != want {
			t.Errorf("expected summary line %q on stdout, got %q", want, stdout.String())
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.HasPrefix(string(content), "# ") {
			t.Errorf("expected a markdown heading, got:\n%s", content)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("failed to stat report: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected permissions 0600, got %o", perm)
			}
		}
	})
}

// TestRunJSONScan checks tier classification end to end through the CLI.
func TestRunJSONScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"small.md": strings.Repeat("x", 5000),
		"large.md": strings.Repeat("y", 5001),
		"huge.md":  strings.Repeat("z\n", 5001),
	})

	code, stdout, stderr := runCLI(t, "health", "-j", "-r", dir,
		"-w", "small.md", "-w", "large.md", "-w", "huge.md")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}

	var got report.JSONReport
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	docs := got.Report.Health.Documents()
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	want := []model.Tier{model.TierNormal, model.TierLarge, model.TierCritical}
	for i, d := range docs {
		if d.Tier != want[i] {
			t.Errorf("%s: expected tier %v, got %v", d.Path, want[i], d.Tier)
		}
	}
	if got.Report.Health.Summary.CriticalCount != 1 || got.Report.Health.Summary.LargeCount != 1 {
		t.Errorf("unexpected summary %+v", got.Report.Health.Summary)
	}
}
