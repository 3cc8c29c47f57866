package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults should be intentional, so each one is pinned here.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default thresholds are 5000 and 10000 bytes", func(t *testing.T) {
		t.Parallel()
		if cfg.LargeThresholdBytes != 5000 {
			t.Errorf("expected LargeThresholdBytes 5000, got %d", cfg.LargeThresholdBytes)
		}
		if cfg.CriticalThresholdBytes != 10000 {
			t.Errorf("expected CriticalThresholdBytes 10000, got %d", cfg.CriticalThresholdBytes)
		}
	})

	t.Run("default StaleDays is 30", func(t *testing.T) {
		t.Parallel()
		if cfg.StaleDays != 30 {
			t.Errorf("expected StaleDays 30, got %d", cfg.StaleDays)
		}
	})

	t.Run("default watch list starts with README.md", func(t *testing.T) {
		t.Parallel()
		if len(cfg.WatchedPaths) != 5 || cfg.WatchedPaths[0] != "README.md" {
			t.Errorf("unexpected watch list: %v", cfg.WatchedPaths)
		}
	})

	t.Run("default age source is mtime", func(t *testing.T) {
		t.Parallel()
		if cfg.AgeSource != AgeSourceModTime {
			t.Errorf("expected %q, got %q", AgeSourceModTime, cfg.AgeSource)
		}
	})

	t.Run("identical content detection is on", func(t *testing.T) {
		t.Parallel()
		if !cfg.DetectIdentical {
			t.Error("expected DetectIdentical to be true")
		}
	})

	t.Run("default config validates", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected valid default config, got %v", err)
		}
	})
}

// TestDefaultWatchedPathsIsCopy ensures callers cannot mutate the defaults.
func TestDefaultWatchedPathsIsCopy(t *testing.T) {
	t.Parallel()

	a := DefaultWatchedPaths()
	a[0] = "changed"
	if DefaultWatchedPaths()[0] != "README.md" {
		t.Error("DefaultWatchedPaths returned a shared slice")
	}
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(c *Config)
		expected error
	}{
		{"empty watch list", func(c *Config) { c.WatchedPaths = nil }, ErrNoWatchedPaths},
		{"negative large threshold", func(c *Config) { c.LargeThresholdBytes = -1 }, ErrInvalidLargeThreshold},
		{"critical below large", func(c *Config) { c.CriticalThresholdBytes = 4000 }, ErrInvalidCriticalThreshold},
		{"critical equal to large is allowed", func(c *Config) { c.CriticalThresholdBytes = 5000 }, nil},
		{"negative stale days", func(c *Config) { c.StaleDays = -2 }, ErrInvalidStaleDays},
		{"negative timeout", func(c *Config) { c.StepTimeout = -time.Second }, ErrInvalidTimeout},
		{"zero stale days is allowed", func(c *Config) { c.StaleDays = 0 }, nil},
		{"unknown age source", func(c *Config) { c.AgeSource = "ctime" }, ErrInvalidAgeSource},
		{"git age source", func(c *Config) { c.AgeSource = AgeSourceGit }, nil},
		{"json and markdown together", func(c *Config) {
			c.JSONReport = true
			c.MarkdownReport = true
		}, ErrConflictingReportFormats},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.expected == nil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cf, err := LoadConfigFile("/nonexistent/path/.dochealth.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cf != nil {
			t.Error("expected nil file when not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `thresholds:
  largeBytes: 2000
  criticalBytes: 4000
staleDays: 7
watch:
  - README.md
  - docs/NOTES.md
guide: docs/GUIDE.md
ageSource: git
detectIdentical: false
rules:
  - name: todo_marker
    pattern: "TODO"
    category: duplication
disableRules:
  - ip_address
schedule: "@hourly"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		cf.Apply(cfg)

		if cfg.LargeThresholdBytes != 2000 || cfg.CriticalThresholdBytes != 4000 {
			t.Errorf("unexpected thresholds %d/%d", cfg.LargeThresholdBytes, cfg.CriticalThresholdBytes)
		}
		if cfg.StaleDays != 7 {
			t.Errorf("expected stale days 7, got %d", cfg.StaleDays)
		}
		if len(cfg.WatchedPaths) != 2 || cfg.WatchedPaths[1] != "docs/NOTES.md" {
			t.Errorf("unexpected watch list %v", cfg.WatchedPaths)
		}
		if cfg.GuidePath != "docs/GUIDE.md" {
			t.Errorf("unexpected guide %q", cfg.GuidePath)
		}
		if cfg.AgeSource != AgeSourceGit {
			t.Errorf("unexpected age source %q", cfg.AgeSource)
		}
		if cfg.DetectIdentical {
			t.Error("expected detectIdentical false to be honored")
		}
		if len(cfg.ExtraRules) != 1 || cfg.ExtraRules[0].Name != "todo_marker" {
			t.Errorf("unexpected extra rules %+v", cfg.ExtraRules)
		}
		if len(cfg.DisabledRules) != 1 || cfg.DisabledRules[0] != "ip_address" {
			t.Errorf("unexpected disabled rules %v", cfg.DisabledRules)
		}
		if cfg.Schedule != "@hourly" {
			t.Errorf("unexpected schedule %q", cfg.Schedule)
		}
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("staleDays: 0\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := NewConfig()
		cf.Apply(cfg)
		if cfg.StaleDays != DefaultStaleDays || !cfg.DetectIdentical {
			t.Errorf("defaults changed: %+v", cfg)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("staleDays: 3"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if got := FindConfigFile(configPath, "."); got != configPath {
			t.Errorf("expected %q, got %q", configPath, got)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile("/nonexistent/path/config.yaml", "."); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("finds config in root", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		configPath := filepath.Join(root, DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("staleDays: 3"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if got := FindConfigFile("", root); got != configPath {
			t.Errorf("expected %q, got %q", configPath, got)
		}
	})
}

// TestXDGConfigDir tests the XDG directory helper.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if !strings.HasSuffix(dir, AppName) {
		t.Errorf("expected dir to end with %q, got %q", AppName, dir)
	}
}

// TestApplyEnv tests DOCHEALTH_* overrides.
func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	t.Run("overrides every supported variable", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := ApplyEnv(cfg, env(map[string]string{
			EnvLargeBytes:    "100",
			EnvCriticalBytes: "200",
			EnvStaleDays:     "5",
			EnvWatch:         " a.md, ,b.md ",
			EnvGuide:         "GUIDE.md",
			EnvAgeSource:     "GIT",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LargeThresholdBytes != 100 || cfg.CriticalThresholdBytes != 200 || cfg.StaleDays != 5 {
			t.Errorf("unexpected numbers: %+v", cfg)
		}
		if len(cfg.WatchedPaths) != 2 || cfg.WatchedPaths[0] != "a.md" || cfg.WatchedPaths[1] != "b.md" {
			t.Errorf("unexpected watch list %v", cfg.WatchedPaths)
		}
		if cfg.GuidePath != "GUIDE.md" || cfg.AgeSource != AgeSourceGit {
			t.Errorf("unexpected strings: %q %q", cfg.GuidePath, cfg.AgeSource)
		}
	})

	t.Run("unset variables keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := ApplyEnv(cfg, env(nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.StaleDays != DefaultStaleDays {
			t.Errorf("expected default stale days, got %d", cfg.StaleDays)
		}
	})

	t.Run("invalid number is ErrInvalidEnv", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := ApplyEnv(cfg, env(map[string]string{EnvStaleDays: "soon"}))
		if !errors.Is(err, ErrInvalidEnv) {
			t.Errorf("expected ErrInvalidEnv, got %v", err)
		}
	})
}

// TestLoadDotEnv tests .env loading.
func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("loads variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("DOCHEALTH_TEST_DOTENV=loaded\n"), 0600); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}
		t.Setenv("DOCHEALTH_TEST_DOTENV", "")
		if err := os.Unsetenv("DOCHEALTH_TEST_DOTENV"); err != nil {
			t.Fatalf("unsetenv: %v", err)
		}
		if err := LoadDotEnv(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := os.Getenv("DOCHEALTH_TEST_DOTENV"); got != "loaded" {
			t.Errorf("expected loaded, got %q", got)
		}
	})
}
