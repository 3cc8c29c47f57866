package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvLargeBytes    = "DOCHEALTH_LARGE_BYTES"
	EnvCriticalBytes = "DOCHEALTH_CRITICAL_BYTES"
	EnvStaleDays     = "DOCHEALTH_STALE_DAYS"
	EnvWatch         = "DOCHEALTH_WATCH"
	EnvGuide         = "DOCHEALTH_GUIDE"
	EnvAgeSource     = "DOCHEALTH_AGE_SOURCE"
)

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with DOCHEALTH_* variables looked up through getenv.
// DOCHEALTH_WATCH is a comma separated list.
func ApplyEnv(c *Config, getenv func(string) string) error {
	if v := getenv(EnvLargeBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvLargeBytes, v)
		}
		c.LargeThresholdBytes = n
	}
	if v := getenv(EnvCriticalBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvCriticalBytes, v)
		}
		c.CriticalThresholdBytes = n
	}
	if v := getenv(EnvStaleDays); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvStaleDays, v)
		}
		c.StaleDays = n
	}
	if v := getenv(EnvWatch); v != "" {
		var paths []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		c.WatchedPaths = paths
	}
	if v := getenv(EnvGuide); v != "" {
		c.GuidePath = v
	}
	if v := getenv(EnvAgeSource); v != "" {
		c.AgeSource = strings.ToLower(v)
	}
	return nil
}
