package config

// RuleSpec is a pattern rule declared in the configuration file.
type RuleSpec struct {
	// Name is the rule identifier reported in findings.
	Name string `yaml:"name"`

	// Title is the human-readable label. Defaults to Name.
	Title string `yaml:"title,omitempty"`

	// Pattern is an RE2 regular expression.
	Pattern string `yaml:"pattern"`

	// Category is "duplication" or "security".
	Category string `yaml:"category"`

	// Severity is "warn" or "alert". Defaults to "warn".
	Severity string `yaml:"severity,omitempty"`
}

// Thresholds groups the size limits in the configuration file.
type Thresholds struct {
	LargeBytes    int64 `yaml:"largeBytes,omitempty"`
	CriticalBytes int64 `yaml:"criticalBytes,omitempty"`
}

// File represents the structure of the .dochealth.yaml configuration file.
// Zero values mean "keep the default".
type File struct {
	Thresholds Thresholds `yaml:"thresholds,omitempty"`

	// StaleDays overrides DefaultStaleDays.
	StaleDays int `yaml:"staleDays,omitempty"`

	// Watch replaces the default watch list.
	Watch []string `yaml:"watch,omitempty"`

	// Guide is the summarization guide path.
	Guide string `yaml:"guide,omitempty"`

	// Components is the self-reflect components directory.
	Components string `yaml:"components,omitempty"`

	// AgeSource is "mtime" or "git".
	AgeSource string `yaml:"ageSource,omitempty"`

	// DetectIdentical toggles the identical-content check. A pointer so
	// that an explicit false can be told apart from "not set".
	DetectIdentical *bool `yaml:"detectIdentical,omitempty"`

	// Rules are appended to the built-in rule table.
	Rules []RuleSpec `yaml:"rules,omitempty"`

	// DisableRules names rules to skip.
	DisableRules []string `yaml:"disableRules,omitempty"`

	// Schedule is the cron expression for the watch command.
	Schedule string `yaml:"schedule,omitempty"`
}

// Apply merges the non-zero values of f into c.
func (f *File) Apply(c *Config) {
	if f == nil {
		return
	}
	if f.Thresholds.LargeBytes != 0 {
		c.LargeThresholdBytes = f.Thresholds.LargeBytes
	}
	if f.Thresholds.CriticalBytes != 0 {
		c.CriticalThresholdBytes = f.Thresholds.CriticalBytes
	}
	if f.StaleDays != 0 {
		c.StaleDays = f.StaleDays
	}
	if len(f.Watch) > 0 {
		c.WatchedPaths = append([]string(nil), f.Watch...)
	}
	if f.Guide != "" {
		c.GuidePath = f.Guide
	}
	if f.Components != "" {
		c.ComponentsDir = f.Components
	}
	if f.AgeSource != "" {
		c.AgeSource = f.AgeSource
	}
	if f.DetectIdentical != nil {
		c.DetectIdentical = *f.DetectIdentical
	}
	if len(f.Rules) > 0 {
		c.ExtraRules = append(c.ExtraRules, f.Rules...)
	}
	if len(f.DisableRules) > 0 {
		c.DisabledRules = append(c.DisabledRules, f.DisableRules...)
	}
	if f.Schedule != "" {
		c.Schedule = f.Schedule
	}
}
