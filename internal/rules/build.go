package rules

import (
	"fmt"
	"strings"

	"github.com/lifeform/dochealth/internal/config"
	"github.com/lifeform/dochealth/internal/model"
)

// FromSpecs compiles rules declared in the configuration file.
func FromSpecs(specs []config.RuleSpec) ([]PatternRule, error) {
	out := make([]PatternRule, 0, len(specs))
	for _, s := range specs {
		category := model.Category(strings.ToLower(strings.TrimSpace(s.Category)))
		if !category.Valid() {
			return nil, fmt.Errorf("rule %q: %w", s.Name, ErrInvalidCategory)
		}

		severity := model.SeverityWarn
		if s.Severity != "" {
			parsed, ok := model.ParseSeverity(s.Severity)
			if !ok {
				return nil, fmt.Errorf("rule %q: %w", s.Name, ErrInvalidSeverity)
			}
			severity = parsed
		}

		r, err := New(s.Name, s.Title, category, severity, s.Pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ForConfig returns the rule table for a run: the built-in rules followed by
// the configured extra rules, minus any disabled names.
func ForConfig(cfg *config.Config) ([]PatternRule, error) {
	extra, err := FromSpecs(cfg.ExtraRules)
	if err != nil {
		return nil, err
	}

	disabled := make(map[string]bool, len(cfg.DisabledRules))
	for _, name := range cfg.DisabledRules {
		disabled[name] = true
	}

	all := append(Defaults(), extra...)
	out := make([]PatternRule, 0, len(all))
	for _, r := range all {
		if !disabled[r.Name] {
			out = append(out, r)
		}
	}

	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}
