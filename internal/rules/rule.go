package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lifeform/dochealth/internal/model"
)

// Rule validation errors.
var (
	// ErrEmptyName is returned when a rule has no name.
	ErrEmptyName = errors.New("rule name must not be empty")

	// ErrDuplicateName is returned when two rules share a name.
	ErrDuplicateName = errors.New("duplicate rule name")

	// ErrInvalidCategory is returned for categories other than duplication and security.
	ErrInvalidCategory = errors.New("invalid rule category: must be duplication or security")

	// ErrInvalidSeverity is returned for severities other than warn and alert.
	ErrInvalidSeverity = errors.New("invalid rule severity: must be warn or alert")
)

// PatternRule is one entry in the declarative rule table.
// Duplication rules fire when more than one watched file matches;
// security rules fire when any watched file matches.
type PatternRule struct {
	// Name is the stable identifier used in findings, e.g. "api_key".
	Name string

	// Title is the human-readable label printed in reports.
	Title string

	// Category selects the scan that evaluates the rule.
	Category model.Category

	// Severity is copied onto every finding the rule produces.
	Severity model.Severity

	// pattern is the compiled matcher.
	pattern *regexp.Regexp

	// redact rewrites a match before it is stored as a sample.
	redact func(string) string
}

// New compiles expr into a PatternRule.
func New(name, title string, category model.Category, severity model.Severity, expr string) (PatternRule, error) {
	if strings.TrimSpace(name) == "" {
		return PatternRule{}, ErrEmptyName
	}
	if !category.Valid() {
		return PatternRule{}, fmt.Errorf("rule %q: %w", name, ErrInvalidCategory)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return PatternRule{}, fmt.Errorf("rule %q: invalid pattern: %w", name, err)
	}
	if title == "" {
		title = name
	}
	return PatternRule{
		Name:     name,
		Title:    title,
		Category: category,
		Severity: severity,
		pattern:  re,
	}, nil
}

// MustNew is like New but panics on error. It is used for the built-in table.
func MustNew(name, title string, category model.Category, severity model.Severity, expr string) PatternRule {
	r, err := New(name, title, category, severity, expr)
	if err != nil {
		panic(err)
	}
	return r
}

// withRedaction returns a copy of r that passes samples through fn.
func (r PatternRule) withRedaction(fn func(string) string) PatternRule {
	r.redact = fn
	return r
}

// Pattern returns the source expression of the rule.
func (r PatternRule) Pattern() string {
	if r.pattern == nil {
		return ""
	}
	return r.pattern.String()
}

// Match reports whether content matches the rule and returns a sample of
// the first match, redacted for rules that carry a redaction function.
func (r PatternRule) Match(content []byte) (string, bool) {
	if r.pattern == nil {
		return "", false
	}
	loc := r.pattern.FindIndex(content)
	if loc == nil {
		return "", false
	}
	sample := string(content[loc[0]:loc[1]])
	if r.redact != nil {
		sample = r.redact(sample)
	}
	return truncate(sample, 80), true
}

// Filter returns the rules of the given category, preserving order.
func Filter(rs []PatternRule, category model.Category) []PatternRule {
	out := make([]PatternRule, 0, len(rs))
	for _, r := range rs {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks that rule names are non-empty and unique.
func Validate(rs []PatternRule) error {
	seen := make(map[string]bool, len(rs))
	for _, r := range rs {
		if r.Name == "" {
			return ErrEmptyName
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}

// truncate shortens s to maxLen bytes with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
