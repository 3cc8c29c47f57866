package pipeline

import (
	"context"
	"fmt"

	"github.com/lifeform/dochealth/internal/config"
	"github.com/lifeform/dochealth/internal/model"
	"github.com/lifeform/dochealth/internal/rules"
	"github.com/lifeform/dochealth/internal/scan"
)

// HealthStep runs the health scan and stores the result in Report.Health.
type HealthStep struct {
	gen *scan.Generator
	cfg *config.Config
}

// NewHealthStep creates a health scan step.
func NewHealthStep(gen *scan.Generator, cfg *config.Config) *HealthStep {
	return &HealthStep{gen: gen, cfg: cfg}
}

// Name returns the step name.
func (s *HealthStep) Name() string {
	return model.ScanHealth
}

// Do executes the health scan.
func (s *HealthStep) Do(ctx context.Context, report *model.Report) error {
	health, err := s.gen.ScanHealth(ctx, s.cfg)
	report.Health = health
	if err != nil {
		return fmt.Errorf("health scan: %w", err)
	}
	return nil
}

// DuplicationStep runs the duplication scan.
type DuplicationStep struct {
	gen   *scan.Generator
	cfg   *config.Config
	rules []rules.PatternRule
}

// NewDuplicationStep creates a duplication scan step evaluating rs.
func NewDuplicationStep(gen *scan.Generator, cfg *config.Config, rs []rules.PatternRule) *DuplicationStep {
	return &DuplicationStep{gen: gen, cfg: cfg, rules: rs}
}

// Name returns the step name.
func (s *DuplicationStep) Name() string {
	return model.ScanDuplication
}

// Do executes the duplication scan.
func (s *DuplicationStep) Do(ctx context.Context, report *model.Report) error {
	findings, err := s.gen.ScanDuplication(ctx, s.cfg, s.rules)
	if err != nil {
		return fmt.Errorf("duplication scan: %w", err)
	}
	report.Duplication = append(report.Duplication, findings...)
	return nil
}

// SecurityStep runs the security scan.
type SecurityStep struct {
	gen   *scan.Generator
	cfg   *config.Config
	rules []rules.PatternRule
}

// NewSecurityStep creates a security scan step evaluating rs.
func NewSecurityStep(gen *scan.Generator, cfg *config.Config, rs []rules.PatternRule) *SecurityStep {
	return &SecurityStep{gen: gen, cfg: cfg, rules: rs}
}

// Name returns the step name.
func (s *SecurityStep) Name() string {
	return model.ScanSecurity
}

// Do executes the security scan.
func (s *SecurityStep) Do(ctx context.Context, report *model.Report) error {
	findings, err := s.gen.ScanSecurity(ctx, s.cfg, s.rules)
	if err != nil {
		return fmt.Errorf("security scan: %w", err)
	}
	report.Security = append(report.Security, findings...)
	return nil
}

// ForScans builds a pipeline running the named scans in the given order.
// An empty list means health, duplication and security.
func ForScans(gen *scan.Generator, cfg *config.Config, rs []rules.PatternRule, scans []string, opts ...Option) (*Pipeline, error) {
	if len(scans) == 0 {
		scans = []string{model.ScanHealth, model.ScanDuplication, model.ScanSecurity}
	}

	steps := make([]Step, 0, len(scans))
	for _, name := range scans {
		switch name {
		case model.ScanHealth:
			steps = append(steps, NewHealthStep(gen, cfg))
		case model.ScanDuplication:
			steps = append(steps, NewDuplicationStep(gen, cfg, rs))
		case model.ScanSecurity:
			steps = append(steps, NewSecurityStep(gen, cfg, rs))
		default:
			return nil, fmt.Errorf("unknown scan %q", name)
		}
	}

	p := New(opts...)
	p.AddSteps(steps...)
	return p, nil
}
