package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lifeform/dochealth/internal/model"
)

// Step is one scan of a run. It fills in its own part of the report.
// Problems in the documents are data on the report; an error means the
// scan itself could not finish.
type Step interface {
	Do(ctx context.Context, report *model.Report) error

	// Name is recorded in Report.PerformedScans once Do succeeds.
	Name() string
}

// Pipeline runs steps one after another over a single report.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// stepTimeout bounds each step. Zero means no bound.
	stepTimeout time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithStepTimeout bounds every step by d. A step that runs out of time
// marks the report TimedOut and ends the run with the scans done so far.
func WithStepTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.stepTimeout = d
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step. Steps run in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends several steps.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps in order.
//
// Cancellation is checked before every step, so an interrupted run still
// carries the scans that completed. When ctx is done, or a step reports
// context.Canceled or context.DeadlineExceeded, the report is marked
// TimedOut and that error is returned.
func (p *Pipeline) Execute(ctx context.Context, report *model.Report) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("run interrupted before step", "step", step.Name(), "run_id", report.RunID, "reason", err)
			report.TimedOut = true
			return err
		}

		start := time.Now()
		p.logger.Info("running scan", "step", step.Name(), "run_id", report.RunID)

		err := p.run(ctx, step, report)
		switch {
		case err == nil:
			report.PerformedScans = append(report.PerformedScans, step.Name())
			p.logger.Debug("scan finished", "step", step.Name(), "run_id", report.RunID, "elapsed", time.Since(start))
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			p.logger.Warn("scan interrupted", "step", step.Name(), "run_id", report.RunID, "reason", err)
			report.TimedOut = true
			return err
		default:
			p.logger.Error("scan failed", "step", step.Name(), "run_id", report.RunID, "error", err)
			return err
		}
	}
	return nil
}

// run calls step.Do under the per-step timeout, if any.
func (p *Pipeline) run(ctx context.Context, step Step, report *model.Report) error {
	if p.stepTimeout <= 0 {
		return step.Do(ctx, report)
	}
	stepCtx, cancel := context.WithTimeout(ctx, p.stepTimeout)
	defer cancel()
	return step.Do(stepCtx, report)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
