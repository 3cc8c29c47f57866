// Package pipeline runs the scans of one dochealth invocation in order.
//
// The default run is health, then duplication, then security, all filling
// the same model.Report. Subcommands build a pipeline with a single step;
// watch builds the full one on every tick. Steps run sequentially and
// cancellation is honored between them, so an interrupted run reports the
// scans that finished.
package pipeline
