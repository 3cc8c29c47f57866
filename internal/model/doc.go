// Package model defines the data structures shared by the scanners and the
// report writers.
//
// This package contains the following main types:
//   - DocumentRecord: metrics and tier of one watched document
//   - HealthReport: per-path entries plus the HealthSummary tally
//   - Finding: a duplication or security match across watched files
//   - Report: everything produced by one run, in the order scans ran
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The rules, scan, pipeline and report packages all need these
// types, so centralizing them prevents import cycles.
//
// Nothing here is persisted. The JSON tags exist for the --json output only.
package model
