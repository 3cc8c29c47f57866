package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/lifeform/dochealth/internal/model"
)

// JSONWriter outputs the bare report as JSON, one document per Write.
type JSONWriter struct {
	baseWriter

	// prefix and indent are passed to json.Encoder.SetIndent.
	// Both empty means compact output.
	prefix string
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output with the given line prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	return w.encode(report)
}

// encode writes v followed by a newline.
//
// Design decision: HTML escaping is off. Paths and samples quote markdown
// and URLs, and "<" in a CI log helps nobody.
func (w *JSONWriter) encode(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.prefix != "" || w.indent != "" {
		enc.SetIndent(w.prefix, w.indent)
	}
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

// JSONReport is the document written by FullJSONWriter: the report plus
// fields a CI job would otherwise have to recompute.
type JSONReport struct {
	// Version is the dochealth version that generated this report.
	Version string `json:"version"`

	// NeedsSummarization mirrors the recommendation line of the text report.
	NeedsSummarization bool `json:"needs_summarization"`

	// Alerts counts security findings at ALERT severity.
	Alerts int `json:"alerts"`

	Report *model.Report `json:"report"`
}

// NewJSONReport wraps report for output.
func NewJSONReport(report *model.Report, version string) *JSONReport {
	return &JSONReport{
		Version:            version,
		NeedsSummarization: report.NeedsSummarization(),
		Alerts:             report.AlertCount(),
		Report:             report,
	}
}

// FullJSONWriter outputs a JSONReport. This is what --json prints.
type FullJSONWriter struct {
	*JSONWriter
	version string
}

// NewFullJSONWriter creates a FullJSONWriter stamping reports with version.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the report wrapped with metadata.
func (w *FullJSONWriter) Write(report *model.Report) (int, error) {
	return w.encode(NewJSONReport(report, w.version))
}
