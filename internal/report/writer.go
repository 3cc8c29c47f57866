package report

import (
	"io"

	"github.com/lifeform/dochealth/internal/model"
)

// Writer renders a report to its destination and returns the bytes written.
type Writer interface {
	Write(report *model.Report) (int, error)
}

// MultiWriter renders one report through several Writers in order.
// It is used to send the full report to a file while printing a summary
// line to the terminal.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the report through every writer and returns the byte total.
// It stops at the first error.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
