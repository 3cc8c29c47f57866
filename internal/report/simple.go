package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lifeform/dochealth/internal/model"
)

// Line labels of the text report. Tools grep for these, so they are stable.
const (
	LabelCritical = "[CRITICAL]"
	LabelLarge    = "[LARGE]"
	LabelOK       = "[OK]"
	LabelStale    = "[STALE]"
	LabelMissing  = "[MISSING]"
)

// ruleWidth is the width of section separators.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with one line per document
// and one line per finding.
//
// Design decision: colors are off unless requested, so the default output
// can be piped to files or grep without ANSI escapes.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose adds samples and modification times.
	verbose bool

	// palette colors labels; its functions are identity when disabled.
	palette palette
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithColor enables ANSI colors regardless of the terminal.
func WithColor(enabled bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.palette = newPalette(enabled)
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  true,
		palette:    newPalette(false),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	return io.WriteString(w.output, w.Render(report))
}

// Render returns the text report. The output depends only on report and
// the writer options.
func (w *SimpleWriter) Render(report *model.Report) string {
	var sb strings.Builder

	w.writeHeader(&sb, report)

	if report.Performed(model.ScanHealth) && report.Health != nil {
		w.writeHealth(&sb, report.Health)
	}
	if report.Performed(model.ScanDuplication) {
		w.writeFindings(&sb, "Duplication", report.Duplication, "No duplicated topics found.")
	}
	if report.Performed(model.ScanSecurity) {
		w.writeFindings(&sb, "Security", report.Security, "No sensitive patterns found.")
	}

	w.writeFooter(&sb, report)

	return sb.String()
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                   DOCUMENTATION HEALTH REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Root:      %s\n", report.Root)
	fmt.Fprintf(sb, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if w.verbose {
		fmt.Fprintf(sb, "Run ID:    %s\n", report.RunID)
	}
	if report.TimedOut {
		sb.WriteString("Status:    CANCELLED (partial results)\n")
	}
	sb.WriteString("\n")
}

// writeSection writes a section title between separators.
func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(upper.String(title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeHealth writes one line per watched path followed by the tallies.
// A stale document gets a second line after its tier line.
func (w *SimpleWriter) writeHealth(sb *strings.Builder, health *model.HealthReport) {
	w.writeSection(sb, "Health")

	for _, e := range health.Entries {
		if e.Problem != nil {
			reason := e.Problem.Reason
			if reason == "" {
				reason = e.Problem.Kind.String()
			}
			fmt.Fprintf(sb, "  %-10s %s (%s)\n", w.palette.warn(LabelMissing), e.Path, reason)
			continue
		}

		d := e.Document
		fmt.Fprintf(sb, "  %-10s %s: %s, %s lines, %s\n",
			w.tierLabel(d.Tier), d.Path,
			humanize.Bytes(uint64(max(d.SizeBytes, 0))), //nolint:gosec // clamped above zero
			humanize.Comma(int64(d.LineCount)),
			days(d.AgeDays),
		)
		if d.Stale {
			fmt.Fprintf(sb, "  %-10s %s: last modified %s ago\n", w.palette.warn(LabelStale), d.Path, days(d.AgeDays))
		}
		if w.verbose {
			fmt.Fprintf(sb, "             modified %s\n", d.ModTime.Format("2006-01-02 15:04:05 MST"))
		}
	}

	s := health.Summary
	fmt.Fprintf(sb, "\n  Summary: %d critical, %d large, %d stale, %d missing\n\n",
		s.CriticalCount, s.LargeCount, s.StaleCount, len(health.Problems()))
}

// tierLabel returns the colored label of a tier.
func (w *SimpleWriter) tierLabel(t model.Tier) string {
	switch t {
	case model.TierCritical:
		return w.palette.alert(LabelCritical)
	case model.TierLarge:
		return w.palette.warn(LabelLarge)
	default:
		return w.palette.ok(LabelOK)
	}
}

// writeFindings writes one line per finding, ALERT before WARN.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, title string, findings []model.Finding, empty string) {
	if len(findings) == 0 && !w.showEmpty {
		return
	}

	w.writeSection(sb, title)

	if len(findings) == 0 {
		fmt.Fprintf(sb, "  %s\n\n", empty)
		return
	}

	for _, sev := range []model.Severity{model.SeverityAlert, model.SeverityWarn} {
		for _, f := range findings {
			if f.Severity != sev {
				continue
			}
			label := "[" + f.Severity.String() + "]"
			if sev == model.SeverityAlert {
				label = w.palette.alert(label)
			} else {
				label = w.palette.warn(label)
			}
			fmt.Fprintf(sb, "  %-10s %s (%s): %s\n", label, f.Title, f.Rule, strings.Join(f.Paths, ", "))
			if w.verbose && f.Sample != "" {
				fmt.Fprintf(sb, "             sample: %s\n", f.Sample)
			}
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the summarization recommendation when needed.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, report *model.Report) {
	if !report.NeedsSummarization() {
		return
	}
	s := report.Health.Summary
	fmt.Fprintf(sb, "%s %d document(s) exceed the size thresholds. Run `dochealth summarize` for condensing guidelines.\n",
		w.palette.alert("Recommendation:"), s.CriticalCount+s.LargeCount)
}

// Render formats report as plain text with default options.
func Render(report *model.Report) string {
	return NewSimpleWriter(io.Discard).Render(report)
}

// upper upper-cases section titles.
var upper = cases.Upper(language.English)

// days formats a day count.
func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// palette wraps fatih/color printers.
type palette struct {
	alert func(a ...any) string
	warn  func(a ...any) string
	ok    func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		alert: mk(color.FgRed, color.Bold),
		warn:  mk(color.FgYellow),
		ok:    mk(color.FgGreen),
	}
}
