package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lifeform/dochealth/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for pull request comments and wiki pages.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// title capitalizes tier names for table cells.
var title = cases.Title(language.English)

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)

	if report.Performed(model.ScanHealth) && report.Health != nil {
		w.writeHealth(md, report)
	}
	if report.Performed(model.ScanDuplication) {
		w.writeFindings(md, "Duplication", report.Duplication, "No duplicated topics found.")
	}
	if report.Performed(model.ScanSecurity) {
		w.writeFindings(md, "Security", report.Security, "No sensitive patterns found.")
	}

	w.writeFooter(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Documentation Health Report")
	md.PlainText("")

	status := "✅ Complete"
	if report.TimedOut {
		status = "⚠️ Cancelled (partial results)"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root", "`" + report.Root + "`"},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Run ID", "`" + report.RunID + "`"},
			{"Scans", strings.Join(report.PerformedScans, ", ")},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeHealth writes the per-document table, the tier chart and alerts.
func (w *MarkdownWriter) writeHealth(md *markdown.Markdown, report *model.Report) {
	health := report.Health

	md.H2("Health")
	md.PlainText("")

	docs := health.Documents()
	if len(docs) > 0 {
		rows := make([][]string, len(docs))
		for i, d := range docs {
			stale := "-"
			if d.Stale {
				stale = "⚠️ stale"
			}
			rows[i] = []string{
				"`" + d.Path + "`",
				title.String(d.TierText),
				humanize.Bytes(uint64(max(d.SizeBytes, 0))), //nolint:gosec // clamped above zero
				strconv.Itoa(d.LineCount),
				humanize.RelTime(d.ModTime, report.GeneratedAt, "ago", "from now"),
				stale,
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Document", "Tier", "Size", "Lines", "Modified", "Stale"},
			Rows:   rows,
		})
		md.PlainText("")
		w.writePieChart(md, docs)
	}

	if problems := health.Problems(); len(problems) > 0 {
		paths := make([]string, len(problems))
		for i, p := range problems {
			paths[i] = "`" + p.Path + "` (" + p.Problem.Kind.String() + ")"
		}
		md.Warningf("%d watched document(s) could not be scanned.", len(problems))
		md.PlainText("")
		md.BulletList(paths...)
		md.PlainText("")
	}

	s := health.Summary
	switch {
	case s.CriticalCount > 0:
		md.Cautionf("%d critical document(s) exceed the critical size threshold.", s.CriticalCount)
	case s.LargeCount > 0:
		md.Importantf("%d large document(s) exceed the large size threshold.", s.LargeCount)
	case s.StaleCount > 0:
		md.Note(strconv.Itoa(s.StaleCount) + " document(s) are stale.")
	default:
		md.Tip("All watched documents are within limits.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart for the tier distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, docs []model.DocumentRecord) {
	counts := make(map[model.Tier]uint64)
	for _, d := range docs {
		counts[d.Tier]++
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Document Size Tiers"),
		piechart.WithShowData(true),
	)
	for _, t := range []model.Tier{model.TierCritical, model.TierLarge, model.TierNormal} {
		if counts[t] > 0 {
			chart.LabelAndIntValue(title.String(t.String()), counts[t])
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFindings writes a table of findings for one scan.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, section string, findings []model.Finding, empty string) {
	md.H2(section)
	md.PlainText("")

	if len(findings) == 0 {
		md.PlainText(empty)
		md.PlainText("")
		return
	}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		sample := f.Sample
		if sample == "" {
			sample = "-"
		} else {
			sample = "`" + truncateString(sample, 50) + "`"
		}
		rows[i] = []string{
			severityBadge(f.Severity),
			f.Title,
			"`" + f.Rule + "`",
			strings.Join(f.Paths, "<br>"),
			sample,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Finding", "Rule", "Documents", "Sample"},
		Rows:   rows,
	})
	md.PlainText("")
}

// severityBadge returns the table cell for a severity.
func severityBadge(s model.Severity) string {
	if s == model.SeverityAlert {
		return "🔴 " + s.String()
	}
	return "🟡 " + s.String()
}

// writeFooter writes the recommendation and the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, report *model.Report) {
	if report.NeedsSummarization() {
		s := report.Health.Summary
		md.Importantf("Recommendation: %d document(s) exceed the size thresholds. Run `dochealth summarize` for condensing guidelines.",
			s.CriticalCount+s.LargeCount)
		md.PlainText("")
	}
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by dochealth*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
