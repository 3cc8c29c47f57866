// Package report renders a model.Report for people and for tools.
//
// Writers:
//   - SimpleWriter: the plain-text report printed by default
//   - MarkdownWriter: the same report as GitHub-flavored Markdown
//   - JSONWriter / FullJSONWriter: machine-readable output for CI checks
//   - SummaryWriter: a single tally line, printed when the full report goes to a file
//
// Every writer takes the finished report; none of them read files or
// re-run scans, so rendering the same report twice gives the same bytes.
package report
