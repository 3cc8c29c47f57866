// Package guide prints the summarization guidance behind `dochealth summarize`.
package guide

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrMissingGuide is returned when the summarization guide does not exist.
var ErrMissingGuide = errors.New("summarization guide not found")

// Summary is what `summarize` prints.
type Summary struct {
	// Path is the guide path as configured.
	Path string

	// Guidelines are the fixed condensing rules.
	Guidelines []string

	// Headings are the guide's own section headings, in order.
	Headings []string
}

// Guidelines returns the fixed condensing rules for the given thresholds.
func Guidelines(largeBytes, criticalBytes int64, staleDays int) []string {
	return []string{
		fmt.Sprintf("Keep each document under %s; anything over %s must be condensed first.",
			humanize.Bytes(uint64(max(largeBytes, 0))), humanize.Bytes(uint64(max(criticalBytes, 0)))), //nolint:gosec // clamped above zero
		"Move history and resolved decisions into an archive document and link to it.",
		"Replace a section repeated in several documents with a link to the one canonical copy.",
		"Prefer short bullet lists over paragraphs; drop examples that restate the rule.",
		fmt.Sprintf("Review documents untouched for more than %d days and delete what is no longer true.", staleDays),
		"Never paste keys, tokens or credentialed URLs; reference the secret store instead.",
	}
}

// Load reads the guide at name from fsys and collects its headings.
// It returns ErrMissingGuide when the file does not exist or is a directory.
func Load(fsys fs.FS, name string, guidelines []string) (*Summary, error) {
	clean := path.Clean(filepath.ToSlash(name))
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("%w: %s", ErrMissingGuide, name)
	}

	data, err := fs.ReadFile(fsys, clean)
	if err != nil {
		var pe *fs.PathError
		if errors.Is(err, fs.ErrNotExist) || (errors.As(err, &pe) && isDir(fsys, clean)) {
			return nil, fmt.Errorf("%w: %s", ErrMissingGuide, name)
		}
		return nil, fmt.Errorf("failed to read guide %s: %w", name, err)
	}

	return &Summary{
		Path:       name,
		Guidelines: guidelines,
		Headings:   headings(data),
	}, nil
}

func isDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

// headings returns the ATX headings of a Markdown document, skipping
// fenced code blocks.
func headings(data []byte) []string {
	var (
		out   []string
		fence bool
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			fence = !fence
			continue
		}
		if fence || !strings.HasPrefix(line, "#") {
			continue
		}
		level := len(line) - len(strings.TrimLeft(line, "#"))
		text := strings.TrimSpace(line[level:])
		if level > 6 || text == "" || line[level] != ' ' {
			continue
		}
		out = append(out, strings.Repeat("  ", level-1)+text)
	}
	return out
}

// Write prints the summary as plain text.
func (s *Summary) Write(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Summarization guidelines\n")
	b.WriteString(strings.Repeat("=", 24))
	b.WriteString("\n\n")
	for i, g := range s.Guidelines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, g)
	}
	if len(s.Headings) > 0 {
		fmt.Fprintf(&b, "\nSections in %s:\n", s.Path)
		for _, h := range s.Headings {
			fmt.Fprintf(&b, "  - %s\n", h)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
