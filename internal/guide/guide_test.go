package guide

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

// TestLoad tests loading the guide.
func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"docs/SUMMARIZATION_GUIDE.md": {Data: []byte(
			"# Summarization Guide\n\nIntro\n\n## When to condense\n\n```sh\n# not a heading\n```\n\n### Archive\n#nospace\n",
		)},
		"docs/dir/placeholder.md": {Data: []byte("x")},
	}

	t.Run("collects headings outside code fences", func(t *testing.T) {
		t.Parallel()

		s, err := Load(fsys, "docs/SUMMARIZATION_GUIDE.md", Guidelines(5000, 10000, 30))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"Summarization Guide", "  When to condense", "    Archive"}
		if len(s.Headings) != len(want) {
			t.Fatalf("expected %v, got %v", want, s.Headings)
		}
		for i := range want {
			if s.Headings[i] != want[i] {
				t.Errorf("heading %d: expected %q, got %q", i, want[i], s.Headings[i])
			}
		}
	})

	t.Run("missing guide", func(t *testing.T) {
		t.Parallel()

		_, err := Load(fsys, "docs/NOPE.md", nil)
		if !errors.Is(err, ErrMissingGuide) {
			t.Errorf("expected ErrMissingGuide, got %v", err)
		}
	})

	t.Run("directory is treated as missing", func(t *testing.T) {
		t.Parallel()

		_, err := Load(fsys, "docs/dir", nil)
		if !errors.Is(err, ErrMissingGuide) {
			t.Errorf("expected ErrMissingGuide, got %v", err)
		}
	})

	t.Run("path outside root is treated as missing", func(t *testing.T) {
		t.Parallel()

		_, err := Load(fsys, "../GUIDE.md", nil)
		if !errors.Is(err, ErrMissingGuide) {
			t.Errorf("expected ErrMissingGuide, got %v", err)
		}
	})
}

// TestGuidelines tests that thresholds appear in the guidelines.
func TestGuidelines(t *testing.T) {
	t.Parallel()

	g := Guidelines(5000, 10000, 30)
	joined := strings.Join(g, "\n")
	for _, want := range []string{"5.0 kB", "10 kB", "30 days"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in guidelines:\n%s", want, joined)
		}
	}
}

// TestSummaryWrite tests the printed summary.
func TestSummaryWrite(t *testing.T) {
	t.Parallel()

	s := &Summary{
		Path:       "docs/GUIDE.md",
		Guidelines: []string{"first", "second"},
		Headings:   []string{"Top", "  Sub"},
	}

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"1. first\n", "2. second\n", "Sections in docs/GUIDE.md:", "  -   Sub\n"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}
