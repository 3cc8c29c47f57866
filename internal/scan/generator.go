package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/lifeform/dochealth/internal/model"
)

// Generator runs scans over the documents of one repository.
//
// Design decision: the clock and the age source are injected so that ages
// are reproducible in tests and so that git history can replace raw mtimes
// without touching the scan logic.
type Generator struct {
	// fsys is the repository root.
	fsys fs.FS

	// now returns the current time used for age computation.
	now func() time.Time

	// ages resolves the last modification time of a document.
	ages AgeSource

	// logger receives debug diagnostics only; findings go into the report.
	logger *slog.Logger
}

// Option is a function that configures a Generator.
type Option func(*Generator)

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithAgeSource sets how document age is computed.
func WithAgeSource(src AgeSource) Option {
	return func(g *Generator) {
		g.ages = src
	}
}

// WithLogger sets a custom logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator reading documents from fsys.
// Defaults are the wall clock, filesystem mtimes and slog.Default().
func New(fsys fs.FS, opts ...Option) *Generator {
	g := &Generator{fsys: fsys}
	for _, opt := range opts {
		opt(g)
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.ages == nil {
		g.ages = ModTimeSource{}
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// document is a watched file loaded for a scan.
type document struct {
	// path is the watched path as configured.
	path string

	// name is the fs.FS name derived from path.
	name string
	info fs.FileInfo
	data []byte
}

// normalize turns a watched path into an fs.FS name.
func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// load stats and reads one watched path.
// Paths outside the root are reported as unreadable.
func (g *Generator) load(watched string) (*document, *model.FileProblem) {
	name := normalize(watched)
	if !fs.ValidPath(name) {
		return nil, &model.FileProblem{
			Kind:   model.ProblemUnreadableFile,
			Reason: "path is outside the repository root",
		}
	}

	info, err := fs.Stat(g.fsys, name)
	if err != nil {
		return nil, problemFor(err)
	}
	if info.IsDir() {
		return nil, &model.FileProblem{
			Kind:   model.ProblemUnreadableFile,
			Reason: "is a directory",
		}
	}

	data, err := fs.ReadFile(g.fsys, name)
	if err != nil {
		// The file may have disappeared between stat and read.
		return nil, problemFor(err)
	}

	return &document{path: watched, name: name, info: info, data: data}, nil
}

// loadAll reads every distinct watched path that can be read, in watch order.
// Paths listed more than once are loaded once so they cannot match themselves.
func (g *Generator) loadAll(ctx context.Context, watched []string) ([]*document, error) {
	seen := make(map[string]bool, len(watched))
	docs := make([]*document, 0, len(watched))
	for _, p := range watched {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		if seen[normalize(p)] {
			continue
		}
		seen[normalize(p)] = true

		doc, problem := g.load(p)
		if problem != nil {
			g.logger.Debug("skipping watched path",
				"path", p,
				"problem", problem.Kind.String(),
				"reason", problem.Reason,
			)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// problemFor maps a filesystem error to a FileProblem.
func problemFor(err error) *model.FileProblem {
	if errors.Is(err, fs.ErrNotExist) {
		return &model.FileProblem{Kind: model.ProblemMissingFile, Reason: "file not found"}
	}
	return &model.FileProblem{
		Kind:   model.ProblemUnreadableFile,
		Reason: fmt.Sprintf("cannot read: %v", unwrapPathError(err)),
	}
}

// unwrapPathError drops the op and path from *fs.PathError so the reason
// does not repeat the path already printed next to it.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
