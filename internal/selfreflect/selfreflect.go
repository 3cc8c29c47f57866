// Package selfreflect implements `dochealth self-reflect`: pick one component
// directory at random, list its files and report which of them are
// referenced from elsewhere in the repository.
package selfreflect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"
)

// ErrNoComponents is returned when the components directory is missing or
// has no subdirectories.
var ErrNoComponents = errors.New("no component directories found")

// maxScanBytes bounds the size of a file searched for references.
const maxScanBytes = 1 << 20

// minStemLen is the shortest file stem matched on its own. Shorter stems
// such as "a" or "io" match nearly everything.
const minStemLen = 4

// Picker selects an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

// FileReference is one file of the chosen component.
type FileReference struct {
	// Path is slash separated and relative to the repository root.
	Path string

	// ReferencedBy lists files mentioning Path's base name or stem.
	ReferencedBy []string
}

// Referenced reports whether any other file mentions this one.
func (f FileReference) Referenced() bool {
	return len(f.ReferencedBy) > 0
}

// Reflection is the result of one self-reflect run.
type Reflection struct {
	// Component is the chosen directory, relative to the root.
	Component string

	// Candidates is the number of component directories available.
	Candidates int

	// Files are the component's files in lexical order.
	Files []FileReference
}

// Reflector walks a repository tree.
type Reflector struct {
	fsys   fs.FS
	dir    string
	pick   Picker
	logger *slog.Logger
}

// New creates a Reflector over fsys choosing among the subdirectories of dir.
func New(fsys fs.FS, dir string, pick Picker, logger *slog.Logger) *Reflector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reflector{fsys: fsys, dir: path.Clean(dir), pick: pick, logger: logger}
}

// Components lists the component directories in lexical order.
func (r *Reflector) Components() ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoComponents, r.dir)
		}
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			out = append(out, path.Join(r.dir, e.Name()))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoComponents, r.dir)
	}
	return out, nil
}

// Reflect picks a component and resolves references to each of its files.
func (r *Reflector) Reflect(ctx context.Context) (*Reflection, error) {
	components, err := r.Components()
	if err != nil {
		return nil, err
	}

	chosen := components[r.pick.IntN(len(components))]
	r.logger.Debug("component selected", "component", chosen, "candidates", len(components))

	files, err := r.files(chosen)
	if err != nil {
		return nil, err
	}

	corpus, err := r.corpus(ctx)
	if err != nil {
		return nil, err
	}

	refl := &Reflection{
		Component:  chosen,
		Candidates: len(components),
		Files:      make([]FileReference, 0, len(files)),
	}
	for _, f := range files {
		refl.Files = append(refl.Files, FileReference{
			Path:         f,
			ReferencedBy: referencesTo(f, corpus),
		})
	}
	return refl, nil
}

// files lists regular files under dir.
func (r *Reflector) files(dir string) ([]string, error) {
	var out []string
	err := fs.WalkDir(r.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return r.skip(p, d, err)
		}
		if d.Type().IsRegular() {
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

// skip logs a walk error and moves on: an unreadable directory is left
// out of the walk, an unreadable entry is ignored.
func (r *Reflector) skip(p string, d fs.DirEntry, err error) error {
	r.logger.Debug("skipping unreadable path", "path", p, "error", err)
	if d != nil && d.IsDir() {
		return fs.SkipDir
	}
	return nil
}

// source is a searchable file of the tree.
type source struct {
	path string
	data []byte
}

// corpus reads every file of the tree that may hold a reference.
// Hidden directories (.git, .cache, ...) and large files are skipped.
func (r *Reflector) corpus(ctx context.Context) ([]source, error) {
	var out []source
	err := fs.WalkDir(r.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return r.skip(p, d, err)
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > maxScanBytes {
			return nil //nolint:nilerr // unreadable or oversized files hold no references we can use
		}
		data, err := fs.ReadFile(r.fsys, p)
		if err != nil {
			r.logger.Debug("skipping unreadable file", "path", p, "error", err)
			return nil
		}
		out = append(out, source{path: p, data: data})
		return nil
	})
	return out, err
}

// referencesTo returns the paths in corpus that mention target by base
// name, or by stem when the stem is long enough to be distinctive.
func referencesTo(target string, corpus []source) []string {
	base := path.Base(target)
	stem := strings.TrimSuffix(base, path.Ext(base))

	needles := [][]byte{[]byte(base)}
	if stem != base && len(stem) >= minStemLen {
		needles = append(needles, []byte(stem))
	}

	var out []string
	for _, s := range corpus {
		if s.path == target {
			continue
		}
		for _, n := range needles {
			if bytes.Contains(s.data, n) {
				out = append(out, s.path)
				break
			}
		}
	}
	return out
}

// Write prints the reflection as plain text.
func (refl *Reflection) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Self-reflection: %s (1 of %d components)\n\n", refl.Component, refl.Candidates)
	if len(refl.Files) == 0 {
		b.WriteString("  (no files)\n")
	}
	unused := 0
	for _, f := range refl.Files {
		if f.Referenced() {
			fmt.Fprintf(&b, "  [USED]   %s <- %s\n", f.Path, strings.Join(f.ReferencedBy, ", "))
			continue
		}
		unused++
		fmt.Fprintf(&b, "  [UNUSED] %s\n", f.Path)
	}
	fmt.Fprintf(&b, "\n%d of %d file(s) are not referenced elsewhere.\n", unused, len(refl.Files))
	_, err := io.WriteString(w, b.String())
	return err
}
