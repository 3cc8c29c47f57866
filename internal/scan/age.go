package scan

import (
	"context"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// AgeSource resolves when a watched document last changed.
type AgeSource interface {
	// LastModified returns the last change time of the file named name
	// (slash separated, relative to the repository root). info is the
	// result of stat and is always available as a fallback.
	LastModified(ctx context.Context, name string, info fs.FileInfo) time.Time
}

// ModTimeSource uses the filesystem modification time.
type ModTimeSource struct{}

// LastModified returns info.ModTime().
func (ModTimeSource) LastModified(_ context.Context, _ string, info fs.FileInfo) time.Time {
	return info.ModTime()
}

// commandRunner runs a command in dir and returns its stdout.
type commandRunner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

// execRunner runs a real process.
func execRunner(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// GitSource uses the commit time of the last commit touching a file.
// Checkouts reset mtimes, commit times survive them.
//
// When git is not installed, the root is not a work tree, or the file has
// no history yet, the filesystem modification time is used instead.
type GitSource struct {
	dir string
	run commandRunner
}

// NewGitSource creates a GitSource for the work tree at dir.
func NewGitSource(dir string) *GitSource {
	return &GitSource{dir: dir, run: execRunner}
}

// LastModified runs `git log -1 --format=%ct -- name`.
func (g *GitSource) LastModified(ctx context.Context, name string, info fs.FileInfo) time.Time {
	out, err := g.run(ctx, g.dir, "git", "log", "-1", "--format=%ct", "--", name)
	if err != nil {
		return info.ModTime()
	}
	s := strings.TrimSpace(string(out))
	if s == "" {
		// Untracked or never committed
		return info.ModTime()
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return info.ModTime()
	}
	return time.Unix(secs, 0)
}

// ageDays returns floor((now - modified) / 24h), clamped at zero for
// timestamps in the future.
func ageDays(now, modified time.Time) int {
	d := now.Sub(modified)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
