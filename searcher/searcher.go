package searcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Files read in every directory for ignore patterns.
var ignoreFiles = []string{".gitignore", ".ignore"}

// Logger receives diagnostics about skipped entries.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// Options configures a Searcher.
type Options struct {
	// Hidden includes files and directories whose names start with ".".
	// The .git directory is always skipped.
	Hidden bool
	// NoIgnore disables .gitignore, .ignore and .git/info/exclude.
	NoIgnore bool
	// Exclude holds extra patterns in gitignore syntax, applied under
	// every root as if listed in an ignore file in the root directory
	// (the containing directory for a file root).
	Exclude []string
	Log     Logger
}

// Searcher finds the files which should be scanned for reminders.
type Searcher struct {
	opts    Options
	exclude []string
	log     Logger
}

func New(opts Options) *Searcher {
	s := &Searcher{opts: opts, log: opts.Log}
	if s.log == nil {
		s.log = nopLogger{}
	}
	for _, p := range opts.Exclude {
		if p = strings.TrimSpace(p); p != "" {
			s.exclude = append(s.exclude, p)
		}
	}
	return s
}

// Search walks the roots in order and sends every regular file to the
// returned channel, in lexical order within each root. A file reachable
// from several roots, or through symlinks, is sent once. Unreadable
// entries are skipped.
//
// The channel is closed when all roots are walked or ctx is done.
func (s *Searcher) Search(ctx context.Context, roots []string) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		defer close(out)

		seen := make(map[string]struct{})
		for _, root := range roots {
			if err := s.search(ctx, root, seen, out); err != nil {
				s.log.Debugf("search %s: %v", root, err)
				return
			}
		}
	}()

	return out
}

func (s *Searcher) search(ctx context.Context, root string, seen map[string]struct{}, out chan<- Result) error {
	root = filepath.Clean(root)
	prefix, patterns := s.prepare(root)

	// WalkDir does not descend into a symlinked root unless it ends
	// with a separator.
	if fi, err := os.Lstat(root); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		if st, err := os.Stat(root); err == nil && st.IsDir() {
			root += string(filepath.Separator)
		}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Debugf("skipping %s: %v", path, err)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		parts := append(cloneParts(prefix), splitRel(root, path)...)

		if d.IsDir() {
			if path != root {
				if s.skipName(d.Name()) || d.Name() == ".git" {
					return filepath.SkipDir
				}
				if gitignore.NewMatcher(patterns).Match(parts, true) {
					return filepath.SkipDir
				}
			}
			if !s.opts.NoIgnore {
				patterns = append(patterns, s.readIgnoreFiles(path, parts)...)
			}
			return nil
		}

		// An explicitly given file is scanned even if hidden or ignored.
		if path != root {
			if s.skipName(d.Name()) {
				return nil
			}
			if gitignore.NewMatcher(patterns).Match(parts, false) {
				return nil
			}
		}

		if !s.isRegular(path, d) {
			return nil
		}

		res := Result{Path: path, Canonical: s.canonical(path)}
		if res.Canonical != "" {
			if _, ok := seen[res.Canonical]; ok {
				return nil
			}
			seen[res.Canonical] = struct{}{}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- res:
			return nil
		}
	})
}

func (s *Searcher) skipName(name string) bool {
	return !s.opts.Hidden && strings.HasPrefix(name, ".")
}

// isRegular reports whether path is a regular file, following symlinks.
func (s *Searcher) isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	if err != nil {
		s.log.Debugf("skipping %s: %v", path, err)
		return false
	}
	return fi.Mode().IsRegular()
}

func (s *Searcher) canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err == nil {
		abs, err = filepath.EvalSymlinks(abs)
	}
	if err != nil {
		s.log.Debugf("canonicalize %s: %v", path, err)
		return ""
	}
	return abs
}

// prepare returns the path components of root relative to the directory
// ignore patterns are matched against, and the patterns which already
// apply at root. Patterns are matched relative to the enclosing git
// repository if there is one, otherwise relative to root, and the ignore
// files of root's ancestors inside the repository are honored.
func (s *Searcher) prepare(root string) (prefix []string, patterns []gitignore.Pattern) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, s.excludePatterns(nil)
	}

	isDir := true
	if fi, err := os.Stat(abs); err == nil && !fi.IsDir() {
		isDir = false
	}
	dir := abs
	if !isDir {
		dir = filepath.Dir(abs)
	}

	base := repoTop(dir)
	if base == "" {
		base = dir
	}
	prefix = splitRel(base, abs)
	patterns = s.excludePatterns(splitRel(base, dir))

	if s.opts.NoIgnore {
		return prefix, patterns
	}

	patterns = append(patterns, s.readPatterns(filepath.Join(base, ".git", "info", "exclude"), nil)...)

	// Directories from base down to dir. A root directory's own ignore
	// files are read by the walk.
	var dirs []string
	for d := dir; ; d = filepath.Dir(d) {
		dirs = append(dirs, d)
		if d == base || d == filepath.Dir(d) {
			break
		}
	}
	slices.Reverse(dirs)
	if isDir {
		dirs = dirs[:len(dirs)-1]
	}
	for _, d := range dirs {
		patterns = append(patterns, s.readIgnoreFiles(d, splitRel(base, d))...)
	}

	return prefix, patterns
}

// excludePatterns parses the exclude patterns relative to domain.
func (s *Searcher) excludePatterns(domain []string) []gitignore.Pattern {
	ps := make([]gitignore.Pattern, 0, len(s.exclude))
	for _, p := range s.exclude {
		ps = append(ps, gitignore.ParsePattern(p, cloneParts(domain)))
	}
	return ps
}

func (s *Searcher) readIgnoreFiles(dir string, domain []string) []gitignore.Pattern {
	var ps []gitignore.Pattern
	for _, name := range ignoreFiles {
		ps = append(ps, s.readPatterns(filepath.Join(dir, name), domain)...)
	}
	return ps
}

func (s *Searcher) readPatterns(path string, domain []string) []gitignore.Pattern {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Debugf("reading %s: %v", path, err)
		}
		return nil
	}

	var ps []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, cloneParts(domain)))
	}
	return ps
}

// repoTop returns the closest directory at or above dir which holds a
// .git entry, or "" if there is none.
func repoTop(dir string) string {
	for {
		if _, err := os.Lstat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// splitRel returns the components of path relative to base.
func splitRel(base, path string) []string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}

func cloneParts(in []string) []string {
	out := make([]string, len(in), len(in)+4)
	copy(out, in)
	return out
}
