// Package ignore decides path visibility for the repository scanner.
//
// Two layers apply, in fixed precedence:
//
//  1. the safety blocklist (VCS metadata, dependency caches, virtual envs,
//     build output, the tool's own test fixtures) always wins and cannot
//     be negated by repository configuration;
//  2. repo-local .gitignore rules from the repository root only, compiled
//     once with real gitignore wildcard semantics.
//
// Matching is a pure function of (path, compiled rules).
package ignore

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"onboardbuilder/internal/logfields"
)

// Matcher matches repository-relative paths against the safety blocklist
// and the repo-local gitignore rules. Build it once per run via NewMatcher.
type Matcher struct {
	safety []string
	repo   gitignore.Matcher
}

// NewMatcher compiles a matcher for the repository at root.
// An unreadable or malformed .gitignore degrades to "no repo-local rules";
// it never fails the run.
func NewMatcher(root string, safetyIgnores []string) *Matcher {
	m := &Matcher{
		safety: make([]string, 0, len(safetyIgnores)),
	}
	for _, p := range safetyIgnores {
		m.safety = append(m.safety, strings.TrimSuffix(p, "/"))
	}

	patterns := readGitignorePatterns(filepath.Join(root, ".gitignore"))
	if len(patterns) > 0 {
		m.repo = gitignore.NewMatcher(patterns)
	}
	return m
}

// readGitignorePatterns reads and compiles the root-level .gitignore.
// Only the repository's own file is consulted; no global or user-level
// sources, so results are reproducible across machines.
func readGitignorePatterns(path string) []gitignore.Pattern {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read .gitignore", logfields.Path(path), logfields.Error(err))
		}
		return nil
	}
	defer f.Close()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if err := scanner.Err(); err != nil {
		slog.Warn("Failed to scan .gitignore", logfields.Path(path), logfields.Error(err))
		return nil
	}
	return patterns
}

// Visible reports whether the relative slash-normalized path is evidence
// the scanner may surface.
func (m *Matcher) Visible(rel string, isDir bool) bool {
	return !m.shouldIgnore(rel, isDir)
}

// ShouldDescend reports whether the scanner may enter a directory.
// Invariant: ShouldDescend(p) == Visible(p, true).
func (m *Matcher) ShouldDescend(rel string) bool {
	return m.Visible(rel, true)
}

// SafetyIgnored applies only the non-negotiable blocklist. Targeted
// discovery uses this directly: well-known filenames may bypass the
// repo-local rules but never the safety layer.
func (m *Matcher) SafetyIgnored(rel string, isDir bool) bool {
	p := normalize(rel)
	if isDir && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	for _, si := range m.safety {
		if strings.Contains("/"+p, "/"+si+"/") {
			return true
		}
		if strings.HasPrefix(p, si+"/") || p == si {
			return true
		}
	}
	return false
}

func (m *Matcher) shouldIgnore(rel string, isDir bool) bool {
	p := normalize(rel)
	if p == "" || p == "." {
		return false
	}

	if m.SafetyIgnored(p, isDir) {
		return true
	}

	if m.repo != nil {
		return m.repo.Match(strings.Split(p, "/"), isDir)
	}
	return false
}

func normalize(rel string) string {
	p := strings.ReplaceAll(rel, "\\", "/")
	return strings.TrimPrefix(p, "/")
}
