// Package scan walks a repository tree and produces the deterministic,
// capped list of visible file paths that feeds evidence classification.
package scan

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"onboardbuilder/internal/ignore"
	"onboardbuilder/internal/logfields"
)

// Repo performs a breadth-first scan of root, respecting the ignore
// matcher and stopping at maxFiles. Directory entries are visited in
// name order so the result is independent of filesystem enumeration
// order. Returns all visible relative paths plus the Python subset.
//
// Traversal errors skip the affected subtree and continue; an unreadable
// root yields empty results rather than an error.
func Repo(root string, matcher *ignore.Matcher, maxFiles int) (allFiles, pyFiles []string) {
	queue := []string{""}

	for len(queue) > 0 && len(allFiles) < maxFiles {
		relDir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(relDir)))
		if err != nil {
			slog.Warn("Error scanning directory", logfields.Path(relDir), logfields.Error(err))
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, entry := range entries {
			if len(allFiles) >= maxFiles {
				break
			}

			rel := entry.Name()
			if relDir != "" {
				rel = relDir + "/" + entry.Name()
			}

			isDir := entry.IsDir()
			if !matcher.Visible(rel, isDir) {
				continue
			}

			if isDir {
				queue = append(queue, rel)
				continue
			}
			if !entry.Type().IsRegular() {
				continue
			}

			allFiles = append(allFiles, rel)
			if strings.HasSuffix(rel, ".py") {
				pyFiles = append(pyFiles, rel)
			}
		}
	}

	return allFiles, pyFiles
}

// Well-known filenames looked up directly at the repository root.
var targetedRootFiles = []string{
	"pyproject.toml",
	"tox.ini",
	"noxfile.py",
	"setup.py",
	"setup.cfg",
	"Makefile",
	".pre-commit-config.yaml",
}

// Glob patterns for targeted discovery, relative to the root.
var targetedGlobs = []string{
	"requirements*.txt",
	".github/workflows/*.yml",
}

// Targeted finds well-known manifests and workflow files by direct lookup,
// so they surface even when the repository's own ignore rules would hide
// them. The safety blocklist still applies unconditionally.
func Targeted(root string, matcher *ignore.Matcher) []string {
	var found []string

	for _, name := range targetedRootFiles {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			if !matcher.SafetyIgnored(name, false) {
				found = append(found, name)
			}
		}
	}

	for _, pattern := range targetedGlobs {
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
		if err != nil {
			continue
		}
		for _, p := range matches {
			info, err := os.Stat(p)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if !matcher.SafetyIgnored(rel, false) {
				found = append(found, rel)
			}
		}
	}

	return found
}

// Merge combines scan results into one sorted, de-duplicated path list.
// Sorting here makes downstream ranking traversal-order-independent.
func Merge(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, p := range list {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
