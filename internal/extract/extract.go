// Package extract derives runnable commands and environment metadata from
// well-known repository files: Makefiles, tox.ini, shell scripts, GitHub
// workflow files, package.json, and pyproject.toml.
//
// Every extractor is failure tolerant. An unreadable, oversized, or
// malformed input means the signal is absent, never an error: the analyzer
// must produce a document for any tree it can walk.
package extract

import (
	"log/slog"
	"os"
	"path/filepath"

	"onboardbuilder/internal/logfields"
)

// readCapped returns the file content, or false when the file is missing,
// not regular, larger than maxBytes, or unreadable.
func readCapped(path string, maxBytes int64) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	if info.Size() > maxBytes {
		slog.Debug("skipping oversized file", logfields.File(path), slog.Int64("size", info.Size()))
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("failed to read file", logfields.File(path), logfields.Error(err))
		return "", false
	}
	return string(data), true
}

// normRel converts a possibly backslashed path to a clean repo-relative
// forward-slash form.
func normRel(p string) string {
	p = filepath.ToSlash(p)
	for len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	return p
}

func baseName(p string) string {
	return filepath.Base(filepath.FromSlash(p))
}
