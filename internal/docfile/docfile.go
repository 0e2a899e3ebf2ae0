// Package docfile reads and writes the generated onboarding document.
// Every operation resolves its target inside the repository root and
// refuses paths that escape it.
package docfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"onboardbuilder/internal/errors"
	"onboardbuilder/internal/logfields"
)

// DefaultName is the conventional document filename at the repo root.
const DefaultName = "ONBOARDING.md"

// Mode selects the write behavior.
type Mode string

const (
	// ModeOverwrite replaces the file, optionally keeping a backup.
	ModeOverwrite Mode = "overwrite"
	// ModeAppend adds content after the existing content.
	ModeAppend Mode = "append"
	// ModeCreate writes only when the file does not exist yet.
	ModeCreate Mode = "create"
)

// ParseMode validates a mode string from user input.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOverwrite, ModeAppend, ModeCreate:
		return Mode(s), nil
	}
	return "", errors.ValidationError(fmt.Sprintf("invalid write mode %q, want overwrite, append or create", s))
}

// Document is the result of reading the onboarding file.
type Document struct {
	Exists    bool   `json:"exists"`
	Path      string `json:"path"`
	Content   string `json:"content,omitempty"`
	SizeBytes int    `json:"sizeBytes,omitempty"`
}

// WriteResult reports what a write did.
type WriteResult struct {
	Path         string `json:"path"`
	BytesWritten int    `json:"bytesWritten"`
	BackupPath   string `json:"backupPath,omitempty"`
}

// ResolveInsideRepo joins sub under repoRoot and guarantees the result
// stays inside it. Traversal via ".." or absolute sub-paths is refused.
func ResolveInsideRepo(repoRoot, sub string) (string, error) {
	root, err := filepath.Abs(repoRoot)
	if err != nil {
		return "", errors.Wrap(err, errors.CategorySandbox, errors.SeverityError, "cannot resolve repository root")
	}
	if resolved, evalErr := filepath.EvalSymlinks(root); evalErr == nil {
		root = resolved
	}

	target := filepath.Clean(filepath.Join(root, filepath.FromSlash(sub)))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.SandboxError(fmt.Sprintf("path %q escapes repository root", sub)).
			WithContext("root", repoRoot)
	}
	return target, nil
}

// Read returns the document at rel under repoRoot. Missing files and
// read failures both come back as Exists=false; reading never fails the
// caller.
func Read(repoRoot, rel string) Document {
	target, err := ResolveInsideRepo(repoRoot, rel)
	if err != nil {
		slog.Warn("onboarding read refused", logfields.Path(rel), logfields.Error(err))
		return Document{Exists: false, Path: rel}
	}

	data, err := os.ReadFile(target)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("onboarding read failed", logfields.Path(target), logfields.Error(err))
		}
		return Document{Exists: false, Path: target}
	}
	return Document{
		Exists:    true,
		Path:      target,
		Content:   string(data),
		SizeBytes: len(data),
	}
}

// Write stores content at rel under repoRoot according to mode.
//
// Create fails when the file exists. Overwrite with createBackup keeps a
// timestamped copy next to the original. Append joins with one blank
// line when the existing content lacks a trailing newline, otherwise
// with a single newline.
func Write(repoRoot, rel, content string, mode Mode, createBackup bool) (WriteResult, error) {
	target, err := ResolveInsideRepo(repoRoot, rel)
	if err != nil {
		return WriteResult{}, err
	}

	existing, statErr := os.Stat(target)
	exists := statErr == nil && existing.Mode().IsRegular()

	backupPath := ""
	if exists {
		if mode == ModeCreate {
			return WriteResult{}, errors.ValidationError(fmt.Sprintf("file %s already exists", rel))
		}
		if mode == ModeOverwrite && createBackup {
			backupPath = fmt.Sprintf("%s.bak.%d", target, time.Now().Unix())
			if err := copyFile(target, backupPath); err != nil {
				return WriteResult{}, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "cannot create backup")
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return WriteResult{}, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "cannot create parent directory")
	}

	final := content
	if mode == ModeAppend && exists {
		original, err := os.ReadFile(target)
		if err != nil {
			return WriteResult{}, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "cannot read existing file")
		}
		sep := "\n"
		if !strings.HasSuffix(string(original), "\n") {
			sep = "\n\n"
		}
		final = string(original) + sep + content
	}

	if err := os.WriteFile(target, []byte(final), 0o644); err != nil {
		return WriteResult{}, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "cannot write file")
	}

	slog.Info("onboarding written",
		logfields.Path(target),
		logfields.Count(len(final)),
	)
	return WriteResult{Path: target, BytesWritten: len(final), BackupPath: backupPath}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
