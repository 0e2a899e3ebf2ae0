package extract

import (
	"log/slog"
	"path/filepath"
	"strings"

	"onboardbuilder/internal/evidence"
	"onboardbuilder/internal/logfields"
)

// ToxCommands extracts the tox entrypoints from tox.ini at rel. The `tox`
// test command is always present; a flake8 lint environment is reported
// only when the config mentions it.
func ToxCommands(root, rel string, maxBytes int64) map[string][]evidence.CommandInfo {
	commands := map[string][]evidence.CommandInfo{"test": {}, "lint": {}}

	content, ok := readCapped(filepath.Join(root, filepath.FromSlash(rel)), maxBytes)
	if !ok {
		slog.Warn("failed to read tox.ini", logfields.File(rel))
		return commands
	}

	commands["test"] = append(commands["test"], evidence.CommandInfo{
		Command:     "tox",
		Source:      rel,
		Description: "Run tests via tox",
	})

	if strings.Contains(content, "flake8") {
		commands["lint"] = append(commands["lint"], evidence.CommandInfo{
			Command:     "tox -e flake8",
			Source:      rel,
			Description: "Run flake8 linting via tox",
		})
	}
	return commands
}
