package extract

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"onboardbuilder/internal/evidence"
	"onboardbuilder/internal/logfields"
)

// makefileTargetRe matches a rule line: one or more targets before a colon,
// at the start of the line. Indented recipe lines never match.
var makefileTargetRe = regexp.MustCompile(`^([a-zA-Z0-9_-]+(?:\s+[a-zA-Z0-9_-]+)*):`)

// makefileTargetGroups maps well-known target names to command groups.
var makefileTargetGroups = map[string]string{
	"test":    "test",
	"lint":    "lint",
	"format":  "format",
	"dev":     "dev",
	"install": "install",
	"run":     "start",
	"start":   "start",
	"check":   "test",
}

func fallbackMakeDescription(target string) string {
	switch target {
	case "install":
		return "Install dependencies via Makefile target."
	case "test":
		return "Run the test suite via Makefile target."
	case "lint":
		return "Run linting via Makefile target."
	case "format":
		return "Run formatting via Makefile target."
	case "run", "start":
		return "Run the application via Makefile target."
	}
	return "Run Makefile target '" + target + "'."
}

// MakefileCommands extracts `make <target>` commands for well-known targets
// from the Makefile at rel under root. Targets are read from rule lines
// only; recipes are ignored. Every command carries a description so the
// rendered bullets never lack one.
func MakefileCommands(root, rel string, maxBytes int64) map[string][]evidence.CommandInfo {
	content, ok := readCapped(filepath.Join(root, filepath.FromSlash(rel)), maxBytes)
	if !ok {
		slog.Warn("failed to read Makefile", logfields.File(rel))
		return nil
	}

	commands := make(map[string][]evidence.CommandInfo)
	for _, line := range strings.Split(content, "\n") {
		m := makefileTargetRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, target := range strings.Fields(m[1]) {
			group, ok := makefileTargetGroups[target]
			if !ok {
				continue
			}
			cmd := evidence.CommandInfo{
				Command: "make " + target,
				Source:  rel + ":" + target,
			}
			if d := DescribeCommand(cmd.Command); d != "" {
				cmd.Description = d
			} else {
				cmd.Description = fallbackMakeDescription(target)
			}
			commands[group] = append(commands[group], cmd)
		}
	}
	return commands
}
