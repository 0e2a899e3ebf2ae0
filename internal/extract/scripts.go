package extract

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"onboardbuilder/internal/evidence"
	"onboardbuilder/internal/logfields"
)

const helperScriptDescription = "Helper script used by other repo scripts."

// ShellScriptCommands turns every scripts/*.sh file into a `bash <path>`
// command. The first safe header comment becomes the description; helper
// scripts are always described neutrally, and scripts with "test" in the
// name go to the test group.
func ShellScriptCommands(root string, allFiles []string) map[string][]evidence.CommandInfo {
	commands := map[string][]evidence.CommandInfo{"dev": {}, "test": {}}

	for _, f := range allFiles {
		rel := normRel(f)
		if !strings.HasPrefix(rel, "scripts/") || !strings.HasSuffix(rel, ".sh") {
			continue
		}

		name := baseName(rel)
		description := ""
		if isHelperScript(rel) {
			description = helperScriptDescription
		} else {
			description = headerDescription(filepath.Join(root, filepath.FromSlash(rel)))
			if description == "" {
				description = "Run repo script entrypoint."
			}
		}

		cmd := evidence.CommandInfo{
			Command:     "bash " + rel,
			Source:      rel,
			Name:        name,
			Description: description,
			Confidence:  "derived",
		}

		if strings.Contains(name, "test") {
			commands["test"] = append(commands["test"], cmd)
		} else {
			commands["dev"] = append(commands["dev"], cmd)
		}
	}
	return commands
}

// headerDescription scans the leading comment block of a script for the
// first safe description line. The scan stops at the first non-comment
// content.
func headerDescription(path string) string {
	file, err := os.Open(path)
	if err != nil {
		slog.Debug("could not read script", logfields.File(path), logfields.Error(err))
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			break
		}
		if strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "#!") {
			candidate := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if isSafeDescription(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// isSafeDescription rejects comment lines that look like commands,
// variable assignments, separator art, or bare section markers.
func isSafeDescription(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.Contains(line, "export") || strings.Contains(line, "=") {
		return false
	}
	for _, p := range []string{"cd ", "bash ", "python ", "make "} {
		if strings.HasPrefix(line, p) {
			return false
		}
	}

	separators := 0
	for _, r := range line {
		if strings.ContainsRune(" -_=#", r) {
			separators++
		}
	}
	if total := len([]rune(line)); total > 4 && float64(separators)/float64(total) > 0.5 {
		return false
	}

	if len(strings.Fields(line)) < 2 {
		switch strings.ToUpper(line) {
		case "CONFIG", "SETUP", "MAIN", "TEST", "BUILD", "START", "END":
			return false
		}
	}
	return true
}

func isHelperScript(rel string) bool {
	name := strings.ToLower(baseName(rel))

	switch name {
	case "helper.sh", "helpers.sh", "util.sh", "utils.sh", "common.sh", "shared.sh":
		return true
	}
	for _, p := range []string{"helper", "helpers", "util", "utils", "common", "shared"} {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return strings.Contains(name, "helpers") || strings.Contains(name, "utils")
}
