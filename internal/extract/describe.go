package extract

import (
	"fmt"
	"strings"
)

// commandDescriptions maps exact command strings to their fixed
// descriptions. Prefix entries are handled separately below so the table
// stays a plain lookup.
var commandDescriptions = map[string]string{
	"make test":    "Run the test suite via Makefile target.",
	"make format":  "Run formatting via Makefile target.",
	"make run":     "Run the application via Makefile target.",
	"make install": "Install dependencies via Makefile target.",
	"make lint":    "Run linting via Makefile target.",
	"tox":          "Run tests via tox.",
}

var commandPrefixDescriptions = []struct {
	prefix string
	desc   string
}{
	{"tox -e", "Run specific tox environment."},
	{"bash scripts/", "Run repo script entrypoint."},
}

// DescribeCommand returns the registered description for a command string,
// or "" when nothing is registered.
func DescribeCommand(cmd string) string {
	if d, ok := commandDescriptions[cmd]; ok {
		return d
	}
	for _, e := range commandPrefixDescriptions {
		if strings.HasPrefix(cmd, e.prefix) {
			return e.desc
		}
	}
	return ""
}

// DescribeInstallCommand produces a grounded description for an install
// command string. It never invents commands: the description only restates
// what the given string does, and is stable across runs.
func DescribeInstallCommand(command string) string {
	cmd := strings.Join(strings.Fields(command), " ")
	if cmd == "" {
		return "Install dependencies (from analyzer)."
	}

	low := strings.ToLower(cmd)

	if low == "make install" {
		return "Install dependencies via Makefile target."
	}

	for pm, desc := range map[string]string{
		"uv sync":        "Install dependencies using uv.",
		"poetry install": "Install dependencies using Poetry.",
		"pdm install":    "Install dependencies using PDM.",
		"pipenv install": "Install dependencies using Pipenv.",
	} {
		if low == pm || strings.HasPrefix(low, pm+" ") {
			return desc
		}
	}

	if tokens := normalizeToPipTokens(strings.Fields(cmd)); tokens != nil {
		return describePipCommand(tokens)
	}

	if low == "npm install" || low == "npm ci" || strings.HasPrefix(low, "npm install ") {
		return "Install dependencies using npm."
	}
	if low == "yarn install" || strings.HasPrefix(low, "yarn install ") {
		return "Install dependencies using Yarn."
	}
	if low == "pnpm install" || strings.HasPrefix(low, "pnpm install ") {
		return "Install dependencies using pnpm."
	}

	return "Install dependencies (from analyzer)."
}

// normalizeToPipTokens returns tokens rewritten to start with "pip", or nil
// when the command is not pip-like. Handles pip, pip3, and python -m pip.
func normalizeToPipTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	t0 := strings.ToLower(tokens[0])
	if t0 == "pip" || t0 == "pip3" {
		return tokens
	}
	if len(tokens) >= 3 && (t0 == "python" || t0 == "python3") &&
		tokens[1] == "-m" && strings.ToLower(tokens[2]) == "pip" {
		return append([]string{"pip"}, tokens[3:]...)
	}
	return nil
}

func describePipCommand(tokens []string) string {
	if len(tokens) < 2 {
		return "Install Python packages via pip."
	}

	verb := strings.ToLower(tokens[1])
	if verb != "install" {
		switch verb {
		case "freeze", "list", "show":
			return fmt.Sprintf("Inspect installed packages via pip (%s).", verb)
		case "download":
			return "Download Python packages via pip."
		}
		return "Manage Python packages via pip."
	}

	args := tokens[2:]

	if hasFlag(args, "-u") || hasFlag(args, "-U") || hasFlag(args, "--upgrade") {
		for _, a := range args {
			if strings.EqualFold(a, "pip") {
				return "Upgrade pip."
			}
		}
		return "Upgrade Python package(s) via pip."
	}

	if hasFlag(args, "-e") || hasFlag(args, "--editable") {
		if hasFlag(args, ".") {
			return "Install the project in editable mode."
		}
		return "Install package(s) in editable mode via pip."
	}

	if req := flagValue(args, "-r"); req != "" {
		return fmt.Sprintf("Install dependencies from %s.", req)
	}
	if req := flagValue(args, "--requirement"); req != "" {
		return fmt.Sprintf("Install dependencies from %s.", req)
	}

	if len(args) > 0 && args[0] == "." {
		return "Install the project package."
	}
	if len(args) > 0 && strings.HasPrefix(args[0], ".[") && strings.HasSuffix(args[0], "]") {
		return "Install the project package with extras."
	}

	return "Install Python packages via pip."
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// flagValue returns the token following flag, supporting only the
// space-separated form ("-r requirements.txt").
func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return strings.TrimSpace(args[i+1])
		}
	}
	return ""
}
