package evidence

import (
	"path"
	"strings"
)

// Declarative description tables. Adding a new recognized file means adding
// a row here, not a new conditional.

var envFileDescriptions = map[string]string{
	"requirements":   "Python dependency manifest.",
	"pyproject.toml": "Project configuration and dependency management (PEP 518/621).",
	"setup.py":       "Packaging/build configuration (setuptools).",
	"setup.cfg":      "Packaging/build configuration (setuptools).",
}

var configFileDescriptions = map[string]string{
	"makefile":                "Primary task runner for development and build orchestration.",
	"justfile":                "Primary task runner for development and build orchestration.",
	"tox.ini":                 "Test environment orchestrator (tox).",
	"noxfile.py":              "Test automation sessions (nox).",
	".pre-commit-config.yaml": "Pre-commit hooks configuration (code quality automation).",
	".pre-commit-config.yml":  "Pre-commit hooks configuration (code quality automation).",
	"setup.py":                "Packaging/build configuration (setuptools).",
	"setup.cfg":               "Packaging/build configuration (setuptools).",
}

const workflowDescription = "CI/CD automation workflow."

func describeEnvFile(f EnvFile) EnvFile {
	name := strings.ToLower(path.Base(f.Path))
	key := name
	if strings.HasPrefix(name, "requirements") {
		key = "requirements"
	}
	if desc, ok := envFileDescriptions[key]; ok {
		f.Description = desc
	}
	return f
}

func describeConfigFile(f ConfigFile) ConfigFile {
	name := strings.ToLower(path.Base(f.Path))
	if desc, ok := configFileDescriptions[name]; ok {
		f.Description = desc
		return f
	}
	if strings.HasPrefix(normalizePath(f.Path), ".github/workflows/") {
		f.Description = workflowDescription
	}
	return f
}
