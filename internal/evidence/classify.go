package evidence

import (
	"path"
	"strings"

	"onboardbuilder/internal/util/sets"
)

// Exact filenames that define dependencies. pyproject.toml, setup.py and
// setup.cfg also appear in the config set below; dependency classification
// dominates, so they are never emitted as configuration.
var dependencyFileNames = sets.New(
	"requirements.txt",
	"requirements-dev.txt",
	"requirements-server.txt",
	"pyproject.toml",
	"setup.py",
	"setup.cfg",
)

// Filenames recognized as configuration files.
var configFileNames = sets.New(
	"makefile",
	"justfile",
	"tox.ini",
	"noxfile.py",
	".pre-commit-config.yaml",
	".pre-commit-config.yml",
	"pytest.ini",
	"pytest.cfg",
	"pyproject.toml",
	"setup.cfg",
	"setup.py",
)

// Basename prefixes that mark a root-level file as a docs landing file.
var docRootPrefixes = []string{"readme", "contributing", "license", "security"}

// IsDependencyPath reports whether a path is canonically a dependency
// manifest: an exact known name, or requirements*.txt / requirements*.in.
func IsDependencyPath(p string) bool {
	name := strings.ToLower(path.Base(normalizePath(p)))
	if dependencyFileNames.Has(name) {
		return true
	}
	return strings.HasPrefix(name, "requirements") &&
		(strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".in"))
}

func isDocPath(p string) bool {
	p = normalizePath(p)
	name := strings.ToLower(path.Base(p))
	if strings.HasPrefix(p, "docs/") {
		return true
	}
	if strings.Contains(p, "/") {
		return false
	}
	for _, prefix := range docRootPrefixes[:2] { // readme, contributing
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func isConfigPath(p string) bool {
	p = normalizePath(p)
	name := strings.ToLower(path.Base(p))
	if configFileNames.Has(name) {
		return true
	}
	return strings.HasPrefix(p, ".github/workflows/")
}

// Classify buckets visible paths into the three disjoint candidate lists.
// Resolution order on overlap: dependency > configuration > doc.
func Classify(paths []string) (docs []DocFile, configs []ConfigFile, deps []EnvFile) {
	for _, raw := range paths {
		p := normalizePath(raw)
		if p == "" {
			continue
		}
		name := strings.ToLower(path.Base(p))

		switch {
		case IsDependencyPath(p):
			deps = append(deps, describeEnvFile(EnvFile{Path: p, Type: name}))
		case isConfigPath(p):
			configs = append(configs, describeConfigFile(ConfigFile{Path: p, Type: name}))
		case isDocPath(p):
			docs = append(docs, DocFile{Path: p, Type: "doc"})
		}
	}
	return docs, configs, deps
}

func normalizePath(p string) string {
	return strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/")
}
