package tooling

import (
	"path"
	"strings"

	"onboardbuilder/internal/util/sets"
)

// PrimaryUnknown is reported when no ecosystem evidence exists at all.
const PrimaryUnknown = "Unknown"

// ClassifyPrimary decides the repository's primary toolchain from file
// evidence. Python and Node.js accumulate points per evidence kind; ties
// break to Python because the generated document is Python-first.
func ClassifyPrimary(allFiles []string) string {
	names := sets.New[string]()
	for _, f := range allFiles {
		names.Add(strings.ToLower(path.Base(f)))
	}

	python := 0
	if names.Has("pyproject.toml") {
		python += 10
	}
	if hasRequirements(allFiles) {
		python += 10
	}
	if names.Has("setup.py") || names.Has("setup.cfg") {
		python += 5
	}

	node := 0
	if names.Has("package.json") {
		node += 10
	}
	for _, lock := range []string{"package-lock.json", "npm-shrinkwrap.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb"} {
		if names.Has(lock) {
			node += 10
			break
		}
	}
	if names.Has(".nvmrc") || names.Has(".node-version") {
		node += 5
	}

	switch {
	case python == 0 && node == 0:
		return PrimaryUnknown
	case node > python:
		return "Node.js"
	default:
		return "Python"
	}
}

func hasRequirements(allFiles []string) bool {
	for _, f := range allFiles {
		name := strings.ToLower(path.Base(f))
		if strings.HasPrefix(name, "requirements") &&
			(strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".in")) {
			return true
		}
	}
	return false
}
