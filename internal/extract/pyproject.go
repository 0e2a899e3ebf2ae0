package extract

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"onboardbuilder/internal/logfields"
)

// PyprojectMetadata is what the analyzer needs from pyproject.toml.
type PyprojectMetadata struct {
	RequiresPython  string
	BuildBackend    string
	PackageManagers []string
}

// knownPackageManagers maps a [tool.X] table name (or build-backend
// substring) to the package manager it implies. Order matters for the
// deterministic PackageManagers slice.
var knownPackageManagers = []struct {
	key     string
	manager string
}{
	{"poetry", "poetry"},
	{"uv", "uv"},
	{"pdm", "pdm"},
	{"hatch", "hatch"},
	{"flit", "flit"},
	{"setuptools", "pip"},
}

// Pyproject parses pyproject.toml at rel under root. Malformed TOML or an
// unreadable file yields empty metadata; partial data is kept.
func Pyproject(root, rel string, maxBytes int64) PyprojectMetadata {
	var meta PyprojectMetadata

	content, ok := readCapped(filepath.Join(root, filepath.FromSlash(rel)), maxBytes)
	if !ok {
		return meta
	}

	var doc struct {
		Project struct {
			RequiresPython string `toml:"requires-python"`
		} `toml:"project"`
		BuildSystem struct {
			BuildBackend string `toml:"build-backend"`
		} `toml:"build-system"`
		Tool map[string]any `toml:"tool"`
	}
	if err := toml.Unmarshal([]byte(content), &doc); err != nil {
		slog.Warn("failed to parse pyproject.toml", logfields.File(rel), logfields.Error(err))
		return meta
	}

	meta.RequiresPython = doc.Project.RequiresPython
	meta.BuildBackend = doc.BuildSystem.BuildBackend

	backend := strings.ToLower(meta.BuildBackend)
	for _, e := range knownPackageManagers {
		if _, inTool := doc.Tool[e.key]; inTool || strings.Contains(backend, e.key) {
			if !contains(meta.PackageManagers, e.manager) {
				meta.PackageManagers = append(meta.PackageManagers, e.manager)
			}
		}
	}
	return meta
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
