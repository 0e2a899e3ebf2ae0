package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBuckets(t *testing.T) {
	paths := []string{
		"README.md",
		"CONTRIBUTING.md",
		"docs/guide.md",
		"requirements.txt",
		"requirements-dev.txt",
		"pyproject.toml",
		"setup.py",
		"Makefile",
		"tox.ini",
		".github/workflows/ci.yml",
		"src/main.py",
		"random.txt",
	}

	docs, configs, deps := Classify(paths)

	docPaths := pathsOfDocs(docs)
	assert.Equal(t, []string{"README.md", "CONTRIBUTING.md", "docs/guide.md"}, docPaths)

	depPaths := pathsOfEnv(deps)
	assert.Equal(t, []string{"requirements.txt", "requirements-dev.txt", "pyproject.toml", "setup.py"}, depPaths)

	cfgPaths := pathsOfConfigs(configs)
	assert.Equal(t, []string{"Makefile", "tox.ini", ".github/workflows/ci.yml"}, cfgPaths)
}

func TestDependencyDominatesConfig(t *testing.T) {
	// pyproject.toml and setup.py match both the dependency and config
	// tables; they must only ever appear as dependencies.
	docs, configs, deps := Classify([]string{"pyproject.toml", "setup.py", "setup.cfg"})

	assert.Empty(t, docs)
	assert.Empty(t, configs)
	assert.Len(t, deps, 3)
}

func TestClassifyDisjointness(t *testing.T) {
	paths := []string{
		"pyproject.toml", "setup.cfg", "Makefile", "README.md",
		"docs/install.md", "requirements.txt", "tox.ini",
	}
	docs, configs, deps := Classify(paths)

	seen := map[string]string{}
	for _, d := range docs {
		seen[d.Path] = "doc"
	}
	for _, c := range configs {
		_, dup := seen[c.Path]
		require.False(t, dup, "path %s in two categories", c.Path)
		seen[c.Path] = "config"
	}
	for _, d := range deps {
		_, dup := seen[d.Path]
		require.False(t, dup, "path %s in two categories", d.Path)
	}
}

func TestRequirementsVariants(t *testing.T) {
	assert.True(t, IsDependencyPath("requirements.txt"))
	assert.True(t, IsDependencyPath("requirements-test.txt"))
	assert.True(t, IsDependencyPath("requirements.in"))
	assert.True(t, IsDependencyPath("sub/requirements.txt"))
	assert.False(t, IsDependencyPath("requirements.md"))
	assert.False(t, IsDependencyPath("Makefile"))
}

func TestClassifyDescriptions(t *testing.T) {
	_, configs, deps := Classify([]string{"Makefile", "requirements.txt", ".github/workflows/ci.yml"})

	require.Len(t, deps, 1)
	assert.Equal(t, "Python dependency manifest.", deps[0].Description)

	require.Len(t, configs, 2)
	assert.Equal(t, "Primary task runner for development and build orchestration.", configs[0].Description)
	assert.Equal(t, "CI/CD automation workflow.", configs[1].Description)
}

func pathsOfDocs(in []DocFile) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, v.Path)
	}
	return out
}

func pathsOfConfigs(in []ConfigFile) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, v.Path)
	}
	return out
}

func pathsOfEnv(in []EnvFile) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, v.Path)
	}
	return out
}
