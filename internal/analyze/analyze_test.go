package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboardbuilder/internal/config"
	"onboardbuilder/internal/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAnalyzePythonRepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# demo\n")
	writeFile(t, root, "requirements.txt", "flask\n")
	writeFile(t, root, "setup.py", "from setuptools import setup\nsetup()\n")
	writeFile(t, root, "Makefile", "install:\n\tpip install -r requirements.txt\n\ntest:\n\tpytest\n")
	writeFile(t, root, "tox.ini", "[tox]\nenvlist = py311, flake8\nflake8\n")
	writeFile(t, root, "src/app.py", "print('hi')\n")
	writeFile(t, root, "docs/setup.md", "setup\n")

	a, err := Analyze(root, config.Default())
	require.NoError(t, err)

	// ranked lists
	require.NotEmpty(t, a.Docs)
	assert.Equal(t, "README.md", a.Docs[0].Path)
	require.NotEmpty(t, a.ConfigurationFiles)
	assert.Equal(t, "Makefile", a.ConfigurationFiles[0].Path)

	// dependency classification dominates config
	for _, c := range a.ConfigurationFiles {
		assert.NotEqual(t, "setup.py", c.Path)
		assert.NotEqual(t, "requirements.txt", c.Path)
	}

	// commands
	cmds := func(list []string, group string) {
		var got []string
		switch group {
		case "install":
			for _, c := range a.Scripts.Install {
				got = append(got, c.Command)
			}
		case "test":
			for _, c := range a.Scripts.Test {
				got = append(got, c.Command)
			}
		}
		for _, want := range list {
			assert.Contains(t, got, want, group)
		}
	}
	cmds([]string{"make install"}, "install")
	cmds([]string{"make test", "tox"}, "test")
	assert.True(t, a.TestSetup.UsesTox)

	// make install must stay the sole install command
	require.Len(t, a.Scripts.Install, 1)

	// python info
	require.NotNil(t, a.Python)
	assert.Contains(t, a.Python.PackageManagers, "pip")
	assert.Equal(t, "requirements.txt", a.Python.DependencyFiles[0].Path)
	assert.Contains(t, a.Python.InstallInstructions, "pip install -r requirements.txt")
	assert.Contains(t, a.Python.InstallInstructions, "pip install -e .")

	assert.Equal(t, "Python", a.PrimaryTooling)
}

func TestAnalyzeIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# demo\n")
	writeFile(t, root, "pyproject.toml", "[project]\nname = \"demo\"\n")
	writeFile(t, root, "nb/run.ipynb", "{}")

	a1, err := Analyze(root, config.Default())
	require.NoError(t, err)
	a2, err := Analyze(root, config.Default())
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, []string{"nb/"}, a1.NotebookDirs)
	assert.Contains(t, a1.Notes, "Notebook-centric repo detected; core logic may reside in Jupyter notebooks.")
}

func TestAnalyzeMissingRoot(t *testing.T) {
	_, err := Analyze(filepath.Join(t.TempDir(), "nope"), config.Default())
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategorySandbox))
}

func TestAnalyzeRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.txt", "x")
	_, err := Analyze(filepath.Join(root, "file.txt"), config.Default())
	require.Error(t, err)
}

func TestAnalyzeSafetyIgnoredManifestNeverSurfaces(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# demo\n")
	writeFile(t, root, "tests/fixtures/pyproject.toml", "[project]\nname = \"fixture\"\n")
	writeFile(t, root, "tests/fixtures/requirements.txt", "pytest\n")

	a, err := Analyze(root, config.Default())
	require.NoError(t, err)

	if a.Python != nil {
		for _, d := range a.Python.DependencyFiles {
			assert.NotContains(t, d.Path, "fixtures")
		}
	}
	for _, c := range a.ConfigurationFiles {
		assert.NotContains(t, c.Path, "fixtures")
	}
}

func TestAnalyzeGitignoredManifestStillFoundByTargetedScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "pyproject.toml\n")
	writeFile(t, root, "pyproject.toml", "[project]\nname = \"demo\"\nrequires-python = \"==3.11.0\"\n")

	a, err := Analyze(root, config.Default())
	require.NoError(t, err)

	require.NotNil(t, a.Python)
	paths := make([]string, 0, len(a.Python.DependencyFiles))
	for _, d := range a.Python.DependencyFiles {
		paths = append(paths, d.Path)
	}
	assert.Contains(t, paths, "pyproject.toml")
	assert.Equal(t, "3.11.0", a.Python.VersionPin)
}

func TestAnalyzeWorkflowVersionPin(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "print('x')\n")
	writeFile(t, root, ".github/workflows/ci.yml", "env:\n  PYTHON_VERSION: \"3.12\"\n")

	a, err := Analyze(root, config.Default())
	require.NoError(t, err)

	require.NotNil(t, a.Python)
	assert.Equal(t, []string{"3.12"}, a.Python.VersionHints)
	assert.Equal(t, "3.12", a.Python.VersionPin)
}

func TestAnalyzeNodeRepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"scripts":{"dev":"vite","test":"vitest"}}`)
	writeFile(t, root, "package-lock.json", "{}")

	a, err := Analyze(root, config.Default())
	require.NoError(t, err)

	assert.Equal(t, "Node.js", a.PrimaryTooling)
	assert.Nil(t, a.Python)

	var installs []string
	for _, c := range a.Scripts.Install {
		installs = append(installs, c.Command)
	}
	assert.Contains(t, installs, "npm ci")

	require.NotEmpty(t, a.OtherTooling)
	assert.Equal(t, "Node.js", a.OtherTooling[0].Name)
}
