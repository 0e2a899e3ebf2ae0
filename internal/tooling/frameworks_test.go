package tooling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboardbuilder/internal/evidence"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDetectFrameworksFromClassifiers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", `
[project]
name = "demo"
classifiers = [
  "Framework :: Django",
  "Framework :: Wagtail :: 5",
]
`)

	fws := DetectFrameworks(root, nil, 256_000)

	require.Len(t, fws, 2)
	assert.Equal(t, "Django", fws[0].Name)
	assert.Equal(t, "Detected via pyproject.toml classifiers", fws[0].DetectionReason)
	assert.Equal(t, "Wagtail", fws[1].Name)
	assert.Equal(t, "pyproject.toml", fws[1].EvidencePath)
}

func TestDetectFrameworksFromPoetryDeps(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", `
[tool.poetry]
name = "demo"

[tool.poetry.dependencies]
python = "^3.10"
fastapi = "^0.110"

[tool.poetry.dependencies.flask]
version = "^3.0"
optional = true
`)

	fws := DetectFrameworks(root, nil, 256_000)

	require.Len(t, fws, 2)
	assert.Equal(t, "FastAPI", fws[0].Name)
	assert.Equal(t, "Detected via pyproject.toml (Poetry) dependency key 'fastapi'.", fws[0].DetectionReason)
	assert.Equal(t, "Flask", fws[1].Name)
	assert.Equal(t, "Detected via pyproject.toml (Poetry) dependency key 'flask'. (optional)", fws[1].DetectionReason)
}

func TestDetectFrameworksFromRequirements(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", `
# app deps
streamlit==1.32.0
requests>=2
Django[argon2]>=4.2 ; python_version >= "3.10"
-r requirements-dev.txt
git+https://example.com/some/repo.git
`)

	deps := []evidence.EnvFile{{Path: "requirements.txt", Type: "requirements.txt"}}
	fws := DetectFrameworks(root, deps, 256_000)

	require.Len(t, fws, 2)
	assert.Equal(t, "Django", fws[0].Name)
	assert.Equal(t, "Detected via requirements.txt dependency 'django'.", fws[0].DetectionReason)
	assert.Equal(t, []string{"requirements.txt:django"}, fws[0].KeySymbols)
	assert.Equal(t, "Streamlit", fws[1].Name)
}

func TestDetectFrameworksMalformedPyproject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "[broken")
	assert.Empty(t, DetectFrameworks(root, nil, 256_000))
}

func TestRequirementNames(t *testing.T) {
	names := requirementNames("Flask_SQLAlchemy==3.0\nzope.interface\n--index-url https://x\n./local\n")
	assert.True(t, names.Has("flask-sqlalchemy"))
	assert.True(t, names.Has("zope-interface"))
	assert.False(t, names.Has("--index-url"))
}

func TestPrecommitHasNotebookHygiene(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".pre-commit-config.yaml", "repos:\n  - repo: https://github.com/kynan/nbstripout\n    hooks:\n      - id: nbstripout\n")
	writeFile(t, root, "plain.yaml", "repos: []\n")

	assert.True(t, PrecommitHasNotebookHygiene(root, ".pre-commit-config.yaml", 256_000))
	assert.False(t, PrecommitHasNotebookHygiene(root, "plain.yaml", 256_000))
	assert.False(t, PrecommitHasNotebookHygiene(root, "missing.yaml", 256_000))
}
