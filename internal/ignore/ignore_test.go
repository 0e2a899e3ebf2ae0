package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSafetyIgnores = []string{
	".git/", ".venv/", "node_modules/", "dist/", "build/", ".coverage",
	"tests/fixtures/", "test/fixtures/",
}

func writeGitignore(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(content), 0o644))
}

func TestSafetyBlocklist(t *testing.T) {
	m := NewMatcher(t.TempDir(), testSafetyIgnores)

	cases := []struct {
		path  string
		isDir bool
	}{
		{".git", true},
		{".git/config", false},
		{"node_modules", true},
		{"src/node_modules", true},
		{"node_modules/react/index.js", false},
		{"tests/fixtures", true},
		{"tests/fixtures/sample/pyproject.toml", false},
		{".coverage", false},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.False(t, m.Visible(tc.path, tc.isDir), "expected %s to be invisible", tc.path)
		})
	}

	assert.True(t, m.Visible("src/main.py", false))
	assert.True(t, m.Visible("docs", true))
}

func TestGitignoreNegationCannotOverrideSafety(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "!.git/\n!node_modules/\n")
	m := NewMatcher(root, testSafetyIgnores)

	assert.False(t, m.Visible(".git", true))
	assert.False(t, m.Visible("node_modules", true))
	assert.False(t, m.ShouldDescend("node_modules"))
}

func TestGitignorePatterns(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "*.log\n/generated/\ntmp/\n!keep.log\n")
	m := NewMatcher(root, testSafetyIgnores)

	assert.False(t, m.Visible("server.log", false))
	assert.False(t, m.Visible("logs/server.log", false))
	assert.True(t, m.Visible("keep.log", false), "negated pattern should re-include")
	assert.False(t, m.Visible("generated", true))
	assert.False(t, m.Visible("a/tmp", true))
	assert.True(t, m.Visible("main.go", false))
}

func TestDirectoryOnlyPattern(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "out/\n")
	m := NewMatcher(root, testSafetyIgnores)

	assert.False(t, m.Visible("out", true))
	// A plain file named "out" is not covered by a dir-only pattern.
	assert.True(t, m.Visible("out", false))
}

func TestShouldDescendMatchesVisible(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "vendor/\n")
	m := NewMatcher(root, testSafetyIgnores)

	for _, dir := range []string{"vendor", "src", ".git", "docs", "tests/fixtures"} {
		assert.Equal(t, m.Visible(dir, true), m.ShouldDescend(dir), "invariant broken for %s", dir)
	}
}

func TestMissingGitignoreMeansNoRepoRules(t *testing.T) {
	m := NewMatcher(t.TempDir(), testSafetyIgnores)
	assert.True(t, m.Visible("anything.log", false))
}

func TestMalformedGitignoreDegrades(t *testing.T) {
	root := t.TempDir()
	// A directory named .gitignore is unreadable as a file.
	require.NoError(t, os.Mkdir(filepath.Join(root, ".gitignore"), 0o755))
	m := NewMatcher(root, testSafetyIgnores)

	assert.True(t, m.Visible("anything.log", false))
	assert.False(t, m.Visible(".git", true), "safety layer still applies")
}

func TestSafetyIgnoredBypassesRepoRules(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "pyproject.toml\n")
	m := NewMatcher(root, testSafetyIgnores)

	// Repo rules hide it from the broad scan...
	assert.False(t, m.Visible("pyproject.toml", false))
	// ...but the safety layer alone does not claim it, so targeted
	// discovery may still surface it.
	assert.False(t, m.SafetyIgnored("pyproject.toml", false))
	assert.True(t, m.SafetyIgnored("tests/fixtures/pyproject.toml", false))
}
