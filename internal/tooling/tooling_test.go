package tooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOther(t *testing.T) {
	files := []string{
		"go.sum",
		"go.mod",
		"Dockerfile",
		"package.json",
		"src/main.py",
	}

	detections := DetectOther(files)

	require.Len(t, detections, 3)
	// name-sorted: Docker, Go, Node.js
	assert.Equal(t, "Docker", detections[0].Name)
	assert.Equal(t, "Go", detections[1].Name)
	assert.Equal(t, []string{"go.mod", "go.sum"}, detections[1].EvidenceFiles)
	assert.Equal(t, "Node.js", detections[2].Name)
	assert.Equal(t, "Node.js tooling detected. See package.json for details.", detections[2].Note)
}

func TestDetectOtherEmpty(t *testing.T) {
	assert.Empty(t, DetectOther([]string{"main.py", "docs/readme.md"}))
}

func TestClassifyPrimary(t *testing.T) {
	t.Run("node evidence only", func(t *testing.T) {
		got := ClassifyPrimary([]string{"package.json", "package-lock.json"})
		assert.Equal(t, "Node.js", got)
	})

	t.Run("python evidence only", func(t *testing.T) {
		got := ClassifyPrimary([]string{"pyproject.toml", "src/app.py"})
		assert.Equal(t, "Python", got)
	})

	t.Run("tie breaks to python", func(t *testing.T) {
		got := ClassifyPrimary([]string{"pyproject.toml", "package-lock.json"})
		assert.Equal(t, "Python", got)
	})

	t.Run("no evidence", func(t *testing.T) {
		got := ClassifyPrimary([]string{"main.c", "README.md"})
		assert.Equal(t, PrimaryUnknown, got)
	})

	t.Run("deterministic", func(t *testing.T) {
		files := []string{"package.json", "pnpm-lock.yaml", "requirements.txt"}
		assert.Equal(t, ClassifyPrimary(files), ClassifyPrimary(files))
	})
}

func TestNotebookDirs(t *testing.T) {
	files := []string{
		"analysis.ipynb",
		"research/experiment.ipynb",
		"research/old_experiment.ipynb",
		"src/deep/notebooks/test.ipynb",
		"src/main.py",
	}

	dirs := NotebookDirs(files)
	assert.Equal(t, []string{".", "research/", "src/deep/notebooks/"}, dirs)
}

func TestNotebookDirsNone(t *testing.T) {
	assert.Empty(t, NotebookDirs([]string{"src/main.py"}))
}
