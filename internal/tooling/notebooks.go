package tooling

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"onboardbuilder/internal/util/sets"
)

// NotebookCentricNote is appended to analyzer notes whenever notebooks
// are present.
const NotebookCentricNote = "Notebook-centric repo detected; core logic may reside in Jupyter notebooks."

// NotebookDirs returns the sorted set of directories containing .ipynb
// files. The repository root is reported as "."; all other directories
// carry a trailing slash.
func NotebookDirs(allFiles []string) []string {
	dirs := sets.New[string]()
	for _, f := range allFiles {
		if !strings.HasSuffix(strings.ToLower(f), ".ipynb") {
			continue
		}
		d := path.Dir(f)
		if d == "." {
			dirs.Add(".")
		} else {
			dirs.Add(d + "/")
		}
	}
	if dirs.Len() == 0 {
		return nil
	}
	out := dirs.Values()
	sort.Strings(out)
	return out
}

// notebookHygieneMarkers are pre-commit hook ids that strip or clean
// notebook outputs.
var notebookHygieneMarkers = []string{
	"nbstripout",
	"nb-clean",
	"jupyter-notebook-cleanup",
}

// PrecommitHasNotebookHygiene reports whether the pre-commit config at rel
// references a notebook hygiene hook. The probe is a case-insensitive
// substring search over size-capped content; anything unreadable counts
// as no hygiene.
func PrecommitHasNotebookHygiene(root, rel string, maxBytes int64) bool {
	p := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() || info.Size() > maxBytes {
		return false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return false
	}
	text := strings.ToLower(string(data))
	for _, marker := range notebookHygieneMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
