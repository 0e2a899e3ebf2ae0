package extract

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"onboardbuilder/internal/util/sets"
)

var (
	workflowEnvVersionRe  = regexp.MustCompile(`PYTHON_VERSION:\s*["']?([\d.]+)["']?`)
	workflowStepVersionRe = regexp.MustCompile(`python-version:\s*["']?([\d.]+)["']?`)
)

// WorkflowPythonVersions collects Python versions pinned in GitHub Actions
// workflow files, from PYTHON_VERSION env entries and python-version step
// inputs. Expression values never match the numeric capture, so templated
// versions are excluded by construction. The result is sorted and deduped.
func WorkflowPythonVersions(root string, maxBytes int64) []string {
	dir := filepath.Join(root, ".github", "workflows")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	seen := sets.New[string]()
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yml" {
			continue
		}
		content, ok := readCapped(filepath.Join(dir, e.Name()), maxBytes)
		if !ok {
			continue
		}
		for _, m := range workflowEnvVersionRe.FindAllStringSubmatch(content, -1) {
			seen.Add(m[1])
		}
		for _, m := range workflowStepVersionRe.FindAllStringSubmatch(content, -1) {
			seen.Add(m[1])
		}
	}

	if seen.Len() == 0 {
		return nil
	}
	out := seen.Values()
	sort.Strings(out)
	return out
}
