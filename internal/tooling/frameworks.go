package tooling

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"onboardbuilder/internal/evidence"
	"onboardbuilder/internal/util/sets"
)

// classifierRegistry maps trove classifier prefixes to frameworks.
var classifierRegistry = []struct {
	name       string
	classifier string
}{
	{"Django", "Framework :: Django"},
	{"Wagtail", "Framework :: Wagtail"},
}

// poetryDepRegistry maps [tool.poetry.dependencies] keys to frameworks.
var poetryDepRegistry = []struct {
	name string
	key  string
}{
	{"Flask", "flask"},
	{"Django", "django"},
	{"FastAPI", "fastapi"},
}

// requirementsRegistry is checked against normalized distribution names
// parsed out of requirements files.
var requirementsRegistry = []string{"Streamlit", "Gradio", "FastAPI", "Flask", "Django"}

type pyprojectDoc struct {
	Project struct {
		Classifiers []string `toml:"classifiers"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Classifiers  []string       `toml:"classifiers"`
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// DetectFrameworks aggregates framework evidence from pyproject.toml
// classifiers, Poetry dependency keys, and requirements files. Results
// are deduplicated by name (later sources win) and name-sorted. Detector
// failures never propagate: a framework is either evidenced or absent.
func DetectFrameworks(root string, depFiles []evidence.EnvFile, maxBytes int64) []evidence.Framework {
	found := make(map[string]evidence.Framework)

	doc := loadPyproject(root, maxBytes)
	if doc != nil {
		for _, fw := range fromClassifiers(doc) {
			found[fw.Name] = fw
		}
		for _, fw := range fromPoetryDeps(doc) {
			found[fw.Name] = fw
		}
	}
	for _, fw := range fromRequirements(root, depFiles, maxBytes) {
		found[fw.Name] = fw
	}

	names := make([]string, 0, len(found))
	for n := range found {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]evidence.Framework, 0, len(names))
	for _, n := range names {
		out = append(out, found[n])
	}
	return out
}

func loadPyproject(root string, maxBytes int64) *pyprojectDoc {
	p := filepath.Join(root, "pyproject.toml")
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() || info.Size() > maxBytes {
		return nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil
	}
	var doc pyprojectDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return &doc
}

func fromClassifiers(doc *pyprojectDoc) []evidence.Framework {
	var classifiers []string
	classifiers = append(classifiers, doc.Project.Classifiers...)
	classifiers = append(classifiers, doc.Tool.Poetry.Classifiers...)
	if len(classifiers) == 0 {
		return nil
	}

	var out []evidence.Framework
	for _, reg := range classifierRegistry {
		for _, c := range classifiers {
			c = strings.TrimSpace(c)
			if c == reg.classifier || strings.HasPrefix(c, reg.classifier+" :: ") {
				out = append(out, evidence.Framework{
					Name:            reg.name,
					DetectionReason: "Detected via pyproject.toml classifiers",
					KeySymbols:      []string{reg.classifier},
					EvidencePath:    "pyproject.toml",
				})
				break
			}
		}
	}
	return out
}

func fromPoetryDeps(doc *pyprojectDoc) []evidence.Framework {
	deps := doc.Tool.Poetry.Dependencies
	if len(deps) == 0 {
		return nil
	}

	var out []evidence.Framework
	for _, reg := range poetryDepRegistry {
		v, ok := deps[reg.key]
		if !ok {
			continue
		}
		reason := fmt.Sprintf("Detected via pyproject.toml (Poetry) dependency key '%s'.", reg.key)
		if m, isMap := v.(map[string]any); isMap {
			if opt, _ := m["optional"].(bool); opt {
				reason += " (optional)"
			}
		}
		out = append(out, evidence.Framework{
			Name:            reg.name,
			DetectionReason: reason,
			KeySymbols:      []string{"tool.poetry.dependencies." + reg.key},
			EvidencePath:    "pyproject.toml",
		})
	}
	return out
}

var reqNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*`)

func fromRequirements(root string, depFiles []evidence.EnvFile, maxBytes int64) []evidence.Framework {
	var out []evidence.Framework
	for _, d := range depFiles {
		name := strings.ToLower(path.Base(d.Path))
		if !strings.HasPrefix(name, "requirements") {
			continue
		}
		if ext := strings.ToLower(path.Ext(name)); ext != ".txt" && ext != ".in" {
			continue
		}

		p := filepath.Join(root, filepath.FromSlash(d.Path))
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() || info.Size() > maxBytes {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}

		names := requirementNames(string(data))
		for _, fw := range requirementsRegistry {
			if !names.Has(strings.ToLower(fw)) {
				continue
			}
			base := path.Base(d.Path)
			out = append(out, evidence.Framework{
				Name:            fw,
				DetectionReason: fmt.Sprintf("Detected via %s dependency '%s'.", base, strings.ToLower(fw)),
				KeySymbols:      []string{base + ":" + strings.ToLower(fw)},
				EvidencePath:    d.Path,
			})
		}
	}
	return out
}

// requirementNames parses distribution names out of a requirements file,
// conservatively: comments, includes, options, editable installs, URLs
// and local paths are skipped; extras and environment markers stripped.
func requirementNames(text string) sets.Set[string] {
	out := sets.New[string]()
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}

		low := strings.ToLower(line)
		skip := false
		for _, p := range []string{"-r ", "--requirement", "-c ", "--constraint", "--", "-e "} {
			if strings.HasPrefix(low, p) {
				skip = true
				break
			}
		}
		if skip || strings.Contains(low, "://") ||
			strings.HasPrefix(low, "git+") || strings.HasPrefix(low, "svn+") ||
			strings.HasPrefix(low, "hg+") || strings.HasPrefix(low, "bzr+") ||
			strings.HasPrefix(low, ".") || strings.HasPrefix(low, "/") {
			continue
		}

		if i := strings.Index(line, ";"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}

		name := reqNameRe.FindString(line)
		if name == "" {
			continue
		}
		if i := strings.Index(name, "["); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}
		if name != "" {
			out.Add(normalizePackageName(name))
		}
	}
	return out
}

func normalizePackageName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	return strings.ReplaceAll(name, ".", "-")
}
