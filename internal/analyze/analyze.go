// Package analyze orchestrates the extraction pipeline: ignore rules,
// scanning, classification, ranking, command extraction, and environment
// inference. One call produces the complete evidence bag for a repository.
package analyze

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"onboardbuilder/internal/config"
	"onboardbuilder/internal/errors"
	"onboardbuilder/internal/evidence"
	"onboardbuilder/internal/extract"
	"onboardbuilder/internal/ignore"
	"onboardbuilder/internal/logfields"
	"onboardbuilder/internal/scan"
	"onboardbuilder/internal/tooling"
	"onboardbuilder/internal/version"
)

// Analyze walks the repository at root and returns the evidence bag.
//
// The only fatal condition is a root that does not exist, is not a
// directory, or resolves outside itself through symlinks. Everything
// below that degrades: unreadable files and subtrees simply contribute
// no evidence. The result is idempotent for an unchanged tree.
func Analyze(root string, cfg *config.Config) (*evidence.Analysis, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	resolved, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	matcher := ignore.NewMatcher(resolved, cfg.SafetyIgnores())

	targeted := scan.Targeted(resolved, matcher)
	broad, pyFiles := scan.Repo(resolved, matcher, cfg.Limits.MaxFiles)
	allFiles := scan.Merge(broad, targeted)

	docs, configs, depFiles := evidence.Classify(allFiles)

	var notes []string
	docs, noteDocs := evidence.RankAndCap(docs,
		func(d evidence.DocFile) string { return d.Path },
		func(p string) int { return evidence.DocScore(cfg.Scoring, p) },
		cfg.Limits.DocsCap, "docs")
	if noteDocs != "" {
		notes = append(notes, noteDocs)
	}
	configs, noteConfigs := evidence.RankAndCap(configs,
		func(c evidence.ConfigFile) string { return c.Path },
		func(p string) int { return evidence.ConfigScore(cfg.Scoring, p) },
		cfg.Limits.ConfigsCap, "configurationFiles")
	if noteConfigs != "" {
		notes = append(notes, noteConfigs)
	}

	scripts, testSetup := aggregateScripts(resolved, configs, allFiles, cfg.Limits.MaxReadBytes)

	python := inferPython(resolved, pyFiles, depFiles, cfg.Limits.MaxReadBytes)
	extract.MergeInstallInstructions(&scripts, python)

	notebookDirs := tooling.NotebookDirs(allFiles)
	if len(notebookDirs) > 0 {
		notes = append(notes, tooling.NotebookCentricNote)
	}

	analysis := &evidence.Analysis{
		RepoPath:           resolved,
		Python:             python,
		Scripts:            scripts,
		Docs:               docs,
		ConfigurationFiles: configs,
		Frameworks:         tooling.DetectFrameworks(resolved, depFiles, cfg.Limits.MaxReadBytes),
		OtherTooling:       tooling.DetectOther(allFiles),
		PrimaryTooling:     tooling.ClassifyPrimary(allFiles),
		NotebookDirs:       notebookDirs,
		TestSetup:          testSetup,
		Notes:              notes,
	}

	slog.Info("analyzed repository",
		logfields.Repo(resolved),
		logfields.Count(len(allFiles)),
	)
	return analysis, nil
}

// resolveRoot resolves the repository root through symlinks and requires
// an existing directory.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrap(err, errors.CategorySandbox, errors.SeverityFatal, "cannot resolve repository root")
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrap(err, errors.CategorySandbox, errors.SeverityFatal, "repository root does not exist").
			WithContext("root", root)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", errors.Wrap(err, errors.CategorySandbox, errors.SeverityFatal, "cannot stat repository root")
	}
	if !info.IsDir() {
		return "", errors.SandboxError("repository root is not a directory").WithContext("root", root)
	}
	return resolved, nil
}

// aggregateScripts extracts command groups from the ranked configuration
// files plus the shell scripts in the tree.
func aggregateScripts(root string, configs []evidence.ConfigFile, allFiles []string, maxBytes int64) (evidence.ScriptGroup, evidence.TestSetup) {
	var scripts evidence.ScriptGroup
	var testSetup evidence.TestSetup

	if rel := findConfig(configs, "makefile"); rel != "" {
		appendGroups(&scripts, extract.MakefileCommands(root, rel, maxBytes))
	}

	sh := extract.ShellScriptCommands(root, allFiles)
	scripts.Dev = append(scripts.Dev, sh["dev"]...)
	scripts.Test = append(scripts.Test, sh["test"]...)

	if rel := findConfig(configs, "tox.ini"); rel != "" {
		tox := extract.ToxCommands(root, rel, maxBytes)
		scripts.Test = append(scripts.Test, tox["test"]...)
		scripts.Lint = append(scripts.Lint, tox["lint"]...)
		testSetup.UsesTox = true
		testSetup.ToxConfigPath = rel
	}
	if rel := findConfig(configs, "noxfile.py"); rel != "" {
		testSetup.UsesNox = true
		testSetup.NoxConfigPath = rel
	}

	appendGroups(&scripts, extract.NodeCommands(root, allFiles, maxBytes))

	return scripts, testSetup
}

func appendGroups(scripts *evidence.ScriptGroup, groups map[string][]evidence.CommandInfo) {
	keys := make([]string, 0, len(groups))
	for group := range groups {
		keys = append(keys, group)
	}
	sort.Strings(keys)
	for _, group := range keys {
		cmds := groups[group]
		switch group {
		case "dev":
			scripts.Dev = append(scripts.Dev, cmds...)
		case "start":
			scripts.Start = append(scripts.Start, cmds...)
		case "test":
			scripts.Test = append(scripts.Test, cmds...)
		case "lint":
			scripts.Lint = append(scripts.Lint, cmds...)
		case "format":
			scripts.Format = append(scripts.Format, cmds...)
		case "install":
			scripts.Install = append(scripts.Install, cmds...)
		default:
			scripts.Other = append(scripts.Other, cmds...)
		}
	}
}

func findConfig(configs []evidence.ConfigFile, lowerName string) string {
	for _, c := range configs {
		if strings.ToLower(path.Base(c.Path)) == lowerName {
			return c.Path
		}
	}
	return ""
}

// inferPython builds the PythonInfo block when any Python evidence exists:
// .py files, dependency manifests, or workflow version pins.
func inferPython(root string, pyFiles []string, allDepFiles []evidence.EnvFile, maxBytes int64) *evidence.PythonInfo {
	depFiles := pythonDepFiles(allDepFiles)
	hints := extract.WorkflowPythonVersions(root, maxBytes)

	var meta extract.PyprojectMetadata
	if hasDepFile(depFiles, "pyproject.toml") {
		meta = extract.Pyproject(root, depPath(depFiles, "pyproject.toml"), maxBytes)
		if h := strings.TrimSpace(meta.RequiresPython); h != "" {
			if c := version.Classify(h); c.Pin != "" {
				hints = append(hints, c.Pin)
			}
		}
	}

	if len(pyFiles) == 0 && len(depFiles) == 0 && len(hints) == 0 {
		return nil
	}

	packageManagers := meta.PackageManagers
	if hasPipEvidence(depFiles) && !containsString(packageManagers, "pip") {
		packageManagers = append(packageManagers, "pip")
	}

	var installInstructions []string
	if containsString(packageManagers, "pip") {
		if req := mainRequirementsFile(depFiles); req != "" {
			installInstructions = append(installInstructions, "pip install -r "+req)
		}
	}
	switch {
	case hasDepFile(depFiles, "setup.py"):
		installInstructions = append(installInstructions, "pip install -e .")
	case hasDepFile(depFiles, "pyproject.toml"):
		installInstructions = append(installInstructions, "pip install .")
	}

	info := &evidence.PythonInfo{
		VersionHints:         hints,
		PackageManagers:      packageManagers,
		DependencyFiles:      sortDepFiles(depFiles),
		EnvSetupInstructions: []string{},
		InstallInstructions:  installInstructions,
	}

	if pin, ok := version.ReducePins(hints); ok {
		info.VersionPin = pin
	} else if len(hints) > 0 {
		info.VersionComment = version.Classify(hints[0]).Comment
	}
	return info
}

// sortDepFiles moves the root requirements.txt first; the rest keep
// classification order.
func sortDepFiles(depFiles []evidence.EnvFile) []evidence.EnvFile {
	out := make([]evidence.EnvFile, 0, len(depFiles))
	for _, d := range depFiles {
		if d.Path == "requirements.txt" {
			out = append(out, d)
		}
	}
	for _, d := range depFiles {
		if d.Path != "requirements.txt" {
			out = append(out, d)
		}
	}
	return out
}

// pythonDepFiles keeps only manifests that describe a Python
// environment; other ecosystems go through their own extractors.
func pythonDepFiles(depFiles []evidence.EnvFile) []evidence.EnvFile {
	var out []evidence.EnvFile
	for _, d := range depFiles {
		name := strings.ToLower(path.Base(d.Path))
		if strings.HasPrefix(name, "requirements") &&
			(strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".in")) {
			out = append(out, d)
			continue
		}
		switch name {
		case "pyproject.toml", "setup.py", "setup.cfg", "pipfile", "pipfile.lock",
			"poetry.lock", "uv.lock", "environment.yml", "environment.yaml", "conda.yaml":
			out = append(out, d)
		}
	}
	return out
}

func hasPipEvidence(depFiles []evidence.EnvFile) bool {
	for _, d := range depFiles {
		name := strings.ToLower(path.Base(d.Path))
		if strings.HasPrefix(d.Path, "requirements") {
			return true
		}
		switch name {
		case "setup.py", "setup.cfg", "pyproject.toml":
			return true
		}
	}
	return false
}

// mainRequirementsFile picks the requirements file install instructions
// reference: the root requirements.txt when present, else the first
// requirements-prefixed path.
func mainRequirementsFile(depFiles []evidence.EnvFile) string {
	first := ""
	for _, d := range depFiles {
		if !strings.HasPrefix(d.Path, "requirements") {
			continue
		}
		if d.Path == "requirements.txt" {
			return d.Path
		}
		if first == "" {
			first = d.Path
		}
	}
	return first
}

func hasDepFile(depFiles []evidence.EnvFile, lowerName string) bool {
	return depPath(depFiles, lowerName) != ""
}

func depPath(depFiles []evidence.EnvFile, lowerName string) string {
	for _, d := range depFiles {
		if strings.ToLower(path.Base(d.Path)) == lowerName {
			return d.Path
		}
	}
	return ""
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
