package extract

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"onboardbuilder/internal/evidence"
	"onboardbuilder/internal/util/sets"
)

// pmStrategy describes one Node.js package manager: how to detect it from
// lockfiles and which install command it produces. Strategies are tried in
// priority order; npm is last because its lockfile presence also decides
// between `npm ci` and `npm install`.
type pmStrategy struct {
	name      string
	lockfiles []string
	install   func(hasLockfile bool) string
}

var pmStrategies = []pmStrategy{
	{name: "pnpm", lockfiles: []string{"pnpm-lock.yaml"}, install: constInstall("pnpm install")},
	{name: "yarn", lockfiles: []string{"yarn.lock"}, install: constInstall("yarn install")},
	{name: "bun", lockfiles: []string{"bun.lockb"}, install: constInstall("bun install")},
	{name: "npm", lockfiles: []string{"package-lock.json", "npm-shrinkwrap.json"}, install: func(hasLockfile bool) string {
		if hasLockfile {
			return "npm ci"
		}
		return "npm install"
	}},
}

func constInstall(cmd string) func(bool) string {
	return func(bool) string { return cmd }
}

type packageJSON struct {
	PackageManager string            `json:"packageManager"`
	Scripts        map[string]string `json:"scripts"`
}

// detectLockfile reports whether any of the names exists next to the
// active package.json, falling back to a repo-wide basename match.
func detectLockfile(allFiles []string, names sets.Set[string], pkgDir string, lockfiles []string) bool {
	prefix := ""
	if pkgDir != "" {
		prefix = strings.TrimSuffix(pkgDir, "/") + "/"
	}
	for _, lf := range lockfiles {
		expected := prefix + lf
		for _, f := range allFiles {
			if normRel(f) == expected {
				return true
			}
		}
	}
	for _, lf := range lockfiles {
		if names.Has(lf) {
			return true
		}
	}
	return false
}

// NodeCommands extracts deterministic Node.js commands from package.json
// plus lockfiles. The root package.json is preferred; otherwise the
// lexicographically smallest wins. No package manager evidence means no
// commands at all.
func NodeCommands(root string, allFiles []string, maxBytes int64) map[string][]evidence.CommandInfo {
	var norm []string
	names := sets.New[string]()
	var pkgCandidates []string
	for _, f := range allFiles {
		p := normRel(f)
		norm = append(norm, p)
		names.Add(baseName(p))
		if baseName(p) == "package.json" {
			pkgCandidates = append(pkgCandidates, p)
		}
	}
	if len(pkgCandidates) == 0 {
		return nil
	}

	sort.Strings(pkgCandidates)
	pkgRel := pkgCandidates[0]
	for _, c := range pkgCandidates {
		if c == "package.json" {
			pkgRel = c
			break
		}
	}
	pkgDir := filepath.ToSlash(filepath.Dir(pkgRel))
	if pkgDir == "." {
		pkgDir = ""
	}

	raw, ok := readCapped(filepath.Join(root, filepath.FromSlash(pkgRel)), maxBytes)
	if !ok {
		return nil
	}
	var data packageJSON
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}

	strategy, hasLockfile := selectStrategy(data, norm, names, pkgDir)
	if strategy == nil {
		return nil
	}

	out := make(map[string][]evidence.CommandInfo)
	out["install"] = []evidence.CommandInfo{{
		Command:     strategy.install(hasLockfile),
		Source:      pkgRel + ":lockfile",
		Description: "Install dependencies using the detected Node.js package manager.",
		Confidence:  "derived",
	}}

	for _, key := range []string{"dev", "start", "test", "lint", "format"} {
		if _, ok := data.Scripts[key]; !ok {
			continue
		}
		out[key] = append(out[key], evidence.CommandInfo{
			Command:     strategy.name + " run " + key,
			Source:      pkgRel + ":scripts." + key,
			Description: "Run the '" + key + "' script from package.json.",
			Confidence:  "derived",
		})
	}
	return out
}

// selectStrategy picks the package manager: an explicit packageManager
// field wins, then lockfile detection in priority order.
func selectStrategy(data packageJSON, allFiles []string, names sets.Set[string], pkgDir string) (*pmStrategy, bool) {
	if pm := strings.TrimSpace(data.PackageManager); pm != "" {
		name := strings.ToLower(strings.TrimSpace(strings.SplitN(pm, "@", 2)[0]))
		for i := range pmStrategies {
			if pmStrategies[i].name == name {
				hasLock := detectLockfile(allFiles, names, pkgDir, pmStrategies[i].lockfiles)
				return &pmStrategies[i], hasLock
			}
		}
	}

	for i := range pmStrategies {
		if detectLockfile(allFiles, names, pkgDir, pmStrategies[i].lockfiles) {
			return &pmStrategies[i], true
		}
	}
	return nil, false
}
