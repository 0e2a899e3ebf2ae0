// Package tooling detects non-Python toolchains, frameworks, and notebook
// usage from evidence files. Detection is static only: no subprocess
// calls, no network, and beyond the size-capped reads in framework and
// hygiene probes, no file content inspection.
package tooling

import (
	"path"
	"sort"
	"strings"

	"onboardbuilder/internal/evidence"
)

// toolingEvidence maps an ecosystem to the filenames that betray it.
// Reported detections carry evidence files only, never commands.
var toolingEvidence = []struct {
	name  string
	files []string
	note  string
}{
	{
		name: "Node.js",
		files: []string{
			"package.json", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
			".nvmrc", ".node-version", ".npmrc",
		},
		note: "Node.js tooling detected. See package.json for details.",
	},
	{
		name:  "Go",
		files: []string{"go.mod", "go.sum"},
		note:  "Go module detected.",
	},
	{
		name:  "Rust",
		files: []string{"Cargo.toml", "Cargo.lock"},
		note:  "Rust crate detected.",
	},
	{
		name:  "Ruby",
		files: []string{"Gemfile", "Gemfile.lock", ".ruby-version"},
		note:  "Ruby project detected.",
	},
	{
		name: "Java",
		files: []string{
			"pom.xml", "build.gradle", "build.gradle.kts",
			"settings.gradle", "settings.gradle.kts",
		},
		note: "Java/JVM project detected.",
	},
	{
		name: "Docker",
		files: []string{
			"Dockerfile", "docker-compose.yml", "docker-compose.yaml",
			"compose.yml", "compose.yaml",
		},
		note: "Docker configuration detected.",
	},
}

// DetectOther reports non-Python toolchains present in the file list.
// Evidence files are sorted and the detections ordered by ecosystem name.
func DetectOther(allFiles []string) []evidence.Tooling {
	// first occurrence per lowercase basename
	byName := make(map[string]string)
	for _, f := range allFiles {
		low := strings.ToLower(path.Base(f))
		if _, ok := byName[low]; !ok {
			byName[low] = f
		}
	}

	var out []evidence.Tooling
	for _, reg := range toolingEvidence {
		var found []string
		for _, ev := range reg.files {
			if p, ok := byName[strings.ToLower(ev)]; ok {
				found = append(found, p)
			}
		}
		if len(found) == 0 {
			continue
		}
		sort.Strings(found)
		out = append(out, evidence.Tooling{
			Name:          reg.name,
			EvidenceFiles: found,
			Note:          reg.note,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
