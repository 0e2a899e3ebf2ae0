package blueprint

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"onboardbuilder/internal/evidence"
)

// otherToolingLines lists non-primary toolchains with their evidence
// files, sorted and truncated deterministically.
func (c *Compiler) otherToolingLines(ctx *Context) []string {
	tooling := ctx.Analysis.OtherTooling
	if len(tooling) == 0 {
		return nil
	}

	primary := ctx.primaryTooling()

	var valid []evidence.Tooling
	for _, t := range tooling {
		if t.Name == "" {
			continue
		}
		if primary != "" && t.Name == primary {
			continue
		}
		valid = append(valid, t)
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Name < valid[j].Name })

	var lines []string
	for _, t := range valid {
		if len(t.EvidenceFiles) == 0 {
			lines = append(lines, bullet+t.Name)
			continue
		}
		sorted := append([]string(nil), t.EvidenceFiles...)
		sort.Strings(sorted)

		shown := sorted
		if len(shown) > c.evidenceFilesCap {
			shown = shown[:c.evidenceFilesCap]
		}
		filesStr := strings.Join(shown, ", ")
		if len(sorted) > c.evidenceFilesCap {
			filesStr += fmt.Sprintf("; truncated to %d of %d", c.evidenceFilesCap, len(sorted))
		}
		lines = append(lines, bullet+t.Name+" ("+filesStr+")")
	}
	return lines
}

// primaryToolingEvidenceSummary picks up to two representative evidence
// filenames for the primary tooling note.
func primaryToolingEvidenceSummary(ctx *Context, tool string) string {
	switch strings.TrimSpace(tool) {
	case "Python":
		py := ctx.Analysis.Python
		if py == nil || len(py.DependencyFiles) == 0 {
			return ""
		}
		uniq := make(map[string]bool)
		for _, f := range py.DependencyFiles {
			if p := strings.TrimSpace(strings.ReplaceAll(f.Path, "\\", "/")); p != "" {
				uniq[path.Base(p)] = true
			}
		}
		if len(uniq) == 0 {
			return ""
		}
		prefer := []string{
			"pyproject.toml", "poetry.lock", "uv.lock",
			"requirements.txt", "setup.py", "setup.cfg",
		}
		var chosen []string
		for _, n := range prefer {
			if uniq[n] {
				chosen = append(chosen, n)
			}
		}
		if len(chosen) == 0 {
			for n := range uniq {
				chosen = append(chosen, n)
			}
			sort.Strings(chosen)
		}
		if len(chosen) > 2 {
			chosen = chosen[:2]
		}
		return strings.Join(chosen, ", ") + " present"

	case "Node.js":
		basenames := ctx.nodeEvidenceBasenames()
		if len(basenames) == 0 {
			return ""
		}
		prefer := []string{
			"package.json", "pnpm-lock.yaml", "yarn.lock", "package-lock.json",
			"npm-shrinkwrap.json", "bun.lockb", ".nvmrc", ".node-version",
		}
		var chosen []string
		for _, n := range prefer {
			if basenames[n] {
				chosen = append(chosen, n)
			}
		}
		if len(chosen) == 0 {
			for n := range basenames {
				chosen = append(chosen, n)
			}
			sort.Strings(chosen)
		}
		if len(chosen) > 2 {
			chosen = chosen[:2]
		}
		return strings.Join(chosen, ", ") + " present"
	}
	return ""
}

func primaryToolingNoteLine(ctx *Context) string {
	tool := ctx.primaryTooling()
	if tool == "" {
		return ""
	}
	if summary := primaryToolingEvidenceSummary(ctx, tool); summary != "" {
		return "Primary tooling: " + tool + " (" + summary + ")."
	}
	return "Primary tooling: " + tool + "."
}

func (c *Compiler) analyzerNotesLines(ctx *Context) []string {
	var out []string

	// Scope note when Python evidence is absent, except on Node-primary
	// repos where it reads as a defect.
	pt := ctx.primaryTooling()
	if !ctx.pythonEvidencePresent() && pt != "Node.js" {
		out = append(out, bullet+pythonOnlyScopeNote)
	}

	if line := primaryToolingNoteLine(ctx); line != "" {
		out = append(out, bullet+line)
	}

	var noteStrs []string
	for _, n := range ctx.Analysis.Notes {
		s := strings.TrimSpace(n)
		if s == "" {
			continue
		}
		noteStrs = append(noteStrs, s)
		cleaned := collapseWhitespace(asciiPrintable(s))
		if cleaned != "" && !strings.Contains(cleaned, "source:") && !strings.Contains(cleaned, "evidence:") {
			out = append(out, bullet+cleaned)
		}
	}

	var nbDirs []string
	for _, d := range ctx.Analysis.NotebookDirs {
		dd := strings.TrimSpace(d)
		if dd == "" {
			continue
		}
		if dd == "." {
			dd = "./"
		} else if !strings.HasSuffix(dd, "/") {
			dd += "/"
		}
		nbDirs = append(nbDirs, dd)
	}
	if len(nbDirs) > 0 {
		if !containsLine(noteStrs, notebookCentricNote) {
			out = append(out, bullet+notebookCentricNote)
		}
		if total := len(nbDirs); total > c.notebookDirsCap {
			out = append(out, bullet+fmt.Sprintf(
				"notebooks list truncated to %d entries (total=%d)", c.notebookDirsCap, total))
			nbDirs = nbDirs[:c.notebookDirsCap]
		}
		out = append(out, bullet+"Notebooks found in: "+strings.Join(nbDirs, ", "))
	}

	if line := frameworksLine(ctx.Analysis.Frameworks); line != "" {
		out = append(out, line)
	}
	return out
}

// frameworksLine renders a single aggregate line. The detection reason
// is shown only when there is one framework, or when every framework
// shares the same reason.
func frameworksLine(frameworks []evidence.Framework) string {
	var fw []evidence.Framework
	for _, f := range frameworks {
		if strings.TrimSpace(f.Name) != "" {
			fw = append(fw, f)
		}
	}
	if len(fw) == 0 {
		return ""
	}

	names := make([]string, 0, len(fw))
	var reasons []string
	for _, f := range fw {
		names = append(names, strings.TrimSpace(f.Name))
		if r := strings.TrimSpace(f.DetectionReason); r != "" {
			reasons = append(reasons, r)
		}
	}

	line := bullet + "Frameworks detected (from analyzer): " + strings.Join(names, ", ") + "."
	switch {
	case len(fw) == 1 && len(reasons) > 0:
		if r := sanitizeDesc(reasons[0]); r != "" {
			line += " (" + r + ")"
		}
	case len(fw) > 1 && len(reasons) > 0:
		uniform := true
		for _, r := range reasons {
			if r != reasons[0] {
				uniform = false
				break
			}
		}
		if uniform {
			if r := sanitizeDesc(reasons[0]); r != "" {
				line += " (" + r + ")"
			}
		}
	}
	return line
}

func (c *Compiler) depLines(ctx *Context) []string {
	py := ctx.Analysis.Python
	if py == nil || len(py.DependencyFiles) == 0 {
		return []string{noDepsLine}
	}
	var lines []string
	seen := make(map[string]bool)
	for _, f := range py.DependencyFiles {
		p := strings.TrimSpace(f.Path)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		lines = append(lines, describedPathLine(p, f.Description))
	}
	if len(lines) == 0 {
		return []string{noDepsLine}
	}
	return lines
}

func (c *Compiler) configLines(ctx *Context) []string {
	cfgs := ctx.Analysis.ConfigurationFiles
	if len(cfgs) == 0 {
		return []string{noConfigLine}
	}
	var lines []string
	seen := make(map[string]bool)
	for _, f := range cfgs {
		p := strings.TrimSpace(f.Path)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		lines = append(lines, describedPathLine(p, f.Description))
	}
	if len(lines) == 0 {
		return []string{noConfigLine}
	}
	return lines
}

func (c *Compiler) docsLines(ctx *Context) []string {
	docs := ctx.Analysis.Docs
	if len(docs) == 0 {
		return []string{noDocsLine}
	}
	var lines []string
	seen := make(map[string]bool)
	for _, d := range docs {
		p := strings.TrimSpace(d.Path)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		lines = append(lines, bullet+p)
	}
	if len(lines) == 0 {
		return []string{noDocsLine}
	}
	return lines
}

func describedPathLine(p, desc string) string {
	if strings.TrimSpace(desc) != "" {
		if d := sanitizeDesc(desc); d != "" {
			return bullet + p + " (" + d + ")"
		}
	}
	return bullet + p
}

func containsLine(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
