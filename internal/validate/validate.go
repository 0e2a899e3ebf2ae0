// Package validate checks a rendered ONBOARDING.md against the format
// rules the blueprint renderer guarantees. It exists so externally
// produced or hand-edited documents can be verified independently of
// the renderer.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Violation is a single broken rule. Line is 1-based and zero for
// document-level findings.
type Violation struct {
	Rule    string `json:"rule"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", v.Rule, v.Line, v.Message)
	}
	return v.Rule + ": " + v.Message
}

// Options controls optional rule relaxations.
type Options struct {
	// AllowProvenance permits "source:" / "evidence:" substrings.
	AllowProvenance bool
}

// requiredHeadings must each appear exactly once, in this order.
// "## Other tooling detected" and "## Analyzer notes" are optional.
var requiredHeadings = []string{
	"# ONBOARDING.md",
	"## Overview",
	"## Environment setup",
	"## Install dependencies",
	"## Run / develop locally",
	"## Run tests",
	"## Lint / format",
	"## Dependency files detected",
	"## Useful configuration files",
	"## Useful docs",
}

var commandSections = map[string]bool{
	"## Install dependencies":  true,
	"## Run / develop locally": true,
	"## Run tests":             true,
	"## Lint / format":         true,
}

var (
	repoPathRe    = regexp.MustCompile(`^Repo path:\s+\S+`)
	backtickRe    = regexp.MustCompile("`[^`]+`")
	commandLikeRe = regexp.MustCompile(`^(pip|python|make|tox|gh|npm|yarn|go|cargo|pytest|ruff|mypy|bash|sh|\./)\b`)
	afterCmdRe    = regexp.MustCompile("(`[^`]+`)\\s*(.*)")
	provenanceRe  = regexp.MustCompile(`(?i)\b(source|evidence):`)
	emptyNoteRe   = regexp.MustCompile(`(?i)\(empty\)`)
)

var venvCommands = []string{"python -m venv .venv", "python3 -m venv .venv"}

// Document runs every rule against the markdown content and returns all
// violations found, in rule order.
func Document(content string, opts Options) []Violation {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	var out []Violation
	out = append(out, checkHeadings(content)...)
	out = append(out, checkRepoPath(lines)...)
	out = append(out, checkNoPinPhrase(lines)...)
	out = append(out, checkVenvLabel(lines)...)
	out = append(out, checkCommandFormat(lines)...)
	out = append(out, checkAnalyzerNotes(lines)...)
	out = append(out, checkInstallPolicy(lines)...)
	if !opts.AllowProvenance {
		out = append(out, checkProvenance(lines)...)
	}
	return out
}

// extractHeadings parses the markdown and returns every ATX heading
// reassembled as "#... text", in document order.
func extractHeadings(content string) []string {
	source := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var headings []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, isHeading := n.(*ast.Heading)
		if !isHeading {
			return ast.WalkContinue, nil
		}
		var sb strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, isText := c.(*ast.Text); isText {
				sb.Write(t.Segment.Value(source))
			}
		}
		headings = append(headings, strings.Repeat("#", h.Level)+" "+strings.TrimSpace(sb.String()))
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func checkHeadings(content string) []Violation {
	required := make(map[string]bool, len(requiredHeadings))
	for _, h := range requiredHeadings {
		required[h] = true
	}

	var found []string
	for _, h := range extractHeadings(content) {
		if required[h] {
			found = append(found, h)
		}
	}

	if equalStrings(found, requiredHeadings) {
		return nil
	}

	seen := make(map[string]bool, len(found))
	for _, h := range found {
		seen[h] = true
	}
	var missing []string
	for _, h := range requiredHeadings {
		if !seen[h] {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return []Violation{{
			Rule:    "V1",
			Message: "missing required headings: " + strings.Join(missing, ", "),
		}}
	}
	return []Violation{{
		Rule:    "V1",
		Message: "required headings duplicated or out of order",
	}}
}

func checkRepoPath(lines []string) []Violation {
	for i, line := range lines {
		if strings.TrimSpace(line) != "## Overview" {
			continue
		}
		for j := i + 1; j < len(lines) && j <= i+5; j++ {
			if repoPathRe.MatchString(strings.TrimSpace(lines[j])) {
				return nil
			}
			if strings.HasPrefix(lines[j], "#") {
				break
			}
		}
		return []Violation{{
			Rule:    "V2",
			Line:    i + 1,
			Message: "missing or empty 'Repo path: <path>' line under ## Overview",
		}}
	}
	return nil
}

// checkNoPinPhrase requires the no-pin phrase to stand alone; prefixing
// it with "Python version:" turns a status line into a fake pin.
func checkNoPinPhrase(lines []string) []Violation {
	var out []Violation
	for i, line := range lines {
		if strings.Contains(line, "No Python version pin detected.") &&
			strings.Contains(line, "Python version:") {
			out = append(out, Violation{
				Rule:    "V3",
				Line:    i + 1,
				Message: "no-pin phrase must be exact and standalone: " + strings.TrimSpace(line),
			})
		}
	}
	return out
}

func checkVenvLabel(lines []string) []Violation {
	var out []Violation
	for i, line := range lines {
		if !containsAny(line, venvCommands) {
			continue
		}
		labeled := false
		for j := max(0, i-3); j < i; j++ {
			if strings.Contains(lines[j], "(Generic suggestion)") {
				labeled = true
				break
			}
		}
		if !labeled {
			out = append(out, Violation{
				Rule:    "V4",
				Line:    i + 1,
				Message: "venv command without '(Generic suggestion)' label within 3 lines above",
			})
		}
	}
	return out
}

func checkCommandFormat(lines []string) []Violation {
	var out []Violation
	currentSection := ""
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if commandSections[stripped] {
			currentSection = stripped
			continue
		}
		if strings.HasPrefix(line, "#") {
			currentSection = ""
			continue
		}
		if currentSection == "" {
			continue
		}
		if !strings.HasPrefix(stripped, "*") && !strings.HasPrefix(stripped, "-") {
			continue
		}

		content := strings.TrimSpace(strings.TrimLeft(stripped, "*-"))
		if content == "" || content == "No explicit commands detected." {
			continue
		}

		if !backtickRe.MatchString(content) {
			if commandLikeRe.MatchString(strings.ToLower(content)) {
				out = append(out, Violation{
					Rule:    "V5",
					Line:    i + 1,
					Message: "command must be wrapped in backticks: " + content,
				})
			}
		}

		if m := afterCmdRe.FindStringSubmatch(content); m != nil {
			desc := strings.TrimSpace(m[2])
			if desc != "" && (!strings.HasPrefix(desc, "(") || !strings.HasSuffix(desc, ")")) {
				out = append(out, Violation{
					Rule:    "V5",
					Line:    i + 1,
					Message: "description must be in parentheses: " + desc,
				})
			}
		}
	}
	return out
}

func checkAnalyzerNotes(lines []string) []Violation {
	for i, line := range lines {
		if strings.TrimSpace(line) != "## Analyzer notes" {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.HasPrefix(lines[j], "#") {
				break
			}
			stripped := strings.TrimSpace(lines[j])
			if !strings.HasPrefix(stripped, "*") && !strings.HasPrefix(stripped, "-") {
				continue
			}
			note := strings.TrimSpace(strings.TrimLeft(stripped, "*-"))
			if note != "" && !emptyNoteRe.MatchString(note) {
				return nil
			}
		}
		return []Violation{{
			Rule:    "V6",
			Line:    i + 1,
			Message: "## Analyzer notes section exists but is empty or placeholder-only",
		}}
	}
	return nil
}

func checkInstallPolicy(lines []string) []Violation {
	inInstall := false
	count := 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "## Install dependencies" {
			inInstall = true
		} else if strings.HasPrefix(line, "#") {
			inInstall = false
		}
		if inInstall && strings.Contains(line, "pip install -r") {
			count++
		}
	}
	if count > 1 {
		return []Violation{{
			Rule:    "V7",
			Message: fmt.Sprintf("multiple 'pip install -r' lines found (%d), max 1 allowed", count),
		}}
	}
	return nil
}

func checkProvenance(lines []string) []Violation {
	var out []Violation
	for i, line := range lines {
		if provenanceRe.MatchString(line) {
			out = append(out, Violation{
				Rule:    "V8",
				Line:    i + 1,
				Message: "provenance marker found: " + strings.TrimSpace(line),
			})
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
