package blueprint

import (
	"log/slog"
	"strings"

	"onboardbuilder/internal/config"
	"onboardbuilder/internal/logfields"
)

// FormatName identifies the blueprint wire format.
const FormatName = "onboarding_blueprint_v2"

// Section is one heading plus its rendered lines.
type Section struct {
	ID      string   `json:"id"`
	Heading string   `json:"heading"`
	Lines   []string `json:"lines"`
}

// Render carries the verbatim markdown for the whole document.
type Render struct {
	Mode     string `json:"mode"`
	Markdown string `json:"markdown"`
}

// Blueprint is the compiled document: ordered sections plus the
// markdown they render to.
type Blueprint struct {
	Format   string    `json:"format"`
	Rendered Render    `json:"render"`
	Sections []Section `json:"sections"`
}

type sectionSpec struct {
	id          string
	heading     string
	build       func(*Context) []string
	conditional bool // omit the section entirely when build returns nothing
}

// Compiler turns an analysis context into a Blueprint. Display caps come
// from configuration; everything else is fixed by the format.
type Compiler struct {
	notebookDirsCap  int
	evidenceFilesCap int
}

// NewCompiler builds a compiler using the display limits from cfg.
func NewCompiler(cfg *config.Config) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Compiler{
		notebookDirsCap:  cfg.Limits.NotebookDirsCap,
		evidenceFilesCap: cfg.Limits.EvidenceFilesCap,
	}
}

func (c *Compiler) registry() []sectionSpec {
	return []sectionSpec{
		{id: "title", heading: "# ONBOARDING.md", build: func(*Context) []string { return nil }},
		{id: "overview", heading: "## Overview", build: func(ctx *Context) []string {
			return []string{"Repo path: " + ctx.repoPath()}
		}},
		{id: "env_setup", heading: "## Environment setup", build: c.envSetupLines},
		{id: "install", heading: "## Install dependencies", build: c.installLines},
		{id: "run_local", heading: "## Run / develop locally", build: c.devLines},
		{id: "run_tests", heading: "## Run tests", build: c.testLines},
		{id: "lint_format", heading: "## Lint / format", build: c.lintFormatLines},
		{id: "other_tooling", heading: "## Other tooling detected", build: c.otherToolingLines, conditional: true},
		{id: "analyzer_notes", heading: "## Analyzer notes", build: c.analyzerNotesLines, conditional: true},
		{id: "deps", heading: "## Dependency files detected", build: c.depLines},
		{id: "config", heading: "## Useful configuration files", build: c.configLines},
		{id: "docs", heading: "## Useful docs", build: c.docsLines},
	}
}

// Compile builds every section in registry order and renders the result.
// A builder panic drops only its own section; the document stays valid
// for the rest.
func (c *Compiler) Compile(ctx *Context) *Blueprint {
	if ctx == nil {
		ctx = NewContext(nil, nil)
	}

	var sections []Section
	for _, spec := range c.registry() {
		lines, ok := buildSection(spec, ctx)
		if !ok {
			continue
		}
		if spec.conditional && len(lines) == 0 {
			continue
		}
		if lines == nil {
			lines = []string{}
		}
		sections = append(sections, Section{ID: spec.id, Heading: spec.heading, Lines: lines})
	}

	bp := &Blueprint{
		Format:   FormatName,
		Sections: sections,
	}
	bp.Rendered = Render{Mode: "verbatim", Markdown: RenderMarkdown(bp)}
	return bp
}

func buildSection(spec sectionSpec, ctx *Context) (lines []string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("section builder failed, omitting section",
				logfields.Section(spec.id),
				slog.Any("panic", r),
			)
			lines, ok = nil, false
		}
	}()
	return spec.build(ctx), true
}

// RenderMarkdown renders sections to markdown: each heading followed by
// its lines, blocks separated by exactly one blank line, one trailing
// newline. Byte-identical output for identical input.
func RenderMarkdown(bp *Blueprint) string {
	if bp == nil || len(bp.Sections) == 0 {
		return ""
	}

	var blocks []string
	for _, sec := range bp.Sections {
		heading := strings.TrimRight(sec.Heading, " \t\n")
		if strings.TrimSpace(heading) == "" {
			continue
		}
		block := heading
		if len(sec.Lines) > 0 {
			clean := make([]string, 0, len(sec.Lines))
			for _, ln := range sec.Lines {
				clean = append(clean, strings.TrimRight(ln, " \t\n"))
			}
			block += "\n" + strings.Join(clean, "\n")
		}
		blocks = append(blocks, block)
	}

	out := strings.TrimRight(strings.Join(blocks, "\n\n"), " \t\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}
