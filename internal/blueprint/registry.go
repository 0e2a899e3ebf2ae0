package blueprint

import (
	"strings"

	"onboardbuilder/internal/evidence"
)

const bullet = "* "

const (
	noCommandsLine = "No explicit commands detected."
	noDepsLine     = "No dependency files detected."
	noConfigLine   = "No useful configuration files detected."
	noDocsLine     = "No useful docs detected."

	notebookCentricNote = "Notebook-centric repo detected; core logic may reside in Jupyter notebooks."

	pythonOnlyScopeNote = "Python tooling not detected; this release generates Python-focused onboarding only."

	genericLabel = "(Generic suggestion)"

	noPythonPinLine = "No Python version pin detected."
	noAnyPinLine    = "No Python/Node.js version pin detected."
	noNodePinLine   = "No Node.js version pin file detected."
	nodePinPrefix   = "Node version pin file detected: "
)

var genericVenvLines = []string{
	genericLabel,
	bullet + "`python3 -m venv .venv` (Create virtual environment.)",
	bullet + "`source .venv/bin/activate` (Activate virtual environment.)",
}

// venvMarkers are the substrings that identify a virtualenv creation
// command; any line carrying one must be labeled as a generic suggestion.
var venvMarkers = []string{"python -m venv .venv", "python3 -m venv .venv"}

func nonEmptyStrings(xs []string) []string {
	var out []string
	for _, s := range xs {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func validCommands(cmds []evidence.CommandInfo) []evidence.CommandInfo {
	var out []evidence.CommandInfo
	for _, c := range cmds {
		if strings.TrimSpace(c.Command) != "" {
			out = append(out, c)
		}
	}
	return out
}

func dedupeCommands(cmds []evidence.CommandInfo) []evidence.CommandInfo {
	seen := make(map[string]bool, len(cmds))
	var out []evidence.CommandInfo
	for _, c := range cmds {
		cmd := strings.TrimSpace(c.Command)
		if cmd == "" || seen[cmd] {
			continue
		}
		seen[cmd] = true
		out = append(out, c)
	}
	return out
}

func formatCmd(c evidence.CommandInfo) string {
	cmd := strings.TrimSpace(c.Command)
	desc := c.Description
	if strings.TrimSpace(desc) == "" {
		desc = "No description provided by analyzer."
	}
	clean := sanitizeDesc(desc)
	if clean == "" {
		clean = "No description provided by analyzer."
	}
	return bullet + "`" + cmd + "` (" + clean + ")"
}

func descFor(cmd string, candidates []evidence.CommandInfo) string {
	for _, c := range candidates {
		if strings.TrimSpace(c.Command) == cmd {
			if d := strings.TrimSpace(c.Description); d != "" {
				return d
			}
		}
	}
	return ""
}

func firstIndexMatching(lines []string, markers []string) int {
	for i, ln := range lines {
		for _, m := range markers {
			if strings.Contains(ln, m) {
				return i
			}
		}
	}
	return -1
}

// normalizeEnvInstruction strips an existing bullet prefix and wraps the
// instruction in backticks unless it already is.
func normalizeEnvInstruction(s string) string {
	st := strings.TrimSpace(s)
	if strings.HasPrefix(st, "* ") || strings.HasPrefix(st, "- ") {
		st = strings.TrimSpace(st[2:])
	}
	if strings.HasPrefix(st, "`") && strings.HasSuffix(st, "`") {
		return st
	}
	return "`" + st + "`"
}

// nodeVersionPinLine reports Node version pin evidence. Grounded in the
// presence of .nvmrc / .node-version only; no file contents are read.
func nodeVersionPinLine(ctx *Context) string {
	basenames := ctx.nodeEvidenceBasenames()

	var pins []string
	if basenames[".nvmrc"] {
		pins = append(pins, ".nvmrc")
	}
	if basenames[".node-version"] {
		pins = append(pins, ".node-version")
	}
	if len(pins) > 0 {
		return nodePinPrefix + strings.Join(pins, ", ") + "."
	}
	return noNodePinLine
}

func (c *Compiler) envSetupLines(ctx *Context) []string {
	py := ctx.Analysis.Python
	var hints, envInstr []string
	if py != nil {
		hints = nonEmptyStrings(py.VersionHints)
		envInstr = nonEmptyStrings(py.EnvSetupInstructions)
	}

	var lines []string
	if len(hints) > 0 {
		lines = append(lines, "Python version: "+hints[0])
	} else {
		switch pt := ctx.primaryTooling(); {
		case pt == "Node.js":
			lines = append(lines, nodeVersionPinLine(ctx))
		case (pt == "" || pt == "Unknown") && !ctx.pythonEvidencePresent():
			lines = append(lines, noAnyPinLine)
		default:
			lines = append(lines, noPythonPinLine)
		}
	}

	if len(envInstr) > 0 {
		bullets := make([]string, 0, len(envInstr))
		for _, s := range envInstr {
			bullets = append(bullets, bullet+normalizeEnvInstruction(s))
		}
		if idx := firstIndexMatching(bullets, venvMarkers); idx >= 0 {
			bullets = append(bullets[:idx], append([]string{genericLabel}, bullets[idx:]...)...)
		}
		return append(lines, bullets...)
	}

	if len(hints) == 0 {
		// No venv snippet for repos without a python block at all.
		if py == nil {
			return lines
		}
		// No venv snippet when another toolchain is primary and no
		// python evidence exists; misleads Node-primary repos.
		if pt := ctx.primaryTooling(); pt != "" && pt != "Python" && !ctx.pythonEvidencePresent() {
			return lines
		}
		lines = append(lines, genericVenvLines...)
		return lines
	}

	// A pin exists and no explicit env instructions: nothing gratuitous.
	return lines
}

func (c *Compiler) installLines(ctx *Context) []string {
	cmds := validCommands(ctx.Analysis.Scripts.Install)
	if py := ctx.Analysis.Python; py != nil {
		for _, s := range py.InstallInstructions {
			if st := strings.TrimSpace(s); st != "" {
				cmds = append(cmds, evidence.CommandInfo{Command: st})
			}
		}
	}

	for _, cm := range cmds {
		if strings.TrimSpace(cm.Command) == "make install" {
			return []string{formatCmd(evidence.CommandInfo{
				Command:     "make install",
				Description: descFor("make install", cmds),
			})}
		}
	}

	// At most one "pip install -r" survives into the document.
	var filtered []evidence.CommandInfo
	pipRSeen := false
	for _, cm := range cmds {
		if strings.Contains(strings.TrimSpace(cm.Command), "pip install -r") {
			if pipRSeen {
				continue
			}
			pipRSeen = true
		}
		filtered = append(filtered, cm)
	}

	filtered = dedupeCommands(filtered)
	if len(filtered) == 0 {
		return []string{noCommandsLine}
	}
	out := make([]string, 0, len(filtered))
	for _, cm := range filtered {
		out = append(out, formatCmd(cm))
	}
	return out
}

func (c *Compiler) devLines(ctx *Context) []string {
	cmds := append(validCommands(ctx.Analysis.Scripts.Dev), validCommands(ctx.Analysis.Scripts.Start)...)
	cmds = append(cmds, validCommands(ctx.Overrides.DevCommands)...)
	return commandSection(dedupeCommands(cmds))
}

func (c *Compiler) testLines(ctx *Context) []string {
	cmds := append(validCommands(ctx.Analysis.Scripts.Test), validCommands(ctx.Analysis.TestSetup.Commands)...)
	cmds = append(cmds, validCommands(ctx.Overrides.TestCommands)...)
	return commandSection(dedupeCommands(cmds))
}

func (c *Compiler) lintFormatLines(ctx *Context) []string {
	cmds := append(validCommands(ctx.Analysis.Scripts.Lint), validCommands(ctx.Analysis.Scripts.Format)...)
	return commandSection(dedupeCommands(cmds))
}

func commandSection(cmds []evidence.CommandInfo) []string {
	if len(cmds) == 0 {
		return []string{noCommandsLine}
	}
	out := make([]string, 0, len(cmds))
	for _, cm := range cmds {
		out = append(out, formatCmd(cm))
	}
	return out
}
