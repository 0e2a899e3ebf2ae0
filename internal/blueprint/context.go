// Package blueprint compiles an analysis into a deterministic section
// list and renders it to ONBOARDING.md markdown. Rendering is verbatim:
// the same analysis always produces the same bytes.
package blueprint

import (
	"path"
	"strings"

	"onboardbuilder/internal/evidence"
)

// Context carries everything a section builder may read.
type Context struct {
	Analysis  *evidence.Analysis
	Overrides evidence.CommandOverrides
}

// NewContext builds a compilation context. A nil analysis is replaced by
// an empty one so builders never nil-check the bag itself.
func NewContext(analysis *evidence.Analysis, overrides *evidence.CommandOverrides) *Context {
	if analysis == nil {
		analysis = &evidence.Analysis{}
	}
	ctx := &Context{Analysis: analysis}
	if overrides != nil {
		ctx.Overrides = *overrides
	}
	return ctx
}

func (c *Context) repoPath() string {
	if rp := strings.TrimSpace(c.Analysis.RepoPath); rp != "" {
		return rp
	}
	return "."
}

func (c *Context) primaryTooling() string {
	return strings.TrimSpace(c.Analysis.PrimaryTooling)
}

// pythonEvidencePresent reports whether the python block carries any
// actual evidence. An empty block counts as not detected.
func (c *Context) pythonEvidencePresent() bool {
	py := c.Analysis.Python
	if py == nil {
		return false
	}
	return len(py.DependencyFiles) > 0 ||
		len(py.VersionHints) > 0 ||
		len(py.InstallInstructions) > 0 ||
		len(py.EnvSetupInstructions) > 0 ||
		len(py.PackageManagers) > 0
}

// nodeEvidenceBasenames returns the sorted-input basenames of the
// Node.js tooling evidence files, normalized to forward slashes.
func (c *Context) nodeEvidenceBasenames() map[string]bool {
	basenames := make(map[string]bool)
	for _, t := range c.Analysis.OtherTooling {
		name := strings.ToLower(strings.TrimSpace(t.Name))
		if name != "node.js" && name != "nodejs" && name != "node" {
			continue
		}
		for _, p := range t.EvidenceFiles {
			p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
			if p == "" {
				continue
			}
			basenames[path.Base(strings.TrimPrefix(p, "/"))] = true
		}
	}
	return basenames
}
