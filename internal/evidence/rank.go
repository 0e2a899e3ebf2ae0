package evidence

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"onboardbuilder/internal/config"
)

// Onboarding keywords that boost a doc path.
var docKeywords = []string{"quickstart", "install", "setup", "tutorial"}

// Path segments that mark fixture/example/scripting placement; evidence
// found there is penalized in every category that checks them.
var docPenaltyDirs = []string{"tests/", "test/", "examples/", "scripts/", "src/"}
var depPenaltyDirs = []string{"tests/", "test/", "examples/", "scripts/"}

// ConfigScore rates a configuration file path. Additive buckets only;
// the numbers live in config.Scoring so they stay in one place.
func ConfigScore(s config.Scoring, p string) int {
	p = normalizePath(p)
	name := strings.ToLower(path.Base(p))

	score := s.ConfigBase
	if strings.HasPrefix(p, ".github/workflows/") {
		score = s.ConfigWorkflow
	}
	if exact, ok := s.ConfigExact[name]; ok && exact > score {
		score = exact
	}
	if !strings.Contains(p, "/") {
		score += s.ConfigRootBonus
	}
	return score
}

// DocScore rates a documentation path.
func DocScore(s config.Scoring, p string) int {
	p = normalizePath(p)
	lower := strings.ToLower(p)
	name := strings.ToLower(path.Base(p))

	score := s.DocBase

	if !strings.Contains(p, "/") && hasAnyPrefix(name, docRootPrefixes) {
		score = s.DocRootLanding
	}

	if score < s.DocRootLanding {
		switch {
		case strings.HasPrefix(p, "docs/") && !strings.Contains(p[5:], "/"):
			score = s.DocDocsTop
		case containsAny(lower, docKeywords):
			score = s.DocKeyword
		case strings.HasPrefix(p, "docs/"):
			score = s.DocDocsNested
		}
	}

	if strings.Contains(lower, "admin") {
		score += s.DocAdminDelta
	}
	if containsAny(lower, docPenaltyDirs) {
		score += s.DocTreeDelta
	}
	return score
}

// DepScore rates a dependency manifest path.
func DepScore(s config.Scoring, p string) int {
	p = normalizePath(p)
	lower := strings.ToLower(p)
	name := strings.ToLower(path.Base(p))

	score := s.DepBase
	isManifest := name == "pyproject.toml" || strings.HasPrefix(name, "requirements")
	if isManifest {
		if strings.Contains(p, "/") {
			score = s.DepNestedManifest
		} else {
			score = s.DepRootManifest
		}
	}

	if containsAny(lower, depPenaltyDirs) {
		score += s.DepTreeDelta
	}
	return score
}

// RankAndCap sorts items by (score DESC, path ASC) and truncates the list
// to cap. Capping happens strictly after ranking. When the list is cut, a
// fixed-format note records the cap and the pre-truncation total.
func RankAndCap[T any](items []T, pathOf func(T) string, score func(string) int, cap int, label string) ([]T, string) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := score(pathOf(items[i])), score(pathOf(items[j]))
		if si != sj {
			return si > sj
		}
		return pathOf(items[i]) < pathOf(items[j])
	})

	if cap <= 0 || len(items) <= cap {
		return items, ""
	}
	note := fmt.Sprintf("%s list truncated to %d entries (total=%d)", label, cap, len(items))
	return items[:cap], note
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
