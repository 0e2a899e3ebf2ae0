// Package version classifies raw version-specifier strings as exact pins
// or ranges, and reduces multiple hints to a single reportable pin.
package version

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Classification is the result of classifying one version hint.
// Invariant: Pin is set only for an exact version with no operator or
// wildcard; otherwise only Comment is set.
type Classification struct {
	Pin     string `json:"pin,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// Specifier operators, longest first so prefix matching is unambiguous.
var operators = []string{"===", "==", "!=", "~=", ">=", "<=", ">", "<", "^"}

var exactVersionRe = regexp.MustCompile(`^\d+(\.\d+)+$`)

// IsExactVersion reports whether s is a bare dotted numeric version with at
// least two components ("3.14", "3.14.0"). Single numbers, wildcards and
// operator expressions do not qualify.
func IsExactVersion(s string) bool {
	return exactVersionRe.MatchString(s)
}

// Classify parses a version hint as a specifier expression.
//
// A bare dotted version with no operator is an implicit pin. A single
// exact equality with no wildcard is a pin. Everything else, including
// wildcards, bounds, compatible-release clauses and multi-clause
// expressions, yields a short human-readable comment and no pin.
func Classify(hint string) Classification {
	h := strings.TrimSpace(hint)
	if h == "" || h == "*" {
		return Classification{Comment: "Any Python version"}
	}

	if h[0] >= '0' && h[0] <= '9' {
		if strings.ContainsAny(h, "*x") && !exactVersionRe.MatchString(h) {
			// Wildcard shapes like "3.*" are never pins.
			return Classification{Comment: fmt.Sprintf("Version requirement: %s", h)}
		}
		return Classification{Pin: h}
	}

	clauses, ok := parseSpecifiers(h)
	if !ok {
		return Classification{Comment: fmt.Sprintf("Version requirement: %s", h)}
	}

	if len(clauses) == 1 {
		c := clauses[0]
		switch c.op {
		case "==", "===":
			if !strings.Contains(c.version, "*") {
				return Classification{Pin: c.version}
			}
		case "~=":
			if parts := strings.Split(c.version, "."); len(parts) >= 2 {
				base := strings.Join(parts[:len(parts)-1], ".")
				return Classification{Comment: fmt.Sprintf("Compatible with %s.x", base)}
			}
		}
	}

	return Classification{Comment: fmt.Sprintf("Requires Python %s", h)}
}

type specifier struct {
	op      string
	version string
}

func parseSpecifiers(expr string) ([]specifier, bool) {
	var out []specifier
	for _, raw := range strings.Split(expr, ",") {
		clause := strings.TrimSpace(raw)
		if clause == "" {
			return nil, false
		}
		matched := false
		for _, op := range operators {
			if strings.HasPrefix(clause, op) {
				v := strings.TrimSpace(strings.TrimPrefix(clause, op))
				if v == "" {
					return nil, false
				}
				out = append(out, specifier{op: op, version: v})
				matched = true
				break
			}
		}
		if !matched {
			return nil, false
		}
	}
	return out, len(out) > 0
}

// ReducePins reduces a set of hints to one reportable pin. Only exact
// versions qualify; ties break to the lexicographically smallest so the
// result is stable across runs. The second return is false when no hint
// is a pin.
func ReducePins(hints []string) (string, bool) {
	var pins []string
	for _, h := range hints {
		t := strings.TrimSpace(h)
		if IsExactVersion(t) {
			pins = append(pins, t)
		}
	}
	if len(pins) == 0 {
		return "", false
	}
	sort.Strings(pins)
	return pins[0], true
}
