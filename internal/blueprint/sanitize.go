package blueprint

import "strings"

// asciiPrintable drops every byte outside the printable ASCII range.
// Descriptions come from arbitrary repository files; anything else would
// make the rendered document depend on the source encoding.
func asciiPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 32 && r < 127 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ensureSingleTrailingPeriod strips any run of trailing periods and adds
// exactly one.
func ensureSingleTrailingPeriod(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	for strings.HasSuffix(s, ".") {
		s = strings.TrimRight(strings.TrimSuffix(s, "."), " \t")
	}
	return s + "."
}

// sanitizeDesc cleans description text only, never paths: printable
// ASCII, collapsed whitespace, provenance markers removed, exactly one
// trailing period. Returns "" when nothing survives.
func sanitizeDesc(desc string) string {
	cleaned := collapseWhitespace(asciiPrintable(desc))
	cleaned = strings.ReplaceAll(cleaned, "source:", "")
	cleaned = strings.ReplaceAll(cleaned, "evidence:", "")
	cleaned = collapseWhitespace(cleaned)
	if cleaned == "" {
		return ""
	}
	return ensureSingleTrailingPeriod(cleaned)
}
