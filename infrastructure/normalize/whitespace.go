// Package normalize collapses whitespace into the single-line comparable
// form the classifier and fingerprinter need.
package normalize

import "strings"

// Collapse turns every maximal run of whitespace (space, tab, CR, LF, FF)
// into a single ASCII space and trims the ends. Pure function, no I/O.
func Collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	wroteAny := false
	for _, r := range s {
		if isWhitespace(r) {
			inSpace = true
			continue
		}
		if inSpace && wroteAny {
			b.WriteByte(' ')
		}
		inSpace = false
		wroteAny = true
		b.WriteRune(r)
	}

	return b.String()
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\f':
		return true
	default:
		return false
	}
}

// CollapseLines joins lines with a single space each and applies Collapse,
// producing the single-line normalized form a comment is classified
// against.
func CollapseLines(lines []string) string {
	return Collapse(strings.Join(lines, " "))
}
