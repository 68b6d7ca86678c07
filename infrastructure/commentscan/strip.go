package commentscan

import (
	"regexp"
	"strings"

	"github.com/gerv/slic/domain"
)

// Strip removes prefix/continuation/suffix markers from a comment region,
// returning the inner text lines. It always returns exactly as many lines
// as it received, preserving index identity so the boundary extractor's
// start/end line numbers still address the original positions.
func Strip(regionLines []string, delims domain.DelimiterSet) []string {
	if len(regionLines) == 0 {
		return regionLines
	}
	if delims.IsWholeFile() {
		return append([]string(nil), regionLines...)
	}

	out := append([]string(nil), regionLines...)

	var opener, continuation, closer string
	switch {
	case delims.IsBlockComment():
		opener, continuation, closer = delims[0], delims[1], delims[2]
	default:
		opener, continuation, closer = delims[0], delims[0], ""
	}

	prefixRe := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(opener) + `\s?`)

	// If the closer is present on the first line and there's more than one
	// line, treat this as a per-line "opener ... closer" pattern (the
	// single-line-comment-per-line style some coalesced regions use) and
	// strip the opener as the continuation marker on every line.
	if closer != "" && len(out) > 1 && strings.Contains(out[0], closer) {
		for i := range out {
			out[i] = prefixRe.ReplaceAllString(out[i], "")
			out[i] = stripSuffix(out[i], closer)
		}
		return out
	}

	out[0] = prefixRe.ReplaceAllString(out[0], "")

	if closer != "" {
		out[len(out)-1] = stripSuffix(out[len(out)-1], closer)
	}

	contRe := regexp.MustCompile(`^\s*(?:` + regexp.QuoteMeta(continuation) + `)+\s?`)
	trailingRe := regexp.MustCompile(`[\s*/#]*$`)
	out[0] = trailingRe.ReplaceAllString(out[0], "")
	for i := 1; i < len(out); i++ {
		out[i] = contRe.ReplaceAllString(out[i], "")
		out[i] = trailingRe.ReplaceAllString(out[i], "")
	}

	return out
}

func stripSuffix(line, closer string) string {
	re := regexp.MustCompile(`\s*` + regexp.QuoteMeta(closer))
	return re.ReplaceAllString(line, "")
}
