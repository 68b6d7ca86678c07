// Package commentscan walks a file's line array and yields successive
// comment regions under a given delimiter set, the way
// original_source/licblock.py's find_next_comment does.
package commentscan

import (
	"regexp"
	"strings"

	"github.com/gerv/slic/domain"
)

// MaxLinesScanned bounds how far into a file the scanner will look before
// giving up, to avoid quadratic behavior on very long files full of
// comments (spec recommendation: first ~400 lines of content).
const MaxLinesScanned = 400

// MaxGapLines is a gap length, in lines, measured from the last
// license-bearing region. Neither NextComment nor its callers consult it:
// scanning stops only at MaxLinesScanned, however far apart regions are.
const MaxGapLines = 200

// NextComment returns the next comment region at or after cursor under
// delims, or ok=false once there are no more comments before
// MaxLinesScanned. end is exclusive and becomes the cursor for the next
// call.
func NextComment(lines []string, cursor int, delims domain.DelimiterSet) (start, end int, ok bool) {
	if delims.IsWholeFile() {
		if cursor > 0 {
			return 0, 0, false
		}
		return 0, len(lines), true
	}

	limit := len(lines)
	if limit > MaxLinesScanned {
		limit = MaxLinesScanned
	}

	if delims.IsBlockComment() {
		return nextBlockComment(lines, cursor, limit, delims)
	}
	return nextLineComment(lines, cursor, limit, delims[0])
}

func nextLineComment(lines []string, cursor, limit int, prefix string) (start, end int, ok bool) {
	startRe := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(prefix))
	// Negative-lookahead isn't available in RE2, so the "end of block"
	// test - a non-blank line that is not prefixed - is done procedurally
	// below instead of via a compiled regex, matching the *effect* of
	// licblock.py's `^\s*(?!%s|\s).+$` lookahead trick.

	start = -1
	for i := cursor; i < limit; i++ {
		if startRe.MatchString(lines[i]) {
			start = i
			break
		}
	}
	if start == -1 {
		return -1, 0, false
	}

	end = start
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if startRe.MatchString(line) || isBlank(line) {
			end = i + 1
			continue
		}
		// Non-blank, non-prefixed line: the block ended at the previous
		// prefixed/blank line.
		break
	}

	return start, end, true
}

func nextBlockComment(lines []string, cursor, limit int, delims domain.DelimiterSet) (start, end int, ok bool) {
	opener, closer := delims[0], delims[2]

	start = -1
	for i := cursor; i < limit; i++ {
		if strings.Contains(lines[i], opener) {
			start = i
			break
		}
	}
	if start == -1 {
		return -1, 0, false
	}

	foundEnd := false
	end = start
	for i := start; i < len(lines); i++ {
		end = i
		if strings.Contains(lines[i], closer) {
			foundEnd = true
			break
		}
	}
	_ = foundEnd // three-char sets always advance end by one below

	end++

	start, end = coalesceAdjacentSingleLine(lines, start, end, opener, closer)

	return start, end, true
}

// coalesceAdjacentSingleLine greedily merges immediately-following
// single-line "opener ... closer" comments into one region, when the
// first region itself opened and closed on one line.
func coalesceAdjacentSingleLine(lines []string, start, end int, opener, closer string) (int, int) {
	if end-start != 1 {
		return start, end
	}
	if !(strings.Contains(lines[start], opener) && strings.Contains(lines[start], closer)) {
		return start, end
	}

	for end < len(lines) {
		line := lines[end]
		if strings.Contains(line, opener) && strings.Contains(line, closer) {
			end++
			continue
		}
		break
	}

	return start, end
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
