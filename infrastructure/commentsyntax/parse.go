package commentsyntax

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gerv/slic/domain"
)

var (
	pipeSplitRe  = regexp.MustCompile(`\s*\|\s*`)
	commaSplitRe = regexp.MustCompile(`,\s*`)
)

// emptyDelimSentinel is the two-character token that stands in for "no
// comment framing" in the ini-style grammar (config.py's `'""'`).
const emptyDelimSentinel = `""`

// ParseDelimString parses the ini-style delimiter grammar into an ordered
// list of candidate DelimiterSets: alternatives are pipe-separated, a
// block-comment 3-tuple is comma-separated, and the literal `""` token
// means "whole file is one comment region".
func ParseDelimString(s string) ([]domain.DelimiterSet, error) {
	alts := pipeSplitRe.Split(s, -1)
	sets := make([]domain.DelimiterSet, 0, len(alts))

	for _, alt := range alts {
		alt = strings.TrimSpace(alt)
		switch {
		case alt == emptyDelimSentinel:
			sets = append(sets, domain.DelimiterSet{""})
		case strings.Contains(alt, ","):
			parts := commaSplitRe.Split(alt, -1)
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			if len(parts) != 3 {
				return nil, fmt.Errorf("commentsyntax: malformed 3-tuple delimiter %q", alt)
			}
			sets = append(sets, domain.DelimiterSet(parts))
		default:
			sets = append(sets, domain.DelimiterSet{alt})
		}
	}

	return sets, nil
}
