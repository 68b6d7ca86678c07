// Package license implements the per-file orchestrator, the result
// aggregator, and the parallel scan coordinator: the three components
// that sit above the detection core (normalize/commentsyntax/commentscan/
// classifier/boundary) and turn "classify one comment" into "scan a
// codebase". Grounded on original_source/licblock.py's get_license_block
// driver loop and original_source/slic_results.py's result table.
package license

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gerv/slic/domain"
	"github.com/gerv/slic/infrastructure/boundary"
	"github.com/gerv/slic/infrastructure/classifier"
	"github.com/gerv/slic/infrastructure/commentscan"
	"github.com/gerv/slic/infrastructure/commentsyntax"
	"github.com/gerv/slic/infrastructure/normalize"
)

// maxBytesRead bounds how much of a file the orchestrator examines: a
// file's header comment is sufficient for license detection, and capping
// read size keeps worst-case per-file latency bounded.
const maxBytesRead = 32 * 1024

// Orchestrator runs the detection pipeline over a single file at a time.
// It is safe for concurrent use: Syntax and Taxonomy are immutable once
// built, and LicensesIn allocates no shared state.
type Orchestrator struct {
	Syntax   *commentsyntax.SyntaxTable
	Taxonomy *classifier.Taxonomy
	Log      domain.Logger
}

// NewOrchestrator wires an Orchestrator from its two immutable, shared
// dependencies. log may be nil, in which case a domain.NoopLogger is used.
func NewOrchestrator(syntax *commentsyntax.SyntaxTable, taxonomy *classifier.Taxonomy, log domain.Logger) *Orchestrator {
	if log == nil {
		log = domain.NoopLogger{}
	}
	return &Orchestrator{Syntax: syntax, Taxonomy: taxonomy, Log: log}
}

// LicensesIn reads path, resolves its comment syntax, and classifies every
// comment region it contains. When details is true, each hit also carries
// its extracted copyright lines and license text (§4.6); otherwise only
// the tag is populated, which is considerably cheaper for a full-tree
// scan that only needs dedup-by-tag.
func (o *Orchestrator) LicensesIn(path string, details bool) ([]domain.LicenseHit, error) {
	content, err := readBounded(path, maxBytesRead)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrIOFailure, path, err)
	}

	delimSets, ok := o.Syntax.Resolve(path)
	if !ok {
		o.Log.Info(fmt.Sprintf("%s: %s", domain.ErrUnknownFileType, path))
		return nil, nil
	}

	lines := strings.Split(content, "\n")

	for _, delims := range delimSets {
		hits := o.scanWithDelims(path, lines, delims, details)
		if len(hits) > 0 {
			return hits, nil
		}
		if delims.IsWholeFile() {
			break
		}
	}

	return []domain.LicenseHit{o.suspicionFallback(content)}, nil
}

func (o *Orchestrator) scanWithDelims(path string, lines []string, delims domain.DelimiterSet, details bool) []domain.LicenseHit {
	var hits []domain.LicenseHit
	cursor := 0

	for {
		start, end, ok := commentscan.NextComment(lines, cursor, delims)
		if !ok {
			break
		}
		cursor = end

		inner := commentscan.Strip(lines[start:end], delims)
		oneLine := normalize.CollapseLines(inner)

		tags := o.Taxonomy.Classify(oneLine)
		for _, tag := range tags {
			hit := domain.LicenseHit{Tag: tag}
			if details {
				if startRe, endRe, maxLines, ok := o.Taxonomy.Lookup(tag); ok {
					copyrights, text := boundary.Extract(inner, startRe, endRe, maxLines)
					if len(text) == 0 {
						o.Log.Warning(fmt.Sprintf("%s: %s: tag %s", domain.ErrBoundaryNotFound, path, tag))
					}
					hit.Copyrights = dedupeLines(copyrights)
					hit.Text = text
				}
			}
			hits = append(hits, hit)
		}

		if delims.IsWholeFile() {
			break
		}
	}

	return hits
}

func dedupeLines(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

var androidBoilerplate = "copyright" // substring check below is case-insensitive

var licenseyWords = []string{"license", "licensed", "permission", "redistribut"}

// suspicionFallback classifies whole-file content that produced no
// positive hit, narrowed from the teacher's license_stripper.go keyword
// list: "does this look unclassified-but-license-shaped" rather than
// "should this be stripped as boilerplate".
func (o *Orchestrator) suspicionFallback(content string) domain.LicenseHit {
	lower := strings.ToLower(content)

	if strings.Contains(lower, "android open source project") && strings.Count(lower, androidBoilerplate) <= 1 {
		return domain.LicenseHit{Tag: domain.SuspiciousAndroid}
	}

	for _, w := range licenseyWords {
		if strings.Contains(lower, w) {
			return domain.LicenseHit{Tag: domain.SuspiciousLicensey}
		}
	}

	if strings.Contains(lower, "copyright") {
		return domain.LicenseHit{Tag: domain.SuspiciousCopyright}
	}

	return domain.LicenseHit{Tag: domain.NoLicenseFound}
}

// readBounded reads at most n bytes of path and decodes it as UTF-8,
// falling back to a byte-widening Latin-1 decode (every byte 0x00-0xFF is
// a valid Latin-1 codepoint, so this never fails) when the bytes aren't
// valid UTF-8. Never returns a decode error; §7 treats decode failure as
// a fallback, not a raised error.
func readBounded(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := f.Read(buf)
	if err != nil && read == 0 {
		return "", err
	}
	buf = buf[:read]

	if utf8.Valid(buf) {
		return string(buf), nil
	}
	return latin1ToUTF8(buf), nil
}

func latin1ToUTF8(buf []byte) string {
	var b bytes.Buffer
	b.Grow(len(buf) * 2)
	for _, c := range buf {
		b.WriteRune(rune(c))
	}
	return b.String()
}
