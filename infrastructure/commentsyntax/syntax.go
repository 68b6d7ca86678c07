// Package commentsyntax resolves a file path to the comment delimiter
// sets that should be tried against it, the way original_source/config.py's
// get_delims resolves an ini-backed configuration.
package commentsyntax

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gerv/slic/domain"
)

// ShebangRule maps a first-line regex to the delimiters used by files whose
// extension told us nothing, but whose shebang did.
type ShebangRule struct {
	Pattern *regexp.Regexp
	Delims  []domain.DelimiterSet
}

// SyntaxTable is the compiled, immutable configuration consulted by
// Resolve. Build it once with Load or Default and share it read-only across
// scan workers.
type SyntaxTable struct {
	stripExts          map[string]bool
	filenameToComment  map[string][]domain.DelimiterSet
	extToComment       map[string][]domain.DelimiterSet
	noExtNameToComment map[string][]domain.DelimiterSet
	shebangs           []ShebangRule
}

// rawConfig is the YAML wire shape. Every *ToComment value uses the
// original ini grammar: pipe-separated alternatives, comma-separated
// 3-tuples for block comments, and the literal `""` sentinel for
// whole-file mode.
type rawConfig struct {
	StripExts          []string          `yaml:"stripExts"`
	FilenameToComment  map[string]string `yaml:"filenameToComment"`
	ExtToComment       map[string]string `yaml:"extToComment"`
	NoExtNameToComment map[string]string `yaml:"noExtNameToComment"`
	Shebangs           []rawShebang      `yaml:"shebangs"`
}

type rawShebang struct {
	Pattern string `yaml:"pattern"`
	Delims  string `yaml:"delims"`
}

// Resolve returns the candidate DelimiterSets for path, or ok=false if the
// file type is unknown (the caller should skip it). Determinism: the first
// probe in the order below that has a non-empty result wins; there is no
// chaining between tables.
func (t *SyntaxTable) Resolve(path string) (delims []domain.DelimiterSet, ok bool) {
	filename := filepath.Base(path)
	noext, ext := splitExt(filename)

	if t.stripExts[ext] {
		filename = noext
		noext, ext = splitExt(filename)
	}

	if d, found := t.filenameToComment[filename]; found {
		return d, true
	}
	if d, found := t.extToComment[ext]; found {
		return d, true
	}
	if d, found := t.noExtNameToComment[noext]; found {
		return d, true
	}

	if d, found := t.resolveShebang(path); found {
		return d, true
	}

	return nil, false
}

func (t *SyntaxTable) resolveShebang(path string) ([]domain.DelimiterSet, bool) {
	line, err := firstLine(path)
	if err != nil {
		// I/O errors reading the first line are treated as "unknown type".
		return nil, false
	}
	if !strings.HasPrefix(line, "#!") {
		return nil, false
	}
	for _, rule := range t.shebangs {
		if rule.Pattern.MatchString(line) {
			return rule.Delims, true
		}
	}
	return nil, false
}

func firstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	return "", scanner.Err()
}

// splitExt mimics os.path.splitext: the extension includes the leading
// dot, and a name with no dot (or only a leading dot, e.g. ".gitignore")
// has an empty extension.
func splitExt(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name {
		// Dotfile with no further extension, e.g. ".gitignore".
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
