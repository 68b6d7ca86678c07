package commentsyntax

import (
	_ "embed"
	"fmt"
	"regexp"

	"github.com/gerv/slic/domain"
	"gopkg.in/yaml.v3"
)

//go:embed syntax.yaml
var defaultSyntaxYAML []byte

// Default returns the built-in SyntaxTable, parsed from the embedded
// syntax.yaml document.
func Default() (*SyntaxTable, error) {
	return Load(defaultSyntaxYAML)
}

// Load builds a SyntaxTable from a YAML document following the rawConfig
// shape. Callers who want to override the default table entirely should
// read their own file and pass its bytes here.
func Load(data []byte) (*SyntaxTable, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("commentsyntax: parsing config: %w", err)
	}
	return build(&raw)
}

func build(raw *rawConfig) (*SyntaxTable, error) {
	t := &SyntaxTable{
		stripExts:          make(map[string]bool, len(raw.StripExts)),
		filenameToComment:  make(map[string][]domain.DelimiterSet, len(raw.FilenameToComment)),
		extToComment:       make(map[string][]domain.DelimiterSet, len(raw.ExtToComment)),
		noExtNameToComment: make(map[string][]domain.DelimiterSet, len(raw.NoExtNameToComment)),
	}

	for _, ext := range raw.StripExts {
		t.stripExts[ext] = true
	}

	if err := parseInto(t.filenameToComment, raw.FilenameToComment); err != nil {
		return nil, err
	}
	if err := parseInto(t.extToComment, raw.ExtToComment); err != nil {
		return nil, err
	}
	if err := parseInto(t.noExtNameToComment, raw.NoExtNameToComment); err != nil {
		return nil, err
	}

	for _, sb := range raw.Shebangs {
		re, err := regexp.Compile(sb.Pattern)
		if err != nil {
			return nil, fmt.Errorf("commentsyntax: compiling shebang pattern %q: %w", sb.Pattern, err)
		}
		delims, err := ParseDelimString(sb.Delims)
		if err != nil {
			return nil, fmt.Errorf("commentsyntax: shebang delims for %q: %w", sb.Pattern, err)
		}
		t.shebangs = append(t.shebangs, ShebangRule{Pattern: re, Delims: delims})
	}

	return t, nil
}

func parseInto(dst map[string][]domain.DelimiterSet, src map[string]string) error {
	for key, val := range src {
		delims, err := ParseDelimString(val)
		if err != nil {
			return fmt.Errorf("commentsyntax: key %q: %w", key, err)
		}
		dst[key] = delims
	}
	return nil
}
