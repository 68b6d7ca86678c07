// Package classifier implements the hierarchical license classifier:
// matching the normalized one-line form of a comment against a taxonomy
// of named regex rules and returning the most specific tags present.
// Grounded on original_source/detector.py's Detector class.
package classifier

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gerv/slic/domain"
)

// DefaultMaxLines is the default license-block length cap used during the
// boundary extractor's end-line search when a rule doesn't specify one.
const DefaultMaxLines = 50

// groupLimit bounds how many named capture groups go into a single
// alternation regex. Go's RE2 engine has no hard cap, but the design
// mandates this as a portability invariant toward engines that do.
const groupLimit = 80

// Rule is the taxonomy's wire format: one node in the classification
// tree, as loaded from YAML. Subs are tried in order, and only once the
// parent has matched.
type Rule struct {
	Tag      string `yaml:"tag"`
	Match    string `yaml:"match"`
	Start    string `yaml:"start,omitempty"`
	End      string `yaml:"end,omitempty"`
	MaxLines int    `yaml:"maxlines,omitempty"`
	Cancels  []string `yaml:"cancels,omitempty"`
	Subs     []Rule   `yaml:"subs,omitempty"`
}

// compiledRule is a preprocessed, immutable taxonomy node: patterns are
// compiled, start/end/maxlines are resolved from the nearest ancestor.
// It lives in Taxonomy.rules, addressed by its own index; subGroup (if
// any) is the index of its children's ruleGroup in Taxonomy.groups, or
// -1 if the rule has no subs.
type compiledRule struct {
	tag        string
	groupLabel string
	startRe    *regexp.Regexp
	endRe      *regexp.Regexp
	maxLines   int
	cancels    []string
	subGroup   int
}

// ruleGroup is one sibling level of the taxonomy: the indices (into
// Taxonomy.rules) of its rules, in order, plus the partitioned
// alternation regexes compiled over them.
type ruleGroup struct {
	ruleIdx         []int
	matchRes        []*regexp.Regexp
	groupLabelToTag map[string]string
}

// Taxonomy is the compiled, immutable classifier. Build once with
// Compile or Load and share read-only across scan workers. Rules and
// groups live in flat arenas; parent/child links are indices into them
// rather than pointers, so construction never leaves a pointer chain for
// runtime matching to chase.
type Taxonomy struct {
	rules     []compiledRule
	groups    []ruleGroup
	rootGroup int
	allTags   map[string]int // tag -> index into rules
}

// Compile walks rules, validates tag invariants, compiles every pattern,
// and partitions each sibling level's alternation into sub-regexes of at
// most groupLimit named groups. It returns a classifier-build-failure
// wrapped error on any invariant violation.
func Compile(rules []Rule) (*Taxonomy, error) {
	b := &builder{
		usedGroupLabels: make(map[string]string),
		allTags:         make(map[string]int),
	}
	rootGroup, err := b.compileGroup(rules, -1)
	if err != nil {
		return nil, err
	}
	return &Taxonomy{rules: b.rules, groups: b.groups, rootGroup: rootGroup, allTags: b.allTags}, nil
}

type builder struct {
	usedGroupLabels map[string]string // groupLabel -> tag, across the whole tree
	allTags         map[string]int    // tag -> index into rules
	rules           []compiledRule
	groups          []ruleGroup
}

var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// compileGroup compiles one sibling level and appends it to b.groups,
// returning its index. parentIdx is the index into b.rules of the rule
// these siblings are subs of, or -1 at the root.
func (b *builder) compileGroup(rules []Rule, parentIdx int) (int, error) {
	group := ruleGroup{
		groupLabelToTag: make(map[string]string, len(rules)),
	}

	// Snapshot the parent's resolved fields by value rather than holding a
	// pointer into b.rules: recursing into a child group below appends
	// more rules to that slice, which can reallocate its backing array
	// and would leave a live *compiledRule pointing at stale memory.
	var parent *compiledRule
	if parentIdx >= 0 {
		p := b.rules[parentIdx]
		parent = &p
	}

	var alternatives []string

	for _, raw := range rules {
		if raw.Tag == "" {
			return -1, fmt.Errorf("%w: missing tag in taxonomy node", domain.ErrClassifierBuild)
		}
		if strings.HasPrefix(raw.Tag, domain.ReservedPrefix) {
			return -1, fmt.Errorf("%w: tag %q begins with reserved prefix %q", domain.ErrClassifierBuild, raw.Tag, domain.ReservedPrefix)
		}
		if _, dup := b.allTags[raw.Tag]; dup {
			return -1, fmt.Errorf("%w: duplicate tag %q", domain.ErrClassifierBuild, raw.Tag)
		}

		groupLabel := nonAlnumRe.ReplaceAllString(raw.Tag, "_")
		if existingTag, dup := b.usedGroupLabels[groupLabel]; dup {
			return -1, fmt.Errorf("%w: group label %q derived from both %q and %q", domain.ErrClassifierBuild, groupLabel, existingTag, raw.Tag)
		}
		b.usedGroupLabels[groupLabel] = raw.Tag

		cr := compiledRule{
			tag:        raw.Tag,
			groupLabel: groupLabel,
			maxLines:   raw.MaxLines,
			cancels:    raw.Cancels,
			subGroup:   -1,
		}

		startPattern := raw.Start
		endPattern := raw.End
		if startPattern == "" {
			startPattern = inheritStart(raw, parent)
		}
		if endPattern == "" {
			endPattern = inheritEnd(raw, parent)
		}
		if cr.maxLines == 0 {
			cr.maxLines = inheritMaxLines(parent)
		}

		startRe, err := regexp.Compile(startPattern)
		if err != nil {
			return -1, fmt.Errorf("%w: compiling start pattern for %q: %v", domain.ErrClassifierBuild, raw.Tag, err)
		}
		endRe, err := regexp.Compile(endPattern)
		if err != nil {
			return -1, fmt.Errorf("%w: compiling end pattern for %q: %v", domain.ErrClassifierBuild, raw.Tag, err)
		}
		cr.startRe = startRe
		cr.endRe = endRe

		matchRe, err := regexp.Compile(raw.Match)
		if err != nil {
			return -1, fmt.Errorf("%w: compiling match pattern for %q: %v", domain.ErrClassifierBuild, raw.Tag, err)
		}
		_ = matchRe // validated eagerly; the alternation form below is what's used at runtime

		alternatives = append(alternatives, "(?P<"+groupLabel+">"+raw.Match+")")
		group.groupLabelToTag[groupLabel] = raw.Tag

		ruleIdx := len(b.rules)
		b.rules = append(b.rules, cr)
		b.allTags[raw.Tag] = ruleIdx

		if len(raw.Subs) > 0 {
			subGroupIdx, err := b.compileGroup(raw.Subs, ruleIdx)
			if err != nil {
				return -1, err
			}
			b.rules[ruleIdx].subGroup = subGroupIdx
		}

		group.ruleIdx = append(group.ruleIdx, ruleIdx)
	}

	matchRes, err := partitionAlternation(alternatives)
	if err != nil {
		return -1, err
	}
	group.matchRes = matchRes

	groupIdx := len(b.groups)
	b.groups = append(b.groups, group)
	return groupIdx, nil
}

// inheritStart returns raw's effective start pattern: the immediate
// parent's (already-resolved) start pattern, or, at the root, the rule's
// own match pattern. Resolved fields are copied down one level at a time
// during construction (arena style), so there is never a longer chain to
// walk than the direct parent.
func inheritStart(raw Rule, parent *compiledRule) string {
	if parent != nil {
		return patternOf(parent.startRe)
	}
	return raw.Match
}

func inheritEnd(raw Rule, parent *compiledRule) string {
	if parent != nil {
		return patternOf(parent.endRe)
	}
	return raw.Match
}

func inheritMaxLines(parent *compiledRule) int {
	if parent != nil {
		return parent.maxLines
	}
	return DefaultMaxLines
}

func patternOf(re *regexp.Regexp) string {
	return re.String()
}

// partitionAlternation splits named-group alternatives into chunks of at
// most groupLimit and compiles one regex per chunk.
func partitionAlternation(alternatives []string) ([]*regexp.Regexp, error) {
	if len(alternatives) == 0 {
		return nil, nil
	}

	var res []*regexp.Regexp
	for len(alternatives) > groupLimit {
		chunk := alternatives[:groupLimit]
		alternatives = alternatives[groupLimit:]
		re, err := regexp.Compile(strings.Join(chunk, "|"))
		if err != nil {
			return nil, fmt.Errorf("%w: compiling alternation chunk: %v", domain.ErrClassifierBuild, err)
		}
		res = append(res, re)
	}
	re, err := regexp.Compile(strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("%w: compiling alternation chunk: %v", domain.ErrClassifierBuild, err)
	}
	res = append(res, re)

	return res, nil
}

// Classify matches singleLineText against the taxonomy and returns the
// sorted list of detected, externally-visible tags (Ignore_-prefixed
// internal disambiguation tags are never returned, though they do
// participate in cancels suppression while classification recurses).
func (t *Taxonomy) Classify(singleLineText string) []string {
	hits := t.classifyGroup(t.rootGroup, singleLineText)

	visible := make([]string, 0, len(hits))
	for tag := range hits {
		if strings.HasPrefix(tag, domain.IgnorePrefix) {
			continue
		}
		visible = append(visible, tag)
	}
	sort.Strings(visible)
	return visible
}

func (t *Taxonomy) classifyGroup(groupIdx int, text string) map[string]bool {
	group := &t.groups[groupIdx]
	hits := make(map[string]bool)

	for _, re := range group.matchRes {
		names := re.SubexpNames()
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			for i, name := range names {
				if name == "" || match[i] == "" {
					continue
				}
				if tag, ok := group.groupLabelToTag[name]; ok {
					hits[tag] = true
				}
			}
		}
	}

	// Refinement: a matched parent whose children also match is replaced
	// by the children's (more specific) tags.
	for tag := range snapshot(hits) {
		ruleIdx, ok := t.allTags[tag]
		if !ok || t.rules[ruleIdx].subGroup < 0 {
			continue
		}
		childHits := t.classifyGroup(t.rules[ruleIdx].subGroup, text)
		if len(childHits) > 0 {
			delete(hits, tag)
			for ct := range childHits {
				hits[ct] = true
			}
		}
	}

	// Cancels: resolved against the whole-tree tag map since a tag may
	// have been promoted up from a sub-group that isn't part of this
	// level's own rule list.
	for tag := range snapshot(hits) {
		ruleIdx, ok := t.allTags[tag]
		if !ok {
			continue
		}
		for _, cancelled := range t.rules[ruleIdx].cancels {
			delete(hits, cancelled)
		}
	}

	return hits
}

func snapshot(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Lookup returns the resolved start pattern, end pattern and max-lines cap
// of tag's rule, and whether the tag exists, for use by the boundary
// extractor (§4.6).
func (t *Taxonomy) Lookup(tag string) (startRe, endRe *regexp.Regexp, maxLines int, ok bool) {
	ruleIdx, found := t.allTags[tag]
	if !found {
		return nil, nil, 0, false
	}
	rule := t.rules[ruleIdx]
	return rule.startRe, rule.endRe, rule.maxLines, true
}
