// Package match implements the read side of the pattern-path format
// cluster produces: loading dumped pattern paths back into a lookup tree
// and walking a new URL's pieces against it to find the matching info.
//
// This stays intentionally thin — matching is named future work on top of
// the same parsed-piece foundation, not a fully general pattern engine.
package match

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/patterncluster/urlpattern/pattern"
	"github.com/patterncluster/urlpattern/piece"
	"github.com/patterncluster/urlpattern/urlerr"
	"github.com/patterncluster/urlpattern/urlmeta"
	"github.com/patterncluster/urlpattern/urlparse"
)

// PatternMatchNode is one level of a dumped pattern path. A pattern's
// canonical string form is, by construction, a valid regular expression
// fragment (bracketed character classes plus +/{n} quantifiers), so
// matching a piece against a node compiles and anchors that string rather
// than re-implementing rule matching by hand.
type PatternMatchNode struct {
	pat      pattern.Pattern
	re       *regexp.Regexp
	info     any
	children map[pattern.Pattern]*PatternMatchNode
}

func newPatternMatchNode(pat pattern.Pattern) *PatternMatchNode {
	n := &PatternMatchNode{
		pat:      pat,
		children: make(map[pattern.Pattern]*PatternMatchNode),
	}
	// The tree root carries the zero Pattern and is never matched itself.
	if !pat.IsZero() {
		n.re = compile(pat)
	}
	return n
}

var compileCache sync.Map // pattern.Pattern -> *regexp.Regexp

func compile(pat pattern.Pattern) *regexp.Regexp {
	if v, ok := compileCache.Load(pat); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile("^" + pat.String() + "$")
	compileCache.Store(pat, re)
	return re
}

// AddChild returns the child node for pat, creating it if absent.
func (n *PatternMatchNode) AddChild(pat pattern.Pattern) *PatternMatchNode {
	if child, ok := n.children[pat]; ok {
		return child
	}
	child := newPatternMatchNode(pat)
	n.children[pat] = child
	return child
}

// Info returns the info value attached at this node, if any.
func (n *PatternMatchNode) Info() any { return n.info }

// match walks pieces greedily: at each level it finds the single child
// whose pattern matches pieces[idx] (there is at most one by construction,
// since a well-formed pattern path never has two sibling patterns that
// both match the same literal) and recurses. A leaf with no children
// yields its info regardless of remaining pieces.
func (n *PatternMatchNode) match(pieces []piece.ParsedPiece, idx int) (any, bool) {
	if len(n.children) == 0 {
		return n.info, true
	}
	if idx >= len(pieces) {
		return nil, false
	}
	for _, child := range n.children {
		if child.re.MatchString(pieces[idx].Piece) {
			return child.match(pieces, idx+1)
		}
	}
	return nil, false
}

// PatternMatchTree roots one shape's worth of dumped pattern paths: every
// path loaded into it shares the same urlmeta.URLMeta digest.
type PatternMatchTree struct {
	root *PatternMatchNode
}

func newPatternMatchTree() *PatternMatchTree {
	return &PatternMatchTree{root: newPatternMatchNode(pattern.Pattern{})}
}

// LoadFromPatterns inserts one pattern path, attaching info to its leaf.
func (t *PatternMatchTree) LoadFromPatterns(patterns []pattern.Pattern, info any) {
	node := t.root
	for _, p := range patterns {
		node = node.AddChild(p)
	}
	node.info = info
}

// Match walks parsedPieces against the tree, returning the leaf info if
// every level finds a matching child.
func (t *PatternMatchTree) Match(parsedPieces []piece.ParsedPiece) (any, bool) {
	return t.root.match(parsedPieces, 0)
}

// Matcher routes loaded pattern paths and incoming URLs to the right
// PatternMatchTree by urlparse.Digest of the urlmeta.URLMeta alone. Unlike
// patternmaker, which also folds each segment's fuzzy rule into the digest,
// it does not key trees on fuzzy rules.
type Matcher struct {
	parser *piece.Parser
	trees  map[string]*PatternMatchTree
}

// NewMatcher returns an empty Matcher.
func NewMatcher() *Matcher {
	return &Matcher{parser: piece.NewParser(), trees: make(map[string]*PatternMatchTree)}
}

// Load parses one dumped pattern-path line (meta plus ordered canonical
// pattern strings) and inserts it into the tree for its shape. A step count
// other than meta.Depth(), or a step that does not compile as a regular
// expression, is rejected with ErrInvalidPattern.
func (m *Matcher) Load(meta urlmeta.URLMeta, patternStrings []string, info any) error {
	if len(patternStrings) != meta.Depth() {
		return urlerr.Wrap(urlerr.ErrInvalidPattern,
			fmt.Sprintf("expected %d pattern steps, got %d", meta.Depth(), len(patternStrings)))
	}
	patterns := make([]pattern.Pattern, len(patternStrings))
	for i, s := range patternStrings {
		if _, err := regexp.Compile("^" + s + "$"); err != nil {
			return urlerr.Wrap(urlerr.ErrInvalidPattern, fmt.Sprintf("pattern step %d %q: %v", i, s, err))
		}
		patterns[i] = pattern.FromCanonical(s)
	}
	sid := urlparse.Digest(meta, nil)
	tree, ok := m.trees[sid]
	if !ok {
		tree = newPatternMatchTree()
		m.trees[sid] = tree
	}
	tree.LoadFromPatterns(patterns, info)
	return nil
}

// Match parses url, routes it to the tree matching its shape, and returns
// that tree's match result. It returns (nil, false) if no tree was loaded
// for url's shape.
func (m *Matcher) Match(url string) (any, bool, error) {
	meta, pieces, err := urlparse.ParseURL(url)
	if err != nil {
		return nil, false, err
	}
	parsed := make([]piece.ParsedPiece, len(pieces))
	for i, p := range pieces {
		pp, err := m.parser.Parse(p)
		if err != nil {
			return nil, false, err
		}
		parsed[i] = pp
	}
	sid := urlparse.Digest(meta, nil)
	tree, ok := m.trees[sid]
	if !ok {
		return nil, false, nil
	}
	info, ok := tree.Match(parsed)
	return info, ok, nil
}
