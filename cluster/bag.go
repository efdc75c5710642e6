// Package cluster implements the pattern-cluster cascade: six strategies
// that decide, level by level along a piece-pattern tree, whether sibling
// segments collapse into a wildcard, a length-bound pattern, a composite, or
// stay literal.
package cluster

import (
	"github.com/patterncluster/urlpattern/pattern"
	"github.com/patterncluster/urlpattern/tree"
)

// pCounter is a parent-piece multiset: for each distinct parent literal
// piece feeding a bag, the summed child count contributed through that
// parent. It is the cross-level signal seek_cluster/revise pass between
// processor levels.
type pCounter map[string]int

func (c pCounter) add(parentPiece string, count int) {
	c[parentPiece] += count
}

func (c pCounter) merge(o pCounter) {
	for k, v := range o {
		c[k] += v
	}
}

func (c pCounter) total() int {
	t := 0
	for _, v := range c {
		t += v
	}
	return t
}

func (c pCounter) max() int {
	m := 0
	for _, v := range c {
		if v > m {
			m = v
		}
	}
	return m
}

// confused is the central tie-breaker: is this bucket ambiguous enough that
// neither splitting nor merging is clearly right? total must already meet
// threshold; beyond that, either both part and its complement individually
// meet threshold, or the two are close enough (within threshold-1) that
// picking a majority would be arbitrary.
func confused(total, part, threshold int) bool {
	if total < threshold {
		return false
	}
	other := total - part
	if part >= threshold && other >= threshold {
		return true
	}
	diff := part - other
	if diff < 0 {
		diff = -diff
	}
	return diff < threshold-1
}

// countable is anything a TBag can hold: something with an aggregate count
// that can be told to adopt a pattern in one shot.
type countable interface {
	Count() int
	SetPattern(p pattern.Pattern)
}

// TBag is a generic ordered collection of countable members (PieceBags, or
// in FuzzyPatternCluster's case, bags forwarded from several other
// strategies). It mirrors the aggregate count of its members and broadcasts
// a pattern assignment down to all of them.
type TBag struct {
	members []countable
	count   int
}

func (b *TBag) Add(m countable) {
	b.members = append(b.members, m)
	b.count += m.Count()
}

func (b *TBag) Count() int            { return b.count }
func (b *TBag) Len() int              { return len(b.members) }
func (b *TBag) Members() []countable  { return b.members }
func (b *TBag) SetPattern(p pattern.Pattern) {
	for _, m := range b.members {
		m.SetPattern(p)
	}
}

// PieceBag collects every tree node sharing one literal piece, plus the
// parent-piece multiset that seek_cluster/revise consult.
type PieceBag struct {
	nodes    []*tree.Node
	count    int
	pCounter pCounter
}

func newPieceBag() *PieceBag {
	return &PieceBag{pCounter: make(pCounter)}
}

func (b *PieceBag) Add(n *tree.Node) {
	b.nodes = append(b.nodes, n)
	b.count += n.Count
	if n.Parent != nil {
		b.pCounter.add(n.Parent.ParsedPiece.Piece, n.Count)
	}
}

// Incr adjusts the bag's running count without touching membership; used by
// revise to subtract a claimed-at-a-deeper-level contribution.
func (b *PieceBag) Incr(delta int) { b.count += delta }

func (b *PieceBag) Count() int           { return b.count }
func (b *PieceBag) Len() int             { return len(b.nodes) }
func (b *PieceBag) Nodes() []*tree.Node  { return b.nodes }
func (b *PieceBag) PCounter() pCounter   { return b.pCounter }

// Pick returns the bag's first-inserted node, the representative used
// whenever a cluster strategy needs one member to decide structure without
// iterating all of them.
func (b *PieceBag) Pick() *tree.Node { return b.nodes[0] }

func (b *PieceBag) SetPattern(p pattern.Pattern) {
	for _, n := range b.nodes {
		n.SetPattern(p)
	}
}

// PieceBucket is an insertion-order-preserving mapping from piece to
// PieceBag, with an aggregate count across every bag.
type PieceBucket struct {
	order []string
	bags  map[string]*PieceBag
	count int
}

func newPieceBucket() *PieceBucket {
	return &PieceBucket{bags: make(map[string]*PieceBag)}
}

func (b *PieceBucket) Add(n *tree.Node) {
	piece := n.ParsedPiece.Piece
	bag, ok := b.bags[piece]
	if !ok {
		bag = newPieceBag()
		b.bags[piece] = bag
		b.order = append(b.order, piece)
	}
	bag.Add(n)
	b.count += n.Count
}

func (b *PieceBucket) Get(piece string) (*PieceBag, bool) {
	bag, ok := b.bags[piece]
	return bag, ok
}

func (b *PieceBucket) Len() int   { return len(b.order) }
func (b *PieceBucket) Count() int { return b.count }

// Bags returns every bag in insertion order, the only order spec.md sanctions.
func (b *PieceBucket) Bags() []*PieceBag {
	out := make([]*PieceBag, len(b.order))
	for i, p := range b.order {
		out[i] = b.bags[p]
	}
	return out
}

// Pick returns the first node of the first-inserted bag.
func (b *PieceBucket) Pick() *tree.Node {
	return b.bags[b.order[0]].Pick()
}

// LengthPieceBucket groups PieceBags that share one piece_length, keyed
// internally by piece so the same literal is never double-counted. Its
// fuzzyRule is fixed from the first bag it ever receives; mixing bags of
// different fuzzy rules under one length (possible only when a PieceBucket
// forwards both single-char alpha and single-char digit siblings to Length
// together) is a known, accepted coarseness.
type LengthPieceBucket struct {
	order         []string
	bags          map[string]*PieceBag
	count         int
	fuzzyRule     string
	pCounterCache pCounter
}

func newLengthPieceBucket() *LengthPieceBucket {
	return &LengthPieceBucket{bags: make(map[string]*PieceBag)}
}

// Add inserts a whole PieceBag (not a raw node); duplicate pieces under one
// length bucket indicate a cluster-cascade bug, not an input problem.
func (b *LengthPieceBucket) Add(pb *PieceBag) {
	piece := pb.Pick().ParsedPiece.Piece
	if _, exists := b.bags[piece]; exists {
		panic("cluster: duplicate piece in LengthPieceBucket: " + piece)
	}
	if b.fuzzyRule == "" {
		b.fuzzyRule = pb.Pick().ParsedPiece.FuzzyRule
	}
	b.bags[piece] = pb
	b.order = append(b.order, piece)
	b.count += pb.Count()
}

func (b *LengthPieceBucket) Len() int   { return len(b.order) }
func (b *LengthPieceBucket) Count() int { return b.count }

func (b *LengthPieceBucket) Bags() []*PieceBag {
	out := make([]*PieceBag, len(b.order))
	for i, p := range b.order {
		out[i] = b.bags[p]
	}
	return out
}

func (b *LengthPieceBucket) PCounter() pCounter {
	if b.pCounterCache == nil {
		b.pCounterCache = make(pCounter)
		for _, pb := range b.Bags() {
			b.pCounterCache.merge(pb.PCounter())
		}
	}
	return b.pCounterCache
}

func (b *LengthPieceBucket) SetPattern(p pattern.Pattern) {
	for _, pb := range b.Bags() {
		pb.SetPattern(p)
	}
}
