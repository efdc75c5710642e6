// Package tree implements the piece-pattern tree: a prefix tree accumulated
// from the parsed pieces of every ingested URL of one structural shape, and
// later annotated in place by the cluster cascade with a pattern per node.
package tree

import (
	"sort"

	"github.com/patterncluster/urlpattern/pattern"
	"github.com/patterncluster/urlpattern/piece"
)

// Node is one position in a piece-pattern tree. Parent is a non-owning
// back-reference (the tree itself owns nodes through the Children map of
// their parent); the root has no parent.
type Node struct {
	ParsedPiece piece.ParsedPiece
	Pattern     pattern.Pattern // mutable, assigned at most once per run
	Count       int
	Children    map[string]*Node // keyed by child ParsedPiece.Piece
	Parent      *Node

	patternSet bool
}

// ChildrenNum returns the number of direct children.
func (n *Node) ChildrenNum() int {
	return len(n.Children)
}

// IterChildren yields the node's children in Go map iteration order, which
// is unspecified and varies between runs; callers that need determinism
// (the cluster package among them) use IterChildrenOrdered instead.
func (n *Node) IterChildren(yield func(*Node) bool) {
	for _, c := range n.Children {
		if !yield(c) {
			return
		}
	}
}

// IterChildrenOrdered returns the node's children sorted by piece. The map
// itself carries no meaningful order (spec.md §3: "insertion order not
// semantically significant"); callers that need the determinism spec.md's
// testable properties require — the cluster cascade chief among them — use
// this instead of ranging over Children directly.
func (n *Node) IterChildrenOrdered() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ParsedPiece.Piece < out[j].ParsedPiece.Piece
	})
	return out
}

// SetPattern assigns a coarser pattern to the node. Per spec.md's
// monotonicity invariant this must happen at most once; a second call
// panics since it indicates a cluster-cascade bug, not an input problem.
func (n *Node) SetPattern(p pattern.Pattern) {
	if n.patternSet {
		panic("tree: pattern reassigned on node " + n.ParsedPiece.Piece)
	}
	n.Pattern = p
	n.patternSet = true
}

// PatternAssigned reports whether SetPattern has been called on this node.
func (n *Node) PatternAssigned() bool {
	return n.patternSet
}

// Tree is a prefix tree rooted at a sentinel node (the root carries no
// parsed piece and is never itself patterned; its Count is the total count
// of every path added).
type Tree struct {
	Root *Node
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{Root: newNode(piece.ParsedPiece{})}
}

func newNode(pp piece.ParsedPiece) *Node {
	n := getNode()
	n.ParsedPiece = pp
	n.Pattern = pattern.Identity(pp)
	return n
}

// AddParsedPieces walks from the root, inserting a child for each piece if
// absent, accumulating count into every node on the path. count must be
// strictly positive; adding zero or a negative count is a programming error
// (spec.md §4.2), not an input-validation concern, so it panics.
func (t *Tree) AddParsedPieces(pieces []piece.ParsedPiece, count int) {
	if count <= 0 {
		panic("tree: AddParsedPieces requires a strictly positive count")
	}
	node := t.Root
	node.Count += count
	for _, pp := range pieces {
		child, ok := node.Children[pp.Piece]
		if !ok {
			child = newNode(pp)
			child.Parent = node
			node.Children[pp.Piece] = child
		}
		child.Count += count
		node = child
	}
}

// Path is one root-to-leaf sequence of nodes, in order.
type Path []*Node

// IterPaths yields each leaf-terminated path (excluding the sentinel root)
// as an ordered sequence of nodes.
func (t *Tree) IterPaths(yield func(Path) bool) {
	var walk func(n *Node, prefix Path) bool
	walk = func(n *Node, prefix Path) bool {
		if len(n.Children) == 0 {
			return yield(prefix)
		}
		for _, c := range n.IterChildrenOrdered() {
			next := make(Path, len(prefix)+1)
			copy(next, prefix)
			next[len(prefix)] = c
			if !walk(c, next) {
				return false
			}
		}
		return true
	}
	for _, c := range t.Root.IterChildrenOrdered() {
		if !walk(c, Path{c}) {
			return
		}
	}
}
