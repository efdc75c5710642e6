package cluster

import (
	"github.com/patterncluster/urlpattern/pattern"
	"github.com/patterncluster/urlpattern/piece"
	"github.com/patterncluster/urlpattern/tree"
	"github.com/patterncluster/urlpattern/urlmeta"
)

// subPiece builds the synthetic ParsedPiece for one sub-piece column, reused
// whenever Base, Mixed or LastDotSplitFuzzy re-parse a literal's pieces as
// rows of an inner tree.
func subPiece(text string, rule piece.Rule) piece.ParsedPiece {
	return piece.ParsedPiece{
		Pieces:      []string{text},
		Rules:       []piece.Rule{rule},
		Piece:       text,
		PieceLength: len(text),
		FuzzyRule:   string(rule),
	}
}

// recurseComposite builds a fresh piece-pattern tree over a group of
// PieceBags that share a structural shape, inserts one path per bag (keyed
// by that bag's own count), runs the clustering driver on it, and — only if
// every resulting leaf collapses to the exact same composite pattern —
// returns that pattern. A group that still disagrees after the inner pass
// is residue, not a cluster: its members are handed back unclaimed.
//
// rowOf extracts the ordered (text, rule) columns for one bag's
// representative piece; it differs between Base/Mixed (every sub-piece) and
// LastDotSplitFuzzy (the two-part last-dot split).
func recurseComposite(minClusterNum int, bags []*PieceBag, rowOf func(*PieceBag) []piece.ParsedPiece) (pattern.Pattern, bool) {
	if len(bags) == 0 {
		return pattern.Pattern{}, false
	}

	inner := tree.New()
	depth := len(rowOf(bags[0]))
	for _, bag := range bags {
		row := rowOf(bag)
		if len(row) != depth {
			// Structural mismatch inside a group that was supposed to be
			// uniform: treat as residue rather than force a bad insert.
			inner.Release()
			return pattern.Pattern{}, false
		}
		inner.AddParsedPieces(row, bag.Count())
	}

	meta := urlmeta.URLMeta{PathDepth: depth}
	Cluster(minClusterNum, meta, inner)

	var composite pattern.Pattern
	seen := false
	ok := true
	inner.IterPaths(func(p tree.Path) bool {
		parts := make([]pattern.Pattern, len(p))
		for i, n := range p {
			parts[i] = n.Pattern
		}
		got := pattern.Composite(parts)
		if !seen {
			composite, seen = got, true
		} else if got != composite {
			ok = false
			return false
		}
		return true
	})

	inner.Release()
	if !seen || !ok {
		return pattern.Pattern{}, false
	}
	return composite, true
}
