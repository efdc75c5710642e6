package cluster

import (
	"github.com/patterncluster/urlpattern/pattern"
	"github.com/patterncluster/urlpattern/tree"
	"github.com/patterncluster/urlpattern/urlmeta"
)

// strategy is the common as_cluster/cluster contract every cascade member
// satisfies, used only for the fixed-order seek_cluster scan and the
// cascade's final cluster() pass — Add signatures differ per strategy, so
// they are not part of this interface.
type strategy interface {
	AsCluster(pc pCounter) bool
	Cluster()
}

// Processor owns one instance of each of the six cluster strategies for a
// single tree level, cascades cluster() across them in the fixed order, and
// spawns one child processor per induced pattern for the next level down.
type Processor struct {
	minClusterNum int
	meta          MetaInfo
	preLevel      *Processor

	piece        *PiecePatternCluster
	base         *BasePatternCluster
	mixed        *MixedPatternCluster
	lastDotSplit *LastDotSplitFuzzyPatternCluster
	length       *LengthPatternCluster
	fuzzy        *FuzzyPatternCluster

	// cascade is CLUSTER_CLASSES from the authoritative reference, in
	// fixed order: Piece, Base, Mixed, LastDotSplitFuzzy, Length, Fuzzy.
	// seek_cluster and the final cluster() pass both iterate this slice.
	cascade []strategy
}

func newProcessor(minClusterNum int, meta MetaInfo, preLevel *Processor) *Processor {
	p := &Processor{minClusterNum: minClusterNum, meta: meta, preLevel: preLevel}
	p.piece = newPiecePatternCluster(p)
	p.base = newBasePatternCluster(p)
	p.mixed = newMixedPatternCluster(p)
	p.lastDotSplit = newLastDotSplitFuzzyPatternCluster(p)
	p.length = newLengthPatternCluster(p)
	p.fuzzy = newFuzzyPatternCluster(p)
	p.cascade = []strategy{p.piece, p.base, p.mixed, p.lastDotSplit, p.length, p.fuzzy}
	return p
}

// Add seeds this level's leaf ingest strategy with one tree node.
func (p *Processor) Add(n *tree.Node) {
	p.piece.Add(n)
}

// SeekCluster is the cross-level look-ahead hook: true iff any strategy in
// this processor would itself treat pc as a cluster.
func (p *Processor) SeekCluster(pc pCounter) bool {
	for _, s := range p.cascade {
		if s.AsCluster(pc) {
			return true
		}
	}
	return false
}

// Revise subtracts a deeper level's claimed contribution from this level's
// piece bags, the only sanctioned mutation crossing processor boundaries.
func (p *Processor) Revise(pc pCounter) {
	p.piece.Revise(pc)
}

// Process runs every strategy's cluster() in cascade order, then — unless
// this is the last level — groups every node under this processor by its
// (possibly newly assigned) pattern and recurses one child processor per
// group.
func (p *Processor) Process() {
	for _, s := range p.cascade {
		s.Cluster()
	}

	if p.meta.IsLastLevel() {
		return
	}

	nextMeta := p.meta.NextLevelMetaInfo()
	var order []pattern.Pattern
	groups := make(map[pattern.Pattern]*Processor)

	for _, n := range p.piece.IterNodes() {
		child := groups[n.Pattern]
		if child == nil {
			child = newProcessor(p.minClusterNum, nextMeta, p)
			groups[n.Pattern] = child
			order = append(order, n.Pattern)
		}
		for _, c := range n.IterChildrenOrdered() {
			child.Add(c)
		}
	}

	for _, pat := range order {
		groups[pat].Process()
	}
}

// Cluster is the top-level driver: cluster(config, url_meta, tree). It
// constructs the root processor at level 0, seeds it with the tree's
// sentinel root, and runs it to completion.
func Cluster(minClusterNum int, meta urlmeta.URLMeta, tr *tree.Tree) {
	root := newProcessor(minClusterNum, newMetaInfo(meta, 0), nil)
	root.Add(tr.Root)
	root.Process()
}
