package cluster

import "github.com/patterncluster/urlpattern/tree"

// PiecePatternCluster is the leaf ingest strategy: every tree node arriving
// at a processor passes through here first, bucketed by its literal piece.
type PiecePatternCluster struct {
	processor     *Processor
	minClusterNum int
	bucket        *PieceBucket
	skip          map[string]bool
}

func newPiecePatternCluster(p *Processor) *PiecePatternCluster {
	return &PiecePatternCluster{
		processor:     p,
		minClusterNum: p.minClusterNum,
		bucket:        newPieceBucket(),
		skip:          make(map[string]bool),
	}
}

// Add absorbs one tree node, then checks whether it (and a colliding
// sibling) should be marked noisy: once a piece's running count reaches
// threshold, if the rest of the parent's children already account for at
// least threshold, or another sibling piece has independently reached
// threshold too, both pieces are too evenly split to cluster usefully here.
func (c *PiecePatternCluster) Add(n *tree.Node) {
	piece := n.ParsedPiece.Piece
	c.bucket.Add(n)
	bag, _ := c.bucket.Get(piece)
	if c.skip[piece] || bag.Count() < c.minClusterNum {
		return
	}

	p := n.Parent
	if p == nil || p.ChildrenNum() == 1 {
		return
	}
	if p.Count-n.Count >= c.minClusterNum {
		c.skip[piece] = true
		return
	}
	for _, sib := range p.IterChildrenOrdered() {
		sibPiece := sib.ParsedPiece.Piece
		if sibPiece == piece {
			continue
		}
		sibBag, ok := c.bucket.Get(sibPiece)
		if !ok {
			continue
		}
		if sibBag.Count() >= c.minClusterNum {
			c.skip[sibPiece] = true
			c.skip[piece] = true
			break
		}
	}
}

// Revise subtracts a deeper level's claim from the bags it came from.
func (c *PiecePatternCluster) Revise(pc pCounter) {
	for piece, count := range pc {
		if bag, ok := c.bucket.Get(piece); ok {
			bag.Incr(-count)
		}
	}
}

// AsCluster answers "would this parent distribution look clustered here?":
// a p_counter too small to itself be a multi-member bucket at this level,
// whose historical total is not dominated confusingly by its biggest member.
func (c *PiecePatternCluster) AsCluster(pc pCounter) bool {
	if len(pc) >= c.minClusterNum {
		return false
	}
	total := 0
	for piece := range pc {
		if bag, ok := c.bucket.Get(piece); ok {
			total += bag.Count()
		}
	}
	return !confused(total, pc.max(), c.minClusterNum)
}

// IterNodes returns every absorbed node across every bag, in insertion
// order, for the processor's next-level fan-out.
func (c *PiecePatternCluster) IterNodes() []*tree.Node {
	var out []*tree.Node
	for _, bag := range c.bucket.Bags() {
		out = append(out, bag.Nodes()...)
	}
	return out
}

// forwardTarget picks Length for single-sub-piece pieces, Base otherwise,
// from one representative of the whole bucket — matching the authoritative
// reference, which decides the forward target once per bucket rather than
// per bag.
func (c *PiecePatternCluster) forwardTarget() interface{ add(*PieceBag) } {
	rep := c.bucket.Pick()
	if len(rep.ParsedPiece.Pieces) > 1 {
		return c.processor.base
	}
	return c.processor.length
}

// Cluster decides, for the whole bucket, whether it is even worth
// examining (enough distinct pieces, or a confused split of few), then
// forwards every bag onward, except a non-skipped bag whose count meets
// threshold and whose parent distribution the previous level already
// claims as a cluster — for such a bag that level's counts are revised
// instead. Skipped and below-threshold bags are always forwarded.
func (c *PiecePatternCluster) Cluster() {
	if c.bucket.Len() < c.minClusterNum {
		if c.bucket.Count() < c.minClusterNum {
			return
		}
		maxCount := 0
		for _, bag := range c.bucket.Bags() {
			if bag.Count() > maxCount {
				maxCount = bag.Count()
			}
		}
		if !confused(c.bucket.Count(), maxCount, c.minClusterNum) {
			return
		}
	}

	forward := c.forwardTarget()
	pre := c.processor.preLevel

	for _, bag := range c.bucket.Bags() {
		piece := bag.Pick().ParsedPiece.Piece
		if c.skip[piece] || bag.Count() < c.minClusterNum || pre == nil || !pre.SeekCluster(bag.PCounter()) {
			forward.add(bag)
		} else {
			pre.Revise(bag.PCounter())
		}
	}
}
