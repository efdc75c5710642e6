package cluster

import "github.com/patterncluster/urlpattern/pattern"

// FuzzyPatternCluster is the cascade's sink: every strategy's residue ends
// up here as a PieceBag. It wildcards the whole collection if it was ever
// "forced" (the number of distinct members added reached threshold, not
// their summed count — a single high-count residue bag never forces on its
// own) or if more than one member individually meets threshold and the
// collection as a whole is confused; otherwise every member keeps its
// identity pattern.
type FuzzyPatternCluster struct {
	processor     *Processor
	minClusterNum int
	bag           *TBag
	fuzzyRule     string
	forced        bool
}

func newFuzzyPatternCluster(p *Processor) *FuzzyPatternCluster {
	return &FuzzyPatternCluster{processor: p, minClusterNum: p.minClusterNum, bag: &TBag{}}
}

func (c *FuzzyPatternCluster) Add(pb *PieceBag) {
	if c.fuzzyRule == "" {
		c.fuzzyRule = pb.Pick().ParsedPiece.FuzzyRule
	}
	c.bag.Add(pb)
	if c.bag.Len() >= c.minClusterNum {
		c.forced = true
	}
}

func (c *FuzzyPatternCluster) AsCluster(pCounter) bool { return false }

func (c *FuzzyPatternCluster) Cluster() {
	if c.bag.Count() == 0 {
		return
	}
	if c.forced || c.confusedMajority() {
		c.bag.SetPattern(pattern.Wildcard(c.fuzzyRule))
	}
}

func (c *FuzzyPatternCluster) confusedMajority() bool {
	members := c.bag.Members()
	above := 0
	maxCount := 0
	for _, m := range members {
		if m.Count() >= c.minClusterNum {
			above++
		}
		if m.Count() > maxCount {
			maxCount = m.Count()
		}
	}
	if above <= 1 {
		return false
	}
	return confused(c.bag.Count(), maxCount, c.minClusterNum)
}
