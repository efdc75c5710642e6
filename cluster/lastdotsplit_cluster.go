package cluster

import (
	"strings"

	"github.com/patterncluster/urlpattern/piece"
)

// lastDotSplitParser reparses the two literal halves produced by splitting
// on the final '.'; it is stateless, so one shared instance is safe to
// reuse across every LastDotSplitFuzzyPatternCluster.
var lastDotSplitParser = piece.NewParser()

// LastDotSplitFuzzyPatternCluster only fires at the final path-segment
// level: it splits each literal at its last '.' and treats the result as a
// two-part Base-like decomposition (the part before the dot, and the dot
// plus everything after). Mixed invokes it as a pre-wildcard attempt on
// residue before giving up to the Fuzzy sink.
type LastDotSplitFuzzyPatternCluster struct {
	processor     *Processor
	minClusterNum int
	bags          []*PieceBag
	total         int
}

func newLastDotSplitFuzzyPatternCluster(p *Processor) *LastDotSplitFuzzyPatternCluster {
	return &LastDotSplitFuzzyPatternCluster{processor: p, minClusterNum: p.minClusterNum}
}

// addGroup absorbs a whole Mixed-residue group; bags whose literal has no
// dot cannot take the two-part shape and go straight to Fuzzy.
func (c *LastDotSplitFuzzyPatternCluster) addGroup(bags []*PieceBag) {
	for _, bag := range bags {
		if strings.LastIndexByte(bag.Pick().ParsedPiece.Piece, '.') < 0 {
			c.processor.fuzzy.Add(bag)
			continue
		}
		c.bags = append(c.bags, bag)
		c.total += bag.Count()
	}
}

func (c *LastDotSplitFuzzyPatternCluster) AsCluster(pCounter) bool { return false }

func lastDotRow(bag *PieceBag) []piece.ParsedPiece {
	literal := bag.Pick().ParsedPiece.Piece
	idx := strings.LastIndexByte(literal, '.')
	prefix, _ := lastDotSplitParser.Parse(literal[:idx])
	suffix, _ := lastDotSplitParser.Parse(literal[idx:])
	return []piece.ParsedPiece{prefix, suffix}
}

func (c *LastDotSplitFuzzyPatternCluster) Cluster() {
	if len(c.bags) == 0 {
		return
	}
	if c.total >= c.minClusterNum {
		// lastDotRow always yields a two-entry row; a half that re-parses
		// into several sub-pieces (e.g. a versioned prefix) stays one
		// multi-sub-piece entry and is handled by the inner tree's own
		// cascade.
		if composite, ok := recurseComposite(c.minClusterNum, c.bags, lastDotRow); ok {
			for _, bag := range c.bags {
				bag.SetPattern(composite)
			}
			return
		}
	}
	for _, bag := range c.bags {
		c.processor.fuzzy.Add(bag)
	}
}
