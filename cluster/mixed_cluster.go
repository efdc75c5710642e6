package cluster

import (
	"strconv"

	"github.com/patterncluster/urlpattern/piece"
)

// MixedPatternCluster is Base's finer-grained counterpart: it groups by
// rule *and* sub-piece length at each position, a stricter structural match
// than Base's rule-only key. Residue that doesn't collapse is, at the final
// path level, given one more chance through LastDotSplitFuzzy before
// falling to the Fuzzy sink.
type MixedPatternCluster struct {
	processor     *Processor
	minClusterNum int
	order         []string
	groups        map[string][]*PieceBag
	totals        map[string]int
}

func newMixedPatternCluster(p *Processor) *MixedPatternCluster {
	return &MixedPatternCluster{
		processor:     p,
		minClusterNum: p.minClusterNum,
		groups:        make(map[string][]*PieceBag),
		totals:        make(map[string]int),
	}
}

func mixedKey(pp piece.ParsedPiece) string {
	var key []byte
	for i, r := range pp.Rules {
		key = append(key, string(r)...)
		key = append(key, ':')
		key = strconv.AppendInt(key, int64(len(pp.Pieces[i])), 10)
		key = append(key, ';')
	}
	return string(key)
}

func (c *MixedPatternCluster) add(pb *PieceBag) {
	key := mixedKey(pb.Pick().ParsedPiece)
	if _, ok := c.groups[key]; !ok {
		c.order = append(c.order, key)
	}
	c.groups[key] = append(c.groups[key], pb)
	c.totals[key] += pb.Count()
}

func (c *MixedPatternCluster) AsCluster(pCounter) bool { return false }

func (c *MixedPatternCluster) Cluster() {
	for _, key := range c.order {
		bags := c.groups[key]
		if c.totals[key] >= c.minClusterNum {
			if composite, ok := recurseComposite(c.minClusterNum, bags, baseRow); ok {
				for _, bag := range bags {
					bag.SetPattern(composite)
				}
				continue
			}
		}

		if c.processor.meta.IsLastPathLevel() {
			c.processor.lastDotSplit.addGroup(bags)
			continue
		}
		for _, bag := range bags {
			c.processor.fuzzy.Add(bag)
		}
	}
}
