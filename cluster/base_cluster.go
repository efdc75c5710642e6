package cluster

import "github.com/patterncluster/urlpattern/piece"

// BasePatternCluster handles multi-sub-piece pieces whose sub-pieces share
// the same sequence of character-class rules (its "base pattern" grouping
// key), regardless of length or literal text. A qualifying group is handed
// to a fresh inner piece-pattern tree, one row per constituent bag, and
// re-clustered with the same cascade; groups that don't collapse to one
// uniform composite fall through to MixedPatternCluster.
type BasePatternCluster struct {
	processor     *Processor
	minClusterNum int
	order         []string
	groups        map[string][]*PieceBag
	totals        map[string]int
}

func newBasePatternCluster(p *Processor) *BasePatternCluster {
	return &BasePatternCluster{
		processor:     p,
		minClusterNum: p.minClusterNum,
		groups:        make(map[string][]*PieceBag),
		totals:        make(map[string]int),
	}
}

func baseKey(pp piece.ParsedPiece) string {
	var key []byte
	for _, r := range pp.Rules {
		key = append(key, string(r)...)
	}
	return string(key)
}

func (c *BasePatternCluster) add(pb *PieceBag) {
	key := baseKey(pb.Pick().ParsedPiece)
	if _, ok := c.groups[key]; !ok {
		c.order = append(c.order, key)
	}
	c.groups[key] = append(c.groups[key], pb)
	c.totals[key] += pb.Count()
}

// AsCluster: Base never participates in cross-level look-ahead.
func (c *BasePatternCluster) AsCluster(pCounter) bool { return false }

func baseRow(bag *PieceBag) []piece.ParsedPiece {
	pp := bag.Pick().ParsedPiece
	row := make([]piece.ParsedPiece, len(pp.Pieces))
	for i, sub := range pp.Pieces {
		row[i] = subPiece(sub, pp.Rules[i])
	}
	return row
}

func (c *BasePatternCluster) Cluster() {
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
		for _, bag := range bags {
			c.processor.mixed.add(bag)
		}
	}
}
