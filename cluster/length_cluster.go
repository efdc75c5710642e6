package cluster

import "github.com/patterncluster/urlpattern/pattern"

// LengthPatternCluster buckets same-fuzzy-rule, single-sub-piece PieceBags
// by their literal length and decides whether one exact length dominates,
// assigning it an exact-length pattern. Otherwise each length bucket is
// judged on its own: one that qualifies and whose parent distribution the
// previous level claims gets its own exact-length pattern, and the rest is
// forwarded to the Fuzzy sink. Different lengths are never merged into one
// pattern.
type LengthPatternCluster struct {
	processor     *Processor
	minClusterNum int
	order         []int
	buckets       map[int]*LengthPieceBucket
}

func newLengthPatternCluster(p *Processor) *LengthPatternCluster {
	return &LengthPatternCluster{
		processor:     p,
		minClusterNum: p.minClusterNum,
		buckets:       make(map[int]*LengthPieceBucket),
	}
}

func (c *LengthPatternCluster) add(pb *PieceBag) {
	length := pb.Pick().ParsedPiece.PieceLength
	bucket, ok := c.buckets[length]
	if !ok {
		bucket = newLengthPieceBucket()
		c.buckets[length] = bucket
		c.order = append(c.order, length)
	}
	bucket.Add(pb)
}

func (c *LengthPatternCluster) totalCount() int {
	t := 0
	for _, length := range c.order {
		t += c.buckets[length].Count()
	}
	return t
}

// AsCluster resolves the spec's only open question: true iff the
// p_counter's implied total and biggest contributor satisfy confused
// against min_cluster_num.
func (c *LengthPatternCluster) AsCluster(pc pCounter) bool {
	return confused(pc.total(), pc.max(), c.minClusterNum)
}

func (c *LengthPatternCluster) dominant() (int, *LengthPieceBucket) {
	var bestLen int
	var best *LengthPieceBucket
	for _, length := range c.order {
		b := c.buckets[length]
		if best == nil || b.Count() > best.Count() {
			bestLen, best = length, b
		}
	}
	return bestLen, best
}

// lengthAsCluster reports whether bucket alone justifies an exact-length
// pattern: either it already has at least minClusterNum distinct pieces, or
// its aggregate count meets threshold and is confused against its own
// biggest contributor. A bucket whose aggregate count is below threshold
// never qualifies, regardless of confusion.
func (c *LengthPatternCluster) lengthAsCluster(bucket *LengthPieceBucket) bool {
	if bucket.Len() < c.minClusterNum {
		if bucket.Count() < c.minClusterNum {
			return false
		}
		maxCount := 0
		for _, bag := range bucket.Bags() {
			if bag.Count() > maxCount {
				maxCount = bag.Count()
			}
		}
		if !confused(bucket.Count(), maxCount, c.minClusterNum) {
			return false
		}
	}
	return true
}

func (c *LengthPatternCluster) Cluster() {
	if len(c.order) == 0 {
		return
	}
	total := c.totalCount()

	if len(c.order) < c.minClusterNum {
		if total < c.minClusterNum {
			return
		}
		length, dominant := c.dominant()
		if !confused(total, dominant.Count(), c.minClusterNum) && c.lengthAsCluster(dominant) {
			dominant.SetPattern(pattern.NumberRule(dominant.fuzzyRule, length))
			return
		}
	}

	pre := c.processor.preLevel
	for _, length := range c.order {
		bucket := c.buckets[length]
		if !c.lengthAsCluster(bucket) || pre == nil || !pre.SeekCluster(bucket.PCounter()) {
			for _, bag := range bucket.Bags() {
				c.processor.fuzzy.Add(bag)
			}
			continue
		}
		bucket.SetPattern(pattern.NumberRule(bucket.fuzzyRule, length))
		pre.Revise(bucket.PCounter())
	}
}
