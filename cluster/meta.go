package cluster

import "github.com/patterncluster/urlpattern/urlmeta"

// MetaInfo pairs a URL's structural shape with the tree level a processor
// currently sits at.
type MetaInfo struct {
	meta  urlmeta.URLMeta
	level int
}

func newMetaInfo(meta urlmeta.URLMeta, level int) MetaInfo {
	return MetaInfo{meta: meta, level: level}
}

func (m MetaInfo) Level() int { return m.level }

func (m MetaInfo) IsLastLevel() bool { return m.meta.IsLastLevel(m.level) }

// IsLastPathLevel reports whether this level is the final path-segment
// level, as opposed to a query-value or fragment level. LastDotSplitFuzzy
// only fires here.
func (m MetaInfo) IsLastPathLevel() bool { return m.meta.IsLastPathLevel(m.level) }

func (m MetaInfo) NextLevelMetaInfo() MetaInfo {
	return MetaInfo{meta: m.meta, level: m.level + 1}
}
