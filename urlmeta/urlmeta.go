// Package urlmeta describes the structural shape of a URL — the part of a
// URL that must match exactly for two URLs to share the same piece-pattern
// tree.
package urlmeta

// URLMeta fixes the structural shape of a URL: how many path segments it
// has, which query keys appear and in what order, and whether it carries a
// fragment. Two URLs share a tree only if their URLMeta values compare
// equal; patternmaker also keys its trees on each segment's fuzzy rule, so
// URLs of equal URLMeta whose segments differ in character classes go into
// separate trees.
type URLMeta struct {
	PathDepth   int
	QueryKeys   []string
	HasFragment bool
}

// Depth is the total number of tree levels a URL with this shape occupies:
// path segments, then one level per query key (in QueryKeys order), then
// one more if a fragment is present.
func (m URLMeta) Depth() int {
	d := m.PathDepth + len(m.QueryKeys)
	if m.HasFragment {
		d++
	}
	return d
}

// Equal reports whether two URLMeta values describe the same shape.
func (m URLMeta) Equal(o URLMeta) bool {
	if m.PathDepth != o.PathDepth || m.HasFragment != o.HasFragment {
		return false
	}
	if len(m.QueryKeys) != len(o.QueryKeys) {
		return false
	}
	for i, k := range m.QueryKeys {
		if o.QueryKeys[i] != k {
			return false
		}
	}
	return true
}

// IsLastPathLevel reports whether level is the final path-segment level
// (as opposed to a query-value or fragment level) for a URL of this shape.
func (m URLMeta) IsLastPathLevel(level int) bool {
	return m.PathDepth == level
}

// IsLastLevel reports whether level is the final level overall.
func (m URLMeta) IsLastLevel(level int) bool {
	return m.Depth() == level
}
