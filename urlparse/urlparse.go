// Package urlparse splits a raw URL into the structural pieces the rest of
// the module clusters over, and packs a clustered path back into a URL.
package urlparse

import (
	"hash/fnv"
	"net/url"
	"strconv"
	"strings"

	"github.com/patterncluster/urlpattern/urlerr"
	"github.com/patterncluster/urlpattern/urlmeta"
)

// ParseURL splits raw into its URLMeta shape and an ordered slice of piece
// strings: path segments, then (in declared order) each query value, then
// the fragment if present. Query keys become part of the returned URLMeta,
// not the piece slice, since a key's presence and position are structural
// while its value is what gets clustered.
func ParseURL(raw string) (urlmeta.URLMeta, []string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return urlmeta.URLMeta{}, nil, urlerr.Wrap(urlerr.ErrIrregularURL, err.Error())
	}
	if u.Path == "" {
		return urlmeta.URLMeta{}, nil, urlerr.Wrap(urlerr.ErrIrregularURL, "empty path")
	}

	segments := FilterUselessPart(strings.Split(strings.TrimPrefix(u.Path, "/"), "/"))

	var keys, values []string
	if u.RawQuery != "" {
		keys, values, err = ParseQueryString(u.RawQuery)
		if err != nil {
			return urlmeta.URLMeta{}, nil, err
		}
	}

	meta := urlmeta.URLMeta{
		PathDepth:   len(segments),
		QueryKeys:   keys,
		HasFragment: u.Fragment != "",
	}

	pieces := make([]string, 0, meta.Depth())
	pieces = append(pieces, segments...)
	pieces = append(pieces, values...)
	if meta.HasFragment {
		pieces = append(pieces, u.Fragment)
	}
	return meta, pieces, nil
}

// ParseQueryString splits a raw (undecoded) query string into parallel key
// and value slices, preserving declaration order. A query with an empty
// segment (leading/trailing/doubled "&") is rejected as irregular rather
// than silently dropped, since a dropped key would desync QueryKeys from
// the piece slice built alongside it.
func ParseQueryString(q string) ([]string, []string, error) {
	if q == "" {
		return nil, nil, urlerr.Wrap(urlerr.ErrIrregularURL, "empty query string")
	}
	parts := strings.Split(q, "&")
	keys := make([]string, 0, len(parts))
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, nil, urlerr.Wrap(urlerr.ErrIrregularURL, "empty query segment")
		}
		kv := strings.SplitN(part, "=", 2)
		key, err := url.QueryUnescape(kv[0])
		if err != nil {
			return nil, nil, urlerr.Wrap(urlerr.ErrEncoding, err.Error())
		}
		var value string
		if len(kv) == 2 {
			value, err = url.QueryUnescape(kv[1])
			if err != nil {
				return nil, nil, urlerr.Wrap(urlerr.ErrEncoding, err.Error())
			}
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	return keys, values, nil
}

// FilterUselessPart collapses consecutive empty segments produced by a
// repeated "//" in the path, keeping at most one trailing empty segment (a
// genuine trailing slash is structurally meaningful; a run of slashes in
// the middle is not).
func FilterUselessPart(parts []string) []string {
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if p == "" && i > 0 && i < len(parts)-1 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Pack recomposes a clustered path (meta plus one literal or pattern string
// per level) back into a single URL path+query+fragment string, escaping
// each piece for the position it occupies.
func Pack(meta urlmeta.URLMeta, pieces []string) string {
	if len(pieces) != meta.Depth() {
		panic("urlparse: Pack requires exactly meta.Depth() pieces")
	}
	var b strings.Builder
	for i := 0; i < meta.PathDepth; i++ {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(pieces[i]))
	}
	if len(meta.QueryKeys) > 0 {
		b.WriteByte('?')
		for i, k := range meta.QueryKeys {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(pieces[meta.PathDepth+i]))
		}
	}
	if meta.HasFragment {
		b.WriteByte('#')
		b.WriteString(url.PathEscape(pieces[len(pieces)-1]))
	}
	return b.String()
}

// Digest computes a stable, order-sensitive hash of a URL's structural
// shape: path depth, the query keys in declared order, and whether a
// fragment is present. Two URLs with the same Digest route into the same
// tree; fuzzyRules is accepted for forward compatibility with routing that
// also keys on a fuzzy-rule fingerprint (currently appended verbatim — see
// spec.md §2 item 9) but is not otherwise interpreted here.
func Digest(meta urlmeta.URLMeta, fuzzyRules []string) string {
	h := fnv.New64a()
	h.Write([]byte(strconv.Itoa(meta.PathDepth)))
	h.Write([]byte{0})
	for _, k := range meta.QueryKeys {
		h.Write([]byte(k))
		h.Write([]byte{0})
	}
	if meta.HasFragment {
		h.Write([]byte{1})
	}
	h.Write([]byte{0})
	for _, r := range fuzzyRules {
		h.Write([]byte(r))
		h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
