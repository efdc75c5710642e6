package urlparse

import (
	"errors"
	"testing"

	"github.com/patterncluster/urlpattern/urlerr"
	"github.com/patterncluster/urlpattern/urlmeta"
)

func TestParseURL_PathOnly(t *testing.T) {
	meta, pieces, err := ParseURL("http://example.com/a/b/c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.PathDepth != 3 || len(meta.QueryKeys) != 0 || meta.HasFragment {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if pieces[i] != w {
			t.Errorf("pieces[%d] = %q, want %q", i, pieces[i], w)
		}
	}
}

func TestParseURL_QueryAndFragment(t *testing.T) {
	meta, pieces, err := ParseURL("http://example.com/a?x=1&y=2#frag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.PathDepth != 1 {
		t.Fatalf("path depth = %d, want 1", meta.PathDepth)
	}
	if len(meta.QueryKeys) != 2 || meta.QueryKeys[0] != "x" || meta.QueryKeys[1] != "y" {
		t.Fatalf("unexpected query keys: %+v", meta.QueryKeys)
	}
	if !meta.HasFragment {
		t.Fatal("expected fragment")
	}
	want := []string{"a", "1", "2", "frag"}
	for i, w := range want {
		if pieces[i] != w {
			t.Errorf("pieces[%d] = %q, want %q", i, pieces[i], w)
		}
	}
}

func TestParseURL_EmptyPathIsIrregular(t *testing.T) {
	_, _, err := ParseURL("http://example.com")
	if !errors.Is(err, urlerr.ErrIrregularURL) {
		t.Fatalf("expected ErrIrregularURL, got %v", err)
	}
}

func TestParseQueryString_RejectsAdjacentAmpersand(t *testing.T) {
	_, _, err := ParseQueryString("a=1&&b=2")
	if !errors.Is(err, urlerr.ErrIrregularURL) {
		t.Fatalf("expected ErrIrregularURL, got %v", err)
	}
}

func TestFilterUselessPart_CollapsesMiddleKeepsTrailing(t *testing.T) {
	got := FilterUselessPart([]string{"a", "", "b", ""})
	want := []string{"a", "b", ""}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	}
}

func TestPack_RoundTripsPathAndQuery(t *testing.T) {
	meta := urlmeta.URLMeta{PathDepth: 2, QueryKeys: []string{"x"}}
	got := Pack(meta, []string{"a", "b", "1"})
	want := "/a/b?x=1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDigest_StableAndShapeSensitive(t *testing.T) {
	m1 := urlmeta.URLMeta{PathDepth: 2}
	m2 := urlmeta.URLMeta{PathDepth: 3}
	if Digest(m1, nil) != Digest(m1, nil) {
		t.Fatal("digest should be stable for the same shape")
	}
	if Digest(m1, nil) == Digest(m2, nil) {
		t.Fatal("digest should differ across different path depths")
	}
}
