package patternmaker

import (
	"strings"
	"testing"

	"github.com/patterncluster/urlpattern/config"
)

func newTestMaker(t *testing.T) *Maker {
	t.Helper()
	return New(config.Config{MinClusterNum: 3, ClusterAlgorithm: "beta"}, nil)
}

func TestLoad_TracksUniqueAndValid(t *testing.T) {
	m := newTestMaker(t)
	isNew, err := m.Load("http://example.com/a/b")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !isNew {
		t.Fatal("first load of a path should be new")
	}

	isNew, err = m.Load("http://example.com/a/b")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if isNew {
		t.Fatal("second load of the same path should not be new")
	}

	stats := m.Stats()
	if stats.All != 2 || stats.Valid != 2 || stats.Uniq != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestLoad_RecordsInvalid(t *testing.T) {
	m := newTestMaker(t)
	if _, err := m.Load("http://example.com"); err == nil {
		t.Fatal("expected error for a URL with an empty path")
	}
	stats := m.Stats()
	if stats.Invalid != 1 || stats.ByKind["irregular_url"] != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestLoadReader_SkipsBlankLinesAndContinuesPastErrors(t *testing.T) {
	m := newTestMaker(t)
	input := "http://example.com/a\n\nhttp://example.com\nhttp://example.com/b\n"
	m.LoadReader(strings.NewReader(input))

	stats := m.Stats()
	if stats.All != 3 {
		t.Fatalf("all = %d, want 3 (blank line should not be counted)", stats.All)
	}
	if stats.Valid != 2 || stats.Invalid != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestProcess_ClustersEveryShapeAndYieldsOnce(t *testing.T) {
	m := newTestMaker(t)
	for _, u := range []string{
		"http://example.com/item/1",
		"http://example.com/item/2",
		"http://example.com/item/3",
	} {
		if _, err := m.Load(u); err != nil {
			t.Fatalf("Load(%s): %v", u, err)
		}
	}

	var trees int
	for tr := range m.Process() {
		trees++
		if tr.Root.Count != 3 {
			t.Fatalf("root count = %d, want 3", tr.Root.Count)
		}
	}
	if trees != 1 {
		t.Fatalf("expected exactly one shape tree, got %d", trees)
	}
}
