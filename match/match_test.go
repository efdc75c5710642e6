package match

import (
	"testing"

	"github.com/patterncluster/urlpattern/urlmeta"
)

func TestMatcher_LoadAndMatch(t *testing.T) {
	m := NewMatcher()
	meta := urlmeta.URLMeta{PathDepth: 2}
	if err := m.Load(meta, []string{"item", "[0-9]+"}, "item-detail"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	info, ok, err := m.Match("http://example.com/item/42")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	if info != "item-detail" {
		t.Fatalf("info = %v, want item-detail", info)
	}
}

func TestMatcher_NoMatchForUnknownShape(t *testing.T) {
	m := NewMatcher()
	_, ok, err := m.Match("http://example.com/a/b/c")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if ok {
		t.Fatal("expected no match for a shape with no loaded patterns")
	}
}

func TestMatcher_RejectsWrongStepCount(t *testing.T) {
	m := NewMatcher()
	meta := urlmeta.URLMeta{PathDepth: 2}
	if err := m.Load(meta, []string{"only-one"}, "x"); err == nil {
		t.Fatal("expected error for a pattern path shorter than meta.Depth()")
	}
}

func TestMatcher_LiteralMismatchDoesNotMatch(t *testing.T) {
	m := NewMatcher()
	meta := urlmeta.URLMeta{PathDepth: 1}
	if err := m.Load(meta, []string{"item"}, "x"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, ok, err := m.Match("http://example.com/other")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if ok {
		t.Fatal("expected no match for a literal that doesn't equal the loaded pattern")
	}
}
