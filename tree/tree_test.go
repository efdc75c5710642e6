package tree

import (
	"testing"

	"github.com/patterncluster/urlpattern/piece"
)

func parsePieces(t *testing.T, segs ...string) []piece.ParsedPiece {
	t.Helper()
	p := piece.NewParser()
	out := make([]piece.ParsedPiece, len(segs))
	for i, s := range segs {
		pp, err := p.Parse(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		out[i] = pp
	}
	return out
}

func TestAddParsedPieces_CountConservation(t *testing.T) {
	tr := New()
	tr.AddParsedPieces(parsePieces(t, "u", "1", "p"), 1)
	tr.AddParsedPieces(parsePieces(t, "u", "2", "p"), 1)
	tr.AddParsedPieces(parsePieces(t, "u", "3", "p"), 1)

	if tr.Root.Count != 3 {
		t.Fatalf("root count = %d, want 3", tr.Root.Count)
	}
	u := tr.Root.Children["u"]
	if u == nil || u.Count != 3 {
		t.Fatalf("unexpected u node: %+v", u)
	}
	if len(u.Children) != 3 {
		t.Fatalf("expected 3 distinct children under u, got %d", len(u.Children))
	}
	var leafCount int
	tr.IterPaths(func(p Path) bool {
		leafCount++
		if len(p) != 3 {
			t.Errorf("path length = %d, want 3", len(p))
		}
		return true
	})
	if leafCount != 3 {
		t.Fatalf("expected 3 leaf paths, got %d", leafCount)
	}
}

func TestAddParsedPieces_ZeroCountPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero count")
		}
	}()
	tr := New()
	tr.AddParsedPieces(parsePieces(t, "a"), 0)
}

func TestNode_SetPatternOnceOnly(t *testing.T) {
	tr := New()
	tr.AddParsedPieces(parsePieces(t, "a"), 1)
	n := tr.Root.Children["a"]
	n.SetPattern(n.Pattern)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second SetPattern call")
		}
	}()
	n.SetPattern(n.Pattern)
}
