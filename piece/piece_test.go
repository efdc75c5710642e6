package piece

import (
	"errors"
	"testing"
)

func TestParse_SingleRun(t *testing.T) {
	p := NewParser()
	pp, err := p.Parse("abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pp.Piece != "abc" || pp.PieceLength != 3 {
		t.Fatalf("unexpected piece: %+v", pp)
	}
	if len(pp.Pieces) != 1 || pp.Pieces[0] != "abc" {
		t.Fatalf("expected single sub-piece, got %+v", pp.Pieces)
	}
	if pp.Rules[0] != RuleLower {
		t.Fatalf("expected lower rule, got %v", pp.Rules[0])
	}
	if pp.FuzzyRule != string(RuleLower) {
		t.Fatalf("unexpected fuzzy rule: %s", pp.FuzzyRule)
	}
}

func TestParse_MixedRuns(t *testing.T) {
	p := NewParser()
	pp, err := p.Parse("item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantPieces := []string{"item", "-", "1"}
	if len(pp.Pieces) != len(wantPieces) {
		t.Fatalf("expected %d sub-pieces, got %d (%+v)", len(wantPieces), len(pp.Pieces), pp.Pieces)
	}
	for i, w := range wantPieces {
		if pp.Pieces[i] != w {
			t.Errorf("sub-piece %d: got %q want %q", i, pp.Pieces[i], w)
		}
	}
	wantRules := []Rule{RuleLower, "[\\-]", RuleDigit}
	for i, w := range wantRules {
		if pp.Rules[i] != w {
			t.Errorf("rule %d: got %v want %v", i, pp.Rules[i], w)
		}
	}
	// Adjacent runs of the same class never occur; fuzzy rule lists each
	// distinct class once, in first-appearance order.
	if pp.FuzzyRule != string(RuleLower)+"[\\-]"+string(RuleDigit) {
		t.Fatalf("unexpected fuzzy rule: %s", pp.FuzzyRule)
	}
}

func TestParse_NoAdjacentSameClassRuns(t *testing.T) {
	p := NewParser()
	pp, err := p.Parse("a1b2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pp.Pieces) != 4 {
		t.Fatalf("expected 4 alternating runs, got %d (%+v)", len(pp.Pieces), pp.Pieces)
	}
}

func TestParse_Empty(t *testing.T) {
	p := NewParser()
	pp, err := p.Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pp.Piece != "" || pp.PieceLength != 0 {
		t.Fatalf("unexpected piece: %+v", pp)
	}
	if len(pp.Pieces) != 1 || len(pp.Rules) != 1 {
		t.Fatalf("invariant violated: len(pieces) == len(rules) >= 1, got %+v", pp)
	}
}

func TestParse_InvalidChar(t *testing.T) {
	p := NewParser()
	_, err := p.Parse("bad\x01byte")
	if err == nil {
		t.Fatal("expected InvalidCharError")
	}
	var invErr *InvalidCharError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected *InvalidCharError, got %T: %v", err, err)
	}
	if invErr.Pos != 3 {
		t.Errorf("expected error at position 3, got %d", invErr.Pos)
	}
}

func TestEqual(t *testing.T) {
	p := NewParser()
	a, _ := p.Parse("foo")
	b, _ := p.Parse("foo")
	c, _ := p.Parse("bar")
	if !a.Equal(b) {
		t.Error("expected equal pieces with same literal")
	}
	if a.Equal(c) {
		t.Error("expected unequal pieces with different literal")
	}
}

