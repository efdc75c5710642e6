package cluster

import "testing"

func TestConfused(t *testing.T) {
	cases := []struct {
		total, part, threshold int
		want                    bool
	}{
		{total: 2, part: 2, threshold: 3, want: false}, // below threshold entirely
		{total: 6, part: 3, threshold: 3, want: true},  // both halves meet threshold
		{total: 10, part: 5, threshold: 3, want: true}, // even split, both sides clear
		{total: 10, part: 9, threshold: 3, want: false}, // lopsided majority, not confused
		{total: 3, part: 3, threshold: 3, want: false},  // single dominant member, no other side
	}
	for _, c := range cases {
		if got := confused(c.total, c.part, c.threshold); got != c.want {
			t.Errorf("confused(%d,%d,%d) = %v, want %v", c.total, c.part, c.threshold, got, c.want)
		}
	}
}

func TestPieceBucket_InsertionOrderAndAggregation(t *testing.T) {
	b := newPieceBucket()
	n1 := &testNode{piece: "a", count: 2}
	n2 := &testNode{piece: "b", count: 3}
	b.Add(n1.node())
	b.Add(n2.node())
	b.Add(n1.node())

	if b.Count() != 7 {
		t.Fatalf("aggregate count = %d, want 7", b.Count())
	}
	if b.Len() != 2 {
		t.Fatalf("distinct pieces = %d, want 2", b.Len())
	}
	bags := b.Bags()
	if bags[0].Pick().ParsedPiece.Piece != "a" || bags[1].Pick().ParsedPiece.Piece != "b" {
		t.Fatalf("expected insertion order a,b; got %+v", bags)
	}
}

func TestLengthPieceBucket_DuplicatePiecePanics(t *testing.T) {
	lb := newLengthPieceBucket()
	pb := newPieceBag()
	pb.Add((&testNode{piece: "ab", count: 1}).node())
	lb.Add(pb)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate piece")
		}
	}()
	pb2 := newPieceBag()
	pb2.Add((&testNode{piece: "ab", count: 1}).node())
	lb.Add(pb2)
}
