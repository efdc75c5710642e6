package cluster

import (
	"github.com/patterncluster/urlpattern/piece"
	"github.com/patterncluster/urlpattern/tree"
)

// testNode builds a standalone *tree.Node for bag/bucket unit tests that
// don't need a whole tree, just a node with a literal piece and a count.
type testNode struct {
	piece string
	count int
}

func (n *testNode) node() *tree.Node {
	pp, err := piece.NewParser().Parse(n.piece)
	if err != nil {
		panic(err)
	}
	return &tree.Node{ParsedPiece: pp, Count: n.count, Children: map[string]*tree.Node{}}
}
