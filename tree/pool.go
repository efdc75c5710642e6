package tree

import "sync"

// nodePool recycles *Node and its Children map across trees, the same
// pointer-safe sync.Pool idiom the teacher's parser/pools.go uses for its
// own *Node type (a map-valued struct allocated in large numbers on a hot
// insertion path).
var nodePool = sync.Pool{
	New: func() any {
		return &Node{Children: make(map[string]*Node)}
	},
}

func getNode() *Node {
	n, _ := nodePool.Get().(*Node)
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	return n
}

// Release returns every node in the tree to the pool. Call it only once the
// tree (and any Path/Node values derived from it) are no longer referenced
// — the make command calls it after a clustered tree has been dumped
// through a Formatter, and the cluster package after each inner tree.
func (t *Tree) Release() {
	if t.Root == nil {
		return
	}
	releaseNode(t.Root)
	t.Root = nil
}

func releaseNode(n *Node) {
	for _, c := range n.Children {
		releaseNode(c)
	}
	for k := range n.Children {
		delete(n.Children, k)
	}
	*n = Node{Children: n.Children}
	nodePool.Put(n)
}
