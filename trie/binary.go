package trie

import (
	"sort"

	"github.com/tudocomp-go/tdc/meta"
)

type binaryEdge struct {
	symbol byte
	child  uint64
}

// BinaryTrie stores, per node, a slice of (symbol, child) edges kept
// sorted by symbol and probed with binary search on every lookup —
// the layout its name refers to (spec.md §4.I, "plain pointer-array or
// child-sibling layouts").
type BinaryTrie struct {
	idCounter
	children map[uint64][]binaryEdge
	roots    map[uint64]uint64
	symbolOf map[uint64]byte
}

// NewBinaryTrie creates an empty BinaryTrie.
func NewBinaryTrie() *BinaryTrie {
	t := &BinaryTrie{}
	t.Clear()
	return t
}

func (t *BinaryTrie) Clear() {
	t.idCounter.clear()
	t.children = make(map[uint64][]binaryEdge)
	t.roots = make(map[uint64]uint64)
	t.symbolOf = make(map[uint64]byte)
}

// ChildSymbol recovers the edge symbol leading to child id. BinaryTrie
// supports this unconditionally since its sorted-edge layout already
// retains it.
func (t *BinaryTrie) ChildSymbol(id uint64) (byte, bool) {
	s, ok := t.symbolOf[id]
	return s, ok
}

func (t *BinaryTrie) Size() int { return t.idCounter.size() }

func (t *BinaryTrie) SignalCharacterRead(byte) {}

func (t *BinaryTrie) AddRootNode(rootID uint64) Node {
	id := t.alloc()
	t.roots[rootID] = id
	return Node{ID: id, IsNew: true}
}

func (t *BinaryTrie) AddRoots(n int) []Node {
	out := make([]Node, n)
	for i := 0; i < n; i++ {
		out[i] = t.AddRootNode(uint64(i))
	}
	return out
}

func (t *BinaryTrie) GetRootNode(rootID uint64) Node {
	id, ok := t.roots[rootID]
	if !ok {
		panic(Error("unknown root id"))
	}
	return Node{ID: id}
}

func (t *BinaryTrie) FindOrInsert(parent Node, symbol byte) Node {
	edges := t.children[parent.ID]
	i := sort.Search(len(edges), func(i int) bool { return edges[i].symbol >= symbol })
	if i < len(edges) && edges[i].symbol == symbol {
		return Node{ID: edges[i].child}
	}
	child := t.alloc()
	edges = append(edges, binaryEdge{})
	copy(edges[i+1:], edges[i:])
	edges[i] = binaryEdge{symbol: symbol, child: child}
	t.children[parent.ID] = edges
	t.symbolOf[child] = symbol
	return Node{ID: child, IsNew: true}
}

// BinaryTrieDecl declares the "binary" trie backing.
func BinaryTrieDecl() *meta.Decl {
	return meta.NewBuilder(Type, "binary", "sorted-edge-array trie backing").Build()
}
