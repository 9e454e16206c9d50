package trie

import "github.com/tudocomp-go/tdc/meta"

// tstNode is one node of a per-parent binary search tree keyed by symbol
// byte — the "ternary" search tree layout (low/equal/high children, but
// since each level compares exactly one byte here there is no recursive
// "equal" descent; the name follows the family of structures tudocomp
// calls TernaryTrie).
type tstNode struct {
	symbol      byte
	child       uint64
	low, high   *tstNode
}

// TernaryTrie stores, per node, its children in an unbalanced
// binary-search tree over symbol bytes instead of BinaryTrie's sorted
// slice, trading array-shift insertion cost for tree-pointer cost
// (spec.md §4.I).
type TernaryTrie struct {
	idCounter
	roots    map[uint64]uint64
	children map[uint64]*tstNode
	symbolOf map[uint64]byte
}

// NewTernaryTrie creates an empty TernaryTrie.
func NewTernaryTrie() *TernaryTrie {
	t := &TernaryTrie{}
	t.Clear()
	return t
}

func (t *TernaryTrie) Clear() {
	t.idCounter.clear()
	t.roots = make(map[uint64]uint64)
	t.children = make(map[uint64]*tstNode)
	t.symbolOf = make(map[uint64]byte)
}

// ChildSymbol recovers the edge symbol leading to child id.
func (t *TernaryTrie) ChildSymbol(id uint64) (byte, bool) {
	s, ok := t.symbolOf[id]
	return s, ok
}

func (t *TernaryTrie) Size() int { return t.idCounter.size() }

func (t *TernaryTrie) SignalCharacterRead(byte) {}

func (t *TernaryTrie) AddRootNode(rootID uint64) Node {
	id := t.alloc()
	t.roots[rootID] = id
	return Node{ID: id, IsNew: true}
}

func (t *TernaryTrie) AddRoots(n int) []Node {
	out := make([]Node, n)
	for i := 0; i < n; i++ {
		out[i] = t.AddRootNode(uint64(i))
	}
	return out
}

func (t *TernaryTrie) GetRootNode(rootID uint64) Node {
	id, ok := t.roots[rootID]
	if !ok {
		panic(Error("unknown root id"))
	}
	return Node{ID: id}
}

func (t *TernaryTrie) FindOrInsert(parent Node, symbol byte) Node {
	root := t.children[parent.ID]
	if root == nil {
		child := t.alloc()
		t.children[parent.ID] = &tstNode{symbol: symbol, child: child}
		t.symbolOf[child] = symbol
		return Node{ID: child, IsNew: true}
	}
	n := root
	for {
		switch {
		case symbol < n.symbol:
			if n.low == nil {
				child := t.alloc()
				n.low = &tstNode{symbol: symbol, child: child}
				t.symbolOf[child] = symbol
				return Node{ID: child, IsNew: true}
			}
			n = n.low
		case symbol > n.symbol:
			if n.high == nil {
				child := t.alloc()
				n.high = &tstNode{symbol: symbol, child: child}
				t.symbolOf[child] = symbol
				return Node{ID: child, IsNew: true}
			}
			n = n.high
		default:
			return Node{ID: n.child}
		}
	}
}

// TernaryTrieDecl declares the "ternary" trie backing.
func TernaryTrieDecl() *meta.Decl {
	return meta.NewBuilder(Type, "ternary", "per-parent binary-search-tree trie backing").Build()
}
