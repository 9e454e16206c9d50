package trie

import "github.com/tudocomp-go/tdc/meta"

// HashTrie keys child lookups by (parent_id << 8 | byte) in a plain Go
// map — the "key = (parent_id << 8) | byte, value = child id" backing of
// spec.md §4.I.
type HashTrie struct {
	idCounter
	roots    map[uint64]uint64
	children map[uint64]uint64
	symbolOf map[uint64]byte // nil unless Options.RecordValues was set
}

// NewHashTrie creates an empty HashTrie. By default no id->symbol table
// is kept; pass Options{RecordValues: true} to enable ChildSymbol.
func NewHashTrie(opts ...Options) *HashTrie {
	t := &HashTrie{}
	if defaultOptions(opts).RecordValues {
		t.symbolOf = make(map[uint64]byte)
	}
	t.Clear()
	return t
}

func (t *HashTrie) Clear() {
	t.idCounter.clear()
	t.roots = make(map[uint64]uint64)
	t.children = make(map[uint64]uint64)
	if t.symbolOf != nil {
		t.symbolOf = make(map[uint64]byte)
	}
}

// ChildSymbol recovers the edge symbol leading to child id, if this
// HashTrie was built with Options.RecordValues set.
func (t *HashTrie) ChildSymbol(id uint64) (byte, bool) {
	if t.symbolOf == nil {
		return 0, false
	}
	s, ok := t.symbolOf[id]
	return s, ok
}

func (t *HashTrie) Size() int { return t.idCounter.size() }

func (t *HashTrie) SignalCharacterRead(byte) {}

func (t *HashTrie) AddRootNode(rootID uint64) Node {
	id := t.alloc()
	t.roots[rootID] = id
	return Node{ID: id, IsNew: true}
}

func (t *HashTrie) AddRoots(n int) []Node {
	out := make([]Node, n)
	for i := 0; i < n; i++ {
		out[i] = t.AddRootNode(uint64(i))
	}
	return out
}

func (t *HashTrie) GetRootNode(rootID uint64) Node {
	id, ok := t.roots[rootID]
	if !ok {
		panic(Error("unknown root id"))
	}
	return Node{ID: id}
}

func (t *HashTrie) FindOrInsert(parent Node, symbol byte) Node {
	key := edgeKey(parent.ID, symbol)
	if child, ok := t.children[key]; ok {
		return Node{ID: child}
	}
	child := t.alloc()
	t.children[key] = child
	if t.symbolOf != nil {
		t.symbolOf[child] = symbol
	}
	return Node{ID: child, IsNew: true}
}

// HashTrieDecl declares the "hash" trie backing.
func HashTrieDecl() *meta.Decl {
	return meta.NewBuilder(Type, "hash", "plain Go-map trie backing keyed by (parent id, byte)").Build()
}
