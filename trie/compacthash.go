package trie

import (
	"github.com/tudocomp-go/tdc/hash"
	"github.com/tudocomp-go/tdc/meta"
)

// CompactHashTrie parameterises the displacement strategy of §4.D: each
// FindOrInsert corresponds to a single hash.Map.At lookup_insert, and the
// map's own resize notification keeps the trie's own bookkeeping
// consistent since the trie never stores slot positions itself — only
// the map does (spec.md §4.I, "on_resize rebuilds any external id→bytes
// tables").
type CompactHashTrie struct {
	idCounter
	roots    map[uint64]uint64
	children *hash.Map
	symbolOf map[uint64]byte // nil unless Options.RecordValues was set
}

// NewCompactHashTrie creates an empty CompactHashTrie. keyWidth bounds
// the bit width of parent_id<<8|byte keys the trie will ever present. By
// default no id->symbol table is kept; pass Options{RecordValues: true}
// to enable ChildSymbol.
func NewCompactHashTrie(keyWidth uint, maxLoadFactor float64, hf hash.Func, opts ...Options) *CompactHashTrie {
	t := &CompactHashTrie{}
	t.roots = make(map[uint64]uint64)
	t.children = hash.NewMap(keyWidth, 40, maxLoadFactor, hf)
	if defaultOptions(opts).RecordValues {
		t.symbolOf = make(map[uint64]byte)
	}
	return t
}

func (t *CompactHashTrie) Clear() {
	t.idCounter.clear()
	t.roots = make(map[uint64]uint64)
	t.children = hash.NewMap(t.children.KeyWidth(), 40, t.children.MaxLoadFactor(), t.children.HashFunc())
	if t.symbolOf != nil {
		t.symbolOf = make(map[uint64]byte)
	}
}

// ChildSymbol recovers the edge symbol leading to child id, if this
// CompactHashTrie was built with Options.RecordValues set.
func (t *CompactHashTrie) ChildSymbol(id uint64) (byte, bool) {
	if t.symbolOf == nil {
		return 0, false
	}
	s, ok := t.symbolOf[id]
	return s, ok
}

func (t *CompactHashTrie) Size() int { return t.idCounter.size() }

func (t *CompactHashTrie) SignalCharacterRead(byte) {}

func (t *CompactHashTrie) AddRootNode(rootID uint64) Node {
	id := t.alloc()
	t.roots[rootID] = id
	return Node{ID: id, IsNew: true}
}

func (t *CompactHashTrie) AddRoots(n int) []Node {
	out := make([]Node, n)
	for i := 0; i < n; i++ {
		out[i] = t.AddRootNode(uint64(i))
	}
	return out
}

func (t *CompactHashTrie) GetRootNode(rootID uint64) Node {
	id, ok := t.roots[rootID]
	if !ok {
		panic(Error("unknown root id"))
	}
	return Node{ID: id}
}

func (t *CompactHashTrie) FindOrInsert(parent Node, symbol byte) Node {
	key := edgeKey(parent.ID, symbol)
	var created bool
	id := t.children.At(key, func() uint64 {
		created = true
		return t.alloc()
	})
	if created && t.symbolOf != nil {
		t.symbolOf[id] = symbol
	}
	return Node{ID: id, IsNew: created}
}

// CompactHashTrieDecl declares the "compacthash" trie backing: a Cleary-
// style quotient hash table (hash.Map) standing in for the trie's
// child-edge storage (spec.md §4.D/§4.I). key_width and max_load_factor
// are exposed as Config parameters the way tudocomp's CompactSparseHashTrie
// exposes its table's construction knobs.
func CompactHashTrieDecl() *meta.Decl {
	return meta.NewBuilder(Type, "compacthash", "Cleary-style compact hash table trie backing").
		Primitive("key_width", "bit width of parent_id<<8|byte keys", "24").
		Primitive("max_load_factor", "table growth threshold", "0.9").
		Build()
}
