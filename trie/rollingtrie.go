package trie

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/tudocomp-go/tdc/meta"
)

// RollingTrie keys each node by a cached structural hash instead of its
// parent id, computed once at creation time from the parent's cached
// hash, the edge symbol, and the advisory rolling digest fed by
// SignalCharacterRead — the "rolling hash" variant of spec.md §4.I,
// backed by xxhash rather than the teacher's (absent) hand-rolled rolling
// hash. Caching the hash per node, rather than recomputing it against a
// continuously advancing digest at lookup time, is what keeps repeated
// FindOrInsert calls against the same (parent, symbol) edge — required
// whenever a dictionary path recurs later in the input — deterministic.
type RollingTrie struct {
	idCounter
	roots    map[uint64]uint64
	nodeHash map[uint64]uint64
	children map[uint64]uint64
	digest   *xxhash.Digest
	symbolOf map[uint64]byte // nil unless Options.RecordValues was set
}

// NewRollingTrie creates an empty RollingTrie. By default no id->symbol
// table is kept; pass Options{RecordValues: true} to enable ChildSymbol.
func NewRollingTrie(opts ...Options) *RollingTrie {
	t := &RollingTrie{digest: xxhash.New()}
	if defaultOptions(opts).RecordValues {
		t.symbolOf = make(map[uint64]byte)
	}
	t.Clear()
	return t
}

func (t *RollingTrie) Clear() {
	t.idCounter.clear()
	t.roots = make(map[uint64]uint64)
	t.nodeHash = make(map[uint64]uint64)
	t.children = make(map[uint64]uint64)
	t.digest.Reset()
	if t.symbolOf != nil {
		t.symbolOf = make(map[uint64]byte)
	}
}

// ChildSymbol recovers the edge symbol leading to child id, if this
// RollingTrie was built with Options.RecordValues set.
func (t *RollingTrie) ChildSymbol(id uint64) (byte, bool) {
	if t.symbolOf == nil {
		return 0, false
	}
	s, ok := t.symbolOf[id]
	return s, ok
}

func (t *RollingTrie) Size() int { return t.idCounter.size() }

// SignalCharacterRead folds c into the advisory rolling digest, which
// seeds the cached hash of the next node(s) created.
func (t *RollingTrie) SignalCharacterRead(c byte) {
	t.digest.Write([]byte{c})
}

func (t *RollingTrie) AddRootNode(rootID uint64) Node {
	id := t.alloc()
	t.roots[rootID] = id
	t.nodeHash[id] = rootID
	return Node{ID: id, IsNew: true}
}

func (t *RollingTrie) AddRoots(n int) []Node {
	out := make([]Node, n)
	for i := 0; i < n; i++ {
		out[i] = t.AddRootNode(uint64(i))
	}
	return out
}

func (t *RollingTrie) GetRootNode(rootID uint64) Node {
	id, ok := t.roots[rootID]
	if !ok {
		panic(Error("unknown root id"))
	}
	return Node{ID: id}
}

func edgeHashKey(parentHash uint64, symbol byte) uint64 {
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], parentHash)
	buf[8] = symbol
	return xxhash.Sum64(buf[:])
}

func (t *RollingTrie) FindOrInsert(parent Node, symbol byte) Node {
	parentHash := t.nodeHash[parent.ID]
	key := edgeHashKey(parentHash, symbol)
	if child, ok := t.children[key]; ok {
		return Node{ID: child}
	}
	child := t.alloc()
	t.nodeHash[child] = key ^ t.digest.Sum64()
	t.children[key] = child
	if t.symbolOf != nil {
		t.symbolOf[child] = symbol
	}
	return Node{ID: child, IsNew: true}
}

// RollingTrieDecl declares the "rolling" trie backing.
func RollingTrieDecl() *meta.Decl {
	return meta.NewBuilder(Type, "rolling", "xxhash-backed rolling-hash trie backing").Build()
}
