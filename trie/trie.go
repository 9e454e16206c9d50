// Package trie implements the LZ78 dictionary trie of spec.md §4.I: one
// shared Trie contract with several interchangeable backing structures,
// ranging from plain pointer arrays to a parameterised compact hash map.
package trie

import "github.com/tudocomp-go/tdc/meta"

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "trie: " + string(e) }

// Type is the declared type every backing structure registers under, the
// bound sub-algorithm type lz78/lzw's "trie" parameter resolves against
// (spec.md §4.F).
var Type = &meta.TypeDesc{Name: "trie"}

// Node is a handle returned by AddRootNode/GetRootNode/FindOrInsert. ID is
// stable for the node's lifetime (until the owning Trie is Clear()'d);
// IsNew reports whether the call that produced this Node just created it.
type Node struct {
	ID    uint64
	IsNew bool
}

// Options configures behaviour shared across all backing implementations.
type Options struct {
	// RecordValues, when true, makes FindOrInsert record the symbol that
	// labels each edge for later retrieval (used by backings whose
	// natural storage doesn't already make this free, see
	// Trie.ChildSymbol). Open question §9 resolves its default per
	// backing in DESIGN.md.
	RecordValues bool
}

// Trie is the shared contract every backing structure satisfies
// (spec.md §4.I).
type Trie interface {
	// AddRootNode assigns the next free id (0 on an empty trie) to the
	// caller-chosen rootID and returns its Node. Only meaningful once per distinct rootID before any
	// FindOrInsert call references it.
	AddRootNode(rootID uint64) Node
	// AddRoots creates n root nodes (ids 0..n-1), one per byte of an
	// initial alphabet, for multi-root backings such as an LZW mode
	// (spec.md §4.I, "some variants (LZW) accept multiple roots").
	AddRoots(n int) []Node
	// GetRootNode returns the Node previously created by AddRootNode or
	// AddRoots for rootID.
	GetRootNode(rootID uint64) Node
	// FindOrInsert returns the child of parent labelled symbol, creating
	// it (IsNew == true, ID == Size()-1 after the call) if absent.
	FindOrInsert(parent Node, symbol byte) Node
	// Size returns the number of nodes, including roots.
	Size() int
	// Clear resets the trie to empty.
	Clear()
	// SignalCharacterRead is an advisory hook for backings (RollingTrie)
	// that cache a rolling hash over consumed symbols; backings that
	// don't need it ignore the call.
	SignalCharacterRead(c byte)
}

// idCounter is embedded by every backing to implement the shared
// Size/Clear/next-id bookkeeping.
type idCounter struct {
	next int
}

func (c *idCounter) size() int { return c.next }

func (c *idCounter) clear() { c.next = 0 }

func (c *idCounter) alloc() uint64 {
	id := uint64(c.next)
	c.next++
	return id
}

func edgeKey(parent uint64, symbol byte) uint64 {
	return parent<<8 | uint64(symbol)
}

// SymbolLookup is implemented by backings that can recover the edge
// symbol leading to a given child id. BinaryTrie/TernaryTrie always
// support it at no extra cost; HashTrie/RollingTrie/CompactHashTrie only
// when built with Options.RecordValues set (spec.md §9 open question on
// the "test_values" flag — see DESIGN.md).
type SymbolLookup interface {
	ChildSymbol(id uint64) (symbol byte, ok bool)
}

func defaultOptions(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[0]
}
