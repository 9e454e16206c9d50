// Package lz78 implements the pointer-jumping LZ78/LZW factoriser of
// spec.md §4.J: a dictionary trie walk that emits (reference, literal)
// factors, optimised by caching multi-byte "jumps" for windows that are
// known not to grow the dictionary.
package lz78

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "lz78: " + string(e) }

// Factor is one (dictionary reference, new literal) pair: the decoder
// reconstructs entries[ref] + literal and appends it both to the output
// and to its own mirrored dictionary.
type Factor struct {
	Ref     uint64
	Literal byte
}

// JumpWidth is the maximum lookahead window spec.md §4.J bounds the
// pointer-jumping optimisation to.
const JumpWidth = 17
