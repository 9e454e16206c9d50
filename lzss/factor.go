// Package lzss implements the LCP/LZSS factoriser of spec.md §4.K: an
// LZ77-style parse driven entirely off a precomputed suffix array, ISA,
// and LCP array rather than a hash-chain match finder.
package lzss

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "lzss: " + string(e) }

// Factor is a back-reference triple: copy Len bytes from Src into the
// position Pos, with Src < Pos (spec.md §4.B "LZSS factor").
type Factor struct {
	Pos int
	Src int
	Len int
}

// DefaultThreshold is the minimum match length an LZSS factor must
// reach to be worth emitting over the literal bytes it would replace.
const DefaultThreshold = 3
