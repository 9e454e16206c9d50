// Package coder implements the entropy-coder contract spec.md §1.3/§9
// describe only at the interface level: compressors (lz78, lzss) emit
// literal bytes through a Coder, leaving the concrete bit layout to the
// chosen binding.
package coder

import (
	"github.com/tudocomp-go/tdc/bitio"
	"github.com/tudocomp-go/tdc/meta"
)

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "coder: " + string(e) }

// Type is the declared type every concrete Coder registers under, the
// sub-algorithm type a compressor's unbound "coder" parameter resolves
// against (spec.md §4.F).
var Type = &meta.TypeDesc{Name: "coder"}

// Encoder codes a run of literal bytes produced by a compressor. Begin is
// called once before the first EncodeLiteral of a run; Finish is called
// once after the last, and is where block-oriented bindings actually emit
// their payload.
type Encoder interface {
	Begin(w *bitio.Writer) error
	EncodeLiteral(w *bitio.Writer, b byte) error
	Finish(w *bitio.Writer) error
}

// Decoder is the inverse of Encoder: Begin reads whatever header/block
// Encoder.Finish wrote, and DecodeLiteral then yields literals one at a
// time in the same order they were encoded.
type Decoder interface {
	Begin(r *bitio.Reader) error
	DecodeLiteral(r *bitio.Reader) (byte, error)
}

// Coder is a named, stateless factory for a matched Encoder/Decoder pair,
// the thing a compressor's Config "coder" parameter resolves to (e.g.
// "lz78(coder=ascii())").
type Coder interface {
	NewEncoder() Encoder
	NewDecoder() Decoder
}
