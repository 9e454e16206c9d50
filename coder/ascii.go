package coder

import (
	"github.com/tudocomp-go/tdc/bitio"
	"github.com/tudocomp-go/tdc/meta"
)

// Ascii is the passthrough coder: every literal is written/read as a
// plain 8-bit value, spending no effort on entropy coding. It is the
// baseline binding every compressor in this module can fall back to
// (spec.md §9's "ascii" default coder).
type Ascii struct{}

type asciiEncoder struct{}
type asciiDecoder struct{}

func (Ascii) NewEncoder() Encoder { return asciiEncoder{} }
func (Ascii) NewDecoder() Decoder { return asciiDecoder{} }

// AsciiDecl declares the "ascii" coder algorithm.
func AsciiDecl() *meta.Decl {
	return meta.NewBuilder(Type, "ascii", "passthrough 8-bit literal coder").Build()
}

func (asciiEncoder) Begin(*bitio.Writer) error { return nil }

func (asciiEncoder) EncodeLiteral(w *bitio.Writer, b byte) error {
	return w.WriteInt(uint64(b), 8)
}

func (asciiEncoder) Finish(*bitio.Writer) error { return nil }

func (asciiDecoder) Begin(*bitio.Reader) error { return nil }

func (asciiDecoder) DecodeLiteral(r *bitio.Reader) (byte, error) {
	v, err := r.ReadInt(8)
	return byte(v), err
}
