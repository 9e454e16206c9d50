package lzss

import (
	"bytes"
	"io"

	"github.com/tudocomp-go/tdc/bitio"
	"github.com/tudocomp-go/tdc/coder"
)

// Compressor wires Factorize to a literal Coder, the lzss(coder=...,
// threshold=...) compressor of spec.md §4.K.
type Compressor struct {
	Coder     coder.Coder
	Threshold int
}

// Compress factorises input (which must already carry a trailing
// sentinel byte) and writes the wire-format payload to w: an entry
// count, then one structure record per entry (a flag bit, and for
// factors a (src, len) compressed-int pair — literal entries carry no
// structure payload beyond the flag since the byte itself travels
// through the literal coder), then the coder's encoded literal run in
// text order. As in lz78.Compressor, structure and literals are kept in
// two separate regions rather than interleaved because coder.Block only
// emits bits at Finish.
func (c *Compressor) Compress(w io.Writer, input []byte) error {
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	entries := Factorize(input, threshold)

	bw := bitio.NewWriter(w)
	if err := bw.WriteCompressedInt(uint64(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := bw.WriteBit(!e.IsLiteral); err != nil {
			return err
		}
		if !e.IsLiteral {
			if err := bw.WriteCompressedInt(uint64(e.Factor.Src)); err != nil {
				return err
			}
			if err := bw.WriteCompressedInt(uint64(e.Factor.Len)); err != nil {
				return err
			}
		}
	}

	enc := c.Coder.NewEncoder()
	if err := enc.Begin(bw); err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsLiteral {
			if err := enc.EncodeLiteral(bw, e.Literal); err != nil {
				return err
			}
		}
	}
	if err := enc.Finish(bw); err != nil {
		return err
	}
	return bw.Close()
}

// Decompress reads a payload written by Compress and reconstructs the
// original bytes, copying factor ranges out of the output buffer built
// so far — the in-memory mirror of the "sliding output buffer" spec.md
// §4.K describes the decoder copying from.
func (c *Compressor) Decompress(r io.Reader) ([]byte, error) {
	br := bitio.NewReader(r)
	n, err := br.ReadCompressedInt()
	if err != nil {
		return nil, err
	}

	type structRec struct {
		isLiteral bool
		src, ln   int
	}
	recs := make([]structRec, n)
	for i := range recs {
		isFactor, err := br.ReadBit()
		if err != nil {
			return nil, err
		}
		if isFactor {
			src, err := br.ReadCompressedInt()
			if err != nil {
				return nil, err
			}
			ln, err := br.ReadCompressedInt()
			if err != nil {
				return nil, err
			}
			recs[i] = structRec{isLiteral: false, src: int(src), ln: int(ln)}
		} else {
			recs[i] = structRec{isLiteral: true}
		}
	}

	dec := c.Coder.NewDecoder()
	if err := dec.Begin(br); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	for _, rec := range recs {
		if rec.isLiteral {
			b, err := dec.DecodeLiteral(br)
			if err != nil {
				return nil, err
			}
			out.WriteByte(b)
			continue
		}
		if rec.src >= out.Len() {
			return nil, Error("factor references data beyond what has been decoded")
		}
		// Copy byte by byte, re-reading out.Bytes() every iteration:
		// spec.md §4.B explicitly permits src+len to overlap pos (a
		// self-referential run, e.g. an RLE-like repeat), so by the
		// time we copy byte k the source index src+k may itself be a
		// byte this very loop just wrote. A bulk copy off a slice taken
		// once up front would miss that and copy stale/zero data.
		for k := 0; k < rec.ln; k++ {
			out.WriteByte(out.Bytes()[rec.src+k])
		}
	}
	return out.Bytes(), nil
}
