package lz78

import (
	"bytes"
	"io"

	"github.com/tudocomp-go/tdc/bitio"
	"github.com/tudocomp-go/tdc/coder"
	"github.com/tudocomp-go/tdc/trie"
)

// Compressor wires a Factorizer to a literal Coder, producing the
// concrete on-wire form of an lz78(coder=...) or lzw(coder=...)
// compressor (spec.md §4.J, supplemented feature 3 for multi-root LZW).
type Compressor struct {
	NewTrie   func() trie.Trie
	Coder     coder.Coder
	JumpWidth int
	DictSize  int
	Roots     int // 1 for lz78; len(alphabet) for an LZW-style multi-root mode
}

// Compress factorises input and writes the wire-format payload to w: a
// factor count, then every factor's reference (each a compressed
// integer), then the coder's encoded literal run. References and
// literals are two separate contiguous regions rather than interleaved
// per factor so that block-oriented coders (coder.Block) — which only
// emit anything at Finish — produce a stream a single decode pass can
// still walk in lock-step with the matching Ascii-coder layout.
func (c *Compressor) Compress(w io.Writer, input []byte) error {
	t := c.NewTrie()
	f := NewFactorizer(t, c.JumpWidth, c.DictSize)
	if c.Roots > 1 {
		f.root = rootsForFactorizer(t, c.Roots)
	}
	factors := factorizeWithRoots(f, t, input, c.Roots)

	bw := bitio.NewWriter(w)
	if err := bw.WriteCompressedInt(uint64(len(factors))); err != nil {
		return err
	}
	for _, fac := range factors {
		if err := bw.WriteCompressedInt(fac.Ref); err != nil {
			return err
		}
	}
	enc := c.Coder.NewEncoder()
	if err := enc.Begin(bw); err != nil {
		return err
	}
	for _, fac := range factors {
		if err := enc.EncodeLiteral(bw, fac.Literal); err != nil {
			return err
		}
	}
	if err := enc.Finish(bw); err != nil {
		return err
	}
	return bw.Close()
}

// Decompress reads a payload written by Compress and returns the
// original bytes.
func (c *Compressor) Decompress(r io.Reader) ([]byte, error) {
	br := bitio.NewReader(r)
	n, err := br.ReadCompressedInt()
	if err != nil {
		return nil, err
	}
	refs := make([]uint64, n)
	for i := range refs {
		refs[i], err = br.ReadCompressedInt()
		if err != nil {
			return nil, err
		}
	}
	dec := c.Coder.NewDecoder()
	if err := dec.Begin(br); err != nil {
		return nil, err
	}

	roots := c.Roots
	if roots <= 0 {
		roots = 1
	}
	entries := make([][]byte, roots)
	for i := range entries {
		entries[i] = nil
	}
	dictSize := c.DictSize

	var out bytes.Buffer
	for i := uint64(0); i < n; i++ {
		lit, err := dec.DecodeLiteral(br)
		if err != nil {
			return nil, err
		}
		ref := refs[i]
		s := append(append([]byte{}, entries[ref]...), lit)
		out.Write(s)
		entries = append(entries, s)
		if dictSize > 0 && len(entries) >= dictSize {
			entries = make([][]byte, roots)
		}
	}
	return out.Bytes(), nil
}

// rootsForFactorizer installs n roots (ids 0..n-1) instead of the single
// root Factorize would otherwise create, for LZW-style multi-root mode.
func rootsForFactorizer(t trie.Trie, n int) trie.Node {
	roots := t.AddRoots(n)
	return roots[0]
}

// factorizeWithRoots runs Factorize but, for the multi-root case, the
// first byte of input selects which root to start from rather than
// always starting at a single id-0 root.
func factorizeWithRoots(f *Factorizer, t trie.Trie, input []byte, rootCount int) []Factor {
	if rootCount <= 1 {
		return f.Factorize(input)
	}
	if len(input) == 0 {
		return nil
	}
	start := t.GetRootNode(uint64(input[0]))
	f.root = start
	return f.factorizeFrom(start, input)
}
