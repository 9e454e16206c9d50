package lz78

import "github.com/tudocomp-go/tdc/trie"

// jumpKey identifies a (node, lookahead window) pair in the jump cache.
// Arrays are comparable in Go, so this is usable directly as a map key.
type jumpKey struct {
	node uint64
	buf  [JumpWidth]byte
	n    int
}

type jumpVal struct {
	p, v trie.Node
}

// Factorizer runs the pointer-jumping LZ78/LZW parse of spec.md §4.J over
// a backing Trie.
type Factorizer struct {
	Trie      trie.Trie
	JumpWidth int
	DictSize  int // 0 means unbounded; resets the trie once Size() reaches it

	root trie.Node
}

// NewFactorizer creates a Factorizer over t with the given jump window and
// dictionary size bound. A jumpWidth outside [1, JumpWidth] is replaced
// by JumpWidth.
func NewFactorizer(t trie.Trie, jumpWidth int, dictSize int) *Factorizer {
	if jumpWidth <= 0 || jumpWidth > JumpWidth {
		jumpWidth = JumpWidth
	}
	return &Factorizer{Trie: t, JumpWidth: jumpWidth, DictSize: dictSize}
}

// Factorize parses the whole of input and returns its factor stream.
//
// The jump cache only ever records a window (node, buf) that drained
// without creating any new trie node. That is what makes a later cache
// hit safe to skip silently: since nothing in the trie changed along
// that path the first time, the same window from the same node can only
// ever re-traverse existing edges, so replaying it by jumping straight to
// the recorded (p, v) can never skip a factor that would otherwise have
// been emitted.
func (f *Factorizer) Factorize(input []byte) []Factor {
	f.root = f.Trie.AddRootNode(0)
	return f.factorizeFrom(f.root, input)
}

// factorizeFrom runs the same parse as Factorize but starting from an
// already-established root node, for multi-root (LZW-style) use where
// the caller has pre-populated several roots via AddRoots and selects
// among them before the first FindOrInsert.
func (f *Factorizer) factorizeFrom(start trie.Node, input []byte) []Factor {
	f.root = start
	jumps := make(map[jumpKey]jumpVal)

	v, p := f.root, f.root
	var factors []Factor
	var lastByte byte
	pos := 0

	for pos < len(input) {
		n := f.JumpWidth
		if rem := len(input) - pos; rem < n {
			n = rem
		}
		var buf [JumpWidth]byte
		copy(buf[:n], input[pos:pos+n])

		if n == f.JumpWidth {
			if jv, ok := jumps[jumpKey{node: v.ID, buf: buf, n: n}]; ok {
				p, v = jv.p, jv.v
				lastByte = buf[n-1]
				pos += n
				continue
			}
		}

		startNode := v.ID
		noInsert := true
		for i := 0; i < n; i++ {
			c := buf[i]
			lastByte = c
			f.Trie.SignalCharacterRead(c)
			child := f.Trie.FindOrInsert(v, c)
			if child.IsNew {
				factors = append(factors, Factor{Ref: v.ID, Literal: c})
				noInsert = false
				v, p = f.root, f.root
				f.maybeResetDict(&v, &p, jumps)
			} else {
				p = v
				v = child
			}
		}
		if n == f.JumpWidth && noInsert {
			jumps[jumpKey{node: startNode, buf: buf, n: n}] = jumpVal{p: p, v: v}
		}
		pos += n
	}

	if v.ID != f.root.ID {
		factors = append(factors, Factor{Ref: p.ID, Literal: lastByte})
	}
	return factors
}

func (f *Factorizer) maybeResetDict(v, p *trie.Node, jumps map[jumpKey]jumpVal) {
	if f.DictSize <= 0 || f.Trie.Size() < f.DictSize {
		return
	}
	f.Trie.Clear()
	for k := range jumps {
		delete(jumps, k)
	}
	f.root = f.Trie.AddRootNode(0)
	*v, *p = f.root, f.root
}
