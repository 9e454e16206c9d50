package lz78

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tudocomp-go/tdc/coder"
	"github.com/tudocomp-go/tdc/trie"
)

// expectedFactors is the classic LZ78 textbook parse of "abcdebcdeabc":
// the same tree trie.expectedFixture documents, but expressed as the
// (ref, literal) stream a Factorizer must emit, including the final
// unterminated-match tail factor (0, 'c'): the trailing "c" ends on the
// existing node 3, whose parent is the root.
func expectedFactors() []Factor {
	return []Factor{
		{Ref: 0, Literal: 'a'},
		{Ref: 0, Literal: 'b'},
		{Ref: 0, Literal: 'c'},
		{Ref: 0, Literal: 'd'},
		{Ref: 0, Literal: 'e'},
		{Ref: 2, Literal: 'c'},
		{Ref: 4, Literal: 'e'},
		{Ref: 1, Literal: 'b'},
		{Ref: 0, Literal: 'c'},
	}
}

func TestFactorizeMatchesClassicParse(t *testing.T) {
	tr := trie.NewBinaryTrie()
	f := NewFactorizer(tr, JumpWidth, 0)
	got := f.Factorize([]byte("abcdebcdeabc"))
	assert.Equal(t, expectedFactors(), got)
}

func TestFactorizeAgreesAcrossJumpWidths(t *testing.T) {
	input := []byte("abcdebcdeabcabcdebcdeabcdeabcde")
	var baseline []Factor
	for _, jw := range []int{1, 2, 5, JumpWidth} {
		tr := trie.NewBinaryTrie()
		f := NewFactorizer(tr, jw, 0)
		got := f.Factorize(input)
		if baseline == nil {
			baseline = got
		} else {
			assert.Equal(t, baseline, got, "jumpWidth=%d produced a different factor stream", jw)
		}
	}
}

func TestFactorizeEmptyInput(t *testing.T) {
	tr := trie.NewBinaryTrie()
	f := NewFactorizer(tr, JumpWidth, 0)
	assert.Empty(t, f.Factorize(nil))
}

func TestFactorizeDictSizeResetStaysConsistent(t *testing.T) {
	input := bytes.Repeat([]byte("abcdefgh"), 50)
	tr := trie.NewBinaryTrie()
	f := NewFactorizer(tr, JumpWidth, 8) // tiny bound forces frequent resets
	factors := f.Factorize(input)
	assert.NotEmpty(t, factors)
	for _, fac := range factors {
		assert.Less(t, fac.Ref, uint64(8))
	}
}

func TestCompressDecompressRoundTripAscii(t *testing.T) {
	input := []byte("abcdebcdeabcabcdebcdeabcdeabcde the quick brown fox")
	c := &Compressor{
		NewTrie: func() trie.Trie { return trie.NewBinaryTrie() },
		Coder:   coder.Ascii{},
		Roots:   1,
	}
	var buf bytes.Buffer
	assert.NoError(t, c.Compress(&buf, input))
	out, err := c.Decompress(&buf)
	assert.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestCompressDecompressRoundTripBlock(t *testing.T) {
	input := bytes.Repeat([]byte("mississippi river "), 20)
	c := &Compressor{
		NewTrie: func() trie.Trie { return trie.NewHashTrie() },
		Coder:   coder.Block{},
		Roots:   1,
	}
	var buf bytes.Buffer
	assert.NoError(t, c.Compress(&buf, input))
	out, err := c.Decompress(&buf)
	assert.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestCompressDecompressRoundTripWithDictReset(t *testing.T) {
	input := bytes.Repeat([]byte("abcdefgh"), 50)
	c := &Compressor{
		NewTrie:  func() trie.Trie { return trie.NewBinaryTrie() },
		Coder:    coder.Ascii{},
		Roots:    1,
		DictSize: 8,
	}
	var buf bytes.Buffer
	assert.NoError(t, c.Compress(&buf, input))
	out, err := c.Decompress(&buf)
	assert.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestCompressDecompressEmptyInput(t *testing.T) {
	c := &Compressor{
		NewTrie: func() trie.Trie { return trie.NewBinaryTrie() },
		Coder:   coder.Ascii{},
		Roots:   1,
	}
	var buf bytes.Buffer
	assert.NoError(t, c.Compress(&buf, nil))
	out, err := c.Decompress(&buf)
	assert.NoError(t, err)
	assert.Empty(t, out)
}
