package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	typCompressor = &TypeDesc{Name: "compressor"}
	typCoder      = &TypeDesc{Name: "coder"}
)

func TestSubtype(t *testing.T) {
	sub := &TypeDesc{Name: "lz78_compressor", Super: typCompressor}
	assert.True(t, sub.IsSubtypeOf(typCompressor))
	assert.True(t, sub.IsSubtypeOf(sub))
	assert.False(t, typCompressor.IsSubtypeOf(sub))
	assert.False(t, sub.IsSubtypeOf(typCoder))
}

func TestBuilderPrimitiveAndDefault(t *testing.T) {
	d := NewBuilder(typCompressor, "lz78", "LZ78 factoriser").
		Primitive("dict_size", "dictionary reset threshold", "0").
		Build()
	pd, ok := d.Param("dict_size")
	assert.True(t, ok)
	assert.Equal(t, KindPrimitive, pd.Kind)
	assert.True(t, pd.HasDefault)
	assert.Equal(t, "0", pd.Default)
	assert.Equal(t, "lz78", d.Signature)
}

func TestBuilderStrategyPropagatesTagsAndSignature(t *testing.T) {
	huffman := NewBuilder(typCoder, "huffman", "Huffman coder").
		Tag("require_sentinel").
		Build()
	lz78 := NewBuilder(typCompressor, "lz78", "LZ78 factoriser").
		Strategy("coder", "entropy coder", typCoder, huffman, true).
		Build()
	assert.True(t, lz78.HasTag("require_sentinel"))
	assert.Equal(t, "lz78{coder:huffman}", lz78.Signature)
	pd, _ := lz78.Param("coder")
	assert.True(t, pd.HasDefault)
	assert.Equal(t, "huffman", pd.Default)
}

func TestBuilderStrategyRejectsWrongType(t *testing.T) {
	notACoder := NewBuilder(typCompressor, "lzss", "LZSS factoriser").Build()
	assert.Panics(t, func() {
		NewBuilder(typCompressor, "lz78", "").
			Strategy("coder", "", typCoder, notACoder, false)
	})
}

func TestDeclDoc(t *testing.T) {
	d := NewBuilder(typCompressor, "lz78", "LZ78 factoriser").
		Primitive("dict_size", "reset threshold", "0").
		Build()
	doc := d.Doc()
	assert.Contains(t, doc, "lz78: LZ78 factoriser")
	assert.Contains(t, doc, "dict_size")
}
