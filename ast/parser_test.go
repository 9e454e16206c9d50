package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	n, err := Parse("ascii")
	assert.NoError(t, err)
	assert.Equal(t, "ascii", n.Name())
	_, ok := n.(*Value)
	assert.True(t, ok)
}

func TestParseObjectNoArgs(t *testing.T) {
	n, err := Parse("huffman()")
	assert.NoError(t, err)
	obj, ok := n.(*Object)
	assert.True(t, ok)
	assert.Equal(t, "huffman", obj.Name())
	assert.Len(t, obj.Params, 0)
}

func TestParseNested(t *testing.T) {
	n, err := Parse("lz78(coder=huffman(), dict_size=0)")
	assert.NoError(t, err)
	obj := n.(*Object)
	assert.Equal(t, "lz78", obj.Name())
	assert.Len(t, obj.Params, 2)

	assert.Equal(t, "coder", obj.Params[0].Name)
	sub := obj.Params[0].Value.(*Object)
	assert.Equal(t, "huffman", sub.Name())

	assert.Equal(t, "dict_size", obj.Params[1].Name)
	assert.Equal(t, "0", obj.Params[1].Value.Name())
}

func TestParsePositionalBeforeKeyword(t *testing.T) {
	_, err := Parse("lzss(3, threshold=5)")
	assert.NoError(t, err)

	_, err = Parse("lzss(threshold=5, 3)")
	assert.Error(t, err)
}

func TestParseWhitespaceInsignificant(t *testing.T) {
	n1, err := Parse("lz78( coder = ascii ( ) )")
	assert.NoError(t, err)
	n2, err := Parse("lz78(coder=ascii())")
	assert.NoError(t, err)
	assert.Equal(t, String(n1), String(n2))
}

func TestParseTrailingGarbage(t *testing.T) {
	_, err := Parse("ascii()) extra")
	assert.Error(t, err)
}

func TestParseList(t *testing.T) {
	obj, err := ParseList("[1, 2, 3]")
	assert.NoError(t, err)
	assert.True(t, obj.IsList())
	assert.Len(t, obj.Elements(), 3)
}

func TestString(t *testing.T) {
	n, err := Parse("lz78(coder=huffman(),dict_size=0)")
	assert.NoError(t, err)
	assert.Equal(t, "lz78(coder=huffman(), dict_size=0)", String(n))
}

func TestUnknownCharacter(t *testing.T) {
	_, err := Parse("lz78(@)")
	assert.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
