package coder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tudocomp-go/tdc/bitio"
)

func roundTrip(t *testing.T, c Coder, literals []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	enc := c.NewEncoder()
	assert.NoError(t, enc.Begin(w))
	for _, b := range literals {
		assert.NoError(t, enc.EncodeLiteral(w, b))
	}
	assert.NoError(t, enc.Finish(w))
	assert.NoError(t, w.Close())

	r := bitio.NewReader(&buf)
	dec := c.NewDecoder()
	assert.NoError(t, dec.Begin(r))
	for _, want := range literals {
		got, err := dec.DecodeLiteral(r)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAsciiRoundTrip(t *testing.T) {
	roundTrip(t, Ascii{}, []byte("hello, world"))
}

func TestAsciiEmptyRoundTrip(t *testing.T) {
	roundTrip(t, Ascii{}, nil)
}

func TestBlockRoundTrip(t *testing.T) {
	roundTrip(t, Block{}, []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly, repeatedly"))
}

func TestBlockEmptyRoundTrip(t *testing.T) {
	roundTrip(t, Block{}, nil)
}
