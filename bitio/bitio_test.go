package bitio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteReadInt(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	assert.NoError(t, w.WriteInt(0b101, 3))
	assert.NoError(t, w.WriteInt(0b1, 1))
	assert.NoError(t, w.WriteInt(0b1111, 4))
	assert.NoError(t, w.Close())

	// MSB-first: 101 1 1111 -> byte 10111111
	assert.Equal(t, []byte{0b10111111}, buf.Bytes())

	r := NewReader(&buf)
	v, err := r.ReadInt(3)
	assert.NoError(t, err)
	assert.EqualValues(t, 0b101, v)
	v, err = r.ReadInt(1)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, v)
	v, err = r.ReadInt(4)
	assert.NoError(t, err)
	assert.EqualValues(t, 0b1111, v)
}

func TestWriteCloseFlushesZeroPad(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	assert.NoError(t, w.WriteInt(1, 1))
	assert.NoError(t, w.Close())
	assert.Equal(t, []byte{0b10000000}, buf.Bytes())
}

func TestUnaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	assert.NoError(t, w.WriteUnary(0))
	assert.NoError(t, w.WriteUnary(5))
	assert.NoError(t, w.Close())

	r := NewReader(&buf)
	n, err := r.ReadUnary()
	assert.NoError(t, err)
	assert.EqualValues(t, 0, n)
	n, err = r.ReadUnary()
	assert.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestCompressedIntRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, v := range values {
		assert.NoError(t, w.WriteCompressedInt(v))
	}
	assert.NoError(t, w.Close())

	r := NewReader(&buf)
	for _, want := range values {
		got, err := r.ReadCompressedInt()
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestReaderEof(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	assert.NoError(t, w.WriteInt(1, 8))
	assert.NoError(t, w.Close())

	r := NewReader(&buf)
	assert.False(t, r.Eof())
	_, err := r.ReadInt(8)
	assert.NoError(t, err)
	assert.True(t, r.Eof())
}

func TestWriteIntRejectsOversizeValue(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	err := w.WriteInt(8, 3) // 8 doesn't fit in 3 bits
	assert.Error(t, err)
}
