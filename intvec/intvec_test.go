package intvec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushBackAndGet(t *testing.T) {
	v := New(5)
	for i := 0; i < 40; i++ {
		v.PushBack(uint64(i % 32))
	}
	assert.Equal(t, 40, v.Len())
	for i := 0; i < 40; i++ {
		assert.EqualValues(t, i%32, v.Get(i))
	}
}

func TestCrossWordBoundary(t *testing.T) {
	v := New(37) // forces elements to straddle 64-bit words
	want := []uint64{1, 2, 3, 1<<37 - 1, 0, 12345678}
	for _, w := range want {
		v.PushBack(w)
	}
	for i, w := range want {
		assert.Equal(t, w, v.Get(i))
	}
}

func TestSetOverwrites(t *testing.T) {
	v := NewWithSize(10, 8)
	v.Set(3, 200)
	assert.EqualValues(t, 200, v.Get(3))
	v.Set(3, 5)
	assert.EqualValues(t, 5, v.Get(3))
	for i := 0; i < 10; i++ {
		if i != 3 {
			assert.EqualValues(t, 0, v.Get(i))
		}
	}
}

func TestResizeZeroFills(t *testing.T) {
	v := New(6)
	v.PushBack(10)
	v.Resize(5)
	assert.Equal(t, 5, v.Len())
	for i := 1; i < 5; i++ {
		assert.EqualValues(t, 0, v.Get(i))
	}
}

func TestWidth64(t *testing.T) {
	v := New(64)
	v.PushBack(^uint64(0))
	assert.Equal(t, ^uint64(0), v.Get(0))
}

func TestOutOfRangeValuePanics(t *testing.T) {
	v := New(3)
	assert.Panics(t, func() { v.PushBack(8) })
}

func TestOutOfBoundsIndexPanics(t *testing.T) {
	v := New(4)
	v.PushBack(1)
	assert.Panics(t, func() { v.Get(5) })
}

func TestIterator(t *testing.T) {
	v := New(10)
	for i := 0; i < 20; i++ {
		v.PushBack(uint64(i))
	}
	it := v.Iterate()
	i := 0
	for it.Next() {
		assert.EqualValues(t, i, it.Value())
		i++
	}
	assert.Equal(t, 20, i)
}

func TestRandomFuzz(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		width := uint(1 + rnd.Intn(64))
		var maxVal uint64
		if width == 64 {
			maxVal = ^uint64(0)
		} else {
			maxVal = 1<<width - 1
		}
		v := New(width)
		var model []uint64
		for i := 0; i < 200; i++ {
			val := uint64(rnd.Int63()) & maxVal
			v.PushBack(val)
			model = append(model, val)
		}
		for i, want := range model {
			assert.Equal(t, want, v.Get(i))
		}
	}
}

func TestMinWidth(t *testing.T) {
	assert.EqualValues(t, 1, MinWidth(0))
	assert.EqualValues(t, 1, MinWidth(1))
	assert.EqualValues(t, 8, MinWidth(255))
	assert.EqualValues(t, 9, MinWidth(256))
}
