package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapGetSurvivesRobinHoodSteal(t *testing.T) {
	// A tiny, near-full table forces frequent Robin Hood steals: every
	// key's value must still be retrievable at its correct (possibly
	// relocated) slot afterward, not stranded at a slot some later
	// insert has since overwritten.
	m := NewMap(24, 24, 0.95, Xorshift{})
	const n = 500
	for i := uint64(0); i < n; i++ {
		m.InsertKV(i, i*31+7)
	}
	for i := uint64(0); i < n; i++ {
		v, found := m.Get(i)
		assert.True(t, found, "key %d missing after inserts", i)
		assert.Equal(t, i*31+7, v, "key %d has wrong value after inserts", i)
	}
}

func TestMapAtPreservesEarlierValuesThroughSteals(t *testing.T) {
	m := NewMap(16, 16, 0.9, PoplarXorshift{})
	want := map[uint64]uint64{}
	for i := uint64(1); i < 400; i += 3 {
		v := m.At(i, func() uint64 { return i ^ 0xABCD })
		want[i] = v
	}
	for k, v := range want {
		got := m.At(k, func() uint64 { t.Fatal("insertDefault called for already-present key"); return 0 })
		assert.Equal(t, v, got, "key %d value drifted after later inserts", k)
	}
}

func TestMapOverwriteAfterStealKeepsLatestValue(t *testing.T) {
	m := NewMap(16, 16, 0.9, Xorshift{})
	for i := uint64(0); i < 300; i++ {
		m.InsertKV(i, i)
	}
	for i := uint64(0); i < 300; i++ {
		existed := m.InsertKV(i, i+1000)
		assert.True(t, existed)
	}
	for i := uint64(0); i < 300; i++ {
		v, found := m.Get(i)
		assert.True(t, found)
		assert.Equal(t, i+1000, v)
	}
}
