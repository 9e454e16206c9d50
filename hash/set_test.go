package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetClosureOfSplitCompose(t *testing.T) {
	s := NewSet(24, 0.9, PoplarXorshift{})
	keys := []uint64{0, 1, 2, 7, 255, 65535, 1 << 20}
	for _, k := range keys {
		s.LookupInsert(k)
	}
	for _, k := range keys {
		ia, q := s.split(k)
		assert.Equal(t, k, s.ComposeKey(ia, q))
	}
}

func TestSetLookupInsertAndFound(t *testing.T) {
	s := NewSet(20, 0.8, Xorshift{})
	id1, inserted := s.LookupInsert(42)
	assert.True(t, inserted)

	id2, inserted2 := s.LookupInsert(42)
	assert.False(t, inserted2)
	assert.Equal(t, id1, id2)

	_, found := s.Lookup(99)
	assert.False(t, found)
}

func TestSetLoadFactorBoundAfterManyInserts(t *testing.T) {
	const maxLoad = 0.6
	s := NewSet(20, maxLoad, PoplarXorshift{})
	for i := uint64(1); i < 2000; i += 7 {
		s.LookupInsert(i)
	}
	assert.LessOrEqual(t, float64(s.Size()), maxLoad*float64(s.Cap()))
}

// TestSetStressInsertMultiplesOf13 reproduces the inserted-key stress
// scenario across a range of max_load_factor settings: insert i*13 for
// i in [1,10000) and verify (a) the set's size equals the number of
// distinct keys inserted, (b) every inserted key is found afterward, and
// (c) the load factor bound holds.
func TestSetStressInsertMultiplesOf13(t *testing.T) {
	loadFactors := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	for _, lf := range loadFactors {
		s := NewSet(30, lf, PoplarXorshift{})
		var keys []uint64
		for i := uint64(1); i < 10000; i++ {
			k := i * 13
			s.LookupInsert(k)
			keys = append(keys, k)
		}
		assert.Equal(t, len(keys), s.Size())
		for _, k := range keys {
			_, found := s.Lookup(k)
			assert.True(t, found, "key %d should be found (load factor %v)", k, lf)
		}
		assert.LessOrEqual(t, float64(s.Size()), lf*float64(s.Cap())+1,
			"load factor bound violated for max_load_factor=%v", lf)
	}
}

func TestSetResizeNotifiesReinsert(t *testing.T) {
	s := NewSet(16, 0.5, Xorshift{})
	seen := map[uint64]uint64{}
	resized := 0
	s.OnResize(func(newM uint64) { resized++ })
	s.OnReinsert(func(k uint64, newID uint64) { seen[k] = newID })

	var inserted []uint64
	for i := uint64(0); i < 40; i++ {
		s.LookupInsert(i)
		inserted = append(inserted, i)
	}
	assert.Greater(t, resized, 0)
	for _, k := range inserted {
		id, found := s.Lookup(k)
		assert.True(t, found)
		if notifiedID, ok := seen[k]; ok {
			assert.Equal(t, notifiedID, id)
		}
	}
}

func TestHashFuncBijective(t *testing.T) {
	for _, width := range []uint{1, 4, 8, 17, 32, 63, 64} {
		for _, hf := range []Func{Xorshift{}, PoplarXorshift{}} {
			m := mask(width)
			for k := uint64(0); k <= m && k < 5000; k++ {
				h := hf.Apply(k, width)
				assert.Equal(t, k, hf.Invert(h, width))
			}
		}
	}
}

func TestMapInsertGetAndOverwrite(t *testing.T) {
	m := NewMap(20, 20, 0.8, PoplarXorshift{})
	existed := m.InsertKV(7, 100)
	assert.False(t, existed)

	v, found := m.Get(7)
	assert.True(t, found)
	assert.EqualValues(t, 100, v)

	existed = m.InsertKV(7, 200)
	assert.True(t, existed)
	v, _ = m.Get(7)
	assert.EqualValues(t, 200, v)
}

func TestMapAtInsertsDefaultOnce(t *testing.T) {
	m := NewMap(20, 20, 0.8, Xorshift{})
	calls := 0
	get := func() uint64 { calls++; return 55 }

	v1 := m.At(3, get)
	v2 := m.At(3, get)
	assert.EqualValues(t, 55, v1)
	assert.EqualValues(t, 55, v2)
	assert.Equal(t, 1, calls)
}

func TestMapSurvivesResizeWithValues(t *testing.T) {
	m := NewMap(24, 24, 0.5, PoplarXorshift{})
	for i := uint64(0); i < 500; i++ {
		m.InsertKV(i, i*3+1)
	}
	for i := uint64(0); i < 500; i++ {
		v, found := m.Get(i)
		assert.True(t, found)
		assert.EqualValues(t, i*3+1, v)
	}
}
