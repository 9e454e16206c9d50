package hash

import "github.com/tudocomp-go/tdc/intvec"

// Map pairs a Set (for the keys) with a parallel dynamically-widened
// value array indexed by slot id, giving the key->value compact hash map
// of spec.md §4.D used by trie.CompactHashTrie to map (parent id, byte)
// pairs to child ids.
type Map struct {
	set      *Set
	values   *intvec.Vector
	snapshot map[uint64]uint64 // key->value, valid only while a resize is in flight
	evicted  map[uint64]uint64 // key->value, stranded by an in-flight Robin Hood steal
}

// NewMap creates an empty Map for keys of at most keyWidth bits and
// values of at most valueWidth bits.
func NewMap(keyWidth uint, valueWidth uint, maxLoadFactor float64, hf Func) *Map {
	m := &Map{
		set:     NewSet(keyWidth, maxLoadFactor, hf),
		evicted: map[uint64]uint64{},
	}
	m.values = intvec.NewWithSize(int(m.set.Cap()), valueWidth)
	m.set.OnResize(func(newM uint64) {
		m.values = intvec.NewWithSize(int(newM), m.values.Width())
	})
	m.set.OnReinsert(func(k uint64, newID uint64) {
		if v, ok := m.snapshot[k]; ok {
			m.ensureValueWidth(v)
			m.values.Set(int(newID), v)
		}
	})
	// A Robin Hood steal bumps an already-placed key to a later slot
	// without Map ever being asked to insert it again; without these,
	// m.values (indexed by slot id) would still hold the bumped key's
	// value at its old, now-overwritten slot. OnEvict always fires
	// before the OnSettle that would overwrite the same slot, so reading
	// here can never race a steal's own overwrite.
	m.set.OnEvict(func(k uint64, atSlot uint64) {
		m.evicted[k] = m.values.Get(int(atSlot))
	})
	m.set.OnSettle(func(k uint64, atSlot uint64) {
		if v, ok := m.evicted[k]; ok {
			m.values.Set(int(atSlot), v)
			delete(m.evicted, k)
		}
	})
	return m
}

// snapshotBeforeGrow records every current key's value under the table's
// OLD capacity, so OnReinsert can restore it once each key lands in its
// new slot; grow() discards and rebuilds m.values as part of OnResize, so
// this must run before LookupInsert/At can trigger a resize.
func (m *Map) snapshotBeforeGrow() {
	if !m.set.willGrow() {
		return
	}
	snap := make(map[uint64]uint64, m.set.Size())
	for _, k := range m.set.Keys() {
		if id, ok := m.set.Lookup(k); ok {
			snap[k] = m.values.Get(int(id))
		}
	}
	m.snapshot = snap
}

// Size returns the number of key/value pairs stored.
func (m *Map) Size() int { return m.set.Size() }

// KeyWidth returns the declared maximum key bit width.
func (m *Map) KeyWidth() uint { return m.set.KeyWidth() }

// MaxLoadFactor returns the configured maximum load factor.
func (m *Map) MaxLoadFactor() float64 { return m.set.MaxLoadFactor() }

// HashFunc returns the configured bijective hash function.
func (m *Map) HashFunc() Func { return m.set.HashFunc() }

// Get returns the value for k, if present.
func (m *Map) Get(k uint64) (val uint64, found bool) {
	id, found := m.set.Lookup(k)
	if !found {
		return 0, false
	}
	return m.values.Get(int(id)), true
}

// InsertKV inserts k with value v if absent, or overwrites the value of
// an existing k, and returns the prior state.
func (m *Map) InsertKV(k uint64, v uint64) (existed bool) {
	m.snapshotBeforeGrow()
	id, inserted := m.set.LookupInsert(k)
	m.ensureValueWidth(v)
	m.values.Set(int(id), v)
	return !inserted
}

// At implements the map's operator[]: insertDefault is called to produce
// a value the first time k is seen, and the (possibly freshly inserted)
// value is returned.
func (m *Map) At(k uint64, insertDefault func() uint64) uint64 {
	m.snapshotBeforeGrow()
	id, inserted := m.set.LookupInsert(k)
	if inserted {
		v := insertDefault()
		m.ensureValueWidth(v)
		m.values.Set(int(id), v)
		return v
	}
	return m.values.Get(int(id))
}

func (m *Map) ensureValueWidth(v uint64) {
	need := intvec.MinWidth(v)
	if need <= m.values.Width() {
		return
	}
	grown := intvec.NewWithSize(m.values.Len(), need)
	it := m.values.Iterate()
	for i := 0; it.Next(); i++ {
		grown.Set(i, it.Value())
	}
	m.values = grown
}
