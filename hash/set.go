package hash

// Set is a compact hash set over uint64 keys of a declared bit width: it
// stores, for each present key k, only a quotient q = h(k) div m next to
// its slot rather than k itself, recovering k on lookup via
// k = h^-1(q*m + ia) where ia is the slot's initial address (spec.md
// §4.D). Collisions are resolved with Robin Hood linear probing, which
// keeps the scan for any present or absent key bounded by the richest
// probe sequence currently stored and terminates a failed lookup as soon
// as it meets a slot poorer than the sought distance.
type Set struct {
	hf       Func
	sm       *sizeManager
	disp     Displacement
	quotient *quotientStore
	keyWidth uint

	onResize   func(newM uint64)
	onReinsert func(k uint64, newID uint64)
	onEvict    func(k uint64, atSlot uint64)
	onSettle   func(k uint64, atSlot uint64)
}

// NewSet creates an empty Set for keys of at most keyWidth bits.
func NewSet(keyWidth uint, maxLoadFactor float64, hf Func) *Set {
	s := &Set{
		hf:       hf,
		sm:       newSizeManager(maxLoadFactor),
		keyWidth: keyWidth,
	}
	s.disp = NewArrayDisplacement(int(s.sm.m))
	s.quotient = newQuotientStore(int(s.sm.m), s.quotientWidth())
	return s
}

// OnResize registers a callback invoked once per resize, before any
// element is reinserted, with the new capacity.
func (s *Set) OnResize(f func(newM uint64)) { s.onResize = f }

// OnReinsert registers a callback invoked once per element moved by a
// resize, after the move, with its new slot id.
func (s *Set) OnReinsert(f func(k uint64, newID uint64)) { s.onReinsert = f }

// OnEvict registers a callback invoked whenever a Robin Hood steal is
// about to overwrite an already-resident key's slot, with that key and
// the slot it is being displaced from. It fires before the slot's
// contents are overwritten, so a caller tracking a parallel array
// indexed by slot id can read the stranded value out before it is lost.
func (s *Set) OnEvict(f func(k uint64, atSlot uint64)) { s.onEvict = f }

// OnSettle registers a callback invoked when a key previously reported
// via OnEvict (possibly several steals ago, in the same insert) comes to
// rest in a slot, with that key and its new slot id. OnEvict/OnSettle
// calls for a given insertRobinHood call are always ordered so that every
// OnEvict for a slot fires before any OnSettle that writes into it,
// letting a caller safely move a stranded value straight to its final
// slot without an intermediate buffer keyed by slot id.
func (s *Set) OnSettle(f func(k uint64, atSlot uint64)) { s.onSettle = f }

// Size returns the number of distinct keys currently stored.
func (s *Set) Size() int { return s.sm.size }

func (s *Set) willGrow() bool { return s.sm.needsGrowthFor(s.sm.size + 1) }

// KeyWidth returns the declared maximum key bit width.
func (s *Set) KeyWidth() uint { return s.keyWidth }

// MaxLoadFactor returns the configured maximum load factor.
func (s *Set) MaxLoadFactor() float64 { return s.sm.maxLoadFactor }

// HashFunc returns the configured bijective hash function.
func (s *Set) HashFunc() Func { return s.hf }

// Cap returns the current table capacity (always a power of two).
func (s *Set) Cap() uint64 { return s.sm.m }

func (s *Set) realWidth() uint {
	logM := s.sm.logM()
	if s.keyWidth > logM {
		return s.keyWidth
	}
	return logM
}

func (s *Set) quotientWidth() uint {
	rw := s.realWidth()
	logM := s.sm.logM()
	if rw <= logM {
		return 1
	}
	return rw - logM
}

func (s *Set) split(k uint64) (ia uint64, q uint64) {
	h := s.hf.Apply(k, s.realWidth())
	return h % s.sm.m, h / s.sm.m
}

// ComposeKey reconstructs the original key from an initial address and
// quotient, the inverse of split.
func (s *Set) ComposeKey(ia, q uint64) uint64 {
	h := q*s.sm.m + ia
	return s.hf.Invert(h, s.realWidth())
}

// Lookup reports whether k is present and, if so, its slot id.
func (s *Set) Lookup(k uint64) (id uint64, found bool) {
	ia, q := s.split(k)
	m := s.sm.m
	p := ia
	dist := uint32(0)
	for {
		if !s.disp.Occupied(int(p)) {
			return 0, false
		}
		pd := s.disp.Get(int(p))
		if pd < dist {
			return 0, false
		}
		if pd == dist && s.quotient.get(int(p)) == q {
			return p, true
		}
		p = (p + 1) % m
		dist++
	}
}

// LookupInsert inserts k if absent and returns its slot id either way,
// along with whether it was newly inserted.
func (s *Set) LookupInsert(k uint64) (id uint64, inserted bool) {
	if id, found := s.Lookup(k); found {
		return id, false
	}
	if s.sm.needsGrowthFor(s.sm.size + 1) {
		s.grow()
	}
	id = s.insertRobinHood(k)
	s.sm.size++
	return id, true
}

// insertRobinHood performs the Robin Hood probe-and-steal insertion and
// returns the final resting slot of k itself (not of any key displaced by
// it in the process). Every resident a steal bumps out of its slot is
// reported through OnEvict/OnSettle so a parallel slot-indexed array (see
// Map) can follow it to its eventual new slot, however many further
// steals it passes through first.
func (s *Set) insertRobinHood(k uint64) uint64 {
	ia, q := s.split(k)
	m := s.sm.m
	p := ia
	dist := uint32(0)
	homeSlot := ia
	firstPlacement := true
	var carryKey uint64 // key of the resident currently being carried, once firstPlacement is false

	for {
		if !s.disp.Occupied(int(p)) {
			s.disp.SetOccupied(int(p), true)
			s.disp.Set(int(p), dist)
			s.quotient.set(int(p), q)
			if firstPlacement {
				homeSlot = p
			} else if s.onSettle != nil {
				s.onSettle(carryKey, p)
			}
			return homeSlot
		}
		residentDist := s.disp.Get(int(p))
		if residentDist < dist {
			residentQ := s.quotient.get(int(p))
			residentIA := (p - uint64(residentDist) + m) % m
			residentKey := s.ComposeKey(residentIA, residentQ)

			// Read the resident at p out before overwriting it: OnEvict
			// must fire before any OnSettle that lands in p, so a value
			// tracker never loses a stranded entry to its own steal.
			if s.onEvict != nil {
				s.onEvict(residentKey, p)
			}
			s.quotient.set(int(p), q)
			s.disp.Set(int(p), dist)
			if firstPlacement {
				homeSlot = p
				firstPlacement = false
			} else if s.onSettle != nil {
				s.onSettle(carryKey, p)
			}

			q = residentQ
			dist = residentDist
			carryKey = residentKey
		}
		p = (p + 1) % m
		dist++
	}
}

func (s *Set) grow() {
	newM := s.sm.growTarget()
	oldM := s.sm.m
	oldDisp := s.disp
	oldQuotient := s.quotient

	// Recover every stored key under the OLD width/capacity before
	// mutating sm, then reinsert under the NEW one.
	type entry struct{ k uint64 }
	var entries []entry
	for p := uint64(0); p < oldM; p++ {
		if !oldDisp.Occupied(int(p)) {
			continue
		}
		ia := (p - uint64(oldDisp.Get(int(p))) + oldM) % oldM
		q := oldQuotient.get(int(p))
		entries = append(entries, entry{k: s.ComposeKey(ia, q)})
	}

	s.sm.m = newM
	s.disp = NewArrayDisplacement(int(newM))
	s.quotient = newQuotientStore(int(newM), s.quotientWidth())

	if s.onResize != nil {
		s.onResize(newM)
	}
	for _, e := range entries {
		id := s.insertRobinHood(e.k)
		if s.onReinsert != nil {
			s.onReinsert(e.k, id)
		}
	}
}

// Keys returns every key currently stored (used by Map and by tests that
// verify closure under the round-trip composeKey(split(k)) == k
// invariant).
func (s *Set) Keys() []uint64 {
	var out []uint64
	m := s.sm.m
	for p := uint64(0); p < m; p++ {
		if !s.disp.Occupied(int(p)) {
			continue
		}
		ia := (p - uint64(s.disp.Get(int(p))) + m) % m
		q := s.quotient.get(int(p))
		out = append(out, s.ComposeKey(ia, q))
	}
	return out
}
