package hash

import "github.com/tudocomp-go/tdc/intvec"

// Displacement records, for every slot of a table of capacity m, how many
// probes past its initial address ia = h(k) mod m an occupied slot's key
// was pushed during open-addressing insertion (spec.md §4.D, "Resize
// policy" and the linear-probing "group" walk). tudocomp itself offers
// several encodings for this (a naive per-slot integer array, a
// virgin/changed bit-vector pair, and an Elias-γ "elastic" scheme); this
// port keeps the same pluggable seam but a single concrete backing — a
// dynamically widened intvec.Vector of small per-slot counters — since the
// displacement values a linear-probing table actually produces are tiny
// in practice and the seam, not the bit-exact on-disk encoding of any one
// tudocomp variant, is what the spec normatively requires.
type Displacement interface {
	// Get returns the recorded displacement for slot idx.
	Get(idx int) uint32
	// Set records displacement d for slot idx, growing storage width if d
	// no longer fits.
	Set(idx int, d uint32)
	// Reset reinitializes storage for n slots, all displacement 0.
	Reset(n int)
	// Occupied reports whether slot idx currently holds an entry.
	Occupied(idx int) bool
	// SetOccupied marks slot idx as holding (or not holding) an entry.
	SetOccupied(idx int, v bool)
}

// ArrayDisplacement is the concrete Displacement backing described above.
type ArrayDisplacement struct {
	d        *intvec.Vector
	occupied []bool
}

// NewArrayDisplacement creates a Displacement sized for n slots.
func NewArrayDisplacement(n int) *ArrayDisplacement {
	a := &ArrayDisplacement{}
	a.Reset(n)
	return a
}

func (a *ArrayDisplacement) Reset(n int) {
	a.d = intvec.NewWithSize(n, 8)
	a.occupied = make([]bool, n)
}

func (a *ArrayDisplacement) Get(idx int) uint32 { return uint32(a.d.Get(idx)) }

func (a *ArrayDisplacement) Set(idx int, d uint32) {
	need := intvec.MinWidth(uint64(d))
	if need > a.d.Width() {
		a.growWidth(need)
	}
	a.d.Set(idx, uint64(d))
}

func (a *ArrayDisplacement) growWidth(width uint) {
	grown := intvec.NewWithSize(a.d.Len(), width)
	it := a.d.Iterate()
	for i := 0; it.Next(); i++ {
		grown.Set(i, it.Value())
	}
	a.d = grown
}

func (a *ArrayDisplacement) Occupied(idx int) bool { return a.occupied[idx] }

func (a *ArrayDisplacement) SetOccupied(idx int, v bool) { a.occupied[idx] = v }
