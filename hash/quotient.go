package hash

import "github.com/tudocomp-go/tdc/intvec"

// quotientStore packs per-slot quotients into a fixed-width intvec.Vector
// sized for the table's current capacity. A fresh store is built on every
// resize (quotientWidth shrinks as the table's capacity grows); set widens
// it in place only when a quotient exceeds that computed width.
type quotientStore struct {
	v *intvec.Vector
}

func newQuotientStore(n int, width uint) *quotientStore {
	return &quotientStore{v: intvec.NewWithSize(n, width)}
}

func (q *quotientStore) get(idx int) uint64 { return q.v.Get(idx) }

func (q *quotientStore) set(idx int, val uint64) {
	if val>>q.v.Width() != 0 {
		// A quotient can only overflow its declared width if keyWidth was
		// underestimated at construction; widen rather than corrupt data.
		grown := intvec.NewWithSize(q.v.Len(), intvec.MinWidth(val))
		it := q.v.Iterate()
		for i := 0; it.Next(); i++ {
			grown.Set(i, it.Value())
		}
		q.v = grown
	}
	q.v.Set(idx, val)
}
