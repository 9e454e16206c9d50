package em

import (
	"sort"

	"github.com/dsnet/golib/errs"
)

// Decompressor runs the scan-pass pointer-jumping algorithm of spec.md
// §4.L: it holds a growing text_buffer of resolved bytes and a set of
// still-unresolved back-references, and repeatedly folds one level of
// indirection out of every reference whose source region already
// contains only literal or previously-resolved bytes, until none are
// left.
type Decompressor struct {
	textBuffer []byte
	resolvedAt []bool // textBuffer[i] holds a meaningful byte iff resolvedAt[i]
	byCopyTo   []Reference
}

// NewDecompressor creates a Decompressor for an output of the given
// total size.
func NewDecompressor(size int) *Decompressor {
	return &Decompressor{
		textBuffer: make([]byte, size),
		resolvedAt: make([]bool, size),
	}
}

// SetLiteral marks pos as already holding its final byte value —
// spec.md §4.L's text_buffer entries that never needed a reference to
// begin with.
func (d *Decompressor) SetLiteral(pos int, b byte) {
	d.textBuffer[pos] = b
	d.resolvedAt[pos] = true
}

// AddReference registers an unresolved back-reference covering
// [copyTo, copyTo+length) of the output, to be filled in by copying
// from [copyFrom, copyFrom+length), which may itself still be
// unresolved at the time this call is made.
func (d *Decompressor) AddReference(copyTo, copyFrom, length int) {
	if length <= 0 {
		return
	}
	d.byCopyTo = append(d.byCopyTo, Reference{CopyTo: copyTo, CopyFrom: copyFrom, Length: length})
}

// Run executes scan passes until every reference has been resolved and
// returns the completed output. Terminates in O(longest chain) passes
// per spec.md §4.L, since every pass resolves at least the references
// whose source is already fully literal, and a chain of depth k can
// have at most k unresolved hops removed one at a time.
//
// A malformed reference graph (a source position no pass ever resolves,
// or a chain that runs through a position the restore pass hasn't
// actually resolved yet) is a decode-time condition, not a programmer
// bug: scanPass/restore report it via errs.Assert, and Run recovers it
// into a returned error rather than letting it crash the caller.
func (d *Decompressor) Run() (out []byte, err error) {
	defer errs.Recover(&err)
	sortByCopyTo(d.byCopyTo)
	for len(d.byCopyTo) > 0 {
		d.scanPass()
	}
	return d.textBuffer, nil
}

type resolvedTriple struct {
	copyTo, copyFrom, length int
}

func (d *Decompressor) scanPass() {
	byCopyFrom := append([]Reference(nil), d.byCopyTo...)
	sortByCopyFrom(byCopyFrom)

	var newByCopyTo []Reference
	var resolved []resolvedTriple

	for _, from := range byCopyFrom {
		remaining := from
		for remaining.Length > 0 {
			idx := findCovering(d.byCopyTo, remaining.CopyFrom)
			if idx >= 0 && d.byCopyTo[idx].destEnd() > remaining.CopyFrom {
				to := d.byCopyTo[idx]
				prefixLen := remaining.Length
				if endOfTo := to.destEnd(); endOfTo-remaining.CopyFrom < prefixLen {
					prefixLen = endOfTo - remaining.CopyFrom
				}
				offset := remaining.CopyFrom - to.CopyTo
				newByCopyTo = append(newByCopyTo, Reference{
					CopyTo:   remaining.CopyTo,
					CopyFrom: to.CopyFrom + offset,
					Length:   prefixLen,
				})
				remaining.CopyTo += prefixLen
				remaining.CopyFrom += prefixLen
				remaining.Length -= prefixLen
				continue
			}

			// No unresolved reference covers remaining.CopyFrom: the
			// next boundary is either the start of the next unresolved
			// reference after this position, or the end of the buffer.
			nextBoundary := len(d.textBuffer)
			if idx+1 < len(d.byCopyTo) {
				nextBoundary = d.byCopyTo[idx+1].CopyTo
			}
			prefixLen := remaining.Length
			if nextBoundary-remaining.CopyFrom < prefixLen {
				prefixLen = nextBoundary - remaining.CopyFrom
			}
			errs.Assert(prefixLen > 0, Error("scanPass: reference makes no progress, source not yet resolvable"))
			resolved = append(resolved, resolvedTriple{
				copyTo:   remaining.CopyTo,
				copyFrom: remaining.CopyFrom,
				length:   prefixLen,
			})
			remaining.CopyTo += prefixLen
			remaining.CopyFrom += prefixLen
			remaining.Length -= prefixLen
		}
	}

	d.byCopyTo = newByCopyTo
	sortByCopyTo(d.byCopyTo)
	d.restore(resolved)
}

// restore performs spec.md §4.L's restore pass: each resolved triple is
// expanded into (copyTo, byte) literal tuples read from text_buffer and
// scatter-written back in. Sorting by copyFrom first (as the spec
// describes) lets a byte that is itself the source of another resolved
// triple in the same pass be read before any write in this pass
// touches it — reads always come from literal/already-resolved data,
// writes land on positions the scan pass just proved were previously
// unresolved, so the two sets of touched positions are always disjoint.
func (d *Decompressor) restore(resolved []resolvedTriple) {
	if len(resolved) == 0 {
		return
	}
	ordered := append([]resolvedTriple(nil), resolved...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].copyFrom < ordered[j].copyFrom })

	type tuple struct {
		copyTo int
		b      byte
	}
	var tuples []tuple
	for _, r := range ordered {
		for k := 0; k < r.length; k++ {
			errs.Assert(d.resolvedAt[r.copyFrom+k], Error("restore: resolved triple reads an unresolved source byte"))
			tuples = append(tuples, tuple{copyTo: r.copyTo + k, b: d.textBuffer[r.copyFrom+k]})
		}
	}
	for _, t := range tuples {
		d.textBuffer[t.copyTo] = t.b
		d.resolvedAt[t.copyTo] = true
	}
}
