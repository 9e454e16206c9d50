package em

import "sort"

// Reference is one unresolved LZSS back-reference: copy Length bytes
// from CopyFrom to CopyTo, where CopyFrom may itself still point into a
// region the decompressor hasn't resolved to literal bytes yet.
type Reference struct {
	CopyTo   int
	CopyFrom int
	Length   int
}

func (r Reference) end() int { return r.CopyFrom + r.Length }

// destEnd is the end of r's destination range, the coordinate findCovering
// and the covering/clamp test in scanPass need: byCopyTo is keyed on
// CopyTo, so testing coverage of a CopyFrom position against another
// reference must compare against that reference's CopyTo range, not its
// source range.
func (r Reference) destEnd() int { return r.CopyTo + r.Length }

func sortByCopyTo(refs []Reference) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].CopyTo < refs[j].CopyTo })
}

func sortByCopyFrom(refs []Reference) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].CopyFrom < refs[j].CopyFrom })
}

// findCovering returns the index of the last entry in byCopyTo (sorted
// by CopyTo) whose CopyTo is <= pos, or -1 if none. This is the
// "advance a cursor over by_copy_to" step of spec.md §4.L's merge-walk,
// implemented as a binary search per lookup rather than a single
// shared forward cursor: two references' source ranges can overlap
// (ordinary in LZSS/LZ77 back-references), so a cursor advanced
// strictly forward across the whole by_copy_from pass can't always be
// trusted not to need to step backward for the next from entry. A
// binary search costs an extra log factor per step but needs no such
// monotonicity argument to be correct.
func findCovering(byCopyTo []Reference, pos int) int {
	i := sort.Search(len(byCopyTo), func(i int) bool { return byCopyTo[i].CopyTo > pos })
	i--
	if i < 0 {
		return -1
	}
	return i
}
