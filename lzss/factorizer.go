package lzss

import "github.com/tudocomp-go/tdc/suffix"

// Factorize runs the PSV/NSV scan of spec.md §4.K over text (which must
// end in a trailing sentinel byte smaller than every other byte in it)
// and returns the resulting parse as Entry values in text order: either
// a back-reference Factor, or a single unmatched byte in Literal with
// IsLiteral set. The scan stops before the sentinel; the sentinel, which
// no factor can cover, ends the parse as a literal entry.
//
// The PSV/NSV search is a direct, line-by-line port of
// LZSSLCPCompressor's naive linear scan (the teacher's reference marks
// this itself as "naively" computed, with an explicit TODO noting a
// real PSV/NSV data structure would be faster) — correctness over the
// exact suffix-array semantics matters far more here than the
// asymptotic improvement, which the original left undone too.
func Factorize(text []byte, threshold int) []Entry {
	p := suffix.NewProvider(text)
	sa := p.SuffixArray()
	isa := p.InverseSuffixArray()
	lcp := p.LCP()

	n := len(text)
	var out []Entry

	i := 0
	for i+1 < n {
		curPos := isa[i]

		psvLCP := lcp[curPos]
		psvPos := curPos - 1
		if psvLCP > 0 {
			for psvPos >= 0 && sa[psvPos] > sa[curPos] {
				if lcp[psvPos] < psvLCP {
					psvLCP = lcp[psvPos]
				}
				psvPos--
			}
		}

		nsvLCP := 0
		nsvPos := curPos + 1
		if nsvPos < n {
			nsvLCP = len(text) + 1 // stands in for the C++ SSIZE_MAX sentinel
			for {
				if lcp[nsvPos] < nsvLCP {
					nsvLCP = lcp[nsvPos]
				}
				if sa[nsvPos] < sa[curPos] {
					break
				}
				nsvPos++
				if nsvPos >= n {
					break
				}
			}
			if nsvPos >= n {
				nsvLCP = 0
			}
		}

		maxLCP := psvLCP
		maxPos := psvPos
		if nsvLCP > psvLCP {
			maxLCP = nsvLCP
			maxPos = nsvPos
		}

		if maxLCP >= threshold {
			out = append(out, Entry{Factor: Factor{Pos: i, Src: sa[maxPos], Len: maxLCP}})
			i += maxLCP
		} else {
			out = append(out, Entry{Literal: text[i], IsLiteral: true})
			i++
		}
	}
	for ; i < n; i++ {
		out = append(out, Entry{Literal: text[i], IsLiteral: true})
	}
	return out
}

// Entry is one parsed unit: either a back-reference Factor or a single
// literal byte, in text order.
type Entry struct {
	Factor    Factor
	Literal   byte
	IsLiteral bool
}
