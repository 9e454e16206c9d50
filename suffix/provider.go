// Package suffix implements the on-demand SA/ISA/LCP/PLCP provider of
// spec.md §4.H: each artifact is constructed the first time it is asked
// for, via divsufsort-style induced suffix sorting, and cached for
// later callers; a dependency graph pulls in whatever prerequisite
// artifacts an artifact needs.
package suffix

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "suffix: " + string(e) }

// Provider lazily builds and caches SA/ISA/LCP/PLCP for one document.
// The zero value is not usable; use NewProvider. Not safe for concurrent
// use — mirrors tudocomp's DSManager, which is likewise single-threaded
// per compressor invocation.
type Provider struct {
	text []byte

	sa   []int
	isa  []int
	lcp  []int
	plcp []int
}

// NewProvider creates a Provider over text, which must already carry
// whatever trailing sentinel the caller's algorithm needs (spec.md
// §4.H's "the input has a trailing sentinel 0" precondition belongs to
// the caller, not to Provider, since not every artifact needs one).
func NewProvider(text []byte) *Provider {
	return &Provider{text: text}
}

// SuffixArray returns the suffix array, building it on first use.
func (p *Provider) SuffixArray() []int {
	if p.sa == nil {
		p.sa = SuffixArrayBytes(p.text)
	}
	return p.sa
}

// InverseSuffixArray returns the inverse suffix array (ISA[SA[i]] = i),
// building SA first if needed.
func (p *Provider) InverseSuffixArray() []int {
	if p.isa == nil {
		sa := p.SuffixArray()
		isa := make([]int, len(sa))
		for i, s := range sa {
			isa[s] = i
		}
		p.isa = isa
	}
	return p.isa
}

// LCP returns the longest-common-prefix array in SA order: LCP[i] is
// the length of the common prefix between SA[i-1] and SA[i] (LCP[0] is
// conventionally 0). Requires SA and ISA, built on demand via Kasai's
// algorithm — the same construction tudocomp's DSManager.hpp documents
// for its LCP artifact.
func (p *Provider) LCP() []int {
	if p.lcp != nil {
		return p.lcp
	}
	sa := p.SuffixArray()
	isa := p.InverseSuffixArray()
	n := len(sa)
	lcp := make([]int, n)
	h := 0
	for i := 0; i < n; i++ {
		r := isa[i]
		if r > 0 {
			j := sa[r-1]
			for i+h < n && j+h < n && p.text[i+h] == p.text[j+h] {
				h++
			}
			lcp[r] = h
			if h > 0 {
				h--
			}
		} else {
			h = 0
		}
	}
	p.lcp = lcp
	return lcp
}

// PLCP returns the LCP array permuted into text order: PLCP[i] =
// LCP[ISA[i]]. Built directly by the same Kasai pass LCP uses, without
// needing LCP itself to already exist, matching the "PLCP ... is built
// directly" half of spec.md §4.H's dependency-graph sentence.
func (p *Provider) PLCP() []int {
	if p.plcp != nil {
		return p.plcp
	}
	isa := p.InverseSuffixArray()
	sa := p.SuffixArray()
	n := len(sa)
	plcp := make([]int, n)
	h := 0
	for i := 0; i < n; i++ {
		r := isa[i]
		if r > 0 {
			j := sa[r-1]
			for i+h < n && j+h < n && p.text[i+h] == p.text[j+h] {
				h++
			}
			plcp[i] = h
			if h > 0 {
				h--
			}
		} else {
			h = 0
		}
	}
	p.plcp = plcp
	return plcp
}

// RelinquishSA transfers ownership of the cached suffix array to the
// caller and drops Provider's own reference, per spec.md §4.H's
// `relinquish<ds>()`. Panics if SA was never built — relinquishing
// something that doesn't exist is a caller bug, not a runtime
// condition.
func (p *Provider) RelinquishSA() []int {
	if p.sa == nil {
		panic(Error("RelinquishSA: suffix array was never built"))
	}
	sa := p.sa
	p.sa = nil
	return sa
}

// RelinquishISA transfers ownership of the cached inverse suffix array.
func (p *Provider) RelinquishISA() []int {
	if p.isa == nil {
		panic(Error("RelinquishISA: inverse suffix array was never built"))
	}
	isa := p.isa
	p.isa = nil
	return isa
}

// RelinquishLCP transfers ownership of the cached LCP array.
func (p *Provider) RelinquishLCP() []int {
	if p.lcp == nil {
		panic(Error("RelinquishLCP: LCP array was never built"))
	}
	lcp := p.lcp
	p.lcp = nil
	return lcp
}

// RelinquishPLCP transfers ownership of the cached PLCP array.
func (p *Provider) RelinquishPLCP() []int {
	if p.plcp == nil {
		panic(Error("RelinquishPLCP: PLCP array was never built"))
	}
	plcp := p.plcp
	p.plcp = nil
	return plcp
}
