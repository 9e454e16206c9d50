// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// ====================================================
// Copyright (c) 2008-2010 Yuta Mori All Rights Reserved.
//
// Permission is hereby granted, free of charge, to any person
// obtaining a copy of this software and associated documentation
// files (the "Software"), to deal in the Software without
// restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following
// conditions:
//
// The above copyright notice and this permission notice shall be
// included in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
// ====================================================

package suffix

// This file is the general-alphabet ([]int) SA-IS suffix sorter, adapted
// from the teacher's byte-alphabet sais package (bzip2/internal/sais),
// generalised back to operate over an arbitrary integer alphabet instead
// of specialising it to bytes, since Provider needs to build a suffix
// array over the document directly (byte alphabet, size 256) and can
// also build one over reduced integer alphabets. The induced-sorting
// logic itself is an unmodified port: it is delicate enough that
// reproducing it byte-for-byte correct matters far more than renaming
// idioms.

func computeSA(text []int, sa []int, alphabetSize int) {
	if len(sa) != len(text) {
		panic(Error("mismatching sizes"))
	}
	computeSAReduced(text, sa, 0, len(text), alphabetSize)
}

func getCounts(text, counts []int, n, k int) {
	for i := 0; i < k; i++ {
		counts[i] = 0
	}
	for i := 0; i < n; i++ {
		counts[text[i]]++
	}
}

func getBuckets(counts, buckets []int, k int, end bool) {
	sum := 0
	if end {
		for i := 0; i < k; i++ {
			sum += counts[i]
			buckets[i] = sum
		}
	} else {
		for i := 0; i < k; i++ {
			sum += counts[i]
			buckets[i] = sum - counts[i]
		}
	}
}

func sortLMS1(text []int, sa, counts, buckets []int, n, k int) {
	var b, i, j int
	var c0, c1 int

	if &counts[0] == &buckets[0] {
		getCounts(text, counts, n, k)
	}
	getBuckets(counts, buckets, k, false)
	j = n - 1
	c1 = text[j]
	b = buckets[c1]
	j--
	if text[j] < c1 {
		sa[b] = ^j
	} else {
		sa[b] = j
	}
	b++
	for i = 0; i < n; i++ {
		if j = sa[i]; j > 0 {
			if c0 = text[j]; c0 != c1 {
				buckets[c1] = b
				c1 = c0
				b = buckets[c1]
			}
			j--
			if text[j] < c1 {
				sa[b] = ^j
			} else {
				sa[b] = j
			}
			b++
			sa[i] = 0
		} else if j < 0 {
			sa[i] = ^j
		}
	}

	if &counts[0] == &buckets[0] {
		getCounts(text, counts, n, k)
	}
	getBuckets(counts, buckets, k, true)
	c1 = 0
	b = buckets[c1]
	for i = n - 1; i >= 0; i-- {
		if j = sa[i]; j > 0 {
			if c0 = text[j]; c0 != c1 {
				buckets[c1] = b
				c1 = c0
				b = buckets[c1]
			}
			j--
			b--
			if text[j] > c1 {
				sa[b] = ^(j + 1)
			} else {
				sa[b] = j
			}
			sa[i] = 0
		}
	}
}

func postProcLMS1(text []int, sa []int, n, m int) int {
	var i, j, p, q, plen, qlen, name int
	var c0, c1 int
	var diff bool

	for i = 0; sa[i] < 0; i++ {
		sa[i] = ^sa[i]
	}
	if i < m {
		for j, i = i, i+1; ; i++ {
			if p = sa[i]; p < 0 {
				sa[j] = ^p
				j++
				sa[i] = 0
				if j == m {
					break
				}
			}
		}
	}

	i = n - 1
	j = n - 1
	c0 = text[n-1]
	for {
		c1 = c0
		if i--; i < 0 {
			break
		}
		if c0 = text[i]; c0 < c1 {
			break
		}
	}
	for i >= 0 {
		for {
			c1 = c0
			if i--; i < 0 {
				break
			}
			if c0 = text[i]; c0 > c1 {
				break
			}
		}
		if i >= 0 {
			sa[m+((i+1)>>1)] = j - i
			j = i + 1
			for {
				c1 = c0
				if i--; i < 0 {
					break
				}
				if c0 = text[i]; c0 < c1 {
					break
				}
			}
		}
	}

	name = 0
	qlen = 0
	for i, q = 0, n; i < m; i++ {
		p = sa[i]
		plen = sa[m+(p>>1)]
		diff = true
		if plen == qlen && q+plen < n {
			for j = 0; j < plen && text[p+j] == text[q+j]; j++ {
			}
			if j == plen {
				diff = false
			}
		}
		if diff {
			name++
			q = p
			qlen = plen
		}
		sa[m+(p>>1)] = name
	}
	return name
}

func induceSA(text []int, sa, counts, buckets []int, n, k int) {
	var b, i, j int
	var c0, c1 int

	if &counts[0] == &buckets[0] {
		getCounts(text, counts, n, k)
	}
	getBuckets(counts, buckets, k, false)
	j = n - 1
	c1 = text[j]
	b = buckets[c1]
	if j > 0 && text[j-1] < c1 {
		sa[b] = ^j
	} else {
		sa[b] = j
	}
	b++
	for i = 0; i < n; i++ {
		j = sa[i]
		sa[i] = ^j
		if j > 0 {
			j--
			if c0 = text[j]; c0 != c1 {
				buckets[c1] = b
				c1 = c0
				b = buckets[c1]
			}
			if j > 0 && text[j-1] < c1 {
				sa[b] = ^j
			} else {
				sa[b] = j
			}
			b++
		}
	}

	if &counts[0] == &buckets[0] {
		getCounts(text, counts, n, k)
	}
	getBuckets(counts, buckets, k, true)
	c1 = 0
	b = buckets[c1]
	for i = n - 1; i >= 0; i-- {
		if j = sa[i]; j > 0 {
			j--
			if c0 = text[j]; c0 != c1 {
				buckets[c1] = b
				c1 = c0
				b = buckets[c1]
			}
			b--
			if j == 0 || text[j-1] > c1 {
				sa[b] = ^j
			} else {
				sa[b] = j
			}
		} else {
			sa[i] = ^j
		}
	}
}

// computeSAReduced is the recursive SA-IS core: fs is the number of
// scratch slots available past n in sa, n is the length of text, k the
// alphabet size.
func computeSAReduced(text []int, sa []int, fs, n, k int) {
	const minBucketSize = 512

	var counts, buckets, reduced []int
	var bucketOffset int
	var b, i, j, m, p, q, name, newfs int
	var c0, c1 int
	var flags uint

	if k <= minBucketSize {
		counts = make([]int, k)
		if k <= fs {
			bucketOffset = n + fs - k
			buckets = sa[bucketOffset:]
			flags = 1
		} else {
			buckets = make([]int, k)
			flags = 3
		}
	} else if k <= fs {
		counts = sa[n+fs-k:]
		if k <= fs-k {
			bucketOffset = n + fs - 2*k
			buckets = sa[bucketOffset:]
			flags = 0
		} else if k <= 4*minBucketSize {
			buckets = make([]int, k)
			flags = 2
		} else {
			buckets = counts
			flags = 8
		}
	} else {
		counts = make([]int, k)
		flags = 4 | 8
	}

	// Stage 1: sort all LMS-substrings.
	getCounts(text, counts, n, k)
	getBuckets(counts, buckets, k, true)
	for i = 0; i < n; i++ {
		sa[i] = 0
	}
	b = -1
	i = n - 1
	j = n
	m = 0
	c0 = text[n-1]
	for {
		c1 = c0
		if i--; i < 0 {
			break
		}
		if c0 = text[i]; c0 < c1 {
			break
		}
	}
	for i >= 0 {
		for {
			c1 = c0
			if i--; i < 0 {
				break
			}
			if c0 = text[i]; c0 > c1 {
				break
			}
		}
		if i >= 0 {
			if b >= 0 {
				sa[b] = j
			}
			buckets[c1]--
			b = buckets[c1]
			j = i
			m++
			for {
				c1 = c0
				if i--; i < 0 {
					break
				}
				if c0 = text[i]; c0 < c1 {
					break
				}
			}
		}
	}

	if m > 1 {
		sortLMS1(text, sa, counts, buckets, n, k)
		name = postProcLMS1(text, sa, n, m)
	} else if m == 1 {
		sa[b] = j + 1
		name = 1
	} else {
		name = 0
	}

	// Stage 2: recurse on the reduced problem if names are not unique.
	if name < m {
		newfs = n + fs - 2*m
		if flags&(1|4|8) == 0 {
			if k+name <= newfs {
				newfs -= k
			} else {
				flags |= 8
			}
		}
		reduced = sa[m+newfs:]
		for i, j = m+(n>>1)-1, m-1; m <= i; i-- {
			if sa[i] != 0 {
				reduced[j] = sa[i] - 1
				j--
			}
		}
		computeSAReduced(reduced, sa, newfs, m, name)

		i = n - 1
		j = m - 1
		c0 = text[n-1]
		for {
			c1 = c0
			if i--; i < 0 {
				break
			}
			if c0 = text[i]; c0 < c1 {
				break
			}
		}
		for i >= 0 {
			for {
				c1 = c0
				if i--; i < 0 {
					break
				}
				if c0 = text[i]; c0 > c1 {
					break
				}
			}
			if i >= 0 {
				reduced[j] = i + 1
				j--
				for {
					c1 = c0
					if i--; i < 0 {
						break
					}
					if c0 = text[i]; c0 < c1 {
						break
					}
				}
			}
		}
		for i = 0; i < m; i++ {
			sa[i] = reduced[sa[i]]
		}
		if flags&4 > 0 {
			buckets = make([]int, k)
			counts = buckets
		}
		if flags&2 > 0 {
			buckets = make([]int, k)
		}
	}

	// Stage 3: induce the final order from the sorted LMS-substrings.
	if flags&8 > 0 {
		getCounts(text, counts, n, k)
	}
	if m > 1 {
		getBuckets(counts, buckets, k, true)
		i = m - 1
		j = n
		p = sa[m-1]
		c1 = text[p]
		for {
			c0 = c1
			q = buckets[c0]
			for q < j {
				j--
				sa[j] = 0
			}
			for {
				j--
				sa[j] = p
				if i--; i < 0 {
					break
				}
				p = sa[i]
				if c1 = text[p]; c1 != c0 {
					break
				}
			}
			if i < 0 {
				break
			}
		}
		for j > 0 {
			j--
			sa[j] = 0
		}
	}
	induceSA(text, sa, counts, buckets, n, k)
}

// SuffixArrayBytes builds a suffix array for a byte document that must
// end in a sentinel byte strictly smaller than every other byte in it
// (spec.md §4.H precondition "the input has a trailing sentinel 0").
func SuffixArrayBytes(text []byte) []int {
	t := make([]int, len(text))
	for i, b := range text {
		t[i] = int(b)
	}
	sa := make([]int, len(t))
	if len(t) > 0 {
		computeSA(t, sa, 256)
	}
	return sa
}
