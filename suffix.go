// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import (
	"sort"

	"github.com/flanglet/kanzi-go/v2/transform"
)

// Bucket table layout. Each leading byte c0 owns 257 buckets: one for the
// length-1 suffix "c0" followed by the 256 bigram buckets (c0, c1). bkt holds
// cumulative boundaries, so bucket i spans sa[bkt[i]:bkt[i+1]].
const bucketCount = 256 * 257

// suffixArray holds the lexicographically sorted suffix positions of the
// dictionary together with the unigram/bigram bucket table used to seed
// searches. Both structures are built once and never mutated, so a
// suffixArray is freely shareable between goroutines.
type suffixArray struct {
	sa  []int32
	bkt []int32
}

// newSuffixArray sorts the suffixes of text with DivSufSort and derives the
// bucket table. No sentinel is appended; len(sa) == len(text).
func newSuffixArray(text []byte) (*suffixArray, error) {
	sa := make([]int32, len(text))
	if len(text) > 0 {
		dss, err := transform.NewDivSufSort()
		if err != nil {
			return nil, err
		}
		dss.ComputeSuffixArray(text, sa)
	}
	return &suffixArray{sa: sa, bkt: computeBuckets(text)}, nil
}

// computeBuckets counts bigram occurrences with a sliding window of size two,
// credits the final byte to its length-1 bucket, and prefix-sums the counts
// into cumulative boundaries.
func computeBuckets(text []byte) []int32 {
	bkt := make([]int32, bucketCount+1)
	if len(text) > 0 {
		for i := 0; i+1 < len(text); i++ {
			c0, c1 := int(text[i]), int(text[i+1])
			bkt[c0*257+c1+2]++
		}
		last := int(text[len(text)-1])
		bkt[last*257+1]++
	}
	for i := 1; i < len(bkt); i++ {
		bkt[i] += bkt[i-1]
	}
	return bkt
}

// saRange is an inclusive range of suffix array indices. All operations
// return ok=false for the empty range.
type saRange struct {
	start, end int32
}

func (r saRange) size() int32 {
	return r.end - r.start + 1
}

// unigram returns the range of suffixes whose first byte is c0.
func (x *suffixArray) unigram(c0 byte) (saRange, bool) {
	lo := x.bkt[int(c0)*257]
	hi := x.bkt[(int(c0)+1)*257]
	if lo == hi {
		return saRange{}, false
	}
	return saRange{start: lo, end: hi - 1}, true
}

// bigram returns the range of suffixes starting with the bytes c0 c1.
func (x *suffixArray) bigram(c0, c1 byte) (saRange, bool) {
	idx := int(c0)*257 + int(c1) + 1
	lo := x.bkt[idx]
	hi := x.bkt[idx+1]
	if lo == hi {
		return saRange{}, false
	}
	return saRange{start: lo, end: hi - 1}, true
}

// seed answers the initial range for a longest-match query: the bigram bucket
// of pat when it exists, otherwise the unigram bucket of pat[0]. The second
// return value is the number of pattern bytes the range already matches.
func (x *suffixArray) seed(pat []byte) (saRange, int, bool) {
	switch {
	case len(pat) == 0:
		if len(x.sa) == 0 {
			return saRange{}, 0, false
		}
		return saRange{start: 0, end: int32(len(x.sa)) - 1}, 0, true
	case len(pat) == 1:
		r, ok := x.unigram(pat[0])
		if !ok {
			return saRange{}, 0, false
		}
		return r, 1, true
	default:
		if r, ok := x.bigram(pat[0], pat[1]); ok {
			return r, 2, true
		}
		if r, ok := x.unigram(pat[0]); ok {
			return r, 1, true
		}
		return saRange{}, 0, false
	}
}

// refine narrows a range whose suffixes all share the first k pattern bytes
// down to the suffixes whose byte at offset k equals sym. A suffix shorter
// than k+1 bytes sorts below every symbol.
func (x *suffixArray) refine(text []byte, r saRange, sym byte, k int) (saRange, bool) {
	window := x.sa[r.start : r.end+1]
	at := func(pos int32) int {
		i := int(pos) + k
		if i >= len(text) {
			return -1
		}
		return int(text[i])
	}
	lo := sort.Search(len(window), func(i int) bool { return at(window[i]) >= int(sym) })
	hi := sort.Search(len(window), func(i int) bool { return at(window[i]) > int(sym) })
	if lo >= hi {
		return saRange{}, false
	}
	return saRange{start: r.start + int32(lo), end: r.start + int32(hi) - 1}, true
}
