// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

// index pairs the dictionary bytes with their suffix array for greedy
// longest-match queries. It shares the dictionary's backing array; the
// dictionary's immutability makes that safe.
type index struct {
	text      []byte
	sa        *suffixArray
	threshold uint32
}

func newIndex(dict Dictionary, threshold uint32) (*index, error) {
	sa, err := newSuffixArray(dict.Bytes())
	if err != nil {
		return nil, err
	}
	return &index{text: dict.Bytes(), sa: sa, threshold: threshold}, nil
}

// match is the result of a longest-match query: the number of pattern bytes
// matched and the dictionary position of the match.
type match struct {
	n      int
	offset int32
}

// longestMatch finds the longest dictionary substring that prefixes pat.
// The search seeds from the bucket table, refines the suffix range one
// symbol at a time, and walks the dictionary directly once the range is down
// to a single suffix. Among equally long matches the first representative in
// suffix order is returned.
func (ix *index) longestMatch(pat []byte) (match, bool) {
	r, n, ok := ix.sa.seed(pat)
	if !ok {
		return match{}, false
	}
	for n < len(pat) && r.size() > 1 {
		nr, ok := ix.sa.refine(ix.text, r, pat[n], n)
		if !ok {
			break
		}
		r = nr
		n++
	}
	if n > 0 && r.size() == 1 {
		pos := int(ix.sa.sa[r.start])
		for n < len(pat) && pos+n < len(ix.text) && ix.text[pos+n] == pat[n] {
			n++
		}
	}
	return match{n: n, offset: ix.sa.sa[r.start]}, true
}

// factorIterator lazily yields the factors of one input slice. Each call to
// next consumes at least one input byte, so iteration always terminates.
type factorIterator struct {
	ix        *index
	remaining []byte
}

func (ix *index) factorize(input []byte) factorIterator {
	return factorIterator{ix: ix, remaining: input}
}

func (it *factorIterator) next() (Factor, bool) {
	if len(it.remaining) == 0 {
		return Factor{}, false
	}
	var f Factor
	m, ok := it.ix.longestMatch(it.remaining)
	switch {
	case !ok:
		f = Factor{Literal: it.remaining[:1], Length: 1}
	case uint32(m.n) <= it.ix.threshold:
		f = Factor{Literal: it.remaining[:m.n], Length: uint32(m.n)}
	default:
		f = Factor{Offset: uint32(m.offset), Length: uint32(m.n)}
	}
	it.remaining = it.remaining[f.Len():]
	return f, true
}
