// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import "io"

// Encoder factorizes inputs against a fixed dictionary and writes encoded
// frames. Building an encoder constructs the suffix array, which is the
// expensive part; build once and share. An encoder is safe for concurrent
// use.
type Encoder struct {
	index *index
	coder *coder
}

// NewEncoder indexes the dictionary and returns an encoder. opts may be nil
// (DefaultOptions).
func NewEncoder(dict Dictionary, opts *Options) (*Encoder, error) {
	opts = normalized(opts)
	ix, err := newIndex(dict, opts.LiteralThreshold)
	if err != nil {
		return nil, err
	}
	return &Encoder{index: ix, coder: newCoder(opts)}, nil
}

// Encode factorizes input, packs the factor streams and writes one frame to
// output. It returns the number of frame bytes written.
func (e *Encoder) Encode(input []byte, output io.Writer) (int, error) {
	if len(input) > maxLen {
		return 0, ErrInputTooLarge
	}
	s := sharedScratch.acquire()
	defer sharedScratch.release(s)
	s.grow(len(input))

	it := e.index.factorize(input)
	for f, ok := it.next(); ok; f, ok = it.next() {
		s.appendFactor(f)
	}
	return e.coder.encode(output, s)
}

// Factors returns the factor decomposition of input without encoding it.
// Literal factors alias the input slice.
func (e *Encoder) Factors(input []byte) []Factor {
	var factors []Factor
	it := e.index.factorize(input)
	for f, ok := it.next(); ok; f, ok = it.next() {
		factors = append(factors, f)
	}
	return factors
}
