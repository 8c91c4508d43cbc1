// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import (
	"bytes"
	"math/rand/v2"
)

// ReservoirBuilder turns an unbounded stream of training bytes into a
// fixed-size dictionary by classical reservoir sampling over fixed-width
// chunks. Every chunk seen has equal probability of ending up in the
// reservoir; Finish shuffles the survivors and concatenates them.
type ReservoirBuilder struct {
	dictBytes  int
	sampleSize int
	itr        int
	samples    [][]byte
	rng        *rand.Rand
}

// NewReservoirBuilder creates a builder producing a dictionary of dictBytes
// from candidate chunks of sampleSize bytes. reservoirBytes bounds the memory
// the builder holds; reservoirBytes/sampleSize chunks are retained.
func NewReservoirBuilder(dictBytes, sampleSize, reservoirBytes int) *ReservoirBuilder {
	capacity := reservoirBytes / sampleSize
	return &ReservoirBuilder{
		dictBytes:  dictBytes,
		sampleSize: sampleSize,
		itr:        capacity,
		samples:    make([][]byte, capacity),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Sample feeds training bytes to the reservoir in sampleSize chunks. The last
// chunk of p may be short.
func (b *ReservoirBuilder) Sample(p []byte) {
	if len(b.samples) == 0 {
		return
	}
	for len(p) > 0 {
		n := min(b.sampleSize, len(p))
		if r := b.rng.IntN(b.itr); r < len(b.samples) {
			b.samples[r] = bytes.Clone(p[:n])
		}
		b.itr++
		p = p[n:]
	}
}

// Finish shuffles the reservoir uniformly and concatenates the retained
// chunks until the target size is reached. The dictionary comes up short when
// too little data was sampled.
func (b *ReservoirBuilder) Finish() Dictionary {
	b.rng.Shuffle(len(b.samples), func(i, j int) {
		b.samples[i], b.samples[j] = b.samples[j], b.samples[i]
	})
	out := make([]byte, 0, b.dictBytes)
	for _, s := range b.samples {
		if s == nil {
			continue
		}
		if room := b.dictBytes - len(out); len(s) > room {
			s = s[:room]
		}
		out = append(out, s...)
		if len(out) >= b.dictBytes {
			break
		}
	}
	return Dictionary{data: out}
}
