// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import (
	"bytes"
	"math/rand/v2"

	"github.com/dchest/siphash"
)

// Fixed SipHash keys for stratum identifiers. The hash only buckets
// reservoirs, so the keys carry no secret.
const (
	stratumKey0 = 0x9ae16a3b2f90404f
	stratumKey1 = 0xc3a5c85c97cb3127
)

// StratifiedBuilder keeps one reservoir per stream identifier so the most
// heavily sampled stratum cannot dominate the dictionary. Finish allots each
// stratum an equal share of the output.
type StratifiedBuilder struct {
	dictBytes      int
	sampleSize     int
	itemsPerBucket int
	itr            map[uint64]int
	samples        map[uint64][][]byte
	rng            *rand.Rand
}

// NewStratifiedBuilder creates a builder producing a dictionary of dictBytes
// from chunks of sampleSize bytes, holding at most itemsPerBucket chunks per
// stratum.
func NewStratifiedBuilder(dictBytes, sampleSize, itemsPerBucket int) *StratifiedBuilder {
	return &StratifiedBuilder{
		dictBytes:      dictBytes,
		sampleSize:     sampleSize,
		itemsPerBucket: itemsPerBucket,
		itr:            make(map[uint64]int),
		samples:        make(map[uint64][][]byte),
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Sample feeds training bytes for one stratum, identified by id, to that
// stratum's reservoir.
func (b *StratifiedBuilder) Sample(id string, p []byte) {
	if b.itemsPerBucket == 0 {
		return
	}
	h := siphash.Hash(stratumKey0, stratumKey1, []byte(id))
	reservoir, ok := b.samples[h]
	if !ok {
		reservoir = make([][]byte, b.itemsPerBucket)
		b.samples[h] = reservoir
		b.itr[h] = b.itemsPerBucket
	}
	itr := b.itr[h]
	for len(p) > 0 {
		n := min(b.sampleSize, len(p))
		if r := b.rng.IntN(itr); r < len(reservoir) {
			reservoir[r] = bytes.Clone(p[:n])
		}
		itr++
		p = p[n:]
	}
	b.itr[h] = itr
}

// Finish concatenates an approximately equal number of chunks from every
// stratum until the target size is reached. Integer division of the
// per-stratum quota may leave the dictionary slightly under target.
func (b *StratifiedBuilder) Finish() Dictionary {
	out := make([]byte, 0, b.dictBytes)
	if len(b.samples) == 0 {
		return Dictionary{data: out}
	}
	numSamples := b.dictBytes / b.sampleSize
	perBucket := max(numSamples/len(b.samples), 1)
	for _, reservoir := range b.samples {
		taken := 0
		for _, s := range reservoir {
			if s == nil {
				continue
			}
			if taken == perBucket {
				break
			}
			if room := b.dictBytes - len(out); len(s) > room {
				s = s[:room]
			}
			out = append(out, s...)
			taken++
			if len(out) >= b.dictBytes {
				return Dictionary{data: out}
			}
		}
	}
	return Dictionary{data: out}
}
