// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import "sync"

// scratchMargin is added to every pre-sized scratch buffer so small inputs
// never reallocate mid-encode.
const scratchMargin = 1024

// scratch bundles the growable byte buffers used during a single encode or
// decode call: the three parallel factor streams plus the assembled
// compressed payload. A scratch is owned by exactly one call between acquire
// and release.
type scratch struct {
	literals []byte // concatenated literal payloads
	offsets  []byte // 32-bit little-endian copy offsets
	lens     []byte // 32-bit little-endian factor lengths
	encoded  []byte // compressed streams back to back
}

func (s *scratch) clear() {
	s.literals = s.literals[:0]
	s.offsets = s.offsets[:0]
	s.lens = s.lens[:0]
	s.encoded = s.encoded[:0]
}

// grow pre-sizes the buffers for an input of n bytes so the factor loop and
// the codec never reallocate. The worst case is one factor per input byte.
func (s *scratch) grow(n int) {
	want := 5*n + scratchMargin
	s.literals = growCap(s.literals, want)
	s.offsets = growCap(s.offsets, want)
	s.lens = growCap(s.lens, want)
	s.encoded = growCap(s.encoded, want)
}

func growCap(b []byte, want int) []byte {
	if cap(b) >= want {
		return b
	}
	nb := make([]byte, len(b), want)
	copy(nb, b)
	return nb
}

// scratchPool is a LIFO free list of scratch objects behind a mutex. Encoders
// and decoders are commonly shared across worker goroutines, so the pool is
// process-wide; the critical section is a single push or pop.
type scratchPool struct {
	mu   sync.Mutex
	free []*scratch
}

var sharedScratch scratchPool

// acquire pops the most recently released scratch or allocates a fresh one.
// The returned scratch is logically empty.
func (p *scratchPool) acquire() *scratch {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free = p.free[:n-1]
		p.mu.Unlock()
		s.clear()
		return s
	}
	p.mu.Unlock()
	return &scratch{}
}

// release returns a scratch to the pool. The scratch keeps its capacity.
func (p *scratchPool) release(s *scratch) {
	if s == nil {
		return
	}
	p.mu.Lock()
	p.free = append(p.free, s)
	p.mu.Unlock()
}
