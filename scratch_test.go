package rlz

import (
	"sync"
	"testing"
)

func TestScratchPool_LIFOReuse(t *testing.T) {
	var pool scratchPool
	s1 := pool.acquire()
	s1.literals = append(s1.literals, "leftover"...)
	s1.lens = append(s1.lens, 1, 2, 3, 4)
	pool.release(s1)

	s2 := pool.acquire()
	if s2 != s1 {
		t.Fatal("pool did not hand back the released scratch")
	}
	if len(s2.literals) != 0 || len(s2.lens) != 0 {
		t.Fatal("acquired scratch not cleared")
	}
	if cap(s2.literals) == 0 {
		t.Fatal("acquired scratch lost its capacity")
	}
}

func TestScratchPool_LIFOOrder(t *testing.T) {
	var pool scratchPool
	s1 := pool.acquire()
	s2 := pool.acquire()
	if s1 == s2 {
		t.Fatal("pool handed out the same scratch twice")
	}
	pool.release(s1)
	pool.release(s2)
	if got := pool.acquire(); got != s2 {
		t.Fatal("pool is not LIFO")
	}
}

func TestScratch_Grow(t *testing.T) {
	var s scratch
	s.grow(1 << 16)
	if cap(s.literals) < 1<<16 || cap(s.offsets) < 1<<16 || cap(s.lens) < 1<<16 {
		t.Fatal("stream buffers not pre-sized")
	}
	if cap(s.encoded) < 2<<16 {
		t.Fatal("encoded buffer not pre-sized")
	}
	before := cap(s.literals)
	s.grow(16)
	if cap(s.literals) != before {
		t.Fatal("grow shrank an already large buffer")
	}
}

func TestScratchPool_Concurrent(t *testing.T) {
	var pool scratchPool
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				s := pool.acquire()
				s.literals = append(s.literals, 0xAB)
				pool.release(s)
			}
		}()
	}
	wg.Wait()
}
