package rlz

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

func buildSA(t *testing.T, text []byte) *suffixArray {
	t.Helper()
	sa, err := newSuffixArray(text)
	if err != nil {
		t.Fatalf("newSuffixArray: %v", err)
	}
	return sa
}

func randomText(n int, alphabet byte) []byte {
	rng := rand.New(rand.NewPCG(42, uint64(n)))
	text := make([]byte, n)
	for i := range text {
		text[i] = byte(rng.IntN(int(alphabet)))
	}
	return text
}

func TestSuffixArray_Sorted(t *testing.T) {
	inputs := [][]byte{
		[]byte("banana$"),
		[]byte("aaaa"),
		[]byte("abracadabra"),
		randomText(4096, 4),
		randomText(4096, 255),
	}
	for _, text := range inputs {
		sa := buildSA(t, text)
		if len(sa.sa) != len(text) {
			t.Fatalf("len(sa) = %d, want %d", len(sa.sa), len(text))
		}
		seen := make([]bool, len(text))
		for i, p := range sa.sa {
			if seen[p] {
				t.Fatalf("position %d appears twice", p)
			}
			seen[p] = true
			if i > 0 && bytes.Compare(text[sa.sa[i-1]:], text[p:]) >= 0 {
				t.Fatalf("suffixes %d and %d out of order", i-1, i)
			}
		}
	}
}

func TestBuckets_CountsMatchBruteForce(t *testing.T) {
	text := randomText(2048, 7)
	sa := buildSA(t, text)

	uniCount := make(map[byte]int32)
	biCount := make(map[[2]byte]int32)
	for i, c := range text {
		uniCount[c]++
		if i+1 < len(text) {
			biCount[[2]byte{c, text[i+1]}]++
		}
	}

	for c := range 256 {
		r, ok := sa.unigram(byte(c))
		want := uniCount[byte(c)]
		if !ok {
			if want != 0 {
				t.Fatalf("unigram %d reported empty, want %d suffixes", c, want)
			}
			continue
		}
		if r.size() != want {
			t.Fatalf("unigram %d range size %d, want %d", c, r.size(), want)
		}
		for _, p := range sa.sa[r.start : r.end+1] {
			if text[p] != byte(c) {
				t.Fatalf("unigram %d range contains suffix starting %d", c, text[p])
			}
		}
	}

	for c0 := range 8 {
		for c1 := range 8 {
			r, ok := sa.bigram(byte(c0), byte(c1))
			want := biCount[[2]byte{byte(c0), byte(c1)}]
			if !ok {
				if want != 0 {
					t.Fatalf("bigram (%d,%d) reported empty, want %d", c0, c1, want)
				}
				continue
			}
			if r.size() != want {
				t.Fatalf("bigram (%d,%d) range size %d, want %d", c0, c1, r.size(), want)
			}
		}
	}
}

func TestSeed_Fallbacks(t *testing.T) {
	text := []byte("xyxyx")
	sa := buildSA(t, text)

	// Bigram present: two matched bytes.
	r, n, ok := sa.seed([]byte("xy..."))
	if !ok || n != 2 {
		t.Fatalf("seed(xy) = (n=%d, ok=%v), want (2, true)", n, ok)
	}
	if r.size() != 2 {
		t.Fatalf("seed(xy) range size %d, want 2", r.size())
	}

	// Bigram absent, unigram present: fall back to one matched byte.
	_, n, ok = sa.seed([]byte("xx"))
	if !ok || n != 1 {
		t.Fatalf("seed(xx) = (n=%d, ok=%v), want (1, true)", n, ok)
	}

	// Unigram absent entirely.
	if _, _, ok := sa.seed([]byte("zz")); ok {
		t.Fatal("seed(zz) matched, want no match")
	}

	// Empty pattern covers the whole array.
	r, n, ok = sa.seed(nil)
	if !ok || n != 0 || r.start != 0 || r.end != int32(len(text))-1 {
		t.Fatalf("seed(empty) = (%+v, n=%d, ok=%v)", r, n, ok)
	}
}

func TestSeed_EmptyDictionary(t *testing.T) {
	sa := buildSA(t, nil)
	for _, pat := range [][]byte{nil, []byte("a"), []byte("ab")} {
		if _, _, ok := sa.seed(pat); ok {
			t.Fatalf("seed(%q) on empty dictionary matched", pat)
		}
	}
}

func TestRefine_MatchesBruteForce(t *testing.T) {
	text := randomText(1024, 4)
	sa := buildSA(t, text)

	for c := range 4 {
		r, ok := sa.unigram(byte(c))
		if !ok {
			continue
		}
		for sym := range 5 { // include a symbol outside the alphabet
			nr, ok := sa.refine(text, r, byte(sym), 1)
			var want int32
			for _, p := range sa.sa[r.start : r.end+1] {
				if int(p)+1 < len(text) && text[p+1] == byte(sym) {
					want++
				}
			}
			if !ok {
				if want != 0 {
					t.Fatalf("refine(%d,%d) empty, want %d suffixes", c, sym, want)
				}
				continue
			}
			if nr.size() != want {
				t.Fatalf("refine(%d,%d) size %d, want %d", c, sym, nr.size(), want)
			}
			for _, p := range sa.sa[nr.start : nr.end+1] {
				if text[p+1] != byte(sym) {
					t.Fatalf("refine(%d,%d) kept suffix with second byte %d", c, sym, text[p+1])
				}
			}
		}
	}
}

func TestRefine_ShortSuffixSortsLow(t *testing.T) {
	// The suffix "a" at the end of the text has no second byte and must fall
	// out of every refinement.
	text := []byte("aba")
	sa := buildSA(t, text)
	r, ok := sa.unigram('a')
	if !ok || r.size() != 2 {
		t.Fatalf("unigram(a) = (%+v, %v)", r, ok)
	}
	nr, ok := sa.refine(text, r, 'b', 1)
	if !ok || nr.size() != 1 {
		t.Fatalf("refine(a,b) = (%+v, %v), want single suffix", nr, ok)
	}
	if sa.sa[nr.start] != 0 {
		t.Fatalf("refine kept position %d, want 0", sa.sa[nr.start])
	}
}

func TestComputeBuckets_Monotone(t *testing.T) {
	text := randomText(512, 16)
	bkt := computeBuckets(text)
	if len(bkt) != bucketCount+1 {
		t.Fatalf("len(bkt) = %d, want %d", len(bkt), bucketCount+1)
	}
	// Boundaries are cumulative, so they must be non-decreasing.
	for i := 1; i < len(bkt); i++ {
		if bkt[i] < bkt[i-1] {
			t.Fatalf("bkt[%d]=%d < bkt[%d]=%d", i, bkt[i], i-1, bkt[i-1])
		}
	}
	if bkt[len(bkt)-1] != int32(len(text)) {
		t.Fatalf("total count %d, want %d", bkt[len(bkt)-1], len(text))
	}
}
