// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

// Factor is one unit of factorizer output: either a run of input bytes stored
// verbatim or a copy of Length bytes starting at Offset in the dictionary.
// Literal factors carry their bytes in Literal; copy factors have a nil
// Literal.
type Factor struct {
	Literal []byte
	Offset  uint32
	Length  uint32
}

// IsCopy reports whether the factor references the dictionary.
func (f Factor) IsCopy() bool {
	return f.Literal == nil
}

// Len returns the number of input bytes the factor covers.
func (f Factor) Len() int {
	if f.Literal != nil {
		return len(f.Literal)
	}
	return int(f.Length)
}
