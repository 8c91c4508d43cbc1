// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import "bytes"

// maxLen bounds both the dictionary and a single encode call; suffix array
// positions and copy offsets are 32-bit.
const maxLen = 1<<31 - 1

// Dictionary is the fixed reference byte sequence inputs are factored
// against. It is immutable after construction; copies of the value share the
// underlying bytes, so passing dictionaries around is cheap. A dictionary
// must outlive every encoder and decoder built from it.
type Dictionary struct {
	data []byte
}

// DictionaryFromBytes copies b into a new dictionary. Returns
// ErrInputTooLarge when b exceeds 2^31-1 bytes.
func DictionaryFromBytes(b []byte) (Dictionary, error) {
	if len(b) > maxLen {
		return Dictionary{}, ErrInputTooLarge
	}
	return Dictionary{data: bytes.Clone(b)}, nil
}

// Len returns the dictionary size in bytes.
func (d Dictionary) Len() int {
	return len(d.data)
}

// Bytes returns the dictionary contents. The slice is shared with the
// dictionary and must not be modified.
func (d Dictionary) Bytes() []byte {
	return d.data
}
