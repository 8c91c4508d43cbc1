// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

// Variable-byte integers carry the two stream-length prefixes of a frame.
// Seven payload bits per byte, little-endian, and the final byte of a value
// has its high bit set. Values in [0, 2^32) occupy 1 to 5 bytes.

// appendVByte appends the vbyte encoding of num to dst.
func appendVByte(dst []byte, num uint32) []byte {
	for num >= 0x80 {
		dst = append(dst, byte(num&0x7F))
		num >>= 7
	}
	return append(dst, byte(num)|0x80)
}

// readVByte decodes one vbyte integer from the front of src and returns the
// value and the number of bytes consumed. ErrTruncatedFrame is returned when
// src ends before a terminating byte, or when no terminator appears within
// the 5-byte limit.
func readVByte(src []byte) (uint32, int, error) {
	var val uint32
	for i := 0; i < len(src) && i < 5; i++ {
		c := src[i]
		val += uint32(c&0x7F) << (7 * i)
		if c&0x80 != 0 {
			return val, i + 1, nil
		}
	}
	return 0, 0, ErrTruncatedFrame
}
