// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import "errors"

// Sentinel errors for encoding, decoding and compressor restoration.
var (
	// ErrEncoding is returned when a byte compressor fails while packing the
	// factor streams of a frame.
	ErrEncoding = errors.New("encoding factor streams failed")
	// ErrDecoding is returned when a byte decompressor rejects its input or a
	// decoded factor stream is internally inconsistent.
	ErrDecoding = errors.New("decoding factor streams failed")
	// ErrTruncatedFrame is returned when a frame ends inside a length prefix
	// or before the bytes the prefixes promise.
	ErrTruncatedFrame = errors.New("truncated frame")
	// ErrCopyOutOfRange is returned when a decoded copy factor references
	// bytes beyond the end of the dictionary.
	ErrCopyOutOfRange = errors.New("copy factor outside dictionary bounds")
	// ErrNoEncoder is returned when Encode is called on a compressor restored
	// by Load without a prior EnableEncode.
	ErrNoEncoder = errors.New("no encoder available, call EnableEncode first")
	// ErrInputTooLarge is returned when a single encode call or a dictionary
	// exceeds 2^31-1 bytes.
	ErrInputTooLarge = errors.New("input exceeds 2^31-1 bytes")
	// ErrBadContainer is returned when Load cannot parse a stored compressor.
	ErrBadContainer = errors.New("malformed compressor container")
)
