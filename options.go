// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

// Options configures how factors are selected and how the three factor
// streams are byte-compressed. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// LiteralThreshold is the longest match still emitted as a literal run.
	// Matches strictly longer become dictionary copies. Values below 1 are
	// treated as 1; unmatched bytes always leave as one-byte literals.
	LiteralThreshold uint32
	// Literals, Offsets and Lengths select the byte compressor applied to the
	// literal, copy-offset and factor-length streams of a frame.
	Literals Codec
	Offsets  Codec
	Lengths  Codec
}

// normalized returns a private copy of opts with defaults and clamping
// applied.
func normalized(opts *Options) *Options {
	if opts == nil {
		return DefaultOptions()
	}
	o := *opts
	o.LiteralThreshold = max(o.LiteralThreshold, 1)
	return &o
}

// DefaultOptions returns the configuration used when nil options are passed:
// literal threshold 3 and zstd level 6 on all three streams.
func DefaultOptions() *Options {
	return &Options{
		LiteralThreshold: 3,
		Literals:         ZstdCodec(6),
		Offsets:          ZstdCodec(6),
		Lengths:          ZstdCodec(6),
	}
}
