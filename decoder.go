// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import "io"

// Decoder expands encoded frames against the dictionary they were encoded
// with. A decoder is safe for concurrent use.
type Decoder struct {
	dict  Dictionary
	coder *coder
}

// NewDecoder returns a decoder for frames produced with the same dictionary
// and options. opts may be nil (DefaultOptions).
func NewDecoder(dict Dictionary, opts *Options) *Decoder {
	return &Decoder{dict: dict, coder: newCoder(normalized(opts))}
}

// Decode expands one frame into output and returns the number of bytes
// written. A malformed frame fails without retry; bytes already written stay
// written.
func (d *Decoder) Decode(frame []byte, output io.Writer) (int, error) {
	s := sharedScratch.acquire()
	defer sharedScratch.release(s)
	if err := d.coder.decode(frame, s); err != nil {
		return 0, err
	}

	written := 0
	it := encodedFactors{s: s, threshold: d.coder.threshold}
	for {
		f, ok, err := it.next()
		if err != nil {
			return written, err
		}
		if !ok {
			return written, nil
		}
		var src []byte
		if f.IsCopy() {
			end := int64(f.Offset) + int64(f.Length)
			if end > int64(d.dict.Len()) {
				return written, ErrCopyOutOfRange
			}
			src = d.dict.data[f.Offset:end]
		} else {
			src = f.Literal
		}
		n, err := output.Write(src)
		written += n
		if err != nil {
			return written, err
		}
	}
}
