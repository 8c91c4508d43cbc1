// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Compressor bundles a dictionary, its configuration and the matching
// encoder/decoder pair behind a single object. Compressors restored by Load
// can decode immediately; call EnableEncode to rebuild the index before
// encoding.
type Compressor struct {
	dict    Dictionary
	opts    Options
	encoder *Encoder
	decoder *Decoder
}

// New builds a compressor ready for both encoding and decoding. opts may be
// nil (DefaultOptions).
func New(dict Dictionary, opts *Options) (*Compressor, error) {
	opts = normalized(opts)
	enc, err := NewEncoder(dict, opts)
	if err != nil {
		return nil, err
	}
	return &Compressor{
		dict:    dict,
		opts:    *opts,
		encoder: enc,
		decoder: NewDecoder(dict, opts),
	}, nil
}

// Encode writes one encoded frame for input to output and returns the number
// of bytes written. Returns ErrNoEncoder when the index has not been built.
func (c *Compressor) Encode(input []byte, output io.Writer) (int, error) {
	if c.encoder == nil {
		return 0, ErrNoEncoder
	}
	return c.encoder.Encode(input, output)
}

// Decode expands one frame into output and returns the number of bytes
// written.
func (c *Compressor) Decode(frame []byte, output io.Writer) (int, error) {
	return c.decoder.Decode(frame, output)
}

// EnableEncode builds the dictionary index for a compressor restored by
// Load. It is a no-op when an encoder is already present.
func (c *Compressor) EnableEncode() error {
	if c.encoder != nil {
		return nil
	}
	enc, err := NewEncoder(c.dict, &c.opts)
	if err != nil {
		return err
	}
	c.encoder = enc
	return nil
}

// Dictionary returns the dictionary the compressor was built with.
func (c *Compressor) Dictionary() Dictionary {
	return c.dict
}

// Container layout, inside one zstd frame:
//
//	magic "rlzc" | version | vbyte(threshold) | 3 codecs | vbyte(|D|) | D
//
// Each codec is one kind byte followed by its level as 32-bit little-endian.
// The suffix array is not stored; Load rebuilds it on demand via
// EnableEncode.
var containerMagic = [4]byte{'r', 'l', 'z', 'c'}

const containerVersion = 1

// Store writes the dictionary and configuration as one zstd-framed container.
func (c *Compressor) Store(output io.Writer) error {
	payload := make([]byte, 0, len(c.dict.data)+64)
	payload = append(payload, containerMagic[:]...)
	payload = append(payload, containerVersion)
	payload = appendVByte(payload, c.opts.LiteralThreshold)
	for _, cd := range []Codec{c.opts.Literals, c.opts.Offsets, c.opts.Lengths} {
		payload = append(payload, byte(cd.kind))
		payload = binary.LittleEndian.AppendUint32(payload, uint32(int32(cd.level)))
	}
	payload = appendVByte(payload, uint32(len(c.dict.data)))
	payload = append(payload, c.dict.data...)

	zw, err := zstd.NewWriter(output,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(6)),
		zstd.WithEncoderConcurrency(1))
	if err != nil {
		return err
	}
	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Load restores a compressor written by Store. The result is decode-only;
// call EnableEncode before encoding.
func Load(input io.Reader) (*Compressor, error) {
	zr, err := zstd.NewReader(input, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadContainer, err)
	}
	defer zr.Close()
	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadContainer, err)
	}

	if len(payload) < len(containerMagic)+1 ||
		string(payload[:4]) != string(containerMagic[:]) ||
		payload[4] != containerVersion {
		return nil, ErrBadContainer
	}
	payload = payload[5:]

	var opts Options
	threshold, n, err := readVByte(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadContainer, err)
	}
	payload = payload[n:]
	opts.LiteralThreshold = threshold
	for _, field := range []*Codec{&opts.Literals, &opts.Offsets, &opts.Lengths} {
		if len(payload) < 5 {
			return nil, ErrBadContainer
		}
		kind := codecKind(payload[0])
		if kind > codecZlib {
			return nil, ErrBadContainer
		}
		level := int(int32(binary.LittleEndian.Uint32(payload[1:])))
		*field = Codec{kind: kind, level: level}
		payload = payload[5:]
	}

	dictLen, n, err := readVByte(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadContainer, err)
	}
	payload = payload[n:]
	if int(dictLen) != len(payload) {
		return nil, ErrBadContainer
	}
	dict, err := DictionaryFromBytes(payload)
	if err != nil {
		return nil, err
	}
	return &Compressor{
		dict:    dict,
		opts:    opts,
		decoder: NewDecoder(dict, &opts),
	}, nil
}
