// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

package rlz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"runtime"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// codecKind enumerates the closed set of byte compressors a stream may use.
type codecKind uint8

const (
	codecPlain codecKind = iota
	codecZstd
	codecZlib
)

// Codec selects the byte compressor for one factor stream.
type Codec struct {
	kind  codecKind
	level int
}

// PlainCodec stores a stream without compression.
func PlainCodec() Codec {
	return Codec{kind: codecPlain}
}

// ZstdCodec compresses a stream with zstd. Levels follow the reference zstd
// scale; negative levels select the fastest profile.
func ZstdCodec(level int) Codec {
	return Codec{kind: codecZstd, level: level}
}

// ZlibCodec compresses a stream with zlib. Levels outside [0, 9] are clamped.
func ZlibCodec(level int) Codec {
	return Codec{kind: codecZlib, level: min(max(level, 0), 9)}
}

func (c Codec) String() string {
	switch c.kind {
	case codecZstd:
		return fmt.Sprintf("zstd(%d)", c.level)
	case codecZlib:
		return fmt.Sprintf("zlib(%d)", c.level)
	default:
		return "plain"
	}
}

// The decompression side of zstd is stateless per call, so one process-wide
// decoder serves every stream.
var zstdDecoder *zstd.Decoder

func init() {
	z, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
	if err != nil {
		panic(err)
	}
	zstdDecoder = z
}

// streamCoder binds a Codec to its long-lived compressor state. zstd writers
// are created once per stream and reused via EncodeAll; zlib keeps no state
// between calls.
type streamCoder struct {
	codec Codec
	zenc  *zstd.Encoder
}

func newStreamCoder(c Codec) streamCoder {
	sc := streamCoder{codec: c}
	if c.kind == codecZstd {
		sc.zenc, _ = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(c.level)),
			zstd.WithEncoderConcurrency(1))
	}
	return sc
}

// compress appends the compressed form of src to dst. Empty input produces
// zero output bytes regardless of codec.
func (sc *streamCoder) compress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}
	switch sc.codec.kind {
	case codecPlain:
		return append(dst, src...), nil
	case codecZstd:
		return sc.zenc.EncodeAll(src, dst), nil
	default:
		w := appendWriter{buf: dst}
		zw, err := zlib.NewWriterLevel(&w, sc.codec.level)
		if err != nil {
			return dst, err
		}
		if _, err := zw.Write(src); err != nil {
			return dst, err
		}
		if err := zw.Close(); err != nil {
			return dst, err
		}
		return w.buf, nil
	}
}

// decompress appends the decompressed form of src to dst. Zero input bytes
// decode to zero output bytes.
func (sc *streamCoder) decompress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}
	switch sc.codec.kind {
	case codecPlain:
		return append(dst, src...), nil
	case codecZstd:
		return zstdDecoder.DecodeAll(src, dst)
	default:
		zr, err := zlib.NewReader(bytes.NewReader(src))
		if err != nil {
			return dst, err
		}
		defer zr.Close()
		w := appendWriter{buf: dst}
		if _, err := io.Copy(&w, zr); err != nil {
			return dst, err
		}
		return w.buf, nil
	}
}

// appendWriter adapts append-to-slice to io.Writer for the zlib paths.
type appendWriter struct {
	buf []byte
}

func (w *appendWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// coder packs the three factor streams of a scratch into one frame and back.
// The frame is vbyte(|Cl|) vbyte(|Co|) Cl Co Cn, where Cl, Co and Cn are the
// independently compressed literal, offset and length streams. Cn carries no
// explicit length; it is the remainder of the frame.
type coder struct {
	threshold uint32
	lit       streamCoder
	off       streamCoder
	length    streamCoder
}

func newCoder(opts *Options) *coder {
	return &coder{
		threshold: opts.LiteralThreshold,
		lit:       newStreamCoder(opts.Literals),
		off:       newStreamCoder(opts.Offsets),
		length:    newStreamCoder(opts.Lengths),
	}
}

// appendFactor stores one factor into the scratch streams: literals append
// their length and payload, copies append their offset and length.
func (s *scratch) appendFactor(f Factor) {
	if f.Literal != nil {
		s.lens = binary.LittleEndian.AppendUint32(s.lens, uint32(len(f.Literal)))
		s.literals = append(s.literals, f.Literal...)
		return
	}
	s.offsets = binary.LittleEndian.AppendUint32(s.offsets, f.Offset)
	s.lens = binary.LittleEndian.AppendUint32(s.lens, f.Length)
}

// encode compresses the scratch streams and writes one frame to output,
// returning the number of bytes written.
func (c *coder) encode(output io.Writer, s *scratch) (int, error) {
	s.encoded = s.encoded[:0]
	var err error
	if s.encoded, err = c.lit.compress(s.encoded, s.literals); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	clLen := len(s.encoded)
	if s.encoded, err = c.off.compress(s.encoded, s.offsets); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	coLen := len(s.encoded) - clLen
	if s.encoded, err = c.length.compress(s.encoded, s.lens); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	var hb [10]byte
	hdr := appendVByte(hb[:0], uint32(clLen))
	hdr = appendVByte(hdr, uint32(coLen))
	written, err := output.Write(hdr)
	if err != nil {
		return written, err
	}
	n, err := output.Write(s.encoded)
	written += n
	return written, err
}

// decode splits a frame into its three compressed streams and decompresses
// them into the scratch.
func (c *coder) decode(frame []byte, s *scratch) error {
	clLen, n, err := readVByte(frame)
	if err != nil {
		return err
	}
	frame = frame[n:]
	coLen, n, err := readVByte(frame)
	if err != nil {
		return err
	}
	frame = frame[n:]
	if int64(clLen)+int64(coLen) > int64(len(frame)) {
		return ErrTruncatedFrame
	}

	cl := frame[:clLen]
	co := frame[clLen : clLen+coLen]
	cn := frame[clLen+coLen:]
	if s.literals, err = c.lit.decompress(s.literals[:0], cl); err != nil {
		return fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if s.offsets, err = c.off.decompress(s.offsets[:0], co); err != nil {
		return fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if s.lens, err = c.length.decompress(s.lens[:0], cn); err != nil {
		return fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if len(s.lens)%4 != 0 {
		return fmt.Errorf("%w: length stream not a multiple of 4", ErrDecoding)
	}
	return nil
}

// encodedFactors replays the factor stream held in a decoded scratch in
// input order.
type encodedFactors struct {
	s         *scratch
	threshold uint32
	lenPos    int
	litPos    int
	offPos    int
}

func (it *encodedFactors) next() (Factor, bool, error) {
	if it.lenPos >= len(it.s.lens) {
		return Factor{}, false, nil
	}
	n := binary.LittleEndian.Uint32(it.s.lens[it.lenPos:])
	it.lenPos += 4
	if n <= it.threshold {
		end := it.litPos + int(n)
		if end > len(it.s.literals) {
			return Factor{}, false, fmt.Errorf("%w: literal stream exhausted", ErrDecoding)
		}
		f := Factor{Literal: it.s.literals[it.litPos:end:end], Length: n}
		it.litPos = end
		return f, true, nil
	}
	if it.offPos+4 > len(it.s.offsets) {
		return Factor{}, false, fmt.Errorf("%w: offset stream exhausted", ErrDecoding)
	}
	off := binary.LittleEndian.Uint32(it.s.offsets[it.offPos:])
	it.offPos += 4
	return Factor{Offset: off, Length: n}, true, nil
}
