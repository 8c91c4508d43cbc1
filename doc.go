// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

/*
Package rlz implements Relative Lempel-Ziv compression: inputs are expressed
as a sequence of factors, each either a copy of a substring of a fixed
reference dictionary or a short literal run. The scheme targets corpora of
similar documents (web pages, logs, genomic sequences) where one shared
dictionary captures the repetition across documents and every document then
reduces to a short sequence of (offset, length) references.

# Building a dictionary

Dictionaries come from reservoir sampling over training data, or from raw
bytes:

	builder := rlz.NewReservoirBuilder(4<<20, 1024, 16<<20)
	builder.Sample(trainingBytes)
	dict := builder.Finish()

	dict, err := rlz.DictionaryFromBytes(referenceBytes)

NewStratifiedBuilder keeps one reservoir per stream identifier, preventing a
single heavily sampled stream from dominating the dictionary.

# Compressing

A Compressor bundles the dictionary with an encoder/decoder pair. Building it
constructs a suffix array over the dictionary, so build once and share; all
operations are safe for concurrent use:

	comp, err := rlz.New(dict, nil)
	n, err := comp.Encode(input, &buf)
	n, err = comp.Decode(buf.Bytes(), &out)

Encode factorizes the input by greedy longest-match against the dictionary
and packs the factors into three independently compressed byte streams
(literals, copy offsets, factor lengths). Matches of at most
Options.LiteralThreshold bytes are stored verbatim; longer matches become
dictionary references. Each stream's compressor is selected per Options
(zstd, zlib, or uncompressed).

# Persistence

Store writes the dictionary and configuration as a single zstd-framed
container; Load restores a decode-only compressor from it. Encoding after
Load requires EnableEncode, which rebuilds the suffix array:

	comp.Store(f)
	comp, err := rlz.Load(f)
	err = comp.EnableEncode()
*/
package rlz
