// SPDX-License-Identifier: MIT
// Source: github.com/mpetri/rlz

// Command rlz trains RLZ dictionaries and compresses or expands files
// against them.
//
// Usage:
//
//	rlz train [--manifest job.yaml] [--dict-size N] [--sample-size N] [--reservoir-size N] -o dict.rlz [file ...]
//	rlz compress -d dict.rlz [-o out.rlzf] file
//	rlz decompress -d dict.rlz [-o out] file
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	flag "github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/mpetri/rlz"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rlz: ")
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "train":
		runTrain(os.Args[2:])
	case "compress":
		runCompress(os.Args[2:])
	case "decompress":
		runDecompress(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: rlz <train|compress|decompress> [flags] [file ...]")
	os.Exit(2)
}

// trainManifest describes a dictionary training job. A manifest replaces the
// sizing flags and the file arguments entirely; --threshold, --codec, --level
// and --output still apply.
type trainManifest struct {
	DictBytes      int          `json:"dictBytes"`
	SampleSize     int          `json:"sampleSize"`
	ReservoirBytes int          `json:"reservoirBytes"`
	Stratified     bool         `json:"stratified"`
	ItemsPerBucket int          `json:"itemsPerBucket"`
	Inputs         []trainInput `json:"inputs"`
}

type trainInput struct {
	Path string `json:"path"`
	// Key identifies the stratum for stratified sampling; defaults to Path.
	Key string `json:"key,omitempty"`
}

func runTrain(args []string) {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	manifestPath := fs.String("manifest", "", "YAML training manifest")
	dictSize := fs.Int("dict-size", 4<<20, "target dictionary size in bytes")
	sampleSize := fs.Int("sample-size", 1024, "candidate chunk size in bytes")
	reservoirSize := fs.Int("reservoir-size", 16<<20, "reservoir memory bound in bytes")
	threshold := fs.Uint32("threshold", 3, "literal threshold")
	codecName := fs.String("codec", "zstd", "stream codec: plain, zstd or zlib")
	level := fs.Int("level", 6, "stream codec level")
	out := fs.StringP("output", "o", "dict.rlz", "output container path")
	fs.Parse(args)

	job := trainManifest{
		DictBytes:      *dictSize,
		SampleSize:     *sampleSize,
		ReservoirBytes: *reservoirSize,
	}
	for _, path := range fs.Args() {
		job.Inputs = append(job.Inputs, trainInput{Path: path})
	}
	if *manifestPath != "" {
		data, err := os.ReadFile(*manifestPath)
		if err != nil {
			log.Fatalf("read manifest: %v", err)
		}
		job = trainManifest{}
		if err := yaml.Unmarshal(data, &job); err != nil {
			log.Fatalf("parse manifest %s: %v", *manifestPath, err)
		}
	}
	if len(job.Inputs) == 0 {
		log.Fatal("train: no input files")
	}

	dict := buildDictionary(&job)
	log.Printf("dictionary: %d bytes from %d inputs", dict.Len(), len(job.Inputs))

	codec, err := parseCodec(*codecName, *level)
	if err != nil {
		log.Fatal(err)
	}
	opts := &rlz.Options{
		LiteralThreshold: *threshold,
		Literals:         codec,
		Offsets:          codec,
		Lengths:          codec,
	}
	comp, err := rlz.New(dict, opts)
	if err != nil {
		log.Fatalf("build compressor: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := comp.Store(f); err != nil {
		log.Fatalf("store %s: %v", *out, err)
	}
	log.Printf("wrote %s", *out)
}

func buildDictionary(job *trainManifest) rlz.Dictionary {
	if job.Stratified {
		perBucket := job.ItemsPerBucket
		if perBucket == 0 {
			perBucket = 1024
		}
		b := rlz.NewStratifiedBuilder(job.DictBytes, job.SampleSize, perBucket)
		for _, in := range job.Inputs {
			key := in.Key
			if key == "" {
				key = in.Path
			}
			b.Sample(key, mustRead(in.Path))
		}
		return b.Finish()
	}
	b := rlz.NewReservoirBuilder(job.DictBytes, job.SampleSize, job.ReservoirBytes)
	for _, in := range job.Inputs {
		b.Sample(mustRead(in.Path))
	}
	return b.Finish()
}

func runCompress(args []string) {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	dictPath := fs.StringP("dict", "d", "dict.rlz", "dictionary container path")
	out := fs.StringP("output", "o", "", "output path (default: input + .rlzf)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("compress: exactly one input file required")
	}
	input := mustRead(fs.Arg(0))

	comp := mustLoad(*dictPath)
	if err := comp.EnableEncode(); err != nil {
		log.Fatalf("build encoder: %v", err)
	}

	var buf bytes.Buffer
	n, err := comp.Encode(input, &buf)
	if err != nil {
		log.Fatalf("encode %s: %v", fs.Arg(0), err)
	}

	path := *out
	if path == "" {
		path = fs.Arg(0) + ".rlzf"
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}
	ratio := 0.0
	if len(input) > 0 {
		ratio = float64(n) / float64(len(input))
	}
	log.Printf("%s: %d -> %d bytes (%.2f%%)", fs.Arg(0), len(input), n, 100*ratio)
}

func runDecompress(args []string) {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	dictPath := fs.StringP("dict", "d", "dict.rlz", "dictionary container path")
	out := fs.StringP("output", "o", "", "output path (default: input without .rlzf)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("decompress: exactly one input file required")
	}
	frame := mustRead(fs.Arg(0))

	comp := mustLoad(*dictPath)

	path := *out
	if path == "" {
		path = strippedName(fs.Arg(0))
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	n, err := comp.Decode(frame, f)
	if err != nil {
		log.Fatalf("decode %s: %v", fs.Arg(0), err)
	}
	log.Printf("%s: %d -> %d bytes", fs.Arg(0), len(frame), n)
}

func strippedName(name string) string {
	const ext = ".rlzf"
	if len(name) > len(ext) && name[len(name)-len(ext):] == ext {
		return name[:len(name)-len(ext)]
	}
	return name + ".out"
}

func parseCodec(name string, level int) (rlz.Codec, error) {
	switch name {
	case "plain":
		return rlz.PlainCodec(), nil
	case "zstd":
		return rlz.ZstdCodec(level), nil
	case "zlib":
		return rlz.ZlibCodec(level), nil
	default:
		return rlz.Codec{}, fmt.Errorf("unknown codec %q", name)
	}
}

func mustRead(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	return data
}

func mustLoad(path string) *rlz.Compressor {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open dictionary %s: %v", path, err)
	}
	defer f.Close()
	comp, err := rlz.Load(f)
	if err != nil {
		log.Fatalf("load dictionary %s: %v", path, err)
	}
	return comp
}
