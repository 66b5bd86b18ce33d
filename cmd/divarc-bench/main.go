// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command divarc-bench compares divarc's own Huffman and LZ77 codecs
// against github.com/klauspost/compress/flate and github.com/ulikunitz/xz
// on a single input file, reporting compression ratio and throughput for
// each, the way internal/tool/bench compared the teacher's hand-rolled
// flate against cgo zlib and the standard library.
//
//	$ divarc-bench -file testdata/twain.txt
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-compress/divarc/huffman"
	"github.com/go-compress/divarc/lz77"
	"github.com/go-compress/divarc/osfs"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/cpuid"
	"github.com/ulikunitz/xz"
)

type codec struct {
	name   string
	encode func(dst io.Writer, src []byte) error
	decode func(src []byte, size int) ([]byte, error)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("divarc-bench: ")

	file := flag.String("file", "", "input file to benchmark (required)")
	trials := flag.Int("trials", 3, "number of encode/decode trials to average")
	flag.Parse()

	if *file == "" {
		log.Fatalf("-file is required")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("reading %s: %v", *file, err)
	}

	fmt.Printf("BENCHMARK: %s (%d bytes)\n", *file, len(data))
	fmt.Printf("host: %s, %d physical / %d logical cores\n",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	fmt.Printf("%-10s %10s %12s %12s\n", "codec", "ratio", "enc MB/s", "dec MB/s")

	for _, c := range codecs() {
		ratio, encRate, decRate, err := run(c, data, *trials)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", c.name, err)
			continue
		}
		fmt.Printf("%-10s %10.3f %12.2f %12.2f\n", c.name, ratio, encRate, decRate)
	}
}

func codecs() []codec {
	factory := osfs.TempFileFactory{}
	return []codec{
		{
			name: "huffman",
			encode: func(dst io.Writer, src []byte) error {
				w, err := huffman.NewWriter(dst, factory)
				if err != nil {
					return err
				}
				if _, err := w.Write(src); err != nil {
					w.Close()
					return err
				}
				return w.Close()
			},
			decode: func(src []byte, size int) ([]byte, error) {
				d, err := huffman.NewDecoder(bytes.NewReader(src), size == 0)
				if err != nil {
					return nil, err
				}
				return d.DecodeToMemory(size)
			},
		},
		{
			name: "lz77",
			encode: func(dst io.Writer, src []byte) error {
				w, err := lz77.NewWriter(dst, factory)
				if err != nil {
					return err
				}
				if _, err := w.Write(src); err != nil {
					w.Close()
					return err
				}
				return w.Close()
			},
			decode: func(src []byte, size int) ([]byte, error) {
				d, err := lz77.NewDecoder(bytes.NewReader(src), factory, 0, size == 0)
				if err != nil {
					return nil, err
				}
				defer d.Close()
				return d.DecodeToMemory(size)
			},
		},
		{
			name: "flate",
			encode: func(dst io.Writer, src []byte) error {
				w, err := flate.NewWriter(dst, flate.DefaultCompression)
				if err != nil {
					return err
				}
				if _, err := w.Write(src); err != nil {
					w.Close()
					return err
				}
				return w.Close()
			},
			decode: func(src []byte, size int) ([]byte, error) {
				r := flate.NewReader(bytes.NewReader(src))
				defer r.Close()
				return io.ReadAll(r)
			},
		},
		{
			name: "xz",
			encode: func(dst io.Writer, src []byte) error {
				w, err := xz.NewWriter(dst)
				if err != nil {
					return err
				}
				if _, err := w.Write(src); err != nil {
					w.Close()
					return err
				}
				return w.Close()
			},
			decode: func(src []byte, size int) ([]byte, error) {
				r, err := xz.NewReader(bytes.NewReader(src))
				if err != nil {
					return nil, err
				}
				return io.ReadAll(r)
			},
		},
	}
}

// run times trials rounds of c's encode and decode over data, returning
// the compression ratio (compressed/original) and the average MB/s for
// each direction.
func run(c codec, data []byte, trials int) (ratio, encRate, decRate float64, err error) {
	var compressed []byte
	var encElapsed, decElapsed time.Duration

	for i := 0; i < trials; i++ {
		var buf bytes.Buffer
		start := time.Now()
		if err := c.encode(&buf, data); err != nil {
			return 0, 0, 0, err
		}
		encElapsed += time.Since(start)
		compressed = buf.Bytes()

		start = time.Now()
		out, err := c.decode(compressed, len(data))
		if err != nil {
			return 0, 0, 0, err
		}
		decElapsed += time.Since(start)
		if !bytes.Equal(out, data) {
			return 0, 0, 0, fmt.Errorf("round trip mismatch")
		}
	}

	ratio = float64(len(compressed)) / float64(len(data))
	mb := float64(len(data)) / (1024 * 1024)
	encRate = mb / (encElapsed.Seconds() / float64(trials))
	decRate = mb / (decElapsed.Seconds() / float64(trials))
	return ratio, encRate, decRate, nil
}
