// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package archive implements the container format and streaming pipeline
// (spec.md §1.1): Packer walks input roots and writes a compressed,
// self-describing archive; Extractor reads one back, lists its entries,
// and extracts some or all of them to disk. Both dispatch over a small
// closed set of codecs via Method, a tagged variant rather than an
// interface-based plugin system — matching the closed-world nature of the
// format's magic bytes (spec.md §9 design note "Polymorphic codec
// choice").
package archive

import (
	"io"

	"github.com/go-compress/divarc/bitio"
	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/huffman"
	"github.com/go-compress/divarc/internal/divarcerr"
	"github.com/go-compress/divarc/lz77"
)

// Method identifies which codec compresses an archive's payload.
type Method uint8

const (
	Huffman Method = iota
	LZ77
)

func (m Method) magicValue() uint64 {
	switch m {
	case Huffman:
		return huffman.Magic
	case LZ77:
		return lz77.Magic
	default:
		panic("archive: unknown method")
	}
}

func (m Method) magicBytes() []byte {
	return bitio.NewBitVectorFromUint64(m.magicValue()).Bytes()
}

// detectMethod matches the archive's leading bytes against the set of
// known magics (spec.md §4.10 step 1), returning BadFormat on no match.
func detectMethod(lead []byte) (Method, error) {
	for _, m := range []Method{Huffman, LZ77} {
		magic := m.magicBytes()
		if len(lead) == len(magic) && equalBytes(lead, magic) {
			return m, nil
		}
	}
	return 0, divarcerr.New(divarcerr.BadFormat, "archive magic matches no known codec")
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// encoder is the shape both huffman.Writer and lz77.Writer already share.
type encoder interface {
	io.Writer
	Close() error
}

func newEncoder(m Method, sink io.Writer, factory collab.TempFileFactory) (encoder, error) {
	switch m {
	case Huffman:
		return huffman.NewWriter(sink, factory)
	case LZ77:
		return lz77.NewWriter(sink, factory)
	default:
		return nil, divarcerr.New(divarcerr.BadFormat, "packing with an unknown codec")
	}
}

// decoder is the three-mode surface spec.md §4.4/§4.6 both codecs expose.
type decoder interface {
	DecodeToMemory(n int) ([]byte, error)
	DecodeToFile(w io.Writer, n int) error
	Skip(n int) error
	Close() error
}

func newDecoder(m Method, r io.Reader, factory collab.TempFileFactory, empty bool) (decoder, error) {
	switch m {
	case Huffman:
		return huffman.NewDecoder(r, empty)
	case LZ77:
		return lz77.NewDecoder(r, factory, 0, empty)
	default:
		return nil, divarcerr.New(divarcerr.BadFormat, "extracting with an unknown codec")
	}
}
