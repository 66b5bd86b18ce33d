// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitio implements the bit- and byte-level buffered I/O
// primitives shared by the huffman and lz77 codecs: an append-only
// BitVector, a buffered ByteReader capable of bit- or byte-granularity
// reads, and buffered ByteWriter/BitWriter sinks.
//
// The bit order throughout this package is MSB-first within each byte:
// bit 0 of a sequence occupies bit 7 of byte 0, matching the reference
// archive format's tree- and codeword-encoding. This is deliberately the
// opposite convention from dsnet/compress's flate.bitReader, which is
// LSB-first per RFC 1951 — divarc's wire format is its own, not DEFLATE's.
package bitio

// defaultBufSize is the size of the internal buffer used by ByteReader,
// ByteWriter, and BitWriter, matching the refill granularity dsnet/compress
// uses for its own buffered readers and writers.
const defaultBufSize = 32 * 1024
