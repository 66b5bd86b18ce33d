// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lz77 implements the sliding-window LZ77 codec: a history
// ("long") buffer of LongSize bytes behind a lookahead ("short") buffer of
// ShortSize bytes, emitting (offset, length, next-literal) triples. Unlike
// the teacher's flate package, which leans on RFC 1951's fixed/dynamic
// prefix codes layered over its own LZ77 stage, this codec emits raw
// fixed-width triples with no entropy coding of its own — it is meant to
// be paired with huffman as a second, independent container method, not
// composed with it.
//
// spec.md §4.5 fixes LongSize at 2^16, which is double the original Rust
// reference's 2^15; the encoder and decoder here use the spec's value.
package lz77

import "github.com/go-compress/divarc/internal/divarcerr"

const (
	Magic    uint64 = 0xAEFE77
	MagicLen        = 3

	// LongSize is the sliding history window, in bytes.
	LongSize = 1 << 16
	// ShortSize is the lookahead buffer, in bytes. A match can cover at
	// most ShortSize-1 bytes (a proper prefix of the lookahead).
	ShortSize = 258
)

func errBadFormat(msg string) error {
	return divarcerr.New(divarcerr.BadFormat, msg)
}
