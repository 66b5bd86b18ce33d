// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package huffman implements the whole-stream adaptive Huffman codec
// (spec.md §4.4): a frequency table is built from a single pass over the
// input, a binary tree is constructed from it with a deterministic
// tie-break, the tree is serialized pre-order into the output bit stream,
// and every input byte is then emitted as its tree-derived codeword.
//
// The on-disk layout is: <24-bit magic> <tree encoding> <codewords, one
// per input byte, in input order>. There is no length field; the caller
// (archive.Extractor) supplies the byte count to decode.
package huffman

import "github.com/go-compress/divarc/internal/divarcerr"

// Magic is the 24-bit format signature written before every Huffman
// stream, big-endian with leading zero bytes stripped (spec.md §4.4).
const Magic uint64 = 0xAEFE48

// MagicLen is the number of bytes Magic occupies on the wire.
const MagicLen = 3

// maxTreeNodes caps the recursion of tree deserialization at 512 (256
// possible leaves plus internal nodes), per spec.md §9 open question 4:
// an endless stream of '0' bits must be rejected as BadFormat rather than
// recursing forever.
const maxTreeNodes = 512

func errBadFormat(msg string) error {
	return divarcerr.New(divarcerr.BadFormat, msg)
}
