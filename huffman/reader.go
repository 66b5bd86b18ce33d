// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"io"

	"github.com/go-compress/divarc/bitio"
	"github.com/go-compress/divarc/internal/divarcerr"
)

// Decoder decodes a Huffman stream (the part after the magic) produced by
// Writer. It exposes the three-mode surface spec.md §4.4 requires:
// decode to memory, decode to a file, and skip (decode-and-discard). All
// three advance the underlying bit position by exactly the same amount
// for the same byte count, which is what lets archive.Extractor skip
// unselected entries without corrupting the cursor for the ones that
// follow.
type Decoder struct {
	br       *bitio.ByteReader
	tree     *Tree
	book     map[string]byte // codeword bits ("0101...") -> byte
	isEmpty  bool            // true stream never written at all (empty input)
}

// NewDecoder reads the tree encoding from r (the Huffman magic must
// already have been consumed by the caller, e.g. archive.Extractor) and
// returns a Decoder ready to decode symbols. empty indicates the archive
// declared zero total bytes for this stream (no magic, no tree, nothing
// to read); Decoder then decodes nothing and any call requesting more
// than 0 bytes fails with Truncated.
func NewDecoder(r io.Reader, empty bool) (*Decoder, error) {
	if empty {
		return &Decoder{isEmpty: true}, nil
	}
	br := bitio.NewByteReader(r)
	tree, err := DecodeTree(br)
	if err != nil {
		return nil, err
	}
	book := make(map[string]byte, 256)
	for b, cw := range tree.Codebook() {
		book[cw.String()] = b
	}
	return &Decoder{br: br, tree: tree, book: book}, nil
}

// decodeByte reads bits until they match a codeword, returning the
// decoded byte.
func (d *Decoder) decodeByte() (byte, error) {
	candidate := new(bitio.BitVector)
	for {
		bit, ok := d.br.ReadBit()
		if !ok {
			return 0, divarcerr.New(divarcerr.Truncated, "stream ended mid-codeword")
		}
		candidate.PushBit(bit)
		if b, ok := d.book[candidate.String()]; ok {
			return b, nil
		}
		if candidate.Len() > 64 {
			// The prefix property guarantees every valid codeword is found
			// well before this; a runaway candidate means a corrupt tree.
			return 0, errBadFormat("no codeword matched an excessively long bit run")
		}
	}
}

// DecodeToMemory decodes exactly n bytes and returns them.
func (d *Decoder) DecodeToMemory(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if d.isEmpty {
		return nil, divarcerr.New(divarcerr.Truncated, "decoding from an empty Huffman stream")
	}
	out := make([]byte, n)
	for i := range out {
		b, err := d.decodeByte()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// DecodeToFile decodes exactly n bytes, writing them to w.
func (d *Decoder) DecodeToFile(w io.Writer, n int) error {
	if n == 0 {
		return nil
	}
	if d.isEmpty {
		return divarcerr.New(divarcerr.Truncated, "decoding from an empty Huffman stream")
	}
	bw := bitio.NewByteWriter(w)
	for i := 0; i < n; i++ {
		b, err := d.decodeByte()
		if err != nil {
			return err
		}
		if err := bw.WriteByte(b); err != nil {
			return divarcerr.Wrap(divarcerr.IoOther, "writing decoded byte", err)
		}
	}
	return bw.Close()
}

// Close is a no-op: Decoder holds no resources beyond the reader it was
// given. It exists so huffman.Decoder and lz77.Decoder, whose
// OutOfCoreBuffer does own a scratch file, satisfy the same interface in
// package archive.
func (d *Decoder) Close() error { return nil }

// Skip decodes and discards exactly n bytes, advancing the bit cursor by
// the same amount DecodeToMemory/DecodeToFile would. This is required for
// selective extraction (spec.md §4.10): the decoder's cursor must advance
// regardless of whether output is written anywhere.
func (d *Decoder) Skip(n int) error {
	if n == 0 {
		return nil
	}
	if d.isEmpty {
		return divarcerr.New(divarcerr.Truncated, "skipping past an empty Huffman stream")
	}
	for i := 0; i < n; i++ {
		if _, err := d.decodeByte(); err != nil {
			return err
		}
	}
	return nil
}
