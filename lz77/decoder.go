// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import (
	"encoding/binary"
	"io"

	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/internal/divarcerr"
)

// Decoder decodes an LZ77 stream (the part after the magic) produced by
// Writer. Unlike huffman.Decoder, which pulls bytes lazily on demand,
// Decoder eagerly replays every (offset, length, literal) triple up front
// into an OutOfCoreBuffer, because a back-reference can point anywhere in
// everything decoded so far and the simplest correct way to support that
// is to have it all already materialized. The three-mode surface
// (DecodeToMemory/DecodeToFile/Skip) then just slices that buffer forward
// from an internal cursor, which is what lets all three advance it by the
// same amount for the same byte count.
type Decoder struct {
	buf     *OutOfCoreBuffer
	cursor  int64
	isEmpty bool
}

// NewDecoder replays r's triples into an out-of-core buffer backed by
// factory, spilling to a scratch file once the decoded stream exceeds
// ramWindow bytes (0 selects DefaultRAMWindow). empty indicates the
// archive declared zero total bytes for this stream.
func NewDecoder(r io.Reader, factory collab.TempFileFactory, ramWindow int, empty bool) (*Decoder, error) {
	if empty {
		return &Decoder{isEmpty: true}, nil
	}
	buf := NewOutOfCoreBuffer(factory, ramWindow)
	if err := replay(r, buf); err != nil {
		buf.Close()
		return nil, err
	}
	return &Decoder{buf: buf}, nil
}

func replay(r io.Reader, buf *OutOfCoreBuffer) error {
	var hdr [4]byte
	for {
		ok, err := readFullOrEOF(r, hdr[0:2])
		if err != nil {
			return err
		}
		if !ok {
			return nil // clean end of stream between triples
		}
		if _, err := io.ReadFull(r, hdr[2:4]); err != nil {
			return divarcerr.Wrap(divarcerr.Truncated, "lz77 stream ended mid-triple", err)
		}
		offset := int(binary.BigEndian.Uint16(hdr[0:2]))
		length := int(binary.BigEndian.Uint16(hdr[2:4]))
		if length > 0 {
			if offset == 0 || offset > LongSize {
				return errBadFormat("lz77 back-reference offset out of range")
			}
			if int64(offset) > buf.Len() {
				return errBadFormat("lz77 back-reference points before start of stream")
			}
			if err := buf.CopyBack(offset, length); err != nil {
				return err
			}
		}

		var lit [1]byte
		ok, err = readFullOrEOF(r, lit[:])
		if err != nil {
			return err
		}
		if !ok {
			return nil // no trailing literal: per spec.md §4.5, end of stream
		}
		if err := buf.AppendByte(lit[0]); err != nil {
			return err
		}
	}
}

// readFullOrEOF reads exactly len(p) bytes. ok is true and err nil on a
// full read; ok is false and err nil only when the reader was already
// exhausted (zero bytes available); any partial read is reported as a
// Truncated error.
func readFullOrEOF(r io.Reader, p []byte) (bool, error) {
	n, err := io.ReadFull(r, p)
	switch err {
	case nil:
		return true, nil
	case io.EOF:
		if n == 0 {
			return false, nil
		}
		return false, divarcerr.Wrap(divarcerr.Truncated, "lz77 stream ended mid-field", err)
	case io.ErrUnexpectedEOF:
		return false, divarcerr.Wrap(divarcerr.Truncated, "lz77 stream ended mid-field", err)
	default:
		return false, divarcerr.Wrap(divarcerr.IoOther, "reading lz77 stream", err)
	}
}

// checkRange reports whether n further bytes are available from the
// cursor without advancing it.
func (d *Decoder) checkRange(n int) error {
	if d.isEmpty {
		return divarcerr.New(divarcerr.Truncated, "decoding from an empty lz77 stream")
	}
	if d.cursor+int64(n) > d.buf.Len() {
		return divarcerr.New(divarcerr.Truncated, "requested more bytes than the lz77 stream decoded")
	}
	return nil
}

func (d *Decoder) take(n int) ([]byte, error) {
	if err := d.checkRange(n); err != nil {
		return nil, err
	}
	out, err := d.buf.ReadSlice(d.cursor, int64(n))
	if err != nil {
		return nil, err
	}
	d.cursor += int64(n)
	return out, nil
}

// DecodeToMemory decodes exactly n bytes and returns them.
func (d *Decoder) DecodeToMemory(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	return d.take(n)
}

// DecodeToFile decodes exactly n bytes, streaming them to w through the
// out-of-core buffer's chunked WriteRangeTo rather than materializing the
// whole range as a single in-memory slice — the path that matters for a
// decoded file larger than the buffer's RAM window.
func (d *Decoder) DecodeToFile(w io.Writer, n int) error {
	if n == 0 {
		return nil
	}
	if err := d.checkRange(n); err != nil {
		return err
	}
	if err := d.buf.WriteRangeTo(w, d.cursor, int64(n)); err != nil {
		return err
	}
	d.cursor += int64(n)
	return nil
}

// Skip decodes and discards exactly n bytes, advancing the cursor the
// same amount DecodeToMemory/DecodeToFile would (spec.md §4.10).
func (d *Decoder) Skip(n int) error {
	if n == 0 {
		return nil
	}
	_, err := d.take(n)
	return err
}

// Close releases the decoder's out-of-core scratch file, if any.
func (d *Decoder) Close() error {
	if d.isEmpty || d.buf == nil {
		return nil
	}
	return d.buf.Close()
}
