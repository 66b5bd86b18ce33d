// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import (
	"io"

	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/internal/divarcerr"
)

// DefaultRAMWindow is the OutOfCoreBuffer window used when the caller
// doesn't need a smaller one for testing: 128MiB, chosen as a size that
// comfortably holds a decoded LZ77 back-reference window (LongSize bytes)
// many times over without forcing every decode of a modest file to spill.
const DefaultRAMWindow = 128 * 1024 * 1024

// OutOfCoreBuffer is an append-only byte log for the LZ77 decoder's fully
// materialized output. While the logical length stays within ramWindow,
// every byte lives in RAM. Once an append would push the RAM tail past
// ramWindow, the whole tail is flushed to a scratch file allocated lazily
// through a collab.TempFileFactory and RAM is cleared, so appends keep
// refilling RAM until the next overflow. Reads (single-byte, for
// back-reference copies, and arbitrary slices, for Decoder's
// memory/file/skip surface) may straddle the RAM/file boundary
// transparently. This lets the decoder materialize arbitrarily large
// streams — the whole point of lz77.Decoder eagerly decoding up front —
// without requiring the whole decoded stream to fit in memory at once.
type OutOfCoreBuffer struct {
	factory   collab.TempFileFactory
	tmp       collab.TempFile
	ramWindow int
	ram       []byte
	fileSize  int64
}

// NewOutOfCoreBuffer returns an empty buffer that spills to factory once
// its RAM tail exceeds ramWindow bytes.
func NewOutOfCoreBuffer(factory collab.TempFileFactory, ramWindow int) *OutOfCoreBuffer {
	if ramWindow <= 0 {
		ramWindow = DefaultRAMWindow
	}
	return &OutOfCoreBuffer{factory: factory, ramWindow: ramWindow}
}

// Len reports the total number of bytes appended so far.
func (b *OutOfCoreBuffer) Len() int64 { return b.fileSize + int64(len(b.ram)) }

// AppendByte appends a single byte, spilling the RAM tail to the scratch
// file if this append pushes it past the configured window.
func (b *OutOfCoreBuffer) AppendByte(c byte) error {
	b.ram = append(b.ram, c)
	if len(b.ram) > b.ramWindow {
		return b.spill()
	}
	return nil
}

func (b *OutOfCoreBuffer) spill() error {
	if b.tmp == nil {
		tmp, err := b.factory.Create(".divarc-lz77-oocb")
		if err != nil {
			return divarcerr.Wrap(divarcerr.IoCreate, "creating out-of-core scratch file", err)
		}
		b.tmp = tmp
	}
	if _, err := b.tmp.Write(b.ram); err != nil {
		return divarcerr.Wrap(divarcerr.IoOther, "spilling out-of-core buffer to scratch file", err)
	}
	b.fileSize += int64(len(b.ram))
	b.ram = b.ram[:0]
	return nil
}

// ByteAt returns the byte at absolute position pos (0-indexed from the
// start of the whole appended stream).
func (b *OutOfCoreBuffer) ByteAt(pos int64) (byte, error) {
	if pos < 0 || pos >= b.Len() {
		return 0, divarcerr.New(divarcerr.IoOther, "out-of-core buffer read out of range")
	}
	if pos < b.fileSize {
		var p [1]byte
		if _, err := b.tmp.ReadAt(p[:], pos); err != nil {
			return 0, divarcerr.Wrap(divarcerr.IoOther, "reading out-of-core scratch file", err)
		}
		return p[0], nil
	}
	return b.ram[pos-b.fileSize], nil
}

// CopyBack appends length bytes read one at a time from offset bytes
// before the buffer's current end, advancing as it goes. This is how LZ77
// back-references are materialized: when offset < length the source range
// overlaps the destination range, so the copy must be byte-by-byte (a
// bulk slice copy would read bytes that haven't been written yet).
func (b *OutOfCoreBuffer) CopyBack(offset, length int) error {
	for i := 0; i < length; i++ {
		src := b.Len() - int64(offset)
		c, err := b.ByteAt(src)
		if err != nil {
			return err
		}
		if err := b.AppendByte(c); err != nil {
			return err
		}
	}
	return nil
}

// ReadSlice returns the length bytes starting at start, transparently
// stitching together the scratch-file portion and the RAM portion when
// the requested range straddles the boundary between them.
func (b *OutOfCoreBuffer) ReadSlice(start, length int64) ([]byte, error) {
	if start < 0 || length < 0 || start+length > b.Len() {
		return nil, divarcerr.New(divarcerr.IoOther, "out-of-core buffer slice out of range")
	}
	out := make([]byte, length)
	if length == 0 {
		return out, nil
	}

	end := start + length
	i := 0
	if start < b.fileSize {
		fileEnd := end
		if fileEnd > b.fileSize {
			fileEnd = b.fileSize
		}
		n := int(fileEnd - start)
		if n > 0 {
			if _, err := b.tmp.ReadAt(out[:n], start); err != nil {
				return nil, divarcerr.Wrap(divarcerr.IoOther, "reading out-of-core scratch file", err)
			}
			i = n
		}
	}
	if int64(i) < length {
		ramStart := start + int64(i) - b.fileSize
		if ramStart < 0 {
			ramStart = 0
		}
		copy(out[i:], b.ram[ramStart:])
	}
	return out, nil
}

// WriteRangeTo writes the length bytes starting at start to w in chunks
// no larger than ramWindow, so that extracting a file much larger than
// the RAM window never materializes it as a single in-memory slice — the
// reason OutOfCoreBuffer spills to disk in the first place.
func (b *OutOfCoreBuffer) WriteRangeTo(w io.Writer, start, length int64) error {
	if start < 0 || length < 0 || start+length > b.Len() {
		return divarcerr.New(divarcerr.IoOther, "out-of-core buffer range out of range")
	}
	chunk := int64(b.ramWindow)
	if chunk <= 0 {
		chunk = DefaultRAMWindow
	}
	for length > 0 {
		n := chunk
		if n > length {
			n = length
		}
		buf, err := b.ReadSlice(start, n)
		if err != nil {
			return err
		}
		if _, err := w.Write(buf); err != nil {
			return divarcerr.Wrap(divarcerr.IoOther, "writing out-of-core range", err)
		}
		start += n
		length -= n
	}
	return nil
}

// Close removes the scratch file, if one was ever created. Safe to call
// even if nothing spilled.
func (b *OutOfCoreBuffer) Close() error {
	if b.tmp == nil {
		return nil
	}
	return b.tmp.Remove()
}
