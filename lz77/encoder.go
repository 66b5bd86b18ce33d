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

// Writer is an LZ77 compressor. Finding the longest match needs lookahead
// that can run ahead of whatever has been handed to Write so far, so
// (like huffman.Writer) Write spools its input into a scratch file and
// Close drives the sliding window over a fresh read of the staged bytes,
// exactly mirroring the original reference's single encode pass over an
// opened input file.
type Writer struct {
	sink io.Writer
	tmp  collab.TempFile
	err  error
}

// NewWriter allocates a scratch file through factory and returns a Writer
// streaming its eventual LZ77-compressed output to sink. sink should
// already have the magic written by the caller.
func NewWriter(sink io.Writer, factory collab.TempFileFactory) (*Writer, error) {
	tmp, err := factory.Create(".divarc-lz77")
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.IoCreate, "creating lz77 staging file", err)
	}
	return &Writer{sink: sink, tmp: tmp}, nil
}

// Write spools p into the scratch file.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.tmp.Write(p)
	if err != nil {
		w.err = divarcerr.Wrap(divarcerr.IoOther, "spooling to lz77 staging file", err)
		return n, w.err
	}
	return n, nil
}

// Close runs the encode pass and removes the scratch file on every exit
// path.
func (w *Writer) Close() error {
	if w.err != nil {
		w.tmp.Remove()
		return w.err
	}
	if err := w.tmp.Close(); err != nil {
		w.tmp.Remove()
		return divarcerr.Wrap(divarcerr.IoOther, "closing lz77 staging file", err)
	}
	defer w.tmp.Remove()

	r, err := w.tmp.Reopen()
	if err != nil {
		return divarcerr.Wrap(divarcerr.IoOpen, "reopening lz77 staging file", err)
	}
	defer r.Close()

	win, err := newWindow(r)
	if err != nil {
		return divarcerr.Wrap(divarcerr.IoOther, "reading lz77 staging file", err)
	}

	var hdr [4]byte
	for !win.empty() {
		m := win.findLongestPrefix()
		binary.BigEndian.PutUint16(hdr[0:2], uint16(m.offset))
		binary.BigEndian.PutUint16(hdr[2:4], uint16(m.length))
		if _, err := w.sink.Write(hdr[:]); err != nil {
			return divarcerr.Wrap(divarcerr.IoOther, "writing lz77 triple", err)
		}
		if err := win.advance(m.length + 1); err != nil {
			return divarcerr.Wrap(divarcerr.IoOther, "reading lz77 staging file", err)
		}
		if m.hasLit {
			if _, err := w.sink.Write([]byte{m.literal}); err != nil {
				return divarcerr.Wrap(divarcerr.IoOther, "writing lz77 literal", err)
			}
		}
	}
	return nil
}
