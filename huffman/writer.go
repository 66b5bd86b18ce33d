// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"io"

	"github.com/go-compress/divarc/bitio"
	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/internal/divarcerr"
)

// Writer is a two-pass Huffman compressor. Because the codec needs the
// whole-stream byte frequencies before it can emit a single bit, Write
// spools its input into a scratch file via a collab.TempFileFactory
// (spec.md §6, §9 design note 5) and Close performs both passes: one to
// count frequencies and build the tree, one to re-read the staged bytes
// and emit their codewords. This mirrors the teacher project's own
// two-file-open dance (original_source's HuffmanCompressor opens
// input_filename twice) instead of buffering arbitrarily large inputs in
// RAM.
type Writer struct {
	sink io.Writer
	tmp  collab.TempFile
	err  error
}

// NewWriter allocates a scratch file through factory and returns a Writer
// that streams its eventual Huffman-compressed output to sink. sink
// should already have the magic written by the caller (archive.Packer),
// matching spec.md §4.9 step 2 ("Writes the compressor's magic to the
// output" precedes "Opens a compressor over the output sink").
func NewWriter(sink io.Writer, factory collab.TempFileFactory) (*Writer, error) {
	tmp, err := factory.Create(".divarc-huffman")
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.IoCreate, "creating huffman staging file", err)
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
		w.err = divarcerr.Wrap(divarcerr.IoOther, "spooling to huffman staging file", err)
		return n, w.err
	}
	return n, nil
}

// Close performs both passes and removes the scratch file on every exit
// path, including error paths.
func (w *Writer) Close() error {
	if w.err != nil {
		w.tmp.Remove()
		return w.err
	}
	if err := w.tmp.Close(); err != nil {
		w.tmp.Remove()
		return divarcerr.Wrap(divarcerr.IoOther, "closing huffman staging file", err)
	}
	defer w.tmp.Remove()

	freqR, err := w.tmp.Reopen()
	if err != nil {
		return divarcerr.Wrap(divarcerr.IoOpen, "reopening huffman staging file for frequency pass", err)
	}
	freq := make(map[byte]int)
	buf := make([]byte, 32*1024)
	for {
		n, rerr := freqR.Read(buf)
		for _, b := range buf[:n] {
			freq[b]++
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			freqR.Close()
			return divarcerr.Wrap(divarcerr.IoOther, "reading huffman staging file", rerr)
		}
	}
	freqR.Close()

	tree := BuildTree(freq)
	if tree.Empty() {
		return nil // empty input: no magic, no header, no body (spec.md §4.4)
	}

	bw := bitio.NewBitWriter(w.sink)
	if err := bw.WriteBitVector(tree.EncodeTree()); err != nil {
		return divarcerr.Wrap(divarcerr.IoOther, "writing huffman tree encoding", err)
	}

	book := tree.Codebook()
	encR, err := w.tmp.Reopen()
	if err != nil {
		return divarcerr.Wrap(divarcerr.IoOpen, "reopening huffman staging file for encode pass", err)
	}
	defer encR.Close()
	for {
		n, rerr := encR.Read(buf)
		for _, b := range buf[:n] {
			if err := bw.WriteBitVector(book[b]); err != nil {
				return divarcerr.Wrap(divarcerr.IoOther, "writing huffman codeword", err)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return divarcerr.Wrap(divarcerr.IoOther, "reading huffman staging file", rerr)
		}
	}

	return bw.Close()
}
