// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"io"

	"github.com/go-compress/divarc/collab"
)

// MemTempFileFactory is an in-memory collab.TempFileFactory for tests that
// don't want to touch the real filesystem, used by the huffman, lz77, and
// archive packages' round-trip tests in place of osfs.TempFileFactory.
type MemTempFileFactory struct{}

func (MemTempFileFactory) Create(suffix string) (collab.TempFile, error) {
	return &memTempFile{}, nil
}

type memTempFile struct {
	buf bytes.Buffer
}

func (f *memTempFile) Write(p []byte) (int, error) { return f.buf.Write(p) }
func (f *memTempFile) Close() error                { return nil }
func (f *memTempFile) Remove() error               { return nil }

func (f *memTempFile) Reopen() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.buf.Bytes())), nil
}

func (f *memTempFile) ReadAt(p []byte, off int64) (int, error) {
	return bytes.NewReader(f.buf.Bytes()).ReadAt(p, off)
}
