// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package osfs

import (
	"io"
	"os"

	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/internal/divarcerr"
)

// TempFileFactory implements collab.TempFileFactory with os.CreateTemp,
// the same "create, defer remove" idiom the example pack's targz tool
// uses for its own gzip-staging scratch file.
type TempFileFactory struct {
	// Dir is passed to os.CreateTemp's dir argument; empty selects the
	// default temporary-file directory.
	Dir string
}

func (f TempFileFactory) Create(suffix string) (collab.TempFile, error) {
	file, err := os.CreateTemp(f.Dir, "divarc-*"+suffix)
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.IoCreate, "creating scratch file", err)
	}
	return &tempFile{file: file, path: file.Name()}, nil
}

type tempFile struct {
	file *os.File
	path string
}

func (t *tempFile) Write(p []byte) (int, error) { return t.file.Write(p) }

func (t *tempFile) Close() error { return t.file.Close() }

func (t *tempFile) Reopen() (io.ReadCloser, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.IoOpen, "reopening scratch file", err)
	}
	return f, nil
}

func (t *tempFile) ReadAt(p []byte, off int64) (int, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return 0, divarcerr.Wrap(divarcerr.IoOpen, "reopening scratch file for random read", err)
	}
	defer f.Close()
	return f.ReadAt(p, off)
}

func (t *tempFile) Remove() error {
	err := os.Remove(t.path)
	if err != nil && !os.IsNotExist(err) {
		return divarcerr.Wrap(divarcerr.IoOther, "removing scratch file", err)
	}
	return nil
}
