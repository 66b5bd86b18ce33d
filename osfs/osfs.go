// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package osfs implements the collab interfaces against the real
// filesystem: os.CreateTemp-backed scratch files (grounded on the
// os.CreateTemp/defer os.Remove pattern the example pack's targz tool
// uses for its own gzip-staging temp file), filepath.WalkDir-based
// directory walking, and path/filepath-backed path manipulation. cmd/divarc
// wires these into archive.Packer and archive.Extractor; tests use the
// in-memory fakes in internal/testutil instead.
package osfs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-compress/divarc/internal/divarcerr"
)

// Path implements collab.PathAPI over path/filepath and os.
type Path struct{}

func (Path) Join(elem ...string) string { return filepath.Join(elem...) }
func (Path) Parent(path string) string  { return filepath.Dir(path) }

func (Path) StripPrefix(path, prefix string) (string, error) {
	rel, err := filepath.Rel(prefix, path)
	if err != nil {
		return "", divarcerr.Wrap(divarcerr.IoOther, "computing relative path", err)
	}
	return filepath.ToSlash(rel), nil
}

func (Path) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (Path) CreateDir(path string) error {
	if err := os.Mkdir(path, 0o755); err != nil && !os.IsExist(err) {
		return divarcerr.Wrap(divarcerr.IoOther, "creating directory "+path, err)
	}
	return nil
}

func (Path) CreateDirAll(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return divarcerr.Wrap(divarcerr.IoOther, "creating directory tree "+path, err)
	}
	return nil
}

func (Path) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, divarcerr.Wrap(divarcerr.IoOther, "stat "+path, err)
	}
	return info.Size(), nil
}

func (Path) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.IoOpen, "opening "+path, err)
	}
	return f, nil
}

func (Path) Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.IoCreate, "creating "+path, err)
	}
	return f, nil
}
