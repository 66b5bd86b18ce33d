// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/internal/divarcerr"
)

// MemFS is an in-memory filesystem used by archive and manifest tests in
// place of a real one. It implements both collab.DirectoryWalker and
// collab.PathAPI, using "/"-separated paths throughout (as if every path
// were already the forward-slash form spec.md §1 requires on disk).
type MemFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemFS returns an empty filesystem.
func NewMemFS() *MemFS {
	return &MemFS{files: map[string][]byte{}, dirs: map[string]bool{}}
}

// AddFile records a regular file at p with the given content, creating
// any implied parent directories.
func (fs *MemFS) AddFile(p string, content []byte) {
	fs.files[p] = content
	fs.addParents(p)
}

// AddDir records an explicit (possibly empty) directory at p.
func (fs *MemFS) AddDir(p string) {
	fs.dirs[p] = true
	fs.addParents(p)
}

func (fs *MemFS) addParents(p string) {
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if fs.dirs[dir] {
			break
		}
		fs.dirs[dir] = true
	}
}

// Walk implements collab.DirectoryWalker: every recorded path equal to
// root or nested under it, root-first, in lexical order (which, for
// "/"-joined paths, always places a directory before its descendants).
func (fs *MemFS) Walk(root string) ([]collab.WalkEntry, error) {
	var paths []string
	for p := range fs.dirs {
		if p == root || strings.HasPrefix(p, root+"/") {
			paths = append(paths, p)
		}
	}
	for p := range fs.files {
		if p == root || strings.HasPrefix(p, root+"/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	entries := make([]collab.WalkEntry, 0, len(paths))
	for _, p := range paths {
		if fs.dirs[p] {
			entries = append(entries, collab.WalkEntry{AbsPath: p, Kind: collab.Dir})
			continue
		}
		entries = append(entries, collab.WalkEntry{AbsPath: p, Kind: collab.File, Size: int64(len(fs.files[p]))})
	}
	return entries, nil
}

func (fs *MemFS) Join(elem ...string) string { return path.Join(elem...) }
func (fs *MemFS) Parent(p string) string     { return path.Dir(p) }

func (fs *MemFS) StripPrefix(p, prefix string) (string, error) {
	if prefix == "." || prefix == "" {
		return strings.TrimPrefix(p, "/"), nil
	}
	if p == prefix {
		return "", divarcerr.New(divarcerr.IoOther, "path equals its own prefix")
	}
	trimmed := strings.TrimPrefix(p, prefix+"/")
	if trimmed == p {
		return "", divarcerr.New(divarcerr.IoOther, "prefix "+prefix+" is not a prefix of "+p)
	}
	return trimmed, nil
}

func (fs *MemFS) Exists(p string) bool {
	if _, ok := fs.files[p]; ok {
		return true
	}
	return fs.dirs[p]
}

func (fs *MemFS) CreateDir(p string) error {
	fs.dirs[p] = true
	return nil
}

func (fs *MemFS) CreateDirAll(p string) error {
	for dir := p; dir != "." && dir != "/" && dir != ""; dir = path.Dir(dir) {
		fs.dirs[dir] = true
	}
	return nil
}

func (fs *MemFS) FileSize(p string) (int64, error) {
	content, ok := fs.files[p]
	if !ok {
		return 0, divarcerr.New(divarcerr.IoOther, "file not found: "+p)
	}
	return int64(len(content)), nil
}

func (fs *MemFS) Open(p string) (io.ReadCloser, error) {
	content, ok := fs.files[p]
	if !ok {
		return nil, divarcerr.New(divarcerr.IoOpen, "file not found: "+p)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (fs *MemFS) Create(p string) (io.WriteCloser, error) {
	return &memFileWriter{fs: fs, path: p}, nil
}

type memFileWriter struct {
	fs   *MemFS
	path string
	buf  bytes.Buffer
}

func (w *memFileWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *memFileWriter) Close() error {
	w.fs.AddFile(w.path, w.buf.Bytes())
	return nil
}
