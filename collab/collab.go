// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package collab defines the collaborator interfaces the core depends on
// but does not implement: directory walking, temporary-file allocation,
// and path manipulation. Per spec.md §1/§6 these are external concerns —
// the core is implementable and testable without any concrete
// implementation of them (tests supply fakes; package osfs supplies the
// real, filesystem-backed implementations used by cmd/divarc).
package collab

import "io"

// EntryKind distinguishes a regular file from a directory while walking.
type EntryKind uint8

const (
	File EntryKind = iota
	Dir
)

// WalkEntry is one entry produced by a DirectoryWalker: an absolute path,
// its kind, and (for files) its size.
type WalkEntry struct {
	AbsPath string
	Kind    EntryKind
	Size    int64 // valid only when Kind == File
}

// DirectoryWalker performs a deterministic, root-first traversal of a
// filesystem root, yielding every entry including the root itself.
type DirectoryWalker interface {
	Walk(root string) ([]WalkEntry, error)
}

// TempFile is a writable handle paired with its path, returned by
// TempFileFactory. Callers read back what they wrote through Reopen, or at
// a specific offset through ReadAt.
type TempFile interface {
	io.Writer
	// Close closes the write handle without removing the underlying file.
	Close() error
	// Reopen returns a fresh read handle positioned at the start of the
	// file, for the second pass a two-pass codec (Huffman) needs.
	Reopen() (io.ReadCloser, error)
	// ReadAt reads len(p) bytes starting at absolute offset off, independent
	// of Reopen's cursor and of the current write position. lz77's
	// OutOfCoreBuffer uses this for random-access slice reads into its
	// spilled tail.
	io.ReaderAt
	// Remove deletes the underlying file. Safe to call more than once.
	Remove() error
}

// TempFileFactory allocates scratch files for the packer's staging pass
// (spec.md §6, §9 design note 5) and for the LZ77 decoder's out-of-core
// spill buffer (spec.md §4.6).
type TempFileFactory interface {
	Create(suffix string) (TempFile, error)
}

// PathAPI is the path and file-content surface the core needs, beyond
// walking and scratch-file staging: join, parent, strip a parent prefix,
// check existence, create directories, read a file's size, and open a
// regular file for streaming its payload bytes into a compressor. Open is
// not separately named in spec.md §6's collaborator list, but reading the
// actual bytes of a walked regular file is exactly the kind of operating
// system dependency that list exists to keep out of the core, so it lives
// here alongside the rest of the filesystem surface. Implemented by
// osfs.Path for real use, and by fakes in tests.
type PathAPI interface {
	Join(elem ...string) string
	Parent(path string) string
	StripPrefix(path, prefix string) (string, error)
	Exists(path string) bool
	CreateDir(path string) error
	CreateDirAll(path string) error
	FileSize(path string) (int64, error)
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
}
