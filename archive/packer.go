// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package archive

import (
	"io"

	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/internal/divarcerr"
	"github.com/go-compress/divarc/manifest"
)

// Packer walks a set of input roots and writes a single self-describing,
// compressed archive (spec.md §4.9). It depends only on the collaborator
// interfaces (DirectoryWalker, TempFileFactory, PathAPI) — never on os
// directly — so it is testable with in-memory fakes.
type Packer struct {
	Walker  collab.DirectoryWalker
	Factory collab.TempFileFactory
	Paths   collab.PathAPI
	Method  Method
}

// Pack builds one manifest per root (preserving root order), writes the
// method's magic, then streams the container header and every regular
// file's bytes through a single compressor instance onto sink, in
// manifest order, in one forward pass. The packer never seeks sink.
func (p *Packer) Pack(roots []string, sink io.Writer) error {
	manifests := make([]manifest.Manifest, len(roots))
	walked := make([][]collab.WalkEntry, len(roots))
	for i, root := range roots {
		entries, err := p.Walker.Walk(root)
		if err != nil {
			return divarcerr.Wrap(divarcerr.IoOther, "walking root "+root, err)
		}
		m, err := manifest.FromWalkEntries(root, entries, p.Paths)
		if err != nil {
			return err
		}
		manifests[i] = m
		walked[i] = entries
	}

	if _, err := sink.Write(p.Method.magicBytes()); err != nil {
		return divarcerr.Wrap(divarcerr.IoOther, "writing archive magic", err)
	}

	enc, err := newEncoder(p.Method, sink, p.Factory)
	if err != nil {
		return err
	}

	hdr := manifest.Header{Manifests: manifests}
	hdrBytes, err := hdr.Encode()
	if err != nil {
		enc.Close()
		return err
	}
	if _, err := enc.Write(hdrBytes); err != nil {
		enc.Close()
		return divarcerr.Wrap(divarcerr.IoOther, "writing container header", err)
	}

	for _, entries := range walked {
		for _, e := range entries {
			if e.Kind != collab.File {
				continue
			}
			if err := p.streamFile(enc, e.AbsPath); err != nil {
				enc.Close()
				return err
			}
		}
	}

	if err := enc.Close(); err != nil {
		return divarcerr.Wrap(divarcerr.IoOther, "closing compressor", err)
	}
	return nil
}

func (p *Packer) streamFile(enc encoder, path string) error {
	r, err := p.Paths.Open(path)
	if err != nil {
		return divarcerr.Wrap(divarcerr.IoOpen, "opening "+path, err)
	}
	defer r.Close()
	if _, err := io.Copy(enc, r); err != nil {
		return divarcerr.Wrap(divarcerr.IoOther, "streaming "+path, err)
	}
	return nil
}
