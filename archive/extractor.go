// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package archive

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/internal/divarcerr"
	"github.com/go-compress/divarc/manifest"
)

// Extractor reads a single archive written by Packer: it parses the
// header up front (spec.md §4.10) and can list or selectively extract the
// entries that follow.
type Extractor struct {
	Paths   collab.PathAPI
	Factory collab.TempFileFactory

	method    Method
	dec       decoder
	manifests []manifest.Manifest
}

// Open reads the magic and container header from r and returns an
// Extractor ready to list or extract. r's remaining bytes, after the
// header, are the concatenated file payloads in manifest order.
func Open(r io.Reader, paths collab.PathAPI, factory collab.TempFileFactory) (*Extractor, error) {
	var lead [3]byte
	if _, err := io.ReadFull(r, lead[:]); err != nil {
		return nil, divarcerr.Wrap(divarcerr.BadFormat, "reading archive magic", err)
	}
	method, err := detectMethod(lead[:])
	if err != nil {
		return nil, err
	}

	dec, err := newDecoder(method, r, factory, false)
	if err != nil {
		return nil, err
	}

	lenBytes, err := dec.DecodeToMemory(8)
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.BadFormat, "decoding header length", err)
	}
	headerLen := binary.BigEndian.Uint64(lenBytes)

	headerBytes, err := dec.DecodeToMemory(int(headerLen))
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.Truncated, "decoding container header", err)
	}
	manifests, err := manifest.ParseManifestBody(headerBytes)
	if err != nil {
		return nil, err
	}

	return &Extractor{Paths: paths, Factory: factory, method: method, dec: dec, manifests: manifests}, nil
}

// Close releases any resources the underlying decoder holds (the LZ77
// decoder's out-of-core scratch file).
func (x *Extractor) Close() error { return x.dec.Close() }

// List returns the ordered (relative_path, size_or_directory) sequence
// across every manifest, flattened in manifest and walk order.
func (x *Extractor) List() []manifest.Entry {
	var entries []manifest.Entry
	for _, m := range x.manifests {
		entries = append(entries, m.Entries...)
	}
	return entries
}

// ExtractSelected iterates the archive entry list in order, extracting
// only entries selected by wantedPaths (a prefix check in path-component
// units; an empty wantedPaths selects everything) into outputDir. The
// decompressor's cursor advances by exactly each file's size regardless
// of selection or of a pre-existing target (spec.md §4.10's critical
// invariant) — skipping is decode-and-discard, never a seek.
func (x *Extractor) ExtractSelected(wantedPaths []string, outputDir string) error {
	for _, m := range x.manifests {
		for _, e := range m.Entries {
			target := x.Paths.Join(outputDir, e.Path)
			selected := isSelected(e.Path, wantedPaths)

			if e.IsDir() {
				if selected {
					if err := x.Paths.CreateDirAll(target); err != nil {
						return divarcerr.Wrap(divarcerr.IoOther, "creating directory "+target, err)
					}
				}
				continue
			}

			size := int(*e.Size)
			if !selected {
				if err := x.dec.Skip(size); err != nil {
					return err
				}
				continue
			}
			if x.Paths.Exists(target) {
				// Existing files are skipped silently, but the payload must
				// still be consumed to preserve the cursor invariant
				// (spec.md §7, §9 open question 1).
				if err := x.dec.Skip(size); err != nil {
					return err
				}
				continue
			}

			if err := x.Paths.CreateDirAll(x.Paths.Parent(target)); err != nil {
				return divarcerr.Wrap(divarcerr.IoOther, "creating parent directory for "+target, err)
			}
			w, err := x.Paths.Create(target)
			if err != nil {
				return divarcerr.Wrap(divarcerr.IoCreate, "creating "+target, err)
			}
			err = x.dec.DecodeToFile(w, size)
			closeErr := w.Close()
			if err != nil {
				return err
			}
			if closeErr != nil {
				return divarcerr.Wrap(divarcerr.IoOther, "closing "+target, closeErr)
			}
		}
	}
	return nil
}

// isSelected reports whether path lies under any element of wanted, by
// path-component prefix. An empty wanted means "select everything".
func isSelected(path string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if path == w || strings.HasPrefix(path, w+"/") {
			return true
		}
	}
	return false
}
