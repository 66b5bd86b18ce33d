// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package manifest implements the per-root entry list (DirectoryManifest,
// spec.md §4.7) and the archive header that concatenates them
// (ContainerHeader, spec.md §4.8). Entries are serialised as JSON, the
// textual encoding spec.md §6 recommends and the original Rust reference
// used via serde_json — there is no codegen-free structured serialisation
// in the example pack's domain deps that would improve on encoding/json
// for a format this small, so, like the rest of the core, this package
// uses only the standard library (see DESIGN.md).
package manifest

import (
	"encoding/binary"
	"encoding/json"

	"github.com/go-compress/divarc/internal/divarcerr"
)

// Entry is one FilesystemEntryInfo: a relative, forward-slash path and
// either a byte size (regular file) or nil (directory).
type Entry struct {
	Path string `json:"path"`
	Size *int64 `json:"size"`
}

// IsDir reports whether e describes a directory.
func (e Entry) IsDir() bool { return e.Size == nil }

// Manifest is the ordered entry list produced by walking one root. Order
// is the walk order, and is an invariant: it is also the order file
// payloads appear in the compressed stream (spec.md §3).
type Manifest struct {
	Entries []Entry `json:"entries"`
}

// Marshal serialises m to its self-describing blob form.
func (m Manifest) Marshal() ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.IoOther, "marshalling manifest", err)
	}
	return b, nil
}

// UnmarshalManifest parses a blob produced by Marshal.
func UnmarshalManifest(blob []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(blob, &m); err != nil {
		return Manifest{}, divarcerr.Wrap(divarcerr.BadFormat, "parsing manifest blob", err)
	}
	return m, nil
}

// Header is the ContainerHeader (spec.md §4.8): a total byte-length
// prefix followed by the concatenation of length-prefixed manifest blobs.
type Header struct {
	Manifests []Manifest
}

// Encode serialises h as `<u64 BE total-length> { <u64 BE blob-length>
// <blob> }*`.
func (h Header) Encode() ([]byte, error) {
	var body []byte
	for _, m := range h.Manifests {
		blob, err := m.Marshal()
		if err != nil {
			return nil, err
		}
		var lenBuf [8]byte
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(blob)))
		body = append(body, lenBuf[:]...)
		body = append(body, blob...)
	}
	out := make([]byte, 8, 8+len(body))
	binary.BigEndian.PutUint64(out[0:8], uint64(len(body)))
	return append(out, body...), nil
}

// ParseManifestBody parses the length-prefixed manifest blobs that follow
// the outer u64 length (i.e. the bytes decode_to_memory(header_length)
// returned), per spec.md §4.10 step 4.
func ParseManifestBody(body []byte) ([]Manifest, error) {
	var manifests []Manifest
	for len(body) > 0 {
		if len(body) < 8 {
			return nil, divarcerr.New(divarcerr.BadFormat, "truncated manifest blob length")
		}
		blobLen := binary.BigEndian.Uint64(body[:8])
		body = body[8:]
		if uint64(len(body)) < blobLen {
			return nil, divarcerr.New(divarcerr.BadFormat, "manifest blob length exceeds remaining header bytes")
		}
		m, err := UnmarshalManifest(body[:blobLen])
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
		body = body[blobLen:]
	}
	return manifests, nil
}
