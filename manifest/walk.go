// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package manifest

import (
	"strings"

	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/internal/divarcerr"
)

// FromWalkEntries builds the Manifest for one root from the entries a
// collab.DirectoryWalker produced, stripping root's parent prefix so the
// root itself appears as its own leading path component (spec.md §4.7),
// and normalising backslashes to forward slashes — the one piece of
// cross-platform path handling spec.md §1 keeps in scope.
func FromWalkEntries(root string, entries []collab.WalkEntry, paths collab.PathAPI) (Manifest, error) {
	parent := paths.Parent(root)
	m := Manifest{Entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		rel, err := paths.StripPrefix(e.AbsPath, parent)
		if err != nil {
			return Manifest{}, divarcerr.Wrap(divarcerr.IoOther, "computing manifest-relative path", err)
		}
		rel = strings.ReplaceAll(rel, `\`, "/")

		entry := Entry{Path: rel}
		if e.Kind == collab.File {
			size := e.Size
			entry.Size = &size
		}
		m.Entries = append(m.Entries, entry)
	}
	return m, nil
}
