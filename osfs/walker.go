// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package osfs

import (
	"io/fs"
	"path/filepath"

	"github.com/go-compress/divarc/collab"
	"github.com/go-compress/divarc/internal/divarcerr"
)

// Walker implements collab.DirectoryWalker with filepath.WalkDir,
// yielding root itself followed by its descendants in the traversal's
// natural lexical order (root-first, deterministic).
type Walker struct{}

func (Walker) Walk(root string) ([]collab.WalkEntry, error) {
	var entries []collab.WalkEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			entries = append(entries, collab.WalkEntry{AbsPath: path, Kind: collab.Dir})
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, collab.WalkEntry{AbsPath: path, Kind: collab.File, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.IoOther, "walking "+root, err)
	}
	return entries, nil
}
