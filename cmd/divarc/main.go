// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command divarc packs and unpacks directory-tree archives using the
// divarc container format, with a choice of two lossless codecs
// (huffman or lz77).
//
//	$ divarc pack   -method huffman -o out.divarc  dir1 dir2
//	$ divarc list   out.divarc
//	$ divarc extract -C /tmp/restore out.divarc [path ...]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-compress/divarc/archive"
	"github.com/go-compress/divarc/internal/divarcerr"
	"github.com/go-compress/divarc/osfs"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("divarc: ")

	if len(os.Args) < 2 {
		usageFatal()
	}
	verb, args := os.Args[1], os.Args[2:]

	var err error
	switch verb {
	case "pack":
		err = runPack(args)
	case "list":
		err = runList(args)
	case "extract":
		err = runExtract(args)
	default:
		usageFatal()
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func usageFatal() {
	fmt.Fprintln(os.Stderr, "usage: divarc pack|list|extract ...")
	os.Exit(2)
}

func parseMethod(s string) (archive.Method, error) {
	switch s {
	case "huffman":
		return archive.Huffman, nil
	case "lz77":
		return archive.LZ77, nil
	default:
		return 0, fmt.Errorf("unknown -method %q (want huffman or lz77)", s)
	}
}

func runPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	out := fs.String("o", "", "output archive path (required)")
	method := fs.String("method", "huffman", "compression method: huffman or lz77")
	fs.Parse(args)

	roots := fs.Args()
	if *out == "" || len(roots) == 0 {
		return errors.New("pack requires -o and at least one root directory")
	}
	m, err := parseMethod(*method)
	if err != nil {
		return err
	}

	sink, err := os.Create(*out)
	if err != nil {
		return divarcerr.Wrap(divarcerr.IoCreate, "creating "+*out, err)
	}
	defer sink.Close()

	p := &archive.Packer{
		Walker:  osfs.Walker{},
		Factory: osfs.TempFileFactory{},
		Paths:   osfs.Path{},
		Method:  m,
	}
	if err := p.Pack(roots, sink); err != nil {
		return err
	}
	return sink.Close()
}

func openArchive(path string) (*archive.Extractor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, divarcerr.Wrap(divarcerr.IoOpen, "opening "+path, err)
	}
	x, err := archive.Open(f, osfs.Path{}, osfs.TempFileFactory{})
	if err != nil {
		f.Close()
		return nil, err
	}
	return x, nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("list requires exactly one archive path")
	}

	x, err := openArchive(fs.Arg(0))
	if err != nil {
		return err
	}
	defer x.Close()

	for _, e := range x.List() {
		if e.IsDir() {
			fmt.Printf("%s <dir>\n", e.Path)
		} else {
			fmt.Printf("%s %d\n", e.Path, *e.Size)
		}
	}
	return nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	outDir := fs.String("C", ".", "directory to extract into")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return errors.New("extract requires an archive path")
	}
	archivePath := fs.Arg(0)
	wanted := fs.Args()[1:]

	x, err := openArchive(archivePath)
	if err != nil {
		return err
	}
	defer x.Close()

	if err := (osfs.Path{}).CreateDirAll(*outDir); err != nil {
		return err
	}

	for _, e := range x.List() {
		if e.IsDir() || !isWanted(e.Path, wanted) {
			continue
		}
		target := osfs.Path{}.Join(*outDir, e.Path)
		if (osfs.Path{}).Exists(target) {
			fmt.Fprintf(os.Stderr, "%s already exists, skipping\n", e.Path)
		}
	}

	return x.ExtractSelected(wanted, *outDir)
}

func isWanted(path string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if path == w || len(path) > len(w) && path[:len(w)+1] == w+"/" {
			return true
		}
	}
	return false
}
