// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package archive

import (
	"bytes"
	"io"
	"testing"

	"github.com/go-compress/divarc/internal/testutil"
	"github.com/go-compress/divarc/manifest"
	"github.com/google/go-cmp/cmp"
)

func int64p(v int64) *int64 { return &v }

func packTo(t *testing.T, fs *testutil.MemFS, roots []string, method Method) []byte {
	t.Helper()
	p := &Packer{Walker: fs, Factory: testutil.MemTempFileFactory{}, Paths: fs, Method: method}
	var out bytes.Buffer
	if err := p.Pack(roots, &out); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	return out.Bytes()
}

// TestScenarioS5 matches spec.md's scenario table S5: pack two roots,
// extract all into an empty directory, and check the extracted bytes.
func TestScenarioS5(t *testing.T) {
	fs := testutil.NewMemFS()
	fs.AddDir("a")
	fs.AddFile("a/x.txt", []byte("hello"))
	fs.AddFile("b.txt", []byte("world"))

	body := packTo(t, fs, []string{"a", "b.txt"}, Huffman)

	out := testutil.NewMemFS()
	x, err := Open(bytes.NewReader(body), out, testutil.MemTempFileFactory{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer x.Close()
	if err := x.ExtractSelected(nil, "out"); err != nil {
		t.Fatalf("ExtractSelected: %v", err)
	}

	got, err := out.Open("out/a/x.txt")
	if err != nil {
		t.Fatalf("opening out/a/x.txt: %v", err)
	}
	gotBytes, _ := io.ReadAll(got)
	if string(gotBytes) != "hello" {
		t.Errorf("a/x.txt = %q, want %q", gotBytes, "hello")
	}

	got2, err := out.Open("out/b.txt")
	if err != nil {
		t.Fatalf("opening out/b.txt: %v", err)
	}
	gotBytes2, _ := io.ReadAll(got2)
	if string(gotBytes2) != "world" {
		t.Errorf("b.txt = %q, want %q", gotBytes2, "world")
	}
}

// TestScenarioS6 matches spec.md's scenario table S6: selective
// extraction of a/2 into a directory that already contains a/1; a/1 is
// left untouched, a/2 is written, a/3 is never materialized, and
// extraction does not error even though a/1 pre-exists.
func TestScenarioS6(t *testing.T) {
	fs := testutil.NewMemFS()
	fs.AddDir("a")
	fs.AddFile("a/1", []byte("one"))
	fs.AddFile("a/2", []byte("two"))
	fs.AddFile("a/3", []byte("three"))

	body := packTo(t, fs, []string{"a"}, Huffman)

	out := testutil.NewMemFS()
	out.AddFile("out/a/1", []byte("pre-existing"))

	x, err := Open(bytes.NewReader(body), out, testutil.MemTempFileFactory{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer x.Close()
	if err := x.ExtractSelected([]string{"a/2"}, "out"); err != nil {
		t.Fatalf("ExtractSelected: %v", err)
	}

	r, _ := out.Open("out/a/1")
	b, _ := io.ReadAll(r)
	if string(b) != "pre-existing" {
		t.Errorf("a/1 was overwritten: got %q", b)
	}

	r2, err := out.Open("out/a/2")
	if err != nil {
		t.Fatalf("a/2 was not written: %v", err)
	}
	b2, _ := io.ReadAll(r2)
	if string(b2) != "two" {
		t.Errorf("a/2 = %q, want %q", b2, "two")
	}

	if out.Exists("out/a/3") {
		t.Errorf("a/3 should not have been materialized")
	}
}

func TestListReturnsAllEntries(t *testing.T) {
	fs := testutil.NewMemFS()
	fs.AddDir("a")
	fs.AddFile("a/1", []byte("one"))
	body := packTo(t, fs, []string{"a"}, LZ77)

	x, err := Open(bytes.NewReader(body), fs, testutil.MemTempFileFactory{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer x.Close()

	want := []manifest.Entry{
		{Path: "a", Size: nil},
		{Path: "a/1", Size: int64p(3)},
	}
	if diff := cmp.Diff(want, x.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestArchiveRoundTripBothMethods(t *testing.T) {
	for _, method := range []Method{Huffman, LZ77} {
		fs := testutil.NewMemFS()
		fs.AddDir("root")
		fs.AddFile("root/empty.txt", nil)
		fs.AddFile("root/data.bin", testutil.NewRand(5).Bytes(2048))
		fs.AddDir("root/nested")
		fs.AddFile("root/nested/f", []byte("nested file contents"))

		body := packTo(t, fs, []string{"root"}, method)

		out := testutil.NewMemFS()
		x, err := Open(bytes.NewReader(body), out, testutil.MemTempFileFactory{})
		if err != nil {
			t.Fatalf("method %d: Open: %v", method, err)
		}
		if err := x.ExtractSelected(nil, "out"); err != nil {
			t.Fatalf("method %d: ExtractSelected: %v", method, err)
		}
		x.Close()

		for _, p := range []string{"root/empty.txt", "root/data.bin", "root/nested/f"} {
			wantR, err := fs.Open(p)
			if err != nil {
				t.Fatalf("method %d: opening fixture %s: %v", method, p, err)
			}
			want, _ := io.ReadAll(wantR)
			r, err := out.Open("out/" + p)
			if err != nil {
				t.Fatalf("method %d: opening %s: %v", method, p, err)
			}
			got, _ := io.ReadAll(r)
			if !bytes.Equal(got, want) {
				t.Errorf("method %d: %s mismatch (got %d bytes, want %d)", method, p, len(got), len(want))
			}
		}
	}
}

