// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import (
	"bytes"
	"testing"

	"github.com/go-compress/divarc/internal/testutil"
)

func compress(t *testing.T, input []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	w, err := NewWriter(&out, testutil.MemTempFileFactory{})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(input); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return out.Bytes()
}

func decompress(t *testing.T, body []byte, n, ramWindow int) []byte {
	t.Helper()
	d, err := NewDecoder(bytes.NewReader(body), testutil.MemTempFileFactory{}, ramWindow, len(body) == 0)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	defer d.Close()
	got, err := d.DecodeToMemory(n)
	if err != nil {
		t.Fatalf("DecodeToMemory: %v", err)
	}
	return got
}

func TestRoundTrip(t *testing.T) {
	vectors := [][]byte{
		nil,
		[]byte("a"),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		[]byte("abcabcabcabcabcabcabcabcabcabcabc"),
		[]byte("hello world, hello world, hello world!"),
		testutil.NewRand(1).Bytes(8192),
		bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 500),
	}
	for i, v := range vectors {
		body := compress(t, v)
		got := decompress(t, body, len(v), 0)
		if !bytes.Equal(got, v) {
			t.Errorf("vector %d: round trip mismatch (len got=%d want=%d)", i, len(got), len(v))
		}
	}
}

// TestRoundTripForcesSpill exercises the out-of-core scratch-file path on
// the decode side by using a RAM window far smaller than the decoded
// stream.
func TestRoundTripForcesSpill(t *testing.T) {
	v := bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz"), 2000)
	body := compress(t, v)
	got := decompress(t, body, len(v), 64)
	if !bytes.Equal(got, v) {
		t.Fatalf("round trip mismatch with forced spill (len got=%d want=%d)", len(got), len(v))
	}
}

// TestScenarioS1 matches spec.md's scenario table S1: compressing an
// empty input produces an empty output.
func TestScenarioS1(t *testing.T) {
	body := compress(t, nil)
	if len(body) != 0 {
		t.Fatalf("got %d bytes, want 0", len(body))
	}
}

// TestOverlappingBackReference exercises a run-length style match where
// offset < length, which forces CopyBack's byte-by-byte self-overlapping
// copy (a single bulk slice copy would read unwritten bytes).
func TestOverlappingBackReference(t *testing.T) {
	v := bytes.Repeat([]byte{'x'}, 1000)
	body := compress(t, v)
	got := decompress(t, body, len(v), 0)
	if !bytes.Equal(got, v) {
		t.Fatalf("overlapping back-reference round trip mismatch")
	}
}

func TestSkipAdvancesCursor(t *testing.T) {
	v := []byte("0123456789abcdefghij")
	body := compress(t, v)
	d, err := NewDecoder(bytes.NewReader(body), testutil.MemTempFileFactory{}, 0, false)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	defer d.Close()
	if err := d.Skip(10); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	got, err := d.DecodeToMemory(10)
	if err != nil {
		t.Fatalf("DecodeToMemory: %v", err)
	}
	if !bytes.Equal(got, v[10:]) {
		t.Fatalf("got %q, want %q", got, v[10:])
	}
}

func TestDecodeToFile(t *testing.T) {
	v := []byte("streamed straight to a writer instead of memory")
	body := compress(t, v)
	d, err := NewDecoder(bytes.NewReader(body), testutil.MemTempFileFactory{}, 0, false)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	defer d.Close()
	var out bytes.Buffer
	if err := d.DecodeToFile(&out, len(v)); err != nil {
		t.Fatalf("DecodeToFile: %v", err)
	}
	if !bytes.Equal(out.Bytes(), v) {
		t.Fatalf("got %q, want %q", out.Bytes(), v)
	}
}

// TestDecodeToFileChunksAcrossRAMWindow forces a RAM window far smaller
// than the decoded output so DecodeToFile must stitch its write together
// from multiple WriteRangeTo chunks rather than one in-memory slice.
func TestDecodeToFileChunksAcrossRAMWindow(t *testing.T) {
	v := bytes.Repeat([]byte("0123456789"), 5000)
	body := compress(t, v)
	d, err := NewDecoder(bytes.NewReader(body), testutil.MemTempFileFactory{}, 64, false)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	defer d.Close()
	var out bytes.Buffer
	if err := d.DecodeToFile(&out, len(v)); err != nil {
		t.Fatalf("DecodeToFile: %v", err)
	}
	if !bytes.Equal(out.Bytes(), v) {
		t.Fatalf("round trip mismatch decoding to file with a forced small RAM window")
	}
}

func TestTruncatedStreamRejected(t *testing.T) {
	body := compress(t, bytes.Repeat([]byte("pattern"), 50))
	d, err := NewDecoder(bytes.NewReader(body[:len(body)-3]), testutil.MemTempFileFactory{}, 0, false)
	if err == nil {
		d.Close()
		t.Fatalf("expected a Truncated error for a stream cut off mid-triple")
	}
}
