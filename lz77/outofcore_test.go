// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import (
	"bytes"
	"testing"

	"github.com/go-compress/divarc/internal/testutil"
)

func TestOutOfCoreBufferAppendAndSlice(t *testing.T) {
	want := testutil.NewRand(7).Bytes(5000)
	buf := NewOutOfCoreBuffer(testutil.MemTempFileFactory{}, 37) // tiny window forces many spills
	defer buf.Close()
	for _, b := range want {
		if err := buf.AppendByte(b); err != nil {
			t.Fatalf("AppendByte: %v", err)
		}
	}
	if buf.Len() != int64(len(want)) {
		t.Fatalf("Len() = %d, want %d", buf.Len(), len(want))
	}
	got, err := buf.ReadSlice(0, buf.Len())
	if err != nil {
		t.Fatalf("ReadSlice: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("ReadSlice(0, Len()) mismatch")
	}
}

// TestOutOfCoreBufferSliceStraddlesBoundary checks a slice read that spans
// the RAM/scratch-file boundary returns exactly the bytes that a full
// in-memory buffer would have at the same offsets.
func TestOutOfCoreBufferSliceStraddlesBoundary(t *testing.T) {
	want := testutil.NewRand(3).Bytes(200)
	buf := NewOutOfCoreBuffer(testutil.MemTempFileFactory{}, 100)
	defer buf.Close()
	for _, b := range want {
		if err := buf.AppendByte(b); err != nil {
			t.Fatalf("AppendByte: %v", err)
		}
	}
	for _, tc := range []struct{ start, length int64 }{
		{0, 200},
		{90, 20},
		{99, 2},
		{150, 50},
		{0, 1},
		{199, 1},
	} {
		got, err := buf.ReadSlice(tc.start, tc.length)
		if err != nil {
			t.Fatalf("ReadSlice(%d, %d): %v", tc.start, tc.length, err)
		}
		want := want[tc.start : tc.start+tc.length]
		if !bytes.Equal(got, want) {
			t.Fatalf("ReadSlice(%d, %d) = %v, want %v", tc.start, tc.length, got, want)
		}
	}
}

func TestOutOfCoreBufferCopyBackOverlapping(t *testing.T) {
	buf := NewOutOfCoreBuffer(testutil.MemTempFileFactory{}, 4)
	defer buf.Close()
	for _, b := range []byte("ab") {
		if err := buf.AppendByte(b); err != nil {
			t.Fatalf("AppendByte: %v", err)
		}
	}
	// offset 2 ("ab"), length 5: copies a,b,a,b,a one byte at a time.
	if err := buf.CopyBack(2, 5); err != nil {
		t.Fatalf("CopyBack: %v", err)
	}
	got, err := buf.ReadSlice(0, buf.Len())
	if err != nil {
		t.Fatalf("ReadSlice: %v", err)
	}
	want := []byte("abababa")
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestOutOfCoreBufferOutOfRange(t *testing.T) {
	buf := NewOutOfCoreBuffer(testutil.MemTempFileFactory{}, 16)
	defer buf.Close()
	for _, b := range []byte("hello") {
		buf.AppendByte(b)
	}
	if _, err := buf.ReadSlice(3, 10); err == nil {
		t.Fatalf("expected an error reading past the end of the buffer")
	}
	if _, err := buf.ByteAt(100); err == nil {
		t.Fatalf("expected an error reading a byte past the end of the buffer")
	}
}
