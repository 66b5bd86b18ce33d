// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"bytes"
	"testing"
)

func TestByteWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	bw := NewByteWriter(&buf)
	for _, b := range []byte{1, 2, 3, 4} {
		if err := bw.WriteByte(b); err != nil {
			t.Fatalf("WriteByte: %v", err)
		}
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{1, 2, 3, 4}) {
		t.Fatalf("got %v, want [1 2 3 4]", buf.Bytes())
	}
}

func TestBitWriterWriteBitVector(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)

	bv := new(BitVector)
	bv.PushByte(0xA5)
	if err := w.WriteBitVector(bv); err != nil {
		t.Fatalf("WriteBitVector: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xA5}) {
		t.Fatalf("got %v, want [0xA5]", buf.Bytes())
	}
}

func TestBitWriterPadsFinalByteWithZero(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)
	for _, bit := range []byte{1, 0, 1} {
		if err := w.WriteBit(bit); err != nil {
			t.Fatalf("WriteBit: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buf.Len() != 1 {
		t.Fatalf("got %d bytes, want 1", buf.Len())
	}
	want := byte(1<<7 | 0<<6 | 1<<5)
	if buf.Bytes()[0] != want {
		t.Fatalf("got %08b, want %08b", buf.Bytes()[0], want)
	}
}

func TestBitVectorRoundTripThroughReaderWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)
	pattern := []byte{1, 1, 0, 0, 1, 0, 1, 1, 1, 0, 0, 0}
	for _, bit := range pattern {
		if err := w.WriteBit(bit); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	br := NewByteReader(bytes.NewReader(buf.Bytes()))
	for i, want := range pattern {
		got, ok := br.ReadBit()
		if !ok || got != want {
			t.Fatalf("bit %d: got (%d,%v), want (%d,true)", i, got, ok, want)
		}
	}
}
