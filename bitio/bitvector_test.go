// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import "testing"

func TestBitVectorGetAfterPush(t *testing.T) {
	bv := new(BitVector)
	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1}
	for _, b := range bits {
		bv.PushBit(b)
	}
	if bv.Len() != len(bits) {
		t.Fatalf("Len() = %d, want %d", bv.Len(), len(bits))
	}
	for i, want := range bits {
		if got := bv.Get(i); got != want {
			t.Errorf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestBitVectorPushByte(t *testing.T) {
	bv := new(BitVector)
	bv.PushByte(0xA5) // 1010 0101
	want := []byte{1, 0, 1, 0, 0, 1, 0, 1}
	for i, w := range want {
		if got := bv.Get(i); got != w {
			t.Errorf("Get(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestBitVectorPop(t *testing.T) {
	bv := new(BitVector)
	bv.PushByte(0xFF)
	bv.PushBit(1)
	if bv.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", bv.Len())
	}
	bv.Pop()
	if bv.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", bv.Len())
	}
	if len(bv.Bytes()) != 1 {
		t.Fatalf("backing array did not shrink: len=%d", len(bv.Bytes()))
	}
}

func TestBitVectorEqual(t *testing.T) {
	a := new(BitVector)
	b := new(BitVector)
	for _, bit := range []byte{1, 0, 1} {
		a.PushBit(bit)
		b.PushBit(bit)
	}
	if !a.Equal(b) {
		t.Fatalf("expected equal vectors")
	}
	b.PushBit(1)
	if a.Equal(b) {
		t.Fatalf("expected unequal vectors after divergence")
	}
}

func TestBitVectorFromUint64StripsLeadingZeroBytes(t *testing.T) {
	bv := NewBitVectorFromUint64(0xAEFE48)
	if bv.Len() != 24 {
		t.Fatalf("Len() = %d, want 24", bv.Len())
	}
	want := []byte{0xAE, 0xFE, 0x48}
	got := bv.Bytes()
	for i, w := range want {
		if got[i] != w {
			t.Errorf("byte %d = %#x, want %#x", i, got[i], w)
		}
	}
}

func TestBitVectorFromUint64Zero(t *testing.T) {
	bv := NewBitVectorFromUint64(0)
	if bv.Len() != 8 {
		t.Fatalf("Len() = %d, want 8 (lowest byte kept)", bv.Len())
	}
	if bv.Bytes()[0] != 0 {
		t.Fatalf("expected a single zero byte")
	}
}
