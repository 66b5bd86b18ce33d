// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"io"

	"github.com/go-compress/divarc/internal/divarcerr"
)

// ByteReader wraps an io.Reader with a fixed-size refill buffer and
// exposes both byte- and bit-granularity reads. Mixing the two on the
// same ByteReader is undefined per the format's bit/byte-addressed
// distinction; callers pick one mode per stream and stick to it, the way
// a huffman.Decoder only ever calls ReadBit.
type ByteReader struct {
	r   io.Reader
	buf []byte
	pos int // index of next unread byte in buf
	len int // number of valid bytes in buf

	curByte byte // byte currently being consumed bit-by-bit
	bitPos  uint // number of bits of curByte already consumed (0 means "need a fresh byte")
}

// NewByteReader constructs a ByteReader over r.
func NewByteReader(r io.Reader) *ByteReader {
	return &ByteReader{r: r, buf: make([]byte, defaultBufSize)}
}

// ReadByte returns the next byte, or ok=false at true end-of-stream.
func (br *ByteReader) ReadByte() (b byte, ok bool) {
	for br.pos >= br.len {
		n, err := br.r.Read(br.buf)
		br.pos, br.len = 0, n
		if n == 0 {
			if err != nil {
				return 0, false
			}
			continue // zero-byte reads with nil error are legal for io.Reader
		}
	}
	b = br.buf[br.pos]
	br.pos++
	return b, true
}

// ReadBit returns the next bit, MSB-first within each byte, bytes
// consumed in stream order. Returns ok=false at true end-of-stream.
func (br *ByteReader) ReadBit() (bit byte, ok bool) {
	if br.bitPos == 0 {
		b, ok := br.ReadByte()
		if !ok {
			return 0, false
		}
		br.curByte = b
		br.bitPos = 8
	}
	br.bitPos--
	return (br.curByte >> br.bitPos) & 1, true
}

// ReadNBytes reads exactly n bytes, returning a *divarcerr.Error with Kind
// Truncated if the stream ends first.
func (br *ByteReader) ReadNBytes(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		b, ok := br.ReadByte()
		if !ok {
			return nil, divarcerr.New(divarcerr.Truncated, "stream ended before expected byte count")
		}
		out = append(out, b)
	}
	return out, nil
}
