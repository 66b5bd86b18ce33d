// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import "io"

// window drives the encoder's sliding-window match search. long holds up
// to LongSize already-seen bytes in chronological order (oldest first);
// short holds up to ShortSize bytes of lookahead, front-aligned so
// short[0] is the next byte the encoder has not yet emitted.
type window struct {
	r     io.Reader
	long  []byte
	short []byte
	eof   bool
}

func newWindow(r io.Reader) (*window, error) {
	w := &window{r: r}
	if err := w.fillShort(); err != nil {
		return nil, err
	}
	return w, nil
}

// fillShort tops short back up to ShortSize bytes, or until the reader is
// exhausted.
func (w *window) fillShort() error {
	for !w.eof && len(w.short) < ShortSize {
		var b [1]byte
		n, err := w.r.Read(b[:])
		if n == 1 {
			w.short = append(w.short, b[0])
		}
		if err == io.EOF {
			w.eof = true
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			continue // zero-length read with nil error: retry per io.Reader contract
		}
	}
	return nil
}

func (w *window) empty() bool { return len(w.short) == 0 }

// advance consumes n bytes from the front of short into the back of long
// (dropping the oldest long byte once long is at capacity), refilling
// short from the underlying reader as room opens up.
func (w *window) advance(n int) error {
	for i := 0; i < n && len(w.short) > 0; i++ {
		b := w.short[0]
		w.short = w.short[1:]
		if len(w.long) == LongSize {
			w.long = w.long[1:]
		}
		w.long = append(w.long, b)
	}
	return w.fillShort()
}

// match is one (offset, length, literal) triple: offset and length
// describe a back-reference into long (offset counted backward from the
// start of short, 1 meaning the byte immediately preceding it; length 0
// meaning no match was found), and literal is the byte immediately
// following the matched run in short, present whenever short is nonempty.
type match struct {
	offset  int
	length  int
	literal byte
	hasLit  bool
}

// findLongestPrefix returns the longest proper prefix of short that also
// occurs somewhere in long (the occurrence may run past the end of long
// into short itself, i.e. overlapping matches are allowed), breaking ties
// toward the most recent (smallest-offset) occurrence. Equivalent to the
// teacher-adjacent reference's nested descending-prefix-length search, but
// computed as a single scan over candidate starting points using the
// common-prefix length at each, which a Go port doesn't need to redo with
// an explicit outer loop over every candidate prefix length.
func (w *window) findLongestPrefix() match {
	pattern := w.short
	if len(pattern) == 0 {
		return match{}
	}
	maxLen := len(pattern) - 1 // proper prefix only

	textLen := len(w.long)
	data := make([]byte, 0, textLen+len(pattern))
	data = append(data, w.long...)
	data = append(data, pattern...)

	bestLen, bestStart := 0, -1
	if maxLen > 0 {
		for start := textLen - 1; start >= 0; start-- {
			avail := len(data) - start
			limit := maxLen
			if avail < limit {
				limit = avail
			}
			l := commonPrefixLen(data[start:], pattern, limit)
			if l > bestLen {
				bestLen = l
				bestStart = start
				if bestLen == maxLen {
					break // can't do better than the longest allowed prefix
				}
			}
		}
	}

	if bestLen == 0 {
		return match{literal: pattern[0], hasLit: true}
	}
	m := match{offset: textLen - bestStart, length: bestLen}
	if next := textLen + bestLen; next < len(data) {
		m.literal = data[next]
		m.hasLit = true
	}
	return m
}

func commonPrefixLen(a, b []byte, max int) int {
	n := 0
	for n < max && n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
