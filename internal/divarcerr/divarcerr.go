// Copyright 2024, The divarc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package divarcerr defines the error taxonomy shared by every divarc
// package: the bit/byte I/O primitives, the Huffman and LZ77 codecs, the
// manifest and container encodings, and the packer/extractor.
package divarcerr

// Kind classifies an Error. The set is exhaustive: every failure a divarc
// package can produce maps to exactly one of these.
type Kind uint8

const (
	// BadFormat is returned for a magic mismatch, a malformed tree
	// encoding, a truncated header length, or a header byte count that
	// exceeds the bytes available once decompressed.
	BadFormat Kind = iota + 1
	// Truncated is returned when the compressed stream ends before the
	// expected byte count for a header or file body.
	Truncated
	// IoOpen is returned when an input archive or source file cannot be
	// opened.
	IoOpen
	// IoCreate is returned when an output file or scratch file cannot be
	// created.
	IoCreate
	// IoOther is returned for any other filesystem failure: read, write,
	// seek, or remove.
	IoOther
)

func (k Kind) String() string {
	switch k {
	case BadFormat:
		return "bad format"
	case Truncated:
		return "truncated"
	case IoOpen:
		return "could not open"
	case IoCreate:
		return "could not create"
	case IoOther:
		return "io error"
	default:
		return "unknown error"
	}
}

// Error is the typed error value produced by every divarc package. It
// carries the failure Kind, a human-readable message, and the wrapped
// cause, if any. It mirrors the teacher's `type Error string` idiom (see
// dsnet/compress's flate.Error and internal.Error) generalized with a Kind
// so callers can branch on the taxonomy with errors.Is.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return "divarc: " + e.Kind.String()
	}
	return "divarc: " + e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a bare *Error (no message, no cause) with
// the same Kind, so that errors.Is(err, divarcerr.ErrBadFormat) works
// regardless of e's message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

// New constructs an *Error of the given kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs an *Error of the given kind, wrapping a lower-level
// cause (typically an *os.PathError or similar).
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Sentinel values usable with errors.Is for bare kind checks, e.g.
// errors.Is(err, divarcerr.ErrBadFormat).
var (
	ErrBadFormat = &Error{Kind: BadFormat}
	ErrTruncated = &Error{Kind: Truncated}
	ErrIoOpen    = &Error{Kind: IoOpen}
	ErrIoCreate  = &Error{Kind: IoCreate}
	ErrIoOther   = &Error{Kind: IoOther}
)
