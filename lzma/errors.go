// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "errors"

// Error reports a violation of the LZMA wire format or a semantic
// constraint of the decoder or encoder (invalid properties byte, invalid
// distance, corrupt range-coder terminus and similar). The message is
// prefixed by "lzma: ".
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "lzma: " + e.Msg }

func newError(msg string) error { return &Error{Msg: msg} }

var (
	// ErrNoEOS reports that the input ended before the end-of-stream
	// marker was seen and before the declared unpacked size, if any,
	// was reached.
	ErrNoEOS = newError("end-of-stream marker missing")

	// ErrEncoding reports a corrupt range-coder terminus: the code word
	// is not zero after the end-of-stream marker.
	ErrEncoding = newError("wrong encoding")

	// errAgain is returned by a dictionary's WriteByte when its buffer is full
	// and must be drained by the caller before accepting more bytes.
	errAgain = errors.New("lzma: dictionary buffer full")

	errClosed = errors.New("lzma: stream already closed")
)

// ErrHeaderTooShort reports that the input ended while a fixed-length
// header was being read.
var ErrHeaderTooShort = errors.New("lzma: header too short")
