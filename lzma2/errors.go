// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma2

import "errors"

// Error reports a violation of the LZMA2 chunk framing (an invalid
// control byte, an oversized chunk, a chunk that reuses state before
// any reset established one).
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "lzma2: " + e.Msg }

func newError(msg string) error { return &Error{Msg: msg} }

var (
	// ErrInvalidControl reports a control byte that is neither 0x00,
	// 0x01, 0x02 nor >= 0x80.
	ErrInvalidControl = newError("invalid chunk control byte")

	// ErrNoEOS reports that the chunk stream ended without an explicit
	// end-of-stream control byte.
	ErrNoEOS = newError("end-of-stream chunk missing")

	// errNoState reports a compressed chunk with no property/state
	// reset appearing before any LZMA state has been established.
	errNoState = errors.New("lzma2: chunk reuses state before a reset")

	// errNoProps reports a compressed chunk appearing before any chunk
	// has declared the lc/lp/pb properties.
	errNoProps = errors.New("lzma2: chunk decoded before properties set")
)
