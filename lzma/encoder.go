// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "io"

// encoder is the "dumb" reference encoder: it never searches for
// matches and emits every input byte as a literal. It exists so this
// module can produce streams its own decoder (and any compliant LZMA
// decoder) can read, not to compete on compression ratio — grounded on
// the Rust original's dumbencoder, which takes the same approach.
type encoder struct {
	state    *State
	re       *rangeEncoder
	pos      int64
	prevByte byte
}

func newEncoder(re *rangeEncoder, st *State) *encoder {
	return &encoder{state: st, re: re}
}

// encodeLiteral encodes a single byte as an LZMA literal operation.
func (en *encoder) encodeLiteral(b byte) error {
	s := en.state
	posState := s.posState(en.pos)
	stateIdx := s.curState<<maxPosBits | posState
	if err := en.re.EncodeBit(0, &s.isMatch[stateIdx]); err != nil {
		return err
	}
	litState := s.litState(en.prevByte, en.pos)
	if err := s.litCodec.Encode(en.re, b, litState, 0, false); err != nil {
		return err
	}
	s.updateStateLiteral()
	en.prevByte = b
	en.pos++
	return nil
}

// encodeEOS emits the reserved end-of-stream marker: a match operation
// at distance 0xFFFFFFFF.
func (en *encoder) encodeEOS() error {
	s := en.state
	posState := s.posState(en.pos)
	stateIdx := s.curState<<maxPosBits | posState
	if err := en.re.EncodeBit(1, &s.isMatch[stateIdx]); err != nil {
		return err
	}
	if err := en.re.EncodeBit(0, &s.isRep[s.curState]); err != nil {
		return err
	}
	const l = minMatchLen
	if err := s.lenCodec.Encode(en.re, l, posState); err != nil {
		return err
	}
	return s.distCodec.Encode(en.re, eosDist, l-minMatchLen)
}

// EncodeChunk writes data as a sequence of literal LZMA operations under
// freshly initialized properties, with no end-of-stream marker and no
// classic header — the caller already knows the exact decoded length by
// other means. The encoder starts at position zero with a zero previous
// byte, so a decoder agrees with it only when the chunk resets the
// dictionary. This is what the lzma2 package's writer uses to produce
// compressed chunks via this package's literal-only encoder instead of
// only ever falling back to uncompressed chunks.
func EncodeChunk(w io.ByteWriter, props Properties, data []byte) error {
	re := newRangeEncoder(w)
	en := newEncoder(re, NewState(props))
	for _, b := range data {
		if err := en.encodeLiteral(b); err != nil {
			return err
		}
	}
	return re.Close()
}
