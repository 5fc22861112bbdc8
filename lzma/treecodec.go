// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// treeCodec encodes or decodes a fixed-width symbol most-significant-bit
// first through a binary tree of probabilities, one probability per tree
// node. probs has length 1<<bits; index 0 is unused, matching the
// classic 1-based tree indexing.
type treeCodec struct {
	probs []prob
	bits  int
}

func makeTreeCodec(bits int) treeCodec {
	return treeCodec{probs: initProbSlice(1 << uint(bits)), bits: bits}
}

func initProbSlice(n int) []prob {
	p := make([]prob, n)
	for i := range p {
		p[i] = probInit
	}
	return p
}

func (tc *treeCodec) Encode(e *rangeEncoder, sym uint32) error {
	m := uint32(1)
	for i := tc.bits - 1; i >= 0; i-- {
		bit := (sym >> uint(i)) & 1
		if err := e.EncodeBit(bit, &tc.probs[m]); err != nil {
			return err
		}
		m = (m << 1) | bit
	}
	return nil
}

func (tc *treeCodec) Decode(d *rangeDecoder) (sym uint32, err error) {
	m := uint32(1)
	for i := 0; i < tc.bits; i++ {
		bit, err := d.DecodeBit(&tc.probs[m])
		if err != nil {
			return 0, err
		}
		m = (m << 1) | bit
	}
	return m - (1 << uint(tc.bits)), nil
}

// treeReverseCodec is a tree codec that decodes symbols least-significant
// bit first, used for the low-order bits of LZMA distances.
type treeReverseCodec struct {
	probs []prob
	bits  int
}

func makeTreeReverseCodec(bits int) treeReverseCodec {
	return treeReverseCodec{probs: initProbSlice(1 << uint(bits)), bits: bits}
}

func (tc *treeReverseCodec) Encode(e *rangeEncoder, sym uint32) error {
	m := uint32(1)
	for i := 0; i < tc.bits; i++ {
		bit := sym & 1
		sym >>= 1
		if err := e.EncodeBit(bit, &tc.probs[m]); err != nil {
			return err
		}
		m = (m << 1) | bit
	}
	return nil
}

func (tc *treeReverseCodec) Decode(d *rangeDecoder) (sym uint32, err error) {
	m := uint32(1)
	for i := uint(0); i < uint(tc.bits); i++ {
		bit, err := d.DecodeBit(&tc.probs[m])
		if err != nil {
			return 0, err
		}
		m = (m << 1) | bit
		sym |= bit << i
	}
	return sym, nil
}

// directCodec encodes or decodes a fixed number of bits with a flat
// probability of 1/2 each, used for the middle bits of large LZMA
// distances, between the position slot's top bits and the four
// alignment bits.
type directCodec struct {
	bits int
}

func newDirectCodec(bits int) directCodec {
	return directCodec{bits: bits}
}

func (dc directCodec) Encode(e *rangeEncoder, sym uint32) error {
	for i := dc.bits - 1; i >= 0; i-- {
		if err := e.DirectEncodeBit((sym >> uint(i)) & 1); err != nil {
			return err
		}
	}
	return nil
}

func (dc directCodec) Decode(d *rangeDecoder) (sym uint32, err error) {
	for i := 0; i < dc.bits; i++ {
		b, err := d.DirectDecodeBit()
		if err != nil {
			return 0, err
		}
		sym = (sym << 1) | b
	}
	return sym, nil
}
