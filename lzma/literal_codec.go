// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// literalCodec encodes or decodes a single literal byte through an
// 8-level bit tree, one tree per litState context. When the previous
// operation was a match (state >= 7), the tree additionally matches
// against the byte found at the first rep distance, falling back to the
// unmatched tree as soon as the candidate diverges from the actual bit.
type literalCodec struct {
	probs  []prob
	lc, lp int
}

func newLiteralCodec(lc, lp int) literalCodec {
	n := 0x300 << uint(lc+lp)
	return literalCodec{probs: initProbSlice(n), lc: lc, lp: lp}
}

func (lc *literalCodec) index(litState uint32) int {
	return 0x300 * int(litState)
}

func (lc *literalCodec) Encode(e *rangeEncoder, s byte, litState uint32, matchByte byte, matched bool) error {
	probs := lc.probs[lc.index(litState):]
	context := uint32(1)
	i := 7
	if matched {
		for ; i >= 0; i-- {
			matchBit := uint32(matchByte>>uint(i)) & 1
			bit := uint32(s>>uint(i)) & 1
			idx := 0x100 + (matchBit << 8) + context
			if err := e.EncodeBit(bit, &probs[idx]); err != nil {
				return err
			}
			context = (context << 1) | bit
			if matchBit != bit {
				i--
				break
			}
		}
	}
	for ; i >= 0; i-- {
		bit := uint32(s>>uint(i)) & 1
		if err := e.EncodeBit(bit, &probs[context]); err != nil {
			return err
		}
		context = (context << 1) | bit
	}
	return nil
}

func (lc *literalCodec) Decode(d *rangeDecoder, litState uint32, matchByte byte, matched bool) (s byte, err error) {
	probs := lc.probs[lc.index(litState):]
	symbol := uint32(1)
	if matched {
		mb := uint32(matchByte)
		for symbol < 0x100 {
			matchBit := (mb >> 7) & 1
			mb <<= 1
			idx := ((1 + matchBit) << 8) + symbol
			bit, err := d.DecodeBit(&probs[idx])
			if err != nil {
				return 0, err
			}
			symbol = (symbol << 1) | bit
			if matchBit != bit {
				break
			}
		}
	}
	for symbol < 0x100 {
		bit, err := d.DecodeBit(&probs[symbol])
		if err != nil {
			return 0, err
		}
		symbol = (symbol << 1) | bit
	}
	return byte(symbol), nil
}
