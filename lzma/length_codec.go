// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

const (
	maxPosBitsLen = 4
	minMatchLen   = 2
	maxMatchLen   = 2 + 16 + 256 - 1
)

// lengthCodec encodes match lengths 2..273: a 2-bit choice selects one
// of the low (2..9), mid (10..17) or high (18..273) trees, the low/mid
// trees are indexed by the current posState.
type lengthCodec struct {
	choice [2]prob
	low    [1 << maxPosBitsLen]treeCodec
	mid    [1 << maxPosBitsLen]treeCodec
	high   treeCodec
}

func newLengthCodec() lengthCodec {
	lc := lengthCodec{high: makeTreeCodec(8)}
	lc.choice[0] = probInit
	lc.choice[1] = probInit
	for i := range lc.low {
		lc.low[i] = makeTreeCodec(3)
		lc.mid[i] = makeTreeCodec(3)
	}
	return lc
}

func (lc *lengthCodec) Encode(e *rangeEncoder, l uint32, posState uint32) error {
	l -= minMatchLen
	if l < 8 {
		if err := e.EncodeBit(0, &lc.choice[0]); err != nil {
			return err
		}
		return lc.low[posState].Encode(e, l)
	}
	l -= 8
	if err := e.EncodeBit(1, &lc.choice[0]); err != nil {
		return err
	}
	if l < 8 {
		if err := e.EncodeBit(0, &lc.choice[1]); err != nil {
			return err
		}
		return lc.mid[posState].Encode(e, l)
	}
	l -= 8
	if err := e.EncodeBit(1, &lc.choice[1]); err != nil {
		return err
	}
	return lc.high.Encode(e, l)
}

func (lc *lengthCodec) Decode(d *rangeDecoder, posState uint32) (l uint32, err error) {
	b, err := d.DecodeBit(&lc.choice[0])
	if err != nil {
		return 0, err
	}
	if b == 0 {
		l, err = lc.low[posState].Decode(d)
		if err != nil {
			return 0, err
		}
		return l + minMatchLen, nil
	}
	b, err = d.DecodeBit(&lc.choice[1])
	if err != nil {
		return 0, err
	}
	if b == 0 {
		l, err = lc.mid[posState].Decode(d)
		if err != nil {
			return 0, err
		}
		return l + minMatchLen + 8, nil
	}
	l, err = lc.high.Decode(d)
	if err != nil {
		return 0, err
	}
	return l + minMatchLen + 16, nil
}
