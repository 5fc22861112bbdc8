// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

const (
	minDistance   = 1
	maxDistance   = 1 << 32
	lenStates     = 4
	startPosModel = 4
	endPosModel   = 14
	posSlotBits   = 6
	alignBits     = 4
	maxPosSlot    = 63
)

// distCodec encodes or decodes the match distance: a 6-bit position-slot
// tree (indexed by length state) picks a magnitude bucket, whose low
// bits are then coded either by per-slot reverse trees (small buckets)
// or a shared 4-bit aligned reverse tree plus direct bits (large
// buckets).
type distCodec struct {
	posSlotCodecs [lenStates]treeCodec
	posModel      [endPosModel - startPosModel]treeReverseCodec
	alignCodec    treeReverseCodec
}

func newDistCodec() distCodec {
	dc := distCodec{alignCodec: makeTreeReverseCodec(alignBits)}
	for i := range dc.posSlotCodecs {
		dc.posSlotCodecs[i] = makeTreeCodec(posSlotBits)
	}
	for i := range dc.posModel {
		bits := (i>>1 + 2) - 1
		dc.posModel[i] = makeTreeReverseCodec(bits)
	}
	return dc
}

// lenState clamps a match length to the four length-state buckets used
// to select a position-slot tree.
func lenState(l uint32) uint32 {
	if l >= lenStates {
		return lenStates - 1
	}
	return l
}

func (dc *distCodec) Encode(e *rangeEncoder, dist uint32, l uint32) error {
	ls := lenState(l)
	posSlot := posSlotForDist(dist)
	if err := dc.posSlotCodecs[ls].Encode(e, posSlot); err != nil {
		return err
	}
	if posSlot < startPosModel {
		return nil
	}
	numDirectBits := uint((posSlot >> 1) - 1)
	base := (2 | (posSlot & 1)) << numDirectBits
	rest := dist - base
	if posSlot < endPosModel {
		return dc.posModel[posSlot-startPosModel].Encode(e, rest)
	}
	if err := newDirectCodec(int(numDirectBits)-alignBits).Encode(e, rest>>alignBits); err != nil {
		return err
	}
	return dc.alignCodec.Encode(e, rest&((1<<alignBits)-1))
}

func (dc *distCodec) Decode(d *rangeDecoder, l uint32) (dist uint32, err error) {
	ls := lenState(l)
	posSlot, err := dc.posSlotCodecs[ls].Decode(d)
	if err != nil {
		return 0, err
	}
	if posSlot < startPosModel {
		return posSlot, nil
	}
	numDirectBits := uint((posSlot >> 1) - 1)
	dist = (2 | (posSlot & 1)) << numDirectBits
	if posSlot < endPosModel {
		rest, err := dc.posModel[posSlot-startPosModel].Decode(d)
		if err != nil {
			return 0, err
		}
		return dist + rest, nil
	}
	hi, err := newDirectCodec(int(numDirectBits) - alignBits).Decode(d)
	if err != nil {
		return 0, err
	}
	dist += hi << alignBits
	lo, err := dc.alignCodec.Decode(d)
	if err != nil {
		return 0, err
	}
	return dist + lo, nil
}

// posSlotForDist returns the 6-bit bucket index for a full 32-bit
// distance, the inverse of the base computation used by Encode/Decode.
func posSlotForDist(dist uint32) uint32 {
	if dist < startPosModel {
		return dist
	}
	n := nlz32(dist)
	bit := uint32(31 - n)
	return (bit << 1) | ((dist >> (bit - 1)) & 1)
}

// nlz32 returns the number of leading zero bits of a nonzero uint32.
func nlz32(x uint32) uint32 {
	n := uint32(0)
	if x == 0 {
		return 32
	}
	for x&0x80000000 == 0 {
		x <<= 1
		n++
	}
	return n
}
