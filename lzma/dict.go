// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// LZBuffer is the decoder's output buffer: it serves match
// back-references, queues decoded bytes for the consumer, and bounds
// how far back a distance may reach. Two implementations exist, the
// circular DecoderDict for bounded-memory streaming and the
// accumulating AccumBuffer for outputs whose size is known up front.
type LZBuffer interface {
	Total() int64
	Available() int64
	Cap() int64
	Reset()
	WriteByte(b byte) error
	Read(p []byte) (n int, err error)
	byteAt(dist int64) byte
	writeMatch(dist int64, length int) error
}

// DecoderDict is the sliding-window output buffer of the LZMA decoder:
// a ring buffer sized to the dictionary capacity that both serves match
// back-references (byteAt) and queues decoded bytes for the consumer
// (Read). Distances never reach further back than the capacity, so
// bytes the ring has overwritten are never needed again. Exported so
// the lzma2 chunk framing can share one dictionary across chunks and
// reset it only when a chunk's control byte asks for that.
type DecoderDict struct {
	buf []byte
	cap int64

	// w is the total number of bytes ever written; r is the total
	// number of bytes the caller has consumed via Read. Both are
	// monotonically increasing counters, not ring offsets.
	w, r int64
}

func NewDecoderDict(dictCap int64) *DecoderDict {
	if dictCap < MinDictCap {
		dictCap = MinDictCap
	}
	return &DecoderDict{
		buf: make([]byte, dictCap),
		cap: dictCap,
	}
}

// Reset clears the dictionary's history without reallocating, used by
// LZMA2 dictionary-reset chunks.
func (d *DecoderDict) Reset() {
	d.w, d.r = 0, 0
}

// Total returns the number of bytes decoded so far.
func (d *DecoderDict) Total() int64 { return d.w }

// byteAt returns the byte written dist bytes before the current write
// position (dist == 1 is the most recently written byte). Distances
// outside the window read as zero; writeMatch rejects them before any
// copy, this guard only keeps a corrupt matched-literal lookup from
// indexing outside the ring.
func (d *DecoderDict) byteAt(dist int64) byte {
	if !(0 < dist && dist <= d.w && dist <= d.cap) {
		return 0
	}
	return d.buf[(d.w-dist)%d.cap]
}

// WriteByte appends a single decoded byte. It reports errAgain if the
// caller has not drained enough of the ring buffer via Read to make
// room, which should never happen for a caller that drains between
// decode steps (the one place this module leaves for a streaming
// consumer that reads in smaller chunks than it decodes).
func (d *DecoderDict) WriteByte(b byte) error {
	if d.w-d.r >= d.cap {
		return errAgain
	}
	d.buf[d.w%d.cap] = b
	d.w++
	return nil
}

// writeMatch copies length bytes found dist bytes back, byte by byte so
// that overlapping matches (dist < length) replicate correctly.
func (d *DecoderDict) writeMatch(dist int64, length int) error {
	if dist < 1 || dist > d.cap || dist > d.w {
		return newError("distance out of range")
	}
	for i := 0; i < length; i++ {
		if err := d.WriteByte(d.byteAt(dist)); err != nil {
			return err
		}
	}
	return nil
}

// Read drains decoded bytes in FIFO order.
func (d *DecoderDict) Read(p []byte) (n int, err error) {
	for n < len(p) && d.r < d.w {
		p[n] = d.buf[d.r%d.cap]
		n++
		d.r++
	}
	return n, nil
}

// Available reports how many decoded bytes are queued for Read.
func (d *DecoderDict) Available() int64 { return d.w - d.r }

// Cap returns the dictionary's configured capacity.
func (d *DecoderDict) Cap() int64 { return d.cap }

// AccumBuffer is the accumulating output buffer: it keeps the whole
// decoded output in one growing slice, so back-references can reach
// any byte produced so far and nothing is ever overwritten. It is used
// when the unpacked size is declared and fits the dictionary window,
// where a ring buys nothing.
type AccumBuffer struct {
	buf []byte
	r   int64
}

// NewAccumBuffer returns an accumulating buffer preallocated for
// sizeHint bytes of output.
func NewAccumBuffer(sizeHint int64) *AccumBuffer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &AccumBuffer{buf: make([]byte, 0, sizeHint)}
}

func (b *AccumBuffer) Total() int64     { return int64(len(b.buf)) }
func (b *AccumBuffer) Available() int64 { return int64(len(b.buf)) - b.r }

// Cap reports the distance limit, which for an accumulating buffer is
// everything written so far.
func (b *AccumBuffer) Cap() int64 { return int64(len(b.buf)) }

func (b *AccumBuffer) Reset() {
	b.buf = b.buf[:0]
	b.r = 0
}

func (b *AccumBuffer) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

func (b *AccumBuffer) byteAt(dist int64) byte {
	if !(0 < dist && dist <= int64(len(b.buf))) {
		return 0
	}
	return b.buf[int64(len(b.buf))-dist]
}

func (b *AccumBuffer) writeMatch(dist int64, length int) error {
	if dist < 1 || dist > int64(len(b.buf)) {
		return newError("distance out of range")
	}
	for i := 0; i < length; i++ {
		b.buf = append(b.buf, b.buf[int64(len(b.buf))-dist])
	}
	return nil
}

func (b *AccumBuffer) Read(p []byte) (n int, err error) {
	n = copy(p, b.buf[b.r:])
	b.r += int64(n)
	return n, nil
}
