// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "io"

const topValue uint32 = 1 << 24

// rangeEncoder implements the LZMA arithmetic range encoder. Bits are
// emitted through EncodeBit/DirectEncodeBit and the final state is
// flushed with Close.
type rangeEncoder struct {
	w        io.ByteWriter
	nrange   uint32
	low      uint64
	cacheLen int64
	cache    byte
}

func newRangeEncoder(w io.ByteWriter) *rangeEncoder {
	return &rangeEncoder{
		w:        w,
		nrange:   0xFFFFFFFF,
		cacheLen: 1,
	}
}

func (e *rangeEncoder) DirectEncodeBit(b uint32) error {
	e.nrange >>= 1
	if b != 0 {
		e.low += uint64(e.nrange)
	}
	if err := e.normalize(); err != nil {
		return err
	}
	return nil
}

func (e *rangeEncoder) EncodeBit(b uint32, p *prob) error {
	bound := p.bound(e.nrange)
	if b == 0 {
		e.nrange = bound
		p.inc()
	} else {
		e.low += uint64(bound)
		e.nrange -= bound
		p.dec()
	}
	return e.normalize()
}

func (e *rangeEncoder) shiftLow() error {
	if uint32(e.low>>32) != 0 || e.low < 0xFF000000 {
		temp := e.cache
		for {
			if err := e.w.WriteByte(temp + byte(e.low>>32)); err != nil {
				return err
			}
			temp = 0xFF
			e.cacheLen--
			if e.cacheLen <= 0 {
				break
			}
		}
		e.cache = byte(e.low >> 24)
	}
	e.cacheLen++
	e.low = (e.low << 8) & 0xFFFFFFFF
	return nil
}

func (e *rangeEncoder) normalize() error {
	for e.nrange < topValue {
		e.nrange <<= 8
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the remaining state bytes of the encoder.
func (e *rangeEncoder) Close() error {
	for i := 0; i < 5; i++ {
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}

// rangeDecoder implements the matching arithmetic range decoder.
type rangeDecoder struct {
	r      io.ByteReader
	nrange uint32
	code   uint32
}

func newRangeDecoder(r io.ByteReader) (*rangeDecoder, error) {
	d := &rangeDecoder{r: r, nrange: 0xFFFFFFFF}
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if b != 0 {
		return nil, newError("newRangeDecoder: first byte not zero")
	}
	for i := 0; i < 4; i++ {
		if err = d.updateCode(); err != nil {
			return nil, err
		}
	}
	if d.code >= d.nrange {
		return nil, newError("newRangeDecoder: code >= range")
	}
	return d, nil
}

// possiblyAtEnd reports whether the decoder could be positioned exactly
// at a valid end of the range-coded stream.
func (d *rangeDecoder) possiblyAtEnd() bool {
	return d.code == 0
}

func (d *rangeDecoder) updateCode() error {
	b, err := d.r.ReadByte()
	if err != nil {
		return err
	}
	d.code = (d.code << 8) | uint32(b)
	return nil
}

func (d *rangeDecoder) normalize() error {
	for d.nrange < topValue {
		d.nrange <<= 8
		if err := d.updateCode(); err != nil {
			return err
		}
	}
	return nil
}

func (d *rangeDecoder) DirectDecodeBit() (uint32, error) {
	d.nrange >>= 1
	d.code -= d.nrange
	t := 0 - (d.code >> 31)
	d.code += d.nrange & t
	if err := d.normalize(); err != nil {
		return 0, err
	}
	return t + 1, nil
}

func (d *rangeDecoder) DecodeBit(p *prob) (uint32, error) {
	bound := p.bound(d.nrange)
	var b uint32
	if d.code < bound {
		d.nrange = bound
		p.inc()
		b = 0
	} else {
		d.code -= bound
		d.nrange -= bound
		p.dec()
		b = 1
	}
	if err := d.normalize(); err != nil {
		return 0, err
	}
	return b, nil
}
