// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bufio"
	"io"
)

// Reader decodes a raw (headered) LZMA stream, the ".lzma" classic
// format: a 13-byte header followed directly by the range-coded symbol
// stream.
type Reader struct {
	cfg ReaderConfig
	dec *RawDecoder

	unpackSize      int64
	unpackSizeKnown bool
	eos             bool
	err             error
}

// NewReader opens a Reader with default options.
func NewReader(z io.Reader) (*Reader, error) {
	return NewReaderConfig(z, ReaderConfig{})
}

// NewReaderConfig opens a Reader with explicit options.
func NewReaderConfig(z io.Reader, cfg ReaderConfig) (*Reader, error) {
	cfg.ApplyDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	br := bufio.NewReader(z)
	h, err := readHeader(br, cfg.UnpackSize != UnpackSizeProvided)
	if err != nil {
		return nil, err
	}

	dictCap := h.dictCap
	if int64(cfg.DictCap) > dictCap {
		dictCap = int64(cfg.DictCap)
	}
	if dictCap > cfg.MemLimit {
		return nil, newError("dictionary capacity exceeds MemLimit")
	}

	var unpackSizeKnown bool
	var unpackSize int64
	switch cfg.UnpackSize {
	case UnpackSizeFromHeader:
		unpackSizeKnown, unpackSize = h.unpackSizeKnown, h.unpackSize
	case UnpackSizeFromHeaderOrProvided:
		unpackSizeKnown, unpackSize = h.unpackSizeKnown, h.unpackSize
		if cfg.UnpackSizeValue != nil {
			unpackSizeKnown, unpackSize = true, *cfg.UnpackSizeValue
		}
	case UnpackSizeProvided:
		if cfg.UnpackSizeValue != nil {
			unpackSizeKnown, unpackSize = true, *cfg.UnpackSizeValue
		}
	}

	st := NewState(h.props)
	// With a declared size that fits the window, accumulate the whole
	// output instead of cycling a ring; otherwise stream through the
	// circular dictionary.
	var dict LZBuffer
	if unpackSizeKnown && unpackSize <= dictCap {
		dict = NewAccumBuffer(unpackSize)
	} else {
		dict = NewDecoderDict(dictCap)
	}
	rd, err := newRangeDecoder(br)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = newError("stream too short")
		}
		return nil, err
	}
	return &Reader{
		cfg:             cfg,
		dec:             NewRawDecoder(rd, st, dict),
		unpackSize:      unpackSize,
		unpackSizeKnown: unpackSizeKnown,
	}, nil
}

// Read implements io.Reader, decoding symbols on demand until p is
// filled, the end-of-stream marker is seen, or the declared unpacked
// size has been produced.
func (r *Reader) Read(p []byte) (n int, err error) {
	for {
		if r.dec.Dict.Available() > 0 {
			m, _ := r.dec.Dict.Read(p[n:])
			n += m
			if n == len(p) {
				return n, nil
			}
		}
		if r.err != nil {
			if n > 0 {
				return n, nil
			}
			return n, r.err
		}
		if r.eos {
			if n > 0 {
				return n, nil
			}
			return n, io.EOF
		}
		if r.unpackSizeKnown && r.dec.Dict.Total() >= r.unpackSize {
			r.eos = true
			continue
		}
		eos, derr := r.dec.DecodeSymbol()
		if derr != nil {
			if derr == io.EOF && r.cfg.AllowIncomplete {
				r.eos = true
				continue
			}
			if derr == io.EOF {
				derr = ErrNoEOS
			}
			r.err = derr
			if n > 0 {
				return n, nil
			}
			return n, derr
		}
		if eos {
			// The encoder flushes the range coder after the marker, so
			// a valid stream leaves code at exactly zero here.
			if !r.dec.rd.possiblyAtEnd() {
				r.err = ErrEncoding
				continue
			}
			r.eos = true
		}
	}
}
