// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bufio"
	"io"
)

// Writer writes a raw (headered) LZMA stream using the dumb literal-only
// encoder: every byte is emitted as an LZMA literal operation, optionally
// followed by the end-of-stream marker if the unpacked size was not
// declared in the header.
type Writer struct {
	cfg WriterConfig
	bw  *bufio.Writer
	re  *rangeEncoder
	enc *encoder

	closed bool
}

// NewWriter opens a Writer with default options.
func NewWriter(z io.Writer) (*Writer, error) {
	return NewWriterConfig(z, WriterConfig{})
}

// NewWriterConfig opens a Writer with explicit options.
func NewWriterConfig(z io.Writer, cfg WriterConfig) (*Writer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(z)
	h := header{
		props:           cfg.Properties,
		dictCap:         int64(cfg.DictCap),
		unpackSizeKnown: cfg.SizeInHeader,
		unpackSize:      cfg.UnpackSize,
	}
	if err := writeHeader(bw, h); err != nil {
		return nil, err
	}
	st := NewState(cfg.Properties)
	re := newRangeEncoder(bw)
	return &Writer{cfg: cfg, bw: bw, re: re, enc: newEncoder(re, st)}, nil
}

// Write encodes every byte of p as an LZMA literal.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.closed {
		return 0, errClosed
	}
	for _, b := range p {
		if err := w.enc.encodeLiteral(b); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Close flushes the end-of-stream marker (when the unpacked size was
// not declared in the header) and the range coder's closing bytes.
func (w *Writer) Close() error {
	if w.closed {
		return errClosed
	}
	w.closed = true
	if !w.cfg.SizeInHeader {
		if err := w.enc.encodeEOS(); err != nil {
			return err
		}
	}
	if err := w.re.Close(); err != nil {
		return err
	}
	return w.bw.Flush()
}
