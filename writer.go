// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xz

import (
	"bytes"
	"errors"
	"io"

	"github.com/gocompress/xzcore/lzma2"
)

// WriterConfig collects the xz stream writer's options. CheckSum's
// zero value selects the CRC-64 default; NoCheckSum overrides it to
// write a stream without any block integrity check, since the "none"
// check shares its wire value with the zero byte.
type WriterConfig struct {
	DictCap    int
	CheckSum   byte
	NoCheckSum bool
}

func (c *WriterConfig) ApplyDefaults() {
	if c.DictCap == 0 {
		c.DictCap = 1 << 24
	}
	if c.CheckSum == 0 {
		c.CheckSum = checkCRC64
	}
	if c.NoCheckSum {
		c.CheckSum = checkNone
	}
}

func (c *WriterConfig) Verify() error {
	if c.DictCap < 0 {
		return errors.New("xz: DictCap must not be negative")
	}
	if !validCheckType(c.CheckSum) {
		return errors.New("xz: invalid checksum type")
	}
	return nil
}

// Writer encodes a single-stream xz file: the stream header, one block
// per Write call's worth of data (the simplest possible block layout,
// matching the "dumb" LZMA2 encoder this module builds on), the index
// and the stream footer.
type Writer struct {
	cfg     WriterConfig
	w       io.Writer
	records []blockRecord
	closed  bool

	blockBuf bytes.Buffer
	blockW   *lzma2.Writer
	check    *blockCheck
	uncSize  int64
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
	if err := writeStreamHeader(z, cfg.CheckSum); err != nil {
		return nil, err
	}
	return &Writer{cfg: cfg, w: z}, nil
}

// Write encodes p as a single new xz block. Calling Write more than
// once produces a multi-block stream, one block per call.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.closed {
		return 0, errors.New("xz: write to closed writer")
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := w.openBlock(); err != nil {
		return 0, err
	}
	n, err = w.blockW.Write(p)
	w.uncSize += int64(n)
	if err != nil {
		return n, err
	}
	w.check.Write(p[:n])
	if err := w.closeBlock(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *Writer) openBlock() error {
	w.blockBuf.Reset()
	bw, err := lzma2.NewWriter(&w.blockBuf, w.cfg.DictCap)
	if err != nil {
		return err
	}
	w.blockW = bw
	c, err := newBlockCheck(w.cfg.CheckSum)
	if err != nil {
		return err
	}
	w.check = c
	w.uncSize = 0
	return nil
}

func (w *Writer) closeBlock() error {
	if err := w.blockW.Close(); err != nil {
		return err
	}
	compData := w.blockBuf.Bytes()

	bs := blockSpec{
		packedSize:   int64(len(compData)),
		unpackedSize: w.uncSize,
		dictCap:      int64(w.cfg.DictCap),
	}
	hdata, err := bs.append(nil)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(hdata); err != nil {
		return err
	}
	if _, err := w.w.Write(compData); err != nil {
		return err
	}

	total := int64(len(hdata)) + int64(len(compData))
	if pad := (4 - total%4) % 4; pad > 0 {
		if _, err := w.w.Write(make([]byte, pad)); err != nil {
			return err
		}
	}

	sum := w.check.field()
	if len(sum) > 0 {
		if _, err := w.w.Write(sum); err != nil {
			return err
		}
	}

	w.records = append(w.records, blockRecord{
		unpadded:     total + int64(len(sum)),
		uncompressed: w.uncSize,
	})
	w.blockW = nil
	return nil
}

// Close finishes the xz stream: the index and the stream footer.
func (w *Writer) Close() error {
	if w.closed {
		return errors.New("xz: stream already closed")
	}
	w.closed = true

	index := appendIndex(nil, w.records)
	if _, err := w.w.Write(index); err != nil {
		return err
	}
	return writeStreamFooter(w.w, int64(len(index)), w.cfg.CheckSum)
}
