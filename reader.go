// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xz

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/gocompress/xzcore/lzma2"
)

// ReaderConfig collects the xz stream reader's options.
type ReaderConfig struct {
	DictCap  int
	MemLimit int64
}

const defaultMemLimit = 1 << 34

func (c *ReaderConfig) ApplyDefaults() {
	if c.MemLimit == 0 {
		c.MemLimit = defaultMemLimit
	}
}

func (c *ReaderConfig) Verify() error {
	if c.DictCap < 0 {
		return errors.New("xz: DictCap must not be negative")
	}
	if c.MemLimit < 0 {
		return errors.New("xz: MemLimit must not be negative")
	}
	return nil
}

// countingReader counts the bytes read through it, so the block reader
// can compute padding and index records from the actual compressed size
// even when the block header does not declare one.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (n int, err error) {
	n, err = c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Reader decodes a single-stream xz file: the stream header, one or
// more blocks (each an LZMA2 chunk stream behind an optional declared
// size and an integrity check), the index and the stream footer.
// Multi-stream concatenation and random access are out of this module's
// scope.
type Reader struct {
	cfg   ReaderConfig
	br    *bufio.Reader
	check byte

	curBlock io.Reader
	curSpec  blockSpec
	curCheck *blockCheck
	curCount *countingReader
	headerN  int
	outN     int64

	records []blockRecord

	done bool
	err  error
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
	check, err := readStreamHeader(br)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.New("xz: stream header too short")
		}
		return nil, err
	}
	return &Reader{cfg: cfg, br: br, check: check}, nil
}

func (r *Reader) Read(p []byte) (n int, err error) {
	for {
		if r.err != nil {
			return n, r.err
		}
		if r.done {
			return n, io.EOF
		}
		if r.curBlock == nil {
			if err := r.nextBlock(); err != nil {
				if err == errIndexMarker {
					if ferr := r.finishStream(); ferr != nil {
						r.err = ferr
						return n, ferr
					}
					r.done = true
					if n > 0 {
						return n, nil
					}
					return n, io.EOF
				}
				r.err = err
				return n, err
			}
		}
		m, berr := r.curBlock.Read(p[n:])
		n += m
		r.outN += int64(m)
		if berr != nil {
			if berr != io.EOF {
				r.err = berr
				return n, berr
			}
			if err := r.finishBlock(); err != nil {
				r.err = err
				return n, err
			}
			r.curBlock = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		if n == len(p) {
			return n, nil
		}
	}
}

// nextBlock reads the next block header and opens its LZMA2 payload.
// It passes errIndexMarker through when the index starts instead of
// another block.
func (r *Reader) nextBlock() error {
	bs, headerN, err := readBlockSpec(r.br)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}

	dictCap := bs.dictCap
	if int64(r.cfg.DictCap) > dictCap {
		dictCap = int64(r.cfg.DictCap)
	}
	if dictCap > r.cfg.MemLimit {
		return errors.New("xz: dictionary capacity exceeds MemLimit")
	}

	check, err := newBlockCheck(r.check)
	if err != nil {
		return err
	}

	// The packed size is optional in the block header; the LZMA2 chunk
	// stream terminates itself, and the counting reader tells us
	// afterwards how many payload bytes that took. A declared size only
	// adds a cap and a post-hoc equality check.
	cr := &countingReader{r: r.br}
	var src io.Reader = cr
	if bs.packedSize >= 0 {
		src = io.LimitReader(cr, bs.packedSize)
	}
	lzr, err := lzma2.NewReader(src, int(dictCap))
	if err != nil {
		return err
	}

	r.curSpec = bs
	r.curCheck = check
	r.curCount = cr
	r.curBlock = io.TeeReader(lzr, check)
	r.headerN = headerN
	r.outN = 0
	return nil
}

// finishBlock verifies the sizes the block header declared, consumes
// the block padding and verifies the integrity check that follows it.
func (r *Reader) finishBlock() error {
	if r.curSpec.packedSize >= 0 && r.curCount.n != r.curSpec.packedSize {
		return errors.New("xz: block packed size mismatch")
	}
	if r.curSpec.unpackedSize >= 0 && r.outN != r.curSpec.unpackedSize {
		return errors.New("xz: block unpacked size mismatch")
	}
	total := int64(r.headerN) + r.curCount.n
	if pad := (4 - total%4) % 4; pad > 0 {
		buf := make([]byte, pad)
		if _, err := io.ReadFull(r.br, buf); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		for _, c := range buf {
			if c != 0 {
				return errors.New("xz: non-zero byte in block padding")
			}
		}
	}
	if size := r.curCheck.size(); size > 0 {
		want := make([]byte, size)
		if _, err := io.ReadFull(r.br, want); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		if !bytes.Equal(want, r.curCheck.field()) {
			return errors.New("xz: block integrity check mismatch")
		}
	}
	r.records = append(r.records, blockRecord{
		unpadded:     total + int64(r.curCheck.size()),
		uncompressed: r.outN,
	})
	return nil
}

// finishStream reads the index and stream footer once every block has
// been consumed, and verifies both against the blocks actually read.
// The index marker byte was already consumed by readBlockSpec.
func (r *Reader) finishStream() error {
	records, indexLen, err := readIndex(r.br)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if len(records) != len(r.records) {
		return errors.New("xz: index record count mismatch")
	}
	for i, rec := range records {
		if rec != r.records[i] {
			return errors.New("xz: index does not match block sizes")
		}
	}
	indexSize, check, err := readStreamFooter(r.br)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if check != r.check {
		return errors.New("xz: footer flags do not match header flags")
	}
	if indexSize != indexLen {
		return errors.New("xz: footer backward size does not match index")
	}
	return nil
}
