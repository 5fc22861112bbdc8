// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xz

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

// blockRecord is one index entry: a block's unpadded size (header,
// packed data and check field, without the alignment padding) and its
// uncompressed size.
type blockRecord struct {
	unpadded     int64
	uncompressed int64
}

// appendIndex appends the complete index to p: the zero indicator
// byte, the record count, the records, alignment padding and a CRC32
// over all of it.
func appendIndex(p []byte, recs []blockRecord) []byte {
	start := len(p)
	p = append(p, 0)
	p = appendUvarint(p, uint64(len(recs)))
	for _, rec := range recs {
		p = appendUvarint(p, uint64(rec.unpadded))
		p = appendUvarint(p, uint64(rec.uncompressed))
	}
	for (len(p)-start)%4 != 0 {
		p = append(p, 0)
	}
	var sum [4]byte
	binary.LittleEndian.PutUint32(sum[:], crc32.ChecksumIEEE(p[start:]))
	return append(p, sum[:]...)
}

// indexReader hands out one byte at a time while keeping every byte it
// has produced, so the CRC32 at the end of the index can be verified
// over the exact bytes parsed.
type indexReader struct {
	r   io.Reader
	raw []byte
}

func (ir *indexReader) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(ir.r, b[:]); err != nil {
		return 0, err
	}
	ir.raw = append(ir.raw, b[0])
	return b[0], nil
}

// readIndex parses the index, assuming the zero indicator byte has
// already been consumed. It returns the records and the index's total
// length, indicator and CRC included.
func readIndex(r io.Reader) (recs []blockRecord, size int64, err error) {
	ir := &indexReader{r: r, raw: []byte{0}}

	count, _, err := readUvarint(ir)
	if err != nil {
		return nil, 0, err
	}
	if count > 1<<32 {
		return nil, 0, errors.New("xz: too many index records")
	}
	for i := uint64(0); i < count; i++ {
		var rec blockRecord
		if rec.unpadded, err = readVarSize(ir); err != nil {
			return recs, 0, err
		}
		if rec.uncompressed, err = readVarSize(ir); err != nil {
			return recs, 0, err
		}
		recs = append(recs, rec)
	}
	for len(ir.raw)%4 != 0 {
		c, err := ir.ReadByte()
		if err != nil {
			return recs, 0, err
		}
		if c != 0 {
			return recs, 0, errors.New("xz: non-zero byte in index padding")
		}
	}
	var sum [4]byte
	if _, err = io.ReadFull(r, sum[:]); err != nil {
		return recs, 0, err
	}
	if binary.LittleEndian.Uint32(sum[:]) != crc32.ChecksumIEEE(ir.raw) {
		return recs, 0, errors.New("xz: index checksum mismatch")
	}
	return recs, int64(len(ir.raw)) + 4, nil
}
