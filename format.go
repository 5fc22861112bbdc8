// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/gocompress/xzcore/lzma2"
)

// This file covers the container framing of the .xz format: the
// base-128 numbers most structures are built from, the stream header
// and footer, and the block header with its single supported filter
// entry. The index that sits between the last block and the footer
// lives in index.go.

// Check types selectable by the stream flags.
const (
	checkNone   byte = 0x00
	checkCRC32  byte = 0x01
	checkCRC64  byte = 0x04
	checkSHA256 byte = 0x0A
)

func validCheckType(c byte) bool {
	switch c {
	case checkNone, checkCRC32, checkCRC64, checkSHA256:
		return true
	}
	return false
}

var (
	headerMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}
	footerMagic = []byte{'Y', 'Z'}
)

const (
	streamHeaderLen = 12
	streamFooterLen = 12
)

// appendUvarint appends the base-128 little-endian encoding of x to p,
// with the continuation bit in the top bit of every byte but the last.
func appendUvarint(p []byte, x uint64) []byte {
	for x >= 0x80 {
		p = append(p, byte(x)|0x80)
		x >>= 7
	}
	return append(p, byte(x))
}

const maxUvarintLen = 10

var (
	errNumOverflow = errors.New("xz: number exceeds 64 bits")
	errNumPadding  = errors.New("xz: number ends in a padding zero byte")
)

// readUvarint decodes a base-128 number, reporting how many bytes it
// consumed. Encodings that overflow 64 bits or waste a trailing zero
// continuation byte are rejected.
func readUvarint(r io.ByteReader) (x uint64, n int, err error) {
	for shift := uint(0); ; shift += 7 {
		b, err := r.ReadByte()
		if err != nil {
			return x, n, err
		}
		n++
		if n == maxUvarintLen {
			switch {
			case b > 1:
				return x, n, errNumOverflow
			case b == 0:
				return x, n, errNumPadding
			}
			return x | uint64(b)<<shift, n, nil
		}
		x |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			if b == 0 && n > 1 {
				return x, n, errNumPadding
			}
			return x, n, nil
		}
	}
}

// readVarSize reads a base-128 number constrained to the non-negative
// int64 range, the form every size field in the format uses.
func readVarSize(r io.ByteReader) (int64, error) {
	u, _, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	if u >= 1<<63 {
		return 0, errors.New("xz: size field overflow")
	}
	return int64(u), nil
}

// parseStreamFlags validates the two stream-flags bytes shared by the
// header and footer and returns the check type they select.
func parseStreamFlags(p []byte) (check byte, err error) {
	if p[0] != 0 || !validCheckType(p[1]) {
		return 0, fmt.Errorf("xz: invalid stream flags %#02x %#02x", p[0], p[1])
	}
	return p[1], nil
}

// readStreamHeader consumes the 12-byte stream header and returns the
// check type the stream's blocks use.
func readStreamHeader(r io.Reader) (check byte, err error) {
	var buf [streamHeaderLen]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	if !bytes.Equal(buf[:6], headerMagic) {
		return 0, errors.New("xz: no stream header magic")
	}
	if crc32.ChecksumIEEE(buf[6:8]) != binary.LittleEndian.Uint32(buf[8:]) {
		return 0, errors.New("xz: stream header checksum mismatch")
	}
	return parseStreamFlags(buf[6:8])
}

func writeStreamHeader(w io.Writer, check byte) error {
	if !validCheckType(check) {
		return fmt.Errorf("xz: unsupported check type %#02x", check)
	}
	var buf [streamHeaderLen]byte
	copy(buf[:], headerMagic)
	buf[7] = check
	binary.LittleEndian.PutUint32(buf[8:], crc32.ChecksumIEEE(buf[6:8]))
	_, err := w.Write(buf[:])
	return err
}

// readStreamFooter consumes the 12-byte stream footer, returning the
// index length its backward-size field encodes and the repeated check
// type, both of which the caller compares against what it actually
// read.
func readStreamFooter(r io.Reader) (indexSize int64, check byte, err error) {
	var buf [streamFooterLen]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return 0, 0, err
	}
	if !bytes.Equal(buf[10:], footerMagic) {
		return 0, 0, errors.New("xz: no stream footer magic")
	}
	if crc32.ChecksumIEEE(buf[4:10]) != binary.LittleEndian.Uint32(buf[:4]) {
		return 0, 0, errors.New("xz: stream footer checksum mismatch")
	}
	if check, err = parseStreamFlags(buf[8:10]); err != nil {
		return 0, 0, err
	}
	indexSize = (int64(binary.LittleEndian.Uint32(buf[4:8])) + 1) * 4
	return indexSize, check, nil
}

func writeStreamFooter(w io.Writer, indexSize int64, check byte) error {
	if indexSize < 4 || indexSize%4 != 0 || indexSize/4-1 > 1<<32-1 {
		return errors.New("xz: backward size out of range")
	}
	var buf [streamFooterLen]byte
	binary.LittleEndian.PutUint32(buf[4:], uint32(indexSize/4-1))
	buf[9] = check
	copy(buf[10:], footerMagic)
	binary.LittleEndian.PutUint32(buf[:4], crc32.ChecksumIEEE(buf[4:10]))
	_, err := w.Write(buf[:])
	return err
}

// Block header flags: the low two bits count filters minus one, the
// top two flag the optional size fields, everything between must be
// zero.
const (
	blockPackedSizeFlag   = 0x40
	blockUnpackedSizeFlag = 0x80
	blockReservedFlags    = 0x3C
)

const lzma2FilterID = 0x21

// errIndexMarker reports the zero byte that introduces the index where
// a block header was expected.
var errIndexMarker = errors.New("xz: index marker")

// blockSpec carries what one block header declares: the optional
// packed and unpacked sizes (-1 when absent) and the LZMA2 dictionary
// capacity from the block's filter entry. The format allows chains of
// up to four filters, but this module reads and writes only the
// single-filter LZMA2 layout, so the chain never needs modeling.
type blockSpec struct {
	packedSize   int64
	unpackedSize int64
	dictCap      int64
}

// readBlockSpec parses one block header including its trailing CRC32
// and returns the header's total length. A zero first byte is the
// index marker, reported as errIndexMarker with the byte consumed.
func readBlockSpec(r io.Reader) (bs blockSpec, n int, err error) {
	var first [1]byte
	if _, err = io.ReadFull(r, first[:]); err != nil {
		return bs, 0, err
	}
	if first[0] == 0 {
		return bs, 1, errIndexMarker
	}
	n = (int(first[0]) + 1) * 4
	buf := make([]byte, n)
	buf[0] = first[0]
	if _, err = io.ReadFull(r, buf[1:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return bs, n, err
	}
	body, sum := buf[:n-4], buf[n-4:]
	if crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(sum) {
		return bs, n, errors.New("xz: block header checksum mismatch")
	}

	flags := body[1]
	if flags&blockReservedFlags != 0 {
		return bs, n, errors.New("xz: reserved block header flags set")
	}
	if flags&0x03 != 0 {
		return bs, n, errors.New("xz: only single-filter blocks are supported")
	}

	br := bytes.NewReader(body[2:])
	bs.packedSize, bs.unpackedSize = -1, -1
	if flags&blockPackedSizeFlag != 0 {
		if bs.packedSize, err = readVarSize(br); err != nil {
			return bs, n, err
		}
	}
	if flags&blockUnpackedSizeFlag != 0 {
		if bs.unpackedSize, err = readVarSize(br); err != nil {
			return bs, n, err
		}
	}
	if bs.dictCap, err = readFilterEntry(br); err != nil {
		return bs, n, err
	}
	// Whatever remains of the body may only be alignment padding.
	for br.Len() > 0 {
		c, _ := br.ReadByte()
		if c != 0 {
			return bs, n, errors.New("xz: non-zero byte in block header padding")
		}
	}
	return bs, n, nil
}

// readFilterEntry parses the one filter entry this module supports:
// the LZMA2 id, a one-byte properties field and the dictionary
// capacity that byte encodes.
func readFilterEntry(r *bytes.Reader) (dictCap int64, err error) {
	id, _, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	if id != lzma2FilterID {
		return 0, fmt.Errorf("xz: unsupported filter id %#x", id)
	}
	propsLen, _, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	if propsLen != 1 {
		return 0, errors.New("xz: wrong LZMA2 properties length")
	}
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if dictCap, err = lzma2.DecodeDictCap(b); err != nil {
		return 0, errors.New("xz: invalid LZMA2 dictionary capacity byte")
	}
	return dictCap, nil
}

// append marshals the block header onto p: size byte, flags, optional
// sizes, the LZMA2 filter entry, alignment padding and CRC32. The size
// byte and flags are fixed up once the body length is known.
func (bs blockSpec) append(p []byte) ([]byte, error) {
	start := len(p)
	p = append(p, 0, 0)
	var flags byte
	if bs.packedSize >= 0 {
		flags |= blockPackedSizeFlag
		p = appendUvarint(p, uint64(bs.packedSize))
	}
	if bs.unpackedSize >= 0 {
		flags |= blockUnpackedSizeFlag
		p = appendUvarint(p, uint64(bs.unpackedSize))
	}
	p = append(p, lzma2FilterID, 1, lzma2.EncodeDictCap(bs.dictCap))
	for (len(p)-start)%4 != 0 {
		p = append(p, 0)
	}
	size := len(p) - start + 4
	if size > 4*256 {
		return nil, errors.New("xz: block header too large")
	}
	p[start] = byte(size/4 - 1)
	p[start+1] = flags
	var sum [4]byte
	binary.LittleEndian.PutUint32(sum[:], crc32.ChecksumIEEE(p[start:]))
	return append(p, sum[:]...), nil
}
