// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"encoding/binary"
	"io"
)

// headerLen is the length in bytes of the classic ".lzma" file header:
// one properties byte, a 4-byte little-endian dictionary capacity and an
// 8-byte little-endian unpacked size (all-ones meaning "unknown, rely on
// the end-of-stream marker").
const headerLen = 1 + 4 + 8

const noHeaderSize uint64 = 1<<64 - 1

// header is the decoded form of the 13-byte classic LZMA header.
type header struct {
	props           Properties
	dictCap         int64
	unpackSize      int64
	unpackSizeKnown bool
}

// readHeader reads the classic header. withSize selects the full
// 13-byte form; without it only the properties byte and the 4-byte
// dictionary capacity are consumed, the form used when the caller
// supplies the unpacked size out of band.
func readHeader(r io.Reader, withSize bool) (h header, err error) {
	n := headerLen
	if !withSize {
		n = headerLen - 8
	}
	buf := make([]byte, n)
	if _, err = io.ReadFull(r, buf); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return header{}, ErrHeaderTooShort
		}
		return header{}, err
	}
	if err = verifyProperties(Properties(buf[0])); err != nil {
		return header{}, err
	}
	h.props = Properties(buf[0])
	dictCap := binary.LittleEndian.Uint32(buf[1:5])
	if int64(dictCap) < MinDictCap {
		h.dictCap = MinDictCap
	} else {
		h.dictCap = int64(dictCap)
	}
	if !withSize {
		return h, nil
	}
	u := binary.LittleEndian.Uint64(buf[5:13])
	if u == noHeaderSize {
		h.unpackSizeKnown = false
	} else {
		h.unpackSizeKnown = true
		h.unpackSize = int64(u)
	}
	return h, nil
}

func writeHeader(w io.Writer, h header) error {
	buf := make([]byte, headerLen)
	buf[0] = byte(h.props)
	binary.LittleEndian.PutUint32(buf[1:5], uint32(h.dictCap))
	if h.unpackSizeKnown {
		binary.LittleEndian.PutUint64(buf[5:13], uint64(h.unpackSize))
	} else {
		binary.LittleEndian.PutUint64(buf[5:13], noHeaderSize)
	}
	_, err := w.Write(buf)
	return err
}
