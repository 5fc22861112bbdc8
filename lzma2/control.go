// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma2

import (
	"encoding/binary"
	"io"

	"github.com/gocompress/xzcore/lzma"
)

// LZMA2 control-byte layout:
//
//	0x00        end of stream
//	0x01        uncompressed chunk, dictionary reset
//	0x02        uncompressed chunk, no reset
//	0x80 | rest compressed chunk; bits 6-5 of rest select the reset mode,
//	            bits 4-0 are the top 5 bits of (uncompressed size - 1)
const (
	ctrlEOS               = 0x00
	ctrlUncompressedReset = 0x01
	ctrlUncompressedKeep  = 0x02
	ctrlCompressedMin     = 0x80
)

// resetMode is the 2-bit field of a compressed chunk's control byte.
type resetMode byte

const (
	resetNone resetMode = iota
	resetState
	resetStateNewProps
	resetStateNewPropsNewDict
)

func (m resetMode) resetsState() bool { return m >= resetState }
func (m resetMode) newProps() bool    { return m >= resetStateNewProps }
func (m resetMode) resetsDict() bool  { return m == resetStateNewPropsNewDict }

const (
	// A compressed chunk's unpacked size carries 21 bits, its packed
	// size 16; an uncompressed chunk's size field is 16 bits.
	maxUncompressedChunkSize = 1 << 21
	maxCompressedChunkSize   = 1 << 16
	maxRawChunkSize          = 1 << 16
)

// chunkHeader is the parsed form of one LZMA2 chunk's framing, not
// including its payload bytes.
type chunkHeader struct {
	control          byte
	uncompressedSize int
	compressedSize   int
	props            lzma.Properties
	resetMode        resetMode
	isCompressed     bool
	isEOS            bool
}

func readChunkHeader(r io.Reader) (chunkHeader, error) {
	var ctrl [1]byte
	if _, err := io.ReadFull(r, ctrl[:]); err != nil {
		return chunkHeader{}, err
	}
	c := ctrl[0]
	switch {
	case c == ctrlEOS:
		return chunkHeader{control: c, isEOS: true}, nil
	case c == ctrlUncompressedReset || c == ctrlUncompressedKeep:
		var sz [2]byte
		if _, err := io.ReadFull(r, sz[:]); err != nil {
			return chunkHeader{}, err
		}
		size := int(binary.BigEndian.Uint16(sz[:])) + 1
		h := chunkHeader{control: c, uncompressedSize: size}
		if c == ctrlUncompressedReset {
			h.resetMode = resetStateNewPropsNewDict
		}
		return h, nil
	case c >= ctrlCompressedMin:
		var rest [4]byte
		if _, err := io.ReadFull(r, rest[:]); err != nil {
			return chunkHeader{}, err
		}
		mode := resetMode((c >> 5) & 0x3)
		uSize := (int(c&0x1F) << 16) | (int(rest[0]) << 8) | int(rest[1])
		uSize++
		cSize := (int(rest[2]) << 8) | int(rest[3])
		cSize++
		h := chunkHeader{
			control:          c,
			uncompressedSize: uSize,
			compressedSize:   cSize,
			resetMode:        mode,
			isCompressed:     true,
		}
		if mode.newProps() {
			var pb [1]byte
			if _, err := io.ReadFull(r, pb[:]); err != nil {
				return chunkHeader{}, err
			}
			if pb[0] > lzma.MaxProperties {
				return chunkHeader{}, newError("invalid properties byte")
			}
			h.props = lzma.Properties(pb[0])
		}
		return h, nil
	default:
		return chunkHeader{}, ErrInvalidControl
	}
}

// writeChunkHeader marshals h and writes it to w.
func writeChunkHeader(w io.Writer, h chunkHeader) error {
	if h.isEOS {
		_, err := w.Write([]byte{ctrlEOS})
		return err
	}
	if !h.isCompressed {
		ctrl := byte(ctrlUncompressedKeep)
		if h.resetMode.resetsDict() {
			ctrl = ctrlUncompressedReset
		}
		size := h.uncompressedSize - 1
		buf := []byte{ctrl, byte(size >> 8), byte(size)}
		_, err := w.Write(buf)
		return err
	}
	uSize := h.uncompressedSize - 1
	cSize := h.compressedSize - 1
	ctrl := ctrlCompressedMin | byte(h.resetMode)<<5 | byte(uSize>>16)&0x1F
	buf := []byte{
		ctrl,
		byte(uSize >> 8), byte(uSize),
		byte(cSize >> 8), byte(cSize),
	}
	if h.resetMode.newProps() {
		buf = append(buf, byte(h.props))
	}
	_, err := w.Write(buf)
	return err
}
