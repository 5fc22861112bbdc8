// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma2

import (
	"bytes"
	"io"

	"github.com/gocompress/xzcore/lzma"
)

// Reader decodes an LZMA2 chunk stream: a sequence of uncompressed and
// compressed chunks, each framed by its own control byte, sharing one
// dictionary and one LZMA probability state across chunks except where
// a chunk's control byte requests a reset. There is no classic 13-byte
// LZMA header here — LZMA2 carries its properties in the chunk stream
// itself (or, inside an XZ block, in the filter's properties byte).
//
// The Reader never consumes bytes beyond the end-of-stream chunk. All
// chunk framing fields are length-prefixed, so every read is exact;
// this matters to the xz package, which needs the underlying reader
// positioned at the block padding once the chunk stream ends.
type Reader struct {
	z         io.Reader
	dict      *lzma.DecoderDict
	dec       *lzma.RawDecoder
	props     lzma.Properties
	haveState bool
	haveProps bool

	// chunkRemaining counts undecoded bytes of the current compressed
	// chunk, rawRemaining uncopied bytes of the current uncompressed
	// chunk. At most one of the two is nonzero.
	chunkRemaining int
	rawRemaining   int
	eos            bool
	err            error
}

// NewReader opens an LZMA2 Reader. dictCap is the dictionary capacity to
// allocate; LZMA2 streams do not self-describe it, so the caller (the
// XZ block header's filter properties, or a direct caller of this
// package) must supply it.
func NewReader(z io.Reader, dictCap int) (*Reader, error) {
	return &Reader{
		z:    z,
		dict: lzma.NewDecoderDict(int64(dictCap)),
	}, nil
}

func (r *Reader) Read(p []byte) (n int, err error) {
	for {
		if r.dict.Available() > 0 {
			m, _ := r.dict.Read(p[n:])
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
		if err := r.advance(); err != nil {
			r.err = err
		}
	}
}

// advance makes progress on the current chunk, or parses the next
// chunk header once the current one is exhausted.
func (r *Reader) advance() error {
	switch {
	case r.rawRemaining > 0:
		return r.copyUncompressed()
	case r.chunkRemaining > 0:
		return r.decodeChunkByte()
	}
	h, err := readChunkHeader(r.z)
	if err != nil {
		if err == io.EOF {
			return ErrNoEOS
		}
		return err
	}
	if h.isEOS {
		r.eos = true
		return nil
	}
	if h.resetMode.resetsDict() {
		r.dict.Reset()
	}
	if !h.isCompressed {
		// An uncompressed chunk invalidates the LZMA probability state:
		// the next compressed chunk must carry at least a state reset.
		r.haveState = false
		r.rawRemaining = h.uncompressedSize
		return nil
	}
	return r.startCompressedChunk(h)
}

// copyUncompressed copies raw chunk bytes into the dictionary, stopping
// when the chunk or the dictionary's free space is exhausted; Read
// drains the dictionary before calling advance again.
func (r *Reader) copyUncompressed() error {
	room := int(r.dict.Cap() - r.dict.Available())
	if room > r.rawRemaining {
		room = r.rawRemaining
	}
	var buf [512]byte
	for room > 0 {
		k := room
		if k > len(buf) {
			k = len(buf)
		}
		if _, err := io.ReadFull(r.z, buf[:k]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		for _, b := range buf[:k] {
			if err := r.dict.WriteByte(b); err != nil {
				return err
			}
		}
		room -= k
		r.rawRemaining -= k
	}
	return nil
}

func (r *Reader) startCompressedChunk(h chunkHeader) error {
	if h.uncompressedSize > maxUncompressedChunkSize {
		return newError("chunk uncompressed size out of range")
	}
	if h.resetMode.newProps() {
		r.props = h.props
		r.haveProps = true
	}
	if !r.haveProps {
		return errNoProps
	}
	if h.resetMode.resetsState() {
		if r.dec == nil {
			r.dec = lzma.NewRawDecoder(nil, lzma.NewState(r.props), r.dict)
		} else {
			r.dec.ResetState(r.props)
		}
		r.haveState = true
	} else if !r.haveState {
		return errNoState
	}
	// The payload length is declared up front, so read it whole and
	// decode from memory. This keeps the underlying reader positioned
	// exactly at the next control byte no matter how much lookahead the
	// range coder's normalization needed.
	data := make([]byte, h.compressedSize)
	if _, err := io.ReadFull(r.z, data); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if err := r.dec.StartChunk(bytes.NewReader(data)); err != nil {
		return err
	}
	r.chunkRemaining = h.uncompressedSize
	return nil
}

// decodeChunkByte decodes exactly one LZMA operation against the
// current chunk's range coder.
func (r *Reader) decodeChunkByte() error {
	before := r.dict.Total()
	eos, err := r.dec.DecodeSymbol()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if eos {
		return newError("unexpected raw end-of-stream marker inside chunk")
	}
	produced := int(r.dict.Total() - before)
	r.chunkRemaining -= produced
	if r.chunkRemaining < 0 {
		return newError("chunk produced more bytes than its declared size")
	}
	if r.chunkRemaining == 0 && !r.dec.PossiblyAtEnd() {
		return newError("chunk range coder not at a valid end")
	}
	return nil
}
