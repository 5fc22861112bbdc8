// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma2

import (
	"bytes"
	"io"

	"github.com/gocompress/xzcore/lzma"
)

// Writer emits an LZMA2 chunk stream. Each Write call is split into
// blocks no larger than maxRawChunkSize; each block is encoded
// through lzma.EncodeChunk's literal-only encoder and emitted as a
// compressed chunk, which resets dictionary, state and properties, when
// that encoding fits the 64KiB chunk-compressed-size limit, or as an
// uncompressed chunk otherwise (a block near the 64KiB limit whose
// literal-only encoding grows past it).
type Writer struct {
	w      io.Writer
	props  lzma.Properties
	first  bool
	closed bool
}

// NewWriter opens an LZMA2 Writer. dictCap is accepted for symmetry with
// NewReader and is not used: this module's dumb writer never emits
// back-references, so its output does not depend on it.
func NewWriter(z io.Writer, dictCap int) (*Writer, error) {
	props, err := lzma.NewProperties(3, 0, 2)
	if err != nil {
		return nil, err
	}
	return &Writer{w: z, props: props, first: true}, nil
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.closed {
		return 0, newError("writer is closed")
	}
	for len(p) > 0 {
		// Blocks are capped at the uncompressed chunk's 16-bit size
		// limit so the fallback framing below is always legal.
		size := len(p)
		if size > maxRawChunkSize {
			size = maxRawChunkSize
		}
		if err := w.writeBlock(p[:size]); err != nil {
			return n, err
		}
		n += size
		p = p[size:]
	}
	return n, nil
}

func (w *Writer) writeBlock(block []byte) error {
	resetDict := w.first
	w.first = false

	var buf bytes.Buffer
	if err := lzma.EncodeChunk(&buf, w.props, block); err != nil {
		return err
	}
	if buf.Len() > 0 && buf.Len() <= maxCompressedChunkSize {
		// EncodeChunk starts at position zero with a zero previous byte,
		// so the chunk resets the dictionary to give the decoder the
		// same literal contexts.
		h := chunkHeader{
			isCompressed:     true,
			uncompressedSize: len(block),
			compressedSize:   buf.Len(),
			resetMode:        resetStateNewPropsNewDict,
			props:            w.props,
		}
		if err := writeChunkHeader(w.w, h); err != nil {
			return err
		}
		_, err := w.w.Write(buf.Bytes())
		return err
	}

	h := chunkHeader{
		uncompressedSize: len(block),
		resetMode: func() resetMode {
			if resetDict {
				return resetStateNewPropsNewDict
			}
			return resetNone
		}(),
	}
	if err := writeChunkHeader(w.w, h); err != nil {
		return err
	}
	_, err := w.w.Write(block)
	return err
}

// Close writes the end-of-stream chunk.
func (w *Writer) Close() error {
	if w.closed {
		return newError("writer already closed")
	}
	w.closed = true
	return writeChunkHeader(w.w, chunkHeader{isEOS: true})
}
