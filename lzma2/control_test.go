// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma2

import (
	"bytes"
	"testing"

	"github.com/gocompress/xzcore/lzma"
)

func TestChunkHeaderEOS(t *testing.T) {
	var buf bytes.Buffer
	if err := writeChunkHeader(&buf, chunkHeader{isEOS: true}); err != nil {
		t.Fatalf("writeChunkHeader error %s", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x00}) {
		t.Fatalf("marshaled EOS = % x; want 00", buf.Bytes())
	}
	h, err := readChunkHeader(&buf)
	if err != nil {
		t.Fatalf("readChunkHeader error %s", err)
	}
	if !h.isEOS {
		t.Fatalf("isEOS = false; want true")
	}
}

func TestChunkHeaderUncompressedRoundtrip(t *testing.T) {
	want := chunkHeader{uncompressedSize: 16, resetMode: resetStateNewPropsNewDict}
	var buf bytes.Buffer
	if err := writeChunkHeader(&buf, want); err != nil {
		t.Fatalf("writeChunkHeader error %s", err)
	}
	if buf.Bytes()[0] != ctrlUncompressedReset {
		t.Fatalf("control byte = %#x; want %#x", buf.Bytes()[0], ctrlUncompressedReset)
	}
	got, err := readChunkHeader(&buf)
	if err != nil {
		t.Fatalf("readChunkHeader error %s", err)
	}
	if got.uncompressedSize != want.uncompressedSize {
		t.Fatalf("uncompressedSize = %d; want %d", got.uncompressedSize, want.uncompressedSize)
	}
	if !got.resetMode.resetsDict() {
		t.Fatalf("resetsDict() = false; want true")
	}
}

func TestChunkHeaderCompressedRoundtrip(t *testing.T) {
	props, err := lzma.NewProperties(3, 0, 2)
	if err != nil {
		t.Fatalf("NewProperties error %s", err)
	}
	want := chunkHeader{
		uncompressedSize: 1 << 17,
		compressedSize:   1234,
		resetMode:        resetStateNewProps,
		props:            props,
		isCompressed:     true,
	}
	var buf bytes.Buffer
	if err := writeChunkHeader(&buf, want); err != nil {
		t.Fatalf("writeChunkHeader error %s", err)
	}
	got, err := readChunkHeader(&buf)
	if err != nil {
		t.Fatalf("readChunkHeader error %s", err)
	}
	if got.uncompressedSize != want.uncompressedSize {
		t.Fatalf("uncompressedSize = %d; want %d", got.uncompressedSize, want.uncompressedSize)
	}
	if got.compressedSize != want.compressedSize {
		t.Fatalf("compressedSize = %d; want %d", got.compressedSize, want.compressedSize)
	}
	if got.props != want.props {
		t.Fatalf("props = %v; want %v", got.props, want.props)
	}
	if !got.resetMode.newProps() {
		t.Fatalf("newProps() = false; want true")
	}
}

func TestChunkHeaderInvalidControl(t *testing.T) {
	buf := bytes.NewReader([]byte{0x03})
	if _, err := readChunkHeader(buf); err != ErrInvalidControl {
		t.Fatalf("readChunkHeader error = %v; want %v", err, ErrInvalidControl)
	}
}
