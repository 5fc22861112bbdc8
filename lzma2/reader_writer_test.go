// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma2

import (
	"bytes"
	"io"
	"testing"

	"pgregory.net/rapid"
)

func roundtrip(t *testing.T, p []byte) {
	t.Helper()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, 1<<20)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	if _, err := w.Write(p); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}

	r, err := NewReader(&buf, 1<<20)
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll error %s", err)
	}
	if !bytes.Equal(got, p) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(p))
	}
}

func TestRoundtripEmpty(t *testing.T) {
	roundtrip(t, nil)
}

func TestRoundtripRapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 1<<18).Draw(rt, "n").(int)
		p := rapid.SliceOfN(rapid.Uint8(), n, n).Draw(rt, "data").([]byte)
		roundtrip(t, p)
	})
}

// TestUncompressedChunkLiteral decodes one hand-built 0x01-class
// uncompressed chunk carrying 16 literal bytes, followed by the
// end-of-stream control byte.
func TestUncompressedChunkLiteral(t *testing.T) {
	want := make([]byte, 16)
	for i := range want {
		want[i] = byte(i)
	}
	stream := append([]byte{0x01, 0x00, 0x0F}, want...)
	stream = append(stream, 0x00)

	r, err := NewReader(bytes.NewReader(stream), 1<<16)
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll error %s", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("decoded = % x; want % x", got, want)
	}
}

// TestMissingEOS checks that a chunk stream ending without an explicit
// end-of-stream control byte is an error.
func TestMissingEOS(t *testing.T) {
	stream := []byte{0x01, 0x00, 0x00, 0x2A}
	r, err := NewReader(bytes.NewReader(stream), 1<<16)
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	if _, err := io.ReadAll(r); err == nil {
		t.Fatalf("decoding chunk stream with no EOS marker: want error, got none")
	}
}

// TestInvalidControlByte checks that control bytes outside 0x00-0x02
// and 0x80-0xFF are rejected.
func TestInvalidControlByte(t *testing.T) {
	stream := []byte{0x03}
	r, err := NewReader(bytes.NewReader(stream), 1<<16)
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	if _, err := io.ReadAll(r); err == nil {
		t.Fatalf("decoding invalid control byte: want error, got none")
	}
}

// TestDictionaryResetAcrossChunks checks that data written across
// several chunks decodes as one contiguous sequence. Each Write call
// yields its own compressed chunk, and each of them resets the
// dictionary.
func TestDictionaryResetAcrossChunks(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, 1<<16)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	if _, err := w.Write([]byte("first block ")); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if _, err := w.Write([]byte("second block")); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}

	r, err := NewReader(&buf, 1<<16)
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll error %s", err)
	}
	want := "first block second block"
	if string(got) != want {
		t.Fatalf("decoded = %q; want %q", got, want)
	}
}
