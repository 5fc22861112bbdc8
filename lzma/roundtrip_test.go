// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"io"
	"testing"

	"github.com/kr/pretty"
	"pgregory.net/rapid"
)

// roundtrip writes p through a Writer with the given size-in-header
// setting and reads it back through a Reader, failing the test if the
// two byte slices differ.
func roundtrip(t *testing.T, p []byte, sizeInHeader bool) {
	t.Helper()

	var buf bytes.Buffer
	w, err := NewWriterConfig(&buf, WriterConfig{
		SizeInHeader: sizeInHeader,
		UnpackSize:   int64(len(p)),
	})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	if _, err := w.Write(p); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}

	cfg := ReaderConfig{}
	if sizeInHeader {
		cfg.UnpackSize = UnpackSizeFromHeader
	}
	r, err := NewReaderConfig(&buf, cfg)
	if err != nil {
		t.Fatalf("NewReaderConfig error %s", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll error %s", err)
	}
	if !bytes.Equal(got, p) {
		t.Fatalf("round trip mismatch:\n%# v", pretty.Formatter(struct{ Got, Want []byte }{got, p}))
	}
}

func TestRoundtripEmpty(t *testing.T) {
	roundtrip(t, nil, false)
}

// TestRoundtripHello round-trips "hello\n" with the unpacked size
// declared in the header.
func TestRoundtripHello(t *testing.T) {
	roundtrip(t, []byte("hello\n"), true)
}

// TestRoundtripRapid round-trips arbitrary byte sequences under both
// unpacked-size resolutions.
func TestRoundtripRapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 4096).Draw(rt, "n").(int)
		p := rapid.SliceOfN(rapid.Uint8(), n, n).Draw(rt, "data").([]byte)
		sizeInHeader := rapid.Bool().Draw(rt, "sizeInHeader").(bool)
		roundtrip(t, p, sizeInHeader)
	})
}

// TestHeaderLiteral checks the 13-byte header for an empty,
// unknown-size stream byte for byte, and that the stream decodes to
// nothing.
func TestHeaderLiteral(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriterConfig(&buf, WriterConfig{DictCap: 1 << 20})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	want := []byte{0x5D, 0x00, 0x00, 0x10, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	got := buf.Bytes()[:headerLen]
	if !bytes.Equal(got, want) {
		t.Fatalf("header = % x; want % x", got, want)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll error %s", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("decoded %d bytes; want 0", len(decoded))
	}
}

// TestTruncatedStream checks that a truncated stream with a known
// unpacked size either errors or succeeds depending on
// AllowIncomplete.
func TestTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriterConfig(&buf, WriterConfig{
		SizeInHeader: true,
		UnpackSize:   6,
	})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	truncated := buf.Bytes()[:buf.Len()-1]

	r, err := NewReaderConfig(bytes.NewReader(truncated), ReaderConfig{
		UnpackSize: UnpackSizeFromHeader,
	})
	if err != nil {
		t.Fatalf("NewReaderConfig error %s", err)
	}
	if _, err := io.ReadAll(r); err == nil {
		t.Fatalf("decoding truncated stream: want error, got none")
	}

	r2, err := NewReaderConfig(bytes.NewReader(truncated), ReaderConfig{
		UnpackSize:      UnpackSizeFromHeader,
		AllowIncomplete: true,
	})
	if err != nil {
		t.Fatalf("NewReaderConfig error %s", err)
	}
	got, err := io.ReadAll(r2)
	if err != nil {
		t.Fatalf("AllowIncomplete decode error %s", err)
	}
	// The missing byte may interrupt the final symbol, so the contract
	// is "the bytes emitted so far": a prefix of the original plaintext.
	if !bytes.HasPrefix([]byte("hello\n"), got) {
		t.Fatalf("AllowIncomplete decode = %q; want a prefix of %q", got, "hello\n")
	}
}
