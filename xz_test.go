// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xz

import (
	"bytes"
	"io"
	"testing"

	"github.com/kr/pretty"
	"pgregory.net/rapid"
)

func roundtrip(t *testing.T, p []byte, checkSum byte) {
	t.Helper()

	var buf bytes.Buffer
	cfg := WriterConfig{CheckSum: checkSum, NoCheckSum: checkSum == checkNone}
	w, err := NewWriterConfig(&buf, cfg)
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	if _, err := w.Write(p); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll error %s", err)
	}
	if !bytes.Equal(got, p) {
		t.Fatalf("round trip mismatch:\n%# v", pretty.Formatter(struct{ Got, Want []byte }{got, p}))
	}
}

// TestRoundtripEmpty checks that a well-formed stream with no blocks
// decodes to the empty byte sequence under every check type.
func TestRoundtripEmpty(t *testing.T) {
	for _, cs := range []byte{checkNone, checkCRC32, checkCRC64, checkSHA256} {
		roundtrip(t, nil, cs)
	}
}

// TestRoundtripOneMebibyteZeros round-trips a 1 MiB run of zero bytes
// under each integrity check.
func TestRoundtripOneMebibyteZeros(t *testing.T) {
	p := make([]byte, 1<<20)
	for _, cs := range []byte{checkCRC32, checkCRC64, checkSHA256} {
		roundtrip(t, p, cs)
	}
}

func TestRoundtripRapid(t *testing.T) {
	checks := []byte{checkNone, checkCRC32, checkCRC64, checkSHA256}
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 1<<17).Draw(rt, "n").(int)
		p := rapid.SliceOfN(rapid.Uint8(), n, n).Draw(rt, "data").([]byte)
		cs := checks[rapid.IntRange(0, len(checks)-1).Draw(rt, "checkIdx").(int)]
		roundtrip(t, p, cs)
	})
}

// TestHeaderCRCMutation checks that flipping any bit of the stream
// header's CRC32 is rejected.
func TestHeaderCRCMutation(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}

	good := buf.Bytes()
	for bit := 0; bit < 32; bit++ {
		mutated := append([]byte(nil), good...)
		mutated[8+bit/8] ^= 1 << uint(bit%8)
		if _, err := NewReader(bytes.NewReader(mutated)); err == nil {
			t.Fatalf("bit %d of header CRC flipped: want error, got none", bit)
		}
	}
}

// TestMutationNeverSilentlyAccepted checks that mutating any single
// byte of a valid stream produces either a decode error or different
// output, never a silent accept of the same output.
func TestMutationNeverSilentlyAccepted(t *testing.T) {
	want := []byte("the quick brown fox jumps over the lazy dog")
	var buf bytes.Buffer
	w, err := NewWriterConfig(&buf, WriterConfig{CheckSum: checkCRC32})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	if _, err := w.Write(want); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	good := buf.Bytes()

	for i := range good {
		mutated := append([]byte(nil), good...)
		mutated[i] ^= 0xFF

		r, err := NewReader(bytes.NewReader(mutated))
		if err != nil {
			continue
		}
		got, err := io.ReadAll(r)
		if err == nil && bytes.Equal(got, want) {
			t.Fatalf("flipping byte %d: stream silently decoded to the original output", i)
		}
	}
}

// TestMemLimit checks that a block whose declared dictionary capacity
// exceeds MemLimit is rejected. The capacity is declared per block, so
// the check fires at the first block header rather than at
// construction.
func TestMemLimit(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriterConfig(&buf, WriterConfig{DictCap: 1 << 20})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	if _, err := w.Write([]byte("some block content")); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	r, err := NewReaderConfig(bytes.NewReader(buf.Bytes()), ReaderConfig{
		MemLimit: 1 << 10,
	})
	if err != nil {
		t.Fatalf("NewReaderConfig error %s", err)
	}
	if _, err := io.ReadAll(r); err == nil {
		t.Fatalf("read with MemLimit < dict cap: want error, got none")
	}
}
