// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xz

import (
	"bytes"
	"testing"
)

func TestUvarintRoundtrip(t *testing.T) {
	tests := []uint64{0, 0x80, 0x100, 0xffffffff, 0x100000000, 1<<64 - 1}
	for _, u := range tests {
		p := appendUvarint(nil, u)
		r := bytes.NewReader(p)
		x, m, err := readUvarint(r)
		if err != nil {
			t.Fatalf("readUvarint(0x%x) error %s", u, err)
		}
		if m != len(p) {
			t.Fatalf("readUvarint read %d bytes; want %d", m, len(p))
		}
		if x != u {
			t.Fatalf("readUvarint returned 0x%x; want 0x%x", x, u)
		}
	}
}

func TestUvarintPaddingZero(t *testing.T) {
	r := bytes.NewReader([]byte{0x80, 0x00})
	if _, _, err := readUvarint(r); err != errNumPadding {
		t.Fatalf("readUvarint error = %v; want %v", err, errNumPadding)
	}
}

func TestUvarIntCVE_2020_16845(t *testing.T) {
	var a = []byte{0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
		0x88, 0x89, 0x8a, 0x8b}

	r := bytes.NewReader(a)
	if _, _, err := readUvarint(r); err != errNumOverflow {
		t.Fatalf("readUvarint overflow not detected")
	}
}

func TestStreamHeaderRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	if err := writeStreamHeader(&buf, checkSHA256); err != nil {
		t.Fatalf("writeStreamHeader error %s", err)
	}
	if buf.Len() != streamHeaderLen {
		t.Fatalf("header length %d; want %d", buf.Len(), streamHeaderLen)
	}
	check, err := readStreamHeader(&buf)
	if err != nil {
		t.Fatalf("readStreamHeader error %s", err)
	}
	if check != checkSHA256 {
		t.Fatalf("check type %#02x; want %#02x", check, checkSHA256)
	}
}

func TestStreamFooterRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	if err := writeStreamFooter(&buf, 8, checkCRC32); err != nil {
		t.Fatalf("writeStreamFooter error %s", err)
	}
	indexSize, check, err := readStreamFooter(&buf)
	if err != nil {
		t.Fatalf("readStreamFooter error %s", err)
	}
	if indexSize != 8 {
		t.Fatalf("indexSize = %d; want 8", indexSize)
	}
	if check != checkCRC32 {
		t.Fatalf("check type %#02x; want %#02x", check, checkCRC32)
	}
	if err := writeStreamFooter(&buf, 6, checkCRC32); err == nil {
		t.Fatalf("unaligned backward size: want error, got none")
	}
}

func TestBlockSpecRoundtrip(t *testing.T) {
	want := blockSpec{packedSize: 1234, unpackedSize: 1 << 20, dictCap: 1 << 20}
	p, err := want.append(nil)
	if err != nil {
		t.Fatalf("append error %s", err)
	}
	if len(p)%4 != 0 {
		t.Fatalf("header length %d not aligned to four bytes", len(p))
	}
	got, n, err := readBlockSpec(bytes.NewReader(p))
	if err != nil {
		t.Fatalf("readBlockSpec error %s", err)
	}
	if n != len(p) {
		t.Fatalf("header length %d; want %d", n, len(p))
	}
	if got.packedSize != want.packedSize || got.unpackedSize != want.unpackedSize {
		t.Fatalf("sizes = %d/%d; want %d/%d",
			got.packedSize, got.unpackedSize, want.packedSize, want.unpackedSize)
	}
	if got.dictCap < want.dictCap {
		t.Fatalf("dictCap = %d; want at least %d", got.dictCap, want.dictCap)
	}
}

func TestBlockSpecIndexMarker(t *testing.T) {
	_, n, err := readBlockSpec(bytes.NewReader([]byte{0}))
	if err != errIndexMarker {
		t.Fatalf("readBlockSpec error = %v; want %v", err, errIndexMarker)
	}
	if n != 1 {
		t.Fatalf("consumed %d bytes; want 1", n)
	}
}

func TestIndexRoundtrip(t *testing.T) {
	recs := []blockRecord{
		{unpadded: 100, uncompressed: 200},
		{unpadded: 300, uncompressed: 400},
	}
	p := appendIndex(nil, recs)
	if len(p)%4 != 0 {
		t.Fatalf("index length %d not aligned to four bytes", len(p))
	}
	got, size, err := readIndex(bytes.NewReader(p[1:]))
	if err != nil {
		t.Fatalf("readIndex error %s", err)
	}
	if size != int64(len(p)) {
		t.Fatalf("index size %d; want %d", size, len(p))
	}
	if len(got) != len(recs) {
		t.Fatalf("record count %d; want %d", len(got), len(recs))
	}
	for i, rec := range got {
		if rec != recs[i] {
			t.Fatalf("record %d = %+v; want %+v", i, rec, recs[i])
		}
	}
}
