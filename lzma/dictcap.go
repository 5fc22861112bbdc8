// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

const (
	MinDictCap = 1 << 12
	MaxDictCap = 1<<32 - 1

	maxDictCapCode = 40
)

// DecodeDictCap decodes the single-byte dictionary-capacity code used by
// the LZMA2 control byte and the XZ LZMA2 filter-properties byte.
func DecodeDictCap(c byte) (int64, error) {
	if c > maxDictCapCode {
		return 0, newError("invalid dictionary-capacity code")
	}
	n := int64(2|int64(c)&1) << (11 + uint(c)>>1)
	return n, nil
}

// EncodeDictCap returns the smallest dictionary-capacity code whose
// decoded capacity is >= n, clamped to the valid byte range.
func EncodeDictCap(n int64) byte {
	if n <= MinDictCap {
		return 0
	}
	if n >= MaxDictCap {
		return maxDictCapCode
	}
	for c := byte(0); c <= maxDictCapCode; c++ {
		d, err := DecodeDictCap(c)
		if err != nil {
			continue
		}
		if d >= n {
			return c
		}
	}
	return maxDictCapCode
}
