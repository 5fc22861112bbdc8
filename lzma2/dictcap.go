// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma2

import "github.com/gocompress/xzcore/lzma"

// DecodeDictCap and EncodeDictCap expose the dictionary-capacity codec
// LZMA2 shares with the raw LZMA header and the XZ LZMA2 filter
// properties byte.
func DecodeDictCap(c byte) (int64, error) { return lzma.DecodeDictCap(c) }
func EncodeDictCap(n int64) byte          { return lzma.EncodeDictCap(n) }

const (
	MinDictCap = lzma.MinDictCap
	MaxDictCap = lzma.MaxDictCap
)
