// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lzma2 implements the LZMA2 chunk framing used inside XZ
// streams: a sequence of uncompressed and compressed chunks, each with
// its own control byte, sharing one dictionary and LZMA probability
// state across chunks except where a chunk explicitly resets them. The
// inner per-chunk symbol coding is delegated to the lzma package's
// exported RawDecoder/EncodeChunk so the two packages never duplicate
// the range coder or probability model.
package lzma2
