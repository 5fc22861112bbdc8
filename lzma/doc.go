// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lzma implements the raw, headered LZMA compressed file format:
// the range coder, adaptive probability model, match/literal state
// machine and sliding-window dictionary described by the classic
// ".lzma" stream. The decoder is a complete implementation of the wire
// format; the encoder is intentionally "dumb" — it emits every input
// byte as a literal rather than searching for matches — since this
// module's scope is decoding, not competitive compression.
package lzma
