// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xz reads and writes xz files: a stream header, one or more
// blocks, each an LZMA2 chunk stream followed by a CRC-32, CRC-64 or
// SHA-256 integrity check or by none, then an index and a stream footer.
//
// Block content is compressed with the github.com/gocompress/xzcore/lzma2
// package, which in turn drives the raw LZMA codec in
// github.com/gocompress/xzcore/lzma. Only single-stream files with a
// single LZMA2 filter are supported; multi-stream concatenation,
// delta filters and random access are out of scope.
package xz
