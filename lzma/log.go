// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "github.com/gocompress/xzcore/internal/xlog"

var debug xlog.Logger = xlog.Quiet

// SetLogger redirects this package's debug trace output (the decoder
// logs end-of-stream marker detection) to l. Passing nil restores
// silence.
func SetLogger(l xlog.Logger) {
	if l == nil {
		l = xlog.Quiet
	}
	debug = l
}
