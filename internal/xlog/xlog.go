// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xlog provides the minimal logging seam the codec packages use
// for opt-in debug tracing; the lzma package logs end-of-stream marker
// detection through it. It deliberately stays on top of the standard log package
// rather than a structured logger: github.com/golang/glog, the one
// leveled logger this project has historically reached for, requires
// flag.Parse to be called by the importing binary, which a dependency-
// free codec library must not assume.
package xlog

import (
	"log"
	"os"
)

// Logger is the interface the codec packages log through. Debugf is
// called whether or not tracing is wanted; Quiet, the default, discards
// the output.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type stdLogger struct {
	l *log.Logger
}

func (s *stdLogger) Debugf(format string, args ...interface{}) {
	s.l.Printf(format, args...)
}

// New wraps a standard library logger writing to stderr with the given
// prefix.
func New(prefix string) Logger {
	return &stdLogger{l: log.New(os.Stderr, prefix, log.LstdFlags)}
}

type quiet struct{}

func (quiet) Debugf(format string, args ...interface{}) {}

// Quiet discards all debug output; it is the default logger for every
// package in this module.
var Quiet Logger = quiet{}
