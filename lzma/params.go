// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// UnpackSizeMode selects how a Reader determines the number of bytes a
// raw LZMA stream will decode to: from the header's size field, from
// the header with a caller override, or entirely caller-supplied.
type UnpackSizeMode int

const (
	// UnpackSizeFromHeader trusts the 8-byte size field of the classic
	// 13-byte header: an all-ones field means "unknown, rely on the
	// end-of-stream marker".
	UnpackSizeFromHeader UnpackSizeMode = iota

	// UnpackSizeFromHeaderOrProvided reads the header's size field (the
	// header is always the fixed 13 bytes) but, when ReaderConfig's
	// UnpackSize value is non-nil, that value overrides whatever the
	// header said.
	UnpackSizeFromHeaderOrProvided

	// UnpackSizeProvided reads only the 5-byte header form (properties
	// and dictionary capacity) with no size field at all. ReaderConfig's
	// UnpackSize value is taken as-is; a nil value means "unknown, rely
	// on the end-of-stream marker".
	UnpackSizeProvided
)

// ReaderConfig collects the raw-LZMA decoder options: dictionary
// capacity, unpacked-size resolution, a memory ceiling and whether input
// that ends early is tolerated: with AllowIncomplete set, running out of
// input ends the stream without error and Read returns the bytes
// decoded up to that point.
type ReaderConfig struct {
	DictCap         int
	UnpackSize      UnpackSizeMode
	UnpackSizeValue *int64
	MemLimit        int64
	AllowIncomplete bool
}

const defaultMemLimit = 1 << 34

// ApplyDefaults fills zero fields with their defaults.
func (c *ReaderConfig) ApplyDefaults() {
	if c.DictCap == 0 {
		c.DictCap = MinDictCap
	}
	if c.MemLimit == 0 {
		c.MemLimit = defaultMemLimit
	}
}

// Verify checks the configuration for internal consistency.
func (c *ReaderConfig) Verify() error {
	if c.DictCap < 0 {
		return newError("DictCap must not be negative")
	}
	if c.MemLimit < 0 {
		return newError("MemLimit must not be negative")
	}
	return nil
}

// WriterConfig collects the raw-LZMA encoder options: the lc/lp/pb
// properties and dictionary capacity to advertise in the header, and
// whether to declare the unpacked size up front or rely on the
// end-of-stream marker. PropertiesInitialized distinguishes "the caller
// wants lc=0,lp=0,pb=0" from "the caller left Properties at its zero
// value and wants the default", since that zero value is itself a
// valid encoding.
type WriterConfig struct {
	Properties            Properties
	PropertiesInitialized bool
	DictCap               int
	SizeInHeader          bool
	UnpackSize            int64
}

func (c *WriterConfig) ApplyDefaults() {
	if !c.PropertiesInitialized {
		c.Properties, _ = NewProperties(3, 0, 2)
	}
	if c.DictCap == 0 {
		c.DictCap = 1 << 24
	}
}

func (c *WriterConfig) Verify() error {
	if err := verifyProperties(c.Properties); err != nil {
		return err
	}
	if c.DictCap < 0 {
		return newError("DictCap must not be negative")
	}
	return nil
}
