package xz

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc32"
	"hash/crc64"
)

// crc64Table is the ECMA-182 polynomial the format specifies for its
// CRC-64 check.
var crc64Table = crc64.MakeTable(crc64.ECMA)

// blockCheck accumulates one block's integrity check and produces the
// field stored after the block's padding. CRC values are stored
// little-endian, unlike the big-endian convention of hash.Hash's Sum,
// so the field is derived from Sum32/Sum64 directly rather than
// through Sum.
type blockCheck struct {
	typ byte
	h   hash.Hash
}

func newBlockCheck(typ byte) (*blockCheck, error) {
	c := &blockCheck{typ: typ}
	switch typ {
	case checkNone:
	case checkCRC32:
		c.h = crc32.NewIEEE()
	case checkCRC64:
		c.h = crc64.New(crc64Table)
	case checkSHA256:
		c.h = sha256.New()
	default:
		return nil, fmt.Errorf("xz: unsupported check type %#02x", typ)
	}
	return c, nil
}

// Write feeds uncompressed block output into the check. It never
// fails, so the block reader can tee through it.
func (c *blockCheck) Write(p []byte) (int, error) {
	if c.h != nil {
		c.h.Write(p)
	}
	return len(p), nil
}

// size returns the length in bytes of the check field.
func (c *blockCheck) size() int {
	switch c.typ {
	case checkCRC32:
		return 4
	case checkCRC64:
		return 8
	case checkSHA256:
		return 32
	}
	return 0
}

// field returns the check bytes as stored in the stream; nil for the
// none check.
func (c *blockCheck) field() []byte {
	switch c.typ {
	case checkCRC32:
		p := make([]byte, 4)
		binary.LittleEndian.PutUint32(p, c.h.(hash.Hash32).Sum32())
		return p
	case checkCRC64:
		p := make([]byte, 8)
		binary.LittleEndian.PutUint64(p, c.h.(hash.Hash64).Sum64())
		return p
	case checkSHA256:
		return c.h.Sum(nil)
	}
	return nil
}
