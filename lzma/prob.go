// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// prob represents the probability that the next bit decoded is 0. It is
// stored as the numerator of a fraction with denominator 1<<probbits.
type prob uint16

const (
	movebits      = 5
	probbits      = 11
	probInit prob = 1 << (probbits - 1)
)

// dec decreases the probability that the next bit is 0; called after a
// 1 bit has been observed.
func (p *prob) dec() {
	*p -= *p >> movebits
}

// inc increases the probability that the next bit is 0; called after a
// 0 bit has been observed.
func (p *prob) inc() {
	*p += ((1 << probbits) - *p) >> movebits
}

// bound returns the point inside [0, r) at which the range splits
// between the 0-bit and 1-bit intervals.
func (p prob) bound(r uint32) uint32 {
	return (r >> probbits) * uint32(p)
}
