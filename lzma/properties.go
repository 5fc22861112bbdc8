// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "fmt"

// Properties encodes lc (literal context bits), lp (literal position
// bits) and pb (position bits) into the single byte used by the LZMA
// wire header: (pb*5+lp)*9+lc.
type Properties byte

const (
	MinLC = 0
	MaxLC = 8
	MinLP = 0
	MaxLP = 4
	MinPB = 0
	MaxPB = 4

	MaxProperties = 224
)

// NewProperties validates lc, lp, pb and packs them into a Properties
// byte.
func NewProperties(lc, lp, pb int) (Properties, error) {
	if !(MinLC <= lc && lc <= MaxLC) {
		return 0, newError("lc out of range")
	}
	if !(MinLP <= lp && lp <= MaxLP) {
		return 0, newError("lp out of range")
	}
	if !(MinPB <= pb && pb <= MaxPB) {
		return 0, newError("pb out of range")
	}
	return Properties((pb*5+lp)*9 + lc), nil
}

func verifyProperties(p Properties) error {
	if p > MaxProperties {
		return newError(fmt.Sprintf("invalid properties byte %d", byte(p)))
	}
	return nil
}

// LC returns the number of literal context bits.
func (p Properties) LC() int { return int(p) % 9 }

// LP returns the number of literal position bits.
func (p Properties) LP() int { return (int(p) / 9) % 5 }

// PB returns the number of position bits.
func (p Properties) PB() int { return (int(p) / 9) / 5 }

func (p Properties) String() string {
	return fmt.Sprintf("lc=%d,lp=%d,pb=%d", p.LC(), p.LP(), p.PB())
}
