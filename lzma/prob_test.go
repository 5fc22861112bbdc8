// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"testing"

	"pgregory.net/rapid"
)

// TestProbBounds checks that after any sequence of updates the
// probability stays strictly within (0, 2048).
func TestProbBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := probInit
		bits := rapid.SliceOfN(rapid.Bool(), 0, 2000).Draw(rt, "bits").([]bool)
		for _, bit := range bits {
			if bit {
				p.dec()
			} else {
				p.inc()
			}
			if !(0 < p && p < 1<<probbits) {
				rt.Fatalf("probability %d out of (0, 2048) after update", p)
			}
		}
	})
}

func TestProbInitIsMidpoint(t *testing.T) {
	if probInit != 1024 {
		t.Fatalf("probInit = %d; want 1024", probInit)
	}
}
