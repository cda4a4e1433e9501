// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

import "fmt"

// Filter1D computes the sliding-window median of a 1-D series: each
// output sample is the median of the non-NaN values in
// in[max(0, i-h) : min(i+h+1, len(in))]. blockHint overrides the block
// capacity; zero selects a heuristic. The input is not modified.
func Filter1D[T Float](in []T, h, blockHint int) ([]T, error) {
	if h < 0 {
		return nil, fmt.Errorf("%w: h=%d", ErrNegativeHalo, h)
	}
	b := blockHint
	if b == 0 {
		b = chooseBlocksize1D(h)
	}
	if 2*h+1 >= b {
		return nil, fmt.Errorf("%w: window needs %d slots, block capacity is %d",
			ErrWindowTooLarge, 2*h+1, b)
	}
	out := make([]T, len(in))
	if len(in) == 0 {
		return out, nil
	}

	d := newDim(b, len(in), h)
	wr := newWindowRank[T](b)
	bd := newBDim(d, nil, 0)
	for i := 0; i < d.count; i++ {
		bd.set(i)

		wr.initStart()
		for v := 0; v < bd.size; v++ {
			wr.initFeed(in[bd.start+v], v)
		}
		wr.initFinish()

		// Slide along the axis, retiring and admitting one edge at a
		// time; windows of consecutive samples differ by at most one
		// slot on each side.
		wr.clear()
		v := bd.b0
		for s := bd.w0(v); s < bd.w1(v); s++ {
			wr.update(+1, s)
		}
		out[bd.start+v] = wr.median()
		for v++; v < bd.b1; v++ {
			for s := bd.w0(v - 1); s < bd.w0(v); s++ {
				wr.update(-1, s)
			}
			for s := bd.w1(v - 1); s < bd.w1(v); s++ {
				wr.update(+1, s)
			}
			out[bd.start+v] = wr.median()
		}
	}
	return out, nil
}
