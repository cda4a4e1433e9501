// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

// dim describes how one axis of length size is split into blocks of
// capacity b, each extended by a halo of h cells on both sides so that
// every cell's full window is visible to the block that owns it.
type dim struct {
	size  int
	h     int
	step  int // distance between consecutive block starts: b - 2h
	count int // number of blocks along this axis
}

// newDim computes the block partition of one axis. Callers must have
// validated 2h+1 < b; the remaining checks guard internal invariants.
func newDim(b, size, h int) dim {
	if 2*h+1 >= b {
		panic("medfilt: window too large for block size")
	}
	step := b - 2*h
	count := 1
	if size > b {
		interior := size - 2*h
		count = (interior + step - 1) / step
	}
	d := dim{size: size, h: h, step: step, count: count}
	// Blocks laid end to end, extended by h on each side, must cover
	// [0, size) with no slack block at the end.
	if 2*h+count*step < size {
		panic("medfilt: block partition does not cover the axis")
	}
	if count > 1 && 2*h+(count-1)*step >= size {
		panic("medfilt: block partition has a redundant block")
	}
	return d
}

// bdim is the geometry of one block along one axis: the global
// footprint [start, start+size) including halo, and the block-local
// valid output range [b0, b1) for which this block is the authoritative
// producer. Valid output ranges across all blocks partition [0, size).
//
// A bdim is re-set per block index rather than reallocated.
type bdim struct {
	dim   dim
	start int
	size  int
	b0    int
	b1    int

	// Reserved for distance-bounded windows: the physical coordinates
	// of the samples along this axis and the maximum physical window
	// distance. Stored with the block, not consulted by the
	// rectangular window computation.
	coords []float64
	delta  float64
}

func newBDim(d dim, coords []float64, delta float64) *bdim {
	bd := &bdim{dim: d, coords: coords, delta: delta}
	bd.set(0)
	return bd
}

// set positions the bdim on block i.
func (bd *bdim) set(i int) {
	first := i == 0
	last := i+1 == bd.dim.count
	bd.start = bd.dim.step * i
	end := 2*bd.dim.h + (i+1)*bd.dim.step
	if last {
		end = bd.dim.size
	}
	bd.size = end - bd.start
	if first {
		bd.b0 = 0
	} else {
		bd.b0 = bd.dim.h
	}
	if last {
		bd.b1 = bd.size
	} else {
		bd.b1 = bd.size - bd.dim.h
	}
}

// The window around cell v is [w0(v), w1(v)), in block-local
// coordinates: 0 <= w0(v) <= v < w1(v) <= size. Both bounds are
// defined only for v in the block's valid output range.

func (bd *bdim) w0(v int) int {
	bd.checkValid(v)
	return max(0, v-bd.dim.h)
}

func (bd *bdim) w1(v int) int {
	bd.checkValid(v)
	return min(v+1+bd.dim.h, bd.size)
}

func (bd *bdim) checkValid(v int) {
	if v < bd.b0 || v >= bd.b1 {
		panic("medfilt: cell outside block's valid output range")
	}
}
