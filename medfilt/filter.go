// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

import (
	"fmt"
	"runtime"
	"sync"
)

// Block capacity heuristics, benchmarked sweet spots for the
// rank-build vs. sweep cost trade-off.

func chooseBlocksize1D(h int) int { return 8 * (h + 2) }

func chooseBlocksize2D(h int) int { return 4 * (h + 2) }

// Config controls a 2-D filtering call.
type Config struct {
	// HaloX and HaloY are the window half-widths per axis: the window
	// around cell (x, y) spans [x-HaloX, x+HaloX] x [y-HaloY, y+HaloY],
	// clipped to the grid. Zero on both axes is the identity transform
	// (absent missing values).
	HaloX int
	HaloY int

	// BlockSize overrides the block capacity used to tile the grid.
	// Zero selects a heuristic scaled to the larger halo radius. The
	// window diameter 2h+1 must be strictly smaller than the block
	// capacity on both axes.
	BlockSize int

	// Workers bounds the number of concurrent block workers.
	// Zero means GOMAXPROCS. Output is identical for any value.
	Workers int

	// Reserved: physical coordinates of the samples along each axis
	// and the maximum physical window distances, for distance-bounded
	// windows. Accepted and stored with each block; not consulted by
	// the rectangular window computation.
	TimeCoords  []float64
	RangeCoords []float64
	TimeDelta   float64
	RangeDelta  float64
}

// Filter2D computes the sliding-window median of in under cfg and
// returns it as a freshly allocated grid of the same shape. The input
// is not modified. NaN samples are treated as missing; a window with
// no present samples yields NaN.
//
// Validation failures (negative halo, window larger than the block
// capacity) are reported before any output is allocated.
func Filter2D[T Float](in *Grid[T], cfg Config) (*Grid[T], error) {
	return filter2D(in, cfg, false)
}

// Filter2DFloat32 is the non-generic version for float32.
func Filter2DFloat32(in *Grid[float32], cfg Config) (*Grid[float32], error) {
	return Filter2D(in, cfg)
}

// Filter2DFloat64 is the non-generic version for float64.
func Filter2DFloat64(in *Grid[float64], cfg Config) (*Grid[float64], error) {
	return Filter2D(in, cfg)
}

func filter2D[T Float](in *Grid[T], cfg Config, naive bool) (*Grid[T], error) {
	if cfg.HaloX < 0 || cfg.HaloY < 0 {
		return nil, fmt.Errorf("%w: hx=%d hy=%d", ErrNegativeHalo, cfg.HaloX, cfg.HaloY)
	}
	b := cfg.BlockSize
	if b == 0 {
		b = chooseBlocksize2D(max(cfg.HaloX, cfg.HaloY))
	}
	if 2*cfg.HaloX+1 >= b {
		return nil, fmt.Errorf("%w: x axis needs %d slots, block capacity is %d",
			ErrWindowTooLarge, 2*cfg.HaloX+1, b)
	}
	if 2*cfg.HaloY+1 >= b {
		return nil, fmt.Errorf("%w: y axis needs %d slots, block capacity is %d",
			ErrWindowTooLarge, 2*cfg.HaloY+1, b)
	}

	dimx := newDim(b, in.width, cfg.HaloX)
	dimy := newDim(b, in.height, cfg.HaloY)
	out := NewGrid[T](in.width, in.height)

	blocks := dimx.count * dimy.count
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > blocks {
		workers = blocks
	}

	// Work queue of block indices. Each worker owns a private engine;
	// blocks write to disjoint output regions, so the result does not
	// depend on scheduling order.
	work := make(chan [2]int, blocks)
	for j := range dimy.count {
		for i := range dimx.count {
			work <- [2]int{i, j}
		}
	}
	close(work)

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			mc := newMedCalc2D(b, dimx, dimy, in.data, out.data, &cfg)
			mc.naive = naive
			for blk := range work {
				mc.run(blk[0], blk[1])
			}
		})
	}
	wg.Wait()

	return out, nil
}
