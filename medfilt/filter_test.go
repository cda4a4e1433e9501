// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// refMedian2D is the brute-force O(n*h^2) reference: sort every
// window's present values and take the middle one, or the mean of the
// two middle ones.
func refMedian2D[T Float](in *Grid[T], hx, hy int) *Grid[T] {
	out := NewGrid[T](in.Width(), in.Height())
	vals := make([]T, 0, (2*hx+1)*(2*hy+1))
	for y := 0; y < in.Height(); y++ {
		for x := 0; x < in.Width(); x++ {
			vals = vals[:0]
			for yy := max(0, y-hy); yy <= min(in.Height()-1, y+hy); yy++ {
				for xx := max(0, x-hx); xx <= min(in.Width()-1, x+hx); xx++ {
					if v := in.At(xx, yy); v == v {
						vals = append(vals, v)
					}
				}
			}
			out.Set(x, y, refMedian(vals))
		}
	}
	return out
}

func refMedian[T Float](vals []T) T {
	if len(vals) == 0 {
		return T(math.NaN())
	}
	slices.Sort(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

// sameGrids compares two grids exactly, treating NaN as equal to NaN.
func sameGrids[T Float](t *testing.T, got, want *Grid[T]) {
	t.Helper()
	g := make([]float64, len(got.Data()))
	w := make([]float64, len(want.Data()))
	for i := range got.Data() {
		g[i] = float64(got.Data()[i])
		w[i] = float64(want.Data()[i])
	}
	if !floats.Same(g, w) {
		for i := range g {
			if g[i] != w[i] && !(math.IsNaN(g[i]) && math.IsNaN(w[i])) {
				x, y := i%got.Width(), i/got.Width()
				t.Fatalf("cell (%d,%d): got %v, want %v", x, y, g[i], w[i])
			}
		}
	}
}

// 5x5 grid of 0..24, 3x3 window: the center sees {6,7,8,11,12,13,16,
// 17,18} (median 12) and the corner sees the clipped {0,1,5,6}
// (median 3.0, the mean of 1 and 5).
func TestFilter2DKnownValues(t *testing.T) {
	in := NewGrid[float64](5, 5)
	for i := range in.Data() {
		in.Data()[i] = float64(i)
	}
	out, err := Filter2D(in, Config{HaloX: 1, HaloY: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := out.At(2, 2); got != 12 {
		t.Errorf("center = %v, want 12", got)
	}
	if got := out.At(0, 0); got != 3.0 {
		t.Errorf("corner = %v, want 3.0", got)
	}
	sameGrids(t, out, refMedian2D(in, 1, 1))
}

func TestFilter2DConstantInput(t *testing.T) {
	for _, h := range []int{0, 1, 4} {
		in := NewGrid[float64](13, 9)
		for i := range in.Data() {
			in.Data()[i] = 7.5
		}
		out, err := Filter2D(in, Config{HaloX: h, HaloY: h, BlockSize: 2*h + 2})
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range out.Data() {
			if v != 7.5 {
				t.Fatalf("h=%d cell %d = %v, want 7.5", h, i, v)
			}
		}
	}
}

func TestFilter2DZeroHaloIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := randomGrid(rng, 21, 14, 0)
	out, err := Filter2D(in, Config{})
	if err != nil {
		t.Fatal(err)
	}
	sameGrids(t, out, in)
	// Output must be a fresh allocation, never aliased to the input.
	out.Set(0, 0, 999)
	if in.At(0, 0) == 999 {
		t.Error("output aliases input storage")
	}
}

func TestFilter2DMissingValues(t *testing.T) {
	t.Run("all missing", func(t *testing.T) {
		in := NewGrid[float64](6, 6)
		for i := range in.Data() {
			in.Data()[i] = math.NaN()
		}
		out, err := Filter2D(in, Config{HaloX: 2, HaloY: 2})
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range out.Data() {
			if !math.IsNaN(v) {
				t.Fatalf("cell %d = %v, want NaN", i, v)
			}
		}
	})
	t.Run("single present value", func(t *testing.T) {
		in := NewGrid[float64](3, 3)
		for i := range in.Data() {
			in.Data()[i] = math.NaN()
		}
		in.Set(1, 1, 5)
		out, err := Filter2D(in, Config{HaloX: 1, HaloY: 1})
		if err != nil {
			t.Fatal(err)
		}
		// Every window on a 3x3 grid with h=1 contains the center.
		for i, v := range out.Data() {
			if v != 5 {
				t.Fatalf("cell %d = %v, want 5", i, v)
			}
		}
	})
}

// Even present counts average the two central order statistics; odd
// counts take the middle one with no averaging.
func TestFilter2DMedianPolicy(t *testing.T) {
	in := GridFromSlice([]float64{
		4, 1, math.NaN(),
		2, 8, math.NaN(),
		math.NaN(), math.NaN(), math.NaN(),
	}, 3, 3)
	out, err := Filter2D(in, Config{HaloX: 1, HaloY: 1})
	if err != nil {
		t.Fatal(err)
	}
	// (0,0): window {4,1,2,8}, even -> (2+4)/2.
	if got := out.At(0, 0); got != 3 {
		t.Errorf("even window median = %v, want 3", got)
	}
	// (2,2): window {8}, odd -> 8.
	if got := out.At(2, 2); got != 8 {
		t.Errorf("single-value window median = %v, want 8", got)
	}
}

func TestFilter2DRandomizedAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	sizes := []struct{ w, h int }{{1, 1}, {3, 7}, {16, 16}, {33, 17}, {64, 64}}
	for _, size := range sizes {
		for _, nan := range []float64{0, 0.2, 0.9, 1.0} {
			hx, hy := rng.Intn(5), rng.Intn(5)
			block := 0
			if rng.Intn(2) == 0 {
				block = 2*max(hx, hy) + 2 + rng.Intn(10)
			}
			name := fmt.Sprintf("%dx%d_h%d-%d_b%d_nan%.1f", size.w, size.h, hx, hy, block, nan)
			t.Run(name, func(t *testing.T) {
				in := randomGrid(rng, size.w, size.h, nan)
				out, err := Filter2D(in, Config{HaloX: hx, HaloY: hy, BlockSize: block})
				if err != nil {
					t.Fatal(err)
				}
				sameGrids(t, out, refMedian2D(in, hx, hy))
			})
		}
	}
}

// The result must not depend on worker count or scheduling.
func TestFilter2DWorkerCountDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	in := randomGrid(rng, 50, 41, 0.25)
	cfg := Config{HaloX: 3, HaloY: 2, BlockSize: 9}

	base, err := Filter2D(in, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for workers := 1; workers <= 8; workers++ {
		cfg.Workers = workers
		out, err := Filter2D(in, cfg)
		if err != nil {
			t.Fatal(err)
		}
		sameGrids(t, out, base)
	}
}

func TestFilter2DFloat32(t *testing.T) {
	in := NewGrid[float32](11, 11)
	rng := rand.New(rand.NewSource(5))
	for i := range in.Data() {
		if rng.Float64() < 0.2 {
			in.Data()[i] = float32(math.NaN())
		} else {
			in.Data()[i] = rng.Float32() * 50
		}
	}
	out, err := Filter2DFloat32(in, Config{HaloX: 2, HaloY: 1})
	if err != nil {
		t.Fatal(err)
	}
	sameGrids(t, out, refMedian2D(in, 2, 1))
}

func TestFilter2DConfigErrors(t *testing.T) {
	in := NewGrid[float64](8, 8)
	t.Run("window too large for block", func(t *testing.T) {
		out, err := Filter2D(in, Config{HaloX: 1, HaloY: 1, BlockSize: 3})
		if !errors.Is(err, ErrWindowTooLarge) {
			t.Fatalf("err = %v, want ErrWindowTooLarge", err)
		}
		if out != nil {
			t.Error("output allocated despite configuration error")
		}
	})
	t.Run("window equal to block", func(t *testing.T) {
		// 2h+1 == b is also rejected: the block would have no room to step.
		if _, err := Filter2D(in, Config{HaloX: 2, HaloY: 0, BlockSize: 5}); !errors.Is(err, ErrWindowTooLarge) {
			t.Fatalf("err = %v, want ErrWindowTooLarge", err)
		}
	})
	t.Run("negative halo", func(t *testing.T) {
		if _, err := Filter2D(in, Config{HaloX: -1}); !errors.Is(err, ErrNegativeHalo) {
			t.Fatalf("err = %v, want ErrNegativeHalo", err)
		}
	})
}

// The reserved distance parameters are accepted and must not change
// the rectangular-window result.
func TestFilter2DReservedParamsIgnored(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	in := randomGrid(rng, 20, 20, 0.1)
	plain, err := Filter2D(in, Config{HaloX: 2, HaloY: 2})
	if err != nil {
		t.Fatal(err)
	}
	withCoords, err := Filter2D(in, Config{
		HaloX: 2, HaloY: 2,
		TimeCoords:  make([]float64, 20),
		RangeCoords: make([]float64, 20),
		TimeDelta:   1.5,
		RangeDelta:  90,
	})
	if err != nil {
		t.Fatal(err)
	}
	sameGrids(t, withCoords, plain)
}
