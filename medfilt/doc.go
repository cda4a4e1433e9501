// Copyright 2025 go-medfilt Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package medfilt provides a block-tiled sliding-window median filter
// for dense 2-D (and 1-D) arrays of float32 or float64 samples.
//
// Every output cell is the median of the non-NaN values inside a
// rectangular neighborhood of half-width HaloX by HaloY around the
// corresponding input cell, clipped at the array edges. NaN inputs are
// treated as missing: they never contribute to a median, and a window
// with no present values produces a NaN output.
//
// # Algorithm
//
// The grid is tiled into blocks that overlap by one window halo, so
// each block can be filtered independently with private state. Within
// a block, values are mapped once to dense ranks, and window
// membership is tracked in a bitset over those ranks with a running
// popcount split around a cursor. Finding the k-th smallest member is
// then a short cursor walk plus an "n-th set bit in a word" lookup,
// which stays near O(1) because consecutive cells are visited in
// boustrophedon (snake) order: each step retires one strip of cells
// and admits one strip, never rebuilding the window. Per-cell cost is
// O(window perimeter) amortized instead of O(window area).
//
// Blocks are dispatched across a worker pool; their output regions are
// disjoint, so results are identical for any worker count.
//
// # Median policy
//
// An odd number of present values yields the exact middle order
// statistic. An even number yields the arithmetic mean of the two
// central order statistics. No other rounding is applied.
//
// # Usage
//
//	in := medfilt.NewGrid[float64](512, 512)
//	// ... fill in.Row(y) ...
//	out, err := medfilt.Filter2D(in, medfilt.Config{HaloX: 29, HaloY: 3})
//
// On amd64 with BMI2, the order-statistic lookup uses a PDEP-based
// fast path; everywhere else a portable bit loop is used. Build with
// the noasm tag to force the portable path.
package medfilt
