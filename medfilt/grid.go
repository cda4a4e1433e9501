// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

// Float constrains the sample types the filter operates on.
type Float interface {
	float32 | float64
}

// Grid is a dense, row-major 2-D array of samples. The zero value is
// not usable; construct grids with NewGrid or GridFromSlice.
type Grid[T Float] struct {
	width  int
	height int
	data   []T
}

// NewGrid allocates a zero-filled width x height grid.
func NewGrid[T Float](width, height int) *Grid[T] {
	if width <= 0 || height <= 0 {
		panic("medfilt: grid dimensions must be positive")
	}
	return &Grid[T]{
		width:  width,
		height: height,
		data:   make([]T, width*height),
	}
}

// GridFromSlice wraps an existing row-major slice without copying.
// The slice length must be exactly width*height.
func GridFromSlice[T Float](data []T, width, height int) *Grid[T] {
	if width <= 0 || height <= 0 {
		panic("medfilt: grid dimensions must be positive")
	}
	if len(data) != width*height {
		panic("medfilt: slice length does not match grid dimensions")
	}
	return &Grid[T]{width: width, height: height, data: data}
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// Row returns row y as a slice aliasing the grid's storage.
func (g *Grid[T]) Row(y int) []T {
	if y < 0 || y >= g.height {
		panic("medfilt: row index out of range")
	}
	return g.data[y*g.width : (y+1)*g.width]
}

// At returns the sample at column x, row y.
func (g *Grid[T]) At(x, y int) T {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic("medfilt: grid index out of range")
	}
	return g.data[y*g.width+x]
}

// Set stores v at column x, row y.
func (g *Grid[T]) Set(x, y int, v T) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic("medfilt: grid index out of range")
	}
	g.data[y*g.width+x] = v
}

// Data returns the grid's row-major backing slice.
func (g *Grid[T]) Data() []T { return g.data }

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{width: g.width, height: g.height, data: data}
}
