// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

// snakeDir is the vertical direction of the boustrophedon sweep.
type snakeDir uint8

const (
	movingDown snakeDir = iota
	movingUp
)

// strip is a half-open rectangle of block-local cells
// [x0, x1) x [y0, y1) entering or leaving the window.
type strip struct {
	x0, x1 int
	y0, y1 int
}

// snakeMove is one transition of the sweep: the next cell and
// direction, plus the exact strip of cells to retire from the window
// and the strip to admit. The two strips never overlap.
type snakeMove struct {
	x, y   int
	dir    snakeDir
	retire strip
	admit  strip
}

// snakeStep maps the current cell and direction to the next move of
// the boustrophedon sweep over the block's valid output range: walk a
// column vertically to its end, step right one column, reverse, until
// the last column is exhausted. Pure function of its inputs; ok is
// false once the sweep is complete.
func snakeStep(x, y int, dir snakeDir, bx, by *bdim) (snakeMove, bool) {
	right := false
	switch dir {
	case movingDown:
		if y+1 == by.b1 {
			right = true
			dir = movingUp
		}
	case movingUp:
		if y == by.b0 {
			right = true
			dir = movingDown
		}
	}
	if right {
		if x+1 == bx.b1 {
			return snakeMove{}, false
		}
		return snakeMove{
			x: x + 1, y: y, dir: dir,
			retire: strip{bx.w0(x), bx.w0(x + 1), by.w0(y), by.w1(y)},
			admit:  strip{bx.w1(x), bx.w1(x + 1), by.w0(y), by.w1(y)},
		}, true
	}
	if dir == movingDown {
		return snakeMove{
			x: x, y: y + 1, dir: dir,
			retire: strip{bx.w0(x), bx.w1(x), by.w0(y), by.w0(y + 1)},
			admit:  strip{bx.w0(x), bx.w1(x), by.w1(y), by.w1(y + 1)},
		}, true
	}
	return snakeMove{
		x: x, y: y - 1, dir: dir,
		retire: strip{bx.w0(x), bx.w1(x), by.w1(y - 1), by.w1(y)},
		admit:  strip{bx.w0(x), bx.w1(x), by.w0(y - 1), by.w0(y)},
	}, true
}

// medCalc2D calculates medians for one block at a time. Each parallel
// worker owns one instance; the rank table and window are sized to the
// maximum block footprint and reset, not reallocated, between blocks.
type medCalc2D[T Float] struct {
	wr  *windowRank[T]
	bx  *bdim
	by  *bdim
	in  []T
	out []T
	// naive rebuilds the window from scratch at every cell instead of
	// updating it incrementally. Reference mode for verification; the
	// two modes produce identical output.
	naive bool
}

func newMedCalc2D[T Float](b int, dimx, dimy dim, in, out []T, cfg *Config) *medCalc2D[T] {
	return &medCalc2D[T]{
		wr:  newWindowRank[T](b * b),
		bx:  newBDim(dimx, cfg.TimeCoords, cfg.TimeDelta),
		by:  newBDim(dimy, cfg.RangeCoords, cfg.RangeDelta),
		in:  in,
		out: out,
	}
}

// run computes medians for block (i, j).
func (mc *medCalc2D[T]) run(i, j int) {
	mc.bx.set(i)
	mc.by.set(j)
	mc.calcRank()
	mc.medians()
}

// calcRank feeds every value of the block's full footprint, halo
// included, into a fresh rank table.
func (mc *medCalc2D[T]) calcRank() {
	mc.wr.initStart()
	for y := 0; y < mc.by.size; y++ {
		for x := 0; x < mc.bx.size; x++ {
			mc.wr.initFeed(mc.in[mc.coord(x, y)], mc.pack(x, y))
		}
	}
	mc.wr.initFinish()
}

// medians visits every cell of the block's valid output range exactly
// once and writes its median.
func (mc *medCalc2D[T]) medians() {
	if mc.naive {
		mc.mediansNaive()
		return
	}
	mc.wr.clear()
	x, y := mc.bx.b0, mc.by.b0
	dir := movingDown
	mc.updateStrip(+1, strip{mc.bx.w0(x), mc.bx.w1(x), mc.by.w0(y), mc.by.w1(y)})
	mc.setMed(x, y)
	for {
		mv, ok := snakeStep(x, y, dir, mc.bx, mc.by)
		if !ok {
			return
		}
		mc.updateStrip(-1, mv.retire)
		mc.updateStrip(+1, mv.admit)
		x, y, dir = mv.x, mv.y, mv.dir
		mc.setMed(x, y)
	}
}

func (mc *medCalc2D[T]) mediansNaive() {
	for y := mc.by.b0; y < mc.by.b1; y++ {
		for x := mc.bx.b0; x < mc.bx.b1; x++ {
			mc.wr.clear()
			mc.updateStrip(+1, strip{mc.bx.w0(x), mc.bx.w1(x), mc.by.w0(y), mc.by.w1(y)})
			mc.setMed(x, y)
		}
	}
}

func (mc *medCalc2D[T]) updateStrip(op int, s strip) {
	for y := s.y0; y < s.y1; y++ {
		for x := s.x0; x < s.x1; x++ {
			mc.wr.update(op, mc.pack(x, y))
		}
	}
}

func (mc *medCalc2D[T]) setMed(x, y int) {
	mc.out[mc.coord(x, y)] = mc.wr.median()
}

// pack flattens block-local coordinates into a rank-table slot.
func (mc *medCalc2D[T]) pack(x, y int) int {
	return y*mc.bx.size + x
}

// coord translates block-local coordinates into the global array.
func (mc *medCalc2D[T]) coord(x, y int) int {
	return (y+mc.by.start)*mc.bx.dim.size + (x + mc.bx.start)
}
