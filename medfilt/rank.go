// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

import (
	"math"
	"sort"
)

// nanMarker is the rank assigned to missing values; it excludes the
// slot from every window operation.
const nanMarker = -1

type rankedValue[T Float] struct {
	value T
	slot  int
}

// windowRank maps the values in one block footprint to dense ranks
// (missing values excluded) and runs the order-statistic window over
// those ranks. Storage is sized once to the maximum block footprint
// and reused across blocks.
type windowRank[T Float] struct {
	// sorted[r] is the value holding rank r after initFinish.
	sorted []rankedValue[T]
	// rank[slot] is the slot's dense rank, or nanMarker.
	rank []int
	win  *window
	n    int // present values fed so far
}

func newWindowRank[T Float](capacity int) *windowRank[T] {
	return &windowRank[T]{
		sorted: make([]rankedValue[T], capacity),
		rank:   make([]int, capacity),
		win:    newWindow(capacity),
	}
}

// initStart begins a new block's rank build.
func (wr *windowRank[T]) initStart() { wr.n = 0 }

// initFeed records one value of the block footprint. NaN values are
// marked missing and never enter the rank table.
func (wr *windowRank[T]) initFeed(value T, slot int) {
	if value != value {
		wr.rank[slot] = nanMarker
		return
	}
	wr.sorted[wr.n] = rankedValue[T]{value: value, slot: slot}
	wr.n++
}

// initFinish assigns ranks 0..n-1 by ascending value, ties broken by
// slot order.
func (wr *windowRank[T]) initFinish() {
	s := wr.sorted[:wr.n]
	sort.Slice(s, func(i, j int) bool {
		if s[i].value != s[j].value {
			return s[i].value < s[j].value
		}
		return s[i].slot < s[j].slot
	})
	for i := range s {
		wr.rank[s[i].slot] = i
	}
}

// clear empties the window without touching the rank table.
func (wr *windowRank[T]) clear() { wr.win.clear() }

// update forwards the slot's rank to the window; missing slots are a
// no-op.
func (wr *windowRank[T]) update(op, slot int) {
	if s := wr.rank[slot]; s != nanMarker {
		wr.win.update(op, s)
	}
}

// median returns the median of the window's present members: NaN when
// the window is empty, the middle order statistic for an odd count,
// and the exact mean of the two central order statistics for an even
// count.
func (wr *windowRank[T]) median() T {
	total := wr.win.size()
	if total == 0 {
		return T(math.NaN())
	}
	g1 := (total - 1) / 2
	g2 := total / 2
	v := wr.sorted[wr.win.find(g1)].value
	if g2 != g1 {
		v = (v + wr.sorted[wr.win.find(g2)].value) / 2
	}
	return v
}
