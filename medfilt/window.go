// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

import "math/bits"

const (
	wordShift = 6
	wordSize  = 1 << wordShift
	wordMask  = wordSize - 1
)

// window is a bit-parallel dynamic set over slots [0, capacity): bit s
// is on iff slot s is currently inside the sliding window. A split
// cursor p with running popcounts of the words on each side answers
// "k-th smallest present slot" in near-constant time as long as
// consecutive queries land close together, which the snake traversal
// guarantees.
type window struct {
	buf []uint64
	// half[0] = popcount of buf[:p], half[1] = popcount of buf[p:].
	half [2]int
	// The current guess is that the median lives in buf[p].
	p int
}

func newWindow(capacity int) *window {
	if capacity < 1 {
		panic("medfilt: window capacity must be at least 1")
	}
	words := (capacity + wordSize - 1) / wordSize
	w := &window{buf: make([]uint64, words)}
	w.clear()
	return w
}

// clear empties the set and recenters the cursor.
func (w *window) clear() {
	clear(w.buf)
	w.half[0] = 0
	w.half[1] = 0
	w.p = len(w.buf) / 2
}

// update inserts (op == +1) or removes (op == -1) slot s. Inserting a
// present slot or removing an absent one is a programming error.
func (w *window) update(op, s int) {
	i := s >> wordShift
	bit := uint64(1) << uint(s&wordMask)
	switch op {
	case +1:
		if w.buf[i]&bit != 0 {
			panic("medfilt: window insert of present slot")
		}
	case -1:
		if w.buf[i]&bit == 0 {
			panic("medfilt: window remove of absent slot")
		}
	default:
		panic("medfilt: window op must be +1 or -1")
	}
	w.buf[i] ^= bit
	if i >= w.p {
		w.half[1] += op
	} else {
		w.half[0] += op
	}
}

// size returns the number of present slots.
func (w *window) size() int { return w.half[0] + w.half[1] }

// find returns the slot of the goal-th smallest present member
// (0-indexed). The cursor walks word by word, transferring each
// word's population between the two halves, until buf[p] spans goal;
// the exact bit is then resolved within that word.
func (w *window) find(goal int) int {
	if goal < 0 || goal >= w.size() {
		panic("medfilt: order statistic out of range")
	}
	for w.half[0] > goal {
		w.p--
		n := bits.OnesCount64(w.buf[w.p])
		w.half[0] -= n
		w.half[1] += n
	}
	for w.half[0]+bits.OnesCount64(w.buf[w.p]) <= goal {
		n := bits.OnesCount64(w.buf[w.p])
		w.half[0] += n
		w.half[1] -= n
		w.p++
	}
	n := goal - w.half[0]
	return w.p<<wordShift | findNth64(w.buf[w.p], n)
}
