// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

import "math/bits"

// findNth64 returns the index of the n-th set bit of x (0-indexed).
// The result is undefined when x has fewer than n+1 set bits. The
// default is the portable implementation; on capable amd64 hardware
// an init hook swaps in the PDEP fast path.
var findNth64 = findNth64Portable

var findNthImplName = "portable"

// DispatchName reports which "n-th set bit" implementation is active:
// "pdep" for the BMI2 fast path, "portable" otherwise.
func DispatchName() string { return findNthImplName }

// findNth64Portable clears the lowest set bit n times, then counts
// trailing zeros.
func findNth64Portable(x uint64, n int) int {
	for range n {
		x &= x - 1
	}
	return bits.TrailingZeros64(x)
}
