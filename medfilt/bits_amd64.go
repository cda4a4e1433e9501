// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

//go:build amd64 && !noasm

package medfilt

import "golang.org/x/sys/cpu"

// findNth64PDEP deposits 1<<n across the set bits of x and counts
// trailing zeros, resolving the n-th set bit in two instructions.
// Requires BMI2.
//
//go:noescape
func findNth64PDEP(x uint64, n int) int

func init() {
	if cpu.X86.HasBMI2 {
		findNth64 = findNth64PDEP
		findNthImplName = "pdep"
	}
}
