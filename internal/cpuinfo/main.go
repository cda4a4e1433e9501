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

// Package main provides a diagnostic tool to print the CPU features
// that select medfilt's order-statistic lookup path.
package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/wxtools/go-medfilt/medfilt"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Println()

	fmt.Printf("medfilt find-nth-bit dispatch: %s\n", medfilt.DispatchName())

	if runtime.GOARCH == "amd64" {
		fmt.Println()
		fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
		fmt.Printf("  HasBMI1:   %v\n", cpu.X86.HasBMI1)
		fmt.Printf("  HasBMI2:   %v (PDEP fast path)\n", cpu.X86.HasBMI2)
		fmt.Printf("  HasPOPCNT: %v\n", cpu.X86.HasPOPCNT)
		fmt.Printf("  HasSSE2:   %v\n", cpu.X86.HasSSE2)
		fmt.Printf("  HasAVX2:   %v\n", cpu.X86.HasAVX2)
	}
}
