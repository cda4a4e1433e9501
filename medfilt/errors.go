// Copyright 2025 go-medfilt Authors. SPDX-License-Identifier: Apache-2.0

package medfilt

import "errors"

var (
	// ErrWindowTooLarge indicates that the window diameter 2h+1 does
	// not fit within the configured block capacity on some axis.
	ErrWindowTooLarge = errors.New("medfilt: window too large for block size")
	// ErrNegativeHalo indicates a negative halo radius.
	ErrNegativeHalo = errors.New("medfilt: halo radius must be non-negative")
)
