// SPDX-License-Identifier: MIT

// Package bitint provides power-of-two helpers for FFT and buffer sizing.
// All operations are allocation-free and constant time, which keeps them
// safe to call from real-time audio paths.
package bitint

import "math/bits"

// IsPowerOfTwo reports whether n is a positive power of 2.
// A power of 2 has exactly one bit set, so n&(n-1) clears that bit
// and leaves zero only for powers of 2.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// NextPowerOfTwo returns the smallest power of 2 >= size.
// Exact powers of 2 are preserved; non-positive input yields 1.
// The size-1 subtraction prevents exact powers from being doubled.
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << bits.Len64(uint64(size-1))
}
