// Package conv converts between C size_t values and Go ints at the library
// boundary.
//
// Lengths describe memory the caller already owns, so a length that does not
// fit in an int is a programming error and panics. Offsets are clamped
// instead: an offset past the end of any possible haystack simply finds
// nothing.
package conv

import "math"

// SizeToInt converts a byte count to int.
// Panics if n > math.MaxInt.
//
//go:inline
func SizeToInt(n uint64) int {
	if n > math.MaxInt {
		panic("integer overflow: size value out of int range")
	}
	return int(n)
}

// ClampOffset converts a byte offset to int, saturating at math.MaxInt.
//
//go:inline
func ClampOffset(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// IntToSize converts a non-negative int to a byte count.
// Panics if n < 0.
//
//go:inline
func IntToSize(n int) uint64 {
	if n < 0 {
		panic("integer overflow: negative int used as size")
	}
	return uint64(n)
}
