// Package utils implements generic helper functions used across the module.
package utils

import (
	"math/bits"
)

// BitReverse64 returns the bit-reversal of index with respect to a word of
// bitLen bits.
func BitReverse64(index, bitLen uint64) uint64 {
	return bits.Reverse64(index) >> (64 - bitLen)
}

// BitReversePermutation returns the permutation of [0, n) by reversed bits.
// n must be a power of two.
func BitReversePermutation(n int) []int {
	logN := uint64(bits.Len64(uint64(n)) - 1)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = int(BitReverse64(uint64(i), logN))
	}
	return perm
}

// EqualSlice returns true if both slices have the same length and content.
func EqualSlice[V comparable](a, b []V) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
