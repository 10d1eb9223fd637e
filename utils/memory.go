package utils

import (
	"runtime"

	"golang.org/x/exp/constraints"
)

// Memzero overwrites s with zeros. The backing array is kept reachable until
// after the stores, so the compiler cannot elide the wipe as dead stores.
func Memzero[V constraints.Integer](s []V) {
	if len(s) == 0 {
		return
	}
	for i := range s {
		s[i] = 0
	}
	runtime.KeepAlive(&s[0])
}
