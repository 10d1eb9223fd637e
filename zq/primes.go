package zq

import (
	"fmt"
	"math/big"
	"math/bits"
)

// IsPrime runs the Baillie-PSW primality test, which is deterministic for
// inputs below 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// GenerateNTTPrimes returns n distinct primes congruent to 1 modulo nthRoot,
// searching downward from 2^logQ. The returned primes support the negacyclic
// NTT of size nthRoot/2.
func GenerateNTTPrimes(logQ int, nthRoot uint64, n int) ([]uint64, error) {
	if logQ < 2 || logQ > 61 {
		return nil, fmt.Errorf("logQ should be between 2 and 61 but is %d", logQ)
	}

	primes := make([]uint64, 0, n)
	x := (uint64(1) << logQ) + 1

	for len(primes) < n {
		if x <= nthRoot {
			return nil, fmt.Errorf("cannot generate %d primes for logQ=%d and nthRoot=%d", n, logQ, nthRoot)
		}
		x -= nthRoot
		if IsPrime(x) {
			primes = append(primes, x)
		}
	}

	return primes, nil
}

// NextNTTPrime returns the smallest prime strictly greater than q congruent
// to 1 modulo nthRoot. The input q must itself satisfy q = 1 mod nthRoot.
func NextNTTPrime(q, nthRoot uint64) (uint64, error) {
	qNext := q + nthRoot
	for !IsPrime(qNext) {
		qNext += nthRoot
		if bits.Len64(qNext) > 62 {
			return 0, fmt.Errorf("the next NTT prime after %d exceeds the maximum bit-size of 62 bits", q)
		}
	}
	return qNext, nil
}
