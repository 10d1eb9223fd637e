// Package zq implements arithmetic modulo word-sized prime moduli, with
// scalar and in-place vector operations in both constant-time and
// variable-time variants, Shoup precomputation for fast multiplication, and
// bit-packed serialization of residue vectors.
package zq

import (
	"fmt"
	"math/bits"
)

// Modulus stores a prime modulus q, 2 <= q < 2^62, together with the
// precomputed constants required by the Barrett, Montgomery and Shoup
// reduction algorithms.
type Modulus struct {
	Q            uint64
	Mask         uint64
	BRedConstant [2]uint64
	MRedConstant uint64
}

// NewModulus precomputes the reduction constants for q.
// q must be an odd prime strictly smaller than 2^62.
func NewModulus(q uint64) (*Modulus, error) {
	switch {
	case q < 2:
		return nil, fmt.Errorf("modulus should be at least 2 but is %d", q)
	case q&1 == 0:
		return nil, fmt.Errorf("modulus should be odd but is %d", q)
	case q >= 1<<62:
		return nil, fmt.Errorf("modulus should be smaller than 2^62 but has %d bits", bits.Len64(q))
	case !IsPrime(q):
		return nil, fmt.Errorf("modulus should be prime but %d is not", q)
	}

	return &Modulus{
		Q:            q,
		Mask:         (1 << uint64(bits.Len64(q-1))) - 1,
		BRedConstant: BRedConstant(q),
		MRedConstant: MRedConstant(q),
	}, nil
}

// Add returns x+y mod q. x and y must lie in [0, q).
func (m *Modulus) Add(x, y uint64) uint64 {
	return CRed(x+y, m.Q)
}

// Sub returns x-y mod q. x and y must lie in [0, q).
func (m *Modulus) Sub(x, y uint64) uint64 {
	return CRed(x+m.Q-y, m.Q)
}

// Neg returns -x mod q. x must lie in [0, q).
func (m *Modulus) Neg(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return m.Q - x
}

// Mul returns x*y mod q. x and y must lie in [0, q).
func (m *Modulus) Mul(x, y uint64) uint64 {
	return BRed(x, y, m.Q, m.BRedConstant)
}

// Reduce returns x mod q for any 64-bit x.
func (m *Modulus) Reduce(x uint64) uint64 {
	return BRedAdd(x, m.Q, m.BRedConstant)
}

// Shoup returns the Shoup encoding floor(x*2^64/q) of x. x must lie in [0, q).
func (m *Modulus) Shoup(x uint64) uint64 {
	return ShoupConstant(x, m.Q)
}

// MulShoup returns x*y mod q given the Shoup encoding of y.
func (m *Modulus) MulShoup(x, y, yShoup uint64) uint64 {
	return MulShoup(x, y, yShoup, m.Q)
}

// ModExp returns x^e mod q.
func (m *Modulus) ModExp(x, e uint64) uint64 {
	result := uint64(1)
	x = m.Reduce(x)
	for e > 0 {
		if e&1 == 1 {
			result = m.Mul(result, x)
		}
		x = m.Mul(x, x)
		e >>= 1
	}
	return result
}

// Inv returns x^-1 mod q, or an error if x is congruent to zero.
func (m *Modulus) Inv(x uint64) (uint64, error) {
	if m.Reduce(x) == 0 {
		return 0, fmt.Errorf("zero has no inverse modulo %d", m.Q)
	}
	return m.ModExp(x, m.Q-2), nil
}
