// Package ntt implements the in-place negacyclic number-theoretic transform
// over Z_q[X]/(X^N + 1) for NTT-friendly word-sized primes.
package ntt

import (
	"fmt"

	"github.com/zefr0x/fhe.rs/zq"
)

// SupportsNTT reports whether the negacyclic transform of size n is defined
// modulo q, that is, whether n is a power of two and q = 1 mod 2n.
func SupportsNTT(q uint64, n int) bool {
	if n < 1 || n&(n-1) != 0 {
		return false
	}
	return q&1 == 1 && q%(2*uint64(n)) == 1
}

// Operator holds the root-of-unity tables required to transform polynomials
// of a fixed degree modulo a fixed prime. An Operator is immutable and safe
// for concurrent use.
type Operator struct {
	n            int
	q            uint64
	mredConstant uint64

	// nInv is n^-1 mod q in Montgomery form.
	nInv uint64

	// rootsForward[bitrev(i)] is psi^i in Montgomery form, for psi a
	// primitive 2n-th root of unity; rootsBackward holds psi^-i.
	rootsForward  []uint64
	rootsBackward []uint64
}

// NewOperator builds the transform tables for polynomials of degree n modulo
// m. bitrev must be the bit-reversal permutation of [0, n), as precomputed by
// the caller. Construction fails when m does not support a transform of
// size n.
func NewOperator(m *zq.Modulus, n int, bitrev []int) (*Operator, error) {
	if !SupportsNTT(m.Q, n) {
		return nil, fmt.Errorf("the modulus %d does not support the negacyclic NTT of size %d", m.Q, n)
	}
	if len(bitrev) != n {
		return nil, fmt.Errorf("the bit-reversal table has length %d but the degree is %d", len(bitrev), n)
	}

	psi, err := primitiveRoot2N(m, uint64(n))
	if err != nil {
		return nil, err
	}
	psiInv, err := m.Inv(psi)
	if err != nil {
		// Sanity check, a root of unity is always invertible.
		panic(err)
	}
	nInv, err := m.Inv(uint64(n))
	if err != nil {
		// Sanity check, n < q since q = 1 mod 2n.
		panic(err)
	}

	op := &Operator{
		n:             n,
		q:             m.Q,
		mredConstant:  m.MRedConstant,
		nInv:          zq.MForm(nInv, m.Q, m.BRedConstant),
		rootsForward:  make([]uint64, n),
		rootsBackward: make([]uint64, n),
	}

	psiMont := zq.MForm(psi, m.Q, m.BRedConstant)
	psiInvMont := zq.MForm(psiInv, m.Q, m.BRedConstant)

	op.rootsForward[0] = zq.MForm(1, m.Q, m.BRedConstant)
	op.rootsBackward[0] = op.rootsForward[0]
	for i := 1; i < n; i++ {
		op.rootsForward[bitrev[i]] = zq.MRed(op.rootsForward[bitrev[i-1]], psiMont, m.Q, m.MRedConstant)
		op.rootsBackward[bitrev[i]] = zq.MRed(op.rootsBackward[bitrev[i-1]], psiInvMont, m.Q, m.MRedConstant)
	}

	return op, nil
}

// N returns the transform size.
func (op *Operator) N() int {
	return op.n
}

// Modulus returns the prime modulus of the transform.
func (op *Operator) Modulus() uint64 {
	return op.q
}

// Forward computes the in-place forward negacyclic transform of p. The slice
// must hold exactly n coefficients in [0, q); the output is in bit-reversed
// order, as expected by Backward and by coefficient-wise multiplication.
func (op *Operator) Forward(p []uint64) {
	if len(p) != op.n {
		panic(fmt.Sprintf("input length %d does not match the transform size %d", len(p), op.n))
	}

	q, qInv := op.q, op.mredConstant

	t := op.n
	for m := 1; m < op.n; m <<= 1 {
		t >>= 1
		for i := 0; i < m; i++ {
			j1 := 2 * i * t
			psi := op.rootsForward[m+i]
			for j := j1; j < j1+t; j++ {
				u := p[j]
				v := zq.MRed(p[j+t], psi, q, qInv)
				p[j] = zq.CRed(u+v, q)
				p[j+t] = zq.CRed(u+q-v, q)
			}
		}
	}
}

// Backward computes the in-place backward negacyclic transform of p,
// inverting Forward. The slice must hold exactly n coefficients in [0, q).
func (op *Operator) Backward(p []uint64) {
	if len(p) != op.n {
		panic(fmt.Sprintf("input length %d does not match the transform size %d", len(p), op.n))
	}

	q, qInv := op.q, op.mredConstant

	t := 1
	for m := op.n; m > 1; m >>= 1 {
		j1 := 0
		h := m >> 1
		for i := 0; i < h; i++ {
			psi := op.rootsBackward[h+i]
			for j := j1; j < j1+t; j++ {
				u := p[j]
				v := p[j+t]
				p[j] = zq.CRed(u+v, q)
				p[j+t] = zq.MRed(u+q-v, psi, q, qInv)
			}
			j1 += 2 * t
		}
		t <<= 1
	}

	for i := range p {
		p[i] = zq.MRed(p[i], op.nInv, q, qInv)
	}
}

// primitiveRoot2N returns a primitive 2n-th root of unity modulo m.Q, found
// by exponentiating candidates to (q-1)/2n and checking psi^n = -1.
func primitiveRoot2N(m *zq.Modulus, n uint64) (uint64, error) {
	q := m.Q
	e := (q - 1) / (2 * n)
	for a := uint64(2); a < q; a++ {
		psi := m.ModExp(a, e)
		if m.ModExp(psi, n) == q-1 {
			return psi, nil
		}
	}
	return 0, fmt.Errorf("no primitive 2*%d-th root of unity modulo %d", n, q)
}
