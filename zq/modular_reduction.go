package zq

import (
	"math/big"
	"math/bits"
)

// ================
// Montgomery form
// ================

// MRedConstant returns the constant qInv = q^-1 mod 2^64 required by MRed.
// q must be odd.
func MRedConstant(q uint64) (qInv uint64) {
	qInv = 1
	x := q
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return
}

// MForm returns a*2^64 mod q.
func MForm(a, q uint64, bredconstant [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, bredconstant[1])
	r = -(a*bredconstant[0] + mhi) * q
	if r >= q {
		r -= q
	}
	return
}

// IMForm returns a*2^-64 mod q.
func IMForm(a, q, qInv uint64) (r uint64) {
	r, _ = bits.Mul64(a*qInv, q)
	r = q - r
	if r >= q {
		r -= q
	}
	return
}

// MRed returns x*y*2^-64 mod q.
func MRed(x, y, q, qInv uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	R := alo * qInv
	H, _ := bits.Mul64(R, q)
	r = ahi - H + q
	if r >= q {
		r -= q
	}
	return
}

// MRedLazy returns x*y*2^-64 mod q in the range [0, 2q).
func MRedLazy(x, y, q, qInv uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	R := alo * qInv
	H, _ := bits.Mul64(R, q)
	r = ahi - H + q
	return
}

// ==================
// Barrett reduction
// ==================

// BRedConstant returns the constant 2^128/q, split into (2^128/q)>>64 and
// 2^128/q mod 2^64, required by the Barrett reduction.
func BRedConstant(q uint64) (constant [2]uint64) {
	bigR := new(big.Int).Lsh(big.NewInt(1), 128)
	bigR.Quo(bigR, new(big.Int).SetUint64(q))

	constant[0] = new(big.Int).Rsh(bigR, 64).Uint64()
	constant[1] = new(big.Int).And(bigR, new(big.Int).SetUint64(^uint64(0))).Uint64()
	return
}

// BRedAdd returns a mod q for any 64-bit a.
func BRedAdd(a, q uint64, bredconstant [2]uint64) (r uint64) {
	s0, _ := bits.Mul64(a, bredconstant[0])
	r = a - s0*q
	if r >= q {
		r -= q
	}
	return
}

// BRedAddLazy returns a mod q in the range [0, 2q).
func BRedAddLazy(a, q uint64, bredconstant [2]uint64) uint64 {
	s0, _ := bits.Mul64(a, bredconstant[0])
	return a - s0*q
}

// BRed returns x*y mod q.
func BRed(x, y, q uint64, bredconstant [2]uint64) (r uint64) {
	r = BRedLazy(x, y, q, bredconstant)
	if r >= q {
		r -= q
	}
	return
}

// BRedLazy returns x*y mod q in the range [0, 2q).
func BRedLazy(x, y, q uint64, bredconstant [2]uint64) (r uint64) {
	var lhi, mhi, mlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	// (alo*blo)>>64

	lhi, _ = bits.Mul64(alo, bredconstant[1])

	// ((ahi*blo + alo*bhi) + (alo*blo)>>64)>>64

	mhi, mlo = bits.Mul64(alo, bredconstant[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, bredconstant[1])

	_, carry = bits.Add64(mlo, s0, 0)

	lhi = mhi + carry

	// (ahi*bhi) + (((ahi*blo + alo*bhi) + (alo*blo)>>64)>>64)

	s0 = ahi*bredconstant[0] + s1 + lhi

	r = alo - s0*q

	return
}

// ======================
// Shoup multiplication
// ======================

// ShoupConstant returns floor(x*2^64/q), the Shoup encoding of x for the
// modulus q. x must lie in [0, q).
func ShoupConstant(x, q uint64) uint64 {
	hi, _ := bits.Div64(x, 0, q)
	return hi
}

// MulShoup returns x*y mod q given yShoup = floor(y*2^64/q).
func MulShoup(x, y, yShoup, q uint64) (r uint64) {
	r = MulShoupLazy(x, y, yShoup, q)
	if r >= q {
		r -= q
	}
	return
}

// MulShoupLazy returns x*y mod q in the range [0, 2q), given
// yShoup = floor(y*2^64/q).
func MulShoupLazy(x, y, yShoup, q uint64) uint64 {
	hi, _ := bits.Mul64(x, yShoup)
	return x*y - hi*q
}

// ======================
// Conditional reduction
// ======================

// CRed returns a mod q, assuming a lies in [0, 2q).
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

// cred is the branchless counterpart of CRed.
func cred(a, q uint64) uint64 {
	a -= q
	return a + (q & -(a >> 63))
}

// neg returns q-a for a in (0, q) and 0 for a == 0, without branching on a.
func neg(a, q uint64) uint64 {
	return (q - a) & -((a | -a) >> 63)
}
