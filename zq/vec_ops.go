package zq

// Vector operations over residue slices, in place over the first argument.
// The main kernels are unrolled over blocks of 8 coefficients; slices whose
// length is not a multiple of 8 fall through to a scalar tail.
//
// The plain variants run in constant time (branchless reductions). The Vt
// variants use conditional reductions and may leak timing information about
// the operands; they must only be used on public data.

// AddVec sets p1 = p1 + p2 mod q, in constant time.
func (m *Modulus) AddVec(p1, p2 []uint64) {
	q := m.Q
	n := len(p1) &^ 7
	for i := 0; i < n; i += 8 {
		x := (*[8]uint64)(p1[i:])
		y := (*[8]uint64)(p2[i:])
		x[0] = cred(x[0]+y[0], q)
		x[1] = cred(x[1]+y[1], q)
		x[2] = cred(x[2]+y[2], q)
		x[3] = cred(x[3]+y[3], q)
		x[4] = cred(x[4]+y[4], q)
		x[5] = cred(x[5]+y[5], q)
		x[6] = cred(x[6]+y[6], q)
		x[7] = cred(x[7]+y[7], q)
	}
	for i := n; i < len(p1); i++ {
		p1[i] = cred(p1[i]+p2[i], q)
	}
}

// AddVecVt sets p1 = p1 + p2 mod q, in variable time.
func (m *Modulus) AddVecVt(p1, p2 []uint64) {
	q := m.Q
	n := len(p1) &^ 7
	for i := 0; i < n; i += 8 {
		x := (*[8]uint64)(p1[i:])
		y := (*[8]uint64)(p2[i:])
		x[0] = CRed(x[0]+y[0], q)
		x[1] = CRed(x[1]+y[1], q)
		x[2] = CRed(x[2]+y[2], q)
		x[3] = CRed(x[3]+y[3], q)
		x[4] = CRed(x[4]+y[4], q)
		x[5] = CRed(x[5]+y[5], q)
		x[6] = CRed(x[6]+y[6], q)
		x[7] = CRed(x[7]+y[7], q)
	}
	for i := n; i < len(p1); i++ {
		p1[i] = CRed(p1[i]+p2[i], q)
	}
}

// SubVec sets p1 = p1 - p2 mod q, in constant time.
func (m *Modulus) SubVec(p1, p2 []uint64) {
	q := m.Q
	n := len(p1) &^ 7
	for i := 0; i < n; i += 8 {
		x := (*[8]uint64)(p1[i:])
		y := (*[8]uint64)(p2[i:])
		x[0] = cred(x[0]+q-y[0], q)
		x[1] = cred(x[1]+q-y[1], q)
		x[2] = cred(x[2]+q-y[2], q)
		x[3] = cred(x[3]+q-y[3], q)
		x[4] = cred(x[4]+q-y[4], q)
		x[5] = cred(x[5]+q-y[5], q)
		x[6] = cred(x[6]+q-y[6], q)
		x[7] = cred(x[7]+q-y[7], q)
	}
	for i := n; i < len(p1); i++ {
		p1[i] = cred(p1[i]+q-p2[i], q)
	}
}

// SubVecVt sets p1 = p1 - p2 mod q, in variable time.
func (m *Modulus) SubVecVt(p1, p2 []uint64) {
	q := m.Q
	n := len(p1) &^ 7
	for i := 0; i < n; i += 8 {
		x := (*[8]uint64)(p1[i:])
		y := (*[8]uint64)(p2[i:])
		x[0] = CRed(x[0]+q-y[0], q)
		x[1] = CRed(x[1]+q-y[1], q)
		x[2] = CRed(x[2]+q-y[2], q)
		x[3] = CRed(x[3]+q-y[3], q)
		x[4] = CRed(x[4]+q-y[4], q)
		x[5] = CRed(x[5]+q-y[5], q)
		x[6] = CRed(x[6]+q-y[6], q)
		x[7] = CRed(x[7]+q-y[7], q)
	}
	for i := n; i < len(p1); i++ {
		p1[i] = CRed(p1[i]+q-p2[i], q)
	}
}

// NegVec sets p1 = -p1 mod q, in constant time.
func (m *Modulus) NegVec(p1 []uint64) {
	q := m.Q
	n := len(p1) &^ 7
	for i := 0; i < n; i += 8 {
		x := (*[8]uint64)(p1[i:])
		x[0] = neg(x[0], q)
		x[1] = neg(x[1], q)
		x[2] = neg(x[2], q)
		x[3] = neg(x[3], q)
		x[4] = neg(x[4], q)
		x[5] = neg(x[5], q)
		x[6] = neg(x[6], q)
		x[7] = neg(x[7], q)
	}
	for i := n; i < len(p1); i++ {
		p1[i] = neg(p1[i], q)
	}
}

// NegVecVt sets p1 = -p1 mod q, in variable time.
func (m *Modulus) NegVecVt(p1 []uint64) {
	q := m.Q
	for i := range p1 {
		if p1[i] != 0 {
			p1[i] = q - p1[i]
		}
	}
}

// MulVec sets p1 = p1 * p2 mod q (coefficient-wise), in constant time.
func (m *Modulus) MulVec(p1, p2 []uint64) {
	q, bred := m.Q, m.BRedConstant
	n := len(p1) &^ 7
	for i := 0; i < n; i += 8 {
		x := (*[8]uint64)(p1[i:])
		y := (*[8]uint64)(p2[i:])
		x[0] = cred(BRedLazy(x[0], y[0], q, bred), q)
		x[1] = cred(BRedLazy(x[1], y[1], q, bred), q)
		x[2] = cred(BRedLazy(x[2], y[2], q, bred), q)
		x[3] = cred(BRedLazy(x[3], y[3], q, bred), q)
		x[4] = cred(BRedLazy(x[4], y[4], q, bred), q)
		x[5] = cred(BRedLazy(x[5], y[5], q, bred), q)
		x[6] = cred(BRedLazy(x[6], y[6], q, bred), q)
		x[7] = cred(BRedLazy(x[7], y[7], q, bred), q)
	}
	for i := n; i < len(p1); i++ {
		p1[i] = cred(BRedLazy(p1[i], p2[i], q, bred), q)
	}
}

// MulVecVt sets p1 = p1 * p2 mod q (coefficient-wise), in variable time.
func (m *Modulus) MulVecVt(p1, p2 []uint64) {
	q, bred := m.Q, m.BRedConstant
	n := len(p1) &^ 7
	for i := 0; i < n; i += 8 {
		x := (*[8]uint64)(p1[i:])
		y := (*[8]uint64)(p2[i:])
		x[0] = BRed(x[0], y[0], q, bred)
		x[1] = BRed(x[1], y[1], q, bred)
		x[2] = BRed(x[2], y[2], q, bred)
		x[3] = BRed(x[3], y[3], q, bred)
		x[4] = BRed(x[4], y[4], q, bred)
		x[5] = BRed(x[5], y[5], q, bred)
		x[6] = BRed(x[6], y[6], q, bred)
		x[7] = BRed(x[7], y[7], q, bred)
	}
	for i := n; i < len(p1); i++ {
		p1[i] = BRed(p1[i], p2[i], q, bred)
	}
}

// MulShoupVec sets p1 = p1 * p2 mod q (coefficient-wise) using the Shoup
// encoding of p2, in constant time.
func (m *Modulus) MulShoupVec(p1, p2, p2Shoup []uint64) {
	q := m.Q
	n := len(p1) &^ 7
	for i := 0; i < n; i += 8 {
		x := (*[8]uint64)(p1[i:])
		y := (*[8]uint64)(p2[i:])
		s := (*[8]uint64)(p2Shoup[i:])
		x[0] = cred(MulShoupLazy(x[0], y[0], s[0], q), q)
		x[1] = cred(MulShoupLazy(x[1], y[1], s[1], q), q)
		x[2] = cred(MulShoupLazy(x[2], y[2], s[2], q), q)
		x[3] = cred(MulShoupLazy(x[3], y[3], s[3], q), q)
		x[4] = cred(MulShoupLazy(x[4], y[4], s[4], q), q)
		x[5] = cred(MulShoupLazy(x[5], y[5], s[5], q), q)
		x[6] = cred(MulShoupLazy(x[6], y[6], s[6], q), q)
		x[7] = cred(MulShoupLazy(x[7], y[7], s[7], q), q)
	}
	for i := n; i < len(p1); i++ {
		p1[i] = cred(MulShoupLazy(p1[i], p2[i], p2Shoup[i], q), q)
	}
}

// MulShoupVecVt sets p1 = p1 * p2 mod q (coefficient-wise) using the Shoup
// encoding of p2, in variable time.
func (m *Modulus) MulShoupVecVt(p1, p2, p2Shoup []uint64) {
	q := m.Q
	n := len(p1) &^ 7
	for i := 0; i < n; i += 8 {
		x := (*[8]uint64)(p1[i:])
		y := (*[8]uint64)(p2[i:])
		s := (*[8]uint64)(p2Shoup[i:])
		x[0] = MulShoup(x[0], y[0], s[0], q)
		x[1] = MulShoup(x[1], y[1], s[1], q)
		x[2] = MulShoup(x[2], y[2], s[2], q)
		x[3] = MulShoup(x[3], y[3], s[3], q)
		x[4] = MulShoup(x[4], y[4], s[4], q)
		x[5] = MulShoup(x[5], y[5], s[5], q)
		x[6] = MulShoup(x[6], y[6], s[6], q)
		x[7] = MulShoup(x[7], y[7], s[7], q)
	}
	for i := n; i < len(p1); i++ {
		p1[i] = MulShoup(p1[i], p2[i], p2Shoup[i], q)
	}
}

// ReduceVec sets p1 = p1 mod q for arbitrary 64-bit inputs, in constant time.
func (m *Modulus) ReduceVec(p1 []uint64) {
	q, bred := m.Q, m.BRedConstant
	for i := range p1 {
		p1[i] = cred(BRedAddLazy(p1[i], q, bred), q)
	}
}

// ReduceI64Vec fills p1 with p2 mod q, mapping negative inputs to their
// positive residues, in constant time. Both slices must have the same length.
func (m *Modulus) ReduceI64Vec(p1 []uint64, p2 []int64) {
	q, bred := m.Q, m.BRedConstant
	for i := range p1 {
		v := p2[i]
		sign := uint64(v >> 63)
		abs := (uint64(v) ^ sign) - sign
		r := cred(BRedAddLazy(abs, q, bred), q)
		p1[i] = r ^ ((r ^ neg(r, q)) & sign)
	}
}

// ShoupVec fills p1Shoup with the Shoup encoding of p1. Every entry of p1
// must lie in [0, q).
func (m *Modulus) ShoupVec(p1Shoup, p1 []uint64) {
	q := m.Q
	for i := range p1 {
		p1Shoup[i] = ShoupConstant(p1[i], q)
	}
}
