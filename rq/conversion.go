package rq

import (
	"fmt"
	"math/big"
)

// NewPolyFromUint64 returns the constant polynomial with the given scalar,
// reduced modulo each prime, as its constant term. Only the PowerBasis
// representation is supported for scalar imports.
func NewPolyFromUint64(ctx *Context, representation Representation, scalar uint64) (*Poly, error) {
	if representation != PowerBasis {
		return nil, fmt.Errorf("the representation should be PowerBasis to convert a scalar but is %s", representation)
	}

	p := NewPoly(ctx, PowerBasis)
	for i, m := range ctx.q {
		p.coeffs[i][0] = m.Reduce(scalar)
	}
	return p, nil
}

// NewPolyFromUint64Slice builds a polynomial from unsigned values. A slice
// of length moduli*degree is interpreted directly as the full residue matrix
// in the given representation. For PowerBasis only, a slice of length at
// most degree is zero-padded and reduced independently modulo each prime.
// Any other length is rejected, as is a transform-domain import that does
// not cover all moduli.
func NewPolyFromUint64Slice(ctx *Context, representation Representation, v []uint64) (*Poly, error) {
	full := len(ctx.moduli) * ctx.degree

	switch representation {
	case Ntt, NttShoup:
		if len(v) != full {
			return nil, fmt.Errorf("invalid coefficients: transform-domain imports require all %d residues but got %d", full, len(v))
		}
		p := NewPoly(ctx, representation)
		copy(p.buff, v)
		if representation == NttShoup {
			p.computeShoup()
		}
		return p, nil

	case PowerBasis:
		if len(v) == full {
			p := NewPoly(ctx, PowerBasis)
			copy(p.buff, v)
			return p, nil
		}
		if len(v) <= ctx.degree {
			p := NewPoly(ctx, PowerBasis)
			for i, m := range ctx.q {
				copy(p.coeffs[i], v)
				m.ReduceVec(p.coeffs[i])
			}
			return p, nil
		}
		return nil, fmt.Errorf("invalid coefficients: got %d values but the degree is %d", len(v), ctx.degree)

	default:
		return nil, fmt.Errorf("unknown representation %s", representation)
	}
}

// NewPolyFromInt64Slice builds a PowerBasis polynomial from signed values of
// length at most degree, zero-padded and reduced independently modulo each
// prime. Only the PowerBasis representation is supported for signed imports.
func NewPolyFromInt64Slice(ctx *Context, representation Representation, v []int64) (*Poly, error) {
	if representation != PowerBasis {
		return nil, fmt.Errorf("the representation should be PowerBasis to convert signed values but is %s", representation)
	}
	if len(v) > ctx.degree {
		return nil, fmt.Errorf("invalid coefficients: got %d values but the degree is %d", len(v), ctx.degree)
	}

	p := NewPoly(ctx, PowerBasis)
	for i, m := range ctx.q {
		m.ReduceI64Vec(p.coeffs[i][:len(v)], v)
	}
	return p, nil
}

// NewPolyFromBigIntSlice builds a polynomial from at most degree
// arbitrary-precision integers, each projected into its per-modulus residues
// to fill one coefficient column, zero-padded beyond len(v). The residues
// are interpreted in the given representation.
func NewPolyFromBigIntSlice(ctx *Context, representation Representation, v []*big.Int) (*Poly, error) {
	if representation > NttShoup {
		return nil, fmt.Errorf("unknown representation %s", representation)
	}
	if len(v) > ctx.degree {
		return nil, fmt.Errorf("invalid coefficients: got %d values but the degree is %d", len(v), ctx.degree)
	}

	p := NewPoly(ctx, representation)
	for j, x := range v {
		for i, r := range ctx.rns.Project(x) {
			p.coeffs[i][j] = r
		}
	}
	if representation == NttShoup {
		p.computeShoup()
	}
	return p, nil
}

// NewPolyFromResidues builds a polynomial from a raw residue matrix of shape
// (moduli, degree), accepted as-is in the given representation.
func NewPolyFromResidues(ctx *Context, representation Representation, residues [][]uint64) (*Poly, error) {
	if representation > NttShoup {
		return nil, fmt.Errorf("unknown representation %s", representation)
	}
	if len(residues) != len(ctx.moduli) {
		return nil, fmt.Errorf("invalid shape: got %d rows but the context has %d moduli", len(residues), len(ctx.moduli))
	}
	for i := range residues {
		if len(residues[i]) != ctx.degree {
			return nil, fmt.Errorf("invalid shape: row %d holds %d coefficients but the degree is %d", i, len(residues[i]), ctx.degree)
		}
	}

	p := NewPoly(ctx, representation)
	for i := range residues {
		copy(p.coeffs[i], residues[i])
	}
	if representation == NttShoup {
		p.computeShoup()
	}
	return p, nil
}

// Coefficients returns a copy of the residue matrix, one row per modulus.
func (p *Poly) Coefficients() [][]uint64 {
	buff := make([]uint64, len(p.buff))
	copy(buff, p.buff)
	return resliceMatrix(buff, len(p.ctx.moduli), p.ctx.degree)
}

// CoefficientsUint64 returns a flat copy of the residue matrix, row per
// modulus. The caller must track separately which representation the values
// are in.
func (p *Poly) CoefficientsUint64() []uint64 {
	out := make([]uint64, len(p.buff))
	copy(out, p.buff)
	return out
}

// CoefficientsBigInt lifts every coefficient column across all moduli,
// returning one integer in [0, modulus product) per coefficient.
func (p *Poly) CoefficientsBigInt() []*big.Int {
	out := make([]*big.Int, p.ctx.degree)
	column := make([]uint64, len(p.ctx.moduli))
	for j := range out {
		for i := range column {
			column[i] = p.coeffs[i][j]
		}
		out[j] = p.ctx.rns.Lift(column)
	}
	return out
}
