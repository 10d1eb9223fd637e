package rq

import (
	"fmt"
	"math/big"

	"github.com/zefr0x/fhe.rs/utils"
	"github.com/zefr0x/fhe.rs/zq"
)

func (p *Poly) checkSameContext(other *Poly) {
	if !p.ctx.Equal(other.ctx) {
		panic("the operands are defined over different contexts")
	}
}

// AddAssign sets p = p + other. Both operands must share a context and a
// representation, and neither may be in NttShoup representation, since the
// Shoup encoding cannot be updated by an in-place addition.
func (p *Poly) AddAssign(other *Poly) {
	p.checkSameContext(other)
	if p.representation != other.representation {
		panic(fmt.Sprintf("cannot add polynomials in %s and %s representations", p.representation, other.representation))
	}
	if p.representation == NttShoup {
		panic("cannot add polynomials in NttShoup representation")
	}

	if p.allowVariableTime || other.allowVariableTime {
		for i, m := range p.ctx.q {
			m.AddVecVt(p.coeffs[i], other.coeffs[i])
		}
	} else {
		for i, m := range p.ctx.q {
			m.AddVec(p.coeffs[i], other.coeffs[i])
		}
	}
}

// Add returns p + other as a new polynomial.
func (p *Poly) Add(other *Poly) *Poly {
	out := p.CopyNew()
	out.AddAssign(other)
	return out
}

// SubAssign sets p = p - other, under the same contract as AddAssign.
func (p *Poly) SubAssign(other *Poly) {
	p.checkSameContext(other)
	if p.representation != other.representation {
		panic(fmt.Sprintf("cannot subtract polynomials in %s and %s representations", p.representation, other.representation))
	}
	if p.representation == NttShoup {
		panic("cannot subtract polynomials in NttShoup representation")
	}

	if p.allowVariableTime || other.allowVariableTime {
		for i, m := range p.ctx.q {
			m.SubVecVt(p.coeffs[i], other.coeffs[i])
		}
	} else {
		for i, m := range p.ctx.q {
			m.SubVec(p.coeffs[i], other.coeffs[i])
		}
	}
}

// Sub returns p - other as a new polynomial.
func (p *Poly) Sub(other *Poly) *Poly {
	out := p.CopyNew()
	out.SubAssign(other)
	return out
}

// Neg returns -p as a new polynomial. For an NttShoup input the Shoup
// encoding of the result is recomputed from the negated coefficients, never
// carried over stale.
func (p *Poly) Neg() *Poly {
	out := p.CopyNew()
	if out.allowVariableTime {
		for i, m := range out.ctx.q {
			m.NegVecVt(out.coeffs[i])
		}
	} else {
		for i, m := range out.ctx.q {
			m.NegVec(out.coeffs[i])
		}
	}
	if out.representation == NttShoup {
		out.computeShoup()
	}
	return out
}

// MulAssign sets p = p * other, coefficient-wise in the transform domain.
// p must be in Ntt representation; other must be in Ntt or NttShoup
// representation, the latter selecting the Shoup-accelerated kernel.
func (p *Poly) MulAssign(other *Poly) {
	p.checkSameContext(other)
	if p.representation != Ntt {
		panic(fmt.Sprintf("cannot multiply in place into a polynomial in %s representation", p.representation))
	}

	vt := p.allowVariableTime || other.allowVariableTime
	switch other.representation {
	case Ntt:
		if vt {
			for i, m := range p.ctx.q {
				m.MulVecVt(p.coeffs[i], other.coeffs[i])
			}
		} else {
			for i, m := range p.ctx.q {
				m.MulVec(p.coeffs[i], other.coeffs[i])
			}
		}
	case NttShoup:
		if vt {
			for i, m := range p.ctx.q {
				m.MulShoupVecVt(p.coeffs[i], other.coeffs[i], other.coeffsShoup[i])
			}
		} else {
			for i, m := range p.ctx.q {
				m.MulShoupVec(p.coeffs[i], other.coeffs[i], other.coeffsShoup[i])
			}
		}
	default:
		panic(fmt.Sprintf("cannot multiply by a polynomial in %s representation", other.representation))
	}
}

// Mul returns p * other as a new polynomial. When p is in NttShoup
// representation the product is computed as other * p, with other copied and
// demoted from NttShoup to Ntt if needed: multiplication is commutative and
// the Shoup encoding only accelerates the second operand.
func (p *Poly) Mul(other *Poly) *Poly {
	if p.representation == NttShoup {
		out := other.CopyNew()
		if out.representation == NttShoup {
			out.ChangeRepresentation(Ntt)
		}
		out.MulAssign(p)
		return out
	}
	out := p.CopyNew()
	out.MulAssign(other)
	return out
}

// MulScalarAssign multiplies every coefficient of p by the scalar. The
// scalar is broadcast into a constant polynomial, forced into the transform
// domain where it becomes the all-equal vector, and multiplied in
// coefficient-wise, which is representation-preserving for p. The Shoup
// encoding is recomputed when p is in NttShoup representation.
func (p *Poly) MulScalarAssign(scalar *big.Int) {
	q, err := NewPolyFromBigIntSlice(p.ctx, PowerBasis, []*big.Int{scalar})
	if err != nil {
		// Sanity check, a single scalar always converts.
		panic(err)
	}
	q.ChangeRepresentation(Ntt)

	if p.allowVariableTime {
		for i, m := range p.ctx.q {
			m.MulVecVt(p.coeffs[i], q.coeffs[i])
		}
	} else {
		for i, m := range p.ctx.q {
			m.MulVec(p.coeffs[i], q.coeffs[i])
		}
	}
	if p.representation == NttShoup {
		p.computeShoup()
	}
}

// MulScalar returns p scaled by the scalar as a new polynomial.
func (p *Poly) MulScalar(scalar *big.Int) *Poly {
	out := p.CopyNew()
	out.MulScalarAssign(scalar)
	return out
}

// SwitchDown divides p by the last modulus of its chain with rounding, wipes
// and drops the corresponding residue row and rebinds p to the next context.
// p must be in PowerBasis representation and its context must have a next
// context in the chain.
func (p *Poly) SwitchDown() error {
	next := p.ctx.next
	if next == nil {
		return fmt.Errorf("%w: the modulus chain is exhausted", ErrInvalidContext)
	}
	if p.representation != PowerBasis {
		return fmt.Errorf("the representation should be PowerBasis to switch down but is %s", p.representation)
	}

	level := len(p.ctx.moduli) - 1
	qL := p.ctx.q[level]
	half := qL.Q >> 1
	last := p.coeffs[level]

	for i := 0; i < level; i++ {
		m := p.ctx.q[i]
		halfModQi := m.Reduce(half)
		inv := p.ctx.invLastQiModQj[i]
		invShoup := p.ctx.invLastQiModQjShoup[i]
		row := p.coeffs[i]
		for j := range row {
			// Centered remainder of the coefficient modulo the last prime,
			// so the division rounds to nearest.
			centered := zq.CRed(last[j]+half, qL.Q)
			rem := m.Sub(m.Reduce(centered), halfModQi)
			row[j] = m.MulShoup(m.Sub(row[j], rem), inv, invShoup)
		}
	}

	utils.Memzero(last)
	p.buff = p.buff[:level*p.ctx.degree]
	p.coeffs = p.coeffs[:level]
	p.ctx = next
	return nil
}
