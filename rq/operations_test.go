package rq

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSub(t *testing.T) {
	for _, param := range testParams {
		ctx := newTestContext(t, param)

		for _, representation := range []Representation{PowerBasis, Ntt} {
			t.Run(testString("Add/"+representation.String(), param), func(t *testing.T) {
				a := NewRandomPoly(ctx, representation)
				b := NewRandomPoly(ctx, representation)

				c := a.Add(b)
				require.Equal(t, representation, c.Representation())
				for i, m := range ctx.q {
					for j := range c.coeffs[i] {
						require.Equal(t, m.Add(a.coeffs[i][j], b.coeffs[i][j]), c.coeffs[i][j])
					}
				}

				// The variable-time kernels compute the same values.
				vt := a.CopyNew()
				vt.AllowVariableTimeComputations()
				vtSum := vt.Add(b)
				require.Equal(t, c.CoefficientsUint64(), vtSum.CoefficientsUint64())

				// In-place addition matches.
				d := a.CopyNew()
				d.AddAssign(b)
				require.True(t, c.Equal(d))
			})

			t.Run(testString("Sub/"+representation.String(), param), func(t *testing.T) {
				a := NewRandomPoly(ctx, representation)
				b := NewRandomPoly(ctx, representation)

				c := a.Sub(b)
				for i, m := range ctx.q {
					for j := range c.coeffs[i] {
						require.Equal(t, m.Sub(a.coeffs[i][j], b.coeffs[i][j]), c.coeffs[i][j])
					}
				}

				// a - b + b = a.
				c.AddAssign(b)
				require.True(t, a.Equal(c))
			})
		}

		t.Run(testString("Neg", param), func(t *testing.T) {
			for _, representation := range []Representation{PowerBasis, Ntt, NttShoup} {
				a := NewRandomPoly(ctx, representation)
				c := a.Neg()
				require.Equal(t, representation, c.Representation())
				for i, m := range ctx.q {
					for j := range c.coeffs[i] {
						require.Equal(t, m.Neg(a.coeffs[i][j]), c.coeffs[i][j])
					}
				}
				if representation == NttShoup {
					requireShoupConsistent(t, c)
				}

				vt := a.CopyNew()
				vt.AllowVariableTimeComputations()
				require.Equal(t, c.CoefficientsUint64(), vt.Neg().CoefficientsUint64())
			}
		})

		t.Run(testString("AddSubPanics", param), func(t *testing.T) {
			a := NewRandomPoly(ctx, PowerBasis)
			b := NewRandomPoly(ctx, Ntt)
			s := NewRandomPoly(ctx, NttShoup)

			// Mismatched representations.
			require.Panics(t, func() { a.Add(b) })
			require.Panics(t, func() { a.Sub(b) })

			// NttShoup operands cannot be updated in place.
			require.Panics(t, func() { s.Add(s) })
			require.Panics(t, func() { s.Sub(s) })

			// Mismatched contexts.
			other := NewRandomPoly(newTestContext(t, testParams[0]), PowerBasis)
			if !ctx.Equal(other.Context()) {
				require.Panics(t, func() { a.Add(other) })
			}
		})
	}
}

func TestMul(t *testing.T) {
	for _, param := range testParams {
		ctx := newTestContext(t, param)

		t.Run(testString("Pointwise", param), func(t *testing.T) {
			a := NewRandomPoly(ctx, Ntt)
			b := NewRandomPoly(ctx, Ntt)

			c := a.Mul(b)
			require.Equal(t, Ntt, c.Representation())
			for i, m := range ctx.q {
				for j := range c.coeffs[i] {
					require.Equal(t, m.Mul(a.coeffs[i][j], b.coeffs[i][j]), c.coeffs[i][j])
				}
			}

			// The Shoup-accelerated kernel computes the same product.
			bShoup := b.CopyNew()
			bShoup.ChangeRepresentation(NttShoup)
			require.Equal(t, c.CoefficientsUint64(), a.Mul(bShoup).CoefficientsUint64())

			// A NttShoup receiver commutes into the second operand slot; the
			// product is a plain Ntt polynomial.
			aShoup := a.CopyNew()
			aShoup.ChangeRepresentation(NttShoup)
			d := aShoup.Mul(b)
			require.Equal(t, Ntt, d.Representation())
			require.True(t, c.Equal(d))

			e := aShoup.Mul(bShoup)
			require.Equal(t, Ntt, e.Representation())
			require.True(t, c.Equal(e))

			// Variable-time agreement.
			vt := a.CopyNew()
			vt.AllowVariableTimeComputations()
			require.Equal(t, c.CoefficientsUint64(), vt.Mul(b).CoefficientsUint64())
			require.Equal(t, c.CoefficientsUint64(), vt.Mul(bShoup).CoefficientsUint64())
		})

		t.Run(testString("MulPanics", param), func(t *testing.T) {
			a := NewRandomPoly(ctx, Ntt)
			pb := NewRandomPoly(ctx, PowerBasis)
			s := NewRandomPoly(ctx, NttShoup)

			// Products are only defined in the transform domain.
			require.Panics(t, func() { a.Mul(pb) })
			require.Panics(t, func() { pb.Mul(a) })
			require.Panics(t, func() { pb.MulAssign(a) })

			// An in-place product cannot maintain the Shoup encoding.
			require.Panics(t, func() { s.MulAssign(a) })
		})
	}
}

// refNegacyclicMul computes a*b mod (X^n + 1, modulus) by schoolbook
// convolution.
func refNegacyclicMul(a, b []*big.Int, modulus *big.Int) []*big.Int {
	n := len(a)
	out := make([]*big.Int, n)
	for k := range out {
		out[k] = new(big.Int)
	}
	tmp := new(big.Int)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			tmp.Mul(a[i], b[j])
			if i+j < n {
				out[i+j].Add(out[i+j], tmp)
			} else {
				out[i+j-n].Sub(out[i+j-n], tmp)
			}
		}
	}
	for k := range out {
		out[k].Mod(out[k], modulus)
	}
	return out
}

func TestMulRingSemantics(t *testing.T) {
	for _, param := range testParams {
		ctx := newTestContext(t, param)

		t.Run(testString("NegacyclicProduct", param), func(t *testing.T) {
			a := NewRandomPoly(ctx, PowerBasis)
			b := NewRandomPoly(ctx, PowerBasis)
			want := refNegacyclicMul(a.CoefficientsBigInt(), b.CoefficientsBigInt(), ctx.Modulus())

			aN := a.CopyNew()
			bN := b.CopyNew()
			aN.ChangeRepresentation(Ntt)
			bN.ChangeRepresentation(NttShoup)

			c := aN.Mul(bN)
			c.ChangeRepresentation(PowerBasis)

			got := c.CoefficientsBigInt()
			for j := range want {
				requireBigEqual(t, want[j], got[j])
			}
		})
	}
}

func TestMulScalar(t *testing.T) {
	for _, param := range testParams {
		ctx := newTestContext(t, param)
		modulus := ctx.Modulus()

		scalar, err := rand.Int(rand.Reader, modulus)
		require.NoError(t, err)

		t.Run(testString("MulScalar", param), func(t *testing.T) {
			a := NewRandomPoly(ctx, PowerBasis)
			want := make([]*big.Int, param.degree)
			for j, x := range a.CoefficientsBigInt() {
				want[j] = new(big.Int).Mul(x, scalar)
				want[j].Mod(want[j], modulus)
			}

			for _, representation := range []Representation{PowerBasis, Ntt, NttShoup} {
				p := a.CopyNew()
				p.ChangeRepresentation(representation)
				c := p.MulScalar(scalar)
				require.Equal(t, representation, c.Representation())
				if representation == NttShoup {
					requireShoupConsistent(t, c)
				}

				c.ChangeRepresentation(PowerBasis)
				got := c.CoefficientsBigInt()
				for j := range want {
					requireBigEqual(t, want[j], got[j])
				}
			}

			// Negative scalars reduce into the ring first.
			c := a.MulScalar(big.NewInt(-1))
			require.True(t, c.Equal(a.Neg()))
		})
	}
}

func TestSwitchDown(t *testing.T) {
	t.Run("Errors", func(t *testing.T) {
		ctx := newTestContext(t, testParams[0])
		p := NewRandomPoly(ctx, PowerBasis)
		require.ErrorIs(t, p.SwitchDown(), ErrInvalidContext)

		ctx = newTestContext(t, testParams[1])
		q := NewRandomPoly(ctx, Ntt)
		require.Error(t, q.SwitchDown())
	})

	for _, param := range testParams {
		if len(param.moduli) < 2 {
			continue
		}
		ctx := newTestContext(t, param)

		t.Run(testString("RoundedDivision", param), func(t *testing.T) {
			p := NewRandomPoly(ctx, PowerBasis)
			backing := p.buff

			qL := new(big.Int).SetUint64(param.moduli[len(param.moduli)-1])
			half := new(big.Int).Rsh(qL, 1)
			nextModulus := ctx.Next().Modulus()

			want := make([]*big.Int, param.degree)
			for j, x := range p.CoefficientsBigInt() {
				r := new(big.Int).Mod(x, qL)
				if r.Cmp(half) > 0 {
					r.Sub(r, qL)
				}
				y := new(big.Int).Sub(x, r)
				y.Quo(y, qL)
				want[j] = y.Mod(y, nextModulus)
			}

			require.NoError(t, p.SwitchDown())
			require.Equal(t, PowerBasis, p.Representation())
			require.True(t, ctx.Next().Equal(p.Context()))
			require.Len(t, p.coeffs, len(param.moduli)-1)

			got := p.CoefficientsBigInt()
			for j := range want {
				requireBigEqual(t, want[j], got[j])
			}

			// The dropped residue row is wiped in the backing buffer.
			for _, c := range backing[(len(param.moduli)-1)*param.degree:] {
				require.Zero(t, c)
			}
		})

		t.Run(testString("WalkToLastLevel", param), func(t *testing.T) {
			p := NewRandomPoly(ctx, PowerBasis)
			for p.Context().Next() != nil {
				require.NoError(t, p.SwitchDown())
			}
			require.Len(t, p.Context().Moduli(), 1)
			require.ErrorIs(t, p.SwitchDown(), ErrInvalidContext)
		})
	}
}
