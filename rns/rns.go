// Package rns implements conversions between arbitrary-precision integers
// and their residue-number-system representation over a set of pairwise
// coprime moduli.
package rns

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// Context holds the Garner constants required to project integers into RNS
// form and to lift residue tuples back to integers. A Context is immutable
// and safe for concurrent use.
type Context struct {
	moduli  []uint64
	bigQi   []*big.Int
	product *big.Int

	// qiStar[i] = product/qi, qiTilde[i] = (product/qi)^-1 mod qi.
	qiStar  []*big.Int
	qiTilde []*big.Int
}

// NewContext validates that the moduli are all at least 2 and pairwise
// coprime, and precomputes the CRT constants.
func NewContext(moduli []uint64) (*Context, error) {
	if len(moduli) == 0 {
		return nil, fmt.Errorf("at least one modulus is required")
	}

	c := &Context{
		moduli:  make([]uint64, len(moduli)),
		bigQi:   make([]*big.Int, len(moduli)),
		product: big.NewInt(1),
		qiStar:  make([]*big.Int, len(moduli)),
		qiTilde: make([]*big.Int, len(moduli)),
	}
	copy(c.moduli, moduli)

	for i, qi := range moduli {
		if qi < 2 {
			return nil, fmt.Errorf("modulus should be at least 2 but is %d", qi)
		}
		c.bigQi[i] = new(big.Int).SetUint64(qi)
		c.product.Mul(c.product, c.bigQi[i])
	}

	gcd := new(big.Int)
	for i := range moduli {
		for j := i + 1; j < len(moduli); j++ {
			if gcd.GCD(nil, nil, c.bigQi[i], c.bigQi[j]).Cmp(bigOne) != 0 {
				return nil, fmt.Errorf("moduli should be pairwise coprime but gcd(%d, %d) != 1", moduli[i], moduli[j])
			}
		}
	}

	for i := range moduli {
		c.qiStar[i] = new(big.Int).Quo(c.product, c.bigQi[i])
		c.qiTilde[i] = new(big.Int).ModInverse(c.qiStar[i], c.bigQi[i])
		if c.qiTilde[i] == nil {
			// Sanity check, pairwise coprimality guarantees invertibility.
			panic(fmt.Sprintf("product/%d is not invertible modulo %d", moduli[i], moduli[i]))
		}
	}

	return c, nil
}

var bigOne = big.NewInt(1)

// Len returns the number of moduli.
func (c *Context) Len() int {
	return len(c.moduli)
}

// Moduli returns a copy of the moduli, ordered.
func (c *Context) Moduli() []uint64 {
	moduli := make([]uint64, len(c.moduli))
	copy(moduli, c.moduli)
	return moduli
}

// Modulus returns the product of the moduli.
func (c *Context) Modulus() *big.Int {
	return new(big.Int).Set(c.product)
}

// LogModulus returns log2 of the product of the moduli.
func (c *Context) LogModulus() float64 {
	ln := bigfloat.Log(new(big.Float).SetPrec(256).SetInt(c.product))
	ln2 := bigfloat.Log(new(big.Float).SetPrec(256).SetUint64(2))
	log2, _ := ln.Quo(ln, ln2).Float64()
	return log2
}

// Project returns the residues of x modulo each of the moduli. Negative and
// larger-than-product inputs are first reduced into [0, product).
func (c *Context) Project(x *big.Int) []uint64 {
	residues := make([]uint64, len(c.moduli))
	xq := new(big.Int).Mod(x, c.product)
	r := new(big.Int)
	for i := range c.moduli {
		residues[i] = r.Mod(xq, c.bigQi[i]).Uint64()
	}
	return residues
}

// Lift returns the unique integer in [0, product) congruent to the given
// residues, which must hold one residue per modulus.
func (c *Context) Lift(residues []uint64) *big.Int {
	if len(residues) != len(c.moduli) {
		// Sanity check, callers always supply one residue per modulus.
		panic(fmt.Sprintf("got %d residues for %d moduli", len(residues), len(c.moduli)))
	}

	x := new(big.Int)
	tmp := new(big.Int)
	for i, r := range residues {
		tmp.SetUint64(r)
		tmp.Mul(tmp, c.qiTilde[i])
		tmp.Mod(tmp, c.bigQi[i])
		tmp.Mul(tmp, c.qiStar[i])
		x.Add(x, tmp)
	}
	return x.Mod(x, c.product)
}
