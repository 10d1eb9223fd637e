// Package rq implements arithmetic over polynomial rings
// R_q = Z_q[X]/(X^N + 1) where q is a product of distinct word-sized primes.
// Polynomials are stored in a residue-number-system representation, one
// residue vector per prime, either in the power basis or in the transform
// (NTT) domain, with an optional Shoup encoding for fast multiplication.
package rq

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/zeebo/blake3"

	"github.com/zefr0x/fhe.rs/rns"
	"github.com/zefr0x/fhe.rs/utils"
	"github.com/zefr0x/fhe.rs/zq"
	"github.com/zefr0x/fhe.rs/zq/ntt"
)

// MinDegree is the smallest supported ring degree.
const MinDegree = 8

// Context describes a polynomial ring: an ordered chain of prime moduli, the
// ring degree and every constant derived from them. A Context is immutable
// once constructed and is shared by all polynomials defined over it. Two
// independently constructed Contexts with the same moduli and degree compare
// equal.
type Context struct {
	moduli []uint64
	q      []*zq.Modulus
	ops    []*ntt.Operator
	rns    *rns.Context
	degree int
	bitrev []int

	// invLastQiModQj[i] is the inverse of the last modulus reduced modulo
	// moduli[i], with its Shoup encoding; consumed by Poly.SwitchDown.
	invLastQiModQj      []uint64
	invLastQiModQjShoup []uint64

	// next is the context over moduli[:len-1], nil when a single modulus
	// remains. The chain is materialized at construction so level changes
	// are pointer chases.
	next *Context

	digest [32]byte
}

// NewContext builds the ring context for the given modulus chain and degree.
// The degree must be a power of two of at least MinDegree, and every modulus
// must be a distinct odd prime smaller than 2^62 admitting a negacyclic NTT
// of size degree.
func NewContext(moduli []uint64, degree int) (*Context, error) {
	if degree < MinDegree || degree&(degree-1) != 0 {
		return nil, fmt.Errorf("the degree should be a power of two of at least %d but is %d", MinDegree, degree)
	}

	rnsCtx, err := rns.NewContext(moduli)
	if err != nil {
		return nil, fmt.Errorf("invalid moduli: %w", err)
	}

	c := &Context{
		moduli: make([]uint64, len(moduli)),
		q:      make([]*zq.Modulus, len(moduli)),
		ops:    make([]*ntt.Operator, len(moduli)),
		rns:    rnsCtx,
		degree: degree,
		bitrev: utils.BitReversePermutation(degree),
		digest: contextDigest(moduli, degree),
	}
	copy(c.moduli, moduli)

	for i, qi := range moduli {
		if c.q[i], err = zq.NewModulus(qi); err != nil {
			return nil, fmt.Errorf("invalid modulus %d: %w", qi, err)
		}
		if c.ops[i], err = ntt.NewOperator(c.q[i], degree, c.bitrev); err != nil {
			return nil, err
		}
	}

	last := c.moduli[len(c.moduli)-1]
	c.invLastQiModQj = make([]uint64, 0, len(c.q)-1)
	c.invLastQiModQjShoup = make([]uint64, 0, len(c.q)-1)
	for _, qi := range c.q[:len(c.q)-1] {
		inv, err := qi.Inv(qi.Reduce(last))
		if err != nil {
			return nil, fmt.Errorf("the last modulus %d is not invertible modulo %d: %w", last, qi.Q, err)
		}
		c.invLastQiModQj = append(c.invLastQiModQj, inv)
		c.invLastQiModQjShoup = append(c.invLastQiModQjShoup, qi.Shoup(inv))
	}

	if len(moduli) >= 2 {
		if c.next, err = NewContext(moduli[:len(moduli)-1], degree); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// contextDigest hashes the degree and the modulus chain; contexts are equal
// iff their digests are.
func contextDigest(moduli []uint64, degree int) (digest [32]byte) {
	h := blake3.New()
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(degree))
	h.Write(buf)
	for _, qi := range moduli {
		binary.BigEndian.PutUint64(buf, qi)
		h.Write(buf)
	}
	copy(digest[:], h.Sum(nil))
	return
}

// Moduli returns a copy of the prime moduli of the ring, ordered.
func (c *Context) Moduli() []uint64 {
	moduli := make([]uint64, len(c.moduli))
	copy(moduli, c.moduli)
	return moduli
}

// Degree returns the ring degree N of Z_q[X]/(X^N + 1).
func (c *Context) Degree() int {
	return c.degree
}

// Level returns the number of moduli minus one.
func (c *Context) Level() int {
	return len(c.moduli) - 1
}

// Modulus returns the product of the moduli.
func (c *Context) Modulus() *big.Int {
	return c.rns.Modulus()
}

// LogModulus returns log2 of the product of the moduli.
func (c *Context) LogModulus() float64 {
	return c.rns.LogModulus()
}

// BitReversePermutation returns a copy of the bit-reversal permutation of
// [0, degree).
func (c *Context) BitReversePermutation() []int {
	bitrev := make([]int, len(c.bitrev))
	copy(bitrev, c.bitrev)
	return bitrev
}

// Next returns the context over the same moduli minus the last one, or nil
// for a single-modulus context.
func (c *Context) Next() *Context {
	return c.next
}

// Equal reports whether both contexts describe the same ring, that is, have
// the same degree and the same modulus chain.
func (c *Context) Equal(other *Context) bool {
	if c == other {
		return true
	}
	return other != nil && c.digest == other.digest
}

// IterationsTo returns the number of modulus-switching steps separating c
// from target. It returns 0 when both are equal and ErrInvalidContext when
// target is not a descendant of c.
func (c *Context) IterationsTo(target *Context) (int, error) {
	n := 0
	for cur := c; cur != nil; cur = cur.next {
		if cur.Equal(target) {
			return n, nil
		}
		n++
	}
	return 0, fmt.Errorf("%w: the target is not a descendant of this context", ErrInvalidContext)
}

// AtLevel returns the context i modulus-switching steps down the chain.
func (c *Context) AtLevel(i int) (*Context, error) {
	if i < 0 || i >= len(c.moduli) {
		return nil, fmt.Errorf("%w: level %d is out of range for %d moduli", ErrInvalidContext, i, len(c.moduli))
	}
	cur := c
	for j := 0; j < i; j++ {
		cur = cur.next
	}
	return cur, nil
}
