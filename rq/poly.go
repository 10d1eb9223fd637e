package rq

import (
	"fmt"
	"io"

	"github.com/zefr0x/fhe.rs/utils"
	"github.com/zefr0x/fhe.rs/utils/sampling"
)

// Representation identifies the basis in which the coefficients of a
// polynomial are stored.
type Representation uint8

const (
	// PowerBasis stores the coefficients of the monomial basis.
	PowerBasis Representation = iota
	// Ntt stores the evaluations at the roots of X^N + 1 (transform domain).
	Ntt
	// NttShoup is Ntt extended with a Shoup encoding of the coefficients for
	// fast multiplication as the second operand of a product.
	NttShoup
)

func (r Representation) String() string {
	switch r {
	case PowerBasis:
		return "PowerBasis"
	case Ntt:
		return "Ntt"
	case NttShoup:
		return "NttShoup"
	default:
		return fmt.Sprintf("Representation(%d)", uint8(r))
	}
}

func checkRepresentation(r Representation) {
	if r > NttShoup {
		panic(fmt.Sprintf("unknown representation %s", r))
	}
}

// Poly is an element of R_q, stored as one residue vector of length degree
// per modulus of its context, over a single backing buffer. The Shoup buffer
// is present iff the representation is NttShoup; it is derived, disposable
// state and is wiped before being released whenever it becomes stale.
type Poly struct {
	ctx            *Context
	representation Representation

	coeffs [][]uint64
	buff   []uint64

	coeffsShoup [][]uint64
	buffShoup   []uint64

	// allowVariableTime selects the variable-time arithmetic kernels for
	// every operation this polynomial participates in.
	allowVariableTime bool
}

// NewPoly returns the zero polynomial over ctx in the given representation.
func NewPoly(ctx *Context, representation Representation) *Poly {
	checkRepresentation(representation)

	p := &Poly{ctx: ctx, representation: representation}
	p.buff = make([]uint64, len(ctx.moduli)*ctx.degree)
	p.coeffs = resliceMatrix(p.buff, len(ctx.moduli), ctx.degree)
	if representation == NttShoup {
		p.buffShoup = make([]uint64, len(p.buff))
		p.coeffsShoup = resliceMatrix(p.buffShoup, len(ctx.moduli), ctx.degree)
	}
	return p
}

func resliceMatrix(buff []uint64, rows, cols int) [][]uint64 {
	matrix := make([][]uint64, rows)
	for i := range matrix {
		matrix[i] = buff[i*cols : (i+1)*cols]
	}
	return matrix
}

// NewRandomPoly returns a polynomial with uniformly random coefficients
// drawn from the system entropy source.
func NewRandomPoly(ctx *Context, representation Representation) *Poly {
	prng, err := sampling.NewPRNG()
	if err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}
	checkRepresentation(representation)

	p := NewPoly(ctx, representation)
	for i, m := range ctx.q {
		m.RandomVec(p.coeffs[i], prng)
	}
	if representation == NttShoup {
		p.computeShoup()
	}
	return p
}

// NewRandomPolyFromSeed returns the polynomial deterministically derived
// from seed: a master blake2b stream keyed with the seed yields one 32-byte
// sub-seed per modulus, and each modulus's residues are drawn from its own
// sub-seeded stream. The same seed always yields the same polynomial, and no
// two moduli share a sub-seed.
func NewRandomPolyFromSeed(ctx *Context, representation Representation, seed [sampling.SeedLength]byte) *Poly {
	checkRepresentation(representation)

	master, err := sampling.NewKeyedPRNG(seed[:])
	if err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}

	p := NewPoly(ctx, representation)
	subSeed := make([]byte, sampling.SeedLength)
	for i, m := range ctx.q {
		if _, err := io.ReadFull(master, subSeed); err != nil {
			// Sanity check, this error should not happen.
			panic(err)
		}
		prng, err := sampling.NewKeyedPRNG(subSeed)
		if err != nil {
			// Sanity check, this error should not happen.
			panic(err)
		}
		m.RandomVec(p.coeffs[i], prng)
	}
	if representation == NttShoup {
		p.computeShoup()
	}
	return p
}

// NewSmallPoly returns a polynomial whose coefficients are drawn from the
// centered binomial distribution of the given variance, converted into the
// requested representation. The signed intermediate samples are wiped before
// returning.
func NewSmallPoly(ctx *Context, representation Representation, variance int) (*Poly, error) {
	prng, err := sampling.NewPRNG()
	if err != nil {
		return nil, err
	}
	samples, err := sampling.SampleVecCBD(prng, ctx.degree, variance)
	if err != nil {
		return nil, err
	}
	defer utils.Memzero(samples)

	p, err := NewPolyFromInt64Slice(ctx, PowerBasis, samples)
	if err != nil {
		return nil, err
	}
	p.ChangeRepresentation(representation)
	return p, nil
}

// Context returns the context the polynomial is defined over.
func (p *Poly) Context() *Context {
	return p.ctx
}

// Representation returns the current representation of the polynomial.
func (p *Poly) Representation() Representation {
	return p.representation
}

// AllowVariableTimeComputations marks p as allowed to use the variable-time
// arithmetic kernels.
// WARNING: the variable-time kernels leak timing information about the
// coefficients. Only set this flag on polynomials that are known to hold no
// secret-dependent data.
func (p *Poly) AllowVariableTimeComputations() {
	p.allowVariableTime = true
}

// DisallowVariableTimeComputations restores the constant-time default.
func (p *Poly) DisallowVariableTimeComputations() {
	p.allowVariableTime = false
}

// VariableTimeAllowed reports whether p may use variable-time kernels.
func (p *Poly) VariableTimeAllowed() bool {
	return p.allowVariableTime
}

// ChangeRepresentation converts p, in place, to the given representation.
// The conversion is a forward or backward transform per modulus, plus the
// computation or the wiping of the Shoup encoding. Requesting a transition
// that is not mathematically defined panics.
func (p *Poly) ChangeRepresentation(to Representation) {
	switch {
	case p.representation == to:
		return
	case p.representation == PowerBasis && to == Ntt:
		p.forward()
	case p.representation == PowerBasis && to == NttShoup:
		p.forward()
		p.computeShoup()
	case p.representation == Ntt && to == PowerBasis:
		p.backward()
	case p.representation == Ntt && to == NttShoup:
		p.computeShoup()
	case p.representation == NttShoup && to == Ntt:
		p.dropShoup()
	case p.representation == NttShoup && to == PowerBasis:
		p.backward()
		p.dropShoup()
	default:
		panic(fmt.Sprintf("undefined representation transition from %s to %s", p.representation, to))
	}
	p.representation = to
}

// OverrideRepresentation relabels the coefficients as being in the given
// representation without transforming them. The caller must know that the
// raw coefficients already are in the target representation, e.g. after a
// bulk import. The Shoup buffer is recomputed when the target is NttShoup
// and wiped when leaving NttShoup, so the representation invariant holds
// even across overrides.
// WARNING: mislabeling a polynomial silently corrupts every subsequent
// operation on it.
func (p *Poly) OverrideRepresentation(to Representation) {
	checkRepresentation(to)
	if p.representation == NttShoup && to != NttShoup {
		p.dropShoup()
	}
	p.representation = to
	if to == NttShoup {
		p.computeShoup()
	}
}

func (p *Poly) forward() {
	for i, op := range p.ctx.ops {
		op.Forward(p.coeffs[i])
	}
}

func (p *Poly) backward() {
	for i, op := range p.ctx.ops {
		op.Backward(p.coeffs[i])
	}
}

// computeShoup (re)computes the Shoup encoding of the coefficients,
// allocating the buffer when needed.
func (p *Poly) computeShoup() {
	if p.buffShoup == nil {
		p.buffShoup = make([]uint64, len(p.buff))
		p.coeffsShoup = resliceMatrix(p.buffShoup, len(p.ctx.moduli), p.ctx.degree)
	}
	for i, m := range p.ctx.q {
		m.ShoupVec(p.coeffsShoup[i], p.coeffs[i])
	}
}

// dropShoup wipes and releases the Shoup buffer. The wipe completes before
// the buffer is released, so stale encodings of possibly secret coefficients
// never linger in memory.
func (p *Poly) dropShoup() {
	utils.Memzero(p.buffShoup)
	p.buffShoup = nil
	p.coeffsShoup = nil
}

// Zeroize overwrites every coefficient buffer with zeros, in a way the
// compiler cannot elide.
func (p *Poly) Zeroize() {
	utils.Memzero(p.buff)
	if p.buffShoup != nil {
		utils.Memzero(p.buffShoup)
	}
}

// CopyNew returns a deep copy of p.
func (p *Poly) CopyNew() *Poly {
	q := NewPoly(p.ctx, p.representation)
	copy(q.buff, p.buff)
	if p.buffShoup != nil {
		copy(q.buffShoup, p.buffShoup)
	}
	q.allowVariableTime = p.allowVariableTime
	return q
}

// Equal reports whether both polynomials are defined over equal contexts,
// are in the same representation and hold identical coefficients.
func (p *Poly) Equal(other *Poly) bool {
	if p == other {
		return true
	}
	if other == nil || !p.ctx.Equal(other.ctx) || p.representation != other.representation {
		return false
	}
	return utils.EqualSlice(p.buff, other.buff)
}
