package rq

import (
	"encoding/binary"
	"fmt"
)

// Wire-format representation tags. The zero value is deliberately unused so
// an all-zero record never decodes as a valid polynomial.
const (
	tagPowerBasis byte = 1
	tagNtt        byte = 2
	tagNttShoup   byte = 3
)

func representationTag(r Representation) byte {
	switch r {
	case PowerBasis:
		return tagPowerBasis
	case Ntt:
		return tagNtt
	case NttShoup:
		return tagNttShoup
	default:
		panic(fmt.Sprintf("unknown representation %s", r))
	}
}

func representationFromTag(tag byte) (Representation, error) {
	switch tag {
	case tagPowerBasis:
		return PowerBasis, nil
	case tagNtt:
		return Ntt, nil
	case tagNttShoup:
		return NttShoup, nil
	default:
		return 0, fmt.Errorf("invalid serialization: unknown representation tag %d", tag)
	}
}

// MarshalBinary encodes p into its wire format: a representation tag, the
// degree on 32 bits and the concatenation of each modulus's bit-packed
// residue vector, in chain order. The Shoup encoding is derived state and is
// not serialized.
func (p *Poly) MarshalBinary() ([]byte, error) {
	size := 5
	for _, m := range p.ctx.q {
		size += m.SerializationLength(p.ctx.degree)
	}

	data := make([]byte, size)
	data[0] = representationTag(p.representation)
	binary.BigEndian.PutUint32(data[1:], uint32(p.ctx.degree))

	ptr := 5
	for i, m := range p.ctx.q {
		n, err := m.SerializeVec(p.coeffs[i], data[ptr:])
		if err != nil {
			return nil, err
		}
		ptr += n
	}
	return data, nil
}

// DecodePoly decodes a wire-format record produced by Poly.MarshalBinary
// into a polynomial over c.
func (c *Context) DecodePoly(data []byte) (*Poly, error) {
	return c.decodePoly(data, nil)
}

// DecodePolyWithRepresentation decodes like DecodePoly and additionally
// fails with ErrRepresentationMismatch when the decoded representation
// differs from the expected one.
func (c *Context) DecodePolyWithRepresentation(data []byte, expected Representation) (*Poly, error) {
	return c.decodePoly(data, &expected)
}

func (c *Context) decodePoly(data []byte, expected *Representation) (*Poly, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("invalid serialization: %d bytes is too short for the header", len(data))
	}

	representation, err := representationFromTag(data[0])
	if err != nil {
		return nil, err
	}
	if expected != nil && *expected != representation {
		return nil, fmt.Errorf("%w: expected %s but decoded %s", ErrRepresentationMismatch, *expected, representation)
	}

	degree := int(binary.BigEndian.Uint32(data[1:]))
	if degree < 8 || degree%8 != 0 {
		return nil, fmt.Errorf("invalid serialization: the degree should be a positive multiple of 8 but is %d", degree)
	}

	expectedLen := 5
	for _, m := range c.q {
		expectedLen += m.SerializationLength(degree)
	}
	if len(data) != expectedLen {
		return nil, fmt.Errorf("invalid coefficients: expected %d bytes but got %d", expectedLen, len(data))
	}
	if degree != c.degree {
		return nil, fmt.Errorf("invalid coefficients: the degree %d does not match the context degree %d", degree, c.degree)
	}

	p := NewPoly(c, representation)
	ptr := 5
	for i, m := range c.q {
		n := m.SerializationLength(degree)
		if err := m.DeserializeVec(p.coeffs[i], data[ptr:ptr+n]); err != nil {
			return nil, fmt.Errorf("invalid coefficients: %w", err)
		}
		ptr += n
	}
	if representation == NttShoup {
		p.computeShoup()
	}
	return p, nil
}
