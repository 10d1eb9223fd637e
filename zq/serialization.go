package zq

import (
	"fmt"
	"math/bits"
)

// SerializationLength returns the number of bytes occupied by the
// serialization of n residues modulo q. Each residue is packed over
// bits.Len64(q) bits.
func (m *Modulus) SerializationLength(n int) int {
	nbits := bits.Len64(m.Q)
	return (n*nbits + 7) >> 3
}

// SerializeVec packs coeffs into data, bits.Len64(q) bits per residue,
// least-significant bits first. It returns the number of bytes written.
// Every coefficient must lie in [0, q) and data must hold at least
// SerializationLength(len(coeffs)) bytes.
func (m *Modulus) SerializeVec(coeffs []uint64, data []byte) (int, error) {
	expected := m.SerializationLength(len(coeffs))
	if len(data) < expected {
		return 0, fmt.Errorf("the output buffer is too small: %d bytes needed but got %d", expected, len(data))
	}

	nbits := uint(bits.Len64(m.Q))
	var acc uint64
	var accBits uint
	var ptr int

	for _, c := range coeffs {
		if c >= m.Q {
			return 0, fmt.Errorf("coefficient %d is not reduced modulo %d", c, m.Q)
		}
		remaining := nbits
		for remaining > 0 {
			take := 8 - accBits
			if take > remaining {
				take = remaining
			}
			acc |= (c & ((1 << take) - 1)) << accBits
			c >>= take
			remaining -= take
			accBits += take
			if accBits == 8 {
				data[ptr] = byte(acc)
				ptr++
				acc, accBits = 0, 0
			}
		}
	}

	if accBits > 0 {
		data[ptr] = byte(acc)
		ptr++
	}

	return ptr, nil
}

// DeserializeVec unpacks len(coeffs) residues from data into coeffs,
// reversing SerializeVec. The length of data must be exactly
// SerializationLength(len(coeffs)).
func (m *Modulus) DeserializeVec(coeffs []uint64, data []byte) error {
	expected := m.SerializationLength(len(coeffs))
	if len(data) != expected {
		return fmt.Errorf("invalid serialization length: expected %d bytes but got %d", expected, len(data))
	}

	nbits := uint(bits.Len64(m.Q))
	var acc uint64
	var accBits uint
	var ptr int

	for i := range coeffs {
		var c uint64
		var got uint
		for got < nbits {
			if accBits == 0 {
				acc = uint64(data[ptr])
				ptr++
				accBits = 8
			}
			take := accBits
			if take > nbits-got {
				take = nbits - got
			}
			c |= (acc & ((1 << take) - 1)) << got
			acc >>= take
			accBits -= take
			got += take
		}
		if c >= m.Q {
			return fmt.Errorf("coefficient %d is not reduced modulo %d", c, m.Q)
		}
		coeffs[i] = c
	}

	return nil
}
