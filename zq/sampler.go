package zq

import (
	"encoding/binary"

	"github.com/zefr0x/fhe.rs/utils/sampling"
)

const randomBufferSize = 1024

// RandomVec fills p with coefficients sampled independently and uniformly in
// [0, q), by rejection sampling over masked 8-byte draws from prng.
func (m *Modulus) RandomVec(p []uint64, prng sampling.PRNG) {
	q, mask := m.Q, m.Mask

	buffer := make([]byte, randomBufferSize)
	ptr := len(buffer)

	for i := range p {
		for {
			if ptr == len(buffer) {
				if _, err := prng.Read(buffer); err != nil {
					// Sanity check, this error should not happen.
					panic(err)
				}
				ptr = 0
			}

			c := binary.BigEndian.Uint64(buffer[ptr:ptr+8]) & mask
			ptr += 8

			if c < q {
				p[i] = c
				break
			}
		}
	}
}
