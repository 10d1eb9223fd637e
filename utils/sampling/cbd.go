package sampling

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/zefr0x/fhe.rs/utils"
)

// Bounds on the variance parameter accepted by SampleVecCBD.
const (
	MinVariance = 1
	MaxVariance = 16
)

// SampleVecCBD draws n samples from the centered binomial distribution of the
// given variance. Each sample is the difference of the Hamming weights of two
// 2*variance-bit strings drawn from prng, so values lie in
// [-2*variance, 2*variance].
// The samples are cryptographic noise: the caller is expected to wipe the
// returned buffer once it has been consumed.
func SampleVecCBD(prng PRNG, n, variance int) ([]int64, error) {
	if variance < MinVariance || variance > MaxVariance {
		return nil, fmt.Errorf("the variance should be between %d and %d but is %d", MinVariance, MaxVariance, variance)
	}

	k := 2 * variance
	mask := (uint64(1) << k) - 1

	randomBytes := make([]byte, n<<3)
	defer utils.Memzero(randomBytes)
	if _, err := io.ReadFull(prng, randomBytes); err != nil {
		return nil, err
	}

	samples := make([]int64, n)
	for i := range samples {
		r := binary.BigEndian.Uint64(randomBytes[i<<3:])
		samples[i] = int64(bits.OnesCount64(r&mask) - bits.OnesCount64((r>>k)&mask))
	}

	return samples, nil
}
