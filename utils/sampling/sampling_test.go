package sampling

import (
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
)

func TestKeyedPRNG(t *testing.T) {
	key := make([]byte, SeedLength)
	key[0] = 0x42

	prngA, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	prngB, err := NewKeyedPRNG(key)
	require.NoError(t, err)

	a := make([]byte, 128)
	b := make([]byte, 128)
	_, err = prngA.Read(a)
	require.NoError(t, err)
	_, err = prngB.Read(b)
	require.NoError(t, err)
	require.Equal(t, a, b)

	// A different key yields a different stream.
	key[0] = 0x43
	prngC, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	c := make([]byte, 128)
	_, err = prngC.Read(c)
	require.NoError(t, err)
	require.NotEqual(t, a, c)

	// Reset rewinds the stream to its start.
	prngA.Reset()
	d := make([]byte, 128)
	_, err = prngA.Read(d)
	require.NoError(t, err)
	require.Equal(t, a, d)

	require.Equal(t, key[:0:0], prngC.Key()[:0:0])
	require.Equal(t, key, prngC.Key())
}

func TestSystemPRNG(t *testing.T) {
	prng, err := NewPRNG()
	require.NoError(t, err)

	a := make([]byte, 64)
	b := make([]byte, 64)
	_, err = prng.Read(a)
	require.NoError(t, err)
	_, err = prng.Read(b)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestSampleVecCBD(t *testing.T) {
	prng, err := NewPRNG()
	require.NoError(t, err)

	_, err = SampleVecCBD(prng, 16, 0)
	require.Error(t, err)
	_, err = SampleVecCBD(prng, 16, 17)
	require.Error(t, err)

	n := 1 << 14
	for _, variance := range []int{1, 4, 16} {
		samples, err := SampleVecCBD(prng, n, variance)
		require.NoError(t, err)
		require.Len(t, samples, n)

		values := make([]float64, n)
		bound := int64(2 * variance)
		for i, s := range samples {
			require.LessOrEqual(t, s, bound)
			require.GreaterOrEqual(t, s, -bound)
			values[i] = float64(s)
		}

		mean, err := stats.Mean(values)
		require.NoError(t, err)
		require.InDelta(t, 0, mean, 0.5)

		empirical, err := stats.Variance(values)
		require.NoError(t, err)
		require.InDelta(t, float64(variance), empirical, 0.25*float64(variance))
	}
}
