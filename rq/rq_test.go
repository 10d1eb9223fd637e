package rq

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// Word-sized NTT-friendly primes; the fourth chain mixes in a small prime to
// exercise short residues alongside 62-bit ones.
var testModuli = []uint64{4611686018326724609, 4611686018309947393, 4611686018232352769}

type testParameters struct {
	degree int
	moduli []uint64
}

var testParams = []testParameters{
	{8, testModuli[:1]},
	{8, testModuli[:2]},
	{8, testModuli[:3]},
	{16, testModuli[:3]},
	{8, []uint64{1153, 4611686018326724609, 4611686018309947393}},
}

func testString(opname string, p testParameters) string {
	return fmt.Sprintf("%s/N=%d/limbs=%d", opname, p.degree, len(p.moduli))
}

func newTestContext(t *testing.T, p testParameters) *Context {
	ctx, err := NewContext(p.moduli, p.degree)
	require.NoError(t, err)
	return ctx
}

func requireBigEqual(t *testing.T, want, got *big.Int) {
	t.Helper()
	require.Zero(t, want.Cmp(got), "expected %s but got %s", want, got)
}
