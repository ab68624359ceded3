package krylov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

func TestGCRNonSymmetric(t *testing.T) {
	n := 20
	csr := advectionDiffusionCSR(n, 0.3)
	a := matfree.BindAuto(csr)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)

	params := Params{Stop: RelRes, Tol: 1e-8, MaxIter: 500, Restart: 10}
	stats, err := GCR(a, b, x, precond.Identity(), params)
	require.NoError(t, err)
	assert.Less(t, stats.ResidualNorm, 1e-6)
}
