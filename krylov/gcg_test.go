package krylov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

func TestGCGNonSymmetricWithJacobi(t *testing.T) {
	n := 20
	csr := advectionDiffusionCSR(n, 0.3)
	a := matfree.BindAuto(csr)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)

	diagCopy := &fasp.CSR{Nrow: csr.Nrow, Ncol: csr.Ncol, Ia: csr.Ia, Ja: csr.Ja, Val: csr.Val}
	params := Params{Stop: RelRes, Tol: 1e-8, MaxIter: 500, Restart: 8}
	stats, err := GCG(a, b, x, precond.Jacobi(diagCopy), params)
	require.NoError(t, err)
	assert.Less(t, stats.ResidualNorm, 1e-6)
}
