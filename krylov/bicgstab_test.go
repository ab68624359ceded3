package krylov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/ferr"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

// A small non-symmetric advection-diffusion-like tridiagonal system:
// strong diagonal dominance, asymmetric off-diagonals.
func advectionDiffusionCSR(n int, advect float64) *fasp.CSR {
	var ia, ja []int
	var val []float64
	ia = append(ia, 0)
	for i := 0; i < n; i++ {
		if i > 0 {
			ja = append(ja, i-1)
			val = append(val, -1-advect)
		}
		ja = append(ja, i)
		val = append(val, 4)
		if i < n-1 {
			ja = append(ja, i+1)
			val = append(val, -1+advect)
		}
		ia = append(ia, len(ja))
	}
	return fasp.NewCSR(n, n, ia, ja, val)
}

func TestBiCGStabNonSymmetric(t *testing.T) {
	n := 20
	csr := advectionDiffusionCSR(n, 0.5)
	a := matfree.BindAuto(csr)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)

	stats, err := BiCGStab(a, b, x, precond.Identity(), defaultParams())
	require.NoError(t, err)
	assert.Less(t, stats.ResidualNorm, 1e-6)

	residual := make([]float64, n)
	a.Apply(x, residual)
	for i := range residual {
		residual[i] = b[i] - residual[i]
	}
	var norm float64
	for _, v := range residual {
		norm += v * v
	}
	assert.Less(t, norm, 1e-10)
}

// The [[0,1],[1,0]] system with b=(1,0) makes r0hat=r0=(1,0), so the
// first Arnoldi-like step lands v=A*p0 on (0,1): <r0hat,v> is exactly
// zero and BiCGStab must report ErrBreakdown rather than converge or
// silently divide by a collapsed denominator.
func TestBiCGStabForcedBreakdown(t *testing.T) {
	ia := []int{0, 2, 4}
	ja := []int{0, 1, 0, 1}
	val := []float64{0, 1, 1, 0}
	csr := fasp.NewCSR(2, 2, ia, ja, val)
	a := matfree.BindAuto(csr)
	b := []float64{1, 0}
	x := make([]float64, 2)

	params := Params{Stop: RelRes, Tol: 1e-12, MaxIter: 50}
	_, err := BiCGStab(a, b, x, precond.Identity(), params)
	require.Error(t, err)
	kind, ok := ferr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ferr.ErrBreakdown, kind)
}
