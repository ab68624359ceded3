package krylov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

func identityCSR(n int) *fasp.CSR {
	ia := make([]int, n+1)
	ja := make([]int, n)
	val := make([]float64, n)
	for i := 0; i < n; i++ {
		ia[i] = i
		ja[i] = i
		val[i] = 1
	}
	ia[n] = n
	return fasp.NewCSR(n, n, ia, ja, val)
}

func diagCSR(diag []float64) *fasp.CSR {
	n := len(diag)
	ia := make([]int, n+1)
	ja := make([]int, n)
	val := make([]float64, n)
	for i := 0; i < n; i++ {
		ia[i] = i
		ja[i] = i
		val[i] = diag[i]
	}
	ia[n] = n
	return fasp.NewCSR(n, n, ia, ja, val)
}

func defaultParams() Params {
	return Params{Stop: RelRes, Tol: 1e-8, MaxIter: 100}
}

// Scenario 1: identity matrix, CG converges in a single iteration
// regardless of the right-hand side.
func TestCGIdentity(t *testing.T) {
	n := 10
	a := matfree.BindAuto(identityCSR(n))
	b := make([]float64, n)
	for i := range b {
		b[i] = float64(i + 1)
	}
	x := make([]float64, n)

	stats, err := CG(a, b, x, precond.Identity(), defaultParams())
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.Iterations, 1)
	for i := range b {
		assert.InDelta(t, b[i], x[i], 1e-8)
	}
}

// Scenario 2: diagonal scaling. Jacobi preconditioning recovers the
// identity-like one-iteration convergence; unpreconditioned CG still
// converges, just not in a single step.
func TestCGDiagonalScaling(t *testing.T) {
	diag := []float64{2, 4, 8, 16, 32}
	csr := diagCSR(diag)
	a := matfree.BindAuto(csr)
	b := []float64{1, 1, 1, 1, 1}

	t.Run("jacobi", func(t *testing.T) {
		x := make([]float64, len(b))
		stats, err := CG(a, b, x, precond.Jacobi(csr), defaultParams())
		require.NoError(t, err)
		assert.LessOrEqual(t, stats.Iterations, 1)
		for i := range b {
			assert.InDelta(t, b[i]/diag[i], x[i], 1e-8)
		}
	})

	t.Run("unpreconditioned", func(t *testing.T) {
		x := make([]float64, len(b))
		stats, err := CG(a, b, x, precond.Identity(), defaultParams())
		require.NoError(t, err)
		assert.LessOrEqual(t, stats.Iterations, 100)
		for i := range b {
			assert.InDelta(t, b[i]/diag[i], x[i], 1e-6)
		}
	})
}

// A non-SPD system (here, a matrix with a zero <p, Ap>) is reported as
// ErrBreakdown rather than silently returning a wrong answer.
func TestCGBreakdownOnIndefinite(t *testing.T) {
	ia := []int{0, 2, 4}
	ja := []int{0, 1, 0, 1}
	val := []float64{0, 1, 1, 0}
	csr := fasp.NewCSR(2, 2, ia, ja, val)
	a := matfree.BindAuto(csr)
	b := []float64{1, 0}
	x := make([]float64, 2)

	_, err := CG(a, b, x, precond.Identity(), defaultParams())
	require.Error(t, err)
}
