package krylov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

// poisson2DCSR builds the standard 5-point finite-difference Laplacian
// on an m x m grid (n = m*m unknowns), Dirichlet boundary folded into
// the right-hand side by the caller.
func poisson2DCSR(m int) *fasp.CSR {
	n := m * m
	var ia, ja []int
	var val []float64
	ia = append(ia, 0)
	idx := func(i, j int) int { return i*m + j }
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			row := idx(i, j)
			type entry struct {
				col int
				v   float64
			}
			var entries []entry
			if i > 0 {
				entries = append(entries, entry{idx(i-1, j), -1})
			}
			if j > 0 {
				entries = append(entries, entry{idx(i, j-1), -1})
			}
			entries = append(entries, entry{row, 4})
			if j < m-1 {
				entries = append(entries, entry{idx(i, j+1), -1})
			}
			if i < m-1 {
				entries = append(entries, entry{idx(i+1, j), -1})
			}
			for _, e := range entries {
				ja = append(ja, e.col)
				val = append(val, e.v)
			}
			ia = append(ia, len(ja))
		}
	}
	return fasp.NewCSR(n, n, ia, ja, val)
}

func TestGMRESPoisson2D(t *testing.T) {
	m := 64 // 4096 unknowns
	csr := poisson2DCSR(m)
	a := matfree.BindAuto(csr)
	n := m * m
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)

	params := Params{Stop: RelRes, Tol: 1e-8, MaxIter: 2000, Restart: 50}
	stats, err := GMRES(a, b, x, precond.Jacobi(csr), params)
	require.NoError(t, err)
	assert.Less(t, stats.ResidualNorm, 1e-6)
	assert.GreaterOrEqual(t, stats.Iterations, 30)
	assert.LessOrEqual(t, stats.Iterations, 200)

	residual := make([]float64, n)
	a.Apply(x, residual)
	var sq float64
	for i := range residual {
		d := b[i] - residual[i]
		sq += d * d
	}
	assert.Less(t, sq, 1e-10)
}

func TestGMRESIdentitySingleIteration(t *testing.T) {
	n := 8
	a := matfree.BindAuto(identityCSR(n))
	b := make([]float64, n)
	for i := range b {
		b[i] = float64(i + 1)
	}
	x := make([]float64, n)

	params := Params{Stop: RelRes, Tol: 1e-10, MaxIter: 50, Restart: 10}
	stats, err := GMRES(a, b, x, precond.Identity(), params)
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.Iterations, 1)
	for i := range b {
		assert.InDelta(t, b[i], x[i], 1e-8)
	}
}
