package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/krylov"
)

func poisson1DCSR(n int) *fasp.CSR {
	var ia, ja []int
	var val []float64
	ia = append(ia, 0)
	for i := 0; i < n; i++ {
		if i > 0 {
			ja = append(ja, i-1)
			val = append(val, -1)
		}
		ja = append(ja, i)
		val = append(val, 2)
		if i < n-1 {
			ja = append(ja, i+1)
			val = append(val, -1)
		}
		ia = append(ia, len(ja))
	}
	return fasp.NewCSR(n, n, ia, ja, val)
}

func TestSolveCGWithJacobi(t *testing.T) {
	n := 30
	csr := poisson1DCSR(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)

	params := ItParam{
		SolverKind:  CG,
		PrecondType: PrecondJacobi,
		StopType:    krylov.RelRes,
		MaxIter:     500,
		Tol:         1e-8,
		PrintLevel:  PrintNone,
	}
	stats, err := Solve(csr, b, x, nil, params, nil)
	require.NoError(t, err)
	assert.Less(t, stats.ResidualNorm, 1e-6)
}

func TestSolveUnknownKind(t *testing.T) {
	n := 5
	csr := poisson1DCSR(n)
	b := make([]float64, n)
	x := make([]float64, n)
	params := ItParam{SolverKind: SolverKind(999), Tol: 1e-8, MaxIter: 10}
	_, err := Solve(csr, b, x, nil, params, nil)
	require.Error(t, err)
}

func TestSolveDimensionMismatch(t *testing.T) {
	csr := poisson1DCSR(5)
	b := make([]float64, 4)
	x := make([]float64, 4)
	params := ItParam{SolverKind: CG, Tol: 1e-8, MaxIter: 10}
	_, err := Solve(csr, b, x, nil, params, nil)
	require.Error(t, err)
}

func TestSolveGMRESRestart(t *testing.T) {
	n := 40
	csr := poisson1DCSR(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)

	params := ItParam{
		SolverKind: GMRES,
		StopType:   krylov.RelRes,
		MaxIter:    500,
		Tol:        1e-8,
		Restart:    10,
	}
	stats, err := Solve(csr, b, x, nil, params, nil)
	require.NoError(t, err)
	assert.Less(t, stats.ResidualNorm, 1e-6)
}
