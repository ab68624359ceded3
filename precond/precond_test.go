package precond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasp-go/fasp"
)

func TestIdentityIsNoOp(t *testing.T) {
	p := Identity()
	r := []float64{1, 2, 3}
	z := make([]float64, 3)
	require.NoError(t, p.Solve(r, z))
	assert.Equal(t, r, z)
}

func TestJacobiScalesByInverseDiagonal(t *testing.T) {
	ia := []int{0, 1, 3}
	ja := []int{0, 0, 1}
	val := []float64{2, 1, 4}
	csr := fasp.NewCSR(2, 2, ia, ja, val)

	p := Jacobi(csr)
	r := []float64{10, 20}
	z := make([]float64, 2)
	require.NoError(t, p.Solve(r, z))
	assert.Equal(t, []float64{5, 5}, z)
}

func TestJacobiPanicsOnZeroDiagonal(t *testing.T) {
	ia := []int{0, 1, 1}
	ja := []int{1}
	val := []float64{7}
	csr := fasp.NewCSR(2, 2, ia, ja, val)
	assert.Panics(t, func() { Jacobi(csr) })
}
