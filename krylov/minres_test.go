package krylov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

func TestMinResSymmetricPositiveDefinite(t *testing.T) {
	n := 12
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = float64(i + 1)
	}
	csr := diagCSR(diag)
	a := matfree.BindAuto(csr)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)

	stats, err := MinRes(a, b, x, precond.Identity(), defaultParams())
	require.NoError(t, err)
	assert.Less(t, stats.ResidualNorm, 1e-6)
	for i := range b {
		assert.InDelta(t, 1/diag[i], x[i], 1e-5)
	}
}
