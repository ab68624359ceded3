package spblas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fasp-go/fasp"
)

func TestAxpyAndDot(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}
	Axpy(2, x, y)
	assert.Equal(t, []float64{6, 9, 12}, y)

	assert.Equal(t, float64(1*4+2*5+3*6), Dot([]float64{1, 2, 3}, []float64{4, 5, 6}))
}

func TestNrm2(t *testing.T) {
	assert.InDelta(t, 5.0, Nrm2([]float64{3, 4}), 1e-12)
}

func TestDotMatchesAcrossWorkerCounts(t *testing.T) {
	n := 1000
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i%7) - 3
		y[i] = float64(i%5) - 2
	}

	Workers = 0
	serial := Dot(x, y)

	Workers = 4
	parallel := Dot(x, y)
	Workers = 0

	assert.InDelta(t, serial, parallel, 1e-9)
}

// Cross-format agreement: the same logical matrix built as CSR and as
// COO must agree on mat-vec output within a small tolerance (§8).
func TestCrossFormatMatVecAgreement(t *testing.T) {
	ia := []int{0, 2, 4, 5}
	ja := []int{0, 1, 1, 2, 0}
	val := []float64{2, 1, 3, 4, 5}
	csr := fasp.NewCSR(3, 3, ia, ja, val)
	coo := csr.ToCOO()

	x := []float64{1, 2, 3}
	yCSR := make([]float64, 3)
	yCOO := make([]float64, 3)

	CSRMul(csr, x, yCSR)
	COOMul(coo, x, yCOO)

	for i := range yCSR {
		assert.InDelta(t, yCSR[i], yCOO[i], 1e-9)
	}
}
