package matfree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fasp-go/fasp"
)

func TestBindAutoCSRMatchesDirectMul(t *testing.T) {
	ia := []int{0, 2, 3}
	ja := []int{0, 1, 1}
	val := []float64{2, 1, 3}
	csr := fasp.NewCSR(2, 2, ia, ja, val)

	mf := BindAuto(csr)
	x := []float64{5, 7}
	y := make([]float64, 2)
	mf.Apply(x, y)

	assert.Equal(t, 2*5+1*7, int(y[0]))
	assert.Equal(t, 3*7, int(y[1]))
}

func TestBindCSRLGroupMatchesCSR(t *testing.T) {
	ia := []int{0, 2, 3}
	ja := []int{0, 1, 1}
	val := []float64{2, 1, 3}
	csr := fasp.NewCSR(2, 2, ia, ja, val)

	plain := Bind(fasp.FormatCSR, csr)
	grouped := Bind(fasp.FormatCSRL, csr)

	x := []float64{5, 7}
	yPlain := make([]float64, 2)
	yGrouped := make([]float64, 2)
	plain.Apply(x, yPlain)
	grouped.Apply(x, yGrouped)

	assert.Equal(t, yPlain, yGrouped)
}
