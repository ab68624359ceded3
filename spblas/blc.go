package spblas

import "github.com/fasp-go/fasp"

// BLCMulVec computes y <- alpha*A*x + beta*y for a Block Composite
// matrix (§4.D): it first applies beta to the whole of y, then
// dispatches each non-empty sub-block to MulVec against the matching
// partial views of x and y, accumulating (beta=1) into the already
// scaled y.
func BLCMulVec(alpha float64, a *fasp.BLC, x []float64, beta float64, y []float64) {
	if beta == 0 {
		Set(0, y)
	} else if beta != 1 {
		Scal(beta, y)
	}
	if alpha == 0 {
		return
	}

	for br, row := range a.Blocks {
		ro := a.RowOffset(br)
		rd := a.RowDims[br]
		yv := y[ro : ro+rd]
		for bc, m := range row {
			if m == nil {
				continue
			}
			co := a.ColOffset(bc)
			cd := a.ColDims[bc]
			xv := x[co : co+cd]
			MulVec(alpha, m, xv, 1, yv)
		}
	}
}

// BLCMul computes y <- A*x, the shorthand form of BLCMulVec.
func BLCMul(a *fasp.BLC, x, y []float64) {
	BLCMulVec(1, a, x, 0, y)
}
