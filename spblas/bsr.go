package spblas

import "github.com/fasp-go/fasp"

// BSRMulVec computes y <- alpha*A*x + beta*y for a Block Compressed Row
// matrix (§4.D). It loops over block rows, scaling each row's y slice
// by beta in place and then accumulating alpha*A*x directly into it,
// honoring a.Storage (row-major or column-major block layout). Assumes
// x and y do not alias, as with every other kernel in this package.
func BSRMulVec(alpha float64, a *fasp.BSR, x []float64, beta float64, y []float64) {
	if alpha == 0 {
		Scal(beta, y)
		return
	}

	nb := a.Nb
	rowMajor := a.Storage == fasp.RowMajor

	for br := 0; br < a.BlockRows; br++ {
		ys := y[br*nb : br*nb+nb]
		switch beta {
		case 0:
			for r := range ys {
				ys[r] = 0
			}
		case 1:
		default:
			for r := range ys {
				ys[r] *= beta
			}
		}
		for k := a.Ia[br]; k < a.Ia[br+1]; k++ {
			bc := a.Ja[k]
			base := k * nb * nb
			xs := x[bc*nb : bc*nb+nb]
			for r := 0; r < nb; r++ {
				var sum float64
				for c := 0; c < nb; c++ {
					var v float64
					if rowMajor {
						v = a.Val[base+r*nb+c]
					} else {
						v = a.Val[base+c*nb+r]
					}
					sum += v * xs[c]
				}
				ys[r] += alpha * sum
			}
		}
	}
}

// BSRMul computes y <- A*x, the shorthand form of BSRMulVec.
func BSRMul(a *fasp.BSR, x, y []float64) {
	BSRMulVec(1, a, x, 0, y)
}
