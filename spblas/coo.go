package spblas

import "github.com/fasp-go/fasp"

// COOMulVec computes y <- alpha*A*x + beta*y for a COOrdinate matrix
// (§4.D), in scatter-add form: a single pass over the stored triples,
// each contributing alpha*v*x[j] to y[i]. COO mat-vec is provided for
// completeness (e.g. for testing the cross-format agreement property
// in §8). Nothing in this module converts a COO before iterating:
// matfree.BindAuto binds a *fasp.COO straight to COOMul, so a Krylov
// solve on a COO runs this kernel at every mat-vec.
func COOMulVec(alpha float64, a *fasp.COO, x []float64, beta float64, y []float64) {
	if beta == 0 {
		Set(0, y)
	} else if beta != 1 {
		Scal(beta, y)
	}
	if alpha == 0 {
		return
	}
	for k := range a.Val {
		y[a.RowInd[k]] += alpha * a.Val[k] * x[a.ColInd[k]]
	}
}

// COOMul computes y <- A*x, the shorthand form of COOMulVec.
func COOMul(a *fasp.COO, x, y []float64) {
	COOMulVec(1, a, x, 0, y)
}
