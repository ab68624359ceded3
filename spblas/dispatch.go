package spblas

import "github.com/fasp-go/fasp"

// MulVec computes y <- alpha*A*x + beta*y for any Matrix implemented by
// this package, choosing the matching format-specific kernel by type
// switch. It exists so that composite containers (BLC's sub-blocks)
// can dispatch without knowing their cell's concrete format ahead of
// time - the same role §4.E's MxvFree trampoline plays for the Krylov
// cores, specialized here to the recursive/nested case.
func MulVec(alpha float64, a fasp.Matrix, x []float64, beta float64, y []float64) {
	switch m := a.(type) {
	case *fasp.CSR:
		CSRMulVec(alpha, m, x, beta, y)
	case *fasp.BSR:
		BSRMulVec(alpha, m, x, beta, y)
	case *fasp.STR:
		STRMulVec(alpha, m, x, beta, y)
	case *fasp.BLC:
		BLCMulVec(alpha, m, x, beta, y)
	case *fasp.COO:
		COOMulVec(alpha, m, x, beta, y)
	default:
		panic("spblas: unsupported matrix format")
	}
}
