package fasp

import (
	"gonum.org/v1/gonum/mat"
)

var (
	_ Matrix    = (*COO)(nil)
	_ Converter = (*COO)(nil)
)

// COO is a COOrdinate (triplet) format sparse matrix, used only as a
// conversion way-point between other formats (§3). It is cheap to
// append to but expensive to operate on directly; fasp/krylov does not
// convert it, so a COO handed to a solver (via matfree.BindAuto) is
// mat-vec'd as a COO.
type COO struct {
	Nrow, Ncol int
	RowInd     []int
	ColInd     []int
	Val        []float64
}

// NewCOO constructs a COO matrix directly from its three parallel
// arrays, used as-is without copying.
func NewCOO(nrow, ncol int, rowind, colind []int, val []float64) *COO {
	if nrow < 0 || ncol < 0 {
		panic("fasp: negative matrix dimension")
	}
	if len(rowind) != len(colind) || len(colind) != len(val) {
		panic("fasp: mismatched COO triple lengths")
	}
	return &COO{Nrow: nrow, Ncol: ncol, RowInd: rowind, ColInd: colind, Val: val}
}

// Dims returns the number of rows and columns.
func (c *COO) Dims() (int, int) { return c.Nrow, c.Ncol }

// NNZ returns the number of stored triples, duplicates included.
func (c *COO) NNZ() int { return len(c.Val) }

// At returns the value at (i, j), summing over any duplicate triples
// stored at that coordinate.
func (c *COO) At(i, j int) float64 {
	if i < 0 || i >= c.Nrow {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= c.Ncol {
		panic(mat.ErrColAccess)
	}
	var v float64
	for k := range c.Val {
		if c.RowInd[k] == i && c.ColInd[k] == j {
			v += c.Val[k]
		}
	}
	return v
}

// T returns the transpose, sharing backing storage with the receiver by
// swapping the row/column index slices.
func (c *COO) T() mat.Matrix {
	return NewCOO(c.Ncol, c.Nrow, c.ColInd, c.RowInd, c.Val)
}

// DoNonZero calls fn once for every stored triple (duplicates included)
// in unspecified order.
func (c *COO) DoNonZero(fn func(i, j int, v float64)) {
	for k := range c.Val {
		fn(c.RowInd[k], c.ColInd[k], c.Val[k])
	}
}

// ToDense returns an equivalent dense matrix with duplicate triples
// summed.
func (c *COO) ToDense() *mat.Dense {
	d := mat.NewDense(c.Nrow, c.Ncol, nil)
	for k := range c.Val {
		i, j := c.RowInd[k], c.ColInd[k]
		d.Set(i, j, d.At(i, j)+c.Val[k])
	}
	return d
}

// ToCOO returns the receiver.
func (c *COO) ToCOO() *COO { return c }

// ToCSR converts to Compressed Sparse Row via CSRFromCOO (§4.B). Per
// §4.B's contract, duplicate (i, j) triples are retained as separate
// entries in the result, not summed: this is a deliberate divergence
// from the common convention (and from the upstream COO.ToCSR that this
// package descends from). Callers that want summed duplicates use
// ToCSRSummed.
func (c *COO) ToCSR() *CSR {
	return CSRFromCOO(c)
}

// ToCSRSummed behaves like ToCSR but additionally sums duplicate (i, j)
// triples into a single stored entry, matching the conventional
// COO-to-CSR contract used by most sparse libraries (including the one
// this package is descended from). Kept as a named alternative rather
// than the default because §4.B's round-trip property test needs the
// unsummed behavior from ToCSR.
func (c *COO) ToCSRSummed() *CSR {
	csr := CSRFromCOO(c)
	csr.SortRows()
	return sumDuplicateRows(csr)
}

func sumDuplicateRows(c *CSR) *CSR {
	ia := make([]int, c.Nrow+1)
	ja := make([]int, 0, len(c.Ja))
	val := make([]float64, 0, len(c.Val))
	for i := 0; i < c.Nrow; i++ {
		ia[i] = len(ja)
		lo, hi := c.Ia[i], c.Ia[i+1]
		for k := lo; k < hi; {
			j := c.Ja[k]
			v := c.Val[k]
			k++
			for k < hi && c.Ja[k] == j {
				v += c.Val[k]
				k++
			}
			ja = append(ja, j)
			val = append(val, v)
		}
	}
	ia[c.Nrow] = len(ja)
	return NewCSR(c.Nrow, c.Ncol, ia, ja, val)
}
