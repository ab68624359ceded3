package fasp

import (
	"gonum.org/v1/gonum/mat"
)

var (
	_ Matrix    = (*CSR)(nil)
	_ Converter = (*CSR)(nil)
	_ mat.Matrix = (*CSR)(nil)
)

// CSR is a Compressed Sparse Row matrix, the general-purpose operational
// format for sparse mat-vec products (component D).
//
// Invariants (§3): Ia has length Nrow+1, Ia[0] == 0, Ia[Nrow] == Nnz, and
// Ia is nondecreasing. For row i, Ja[Ia[i]:Ia[i+1]] holds the column
// indices stored in that row. Duplicate (row, col) entries are permitted
// but discouraged; within a row, column order is not assumed to be
// sorted - kernels must not rely on it.
type CSR struct {
	Nrow, Ncol int
	Ia         []int
	Ja         []int
	Val        []float64
}

// NewCSR constructs a CSR matrix directly from its three backing arrays.
// The arrays are used as-is (no copy): mutating them after construction
// mutates the matrix. NewCSR does not validate §3's invariants, and
// neither do the mat-vec kernels in fasp/spblas: they have no error
// return and never report ferr.ErrFormat, so a violated invariant
// surfaces as an index-out-of-range panic or a wrong product.
func NewCSR(nrow, ncol int, ia, ja []int, val []float64) *CSR {
	if nrow < 0 || ncol < 0 {
		panic("fasp: negative matrix dimension")
	}
	return &CSR{Nrow: nrow, Ncol: ncol, Ia: ia, Ja: ja, Val: val}
}

// Dims returns the number of rows and columns.
func (c *CSR) Dims() (int, int) { return c.Nrow, c.Ncol }

// NNZ returns the number of stored entries, duplicates included.
func (c *CSR) NNZ() int { return len(c.Val) }

// RowNNZ returns the number of stored entries in row i.
func (c *CSR) RowNNZ(i int) int {
	if i < 0 || i >= c.Nrow {
		panic("fasp: row index out of range")
	}
	return c.Ia[i+1] - c.Ia[i]
}

// At returns the value at (i, j), summing duplicate entries if any are
// stored for that coordinate. At does not assume columns within a row
// are sorted and scans linearly, matching the unsorted-row invariant of
// §3.
func (c *CSR) At(i, j int) float64 {
	if i < 0 || i >= c.Nrow {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= c.Ncol {
		panic(mat.ErrColAccess)
	}
	var v float64
	for k := c.Ia[i]; k < c.Ia[i+1]; k++ {
		if c.Ja[k] == j {
			v += c.Val[k]
		}
	}
	return v
}

// T returns the transpose of the receiver as a freshly built CSR (via
// CSRTranspose); CSR has no in-place transpose because the on-disk
// layout of rows and columns is not symmetric the way COO's is.
func (c *CSR) T() mat.Matrix {
	return CSRTranspose(c)
}

// ToDense returns an equivalent dense matrix. Duplicate entries are
// summed.
func (c *CSR) ToDense() *mat.Dense {
	d := mat.NewDense(c.Nrow, c.Ncol, nil)
	for i := 0; i < c.Nrow; i++ {
		for k := c.Ia[i]; k < c.Ia[i+1]; k++ {
			j := c.Ja[k]
			d.Set(i, j, d.At(i, j)+c.Val[k])
		}
	}
	return d
}

// ToCOO returns a COOrdinate copy of the matrix. Duplicates stored in
// the receiver are preserved as separate triples, not summed.
func (c *CSR) ToCOO() *COO {
	nnz := c.NNZ()
	rows := make([]int, nnz)
	cols := make([]int, nnz)
	val := make([]float64, nnz)
	for i := 0; i < c.Nrow; i++ {
		for k := c.Ia[i]; k < c.Ia[i+1]; k++ {
			rows[k] = i
		}
	}
	copy(cols, c.Ja)
	copy(val, c.Val)
	return NewCOO(c.Nrow, c.Ncol, rows, cols, val)
}

// ToCSR returns the receiver.
func (c *CSR) ToCSR() *CSR { return c }

// SortRows sorts the column indices (and corresponding values) within
// each row in place. Most kernels do not require sorted rows (§4.D), but
// a handful of consumers (e.g. binary search lookups, pretty printers)
// benefit from it; §4.B explicitly warns that rows are not sorted by
// default so callers who need this call it explicitly.
func (c *CSR) SortRows() {
	for i := 0; i < c.Nrow; i++ {
		lo, hi := c.Ia[i], c.Ia[i+1]
		insertionSort(c.Ja[lo:hi], c.Val[lo:hi])
	}
}

func insertionSort(ja []int, val []float64) {
	for i := 1; i < len(ja); i++ {
		j, k, v := i, ja[i], val[i]
		for j > 0 && ja[j-1] > k {
			ja[j] = ja[j-1]
			val[j] = val[j-1]
			j--
		}
		ja[j] = k
		val[j] = v
	}
}
