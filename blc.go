package fasp

import (
	"gonum.org/v1/gonum/mat"
)

var _ Matrix = (*BLC)(nil)

// BLC is a Block Composite matrix: a 2-D grid of sub-matrix handles,
// used for saddle-point systems (§3). Each cell holds a Matrix (CSR or
// BSR in practice) or is nil (an implicit all-zero block). RowDims and
// ColDims give the logical row/column count contributed by each block
// row/column, and must be consistent with the Dims() of every non-nil
// cell in that block row/column.
type BLC struct {
	RowDims []int
	ColDims []int
	Blocks  [][]Matrix // Blocks[blockRow][blockCol]
}

// NewBLC constructs a BLC matrix from a grid of sub-matrix handles. A
// nil entry in blocks denotes an all-zero block.
func NewBLC(rowDims, colDims []int, blocks [][]Matrix) *BLC {
	if len(blocks) != len(rowDims) {
		panic("fasp: BLC block-row count does not match RowDims")
	}
	for _, row := range blocks {
		if len(row) != len(colDims) {
			panic("fasp: BLC block-col count does not match ColDims")
		}
	}
	return &BLC{RowDims: rowDims, ColDims: colDims, Blocks: blocks}
}

// Dims returns the total logical row and column counts, the sum of
// RowDims and ColDims respectively.
func (b *BLC) Dims() (int, int) {
	r, c := 0, 0
	for _, d := range b.RowDims {
		r += d
	}
	for _, d := range b.ColDims {
		c += d
	}
	return r, c
}

// NNZ returns the sum of NNZ across all non-nil blocks.
func (b *BLC) NNZ() int {
	n := 0
	for _, row := range b.Blocks {
		for _, m := range row {
			if m != nil {
				n += m.NNZ()
			}
		}
	}
	return n
}

// locate maps a logical (i, j) coordinate to its owning block indices
// and the local coordinate within that block.
func (b *BLC) locate(i, j int) (br, bc, li, lj int) {
	r := i
	for br = 0; br < len(b.RowDims); br++ {
		if r < b.RowDims[br] {
			break
		}
		r -= b.RowDims[br]
	}
	c := j
	for bc = 0; bc < len(b.ColDims); bc++ {
		if c < b.ColDims[bc] {
			break
		}
		c -= b.ColDims[bc]
	}
	return br, bc, r, c
}

// At returns the logical scalar element at (i, j), delegating to the
// owning block or returning 0 for an implicit empty block.
func (b *BLC) At(i, j int) float64 {
	nrow, ncol := b.Dims()
	if i < 0 || i >= nrow {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= ncol {
		panic(mat.ErrColAccess)
	}
	br, bc, li, lj := b.locate(i, j)
	m := b.Blocks[br][bc]
	if m == nil {
		return 0
	}
	return m.At(li, lj)
}

// T returns the transpose as a new BLC whose block grid is transposed
// both at the grid level and within each block.
func (b *BLC) T() mat.Matrix {
	nr, nc := len(b.RowDims), len(b.ColDims)
	blocks := make([][]Matrix, nc)
	for bc := 0; bc < nc; bc++ {
		blocks[bc] = make([]Matrix, nr)
		for br := 0; br < nr; br++ {
			m := b.Blocks[br][bc]
			if m == nil {
				continue
			}
			t := m.T()
			tm, ok := t.(Matrix)
			if !ok {
				panic("fasp: BLC sub-block transpose does not implement Matrix")
			}
			blocks[bc][br] = tm
		}
	}
	return NewBLC(append([]int(nil), b.ColDims...), append([]int(nil), b.RowDims...), blocks)
}

// RowOffset returns the logical row offset where block row br begins.
func (b *BLC) RowOffset(br int) int {
	off := 0
	for i := 0; i < br; i++ {
		off += b.RowDims[i]
	}
	return off
}

// ColOffset returns the logical column offset where block column bc
// begins.
func (b *BLC) ColOffset(bc int) int {
	off := 0
	for i := 0; i < bc; i++ {
		off += b.ColDims[i]
	}
	return off
}

// ToDense expands the composite matrix into a dense matrix.
func (b *BLC) ToDense() *mat.Dense {
	nrow, ncol := b.Dims()
	d := mat.NewDense(nrow, ncol, nil)
	for br, row := range b.Blocks {
		for bc, m := range row {
			if m == nil {
				continue
			}
			ro, co := b.RowOffset(br), b.ColOffset(bc)
			mr, mc := m.Dims()
			for i := 0; i < mr; i++ {
				for j := 0; j < mc; j++ {
					if v := m.At(i, j); v != 0 {
						d.Set(ro+i, co+j, v)
					}
				}
			}
		}
	}
	return d
}

// ToCOO expands the composite matrix into scalar COOrdinate triples by
// converting each non-nil block and shifting its triples by the
// block's row/column offset.
func (b *BLC) ToCOO() *COO {
	nrow, ncol := b.Dims()
	rows := make([]int, 0, b.NNZ())
	cols := make([]int, 0, b.NNZ())
	val := make([]float64, 0, b.NNZ())
	for br, row := range b.Blocks {
		for bc, m := range row {
			if m == nil {
				continue
			}
			ro, co := b.RowOffset(br), b.ColOffset(bc)
			conv, ok := m.(Converter)
			if !ok {
				panic("fasp: BLC sub-block does not implement Converter")
			}
			sub := conv.ToCOO()
			sub.DoNonZero(func(i, j int, v float64) {
				rows = append(rows, ro+i)
				cols = append(cols, co+j)
				val = append(val, v)
			})
		}
	}
	return NewCOO(nrow, ncol, rows, cols, val)
}

// ToCSR expands the composite matrix into scalar Compressed Sparse Row
// form via ToCOO.
func (b *BLC) ToCSR() *CSR {
	return CSRFromCOO(b.ToCOO())
}
