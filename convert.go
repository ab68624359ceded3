package fasp

// CSRFromCOO converts a COOrdinate matrix to Compressed Sparse Row
// (§4.B). It counts occurrences per row into Ia (prefix sum), then
// scatters entries into Ja/Val. Duplicate (i, j) entries are retained,
// not summed - this is the established contract per §4.B. Rows in the
// result are not guaranteed sorted by column index.
func CSRFromCOO(c *COO) *CSR {
	nrow, ncol := c.Nrow, c.Ncol
	nnz := len(c.Val)

	counts := make([]int, nrow+1)
	for _, r := range c.RowInd {
		counts[r+1]++
	}
	for i := 0; i < nrow; i++ {
		counts[i+1] += counts[i]
	}

	ia := counts
	ja := make([]int, nnz)
	val := make([]float64, nnz)

	cursor := make([]int, nrow)
	copy(cursor, ia[:nrow])
	for k := 0; k < nnz; k++ {
		r := c.RowInd[k]
		pos := cursor[r]
		ja[pos] = c.ColInd[k]
		val[pos] = c.Val[k]
		cursor[r]++
	}

	return NewCSR(nrow, ncol, ia, ja, val)
}

// CSRTranspose builds the transpose of a CSR matrix as a new CSR (§4.C).
// It first counts how many entries land in each column of the source
// (equivalently, each row of the transpose), prefix-sums those counts,
// then scatters. The source is left unmodified.
func CSRTranspose(a *CSR) *CSR {
	nrow, ncol := a.Ncol, a.Nrow
	nnz := a.NNZ()

	counts := make([]int, nrow+1)
	for _, j := range a.Ja {
		counts[j+1]++
	}
	for i := 0; i < nrow; i++ {
		counts[i+1] += counts[i]
	}

	ia := counts
	ja := make([]int, nnz)
	val := make([]float64, nnz)

	cursor := make([]int, nrow)
	copy(cursor, ia[:nrow])
	for i := 0; i < a.Nrow; i++ {
		for k := a.Ia[i]; k < a.Ia[i+1]; k++ {
			col := a.Ja[k]
			pos := cursor[col]
			ja[pos] = i
			val[pos] = a.Val[k]
			cursor[col]++
		}
	}

	return NewCSR(nrow, ncol, ia, ja, val)
}

// CSRAdd computes a + alpha*b and returns the result as a newly
// allocated CSR (§4.C's "CSR + αCSR"). The structural union is built
// with a two-pointer merge per row over a and b's (assumed-sorted)
// column lists; the caller is responsible for calling SortRows on
// inputs that were not already built with sorted rows, since CSRAdd
// relies on sorted order to merge each row in a single linear pass
// instead of falling back to a hash/dictionary per row. A column index
// appears at most once per row of the result, with values summed.
//
// CSRAdd panics if a and b have mismatched dimensions, since that is a
// programming error at construction time, not a numerical failure
// mid-solve; the panic is not converted into a ferr error anywhere.
func CSRAdd(a *CSR, alpha float64, b *CSR) *CSR {
	if a.Nrow != b.Nrow || a.Ncol != b.Ncol {
		panic("fasp: CSRAdd dimension mismatch")
	}

	nrow, ncol := a.Nrow, a.Ncol
	ia := make([]int, nrow+1)
	ja := make([]int, 0, a.NNZ()+b.NNZ())
	val := make([]float64, 0, a.NNZ()+b.NNZ())

	for i := 0; i < nrow; i++ {
		ia[i] = len(ja)
		ak, aEnd := a.Ia[i], a.Ia[i+1]
		bk, bEnd := b.Ia[i], b.Ia[i+1]

		for ak < aEnd && bk < bEnd {
			aj, bj := a.Ja[ak], b.Ja[bk]
			switch {
			case aj < bj:
				ja = append(ja, aj)
				val = append(val, a.Val[ak])
				ak++
			case aj > bj:
				ja = append(ja, bj)
				val = append(val, alpha*b.Val[bk])
				bk++
			default:
				ja = append(ja, aj)
				val = append(val, a.Val[ak]+alpha*b.Val[bk])
				ak++
				bk++
			}
		}
		for ak < aEnd {
			ja = append(ja, a.Ja[ak])
			val = append(val, a.Val[ak])
			ak++
		}
		for bk < bEnd {
			ja = append(ja, b.Ja[bk])
			val = append(val, alpha*b.Val[bk])
			bk++
		}
	}
	ia[nrow] = len(ja)

	return NewCSR(nrow, ncol, ia, ja, val)
}
