package fasp

import (
	"gonum.org/v1/gonum/mat"
)

var _ Matrix = (*STR)(nil)

// Band is one off-diagonal band of a STR matrix: Offset is the
// grid-stride distance from the main diagonal (never zero - the main
// diagonal is carried separately in STR.Diag), and Val holds
// (ngrid - |Offset|) * Nc² reals.
type Band struct {
	Offset int
	Val    []float64
}

// STR describes a regular 3-D grid discretization stored as a banded
// matrix (§3): Nx, Ny, Nz give the grid shape (Ngrid = Nx*Ny*Nz), Nc is
// the number of components per grid point, Diag is the mandatory
// Ngrid*Nc² main-diagonal block, and Bands holds the off-diagonal
// stencil arms. Offsets must be pairwise distinct and none may be zero;
// band arrays are sized exactly (ngrid - |offset|) * Nc².
type STR struct {
	Nx, Ny, Nz int
	Nc         int
	Diag       []float64
	Bands      []Band
}

// Ngrid returns Nx*Ny*Nz, the number of grid points.
func (s *STR) Ngrid() int { return s.Nx * s.Ny * s.Nz }

// NewSTR constructs a STR matrix. It panics if any band offset is zero
// or offsets are not pairwise distinct, or if Diag/a band is sized
// incorrectly - these are structural invariants of §3, not numerical
// conditions a kernel discovers mid-solve.
func NewSTR(nx, ny, nz, nc int, diag []float64, bands []Band) *STR {
	ngrid := nx * ny * nz
	if len(diag) != ngrid*nc*nc {
		panic("fasp: STR diagonal sized incorrectly")
	}
	seen := make(map[int]bool, len(bands))
	for _, b := range bands {
		if b.Offset == 0 {
			panic("fasp: STR band offset must not be zero")
		}
		if seen[b.Offset] {
			panic("fasp: STR band offsets must be pairwise distinct")
		}
		seen[b.Offset] = true
		want := (ngrid - abs(b.Offset)) * nc * nc
		if want < 0 {
			want = 0
		}
		if len(b.Val) != want {
			panic("fasp: STR band sized incorrectly")
		}
	}
	return &STR{Nx: nx, Ny: ny, Nz: nz, Nc: nc, Diag: diag, Bands: bands}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Dims returns the logical (Nc-scaled) row and column counts. STR
// systems arising from a single discretized PDE are square.
func (s *STR) Dims() (int, int) {
	n := s.Ngrid() * s.Nc
	return n, n
}

// NNZ returns the number of stored scalar entries across the diagonal
// and all bands.
func (s *STR) NNZ() int {
	n := len(s.Diag)
	for _, b := range s.Bands {
		n += len(b.Val)
	}
	return n
}

// At returns the logical scalar element at (i, j). Open question (a)
// from §9: a band whose offset, read in grid points, would place (i, j)
// outside [0, ngrid) is treated as an empty band rather than an error,
// since §9 resolves this ambiguity that way.
func (s *STR) At(i, j int) float64 {
	n, _ := s.Dims()
	if i < 0 || i >= n {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= n {
		panic(mat.ErrColAccess)
	}
	nc := s.Nc
	gi, ci := i/nc, i%nc
	gj, cj := j/nc, j%nc
	offset := gj - gi
	ngrid := s.Ngrid()
	if offset == 0 {
		return s.Diag[gi*nc*nc+ci*nc+cj]
	}
	for _, b := range s.Bands {
		if b.Offset != offset {
			continue
		}
		// The band stores one Nc×Nc block per valid grid point; for
		// either sign of offset the block index runs over the
		// lower-indexed endpoint of the pair (gi for a positive offset,
		// gj for a negative one), matching a contiguous
		// [0, ngrid-|offset|) numbering of the band's valid grid points.
		var g int
		if offset > 0 {
			g = gi
		} else {
			g = gj
		}
		if g < 0 || g >= ngrid-abs(offset) {
			return 0
		}
		return b.Val[g*nc*nc+ci*nc+cj]
	}
	return 0
}

// T returns the transpose via CSR conversion; structured banded
// matrices from symmetric stencils are usually self-transpose in
// practice, but STR does not assume symmetry so goes through the
// general path.
func (s *STR) T() mat.Matrix {
	return CSRTranspose(s.ToCSR())
}

// ToDense expands the banded matrix into a dense matrix.
func (s *STR) ToDense() *mat.Dense {
	n, _ := s.Dims()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := s.At(i, j); v != 0 {
				d.Set(i, j, v)
			}
		}
	}
	return d
}

// ToCOO expands the banded matrix into scalar COOrdinate triples.
func (s *STR) ToCOO() *COO {
	nc := s.Nc
	ngrid := s.Ngrid()
	n := ngrid * nc
	rows := make([]int, 0, s.NNZ())
	cols := make([]int, 0, s.NNZ())
	val := make([]float64, 0, s.NNZ())

	for g := 0; g < ngrid; g++ {
		for ci := 0; ci < nc; ci++ {
			for cj := 0; cj < nc; cj++ {
				rows = append(rows, g*nc+ci)
				cols = append(cols, g*nc+cj)
				val = append(val, s.Diag[g*nc*nc+ci*nc+cj])
			}
		}
	}
	for _, b := range s.Bands {
		width := ngrid - abs(b.Offset)
		for g := 0; g < width; g++ {
			var gi, gj int
			if b.Offset > 0 {
				gi, gj = g, g+b.Offset
			} else {
				gi, gj = g-b.Offset, g
			}
			for ci := 0; ci < nc; ci++ {
				for cj := 0; cj < nc; cj++ {
					rows = append(rows, gi*nc+ci)
					cols = append(cols, gj*nc+cj)
					val = append(val, b.Val[g*nc*nc+ci*nc+cj])
				}
			}
		}
	}
	return NewCOO(n, n, rows, cols, val)
}

// ToCSR expands the banded matrix into scalar Compressed Sparse Row
// form via ToCOO.
func (s *STR) ToCSR() *CSR {
	return CSRFromCOO(s.ToCOO())
}
