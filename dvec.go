package fasp

// DVec is a dense real vector: a contiguous array plus its length
// (§3). The Krylov cores in fasp/krylov do not use it: their work
// vectors are plain []float64 slices from GetFloats.
//
// Invariant: Len >= 0; Data is allocated iff Len > 0.
type DVec struct {
	Data []float64
}

// NewDVec allocates a zeroed DVec of the given length.
func NewDVec(n int) *DVec {
	if n < 0 {
		panic("fasp: negative vector length")
	}
	if n == 0 {
		return &DVec{}
	}
	return &DVec{Data: make([]float64, n)}
}

// Len returns the vector's length.
func (v *DVec) Len() int { return len(v.Data) }

// Dims reports the vector as an Len x 1 matrix, for mat.Matrix
// interoperability.
func (v *DVec) Dims() (int, int) { return len(v.Data), 1 }

// At returns Data[i] for c == 0, and panics otherwise, matching
// mat.Vector's contract for a column vector.
func (v *DVec) At(i, c int) float64 {
	if c != 0 {
		panic("fasp: column index out of range for DVec")
	}
	return v.Data[i]
}

// AtVec returns Data[i].
func (v *DVec) AtVec(i int) float64 { return v.Data[i] }
