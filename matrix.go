package fasp

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is the interface implemented by every sparse container in this
// package.  Matrix embeds mat.Matrix so automatically exposes all of
// mat.Matrix's methods (Dims, At, T) and interoperates with the rest of
// the gonum ecosystem.
type Matrix interface {
	mat.Matrix

	// NNZ returns the number of explicitly stored values in the matrix.
	// Depending on the format, this may include duplicate entries or
	// explicit zeroes.
	NNZ() int
}

// Converter is implemented by containers that can losslessly convert
// themselves into the other formats described in §3 of the data model.
// All five containers implement it; there is no conversion into BSR,
// STR or BLC.
type Converter interface {
	// ToDense returns a dense copy of the matrix. The returned matrix
	// does not share storage with the receiver.
	ToDense() *mat.Dense

	// ToCOO returns a COOrdinate copy of the matrix.
	ToCOO() *COO

	// ToCSR returns a Compressed Sparse Row copy of the matrix.
	ToCSR() *CSR
}

// FormatTag identifies the concrete storage format behind a Matrix
// value without requiring a type assertion. It is the selector used by
// fasp/matfree.Bind to pick the matching mat-vec kernel.
type FormatTag int

const (
	// FormatCSR identifies a *CSR matrix.
	FormatCSR FormatTag = iota
	// FormatCOO identifies a *COO matrix.
	FormatCOO
	// FormatBSR identifies a *BSR matrix.
	FormatBSR
	// FormatSTR identifies a *STR matrix.
	FormatSTR
	// FormatBLC identifies a *BLC matrix.
	FormatBLC
	// FormatCSRL identifies a *CSR matrix whose rows have been grouped
	// by length, trading a one-off grouping pass for a faster mat-vec
	// inner loop on matrices with many equal-length rows.
	FormatCSRL
)

// String returns a short human-readable name for the format, used in
// error messages and print_level summaries.
func (f FormatTag) String() string {
	switch f {
	case FormatCSR:
		return "CSR"
	case FormatCOO:
		return "COO"
	case FormatBSR:
		return "BSR"
	case FormatSTR:
		return "STR"
	case FormatBLC:
		return "BLC"
	case FormatCSRL:
		return "CSRL"
	default:
		return "unknown"
	}
}
