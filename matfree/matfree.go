/*
Package matfree provides the matrix-free dispatch trampoline (§4.E)
that lets every Krylov core in fasp/krylov exist as a single
implementation shared across all sparse formats in this module.
*/
package matfree

import (
	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/spblas"
)

// MxvFree is a matrix-free handle: a pair (Fn, Data) where
// Fn(Data, x, y) computes y <- A*x (§3). Data is borrowed for the
// solver's lifetime; Fn must be pure with respect to its inputs apart
// from writing into y.
type MxvFree struct {
	Fn   func(data interface{}, x, y []float64)
	Data interface{}
}

// Apply computes y <- A*x by calling through to m.Fn.
func (m MxvFree) Apply(x, y []float64) {
	m.Fn(m.Data, x, y)
}

// Bind constructs an MxvFree trampoline for the concrete format behind
// a fasp.Matrix, selected by tag rather than a type switch so that
// callers can pick a specialised variant (FormatCSRL) for a format
// that also has a generic binding (FormatCSR).
func Bind(tag fasp.FormatTag, m fasp.Matrix) MxvFree {
	switch tag {
	case fasp.FormatCSR:
		csr := m.(*fasp.CSR)
		return MxvFree{
			Fn: func(data interface{}, x, y []float64) {
				spblas.CSRMul(data.(*fasp.CSR), x, y)
			},
			Data: csr,
		}
	case fasp.FormatBSR:
		bsr := m.(*fasp.BSR)
		return MxvFree{
			Fn: func(data interface{}, x, y []float64) {
				spblas.BSRMul(data.(*fasp.BSR), x, y)
			},
			Data: bsr,
		}
	case fasp.FormatSTR:
		str := m.(*fasp.STR)
		return MxvFree{
			Fn: func(data interface{}, x, y []float64) {
				spblas.STRMul(data.(*fasp.STR), x, y)
			},
			Data: str,
		}
	case fasp.FormatBLC:
		blc := m.(*fasp.BLC)
		return MxvFree{
			Fn: func(data interface{}, x, y []float64) {
				spblas.BLCMul(data.(*fasp.BLC), x, y)
			},
			Data: blc,
		}
	case fasp.FormatCOO:
		coo := m.(*fasp.COO)
		return MxvFree{
			Fn: func(data interface{}, x, y []float64) {
				spblas.COOMul(data.(*fasp.COO), x, y)
			},
			Data: coo,
		}
	case fasp.FormatCSRL:
		group := spblas.NewCSRLGroup(m.(*fasp.CSR))
		return MxvFree{
			Fn: func(data interface{}, x, y []float64) {
				data.(*spblas.CSRLGroup).MulVec(1, x, 0, y)
			},
			Data: group,
		}
	default:
		panic("matfree: unrecognised format tag")
	}
}

// BindAuto infers the format tag from the concrete type behind m and
// calls Bind, for callers that already hold a typed matrix and have no
// reason to ask for the FormatCSRL specialisation explicitly.
func BindAuto(m fasp.Matrix) MxvFree {
	switch m.(type) {
	case *fasp.CSR:
		return Bind(fasp.FormatCSR, m)
	case *fasp.BSR:
		return Bind(fasp.FormatBSR, m)
	case *fasp.STR:
		return Bind(fasp.FormatSTR, m)
	case *fasp.BLC:
		return Bind(fasp.FormatBLC, m)
	case *fasp.COO:
		return Bind(fasp.FormatCOO, m)
	default:
		panic("matfree: unsupported matrix format")
	}
}
