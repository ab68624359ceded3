/*
Package precond defines the preconditioner contract (§3, component F)
consumed by every Krylov core in fasp/krylov, plus two reference
implementations (Identity, Jacobi) concrete enough to exercise the
contract in tests and in cmd/fasp-bench without depending on an
external AMG/ILU/Schwarz package - those remain external collaborators
per §6, supplied by the caller as a Precond value.
*/
package precond

import "github.com/fasp-go/fasp"

// Precond is a preconditioner handle: a pair (Apply, Data) where
// Apply(Data, r, z) computes z ~= M^-1 r (§3). Unlike MxvFree, Data
// may be mutated by Apply between calls - flexible preconditioning
// (changing M from step to step) is required by VFGMRES and GCR, and
// this mutability is how a nested iterative preconditioner can track
// its own state across applications.
type Precond struct {
	Apply func(data interface{}, r, z []float64) error
	Data  interface{}
}

// Solve computes z ~= M^-1 r by calling through to p.Apply.
func (p Precond) Solve(r, z []float64) error {
	return p.Apply(p.Data, r, z)
}

// Identity returns a Precond representing M = I: z <- r, no data,
// never mutates, never errors. Used as the default when a solver is
// asked to run unpreconditioned.
func Identity() Precond {
	return Precond{
		Apply: func(_ interface{}, r, z []float64) error {
			copy(z, r)
			return nil
		},
	}
}

// jacobiData holds the cached reciprocal diagonal used by Jacobi.
type jacobiData struct {
	invDiag []float64
}

// Jacobi returns a Precond implementing diagonal (Jacobi) scaling:
// z[i] = r[i] / A[i][i]. The diagonal is extracted from a once at
// construction time. Jacobi panics if any diagonal entry of a is
// exactly zero, since there is no approximate inverse to apply at that
// row - a genuinely singular diagonal is a modelling error upstream of
// this preconditioner, not a numerical condition to recover from here.
func Jacobi(a *fasp.CSR) Precond {
	n, _ := a.Dims()
	inv := make([]float64, n)
	for i := 0; i < n; i++ {
		d := a.At(i, i)
		if d == 0 {
			panic("precond: Jacobi requires a nonzero diagonal")
		}
		inv[i] = 1 / d
	}
	return Precond{
		Apply: func(data interface{}, r, z []float64) error {
			jd := data.(*jacobiData)
			for i, ri := range r {
				z[i] = ri * jd.invDiag[i]
			}
			return nil
		},
		Data: &jacobiData{invDiag: inv},
	}
}
