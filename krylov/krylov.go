/*
Package krylov implements the preconditioned Krylov iteration cores
(§4.G): CG, BiCGStab, VBiCGStab, MinRes, GMRES, VGMRES, VFGMRES, GCR and
GCG. Each method is its own file; all share the stopping test in
stop.go and the pooled workspace allocation in workspace.go.

Every core has the same calling shape: it is handed a matfree.MxvFree
(the mat-vec, possibly wrapping any of the five sparse formats), a
precond.Precond (precond.Identity() for an unpreconditioned solve; the
zero Precond is not accepted), the right-hand side b, an initial guess x
(overwritten in place with the solution), and a Params record; it
returns a Stats summary and an error from fasp/ferr on failure. State
(Krylov basis, Hessenberg buffers) is allocated on entry and released
on every exit path, including early returns on error - there is no
persistence across calls (§3 "Lifetimes").
*/
package krylov

import (
	"time"

	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

// Params collects the solver-independent knobs every core reads:
// the stopping test, iteration cap, and (for the GMRES family) the
// restart parameter. fasp/solver.ItParam maps onto this directly; it
// is kept separate so fasp/krylov has no import-time dependency on the
// dispatcher package.
type Params struct {
	Stop       StopType
	Tol        float64
	MaxIter    int
	MinIter    int // floor from §4.G: iterations run at least MinIter (default 0)
	Restart    int // GMRES family only; must be >= 1
	RestartMax int // VGMRES/VFGMRES upper bound for the variable-restart policy
	RestartMin int // VGMRES/VFGMRES lower bound, default 3 per §4.G.4
}

// Stats reports the outcome of a solve: how many iterations ran, the
// final (recomputed where the method supports it cheaply) residual
// norm, and the wall-clock duration, for the dispatcher's print_level
// summary (§4.H/§7).
type Stats struct {
	Iterations   int
	ResidualNorm float64
	Elapsed      time.Duration
}

// Core is the shape every method file implements; solver.go in
// fasp/solver dispatches to one of these by SolverKind.
type Core func(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error)

func timed(fn func() (Stats, error)) (Stats, error) {
	start := time.Now()
	stats, err := fn()
	stats.Elapsed = time.Since(start)
	return stats, err
}
