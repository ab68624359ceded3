package krylov

import (
	"math"

	"github.com/fasp-go/fasp/ferr"
)

// validateParams checks the parameter invariants every core relies on
// before allocating a workspace (§4.G, §7 ErrInputPar). needRestart is
// true for the cores that read Restart (the GMRES family, GCR and GCG),
// where Restart must be a positive integer; Restart is not checked
// against RestartMax.
func validateParams(p Params, needRestart bool) error {
	if p.Tol <= 0 {
		return ferr.New(ferr.ErrInputPar, "tol must be positive, got %g", p.Tol)
	}
	if p.MaxIter < 0 {
		return ferr.New(ferr.ErrInputPar, "max_iter must be non-negative, got %d", p.MaxIter)
	}
	if p.MinIter < 0 {
		return ferr.New(ferr.ErrInputPar, "min_iter must be non-negative, got %d", p.MinIter)
	}
	if p.MinIter > p.MaxIter {
		return ferr.New(ferr.ErrInputPar, "min_iter (%d) exceeds max_iter (%d)", p.MinIter, p.MaxIter)
	}
	if needRestart && p.Restart <= 0 {
		return ferr.New(ferr.ErrInputPar, "restart must be positive, got %d", p.Restart)
	}
	return nil
}

// stagnationOrDivergeErr maps a progressTracker verdict ("stagnate" or
// "diverge") onto the matching *ferr.Error.
func stagnationOrDivergeErr(kind string, iter int) error {
	if kind == "diverge" {
		return ferr.New(ferr.ErrDiverge, "residual diverged at iteration %d", iter)
	}
	return ferr.New(ferr.ErrStagnation, "residual stagnated at iteration %d", iter)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sqrtFloat(v float64) float64 {
	return math.Sqrt(v)
}
