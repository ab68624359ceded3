package krylov

import (
	"github.com/fasp-go/fasp/ferr"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
	"github.com/fasp-go/fasp/spblas"
)

// CG runs the classical preconditioned Conjugate Gradient method
// (§4.G.1). A requires symmetric positive-definite structure and, if m
// is not the identity, m must also be SPD - CG does not check this.
// A vanishing <p, Ap> (|<p, Ap>| below SmallReal) is reported as
// ErrBreakdown; a negative <p, Ap> is not detected and the iteration
// continues with it.
func CG(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	return timed(func() (Stats, error) { return cg(a, b, x, m, p) })
}

func cg(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	n := len(b)
	if err := validateParams(p, false); err != nil {
		return Stats{}, err
	}

	ws := newWorkspace(n)
	defer ws.release()

	r := ws.vec()
	z := ws.vec()
	pvec := ws.vec()
	ap := ws.vec()

	a.Apply(x, r)             // r <- A*x
	spblas.Axpby(1, b, -1, r) // r <- b - r = b - A*x

	r0Norm := spblas.Nrm2(r)
	if err := m.Solve(r, z); err != nil {
		return Stats{}, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
	}
	copy(pvec, z)

	rzOld := spblas.Dot(r, z)
	bNorm := spblas.Nrm2(b)

	var bNormPrec float64
	if p.Stop == RelPrecRes {
		mb := ws.vec()
		if err := m.Solve(b, mb); err != nil {
			return Stats{}, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
		}
		bNormPrec = sqrtNonNeg(spblas.Dot(b, mb))
	}
	stopper := NewStopper(p.Stop, p.Tol, bNorm, r0Norm, bNormPrec)
	tracker := newProgressTracker(r0Norm)

	iter := 0
	for {
		rNorm := spblas.Nrm2(r)
		xNorm := spblas.Nrm2(x)
		rzCur := rzOld
		if iter >= p.MinIter && stopper.Converged(rNorm, sqrtNonNeg(rzCur), xNorm) {
			return Stats{Iterations: iter, ResidualNorm: rNorm}, nil
		}
		if iter >= p.MaxIter {
			return Stats{Iterations: iter, ResidualNorm: rNorm}, ferr.New(ferr.ErrMaxIter, "CG did not converge in %d iterations", p.MaxIter)
		}
		if kind := tracker.Kind(rNorm); kind != "" {
			return Stats{Iterations: iter, ResidualNorm: rNorm}, stagnationOrDivergeErr(kind, iter)
		}

		a.Apply(pvec, ap) // ap <- A*p
		pAp := spblas.Dot(pvec, ap)
		if absf(pAp) < SmallReal {
			return Stats{Iterations: iter, ResidualNorm: rNorm}, ferr.New(ferr.ErrBreakdown, "CG breakdown: <p,Ap> ~ 0 at iteration %d", iter)
		}
		alpha := rzOld / pAp

		spblas.Axpy(alpha, pvec, x)   // x += alpha*p
		spblas.Axpy(-alpha, ap, r)    // r -= alpha*Ap

		if err := m.Solve(r, z); err != nil {
			return Stats{}, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
		}
		rzNew := spblas.Dot(r, z)
		beta := rzNew / rzOld
		spblas.Axpby(1, z, beta, pvec) // p <- z + beta*p

		rzOld = rzNew
		iter++
	}
}

func sqrtNonNeg(v float64) float64 {
	if v < 0 {
		v = 0
	}
	return sqrtFloat(v)
}
