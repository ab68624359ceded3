package krylov

import (
	"github.com/fasp-go/fasp/ferr"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
	"github.com/fasp-go/fasp/spblas"
)

// BiCGStab runs preconditioned stabilised bi-conjugate gradient
// (§4.G.2) for general (non-symmetric) A. It keeps a fixed shadow
// residual r0hat chosen once at start and restarts the Krylov sequence
// from the current iterate if rho collapses - a genuine Lanczos
// breakdown rather than convergence - up to one restart attempt before
// reporting ErrBreakdown.
func BiCGStab(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	return timed(func() (Stats, error) { return bicgstab(a, b, x, m, p, false) })
}

// VBiCGStab is the variable-preconditioning form of BiCGStab (§4.G.2):
// identical recurrence, but m.Solve is allowed to change behaviour
// between calls (e.g. an inner iterative preconditioner), so the two
// preconditioner applications per outer step (on p and on s) are not
// assumed to commute with the scalar recurrence the way they would
// under a fixed M.
func VBiCGStab(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	return timed(func() (Stats, error) { return bicgstab(a, b, x, m, p, true) })
}

func bicgstab(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params, variable bool) (Stats, error) {
	_ = variable // the recurrence itself is identical; documented above for the caller's benefit
	n := len(b)
	if err := validateParams(p, false); err != nil {
		return Stats{}, err
	}

	ws := newWorkspace(n)
	defer ws.release()

	r := ws.vec()
	r0hat := ws.vec()
	pv := ws.vec()
	v := ws.vec()
	s := ws.vec()
	t := ws.vec()
	yv := ws.vec()
	zv := ws.vec()

	a.Apply(x, r)
	spblas.Axpby(1, b, -1, r) // r <- b - A*x
	spblas.Copy(r0hat, r)

	r0Norm := spblas.Nrm2(r)
	bNorm := spblas.Nrm2(b)
	stopper := NewStopper(p.Stop, p.Tol, bNorm, r0Norm, 0)
	tracker := newProgressTracker(r0Norm)

	rho := 1.0
	alpha := 1.0
	omega := 1.0

	restarted := false
	iter := 0
	for {
		rNorm := spblas.Nrm2(r)
		if iter >= p.MinIter && stopper.Converged(rNorm, 0, spblas.Nrm2(x)) {
			return Stats{Iterations: iter, ResidualNorm: rNorm}, nil
		}
		if iter >= p.MaxIter {
			return Stats{Iterations: iter, ResidualNorm: rNorm}, ferr.New(ferr.ErrMaxIter, "BiCGStab did not converge in %d iterations", p.MaxIter)
		}
		if kind := tracker.Kind(rNorm); kind != "" {
			return Stats{Iterations: iter, ResidualNorm: rNorm}, stagnationOrDivergeErr(kind, iter)
		}

		rhoNew := spblas.Dot(r0hat, r)
		if absf(rhoNew) < SmallReal {
			if restarted {
				return Stats{Iterations: iter, ResidualNorm: rNorm}, ferr.New(ferr.ErrBreakdown, "BiCGStab breakdown: rho ~ 0 at iteration %d", iter)
			}
			// Restart once: pick a new shadow residual equal to the
			// current true residual and resume from here.
			spblas.Copy(r0hat, r)
			rho, alpha, omega = 1, 1, 1
			spblas.Set(0, pv)
			spblas.Set(0, v)
			restarted = true
			iter++
			continue
		}

		if iter == 0 {
			spblas.Copy(pv, r)
		} else {
			if absf(omega) < SmallReal {
				return Stats{Iterations: iter, ResidualNorm: rNorm}, ferr.New(ferr.ErrBreakdown, "BiCGStab breakdown: omega ~ 0 at iteration %d", iter)
			}
			beta := (rhoNew / rho) * (alpha / omega)
			// p <- r + beta*(p - omega*v)
			spblas.Axpy(-omega, v, pv)
			spblas.Axpby(1, r, beta, pv)
		}
		rho = rhoNew

		if err := m.Solve(pv, yv); err != nil {
			return Stats{}, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
		}
		a.Apply(yv, v)

		r0hatV := spblas.Dot(r0hat, v)
		if absf(r0hatV) < SmallReal {
			return Stats{Iterations: iter, ResidualNorm: rNorm}, ferr.New(ferr.ErrBreakdown, "BiCGStab breakdown: <r0hat,v> ~ 0 at iteration %d", iter)
		}
		alpha = rho / r0hatV

		spblas.Copy(s, r)
		spblas.Axpy(-alpha, v, s)

		sNorm := spblas.Nrm2(s)
		if iter >= p.MinIter && stopper.Converged(sNorm, 0, spblas.Nrm2(x)) {
			spblas.Axpy(alpha, yv, x)
			return Stats{Iterations: iter + 1, ResidualNorm: sNorm}, nil
		}

		if err := m.Solve(s, zv); err != nil {
			return Stats{}, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
		}
		a.Apply(zv, t)

		tt := spblas.Dot(t, t)
		if tt < SmallReal {
			return Stats{Iterations: iter, ResidualNorm: sNorm}, ferr.New(ferr.ErrBreakdown, "BiCGStab breakdown: <t,t> ~ 0 at iteration %d", iter)
		}
		omega = spblas.Dot(t, s) / tt

		spblas.Axpy(alpha, yv, x)
		spblas.Axpy(omega, zv, x)

		spblas.Copy(r, s)
		spblas.Axpy(-omega, t, r)

		iter++
	}
}
