package krylov

import (
	"github.com/fasp-go/fasp/ferr"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
	"github.com/fasp-go/fasp/spblas"
)

// VFGMRES runs flexible, variably-restarted GMRES (§4.G.4): identical
// Arnoldi/Givens mechanics to GMRES, but m.Apply is permitted to
// change behaviour between basis vectors within a single cycle (an
// inner iterative preconditioner that is itself re-tuned each step),
// which is exactly what the session's per-vector z[j] cache already
// supports - gmresCycle applies m fresh at every j and never assumes
// two applications commute.
//
// Because the implicit residual estimate from the Givens recursion can
// drift from the true residual when the preconditioner is not fixed
// (§9, open question), VFGMRES recomputes the explicit residual
// ||b-A*x||_2 whenever the implicit estimate first claims convergence,
// and only accepts that claim if the explicit norm agrees within the
// stopping tolerance; otherwise it continues the outer restart loop
// with the corrected residual.
func VFGMRES(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	return timed(func() (Stats, error) { return vfgmres(a, b, x, m, vgmresFillDefaults(p)) })
}

func vfgmres(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	n := len(b)
	if err := validateParams(p, true); err != nil {
		return Stats{}, err
	}

	bNorm := spblas.Nrm2(b)
	r := make([]float64, n)
	a.Apply(x, r)
	spblas.Axpby(1, b, -1, r)
	r0Norm := spblas.Nrm2(r)
	stopper := NewStopper(p.Stop, p.Tol, bNorm, r0Norm, 0)
	tracker := newProgressTracker(r0Norm)

	restart := p.Restart
	policy := &variableRestartPolicy{}
	totalIter := 0
	lastNorm := r0Norm
	prevCycleNorm := r0Norm

	for {
		sess, ok := newGMRESSession(n, restart)
		for !ok {
			restart -= 5
			if restart < 5 {
				return Stats{Iterations: totalIter, ResidualNorm: lastNorm}, ferr.New(ferr.ErrAlloc, "VFGMRES: cannot allocate restart workspace even at minimum restart length")
			}
			sess, ok = newGMRESSession(n, restart)
		}

		cycleIter, implicitNorm, claimedConverged, err := gmresCycle(a, b, x, m, sess, stopper, tracker, p, &totalIter)
		sess.release()
		lastNorm = implicitNorm
		if err != nil {
			return Stats{Iterations: totalIter, ResidualNorm: lastNorm}, err
		}

		if claimedConverged {
			a.Apply(x, r)
			spblas.Axpby(1, b, -1, r)
			explicitNorm := spblas.Nrm2(r)
			lastNorm = explicitNorm
			if stopper.Converged(explicitNorm, 0, spblas.Nrm2(x)) {
				return Stats{Iterations: totalIter, ResidualNorm: lastNorm}, nil
			}
			// The implicit estimate was optimistic under a drifting
			// preconditioner; fall through and keep restarting from
			// the corrected residual.
		}

		if totalIter >= p.MaxIter {
			return Stats{Iterations: totalIter, ResidualNorm: lastNorm}, ferr.New(ferr.ErrMaxIter, "VFGMRES did not converge in %d iterations", p.MaxIter)
		}
		restart = policy.next(restart, p, cycleIter, prevCycleNorm, implicitNorm)
		prevCycleNorm = implicitNorm
	}
}
