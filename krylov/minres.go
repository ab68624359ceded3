package krylov

import (
	"math"

	"github.com/fasp-go/fasp/ferr"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
	"github.com/fasp-go/fasp/spblas"
)

// MinRes runs preconditioned MinRes (§4.G.3): three-term Lanczos
// recurrence with a Givens-rotation update of the QR factorisation of
// the tridiagonal system, giving the residual norm for free at every
// step without forming it explicitly. Requires symmetric A (and
// symmetric positive-definite M if preconditioned); unlike CG, A need
// not be positive definite.
func MinRes(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	return timed(func() (Stats, error) { return minres(a, b, x, m, p) })
}

func minres(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	n := len(b)
	if err := validateParams(p, false); err != nil {
		return Stats{}, err
	}

	ws := newWorkspace(n)
	defer ws.release()

	vPrev := ws.vec()
	v := ws.vec()
	vNext := ws.vec()
	z := ws.vec()
	zNext := ws.vec()
	w0 := ws.vec()
	w1 := ws.vec()
	w2 := ws.vec()
	avTmp := ws.vec()

	a.Apply(x, v) // v <- A*x (reused as scratch for r0)
	spblas.Axpby(1, b, -1, v)
	bNorm := spblas.Nrm2(b)
	r0Norm := spblas.Nrm2(v)

	if err := m.Solve(v, z); err != nil {
		return Stats{}, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
	}
	beta := math.Sqrt(spblas.Dot(v, z))
	if beta < SmallReal {
		return Stats{Iterations: 0, ResidualNorm: r0Norm}, nil
	}
	phiBar := beta

	spblas.Scal(1/beta, v)
	spblas.Scal(1/beta, z)

	cOld, sOld := 1.0, 0.0
	c, s := 1.0, 0.0

	stopper := NewStopper(p.Stop, p.Tol, bNorm, r0Norm, 0)
	tracker := newProgressTracker(r0Norm)

	iter := 0
	for {
		rNormEst := absf(phiBar)
		if iter >= p.MinIter && stopper.Converged(rNormEst, 0, spblas.Nrm2(x)) {
			return Stats{Iterations: iter, ResidualNorm: rNormEst}, nil
		}
		if iter >= p.MaxIter {
			return Stats{Iterations: iter, ResidualNorm: rNormEst}, ferr.New(ferr.ErrMaxIter, "MinRes did not converge in %d iterations", p.MaxIter)
		}
		if kind := tracker.Kind(rNormEst); kind != "" {
			return Stats{Iterations: iter, ResidualNorm: rNormEst}, stagnationOrDivergeErr(kind, iter)
		}

		a.Apply(z, avTmp)
		alpha := spblas.Dot(z, avTmp)

		spblas.Copy(vNext, avTmp)
		spblas.Axpy(-alpha, v, vNext)
		spblas.Axpy(-beta, vPrev, vNext)

		if err := m.Solve(vNext, zNext); err != nil {
			return Stats{}, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
		}
		betaNext := math.Sqrt(math.Max(0, spblas.Dot(vNext, zNext)))

		// Apply the two previous Givens rotations to the new
		// tridiagonal column [beta, alpha, betaNext].
		delta2 := sOld * beta
		gamma1 := cOld * beta
		delta1 := c*gamma1 + s*alpha
		gammaBar := -s*gamma1 + c*alpha

		// New Givens rotation zeroing betaNext against gammaBar.
		cNew, sNew, gamma := givens(gammaBar, betaNext)
		if absf(gamma) < SmallReal {
			return Stats{Iterations: iter, ResidualNorm: rNormEst}, ferr.New(ferr.ErrBreakdown, "MinRes breakdown: gamma ~ 0 at iteration %d", iter)
		}

		phi := cNew * phiBar
		phiBar = -sNew * phiBar

		// w2 <- (z - delta2*w0 - delta1*w1) / gamma
		spblas.Copy(w2, z)
		spblas.Axpy(-delta2, w0, w2)
		spblas.Axpy(-delta1, w1, w2)
		spblas.Scal(1/gamma, w2)

		spblas.Axpy(phi, w2, x)

		vPrev, v, vNext = v, vNext, vPrev
		z, zNext = zNext, z
		w0, w1, w2 = w1, w2, w0

		if betaNext >= SmallReal {
			spblas.Scal(1/betaNext, v)
			spblas.Scal(1/betaNext, z)
		}

		beta = betaNext
		cOld, sOld = c, s
		c, s = cNew, sNew

		iter++
	}
}

// givens computes the cosine/sine pair and resulting radius that
// rotate [f, g] onto [r, 0].
func givens(f, g float64) (c, s, r float64) {
	if g == 0 {
		return 1, 0, f
	}
	if f == 0 {
		return 0, 1, g
	}
	r = math.Hypot(f, g)
	return f / r, g / r, r
}
