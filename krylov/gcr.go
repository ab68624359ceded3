package krylov

import (
	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/ferr"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
	"github.com/fasp-go/fasp/spblas"
)

// GCR runs preconditioned Generalised Conjugate Residual (§4.G.5): a
// full-orthogonalisation method like GMRES but operating directly on
// residual/search-direction pairs (p_i, Ap_i) rather than an explicit
// Krylov basis. r is updated in place at every step (r -= alpha_i*Ap_i),
// while the residual norm used by the stopping test is tracked
// implicitly as ||r0||^2 - sum(alpha_i^2 * gamma_i), with alpha_i the
// step length and gamma_i = ||Ap_i||^2. Restart works the same as GMRES:
// after Restart directions the accumulated set is discarded and the
// method resumes from the current iterate.
//
// Because the implicit residual-norm recursion can accumulate
// rounding error over many directions, it is re-measured explicitly
// (||b-A*x||_2) whenever it drops to or below the tolerance, the same
// floor-and-recheck discipline VFGMRES uses for its implicit estimate.
func GCR(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	return timed(func() (Stats, error) { return gcr(a, b, x, m, p) })
}

func gcr(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	n := len(b)
	if err := validateParams(p, true); err != nil {
		return Stats{}, err
	}

	bNorm := spblas.Nrm2(b)
	r := fasp.GetFloats(n, true)
	defer fasp.PutFloats(r)
	a.Apply(x, r)
	spblas.Axpby(1, b, -1, r)
	r0Norm := spblas.Nrm2(r)
	stopper := NewStopper(p.Stop, p.Tol, bNorm, r0Norm, 0)
	tracker := newProgressTracker(r0Norm)

	restart := p.Restart
	totalIter := 0
	implicitSq := r0Norm * r0Norm
	lastNorm := r0Norm

	pDirs := make([][]float64, restart)
	apDirs := make([][]float64, restart)
	for i := range pDirs {
		pDirs[i] = fasp.GetFloats(n, true)
		apDirs[i] = fasp.GetFloats(n, true)
	}
	defer func() {
		for i := range pDirs {
			fasp.PutFloats(pDirs[i])
			fasp.PutFloats(apDirs[i])
		}
	}()

	z := fasp.GetFloats(n, true)
	defer fasp.PutFloats(z)
	ap := fasp.GetFloats(n, true)
	defer fasp.PutFloats(ap)

	k := 0
	for {
		rNorm := sqrtNonNeg(implicitSq)
		if totalIter >= p.MinIter && stopper.Converged(rNorm, 0, spblas.Nrm2(x)) {
			a.Apply(x, z)
			spblas.Axpby(1, b, -1, z)
			explicitNorm := spblas.Nrm2(z)
			lastNorm = explicitNorm
			if stopper.Converged(explicitNorm, 0, spblas.Nrm2(x)) {
				return Stats{Iterations: totalIter, ResidualNorm: lastNorm}, nil
			}
			spblas.Copy(r, z)
			implicitSq = explicitNorm * explicitNorm
			k = 0
			continue
		}
		if totalIter >= p.MaxIter {
			return Stats{Iterations: totalIter, ResidualNorm: rNorm}, ferr.New(ferr.ErrMaxIter, "GCR did not converge in %d iterations", p.MaxIter)
		}
		if kind := tracker.Kind(rNorm); kind != "" {
			return Stats{Iterations: totalIter, ResidualNorm: rNorm}, stagnationOrDivergeErr(kind, totalIter)
		}

		if err := m.Solve(r, z); err != nil {
			return Stats{}, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
		}
		a.Apply(z, ap)

		spblas.Copy(pDirs[k], z)
		spblas.Copy(apDirs[k], ap)
		for i := 0; i < k; i++ {
			beta := spblas.Dot(ap, apDirs[i]) / spblas.Dot(apDirs[i], apDirs[i])
			spblas.Axpy(-beta, pDirs[i], pDirs[k])
			spblas.Axpy(-beta, apDirs[i], apDirs[k])
		}

		gamma := spblas.Dot(apDirs[k], apDirs[k])
		if gamma < SmallReal {
			return Stats{Iterations: totalIter, ResidualNorm: rNorm}, ferr.New(ferr.ErrBreakdown, "GCR breakdown: gamma ~ 0 at iteration %d", totalIter)
		}
		alpha := spblas.Dot(r, apDirs[k]) / gamma

		spblas.Axpy(alpha, pDirs[k], x)
		spblas.Axpy(-alpha, apDirs[k], r)
		implicitSq -= alpha * alpha * gamma
		if implicitSq < 0 {
			implicitSq = 0
		}

		totalIter++
		k++
		if k >= restart {
			k = 0
		}
	}
}
