package krylov

import (
	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/ferr"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
	"github.com/fasp-go/fasp/spblas"
)

// GCG runs Generalised Conjugate Gradient (§4.G.6): GCR's direction
// construction (preconditioned residual, A-orthogonalised against
// earlier directions) but with bounded memory - once Restart
// directions have been generated the oldest is evicted from the
// orthogonalisation window rather than the whole cycle being
// discarded, giving a short recurrence that runs indefinitely instead
// of GCR's periodic full restart. Intended for non-symmetric A paired
// with a symmetric positive-definite preconditioner M, where the
// bounded window is usually enough to keep directions nearly
// A-orthogonal without the cost of remembering every direction ever
// generated.
func GCG(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	return timed(func() (Stats, error) { return gcg(a, b, x, m, p) })
}

func gcg(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	n := len(b)
	if err := validateParams(p, true); err != nil {
		return Stats{}, err
	}
	window := p.Restart

	bNorm := spblas.Nrm2(b)
	r := fasp.GetFloats(n, true)
	defer fasp.PutFloats(r)
	a.Apply(x, r)
	spblas.Axpby(1, b, -1, r)
	r0Norm := spblas.Nrm2(r)
	stopper := NewStopper(p.Stop, p.Tol, bNorm, r0Norm, 0)
	tracker := newProgressTracker(r0Norm)

	pDirs := make([][]float64, window)
	apDirs := make([][]float64, window)
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

	filled := 0 // number of live slots in the circular window, up to `window`
	next := 0   // slot the next direction overwrites

	totalIter := 0
	for {
		rNorm := spblas.Nrm2(r)
		if totalIter >= p.MinIter && stopper.Converged(rNorm, 0, spblas.Nrm2(x)) {
			return Stats{Iterations: totalIter, ResidualNorm: rNorm}, nil
		}
		if totalIter >= p.MaxIter {
			return Stats{Iterations: totalIter, ResidualNorm: rNorm}, ferr.New(ferr.ErrMaxIter, "GCG did not converge in %d iterations", p.MaxIter)
		}
		if kind := tracker.Kind(rNorm); kind != "" {
			return Stats{Iterations: totalIter, ResidualNorm: rNorm}, stagnationOrDivergeErr(kind, totalIter)
		}

		if err := m.Solve(r, z); err != nil {
			return Stats{}, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
		}
		a.Apply(z, ap)

		slot := next
		spblas.Copy(pDirs[slot], z)
		spblas.Copy(apDirs[slot], ap)
		for i := 0; i < filled; i++ {
			if i == slot {
				continue
			}
			beta := spblas.Dot(ap, apDirs[i]) / spblas.Dot(apDirs[i], apDirs[i])
			spblas.Axpy(-beta, pDirs[i], pDirs[slot])
			spblas.Axpy(-beta, apDirs[i], apDirs[slot])
		}

		gamma := spblas.Dot(apDirs[slot], apDirs[slot])
		if gamma < SmallReal {
			return Stats{Iterations: totalIter, ResidualNorm: rNorm}, ferr.New(ferr.ErrBreakdown, "GCG breakdown: gamma ~ 0 at iteration %d", totalIter)
		}
		alpha := spblas.Dot(r, apDirs[slot]) / gamma

		spblas.Axpy(alpha, pDirs[slot], x)
		spblas.Axpy(-alpha, apDirs[slot], r)

		if filled < window {
			filled++
		}
		next = (next + 1) % window
		totalIter++
	}
}
