package krylov

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/ferr"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
	"github.com/fasp-go/fasp/spblas"
)

// GMRES runs right-preconditioned restarted GMRES (§4.G.4): modified
// Gram-Schmidt builds an orthonormal Krylov basis, Givens rotations
// reduce the Hessenberg matrix incrementally so the residual norm is
// known after every basis vector without an explicit solve, and the
// correction is back-substituted once per restart cycle.
//
// If the basis workspace for the requested Restart cannot be obtained
// from the pool, the restart length is reduced by 5 and allocation is
// retried; once Restart would drop below 5 the attempt is abandoned
// and ErrAlloc is returned (§5, §7).
func GMRES(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	return timed(func() (Stats, error) { return gmres(a, b, x, m, p, nil) })
}

// gmresSession holds the per-restart-cycle basis and Hessenberg state,
// sized for a given restart length. z[j] caches M^-1*v[j] so the
// end-of-cycle correction can be formed without re-applying the
// preconditioner (required for VFGMRES, where a different M may have
// produced each z[j]).
type gmresSession struct {
	restart int
	n       int
	v       [][]float64 // restart+1 orthonormal basis vectors
	z       [][]float64 // restart preconditioned basis vectors
	h       [][]float64 // h[j] is column j of the Hessenberg matrix, length restart+1
	cs, sn  []float64   // cached Givens rotation coefficients, one per column
	g       []float64   // right-hand side of the reduced least-squares problem, length restart+1
}

func newGMRESSession(n, restart int) (*gmresSession, bool) {
	if restart < 1 {
		return nil, false
	}
	v := make([][]float64, restart+1)
	for i := range v {
		v[i] = fasp.GetFloats(n, true)
	}
	z := make([][]float64, restart)
	for i := range z {
		z[i] = fasp.GetFloats(n, true)
	}
	h := make([][]float64, restart)
	for j := range h {
		h[j] = make([]float64, restart+1)
	}
	return &gmresSession{
		restart: restart,
		n:       n,
		v:       v,
		z:       z,
		h:       h,
		cs:      make([]float64, restart),
		sn:      make([]float64, restart),
		g:       make([]float64, restart+1),
	}, true
}

func (s *gmresSession) release() {
	for _, v := range s.v {
		fasp.PutFloats(v)
	}
	for _, z := range s.z {
		fasp.PutFloats(z)
	}
}

// restartPolicy adjusts the restart length between GMRES cycles
// (VGMRES, §4.G.4). next returns the restart length to use for the
// cycle that is about to start, given the length just used and how
// the residual moved over that cycle.
type restartPolicy interface {
	next(current int, p Params, cycleIter int, prevNorm, curNorm float64) int
}

// gmres implements both plain GMRES and the restart-policy hook VGMRES
// needs: policy, if non-nil, is consulted after each restart cycle to
// adjust the restart length for the next one.
func gmres(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params, policy restartPolicy) (Stats, error) {
	n := len(b)
	if err := validateParams(p, true); err != nil {
		return Stats{}, err
	}

	bNorm := spblas.Nrm2(b)

	rScratch := fasp.GetFloats(n, true)
	defer fasp.PutFloats(rScratch)
	a.Apply(x, rScratch)
	spblas.Axpby(1, b, -1, rScratch)
	r0Norm := spblas.Nrm2(rScratch)

	stopper := NewStopper(p.Stop, p.Tol, bNorm, r0Norm, 0)
	tracker := newProgressTracker(r0Norm)

	restart := p.Restart
	totalIter := 0
	lastNorm := r0Norm
	prevCycleNorm := r0Norm

	for {
		var sess *gmresSession
		var ok bool
		for {
			sess, ok = newGMRESSession(n, restart)
			if ok {
				break
			}
			restart -= 5
			if restart < 5 {
				return Stats{Iterations: totalIter, ResidualNorm: lastNorm}, ferr.New(ferr.ErrAlloc, "GMRES: cannot allocate restart workspace even at minimum restart length")
			}
		}

		cycleIter, cycleNorm, converged, err := gmresCycle(a, b, x, m, sess, stopper, tracker, p, &totalIter)
		sess.release()
		lastNorm = cycleNorm
		if err != nil {
			return Stats{Iterations: totalIter, ResidualNorm: lastNorm}, err
		}
		if converged {
			return Stats{Iterations: totalIter, ResidualNorm: lastNorm}, nil
		}
		if totalIter >= p.MaxIter {
			return Stats{Iterations: totalIter, ResidualNorm: lastNorm}, ferr.New(ferr.ErrMaxIter, "GMRES did not converge in %d iterations", p.MaxIter)
		}
		if policy != nil {
			restart = policy.next(restart, p, cycleIter, prevCycleNorm, cycleNorm)
		}
		prevCycleNorm = cycleNorm
	}
}

// gmresCycle runs a single restart cycle: up to sess.restart Arnoldi
// steps (fewer if convergence or max_iter is reached mid-cycle),
// followed by the triangular back-substitution and the correction of
// x. It reports the number of steps taken, the final residual-norm
// estimate, and whether the stopping test was satisfied.
func gmresCycle(a matfree.MxvFree, b, x []float64, m precond.Precond, sess *gmresSession, stopper *Stopper, tracker *progressTracker, p Params, totalIter *int) (int, float64, bool, error) {
	n := sess.n
	restart := sess.restart

	a.Apply(x, sess.v[0])
	spblas.Axpby(1, b, -1, sess.v[0])
	beta := spblas.Nrm2(sess.v[0])
	if beta < SmallReal {
		return 0, 0, true, nil
	}
	spblas.Scal(1/beta, sess.v[0])
	sess.g[0] = beta
	for i := 1; i <= restart; i++ {
		sess.g[i] = 0
	}

	w := fasp.GetFloats(n, true)
	defer fasp.PutFloats(w)

	steps := 0
	resNorm := beta
	for j := 0; j < restart; j++ {
		if *totalIter >= p.MaxIter {
			break
		}

		if err := m.Solve(sess.v[j], sess.z[j]); err != nil {
			return steps, resNorm, false, ferr.New(ferr.ErrBreakdown, "preconditioner apply failed: %v", err)
		}
		a.Apply(sess.z[j], w)

		for i := 0; i <= j; i++ {
			hij := spblas.Dot(w, sess.v[i])
			sess.h[j][i] = hij
			spblas.Axpy(-hij, sess.v[i], w)
		}
		hNext := spblas.Nrm2(w)
		sess.h[j][j+1] = hNext
		if hNext >= SmallReal {
			spblas.Copy(sess.v[j+1], w)
			spblas.Scal(1/hNext, sess.v[j+1])
		}

		// Apply cached Givens rotations from earlier columns to this
		// column, then compute and apply a new one that annihilates
		// h[j][j+1].
		for i := 0; i < j; i++ {
			t1 := sess.cs[i]*sess.h[j][i] + sess.sn[i]*sess.h[j][i+1]
			t2 := -sess.sn[i]*sess.h[j][i] + sess.cs[i]*sess.h[j][i+1]
			sess.h[j][i] = t1
			sess.h[j][i+1] = t2
		}
		c, s, r := givens(sess.h[j][j], sess.h[j][j+1])
		sess.cs[j], sess.sn[j] = c, s
		sess.h[j][j] = r
		sess.h[j][j+1] = 0

		sess.g[j+1] = -s * sess.g[j]
		sess.g[j] = c * sess.g[j]

		steps++
		*totalIter++
		resNorm = absf(sess.g[j+1])

		xNorm := spblas.Nrm2(x)
		if *totalIter >= p.MinIter && stopper.Converged(resNorm, 0, xNorm) {
			break
		}
		if kind := tracker.Kind(resNorm); kind != "" {
			gmresApplyCorrection(sess, x, steps)
			return steps, resNorm, false, stagnationOrDivergeErr(kind, *totalIter)
		}
		if hNext < SmallReal {
			// Lucky breakdown: the basis is exhausted but the
			// reduced system is already consistent, so the cycle's
			// correction is exact up to floating point - stop this
			// cycle here rather than continuing with a zero vector.
			break
		}
	}

	gmresApplyCorrection(sess, x, steps)

	xNorm := spblas.Nrm2(x)
	converged := *totalIter >= p.MinIter && stopper.Converged(resNorm, 0, xNorm)
	return steps, resNorm, converged, nil
}

// gmresApplyCorrection solves the m x m upper-triangular Hessenberg
// reduction for y via blas64.Dtrsv and adds sum_i y[i]*z[i] into x. A
// diagonal entry below SmallReal marks a singular reduced system (the
// cycle stopped on lucky breakdown with a deficient column); that
// row's contribution is zeroed rather than solved.
func gmresApplyCorrection(sess *gmresSession, x []float64, m int) {
	if m == 0 {
		return
	}
	singular := -1
	a := make([]float64, m*m)
	for row := 0; row < m; row++ {
		for col := row; col < m; col++ {
			a[row*m+col] = sess.h[col][row]
		}
		if absf(a[row*m+row]) < SmallReal {
			singular = row
		}
	}
	y := make([]float64, m)
	copy(y, sess.g[:m])
	if singular >= 0 {
		for col := singular; col < m; col++ {
			a[singular*m+col] = 0
		}
		a[singular*m+singular] = 1
		y[singular] = 0
	}
	blas64.Implementation().Dtrsv(blas.Upper, blas.NoTrans, blas.NonUnit, m, a, m, y, 1)
	for i := 0; i < m; i++ {
		spblas.Axpy(y[i], sess.z[i], x)
	}
}
