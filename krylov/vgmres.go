package krylov

import (
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

// VGMRES runs GMRES with the variable-restart policy from §4.G.4: the
// restart length used for the next cycle is adjusted from the
// convergence rate cr = curNorm/prevNorm observed over the cycle just
// finished.
//
//   - first cycle just finished: grow to RestartMax, unconditionally.
//   - cr > 0.99 (stalling): grow to RestartMax.
//   - cr < 0.174 (fast convergence): keep the current restart length.
//   - otherwise: shrink by 3; if the result would drop below
//     RestartMin, reset to RestartMax instead of shrinking further.
//
// RestartMin defaults to 3 and RestartMax to p.Restart if left zero.
func VGMRES(a matfree.MxvFree, b []float64, x []float64, m precond.Precond, p Params) (Stats, error) {
	return timed(func() (Stats, error) { return gmres(a, b, x, m, vgmresFillDefaults(p), &variableRestartPolicy{}) })
}

func vgmresFillDefaults(p Params) Params {
	if p.RestartMin <= 0 {
		p.RestartMin = 3
	}
	if p.RestartMax <= 0 {
		p.RestartMax = p.Restart
	}
	return p
}

// variableRestartPolicy tracks whether a cycle has already run so the
// first-cycle rule can override the convergence-rate heuristic.
type variableRestartPolicy struct {
	started bool
}

func (v *variableRestartPolicy) next(current int, p Params, cycleIter int, prevNorm, curNorm float64) int {
	if !v.started {
		v.started = true
		return p.RestartMax
	}
	if prevNorm < SmallReal {
		return current
	}
	cr := curNorm / prevNorm

	switch {
	case cr > 0.99:
		return p.RestartMax
	case cr < 0.174:
		return current
	default:
		reduced := current - 3
		if reduced < p.RestartMin {
			return p.RestartMax
		}
		return reduced
	}
}
