package krylov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

// Regression scenario on a larger Poisson grid: the variable-restart
// policy must still converge to the requested tolerance within the
// iteration budget.
func TestVGMRESPoissonRegression(t *testing.T) {
	m := 12
	csr := poisson2DCSR(m)
	a := matfree.BindAuto(csr)
	n := m * m
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)

	params := Params{
		Stop:       RelRes,
		Tol:        1e-8,
		MaxIter:    3000,
		Restart:    15,
		RestartMin: 3,
		RestartMax: 40,
	}
	stats, err := VGMRES(a, b, x, precond.Identity(), params)
	require.NoError(t, err)
	assert.Less(t, stats.ResidualNorm, 1e-6)
	assert.Less(t, stats.Iterations, params.MaxIter)
}

// recordingRestartPolicy wraps variableRestartPolicy to capture the
// restart length chosen for every cycle after the first, so a test can
// inspect how the sequence evolves rather than only the final outcome.
type recordingRestartPolicy struct {
	inner *variableRestartPolicy
	seen  []int
}

func (r *recordingRestartPolicy) next(current int, p Params, cycleIter int, prevNorm, curNorm float64) int {
	next := r.inner.next(current, p, cycleIter, prevNorm, curNorm)
	r.seen = append(r.seen, next)
	return next
}

// The variable-restart policy moves to RestartMax once the first cycle
// (run at Restart) finishes (the first-cycle rule) and never strays outside
// [RestartMin, RestartMax]; this exercises the policy's actual
// per-cycle trajectory on a non-trivial grid rather than just the
// solve's final convergence.
func TestVGMRESRestartTrajectory(t *testing.T) {
	m := 12
	csr := poisson2DCSR(m)
	a := matfree.BindAuto(csr)
	n := m * m
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	x := make([]float64, n)

	params := vgmresFillDefaults(Params{
		Stop:       RelRes,
		Tol:        1e-8,
		MaxIter:    3000,
		Restart:    15,
		RestartMin: 3,
		RestartMax: 40,
	})

	policy := &recordingRestartPolicy{inner: &variableRestartPolicy{}}
	_, err := gmres(a, b, x, precond.Identity(), params, policy)
	require.NoError(t, err)
	require.NotEmpty(t, policy.seen)

	assert.Equal(t, params.RestartMax, policy.seen[0], "first cycle always grows to RestartMax")
	for _, v := range policy.seen {
		assert.GreaterOrEqual(t, v, params.RestartMin)
		assert.LessOrEqual(t, v, params.RestartMax)
	}
}
