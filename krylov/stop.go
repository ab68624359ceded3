package krylov

import (
	"math"

	"golang.org/x/exp/slices"
)

// SmallReal is the tolerance floor SMALLREAL from §6's parameter
// record: a denominator guard smaller than ordinary machine epsilon,
// used to detect near-singular quantities (Krylov breakdown
// denominators, a zero ||x|| in RelModRes) without over-triggering on
// legitimate small-but-nonzero values.
const SmallReal = 1e-20

// BigReal is the upper sentinel BIGREAL from §6, a "worse than anything
// real" comparison value. No core in this package reads it; it is
// exported (and re-exported by fasp/solver) for callers.
const BigReal = 1e300

// StopType selects the stopping test §4.G's cores share (§3).
type StopType int

const (
	// RelRes tests ||r||_2 / ||b||_2 <= tol (or ||r||_2/||r0||_2 when
	// ||b|| == 0).
	RelRes StopType = iota
	// RelPrecRes tests sqrt(<r, M^-1 r>) / ||b||_{M^-1} <= tol.
	RelPrecRes
	// RelModRes tests ||r||_2 / max(epsilon, ||x||_2) <= tol.
	RelModRes
)

func (s StopType) String() string {
	switch s {
	case RelRes:
		return "RelRes"
	case RelPrecRes:
		return "RelPrecRes"
	case RelModRes:
		return "RelModRes"
	default:
		return "unknown"
	}
}

// Stopper evaluates the stopping test selected by Type against a
// per-iteration residual measurement. It is constructed once per solve
// from the chosen StopType, the tolerance, and the norms of b (and, for
// RelPrecRes, of b under the preconditioner's induced norm) needed to
// normalise the test.
type Stopper struct {
	Type      StopType
	Tol       float64
	bNorm     float64 // ||b||_2
	r0Norm    float64 // ||r0||_2, the RelRes fallback when ||b|| == 0
	bNormPrec float64 // ||b||_{M^-1} = sqrt(<b, M^-1 b>)
}

// NewStopper constructs a Stopper. bNormPrec should be sqrt(<b, M^-1
// b>) for RelPrecRes and is ignored otherwise; pass 0 when unused.
func NewStopper(stopType StopType, tol, bNorm, r0Norm, bNormPrec float64) *Stopper {
	return &Stopper{Type: stopType, Tol: tol, bNorm: bNorm, r0Norm: r0Norm, bNormPrec: bNormPrec}
}

// Converged evaluates the stopping test. rNorm is ||r||_2; rPrecNorm is
// sqrt(<r, M^-1 r>) (only meaningful for RelPrecRes, pass 0 if the
// caller never computes it); xNorm is ||x||_2 (only meaningful for
// RelModRes).
func (s *Stopper) Converged(rNorm, rPrecNorm, xNorm float64) bool {
	switch s.Type {
	case RelPrecRes:
		denom := s.bNormPrec
		if denom < SmallReal {
			denom = 1
		}
		return rPrecNorm/denom <= s.Tol
	case RelModRes:
		denom := math.Max(SmallReal, xNorm)
		return rNorm/denom <= s.Tol
	default: // RelRes
		denom := s.bNorm
		if denom < SmallReal {
			denom = s.r0Norm
		}
		if denom < SmallReal {
			denom = 1
		}
		return rNorm/denom <= s.Tol
	}
}

// stagnationWindow is how many consecutive iterations of non-decreasing
// residual norm (within a small relative slack) trigger ErrStagnation.
const stagnationWindow = 20

// stagnationSlack is the relative decrease below which an iteration
// does not count as progress for stagnation tracking.
const stagnationSlack = 1e-12

// divergeFactor is the multiple of the initial residual norm beyond
// which the residual is considered diverging.
const divergeFactor = 1e8

// progressTracker watches a sequence of residual norms for stagnation
// (no meaningful decrease over stagnationWindow iterations) and
// divergence (growth past divergeFactor times the initial norm). The
// stagnation check keeps a sliding window of the last stagnationWindow
// norms and compares its minimum against the norm the window is about
// to evict, so a single early improvement cannot mask a long plateau.
type progressTracker struct {
	r0Norm float64
	window []float64
}

func newProgressTracker(r0Norm float64) *progressTracker {
	return &progressTracker{r0Norm: r0Norm, window: make([]float64, 0, stagnationWindow)}
}

// Kind reports "" if the tracker sees healthy progress, "stagnate" on
// detected stagnation, or "diverge" on detected divergence.
func (p *progressTracker) Kind(rNorm float64) string {
	if p.r0Norm > SmallReal && rNorm > divergeFactor*p.r0Norm {
		return "diverge"
	}
	if len(p.window) < stagnationWindow {
		p.window = append(p.window, rNorm)
		return ""
	}
	evicted := p.window[0]
	p.window = append(slices.Delete(p.window, 0, 1), rNorm)
	if slices.Min(p.window) < evicted*(1-stagnationSlack) {
		return ""
	}
	return "stagnate"
}
