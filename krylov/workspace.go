package krylov

import "github.com/fasp-go/fasp"

// workspace allocates and releases the named scratch vectors a Krylov
// core needs, backed by fasp's package-level float pool (fasp.GetFloats
// / fasp.PutFloats) the same way the teacher package's pool.go reuses
// []float64 buffers across calls. A single contiguous block sliced into
// named sub-arrays is an optimisation, not a contract (§9) - this
// module pools whole named vectors instead, which is simpler to reason
// about and just as exception-safe on every exit path as long as
// release() runs on every return from the owning core, deferred
// immediately after acquire.
type workspace struct {
	n    int
	vecs [][]float64
}

func newWorkspace(n int) *workspace {
	return &workspace{n: n}
}

// vec returns a freshly zeroed length-n vector tracked by the
// workspace for later release.
func (w *workspace) vec() []float64 {
	v := fasp.GetFloats(w.n, true)
	w.vecs = append(w.vecs, v)
	return v
}

// release returns every vector handed out by vec to the pool. It must
// be called exactly once, via defer, immediately after the workspace is
// constructed, so that release runs on every exit path of the owning
// core (§5 "workspace is released on exit: success, failure, or early
// return").
func (w *workspace) release() {
	for _, v := range w.vecs {
		fasp.PutFloats(v)
	}
	w.vecs = nil
}
