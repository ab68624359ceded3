package spblas

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers controls how many goroutines the data-parallel kernels in
// this package (Dot, CSRMulVec) fan out across. Zero (the default)
// runs every kernel single-threaded, matching §5's "if absent, the
// code runs single-threaded". There is no suspension point inside a
// kernel and no cancellation channel (§5) - Workers only trades wall
// clock for CPU, it never changes what is computed, modulo the
// floating-point reassociation the reduction order permits (§5's
// O(n*epsilon) agreement bound).
var Workers int

// numWorkers returns the number of goroutines to fan a loop of length n
// across, honoring Workers and never exceeding n.
func numWorkers(n int) int {
	w := Workers
	if w <= 1 {
		return 1
	}
	if w > n {
		w = n
	}
	return w
}

// Copy sets dst[i] = src[i] for all i. len(dst) must equal len(src).
func Copy(dst, src []float64) {
	copy(dst, src)
}

// Set assigns the constant c to every element of x.
func Set(c float64, x []float64) {
	for i := range x {
		x[i] = c
	}
}

// Scal scales x in place: x <- alpha*x.
func Scal(alpha float64, x []float64) {
	if alpha == 1 {
		return
	}
	for i := range x {
		x[i] *= alpha
	}
}

// Axpy computes y <- alpha*x + y in place. len(x) must equal len(y).
func Axpy(alpha float64, x, y []float64) {
	if alpha == 0 {
		return
	}
	for i, xi := range x {
		y[i] += alpha * xi
	}
}

// Axpby computes y <- alpha*x + beta*y in place, the general linear
// combination from §4.A. len(x) must equal len(y).
func Axpby(alpha float64, x []float64, beta float64, y []float64) {
	switch beta {
	case 0:
		for i, xi := range x {
			y[i] = alpha * xi
		}
	case 1:
		Axpy(alpha, x, y)
	default:
		for i, xi := range x {
			y[i] = alpha*xi + beta*y[i]
		}
	}
}

// Dot returns the inner product of x and y. Summation order is
// deterministic (left to right) when run single-threaded (Workers <=
// 1); with Workers > 1 the loop is split into contiguous chunks summed
// independently and combined at the end, so results may differ from
// the serial sum by O(n*epsilon) but not more (§5, §8).
func Dot(x, y []float64) float64 {
	n := len(x)
	w := numWorkers(n)
	if w <= 1 {
		var sum float64
		for i, xi := range x {
			sum += xi * y[i]
		}
		return sum
	}

	partial := make([]float64, w)
	chunk := (n + w - 1) / w
	var g errgroup.Group
	for k := 0; k < w; k++ {
		k := k
		lo := k * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			var sum float64
			for i := lo; i < hi; i++ {
				sum += x[i] * y[i]
			}
			partial[k] = sum
			return nil
		})
	}
	_ = g.Wait() // kernels never return an error; Wait only joins the fan-out.

	var total float64
	for _, p := range partial {
		total += p
	}
	return total
}

// Nrm2 returns the Euclidean (2-) norm of x.
func Nrm2(x []float64) float64 {
	return math.Sqrt(Dot(x, x))
}

// UseAllCores sets Workers to runtime.GOMAXPROCS(0), the default
// fan-out width when a caller wants one worker per available core
// rather than a fixed value - mirroring gonum's diff/fd package, which
// gates its own concurrent stencil evaluation behind
// runtime.GOMAXPROCS(0) when the caller opts into concurrency.
func UseAllCores() {
	Workers = runtime.GOMAXPROCS(0)
}
