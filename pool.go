package fasp

import "sync"

// Workspace layout as a single contiguous block sliced into named
// sub-arrays is an optimization, not a contract (§9 design notes); this
// package instead pools plain []float64/[]int slices through sync.Pool,
// which fasp/krylov uses for its work vectors and Krylov basis (the
// Hessenberg buffers and the format conversions in this package
// allocate with make). Any equivalent allocation
// strategy is acceptable provided release is safe on every exit path.
const (
	pooledFloatSize = 256
	pooledIntSize   = 256
)

var (
	floatPool = sync.Pool{
		New: func() interface{} {
			return make([]float64, pooledFloatSize)
		},
	}
	intPool = sync.Pool{
		New: func() interface{} {
			return make([]int, pooledIntSize)
		},
	}
)

// GetFloats returns a []float64 of length l, reused from the package
// pool when possible. If clear is true, the returned slice is zeroed.
func GetFloats(l int, clear bool) []float64 {
	w := floatPool.Get().([]float64)
	return useFloats(w, l, clear)
}

// PutFloats returns a []float64 obtained from GetFloats to the pool.
// PutFloats must not be called while references to the slice's
// backing array are still held elsewhere.
func PutFloats(w []float64) {
	if cap(w) >= pooledFloatSize {
		floatPool.Put(w[:cap(w)]) //nolint:staticcheck // reuse intentional
	}
}

// GetInts returns a []int of length l, reused from the package pool
// when possible. If clear is true, the returned slice is zeroed.
func GetInts(l int, clear bool) []int {
	w := intPool.Get().([]int)
	return useInts(w, l, clear)
}

// PutInts returns a []int obtained from GetInts to the pool.
func PutInts(w []int) {
	if cap(w) >= pooledIntSize {
		intPool.Put(w[:cap(w)]) //nolint:staticcheck // reuse intentional
	}
}

func useFloats(w []float64, l int, clear bool) []float64 {
	if cap(w) < l {
		w = make([]float64, l)
	} else {
		w = w[:l]
	}
	if clear {
		for i := range w {
			w[i] = 0
		}
	}
	return w
}

func useInts(w []int, l int, clear bool) []int {
	if cap(w) < l {
		w = make([]int, l)
	} else {
		w = w[:l]
	}
	if clear {
		for i := range w {
			w[i] = 0
		}
	}
	return w
}
