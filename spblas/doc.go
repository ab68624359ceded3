/*
Package spblas provides the dense BLAS-1 vector primitives (component
A) and the per-format sparse mat-vec kernels (component D) that the
Krylov cores in fasp/krylov are built on.

The dense primitives (Copy, Set, Scal, Axpy, Axpby, Dot, Nrm2) operate
in place on plain []float64 slices and do not allocate, except that Dot
(and so Nrm2) allocates one partial sum per worker when Workers > 1,
matching the
teacher package's own blas subpackage (Dusmv, Dusaxpy, Dusdot) this
package is descended from, generalized from a single sparse/dense pair
(CSR times dense vector) to all five container formats plus a
matrix-free trampoline-friendly calling convention: every kernel in
this package has the shape func(alpha float64, a *fasp.X, x []float64,
beta float64, y []float64), computing y <- alpha*A*x + beta*y, with an
XMul(a, x, y) shorthand (CSRMul, BSRMul, ...) for the common alpha=1,
beta=0 case. MulVec has the same full shape and dispatches on the
concrete format of a fasp.Matrix.

See http://www.netlib.org/blas/blast-forum/chapter3.pdf for background
on the BLAS sparse extensions this package's naming follows loosely.
*/
package spblas
