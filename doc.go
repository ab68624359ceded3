/*
Package fasp provides sparse matrix containers and the dense vector
primitives that the solvers in fasp/krylov are built on.

Matrices arising from discretized partial differential equations are
large and almost entirely zero-valued.  This package stores only the
non-zero structure, in one of five formats:

  - CSR (Compressed Sparse Row) - the general-purpose operational format.
  - COO (COOrdinate, aka triplet) - a construction/conversion way-point.
  - BSR (Block Compressed Row) - CSR with small dense blocks in place of scalars.
  - STR (STRuctured/banded) - a regular grid stencil stored as diagonal bands.
  - BLC (BLock Composite) - a 2-D grid of sub-matrix handles, for saddle-point systems.

All five implement gonum.org/v1/gonum/mat.Matrix so they interoperate
with the rest of the gonum ecosystem (dense conversion, norms, etc.)
the same way the upstream james-bowman/sparse containers do.

This package does not read matrices from files or build them from
command-line parameters; callers construct containers directly or via
a collaborating reader outside this module.
*/
package fasp
