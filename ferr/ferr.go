/*
Package ferr defines the error-kind taxonomy (§7) returned by the
Krylov cores in fasp/krylov and the dispatcher in fasp/solver.

Errors are returned, not thrown (§7): a *Error value satisfies the
standard error interface while also exposing which of the eight kinds
occurred, so a caller can both treat it as an opaque error (idiomatic
Go, works with %w/errors.Is/errors.As) and switch on Kind() when it
needs to, e.g. to decide whether ErrMaxIter is retriable with a larger
budget while ErrBreakdown is not.
*/
package ferr

import "fmt"

// Kind enumerates the eight error kinds from §7.
type Kind int

const (
	// ErrAlloc: workspace request cannot be satisfied even after
	// shrinking restart (GMRES family).
	ErrAlloc Kind = iota
	// ErrMaxIter: convergence test unsatisfied at max_iter.
	ErrMaxIter
	// ErrBreakdown: Krylov-specific numerical breakdown (e.g.
	// BiCGStab denominator near zero).
	ErrBreakdown
	// ErrStagnation: residual fails to decrease over a configured
	// window.
	ErrStagnation
	// ErrDiverge: residual grows beyond a bounded multiple of the
	// initial residual.
	ErrDiverge
	// ErrSolverType: the dispatcher does not recognise the solver
	// kind.
	ErrSolverType
	// ErrInputPar: an invalid parameter was supplied (tol <= 0,
	// negative restart, dimension mismatch).
	ErrInputPar
	// ErrFormat: a kernel discovered an invalid matrix structure at
	// entry.
	ErrFormat
)

func (k Kind) String() string {
	switch k {
	case ErrAlloc:
		return "ErrAlloc"
	case ErrMaxIter:
		return "ErrMaxIter"
	case ErrBreakdown:
		return "ErrBreakdown"
	case ErrStagnation:
		return "ErrStagnation"
	case ErrDiverge:
		return "ErrDiverge"
	case ErrSolverType:
		return "ErrSolverType"
	case ErrInputPar:
		return "ErrInputPar"
	case ErrFormat:
		return "ErrFormat"
	default:
		return "ErrUnknown"
	}
}

// Error is the concrete error type returned by this module's solvers.
// It carries a Kind and a human-readable message describing the
// specific circumstance (e.g. which denominator went to zero).
type Error struct {
	Kind Kind
	Msg  string
}

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fasp: %s: %s", e.Kind, e.Msg)
}

// Is reports whether target is an *Error of the same Kind, enabling
// errors.Is(err, ferr.New(ferr.ErrMaxIter, "")) style comparisons
// against a sentinel built purely to carry a Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error,
// reporting ok=false otherwise.
func KindOf(err error) (k Kind, ok bool) {
	if e, isErr := err.(*Error); isErr {
		return e.Kind, true
	}
	if u, isUnwrapper := err.(interface{ Unwrap() error }); isUnwrapper {
		return KindOf(u.Unwrap())
	}
	var zero Kind
	return zero, false
}
