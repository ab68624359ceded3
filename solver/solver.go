/*
Package solver provides the single dispatch entry point (§4.H) that
binds a fasp.Matrix, a right-hand side, an initial guess, an optional
preconditioner, and a set of parameters to one of fasp/krylov's nine
iterative cores.

This is the only library package in this module that imports logrus
(cmd/fasp-bench, a command, imports it too) - the
cores in fasp/krylov never log, so they stay embeddable in a server
without fighting another component's log configuration. The dispatcher
itself only logs a single structured summary line, and only when
PrintLevel requests it.
*/
package solver

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/ferr"
	"github.com/fasp-go/fasp/krylov"
	"github.com/fasp-go/fasp/matfree"
	"github.com/fasp-go/fasp/precond"
)

// SolverKind selects which fasp/krylov core Solve dispatches to.
type SolverKind int

const (
	CG SolverKind = iota
	BiCGStab
	VBiCGStab
	MinRes
	GMRES
	VGMRES
	VFGMRES
	GCR
	GCG
)

func (k SolverKind) String() string {
	switch k {
	case CG:
		return "CG"
	case BiCGStab:
		return "BiCGStab"
	case VBiCGStab:
		return "VBiCGStab"
	case MinRes:
		return "MinRes"
	case GMRES:
		return "GMRES"
	case VGMRES:
		return "VGMRES"
	case VFGMRES:
		return "VFGMRES"
	case GCR:
		return "GCR"
	case GCG:
		return "GCG"
	default:
		return "unknown"
	}
}

// PrintLevel controls how much the dispatcher logs on exit (§4.H.4).
type PrintLevel int

const (
	PrintNone PrintLevel = iota
	PrintMin
	PrintSome
	PrintMore
)

// PrecondType is a hint to Solve about which reference preconditioner
// to build when the caller passes no *precond.Precond of its own.
// Callers needing anything beyond Jacobi (ILU, AMG, Schwarz) build
// their own precond.Precond and pass it directly - those remain
// external collaborators (§6), not something this dispatcher
// constructs.
type PrecondType int

const (
	PrecondNone PrecondType = iota
	PrecondJacobi
)

// ItParam collects every recognized solver option (§6): which core to
// run, the stopping test, the iteration budget, the GMRES-family
// restart length, and how much the dispatcher logs on exit.
// SmallReal/BigReal are exposed read-only for callers that want to
// compare their own thresholds against the floor this module uses
// internally.
type ItParam struct {
	SolverKind  SolverKind
	PrecondType PrecondType
	StopType    krylov.StopType
	PrintLevel  PrintLevel
	MaxIter     int
	MinIter     int
	Tol         float64
	Restart     int
	RestartMin  int
	RestartMax  int
}

// SmallReal is the read-only tolerance floor from §6 (SMALLREAL).
const SmallReal = krylov.SmallReal

// BigReal is the read-only upper sentinel from §6 (BIGREAL).
const BigReal = krylov.BigReal

var cores = map[SolverKind]krylov.Core{
	CG:        krylov.CG,
	BiCGStab:  krylov.BiCGStab,
	VBiCGStab: krylov.VBiCGStab,
	MinRes:    krylov.MinRes,
	GMRES:     krylov.GMRES,
	VGMRES:    krylov.VGMRES,
	VFGMRES:   krylov.VFGMRES,
	GCR:       krylov.GCR,
	GCG:       krylov.GCG,
}

// Solve is the single entry point (§4.H): binds m into a matfree.MxvFree,
// builds a default preconditioner from PrecondType if pc is nil,
// dispatches to the chosen core, and on exit logs a one-line summary
// through log when params.PrintLevel >= PrintMin. log may be nil, in
// which case logging is skipped regardless of PrintLevel.
func Solve(m fasp.Matrix, b, x []float64, pc *precond.Precond, params ItParam, log *logrus.Logger) (krylov.Stats, error) {
	if len(b) != len(x) {
		return krylov.Stats{}, ferr.New(ferr.ErrInputPar, "b has length %d but x has length %d", len(b), len(x))
	}
	nrow, ncol := m.Dims()
	if nrow != ncol {
		return krylov.Stats{}, ferr.New(ferr.ErrInputPar, "Solve requires a square matrix, got %dx%d", nrow, ncol)
	}
	if nrow != len(b) {
		return krylov.Stats{}, ferr.New(ferr.ErrInputPar, "matrix dimension %d does not match right-hand side length %d", nrow, len(b))
	}

	core, ok := cores[params.SolverKind]
	if !ok {
		return krylov.Stats{}, ferr.New(ferr.ErrSolverType, "unrecognized solver kind %v", params.SolverKind)
	}

	precondition := resolvePrecond(m, pc, params.PrecondType)

	a := matfree.BindAuto(m)
	kp := krylov.Params{
		Stop:       params.StopType,
		Tol:        params.Tol,
		MaxIter:    params.MaxIter,
		MinIter:    params.MinIter,
		Restart:    params.Restart,
		RestartMax: params.RestartMax,
		RestartMin: params.RestartMin,
	}

	start := time.Now()
	stats, err := core(a, b, x, precondition, kp)
	stats.Elapsed = time.Since(start)

	logSummary(log, params, stats, err)
	return stats, err
}

func resolvePrecond(m fasp.Matrix, pc *precond.Precond, kind PrecondType) precond.Precond {
	if pc != nil {
		return *pc
	}
	switch kind {
	case PrecondJacobi:
		if csr, ok := m.(*fasp.CSR); ok {
			return precond.Jacobi(csr)
		}
	}
	return precond.Identity()
}

func logSummary(log *logrus.Logger, params ItParam, stats krylov.Stats, err error) {
	if log == nil || params.PrintLevel < PrintMin {
		return
	}
	fields := logrus.Fields{
		"solver":     params.SolverKind.String(),
		"iterations": stats.Iterations,
		"residual":   stats.ResidualNorm,
		"elapsed":    stats.Elapsed.String(),
	}
	if err != nil {
		if kind, ok := ferr.KindOf(err); ok {
			fields["error"] = kind.String()
		} else {
			fields["error"] = err.Error()
		}
		log.WithFields(fields).Warn("solve did not converge")
		return
	}
	log.WithFields(fields).Info("solve converged")
}
