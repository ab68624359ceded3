// Command fasp-bench runs one of the preconditioned Krylov solvers in
// this module against a synthetic test problem (an identity system or
// a 2-D Poisson grid) and reports the outcome through structured
// logging.
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fasp-go/fasp"
	"github.com/fasp-go/fasp/krylov"
	"github.com/fasp-go/fasp/precond"
	"github.com/fasp-go/fasp/solver"
)

func main() {
	var (
		problem     = flag.String("problem", "poisson", "synthetic problem: identity or poisson")
		gridSize    = flag.Int("grid", 32, "grid side length for the poisson problem")
		solverName  = flag.String("solver", "cg", "solver kind: cg, bicgstab, vbicgstab, minres, gmres, vgmres, vfgmres, gcr, gcg")
		precondFlag = flag.String("precond", "jacobi", "preconditioner: none or jacobi")
		tol         = flag.Float64("tol", 1e-8, "relative residual tolerance")
		maxIter     = flag.Int("max-iter", 1000, "iteration budget")
		restart     = flag.Int("restart", 30, "restart length for the GMRES family")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	kind, ok := parseSolverKind(*solverName)
	if !ok {
		log.WithField("solver", *solverName).Fatal("unrecognized solver kind")
	}

	var m *fasp.CSR
	var b []float64
	switch *problem {
	case "identity":
		m, b = identityProblem(*gridSize)
	case "poisson":
		m, b = poisson2DProblem(*gridSize)
	default:
		log.WithField("problem", *problem).Fatal("unrecognized problem kind")
	}

	x := make([]float64, len(b))

	precondType := solver.PrecondNone
	if *precondFlag == "jacobi" {
		precondType = solver.PrecondJacobi
	}

	params := solver.ItParam{
		SolverKind:  kind,
		PrecondType: precondType,
		StopType:    krylov.RelRes,
		PrintLevel:  solver.PrintMin,
		MaxIter:     *maxIter,
		Tol:         *tol,
		Restart:     *restart,
		RestartMin:  3,
		RestartMax:  *restart,
	}

	var pc *precond.Precond
	stats, err := solver.Solve(m, b, x, pc, params, log)
	if err != nil {
		log.WithError(err).Error("solve failed")
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"iterations": stats.Iterations,
		"residual":   stats.ResidualNorm,
		"elapsed":    stats.Elapsed,
	}).Info("done")
}

func parseSolverKind(name string) (solver.SolverKind, bool) {
	switch name {
	case "cg":
		return solver.CG, true
	case "bicgstab":
		return solver.BiCGStab, true
	case "vbicgstab":
		return solver.VBiCGStab, true
	case "minres":
		return solver.MinRes, true
	case "gmres":
		return solver.GMRES, true
	case "vgmres":
		return solver.VGMRES, true
	case "vfgmres":
		return solver.VFGMRES, true
	case "gcr":
		return solver.GCR, true
	case "gcg":
		return solver.GCG, true
	default:
		return 0, false
	}
}

func identityProblem(n int) (*fasp.CSR, []float64) {
	ia := make([]int, n+1)
	ja := make([]int, n)
	val := make([]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		ia[i] = i
		ja[i] = i
		val[i] = 1
		b[i] = 1
	}
	ia[n] = n
	return fasp.NewCSR(n, n, ia, ja, val), b
}

// poisson2DProblem builds the 5-point finite-difference Laplacian on a
// gridSize x gridSize grid with a constant unit right-hand side.
func poisson2DProblem(gridSize int) (*fasp.CSR, []float64) {
	n := gridSize * gridSize
	idx := func(i, j int) int { return i*gridSize + j }

	var ia, ja []int
	var val []float64
	ia = append(ia, 0)
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			if i > 0 {
				ja = append(ja, idx(i-1, j))
				val = append(val, -1)
			}
			if j > 0 {
				ja = append(ja, idx(i, j-1))
				val = append(val, -1)
			}
			ja = append(ja, idx(i, j))
			val = append(val, 4)
			if j < gridSize-1 {
				ja = append(ja, idx(i, j+1))
				val = append(val, -1)
			}
			if i < gridSize-1 {
				ja = append(ja, idx(i+1, j))
				val = append(val, -1)
			}
			ia = append(ia, len(ja))
		}
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	return fasp.NewCSR(n, n, ia, ja, val), b
}
