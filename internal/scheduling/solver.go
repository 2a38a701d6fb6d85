package scheduling

import (
	"time"

	"github.com/crillab/gophersat/solver"
)

// SolveStatus is the outcome of one C6 invocation.
type SolveStatus int

const (
	StatusSat SolveStatus = iota
	StatusUnsat
	StatusTimeout
)

// solve runs a CDCL solver over cnf with a hard wall-clock timeout. Per the
// concurrency contract, one solver instance is created per call and never
// shared across requests; on timeout the partial assignment (if any) is
// discarded rather than returned.
func solve(cnf *CNF, timeout time.Duration) (SolveStatus, []bool) {
	constrs := make([]solver.PBConstr, 0, len(cnf.Clauses))
	for _, clause := range cnf.Clauses {
		constrs = append(constrs, solver.PropClause(clause...))
	}

	type result struct {
		status SolveStatus
		model  []bool
	}
	resultCh := make(chan result, 1)

	go func() {
		prob := solver.ParsePBConstrs(constrs)
		s := solver.New(prob)
		status := s.Solve()
		if status != solver.Sat {
			resultCh <- result{status: StatusUnsat}
			return
		}
		resultCh <- result{status: StatusSat, model: s.Model()}
	}()

	select {
	case r := <-resultCh:
		return r.status, r.model
	case <-time.After(timeout):
		return StatusTimeout, nil
	}
}

// modelTrue reports whether variable v (1-indexed, per the encoder's
// numbering) is assigned true in model, which gophersat returns indexed by
// variable number minus one.
func modelTrue(model []bool, v int) bool {
	idx := v - 1
	if idx < 0 || idx >= len(model) {
		return false
	}
	return model[idx]
}
