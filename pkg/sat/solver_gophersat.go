package sat

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process CDCL solver backed by gophersat.
// It is the default backend: no external binary is required.
func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (gophersat *gophersatSolver) Solve(satInstance SAT) (SATSolution, error) {
	if satInstance.HasEmptyClause() {
		return nil, nil
	}

	clauses := lo.Map(satInstance.Clauses, func(clause []int64, _ int) []int {
		return lo.Map(clause, func(literal int64, _ int) int { return int(literal) })
	})

	s := solver.New(solver.ParseSlice(clauses))
	switch s.Solve() {
	case solver.Unsat:
		return nil, nil
	case solver.Sat:
	default:
		return nil, fmt.Errorf("gophersat returned an indeterminate status")
	}

	// Variables absent from every clause are unconstrained: report them false.
	model := s.Model()
	solution := make(SATSolution, 0, satInstance.Variables)
	for variable := range satInstance.Variables {
		literal := int64(variable) + 1
		if int(variable) >= len(model) || !model[variable] {
			literal = -literal
		}
		solution = append(solution, literal)
	}
	return solution, nil
}
