package sat

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

type giniSolver struct{}

// NewGiniSolver returns an in-process solver backed by gini.
func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (g *giniSolver) Solve(satInstance SAT) (SATSolution, error) {
	if satInstance.HasEmptyClause() {
		return nil, nil
	}

	engine := gini.NewV(int(satInstance.Variables))
	for _, clause := range satInstance.Clauses {
		for _, literal := range clause {
			engine.Add(z.Dimacs2Lit(int(literal)))
		}
		engine.Add(0)
	}

	switch engine.Solve() {
	case -1:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("gini solve was cancelled")
	}

	// Variables absent from every clause are unconstrained: report them false.
	maxVar := engine.MaxVar()
	solution := make(SATSolution, 0, satInstance.Variables)
	for variable := range satInstance.Variables {
		literal := int64(variable) + 1
		m := z.Dimacs2Lit(int(literal))
		if m.Var() > maxVar || !engine.Value(m) {
			literal = -literal
		}
		solution = append(solution, literal)
	}
	return solution, nil
}
