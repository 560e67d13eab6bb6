package sat

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// SATSolution is a satisfying assignment: one signed DIMACS literal per
// variable, positive when the variable is true.
type SATSolution []int64

// SAT is a CNF formula. Clauses hold signed 1-based literals over Variables
// boolean variables; a negative literal stands for the negation.
type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// HasEmptyClause reports whether the formula contains an empty clause, making
// it trivially unsatisfiable.
func (s SAT) HasEmptyClause() bool {
	return lo.SomeBy(s.Clauses, func(clause []int64) bool { return len(clause) == 0 })
}
