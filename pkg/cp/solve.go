package cp

import (
	"time"

	"github.com/convergehq/optimization/pkg/sat"
)

// Solve compiles the model into CNF and runs the configured backend. The
// model itself is never mutated: every call, and every iteration of the
// optimization loop, builds a fresh formula.
func (model *Model) Solve() Solution {
	start := time.Now()

	if model.objective != nil {
		return model.solveOptimization(*model.objective, start)
	}

	formula := model.buildBaseFormula()
	return model.solveSatisfaction(formula, start)
}

func (model *Model) solveSatisfaction(formula sat.SAT, start time.Time) Solution {
	assignment, err := model.solver.Solve(formula)
	if err != nil {
		return Solution{Status: Unknown, values: map[IntVarID]int64{}, WallTime: time.Since(start)}
	} else if assignment == nil {
		return Solution{Status: Infeasible, values: map[IntVarID]int64{}, WallTime: time.Since(start)}
	}

	// Without a ranking criterion any feasible assignment is vacuously optimal
	return Solution{
		Status:   Optimal,
		values:   model.extractValues(assignment),
		WallTime: time.Since(start),
	}
}

// solveOptimization binary-searches the objective value. Each iteration
// re-encodes the whole base formula plus a bound forcing the objective to be
// at least as good as the midpoint, so no solver state survives between
// bounds.
func (model *Model) solveOptimization(obj objective, start time.Time) Solution {
	lower, upper := model.objectiveBounds(obj)

	var bestValues map[IntVarID]int64
	var bestObjective int64

	for lower <= upper {
		var mid int64
		if obj.minimize {
			mid = lower + (upper-lower)/2
		} else {
			mid = upper - (upper-lower)/2
		}

		formula := model.buildBaseFormula()
		model.encodeObjectiveBound(&formula, obj, mid)

		assignment, err := model.solver.Solve(formula)
		if err != nil {
			break
		} else if assignment == nil {
			if obj.minimize {
				lower = mid + 1
			} else {
				upper = mid - 1
			}
			continue
		}

		values := model.extractValues(assignment)
		actual := objectiveValue(values, obj)
		bestValues, bestObjective = values, actual

		// Require strictly better than what was just found
		if obj.minimize {
			upper = actual - 1
		} else {
			lower = actual + 1
		}
	}

	if bestValues == nil {
		return Solution{Status: Infeasible, values: map[IntVarID]int64{}, WallTime: time.Since(start)}
	}

	objectiveCopy := bestObjective
	return Solution{
		Status:         Optimal,
		ObjectiveValue: &objectiveCopy,
		values:         bestValues,
		WallTime:       time.Since(start),
	}
}

// objectiveBounds sums, per term, the coefficient-sign-appropriate extremal
// contribution of the variable's domain.
func (model *Model) objectiveBounds(obj objective) (int64, int64) {
	var lower, upper int64
	for i, id := range obj.vars {
		coeff := obj.coeffs[i]
		variable := model.vars[id]
		if coeff >= 0 {
			lower += coeff * variable.lb
			upper += coeff * variable.ub
		} else {
			lower += coeff * variable.ub
			upper += coeff * variable.lb
		}
	}
	return lower, upper
}

func objectiveValue(values map[IntVarID]int64, obj objective) int64 {
	var total int64
	for i, id := range obj.vars {
		total += obj.coeffs[i] * values[id]
	}
	return total
}

func (model *Model) encodeObjectiveBound(formula *sat.SAT, obj objective, bound int64) {
	if obj.minimize {
		model.encodeLinearLe(formula, obj.vars, obj.coeffs, bound)
	} else {
		model.encodeLinearLe(formula, obj.vars, negated(obj.coeffs), -bound)
	}
}

// extractValues decodes the order encoding: a variable's value is lb plus the
// index of the first true threshold, or ub when no threshold is true.
func (model *Model) extractValues(assignment sat.SATSolution) map[IntVarID]int64 {
	truth := make(map[int64]bool, len(assignment))
	for _, literal := range assignment {
		if literal > 0 {
			truth[literal] = true
		}
	}

	values := make(map[IntVarID]int64, len(model.vars))
	for i, variable := range model.vars {
		value := variable.ub
		for k, orderVar := range variable.orderVars {
			if truth[orderVar] {
				value = variable.lb + int64(k)
				break
			}
		}
		values[IntVarID(i)] = value
	}
	return values
}
