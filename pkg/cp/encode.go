package cp

import (
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"

	"github.com/convergehq/optimization/pkg/sat"
)

// enumerationLimit is the largest Cartesian domain product for which a linear
// constraint is encoded by enumerating and blocking every violating
// combination. Above it the encoder falls back to bound propagation. The
// value is a tunable heuristic, not a correctness boundary: both strategies
// are sound for any domain size.
const enumerationLimit = 10000

// buildBaseFormula emits the monotonicity clauses of every variable's order
// encoding followed by the clauses of every declared constraint.
func (model *Model) buildBaseFormula() sat.SAT {
	formula := sat.SAT{
		Variables: uint64(model.nextVar - 1),
		Clauses:   [][]int64{},
	}

	// value <= k implies value <= k+1
	for _, variable := range model.vars {
		for i := 0; i+1 < len(variable.orderVars); i++ {
			formula.Clauses = append(formula.Clauses, []int64{-variable.orderVars[i], variable.orderVars[i+1]})
		}
	}

	for _, c := range model.constraints {
		model.encodeConstraint(&formula, c)
	}

	return formula
}

func (model *Model) encodeConstraint(formula *sat.SAT, c constraint) {
	switch c.kind {
	case linearLe:
		model.encodeLinearLe(formula, c.vars, c.coeffs, c.rhs)
	case linearGe:
		// sum >= rhs is -sum <= -rhs
		model.encodeLinearLe(formula, c.vars, negated(c.coeffs), -c.rhs)
	case linearEq:
		model.encodeLinearLe(formula, c.vars, c.coeffs, c.rhs)
		model.encodeLinearLe(formula, c.vars, negated(c.coeffs), -c.rhs)
	case allDifferent:
		model.encodeAllDifferent(formula, c.vars)
	}
}

func negated(coeffs []int64) []int64 {
	return lo.Map(coeffs, func(coeff int64, _ int) int64 { return -coeff })
}

func (model *Model) encodeLinearLe(formula *sat.SAT, vars []IntVarID, coeffs []int64, rhs int64) {
	combinations := uint64(1)
	for _, id := range vars {
		variable := model.vars[id]
		combinations *= uint64(variable.ub - variable.lb + 1)
		if combinations > enumerationLimit {
			break
		}
	}

	if combinations <= enumerationLimit {
		model.encodeLinearLeEnumerate(formula, vars, coeffs, rhs)
	} else {
		model.encodeLinearLeBounds(formula, vars, coeffs, rhs)
	}
}

// encodeLinearLeEnumerate walks every combination of the variables' values in
// mixed-radix order and blocks each one whose weighted sum exceeds rhs.
func (model *Model) encodeLinearLeEnumerate(formula *sat.SAT, vars []IntVarID, coeffs []int64, rhs int64) {
	domains := lo.Map(vars, func(id IntVarID, _ int) intVar { return model.vars[id] })

	values := lo.Map(domains, func(variable intVar, _ int) int64 { return variable.lb })

	for {
		var sum int64
		for i, value := range values {
			sum += value * coeffs[i]
		}

		if sum > rhs {
			// For a variable fixed at value v the escape literals are
			// "value <= v-1" and "not (value <= v)". When no variable has an
			// escape literal the clause stays empty and the formula becomes
			// unsatisfiable.
			clause := []int64{}
			for i, value := range values {
				variable := domains[i]
				if value > variable.lb {
					clause = append(clause, variable.orderVars[value-variable.lb-1])
				}
				if value < variable.ub {
					clause = append(clause, -variable.orderVars[value-variable.lb])
				}
			}
			formula.Clauses = append(formula.Clauses, clause)
		}

		// Advance to the next combination
		i := len(values)
		for {
			if i == 0 {
				return
			}
			i--
			values[i]++
			if values[i] <= domains[i].ub {
				break
			}
			values[i] = domains[i].lb
		}
	}
}

// encodeLinearLeBounds derives, per variable, the bound implied by rhs minus
// the extremal contributions of the other variables, and asserts it as a unit
// clause. Weaker than enumeration (violating combinations are not forbidden
// jointly) but sound and tractable for large domains.
func (model *Model) encodeLinearLeBounds(formula *sat.SAT, vars []IntVarID, coeffs []int64, rhs int64) {
	for i, id := range vars {
		coeff := coeffs[i]
		if coeff == 0 {
			continue
		}
		variable := model.vars[id]

		var otherMin int64
		for j, otherID := range vars {
			if i == j {
				continue
			}
			other := model.vars[otherID]
			if coeffs[j] >= 0 {
				otherMin += coeffs[j] * other.lb
			} else {
				otherMin += coeffs[j] * other.ub
			}
		}

		bound := rhs - otherMin

		if coeff > 0 {
			maxValue := floorDiv(bound, coeff)
			switch {
			case maxValue < variable.lb:
				formula.Clauses = append(formula.Clauses, []int64{})
			case maxValue < variable.ub:
				formula.Clauses = append(formula.Clauses, []int64{variable.orderVars[maxValue-variable.lb]})
			}
		} else {
			minValue := ceilDiv(bound, coeff)
			switch {
			case minValue > variable.ub:
				formula.Clauses = append(formula.Clauses, []int64{})
			case minValue > variable.lb:
				formula.Clauses = append(formula.Clauses, []int64{-variable.orderVars[minValue-variable.lb-1]})
			}
		}
	}
}

// floorDiv and ceilDiv round a quotient toward negative and positive
// infinity respectively, for any sign of divisor. Go's / truncates toward
// zero, which is the wrong direction for half of the sign combinations.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}

// encodeAllDifferent forbids, for every candidate value, every pair of
// variables both taking it. Quadratic in (variable, shared-value) incidences.
func (model *Model) encodeAllDifferent(formula *sat.SAT, vars []IntVarID) {
	domains := lo.Map(vars, func(id IntVarID, _ int) intVar { return model.vars[id] })

	// Union of candidate values across all domains
	allValues := []int64{}
	for _, variable := range domains {
		for value := variable.lb; value <= variable.ub; value++ {
			if !slices.Contains(allValues, value) {
				allValues = append(allValues, value)
			}
		}
	}

	// A variable-to-value matching that leaves some variable unmatched proves
	// the constraint unsatisfiable without expanding any pairs.
	if !allDifferentFeasible(domains, allValues) {
		formula.Clauses = append(formula.Clauses, []int64{})
		return
	}

	for _, value := range allValues {
		type incidence struct {
			variable intVar
			idx      int64 // threshold index of value within the domain
		}

		withValue := []incidence{}
		for _, variable := range domains {
			if value >= variable.lb && value <= variable.ub {
				withValue = append(withValue, incidence{variable: variable, idx: value - variable.lb})
			}
		}

		for i := 0; i < len(withValue); i++ {
			for j := i + 1; j < len(withValue); j++ {
				// (x_i != value) or (x_j != value), each side expressed
				// through the threshold pair bounding the value
				clause := []int64{}
				for _, side := range []incidence{withValue[i], withValue[j]} {
					if side.idx > 0 {
						clause = append(clause, side.variable.orderVars[side.idx-1])
					}
					if side.idx < int64(len(side.variable.orderVars)) {
						clause = append(clause, -side.variable.orderVars[side.idx])
					}
				}
				if len(clause) > 0 {
					formula.Clauses = append(formula.Clauses, clause)
				}
			}
		}
	}
}

// allDifferentFeasible checks for a matching that pairs every variable with a
// distinct value of its domain.
func allDifferentFeasible(domains []intVar, allValues []int64) bool {
	variables := lo.Map(lo.Range(len(domains)), func(i int, _ int) any { return i })
	values := lo.Map(allValues, func(value int64, _ int) any { return value })

	neighbours := func(variable, value any) (bool, error) {
		domain := domains[variable.(int)]
		candidate := value.(int64)
		return candidate >= domain.lb && candidate <= domain.ub, nil
	}

	graph, err := bipartitegraph.NewBipartiteGraph(variables, values, neighbours)
	if err != nil {
		// Fall through to the pairwise encoding
		return true
	}

	return len(graph.LargestMatching()) >= len(domains)
}
