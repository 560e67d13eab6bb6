// Package cp is a constraint-programming core over bounded integer variables.
// Models are compiled into CNF through order encoding and decided by a
// sat.SATSolver backend; optimization is a binary search over the objective
// value, re-encoding and re-solving per iteration.
package cp

import (
	"slices"

	"github.com/convergehq/optimization/pkg/sat"
)

// IntVarID is an opaque, copyable handle to an integer variable of a Model.
type IntVarID int

// intVar is an integer variable under order encoding: orderVars[i] is the
// 1-based SAT variable standing for "value <= lb + i". There are ub - lb such
// variables; monotonicity across them is enforced by clauses, not by type.
type intVar struct {
	name      string
	lb        int64
	ub        int64
	orderVars []int64
}

type constraintKind int

const (
	linearLe constraintKind = iota
	linearGe
	linearEq
	allDifferent
)

// constraint is a tagged variant: coeffs and rhs are meaningful for the
// linear kinds only.
type constraint struct {
	kind   constraintKind
	vars   []IntVarID
	coeffs []int64
	rhs    int64
}

type objective struct {
	vars     []IntVarID
	coeffs   []int64
	minimize bool
}

// Model accumulates integer variables, constraints and an optional linear
// objective, and compiles them into SAT on Solve. A model is mutated only
// before solving and owns its SAT-variable allocation counter, so independent
// models never share state.
type Model struct {
	solver      sat.SATSolver
	vars        []intVar
	constraints []constraint
	objective   *objective
	nextVar     int64 // next free 1-based DIMACS variable, append-only
}

func NewModel(solver sat.SATSolver) *Model {
	return &Model{
		solver:  solver,
		nextVar: 1,
	}
}

func (model *Model) allocVar() int64 {
	variable := model.nextVar
	model.nextVar++
	return variable
}

// NewIntVar declares an integer variable with inclusive domain [lb, ub].
func (model *Model) NewIntVar(lb, ub int64, name string) (IntVarID, error) {
	if lb > ub {
		return 0, DomainError{Name: name, Lb: lb, Ub: ub}
	}

	orderVars := make([]int64, 0, ub-lb)
	for range ub - lb {
		orderVars = append(orderVars, model.allocVar())
	}

	id := IntVarID(len(model.vars))
	model.vars = append(model.vars, intVar{
		name:      name,
		lb:        lb,
		ub:        ub,
		orderVars: orderVars,
	})
	return id, nil
}

// NewBoolVar declares an integer variable with domain [0, 1].
func (model *Model) NewBoolVar(name string) IntVarID {
	id, _ := model.NewIntVar(0, 1, name)
	return id
}

// AddLinearLe adds the constraint sum(coeffs[i] * vars[i]) <= rhs.
func (model *Model) AddLinearLe(vars []IntVarID, coeffs []int64, rhs int64) error {
	return model.addLinear(linearLe, vars, coeffs, rhs)
}

// AddLinearGe adds the constraint sum(coeffs[i] * vars[i]) >= rhs.
func (model *Model) AddLinearGe(vars []IntVarID, coeffs []int64, rhs int64) error {
	return model.addLinear(linearGe, vars, coeffs, rhs)
}

// AddLinearEq adds the constraint sum(coeffs[i] * vars[i]) == rhs.
func (model *Model) AddLinearEq(vars []IntVarID, coeffs []int64, rhs int64) error {
	return model.addLinear(linearEq, vars, coeffs, rhs)
}

func (model *Model) addLinear(kind constraintKind, vars []IntVarID, coeffs []int64, rhs int64) error {
	if err := model.checkLinearTerms(vars, coeffs); err != nil {
		return err
	}
	model.constraints = append(model.constraints, constraint{
		kind:   kind,
		vars:   slices.Clone(vars),
		coeffs: slices.Clone(coeffs),
		rhs:    rhs,
	})
	return nil
}

// AddAllDifferent requires the given variables to take pairwise-distinct
// values.
func (model *Model) AddAllDifferent(vars []IntVarID) error {
	if err := model.checkVars(vars); err != nil {
		return err
	}
	model.constraints = append(model.constraints, constraint{
		kind: allDifferent,
		vars: slices.Clone(vars),
	})
	return nil
}

// Minimize sets the objective to minimize sum(coeffs[i] * vars[i]), replacing
// any previous objective.
func (model *Model) Minimize(vars []IntVarID, coeffs []int64) error {
	return model.setObjective(vars, coeffs, true)
}

// Maximize sets the objective to maximize sum(coeffs[i] * vars[i]), replacing
// any previous objective.
func (model *Model) Maximize(vars []IntVarID, coeffs []int64) error {
	return model.setObjective(vars, coeffs, false)
}

func (model *Model) setObjective(vars []IntVarID, coeffs []int64, minimize bool) error {
	if err := model.checkLinearTerms(vars, coeffs); err != nil {
		return err
	}
	model.objective = &objective{
		vars:     slices.Clone(vars),
		coeffs:   slices.Clone(coeffs),
		minimize: minimize,
	}
	return nil
}

func (model *Model) checkLinearTerms(vars []IntVarID, coeffs []int64) error {
	if len(vars) != len(coeffs) {
		return ErrMismatchedLengths
	}
	return model.checkVars(vars)
}

func (model *Model) checkVars(vars []IntVarID) error {
	for _, id := range vars {
		if id < 0 || int(id) >= len(model.vars) {
			return UnknownVariableError{ID: id}
		}
	}
	return nil
}
