package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/convergehq/optimization/pkg/sat"
)

func TestBuildBaseFormulaMonotonicity(t *testing.T) {
	//** Arrange
	model := NewModel(sat.NewGophersatSolver())
	x, _ := model.NewIntVar(0, 10, "x")

	//** Act
	formula := model.buildBaseFormula()

	//** Assert
	assert.Equal(t, uint64(10), formula.Variables)
	assert.Len(t, formula.Clauses, 9)
	orderVars := model.vars[x].orderVars
	for i := range 9 {
		assert.Equal(t, []int64{-orderVars[i], orderVars[i+1]}, formula.Clauses[i])
	}
}

func TestEncodeLinearLeEnumerate(t *testing.T) {
	t.Run("Blocks exactly the violating combinations", func(t *testing.T) {
		//** Arrange
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(0, 1, "x")
		y, _ := model.NewIntVar(0, 1, "y")
		assert.Nil(t, model.AddLinearLe([]IntVarID{x, y}, []int64{1, 1}, 1))

		//** Act
		formula := model.buildBaseFormula()

		//** Assert: spans of 1 need no monotonicity clauses, so only the
		// single blocking clause for (1, 1) remains
		xVar, yVar := model.vars[x].orderVars[0], model.vars[y].orderVars[0]
		assert.Equal(t, [][]int64{{xVar, yVar}}, formula.Clauses)
	})

	t.Run("Fully fixed violating combination yields an empty clause", func(t *testing.T) {
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(5, 5, "x")
		assert.Nil(t, model.AddLinearLe([]IntVarID{x}, []int64{1}, 4))

		formula := model.buildBaseFormula()

		assert.True(t, formula.HasEmptyClause())
	})

	t.Run("Empty linear expression with negative rhs is contradictory", func(t *testing.T) {
		model := NewModel(sat.NewGophersatSolver())
		assert.Nil(t, model.AddLinearLe(nil, nil, -1))

		formula := model.buildBaseFormula()

		assert.True(t, formula.HasEmptyClause())
	})
}

func TestEncodeLinearLeBounds(t *testing.T) {
	t.Run("Upper bound inside the domain becomes a unit clause", func(t *testing.T) {
		//** Arrange: span above the enumeration limit forces bound propagation
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(0, 20000, "x")
		assert.Nil(t, model.AddLinearLe([]IntVarID{x}, []int64{1}, 99))

		//** Act
		formula := model.buildBaseFormula()

		//** Assert: last clause asserts x <= 99
		last := formula.Clauses[len(formula.Clauses)-1]
		assert.Equal(t, []int64{model.vars[x].orderVars[99]}, last)
	})

	t.Run("Lower bound inside the domain becomes a negated unit clause", func(t *testing.T) {
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(0, 20000, "x")
		assert.Nil(t, model.AddLinearGe([]IntVarID{x}, []int64{1}, 42))

		formula := model.buildBaseFormula()

		// not (x <= 41)
		last := formula.Clauses[len(formula.Clauses)-1]
		assert.Equal(t, []int64{-model.vars[x].orderVars[41]}, last)
	})

	t.Run("Bound below the domain is contradictory", func(t *testing.T) {
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(10, 20010, "x")
		assert.Nil(t, model.AddLinearLe([]IntVarID{x}, []int64{1}, 5))

		formula := model.buildBaseFormula()

		assert.True(t, formula.HasEmptyClause())
	})

	t.Run("Vacuous bound asserts nothing", func(t *testing.T) {
		// -x <= 5 holds for the whole domain
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(0, 20000, "x")
		assert.Nil(t, model.AddLinearLe([]IntVarID{x}, []int64{-1}, 5))

		formula := model.buildBaseFormula()

		// Only the monotonicity clauses remain
		assert.Len(t, formula.Clauses, 19999)
	})
}

func TestFloorCeilDiv(t *testing.T) {
	assert.Equal(t, int64(3), floorDiv(7, 2))
	assert.Equal(t, int64(-4), floorDiv(-7, 2))
	assert.Equal(t, int64(-4), floorDiv(7, -2))
	assert.Equal(t, int64(3), floorDiv(-7, -2))

	assert.Equal(t, int64(4), ceilDiv(7, 2))
	assert.Equal(t, int64(-3), ceilDiv(-7, 2))
	assert.Equal(t, int64(-3), ceilDiv(7, -2))
	assert.Equal(t, int64(4), ceilDiv(-7, -2))

	assert.Equal(t, int64(5), floorDiv(10, 2))
	assert.Equal(t, int64(5), ceilDiv(10, 2))
	assert.Equal(t, int64(5), ceilDiv(-5, -1))
}

func TestEncodeAllDifferent(t *testing.T) {
	t.Run("Pairwise clauses per shared value", func(t *testing.T) {
		//** Arrange
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(1, 2, "x")
		y, _ := model.NewIntVar(1, 2, "y")
		assert.Nil(t, model.AddAllDifferent([]IntVarID{x, y}))

		//** Act
		formula := model.buildBaseFormula()

		//** Assert: one clause for the shared value 1, one for 2
		xVar, yVar := model.vars[x].orderVars[0], model.vars[y].orderVars[0]
		assert.Equal(t, [][]int64{
			{-xVar, -yVar}, // not both <= 1, i.e. not both equal to 1
			{xVar, yVar},   // not both > 1, i.e. not both equal to 2
		}, formula.Clauses)
	})

	t.Run("Pigeonhole infeasibility is caught by the matching precheck", func(t *testing.T) {
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(1, 2, "x")
		y, _ := model.NewIntVar(1, 2, "y")
		z, _ := model.NewIntVar(1, 2, "z")
		assert.Nil(t, model.AddAllDifferent([]IntVarID{x, y, z}))

		formula := model.buildBaseFormula()

		assert.True(t, formula.HasEmptyClause())
	})

	t.Run("Two variables fixed to the same value are contradictory", func(t *testing.T) {
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(3, 3, "x")
		y, _ := model.NewIntVar(3, 3, "y")
		assert.Nil(t, model.AddAllDifferent([]IntVarID{x, y}))

		formula := model.buildBaseFormula()

		assert.True(t, formula.HasEmptyClause())
	})

	t.Run("Disjoint domains need no clauses", func(t *testing.T) {
		model := NewModel(sat.NewGophersatSolver())
		x, _ := model.NewIntVar(1, 2, "x")
		y, _ := model.NewIntVar(5, 6, "y")
		assert.Nil(t, model.AddAllDifferent([]IntVarID{x, y}))

		formula := model.buildBaseFormula()

		// Only the monotonicity clauses of the two spans remain
		assert.Len(t, formula.Clauses, 0)
	})
}

func TestEncodeLinearGeDelegation(t *testing.T) {
	// x >= 3 on [0,5] must block 0, 1 and 2
	model := NewModel(sat.NewGophersatSolver())
	x, _ := model.NewIntVar(0, 5, "x")
	assert.Nil(t, model.AddLinearGe([]IntVarID{x}, []int64{1}, 3))

	formula := model.buildBaseFormula()

	orderVars := model.vars[x].orderVars
	blocking := formula.Clauses[len(formula.Clauses)-3:]
	assert.Equal(t, [][]int64{
		{-orderVars[0]},              // not x <= 0
		{orderVars[0], -orderVars[1]}, // x != 1
		{orderVars[1], -orderVars[2]}, // x != 2
	}, blocking)
}
