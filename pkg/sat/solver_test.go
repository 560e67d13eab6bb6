package sat

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGophersat(t *testing.T) {
	solverExecution(t, NewGophersatSolver())
}

func TestGini(t *testing.T) {
	solverExecution(t, NewGiniSolver())
}

func TestKissat(t *testing.T) {
	if _, err := exec.LookPath(kissatPath); err != nil {
		t.Skipf("%v binary not installed", kissatPath)
	}
	solverExecution(t, NewKissatSolver())
}

func TestCadical(t *testing.T) {
	if _, err := exec.LookPath(cadicalPath); err != nil {
		t.Skipf("%v binary not installed", cadicalPath)
	}
	solverExecution(t, NewCadicalSolver())
}

func solverExecution(t *testing.T, solver SATSolver) {
	t.Run("Satisfiable instance", func(t *testing.T) {
		//** Arrange
		satInstance := SAT{
			Variables: 3,
			Clauses:   [][]int64{{1, 2}, {-1, 3}, {-2, -3}},
		}

		//** Act
		solution, err := solver.Solve(satInstance)

		//** Assert
		assert.Nil(t, err)
		assert.NotNil(t, solution)
		assert.Len(t, solution, 3)
		assert.True(t, AssertSATSolution(satInstance, solution))
	})

	t.Run("Unsatisfiable instance", func(t *testing.T) {
		//** Arrange
		satInstance := SAT{
			Variables: 1,
			Clauses:   [][]int64{{1}, {-1}},
		}

		//** Act
		solution, err := solver.Solve(satInstance)

		//** Assert
		assert.Nil(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Empty clause", func(t *testing.T) {
		//** Arrange
		satInstance := SAT{
			Variables: 2,
			Clauses:   [][]int64{{1, 2}, {}},
		}

		//** Act
		solution, err := solver.Solve(satInstance)

		//** Assert
		assert.Nil(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Unconstrained variables", func(t *testing.T) {
		//** Arrange
		satInstance := SAT{
			Variables: 5,
			Clauses:   [][]int64{{2}},
		}

		//** Act
		solution, err := solver.Solve(satInstance)

		//** Assert
		assert.Nil(t, err)
		assert.Len(t, solution, 5)
		assert.True(t, AssertSATSolution(satInstance, solution))
	})

	t.Run("Generated instances", func(t *testing.T) {
		for range 20 {
			//** Arrange
			satInstance := GenerateSATInstance(8, 12)

			//** Act
			solution, err := solver.Solve(satInstance)

			//** Assert
			assert.Nil(t, err)
			if solution != nil {
				assert.True(t, AssertSATSolution(satInstance, solution))
			}
		}
	})
}

func TestToDIMACS(t *testing.T) {
	satInstance := SAT{
		Variables: 3,
		Clauses:   [][]int64{{1, -2}, {3}},
	}

	assert.Equal(t, "p cnf 3 2\n1 -2 0\n3 0\n", satInstance.ToDIMACS())
}

func TestParseSolution(t *testing.T) {
	t.Run("Single value line", func(t *testing.T) {
		solution := parseSolution("s SATISFIABLE\nv 1 -2 3 0\n")
		assert.Equal(t, SATSolution{1, -2, 3}, solution)
	})

	t.Run("Split value lines", func(t *testing.T) {
		solution := parseSolution("s SATISFIABLE\nv 1 -2\nv -3 4 0\n")
		assert.Equal(t, SATSolution{1, -2, -3, 4}, solution)
	})

	t.Run("No value line", func(t *testing.T) {
		solution := parseSolution("s UNSATISFIABLE\n")
		assert.Empty(t, solution)
	})
}
