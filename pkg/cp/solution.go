package cp

import "time"

// Status of a solve.
type Status int

const (
	// Optimal solution found
	Optimal Status = iota
	// Feasible solution found (may not be optimal)
	Feasible
	// Problem is infeasible
	Infeasible
	// Model is invalid
	Invalid
	// Unknown status
	Unknown
)

// IsSuccess reports whether the solve found a valid assignment.
func (status Status) IsSuccess() bool {
	return status == Optimal || status == Feasible
}

func (status Status) String() string {
	switch status {
	case Optimal:
		return "optimal"
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Solution is the immutable result of a Solve call. It is a value snapshot:
// mutating the model afterwards does not affect it.
type Solution struct {
	Status Status
	// ObjectiveValue is nil for satisfaction problems and for unsuccessful
	// solves.
	ObjectiveValue *int64
	// WallTime is a post-hoc measurement, not an enforced budget.
	WallTime time.Duration

	values map[IntVarID]int64
}

// Value returns the value assigned to the variable, or 0 for a handle the
// solution does not know about.
func (solution Solution) Value(id IntVarID) int64 {
	return solution.values[id]
}

// Values returns a copy of the full assignment.
func (solution Solution) Values() map[IntVarID]int64 {
	values := make(map[IntVarID]int64, len(solution.values))
	for id, value := range solution.values {
		values[id] = value
	}
	return values
}
