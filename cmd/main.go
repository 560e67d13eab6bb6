package main

import (
	"fmt"
	"log"

	"github.com/convergehq/optimization/pkg/cp"
	"github.com/convergehq/optimization/pkg/sat"
)

func main() {
	productionMix()
	scheduling()
}

// productionMix maximizes the profit of two products sharing assembly and
// machining capacity.
func productionMix() {
	model := cp.NewModel(sat.NewGophersatSolver())

	basic, err := model.NewIntVar(0, 10, "basic")
	if err != nil {
		log.Fatalf("cannot declare variable: %v", err)
	}
	premium, err := model.NewIntVar(0, 10, "premium")
	if err != nil {
		log.Fatalf("cannot declare variable: %v", err)
	}

	// Assembly: one hour per unit, 12 hours available
	if err := model.AddLinearLe([]cp.IntVarID{basic, premium}, []int64{1, 1}, 12); err != nil {
		log.Fatalf("cannot add constraint: %v", err)
	}
	// Machining: two hours per basic unit, one per premium, 16 hours available
	if err := model.AddLinearLe([]cp.IntVarID{basic, premium}, []int64{2, 1}, 16); err != nil {
		log.Fatalf("cannot add constraint: %v", err)
	}
	if err := model.Maximize([]cp.IntVarID{basic, premium}, []int64{3, 2}); err != nil {
		log.Fatalf("cannot set objective: %v", err)
	}

	solution := model.Solve()
	if !solution.Status.IsSuccess() {
		log.Fatalf("production mix: unexpected status %v", solution.Status)
	}

	fmt.Printf("Production mix: profit=%d basic=%d premium=%d (%v)\n",
		*solution.ObjectiveValue, solution.Value(basic), solution.Value(premium), solution.WallTime)
}

// scheduling assigns three jobs to distinct slots, minimizing the weighted
// completion time.
func scheduling() {
	model := cp.NewModel(sat.NewGophersatSolver())

	jobs := make([]cp.IntVarID, 0, 3)
	for i := range 3 {
		job, err := model.NewIntVar(1, 3, fmt.Sprintf("job%d", i))
		if err != nil {
			log.Fatalf("cannot declare variable: %v", err)
		}
		jobs = append(jobs, job)
	}

	if err := model.AddAllDifferent(jobs); err != nil {
		log.Fatalf("cannot add constraint: %v", err)
	}
	if err := model.Minimize(jobs, []int64{3, 2, 1}); err != nil {
		log.Fatalf("cannot set objective: %v", err)
	}

	solution := model.Solve()
	if !solution.Status.IsSuccess() {
		log.Fatalf("scheduling: unexpected status %v", solution.Status)
	}

	fmt.Printf("Scheduling: cost=%d slots=[%d %d %d] (%v)\n",
		*solution.ObjectiveValue, solution.Value(jobs[0]), solution.Value(jobs[1]), solution.Value(jobs[2]), solution.WallTime)
}
