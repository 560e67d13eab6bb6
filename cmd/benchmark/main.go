package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/convergehq/optimization/pkg/cp"
	"github.com/convergehq/optimization/pkg/sat"
)

var (
	solverNames = []string{"gophersat", "gini"}
	solvers     = map[string]func() sat.SATSolver{
		"gophersat": sat.NewGophersatSolver,
		"gini":      sat.NewGiniSolver,
	}
)

type modelSpec struct {
	name      string
	variables int
	domain    int64
}

// buildModel declares variables over [0, domain], couples every adjacent pair
// with x_i + x_{i+1} >= domain and minimizes a weighted sum.
func buildModel(spec modelSpec, solver sat.SATSolver) *cp.Model {
	model := cp.NewModel(solver)

	ids := make([]cp.IntVarID, 0, spec.variables)
	coeffs := make([]int64, 0, spec.variables)
	for i := range spec.variables {
		id, err := model.NewIntVar(0, spec.domain, fmt.Sprintf("x%d", i))
		if err != nil {
			log.Fatalf("cannot declare variable: %v", err)
		}
		ids = append(ids, id)
		coeffs = append(coeffs, int64(i%3+1))
	}

	for i := 0; i+1 < len(ids); i++ {
		if err := model.AddLinearGe([]cp.IntVarID{ids[i], ids[i+1]}, []int64{1, 1}, spec.domain); err != nil {
			log.Fatalf("cannot add constraint: %v", err)
		}
	}

	if err := model.Minimize(ids, coeffs); err != nil {
		log.Fatalf("cannot set objective: %v", err)
	}
	return model
}

func main() {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	if err := writer.Write([]string{"benchmark", "solver", "status", "objective", "milliseconds"}); err != nil {
		log.Fatalf("cannot write csv header: %v", err)
	}

	specs := []modelSpec{
		{name: "chain-small", variables: 4, domain: 6},
		{name: "chain-medium", variables: 4, domain: 8},
		{name: "chain-wide", variables: 2, domain: 99},
	}

	for _, spec := range specs {
		for _, name := range solverNames {
			model := buildModel(spec, solvers[name]())
			solution := model.Solve()

			objective := ""
			if solution.ObjectiveValue != nil {
				objective = fmt.Sprintf("%d", *solution.ObjectiveValue)
			}
			record := []string{spec.name, name, solution.Status.String(), objective, fmt.Sprintf("%d", solution.WallTime.Milliseconds())}
			if err := writer.Write(record); err != nil {
				log.Fatalf("cannot write csv record: %v", err)
			}
		}
	}

	// Raw CNF instances, outside the CP encoder
	for _, clauses := range []int{100, 400} {
		satInstance := sat.GenerateSATInstance(20, clauses)
		for _, name := range solverNames {
			start := time.Now()
			solution, err := solvers[name]().Solve(satInstance)
			elapsed := time.Since(start)
			if err != nil {
				log.Fatalf("cannot solve SAT instance: %v", err)
			}

			status := "satisfiable"
			if solution == nil {
				status = "unsatisfiable"
			}
			record := []string{fmt.Sprintf("cnf-%d", clauses), name, status, "", fmt.Sprintf("%d", elapsed.Milliseconds())}
			if err := writer.Write(record); err != nil {
				log.Fatalf("cannot write csv record: %v", err)
			}
		}
	}
}
