package main

import (
	"flag"
	"fmt"
	"log"
	"slices"

	"github.com/samber/lo"

	"github.com/convergehq/optimization/pkg/cp"
	"github.com/convergehq/optimization/pkg/sat"
)

var (
	validSolvers = []string{"gophersat", "gini", "kissat", "cadical"}
	solvers      = map[string]func() sat.SATSolver{
		"gophersat": sat.NewGophersatSolver,
		"gini":      sat.NewGiniSolver,
		"kissat":    sat.NewKissatSolver,
		"cadical":   sat.NewCadicalSolver,
	}
)

func main() {
	inputFlag := flag.String("input", "", "path to a JSON problem file")
	solverFlag := flag.String("solver", "gophersat", fmt.Sprintf("SAT backend, one of %v", validSolvers))
	flag.Parse()

	if *inputFlag == "" {
		log.Fatal("missing required flag: -input")
	}

	factory, ok := solvers[*solverFlag]
	if !ok {
		log.Fatalf("invalid solver %q: must be one of %v", *solverFlag, validSolvers)
	}

	input, err := cp.InputFromJson(*inputFlag)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	model, handles, err := cp.ModelFromInput(input, factory())
	if err != nil {
		log.Fatalf("cannot build model: %v", err)
	}

	solution := model.Solve()

	fmt.Printf("Status: %v\n", solution.Status)
	fmt.Printf("Wall time: %v\n", solution.WallTime)
	if solution.ObjectiveValue != nil {
		fmt.Printf("Objective: %v\n", *solution.ObjectiveValue)
	}
	if !solution.Status.IsSuccess() {
		return
	}

	names := lo.Keys(handles)
	slices.Sort(names)
	for _, name := range names {
		fmt.Printf("%v = %v\n", name, solution.Value(handles[name]))
	}
}
