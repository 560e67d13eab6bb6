package cp

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/convergehq/optimization/pkg/sat"
)

// ProblemInput mirrors the JSON problem-file layout consumed by the CLI.
type ProblemInput struct {
	Variables   []VariableInput
	Constraints []ConstraintInput
	Objective   *ObjectiveInput
}

type VariableInput struct {
	Name string
	Lb   int64
	Ub   int64
}

type ConstraintInput struct {
	Kind   string // "le", "ge", "eq" or "alldifferent"
	Vars   []string
	Coeffs []int64
	Rhs    int64
}

type ObjectiveInput struct {
	Sense  string // "minimize" or "maximize"
	Vars   []string
	Coeffs []int64
}

func InputFromJson(file string) (ProblemInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ProblemInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ProblemInput{}, err
	}

	var input ProblemInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return ProblemInput{}, err
	}

	return input, nil
}

// ModelFromInput builds a model from a parsed problem file and returns the
// handles keyed by variable name.
func ModelFromInput(input ProblemInput, solver sat.SATSolver) (*Model, map[string]IntVarID, error) {
	model := NewModel(solver)

	handles := make(map[string]IntVarID, len(input.Variables))
	for _, variable := range input.Variables {
		if _, ok := handles[variable.Name]; ok {
			return nil, nil, fmt.Errorf("duplicate variable %q", variable.Name)
		}
		id, err := model.NewIntVar(variable.Lb, variable.Ub, variable.Name)
		if err != nil {
			return nil, nil, err
		}
		handles[variable.Name] = id
	}

	resolve := func(names []string) ([]IntVarID, error) {
		ids := make([]IntVarID, 0, len(names))
		for _, name := range names {
			id, ok := handles[name]
			if !ok {
				return nil, fmt.Errorf("unknown variable %q", name)
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	for _, c := range input.Constraints {
		ids, err := resolve(c.Vars)
		if err != nil {
			return nil, nil, err
		}

		switch c.Kind {
		case "le":
			err = model.AddLinearLe(ids, c.Coeffs, c.Rhs)
		case "ge":
			err = model.AddLinearGe(ids, c.Coeffs, c.Rhs)
		case "eq":
			err = model.AddLinearEq(ids, c.Coeffs, c.Rhs)
		case "alldifferent":
			err = model.AddAllDifferent(ids)
		default:
			err = fmt.Errorf("unknown constraint kind %q", c.Kind)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	if input.Objective != nil {
		ids, err := resolve(input.Objective.Vars)
		if err != nil {
			return nil, nil, err
		}

		switch input.Objective.Sense {
		case "minimize":
			err = model.Minimize(ids, input.Objective.Coeffs)
		case "maximize":
			err = model.Maximize(ids, input.Objective.Coeffs)
		default:
			err = fmt.Errorf("unknown objective sense %q", input.Objective.Sense)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	return model, handles, nil
}
