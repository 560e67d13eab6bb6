package sat

import (
	"log"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parseSolution extracts the assignment from the "v" lines of a DIMACS
// solver's output. The trailing 0 terminator is dropped.
func parseSolution(solverOutput string) SATSolution {
	values := lo.Map(
		lo.Reduce(
			lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
				return len(line) > 0 && line[0] == 'v'
			}),
			func(values []string, line string, _ int) []string {
				return append(values, strings.Fields(line[1:])...)
			},
			[]string{},
		),
		func(valueStr string, _ int) int64 {
			value, err := strconv.ParseInt(valueStr, 10, 64)
			if err != nil {
				log.Panicf("invalid literal in solver output: %v", err)
			}
			return value
		},
	)

	if len(values) == 0 {
		return SATSolution{}
	}
	return values[:len(values)-1]
}
