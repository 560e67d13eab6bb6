package cp

import (
	"errors"
	"fmt"
)

// ErrMismatchedLengths is returned when a linear expression is declared with
// a different number of variables and coefficients.
var ErrMismatchedLengths = errors.New("variables and coefficients must have the same length")

// DomainError is returned when a variable is declared with lb > ub.
type DomainError struct {
	Name string
	Lb   int64
	Ub   int64
}

func (err DomainError) Error() string {
	return fmt.Sprintf("invalid domain [%d, %d] for variable %q: lower bound exceeds upper bound", err.Lb, err.Ub, err.Name)
}

// UnknownVariableError is returned when a handle does not index a variable of
// the model it is used with.
type UnknownVariableError struct {
	ID IntVarID
}

func (err UnknownVariableError) Error() string {
	return fmt.Sprintf("variable %d is not declared in this model", err.ID)
}
