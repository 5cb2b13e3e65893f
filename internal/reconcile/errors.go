package reconcile

import "errors"

// ErrInsufficientInput is returned when a run lacks the inputs it cannot do
// without: at least one valid lead file and a sales file.
var ErrInsufficientInput = errors.New("insufficient input")

// InsufficientInputError carries the reason a run could not proceed.
type InsufficientInputError struct {
	Reason string
}

func (e *InsufficientInputError) Error() string {
	return ErrInsufficientInput.Error() + ": " + e.Reason
}

// Is matches ErrInsufficientInput.
func (e *InsufficientInputError) Is(target error) bool {
	return target == ErrInsufficientInput
}
