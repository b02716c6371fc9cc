package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrStepIncomplete   = errors.New("step incomplete")
	ErrSubmitting       = errors.New("submission in progress")
	ErrComplete         = errors.New("application already submitted")
	ErrSubmissionFailed = errors.New("something went wrong, please try again")
	ErrUnknownField     = errors.New("unknown field")
)

// StepError explains why the current step cannot be left yet.
type StepError struct {
	Field string
	Hint  string
}

func (e *StepError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s: %s", e.Field, ErrStepIncomplete)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Hint)
}

func (e *StepError) Unwrap() error { return ErrStepIncomplete }
