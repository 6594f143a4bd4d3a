package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Kind string
	Key  string
}

func (e NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("no %s found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ValidationError wraps the field errors reported for an invalid model.
type ValidationError struct {
	Err error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Err)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
