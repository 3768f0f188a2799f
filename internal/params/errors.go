package params

import (
	"errors"
	"fmt"
)

// Configuration errors returned by Finalize.
var (
	ErrMissingField = errors.New("params: required field not set")
	ErrInvalidField = errors.New("params: invalid field value")
	ErrModelType    = errors.New("params: unsupported model type")
)

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidField, field, fmt.Sprintf(format, args...))
}
