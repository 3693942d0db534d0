package wire

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrTruncated       = errors.New("truncated input")
	ErrUnknownField    = errors.New("unknown field")
	ErrWireType        = errors.New("unexpected wire type")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// FieldError names the field of Type that failed to decode. Nested messages
// produce nested FieldErrors, outermost first.
type FieldError struct {
	Type  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Type, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
