// Package pteerrors has errors that carry a message meant for the person
// running the generator alongside the usual technical description.
package pteerrors

import (
	"errors"
	"fmt"
)

// userError is an error caused by something the user gave the generator,
// such as a parameter type that cannot be read from input or a row policy
// naming a parameter that does not exist. Its message is written to be shown
// as-is; Error() adds the wrapped cause, if any.
type userError struct {
	human string
	cause error
}

func (e *userError) Error() string {
	if e.cause == nil {
		return e.human
	}
	return e.human + ": " + e.cause.Error()
}

func (e *userError) Unwrap() error {
	return e.cause
}

// Userf returns an error whose user message is the formatted string.
func Userf(format string, a ...interface{}) error {
	return &userError{human: fmt.Sprintf(format, a...)}
}

// WrapUserf returns an error whose user message is the formatted string and
// which wraps cause, so errors.Is and errors.As still see it.
func WrapUserf(cause error, format string, a ...interface{}) error {
	return &userError{human: fmt.Sprintf(format, a...), cause: cause}
}

// Message gets the message to display to the user for err. The outermost user
// error in err's chain gives it; if there is none, it is err.Error().
func Message(err error) string {
	var ue *userError
	if errors.As(err, &ue) {
		return ue.human
	}
	return err.Error()
}
