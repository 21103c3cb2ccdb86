// Package validate turns a sequence of defects into an error value.
// Defects are plain data; a structure is valid exactly when it has none.
package validate

import (
	"errors"
	"iter"
	"strings"
)

// ErrInvalid is matched by every Errors value via errors.Is.
var ErrInvalid = errors.New("validation failed")

// Validator is implemented by structures that can enumerate their defects.
type Validator[T error] interface {
	IterInvalid() iter.Seq[T]
}

// Errors is a non-empty list of defects.
type Errors[T error] []T

// Error joins the defect messages with semicolons.
func (errs Errors[T]) Error() string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return ErrInvalid.Error() + ": " + strings.Join(msgs, "; ")
}

// Is reports whether target is ErrInvalid.
func (errs Errors[T]) Is(target error) bool {
	return target == ErrInvalid
}

// Unwrap returns the individual defects.
func (errs Errors[T]) Unwrap() []error {
	out := make([]error, len(errs))
	for i, err := range errs {
		out[i] = err
	}
	return out
}

// Collect gathers all defects from seq. It returns nil when there are none
// and an Errors value holding every defect otherwise.
func Collect[T error](seq iter.Seq[T]) error {
	var errs Errors[T]
	for err := range seq {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate collects the defects of v.
func Validate[T error](v Validator[T]) error {
	return Collect(v.IterInvalid())
}
