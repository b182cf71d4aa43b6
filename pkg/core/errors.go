// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Every error returned by the annotation packages matches
// exactly one of these through errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrTypeConversion  = errors.New("type conversion error")
	ErrNotSerializable = errors.New("not serializable")
)

// MissingFieldError is returned when a marker or element is built without
// every field its variant declares.
type MissingFieldError struct {
	Kind    string
	Missing []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("all fields of %s should be provided, but [%s] are missing",
		e.Kind, strings.Join(e.Missing, ", "))
}

func (e *MissingFieldError) Unwrap() error { return ErrValidation }

// TypeMismatchError is returned when a declared field is given a marker of
// another variant.
type TypeMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("the class of given %q does not match definition (expected %s, got %s)",
		e.Field, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrValidation }

// DuplicateNameError is returned when a texture name is registered twice.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("there is already a texture named %q", e.Name)
}

func (e *DuplicateNameError) Unwrap() error { return ErrValidation }

// DuplicateIDError is returned when an element id is annotated twice in one
// session.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("there is already an element with id %q", e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrValidation }

// InvalidIDError is returned for ids outside [0-9A-Za-z_].
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("%q is not a valid ID", e.ID)
}

func (e *InvalidIDError) Unwrap() error { return ErrValidation }

// NotFoundError names what was looked up and where.
type NotFoundError struct {
	What string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.What, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Validationf builds a plain validation error.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
