// Package errors provides structured error handling for the forms module.
//
// Validation failures are never reported through this package: they are data,
// carried as forms.ValidationErrors maps on the control that produced them.
// The errors here are structural and configuration failures that are fatal to
// the call that triggered them, such as supplying a value map that does not
// line up with a composite's registered children.
//
// Every structured error unwraps to one of the package sentinels, so callers
// can match categories with errors.Is and still read the contextual fields
// from the concrete type.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingControl indicates a supplied value entry that names no
	// registered child control.
	ErrMissingControl = errors.New("forms: cannot find control for value entry")
	// ErrMissingValue indicates a registered child control with no
	// corresponding entry in a strictly supplied value.
	ErrMissingValue = errors.New("forms: must supply a value for every registered control")
	// ErrNoControls indicates a strict value operation against a composite
	// with zero registered children.
	ErrNoControls = errors.New("forms: composite has no registered controls")
	// ErrInvalidValue indicates a value whose shape does not match the
	// composite it was supplied to.
	ErrInvalidValue = errors.New("forms: value shape does not match composite")
)

// MissingControlError reports a value entry with no corresponding child.
type MissingControlError struct {
	// Key is the offending child name (keyed composite) or index (indexed
	// composite).
	Key any
}

func (e *MissingControlError) Error() string {
	return fmt.Sprintf("forms: cannot find control with key %v", e.Key)
}

func (e *MissingControlError) Unwrap() error {
	return ErrMissingControl
}

// MissingValueError reports a registered child for which a strict value
// operation supplied no entry.
type MissingValueError struct {
	// Key is the child name or index that was left without a value.
	Key any
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("forms: must supply a value for control with key %v", e.Key)
}

func (e *MissingValueError) Unwrap() error {
	return ErrMissingValue
}

// NoControlsError reports a strict value operation against an empty composite.
type NoControlsError struct {
	// Kind is the composite kind, "group" or "array".
	Kind string
}

func (e *NoControlsError) Error() string {
	return fmt.Sprintf("forms: there are no controls registered with this %s", e.Kind)
}

func (e *NoControlsError) Unwrap() error {
	return ErrNoControls
}

// InvalidValueError reports a value whose dynamic type cannot address the
// children of the composite it was supplied to.
type InvalidValueError struct {
	// Expected is the value shape the composite accepts.
	Expected string
	// Got is the value that was supplied.
	Got any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("forms: expected %s, got %T", e.Expected, e.Got)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}
