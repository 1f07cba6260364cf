// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is reported when an object does not contain a requested key.
	ErrNotFound = errors.New("not found")

	// ErrNullValue is reported when a typed read finds a JSON null where a
	// non-optional value was required.
	ErrNullValue = errors.New("value is null")

	// ErrNoCodec is reported when a registry has no codec for a type.
	ErrNoCodec = errors.New("no codec registered")

	// ErrNilValue is reported when a nil Value is offered to a builder.
	ErrNilValue = errors.New("nil value")
)

// ExpectationError is reported when a value has a different kind than the
// one requested.
type ExpectationError struct {
	Want Kind // the kind requested
	Got  Kind // the kind of the actual value
}

// Error satisfies the error interface.
func (e *ExpectationError) Error() string {
	return fmt.Sprintf("expected %v, got %v", e.Want, e.Got)
}

// RangeError is reported when an array index is out of bounds.
type RangeError struct {
	Index int // the requested index
	Len   int // the length of the array
}

// Error satisfies the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("index %d out of range (0..%d)", e.Index, e.Len)
}

// ConversionError is reported when a number cannot be converted exactly to
// the requested type.
type ConversionError struct {
	Value  string // the text of the number
	Type   string // the name of the target type
	Reason string // why the conversion failed
}

// Error satisfies the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s: %s", e.Value, e.Type, e.Reason)
}

// PathError annotates an error with the object key or array index at which
// it occurred.
type PathError struct {
	Step any // a string (object key) or an int (array index)
	Err  error
}

// Error satisfies the error interface.
func (e *PathError) Error() string {
	if i, ok := e.Step.(int); ok {
		return fmt.Sprintf("index %d: %v", i, e.Err)
	}
	return fmt.Sprintf("key %q: %v", e.Step, e.Err)
}

// Unwrap supports error wrapping.
func (e *PathError) Unwrap() error { return e.Err }

func keyError(key string, err error) error { return &PathError{Step: key, Err: err} }

func indexError(i int, err error) error { return &PathError{Step: i, Err: err} }
