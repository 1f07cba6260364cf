// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a JSON value.
package cursor

import (
	"fmt"

	"github.com/creachadair/jstream/jval"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method.  This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path[T jval.Value](v jval.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		var zero T
		return zero, err
	}
	return jval.Expect[T](c.Value())
}

// A Cursor is a pointer that navigates into the structure of a jval.Value.
type Cursor struct {
	org jval.Value
	stk []jval.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin jval.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() jval.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() jval.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []jval.Value {
	return append([]jval.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
// It returns c to permit chaining.
func (c *Cursor) Reset() *Cursor { c.stk = c.stk[:0]; c.err = nil; return c }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays), or functions (see below).
// If the path is valid, the element reached is returned. If the path cannot be
// completely consumed, traversal stops and an error is recorded. Use Err to
// recover the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves the value of the object member with that name.
// A missing key is reported as a *jval.PathError wrapping jval.ErrNotFound.
//
// If a path element is an integer, the corresponding value must be an array or
// object, and the integer resolves to an index in the array or among the
// members of the object, in order.  Negative indices count backward from the
// end (-1 is last, -2 second last).  An out-of-bounds index is reported as a
// *jval.RangeError.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(jval.Value) (jval.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			o, ok := cur.(jval.Object)
			if !ok {
				return c.setErrorf("cannot traverse %v with %q", jval.KindOf(cur), t)
			}
			v, err := o.Lookup(t)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(v)

		case int:
			switch e := cur.(type) {
			case jval.Array:
				i, ok := fixArrayBound(e.Len(), t)
				if !ok {
					c.err = &jval.RangeError{Index: t, Len: e.Len()}
					return c
				}
				v, _ := e.At(i)
				cur = c.push(v)
			case jval.Object:
				i, ok := fixArrayBound(e.Len(), t)
				if !ok {
					c.err = &jval.RangeError{Index: t, Len: e.Len()}
					return c
				}
				cur = c.push(e.Members()[i].Value)
			default:
				return c.setErrorf("cannot traverse %v with %v", jval.KindOf(cur), elt)
			}

		case func(jval.Value) (jval.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			} else if next == nil {
				return c.setErrorf("path function returned a nil value")
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v jval.Value) jval.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
