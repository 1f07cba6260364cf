// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"iter"
	"slices"
)

// An Array is a sequence of values.
//
// The zero value is ready for use and represents an empty array.
type Array struct{ vals []Value }

// Kind satisfies the Value interface.
func (Array) Kind() Kind { return KindArray }

// JSON satisfies the Value interface.
func (a Array) JSON() string { return string(AppendJSON(nil, a)) }

// String returns the JSON text of a.
func (a Array) String() string { return a.JSON() }

// Equal satisfies the Value interface.
func (a Array) Equal(w Value) bool {
	b, ok := w.(Array)
	return ok && slices.EqualFunc(a.vals, b.vals, Value.Equal)
}

func (Array) isValue()     {}
func (Array) isStructure() {}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a.vals) }

// Values returns a slice of the elements of a.
func (a Array) Values() []Value { return slices.Clone(a.vals) }

// All is a range function over the elements of a and their indices.
func (a Array) All() iter.Seq2[int, Value] { return slices.All(a.vals) }

// At returns the element of a at index i, or a *RangeError if i is out of
// bounds.
func (a Array) At(i int) (Value, error) {
	if i < 0 || i >= len(a.vals) {
		return nil, &RangeError{Index: i, Len: len(a.vals)}
	}
	return a.vals[i], nil
}

// IsNull reports whether the element at index i exists and is null.
func (a Array) IsNull(i int) bool {
	v, err := a.At(i)
	return err == nil && v.Kind() == KindNull
}

// GetString returns the string value at index i.
func (a Array) GetString(i int) (string, error) {
	s, err := indexAs[String](a, i)
	return string(s), err
}

// GetBool returns the Boolean value at index i.
func (a Array) GetBool(i int) (bool, error) {
	b, err := indexAs[Bool](a, i)
	return bool(b), err
}

// GetNumber returns the numeric value at index i.
func (a Array) GetNumber(i int) (Number, error) { return indexAs[Number](a, i) }

// GetObject returns the object value at index i.
func (a Array) GetObject(i int) (Object, error) { return indexAs[Object](a, i) }

// GetArray returns the array value at index i.
func (a Array) GetArray(i int) (Array, error) { return indexAs[Array](a, i) }

func indexAs[T Value](a Array, i int) (T, error) {
	v, err := a.At(i)
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := Expect[T](v)
	if err != nil {
		return t, indexError(i, err)
	}
	return t, nil
}

// Updated returns a copy of a with the element at index i replaced by v.  It
// reports a *RangeError if i is out of bounds. Updated panics if v == nil.
func (a Array) Updated(i int, v Value) (Array, error) {
	if v == nil {
		panic("jval: nil array value")
	} else if i < 0 || i >= len(a.vals) {
		return a, &RangeError{Index: i, Len: len(a.vals)}
	}
	out := slices.Clone(a.vals)
	out[i] = v
	return Array{vals: out}, nil
}

// Removed returns a copy of a without the element at index i.  It reports a
// *RangeError if i is out of bounds.
func (a Array) Removed(i int) (Array, error) {
	if i < 0 || i >= len(a.vals) {
		return a, &RangeError{Index: i, Len: len(a.vals)}
	}
	return Array{vals: slices.Concat(a.vals[:i], a.vals[i+1:])}, nil
}

// Append returns a copy of a with vs added at the end.
// Append panics if any of vs is nil.
func (a Array) Append(vs ...Value) Array {
	checkValues(vs)
	return Array{vals: slices.Concat(a.vals, vs)}
}

// Prepend returns a copy of a with vs added at the beginning.
// Prepend panics if any of vs is nil.
func (a Array) Prepend(vs ...Value) Array {
	checkValues(vs)
	return Array{vals: slices.Concat(vs, a.vals)}
}

// Concat returns an array containing the elements of a followed by the
// elements of b.
func (a Array) Concat(b Array) Array { return Array{vals: slices.Concat(a.vals, b.vals)} }

// Slice returns the elements of a from index lo up to but not including hi.
// It reports a *RangeError if the bounds are invalid.
func (a Array) Slice(lo, hi int) (Array, error) {
	if lo < 0 || lo > len(a.vals) {
		return Array{}, &RangeError{Index: lo, Len: len(a.vals)}
	} else if hi < lo || hi > len(a.vals) {
		return Array{}, &RangeError{Index: hi, Len: len(a.vals)}
	}
	return Array{vals: slices.Clip(a.vals[lo:hi])}, nil
}

// Collect returns all the values of members named key in the subtree rooted
// at a. See Collect.
func (a Array) Collect(key string) []Value { return Collect(a, key) }

func checkValues(vs []Value) {
	for _, v := range vs {
		if v == nil {
			panic("jval: nil array value")
		}
	}
}
