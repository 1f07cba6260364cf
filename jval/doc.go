// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package jval defines an immutable model for JSON values.
//
// A Value is one of the concrete types NullValue, Bool, String, Number,
// Object, or Array. Values are never modified in place: operations such as
// Object.Updated or Array.Removed return a new value and leave the original
// unchanged.
//
// # Construction
//
// Scalars are constructed directly or with helpers:
//
//	jval.String("hello")
//	jval.True
//	jval.Int(1000)
//	jval.ParseNumber("9876543210123456789")
//
// Containers are constructed with ObjectOf and ArrayOf, or assembled
// incrementally with an ObjectBuilder or ArrayBuilder:
//
//	obj := jval.ObjectOf(
//	   jval.Field("name", "x"),
//	   jval.Field("tags", jval.ArrayOf("a", "b")),
//	)
//
// # Numbers
//
// A Number stores an exact decimal value. Conversions to fixed-width integer
// types are exact: they report a *ConversionError if the value has a
// fractional part or does not fit the target type. Conversions to floating
// point types round to the nearest representable value.
//
// # Errors
//
// Accessors distinguish between a value of the wrong kind (*ExpectationError),
// a missing object key (ErrNotFound) and an array index out of range
// (*RangeError). Errors from nested accesses are wrapped in a *PathError
// identifying the key or index that failed.
//
// # Conversion
//
// A Registry maps Go types to codecs that convert between that type and a
// Value. The Default registry handles the built-in scalar types and the
// types of this package; use As and From to convert with it:
//
//	n, err := jval.As[int32](v)
//	v, err := jval.From(int64(25))
package jval
