// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"fmt"
	"math/big"

	"github.com/creachadair/jstream/internal/escape"
	"github.com/shopspring/decimal"
	"go4.org/mem"
)

// A Value is an arbitrary JSON value. The concrete type of a Value is one of
// NullValue, Bool, String, Number, Object, or Array.
type Value interface {
	// Kind reports the kind of the value.
	Kind() Kind

	// JSON returns the compact JSON encoding of the value.
	JSON() string

	// Equal reports whether the value is structurally equal to w.
	Equal(w Value) bool

	isValue()
}

// A Structure is a Value that contains other values: an Object or an Array.
type Structure interface {
	Value

	// Len reports the number of members or elements of the structure.
	Len() int

	isStructure()
}

// NullValue is the type of the JSON null value.
type NullValue struct{}

// Null is the JSON null value.
var Null NullValue

// Kind satisfies the Value interface.
func (NullValue) Kind() Kind { return KindNull }

// JSON satisfies the Value interface.
func (NullValue) JSON() string { return "null" }

// Equal satisfies the Value interface.
func (NullValue) Equal(w Value) bool { _, ok := w.(NullValue); return ok }

func (NullValue) isValue() {}

// A Bool is a Boolean constant, true or false.
type Bool bool

// The Boolean constants.
const (
	True  Bool = true
	False Bool = false
)

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return KindBool }

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Equal satisfies the Value interface.
func (b Bool) Equal(w Value) bool { c, ok := w.(Bool); return ok && b == c }

func (Bool) isValue() {}

// A String is a string value. Its contents are the decoded text, without
// quotation marks or escapes.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return KindString }

// JSON satisfies the Value interface.
func (s String) JSON() string { return string(escape.Quote(mem.S(string(s)))) }

// Equal satisfies the Value interface.
func (s String) Equal(w Value) bool { t, ok := w.(String); return ok && s == t }

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

func (String) isValue() {}

// A Member is a key-value pair, used to construct objects.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
// The value must be one of the types accepted by ToValue.
func Field(key string, value any) Member {
	return Member{Key: key, Value: ToValue(value)}
}

// ObjectOf constructs an object from the given members. If a key occurs more
// than once, the last occurrence wins. ObjectOf panics if any member has a
// nil value.
func ObjectOf(ms ...Member) Object {
	var b ObjectBuilder
	for _, m := range ms {
		b.Set(m.Key, m.Value)
	}
	o, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("jval.ObjectOf: %v", err))
	}
	return o
}

// ArrayOf constructs an array from the given values. Each value must be one
// of the types accepted by ToValue.
func ArrayOf[T any](vs ...T) Array {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = ToValue(v)
	}
	return Array{vals: out}
}

// ToValue converts a string, bool, integer, float, *big.Int, decimal.Decimal,
// nil, or Value into a Value. A nil input becomes Null. ToValue panics if v
// does not have one of those types, or if v is a non-finite float.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Null
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Uint(uint64(t))
	case uint8:
		return Uint(uint64(t))
	case uint16:
		return Uint(uint64(t))
	case uint32:
		return Uint(uint64(t))
	case uint64:
		return Uint(t)
	case float32:
		return mustNumber(Float(float64(t)))
	case float64:
		return mustNumber(Float(t))
	case *big.Int:
		return mustNumber(NumberFromBig(t))
	case decimal.Decimal:
		return NumberFromDecimal(t)
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}

func mustNumber(n Number, err error) Number {
	if err != nil {
		panic(err)
	}
	return n
}

// Expect reports v as a value of type T, or returns an *ExpectationError if v
// does not have that type.
func Expect[T Value](v Value) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	var zero T
	want := KindInvalid
	if any(zero) != nil {
		want = zero.Kind()
	}
	return zero, &ExpectationError{Want: want, Got: KindOf(v)}
}
