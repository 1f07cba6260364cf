// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"fmt"
	"maps"
	"math/big"
	"reflect"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// A Codec converts between values of type T and JSON values.
type Codec[T any] struct {
	// Read converts a JSON value to a T.
	Read func(Value) (T, error)

	// Write converts a T to a JSON value.
	Write func(T) (Value, error)

	// If Nullable is true, Read is called for JSON null values. Otherwise,
	// reading a null as type T reports ErrNullValue.
	Nullable bool
}

// A Registry is a collection of codecs indexed by type.
// A Registry is not safe for concurrent use while codecs are being added.
type Registry struct {
	codecs map[reflect.Type]any // reflect.Type to Codec[T]
}

// Default is the registry used by As, From, and the other package helpers.
// It is populated with the codecs described by NewRegistry.
var Default = NewRegistry()

// NewRegistry constructs a registry with codecs for string, bool, all the
// built-in integer and floating-point types, *big.Int, decimal.Decimal, and
// the value types of this package.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[reflect.Type]any)}

	Register(r, Codec[Value]{
		Read: func(v Value) (Value, error) { return v, nil },
		Write: func(v Value) (Value, error) {
			if v == nil {
				return nil, ErrNilValue
			}
			return v, nil
		},
		Nullable: true,
	})
	Register(r, Codec[NullValue]{Read: Expect[NullValue], Write: identity[NullValue], Nullable: true})
	registerValue[Bool](r)
	registerValue[String](r)
	registerValue[Number](r)
	registerValue[Object](r)
	registerValue[Array](r)
	Register(r, Codec[Structure]{
		Read: Expect[Structure],
		Write: func(s Structure) (Value, error) {
			if s == nil {
				return nil, ErrNilValue
			}
			return s, nil
		},
	})

	Register(r, Codec[string]{
		Read:  func(v Value) (string, error) { s, err := Expect[String](v); return string(s), err },
		Write: func(s string) (Value, error) { return String(s), nil },
	})
	Register(r, Codec[bool]{
		Read:  func(v Value) (bool, error) { b, err := Expect[Bool](v); return bool(b), err },
		Write: func(b bool) (Value, error) { return Bool(b), nil },
	})

	registerInt[int](r)
	registerInt[int8](r)
	registerInt[int16](r)
	registerInt[int32](r)
	registerInt[int64](r)
	registerInt[uint](r)
	registerInt[uint8](r)
	registerInt[uint16](r)
	registerInt[uint32](r)
	registerInt[uint64](r)

	Register(r, Codec[float64]{
		Read:  readNumber(Number.Float64),
		Write: func(f float64) (Value, error) { return Float(f) },
	})
	Register(r, Codec[float32]{
		Read:  readNumber(Number.Float32),
		Write: func(f float32) (Value, error) { return Float(float64(f)) },
	})
	Register(r, Codec[*big.Int]{
		Read: func(v Value) (*big.Int, error) {
			n, err := Expect[Number](v)
			if err != nil {
				return nil, err
			}
			return n.BigInt()
		},
		Write: func(z *big.Int) (Value, error) { return NumberFromBig(z) },
	})
	Register(r, Codec[decimal.Decimal]{
		Read:  readNumber(Number.Decimal),
		Write: func(d decimal.Decimal) (Value, error) { return NumberFromDecimal(d), nil },
	})
	return r
}

func identity[T Value](v T) (Value, error) { return v, nil }

func registerValue[T Value](r *Registry) {
	Register(r, Codec[T]{Read: Expect[T], Write: identity[T]})
}

func registerInt[T constraints.Integer](r *Registry) {
	Register(r, Codec[T]{
		Read: func(v Value) (T, error) {
			n, err := Expect[Number](v)
			if err != nil {
				return 0, err
			}
			return exactInt[T](n)
		},
		Write: func(z T) (Value, error) {
			if isSigned[T]() {
				return Int(int64(z)), nil
			}
			return Uint(uint64(z)), nil
		},
	})
}

func readNumber[T any](f func(Number) T) func(Value) (T, error) {
	return func(v Value) (T, error) {
		n, err := Expect[Number](v)
		if err != nil {
			var zero T
			return zero, err
		}
		return f(n), nil
	}
}

// Register adds c to r as the codec for type T, replacing any previous codec
// for that type.
func Register[T any](r *Registry, c Codec[T]) { r.codecs[reflect.TypeFor[T]()] = c }

// Lookup reports the codec for type T in r, if one exists.
func Lookup[T any](r *Registry) (Codec[T], bool) {
	c, ok := r.codecs[reflect.TypeFor[T]()]
	if !ok {
		return Codec[T]{}, false
	}
	return c.(Codec[T]), true
}

func mustLookup[T any](r *Registry) (Codec[T], error) {
	c, ok := Lookup[T](r)
	if !ok {
		return c, fmt.Errorf("%w for %v", ErrNoCodec, reflect.TypeFor[T]())
	}
	return c, nil
}

// Decode converts v to type T using the codec for T in r.
func Decode[T any](r *Registry, v Value) (T, error) {
	c, err := mustLookup[T](r)
	if err != nil {
		var zero T
		return zero, err
	}
	if v == nil || (v.Kind() == KindNull && !c.Nullable) {
		var zero T
		return zero, ErrNullValue
	}
	return c.Read(v)
}

// Encode converts x to a value using the codec for T in r.
func Encode[T any](r *Registry, x T) (Value, error) {
	c, err := mustLookup[T](r)
	if err != nil {
		return nil, err
	}
	return c.Write(x)
}

// As converts v to type T using the Default registry.
func As[T any](v Value) (T, error) { return Decode[T](Default, v) }

// From converts x to a value using the Default registry.
func From[T any](x T) (Value, error) { return Encode(Default, x) }

// GetAs converts the value of the given key of o to type T using the Default
// registry. Errors are reported as a *PathError naming the key.
func GetAs[T any](o Object, key string) (T, error) {
	v, err := o.Lookup(key)
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := As[T](v)
	if err != nil {
		return t, keyError(key, err)
	}
	return t, nil
}

// IndexAs converts the element at index i of a to type T using the Default
// registry. Errors other than an invalid index are reported as a *PathError
// naming the index.
func IndexAs[T any](a Array, i int) (T, error) {
	v, err := a.At(i)
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := As[T](v)
	if err != nil {
		return t, indexError(i, err)
	}
	return t, nil
}

// Optional converts the value of the given key of o to type T using the
// Default registry. If the key is absent or its value is null, Optional
// returns the zero value of T and false without error.
func Optional[T any](o Object, key string) (T, bool, error) {
	v, ok := o.Get(key)
	if !ok || v.Kind() == KindNull {
		var zero T
		return zero, false, nil
	}
	t, err := As[T](v)
	if err != nil {
		return t, false, keyError(key, err)
	}
	return t, true, nil
}

// SliceOf converts v, which must be an array, to a slice of T using the
// Default registry.
func SliceOf[T any](v Value) ([]T, error) {
	a, err := Expect[Array](v)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(a.vals))
	for i := range a.vals {
		out[i], err = IndexAs[T](a, i)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MapOf converts v, which must be an object, to a map of T using the Default
// registry.
func MapOf[T any](v Value) (map[string]T, error) {
	o, err := Expect[Object](v)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(o.keys))
	for _, key := range o.keys {
		t, err := GetAs[T](o, key)
		if err != nil {
			return nil, err
		}
		out[key] = t
	}
	return out, nil
}

// ArrayFrom converts a slice of T to an array using the Default registry.
func ArrayFrom[T any](xs []T) (Array, error) {
	var b ArrayBuilder
	for i, x := range xs {
		v, err := From(x)
		if err != nil {
			return Array{}, indexError(i, err)
		}
		b.Add(v)
	}
	return b.Build()
}

// ObjectFrom converts a map of T to an object using the Default registry.
// The members of the object are ordered by key.
func ObjectFrom[T any](m map[string]T) (Object, error) {
	var b ObjectBuilder
	for _, key := range slices.Sorted(maps.Keys(m)) {
		v, err := From(m[key])
		if err != nil {
			return Object{}, keyError(key, err)
		}
		b.Set(key, v)
	}
	return b.Build()
}
