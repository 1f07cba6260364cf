// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"iter"
	"maps"
	"slices"
)

// An Object is an ordered collection of key-value members with unique keys.
// Members are ordered by the most recent write of each key.
//
// The zero value is ready for use and represents an empty object.
// Objects are equal if they have the same keys mapped to equal values,
// regardless of order.
type Object struct {
	keys []string
	vals map[string]Value
}

// Kind satisfies the Value interface.
func (Object) Kind() Kind { return KindObject }

// JSON satisfies the Value interface.
func (o Object) JSON() string { return string(AppendJSON(nil, o)) }

// String returns the JSON text of o.
func (o Object) String() string { return o.JSON() }

// Equal satisfies the Value interface.
func (o Object) Equal(w Value) bool {
	p, ok := w.(Object)
	if !ok || len(o.keys) != len(p.keys) {
		return false
	}
	for key, v := range o.vals {
		pv, ok := p.vals[key]
		if !ok || !v.Equal(pv) {
			return false
		}
	}
	return true
}

func (Object) isValue()     {}
func (Object) isStructure() {}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o.keys) }

// Keys returns a slice of the keys of o, in order.
func (o Object) Keys() []string { return slices.Clone(o.keys) }

// Members returns a slice of the members of o, in order.
func (o Object) Members() []Member {
	out := make([]Member, len(o.keys))
	for i, key := range o.keys {
		out[i] = Member{Key: key, Value: o.vals[key]}
	}
	return out
}

// All is a range function over the members of o, in order.
func (o Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range o.keys {
			if !yield(key, o.vals[key]) {
				return
			}
		}
	}
}

// Has reports whether o has a member with the given key.
func (o Object) Has(key string) bool { _, ok := o.vals[key]; return ok }

// Get returns the value of the member of o with the given key, and reports
// whether it was found.
func (o Object) Get(key string) (Value, bool) { v, ok := o.vals[key]; return v, ok }

// Lookup returns the value of the member of o with the given key. If there is
// no such member, it returns a *PathError wrapping ErrNotFound.
func (o Object) Lookup(key string) (Value, error) {
	if v, ok := o.vals[key]; ok {
		return v, nil
	}
	return nil, keyError(key, ErrNotFound)
}

// IsNull reports whether o has a member with the given key whose value is
// null.
func (o Object) IsNull(key string) bool { return KindOf(o.vals[key]) == KindNull }

// GetString returns the string value of the given key.
func (o Object) GetString(key string) (string, error) {
	s, err := getAs[String](o, key)
	return string(s), err
}

// GetBool returns the Boolean value of the given key.
func (o Object) GetBool(key string) (bool, error) {
	b, err := getAs[Bool](o, key)
	return bool(b), err
}

// GetNumber returns the numeric value of the given key.
func (o Object) GetNumber(key string) (Number, error) { return getAs[Number](o, key) }

// GetObject returns the object value of the given key.
func (o Object) GetObject(key string) (Object, error) { return getAs[Object](o, key) }

// GetArray returns the array value of the given key.
func (o Object) GetArray(key string) (Array, error) { return getAs[Array](o, key) }

func getAs[T Value](o Object, key string) (T, error) {
	v, err := o.Lookup(key)
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := Expect[T](v)
	if err != nil {
		return t, keyError(key, err)
	}
	return t, nil
}

// Updated returns a copy of o in which key is mapped to v. If o already has
// a member with that key, it is replaced and the key moves to the end.
// Updated panics if v == nil.
func (o Object) Updated(key string, v Value) Object {
	if v == nil {
		panic("jval: nil value for key " + key)
	}
	keys := make([]string, 0, len(o.keys)+1)
	for _, k := range o.keys {
		if k != key {
			keys = append(keys, k)
		}
	}
	vals := maps.Clone(o.vals)
	if vals == nil {
		vals = make(map[string]Value)
	}
	vals[key] = v
	return Object{keys: append(keys, key), vals: vals}
}

// Removed returns a copy of o without the member with the given key.  If o
// has no such member, o is returned unchanged.
func (o Object) Removed(key string) Object {
	if !o.Has(key) {
		return o
	}
	keys := make([]string, 0, len(o.keys)-1)
	for _, k := range o.keys {
		if k != key {
			keys = append(keys, k)
		}
	}
	vals := maps.Clone(o.vals)
	delete(vals, key)
	return Object{keys: keys, vals: vals}
}

// Concat returns an object containing the members of o followed by the
// members of p. Where both have the same key, the value from p wins.
func (o Object) Concat(p Object) Object {
	if p.Len() == 0 {
		return o
	}
	var b ObjectBuilder
	for _, key := range o.keys {
		b.Set(key, o.vals[key])
	}
	for _, key := range p.keys {
		b.Set(key, p.vals[key])
	}
	out, _ := b.Build() // cannot fail: p has no nil values
	return out
}

// Collect returns all the values of members named key in the subtree rooted
// at o. See Collect.
func (o Object) Collect(key string) []Value { return Collect(o, key) }
