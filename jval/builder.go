// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"fmt"
	"maps"
	"slices"
)

// An ArrayBuilder accumulates values to construct an Array.
// The zero value is ready for use.
//
// Values returned by Build are independent of the builder: adding further
// values does not affect an array that was already built.
type ArrayBuilder struct {
	vals   []Value
	shared bool // vals is referenced by a built array
	err    error
}

// Add appends vs to the array under construction.  If any of vs is nil, the
// builder records an error that is reported by Build.
func (b *ArrayBuilder) Add(vs ...Value) *ArrayBuilder {
	for _, v := range vs {
		if v == nil {
			if b.err == nil {
				b.err = fmt.Errorf("index %d: %w", len(b.vals), ErrNilValue)
			}
			continue
		}
		b.unshare()
		b.vals = append(b.vals, v)
	}
	return b
}

// Len reports the number of values added so far.
func (b *ArrayBuilder) Len() int { return len(b.vals) }

// Build returns an array containing the values added so far, or the first
// error recorded by Add. The builder retains its contents.
func (b *ArrayBuilder) Build() (Array, error) {
	if b.err != nil {
		return Array{}, b.err
	}
	b.shared = true
	return Array{vals: slices.Clip(b.vals)}, nil
}

// Reset discards the contents of b and any recorded error, leaving it ready
// to construct a new array.
func (b *ArrayBuilder) Reset() { *b = ArrayBuilder{} }

func (b *ArrayBuilder) unshare() {
	if b.shared {
		b.vals = slices.Clone(b.vals)
		b.shared = false
	}
}

// An ObjectBuilder accumulates key-value members to construct an Object.
// The zero value is ready for use.
//
// Setting a key that was already set replaces its value and moves the key to
// the end of the member order. Objects returned by Build are independent of
// the builder.
type ObjectBuilder struct {
	keys   []string         // keys in order of writes, including superseded ones
	last   map[string]int   // index in keys of the latest write of each key
	vals   map[string]Value // latest value of each key
	shared bool             // keys and vals are referenced by a built object
	err    error
}

// Set adds a member mapping key to v.  If v == nil, the builder records an
// error that is reported by Build.
func (b *ObjectBuilder) Set(key string, v Value) *ObjectBuilder {
	if v == nil {
		if b.err == nil {
			b.err = keyError(key, ErrNilValue)
		}
		return b
	}
	b.unshare()
	if b.vals == nil {
		b.vals = make(map[string]Value)
		b.last = make(map[string]int)
	}
	b.last[key] = len(b.keys)
	b.keys = append(b.keys, key)
	b.vals[key] = v
	return b
}

// Has reports whether key has been set in b.
func (b *ObjectBuilder) Has(key string) bool { _, ok := b.vals[key]; return ok }

// Len reports the number of distinct keys set so far.
func (b *ObjectBuilder) Len() int { return len(b.vals) }

// Build returns an object containing the members set so far, or the first
// error recorded by Set. The builder retains its contents.
func (b *ObjectBuilder) Build() (Object, error) {
	if b.err != nil {
		return Object{}, b.err
	}
	b.compact()
	b.shared = true
	return Object{keys: slices.Clip(b.keys), vals: b.vals}, nil
}

// Reset discards the contents of b and any recorded error, leaving it ready
// to construct a new object.
func (b *ObjectBuilder) Reset() { *b = ObjectBuilder{} }

// compact drops superseded keys, leaving each key at its latest position.
func (b *ObjectBuilder) compact() {
	if len(b.keys) == len(b.vals) {
		return
	}
	b.unshare()
	keys := b.keys[:0]
	for i, key := range b.keys {
		if b.last[key] == i {
			b.last[key] = len(keys)
			keys = append(keys, key)
		}
	}
	clear(b.keys[len(keys):])
	b.keys = keys
}

func (b *ObjectBuilder) unshare() {
	if b.shared {
		b.keys = slices.Clone(b.keys)
		b.last = maps.Clone(b.last)
		b.vals = maps.Clone(b.vals)
		b.shared = false
	}
}
