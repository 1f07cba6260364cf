// Package query implements structural queries over JSON values.
//
// A query describes a substructure of a JSON value, such as an object member,
// array element, or a path through the value. Evaluating a query against a
// concrete value traverses the structure described by the query and returns
// the resulting value.
//
// The simplest query is for a "path", a sequence of object keys and/or array
// indices that describes a path from the root of a JSON value. For example,
// given the JSON value:
//
//	[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]
//
// the query
//
//	query.Path(1, "c", "d")
//
// yields the value true.
//
// Queries never modify their input. Values constructed by a query share
// structure with the input, which is safe because jval values are immutable.
package query

import (
	"errors"
	"fmt"
	"slices"

	"github.com/creachadair/jstream/jval"
)

// ErrNoMatch is reported by queries that select nothing from their input.
var ErrNoMatch = errors.New("no matching values")

// Eval evaluates the given query beginning from root, returning the resulting
// value or an error.
func Eval(root jval.Value, q Query) (jval.Value, error) {
	if root == nil {
		return nil, jval.ErrNilValue
	}
	return q.eval(root)
}

// A Query describes a traversal of a JSON value.
type Query interface {
	eval(jval.Value) (jval.Value, error)
}

// Path traverses a sequence of nested object keys or array indices from the
// root.  If no keys are specified, the root is returned. Each key must be a
// string, an int, or a Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return objKey(t)
	case int:
		return nthQuery(t)
	case Query:
		return t
	default:
		panic(fmt.Sprintf("invalid path element %T", key))
	}
}

type objKey string

func (o objKey) eval(v jval.Value) (jval.Value, error) {
	obj, err := jval.Expect[jval.Object](v)
	if err != nil {
		return nil, err
	}
	return obj.Lookup(string(o))
}

type nthQuery int

func (nq nthQuery) eval(v jval.Value) (jval.Value, error) {
	arr, err := jval.Expect[jval.Array](v)
	if err != nil {
		return nil, err
	}
	idx := int(nq)
	if idx < 0 {
		idx += arr.Len()
	}
	if idx < 0 || idx >= arr.Len() {
		return nil, &jval.RangeError{Index: int(nq), Len: arr.Len()}
	}
	return arr.At(idx)
}

// Selection constructs an array of the elements of its input array, for which
// the specified function returns true.
type Selection func(jval.Value) bool

func (q Selection) eval(v jval.Value) (jval.Value, error) {
	a, err := jval.Expect[jval.Array](v)
	if err != nil {
		return nil, err
	}
	var out []jval.Value
	for _, elt := range a.All() {
		if q(elt) {
			out = append(out, elt)
		}
	}
	return jval.ArrayOf(out...), nil
}

// Mapping constructs an array in which each value is replaced by the result of
// calling the specified function on the corresponding input value.
type Mapping func(jval.Value) jval.Value

func (q Mapping) eval(v jval.Value) (jval.Value, error) {
	a, err := jval.Expect[jval.Array](v)
	if err != nil {
		return nil, err
	}
	var b jval.ArrayBuilder
	for _, elt := range a.All() {
		b.Add(q(elt))
	}
	return b.Build()
}

// Slice selects a slice of an array from offsets lo to hi.  The range includes
// lo but excludes hi. Negative offsets select from the end of the array.
// If hi == 0, the length of the array is used.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v jval.Value) (jval.Value, error) {
	arr, err := jval.Expect[jval.Array](v)
	if err != nil {
		return nil, err
	}
	n := arr.Len()
	lox := q.lo
	if lox < 0 {
		lox += n
	}
	hix := q.hi
	if hix <= 0 {
		hix += n
	}
	if lox < 0 || lox > n {
		return nil, &jval.RangeError{Index: q.lo, Len: n}
	} else if hix < 0 || hix > n {
		return nil, &jval.RangeError{Index: q.hi, Len: n}
	} else if lox > hix {
		return nil, fmt.Errorf("index start %d > end %d", q.lo, q.hi)
	}
	return arr.Slice(lox, hix)
}

// Pick constructs an array by picking the designated offsets from an array.
// Negative offsets select from the end of the input array.
func Pick(offsets ...int) Query { return pickQuery(offsets) }

type pickQuery []int

func (q pickQuery) eval(v jval.Value) (jval.Value, error) {
	arr, err := jval.Expect[jval.Array](v)
	if err != nil {
		return nil, err
	}
	out := make([]jval.Value, len(q))
	for i, off := range q {
		if off < 0 {
			off += arr.Len()
		}
		elt, err := arr.At(off)
		if err != nil {
			return nil, err
		}
		out[i] = elt
	}
	return jval.ArrayOf(out...), nil
}

// Len returns an integer representing the length of the root.
//
// For an object, the length is the number of members.
// For an array, the length is the number of elements.
// For a string, the length is the length of the string in bytes.
// For null, the length is zero.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v jval.Value) (jval.Value, error) {
	switch t := v.(type) {
	case interface{ Len() int }:
		return jval.Int(int64(t.Len())), nil
	case jval.NullValue:
		return jval.Int(0), nil
	}
	return nil, fmt.Errorf("cannot take length of %v", jval.KindOf(v))
}

// Seq is a sequential composition of queries. An empty sequence selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v jval.Value) (jval.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives.  The result of
// the first alternative that does not report an error is returned. If there
// are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v jval.Value) (jval.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, errors.New("no matching alternatives")
}

// Recur applies a query to each recursive descendant of its input and returns
// an array of the resulting values. The arguments have the same constraints as
// Path.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(v jval.Value) (jval.Value, error) {
	var out []jval.Value

	stk := []jval.Value{v}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if r, err := q.Query.eval(next); err == nil {
			out = append(out, r)
		}

		// N.B. Push in reverse order, so we visit in lexical order.
		switch t := next.(type) {
		case jval.Object:
			for _, m := range slices.Backward(t.Members()) {
				stk = append(stk, m.Value)
			}
		case jval.Array:
			for _, elt := range slices.Backward(t.Values()) {
				stk = append(stk, elt)
			}
		}
	}

	if len(out) == 0 {
		return nil, ErrNoMatch
	}
	return jval.ArrayOf(out...), nil
}

// Each applies a query to each element of an array and returns an array of the
// resulting values. It fails if the input is not an array.  The arguments have
// the same constraints as Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v jval.Value) (jval.Value, error) {
	arr, err := jval.Expect[jval.Array](v)
	if err != nil {
		return nil, err
	}
	out := make([]jval.Value, 0, arr.Len())
	for i, elt := range arr.All() {
		v, err := q.Query.eval(elt)
		if err != nil {
			return nil, &jval.PathError{Step: i, Err: err}
		}
		out = append(out, v)
	}
	return jval.ArrayOf(out...), nil
}

// Object constructs an object with the given keys mapped to the results of
// matching the query values against its input. The members of the result are
// in lexicographic order by key.
type Object map[string]Query

func (o Object) eval(v jval.Value) (jval.Value, error) {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var b jval.ObjectBuilder
	for _, key := range keys {
		val, err := o[key].eval(v)
		if err != nil {
			return nil, &jval.PathError{Step: key, Err: err}
		}
		b.Set(key, val)
	}
	return b.Build()
}

// Array constructs an array with the values produced by matching the given
// queries against its input.
type Array []Query

func (a Array) eval(v jval.Value) (jval.Value, error) {
	out := make([]jval.Value, len(a))
	for i, q := range a {
		val, err := q.eval(v)
		if err != nil {
			return nil, &jval.PathError{Step: i, Err: err}
		}
		out[i] = val
	}
	return jval.ArrayOf(out...), nil
}

// A String query ignores its input and returns the given string.
func String(s string) Query { return Value(jval.String(s)) }

// An Int query ignores its input and returns the given integer.
func Int(z int64) Query { return Value(jval.Int(z)) }

// A Bool query ignores its input and returns the given bool.
func Bool(b bool) Query { return Value(jval.Bool(b)) }

// A Null query ignores its input and returns a null value.
func Null() Query { return Value(jval.Null) }

// A Value query ignores its input and returns the given value.  The argument
// must be one of the types accepted by jval.ToValue.
func Value(v any) Query { return constQuery{jval.ToValue(v)} }

type constQuery struct{ jval.Value }

func (c constQuery) eval(_ jval.Value) (jval.Value, error) { return c.Value, nil }

// A Glob query returns an array of the member values of an object, or the
// elements of an array.
func Glob() Query { return globQuery{} }

type globQuery struct{}

func (globQuery) eval(v jval.Value) (jval.Value, error) {
	switch t := v.(type) {
	case jval.Object:
		out := make([]jval.Value, 0, t.Len())
		for _, elt := range t.All() {
			out = append(out, elt)
		}
		return jval.ArrayOf(out...), nil
	case jval.Array:
		return t, nil
	default:
		return nil, ErrNoMatch
	}
}

// Keys returns an array of the keys of an object, in order.
func Keys() Query { return keysQuery{} }

type keysQuery struct{}

func (keysQuery) eval(v jval.Value) (jval.Value, error) {
	obj, err := jval.Expect[jval.Object](v)
	if err != nil {
		return nil, err
	}
	return jval.ArrayOf(obj.Keys()...), nil
}

// Some applies a query to each element of an array and returns an array of
// the values for which the query succeeded. Unlike Each, elements that do not
// match are omitted. The arguments have the same constraints as Path.
func Some(keys ...any) Query { return someQuery{Path(keys...)} }

type someQuery struct{ Query }

func (q someQuery) eval(v jval.Value) (jval.Value, error) {
	arr, err := jval.Expect[jval.Array](v)
	if err != nil {
		return nil, err
	}
	var out []jval.Value
	for _, elt := range arr.All() {
		if w, err := q.Query.eval(elt); err == nil {
			out = append(out, w)
		}
	}
	return jval.ArrayOf(out...), nil
}

// Flatten returns an array in which each array element of its input array is
// replaced by the elements it contains. Other elements are kept unchanged.
func Flatten() Query { return flatQuery{} }

type flatQuery struct{}

func (flatQuery) eval(v jval.Value) (jval.Value, error) {
	arr, err := jval.Expect[jval.Array](v)
	if err != nil {
		return nil, err
	}
	var b jval.ArrayBuilder
	for _, elt := range arr.All() {
		if sub, ok := elt.(jval.Array); ok {
			b.Add(sub.Values()...)
		} else {
			b.Add(elt)
		}
	}
	return b.Build()
}

// Collect returns an array of the values of all object members named key
// anywhere in its input, in depth-first order. Collect does not fail; if
// there are no such members the result is empty.
func Collect(key string) Query { return collectQuery(key) }

type collectQuery string

func (q collectQuery) eval(v jval.Value) (jval.Value, error) {
	return jval.ArrayOf(jval.Collect(v, string(q))...), nil
}
