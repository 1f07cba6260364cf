// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

import "slices"

// Collect returns the values of all object members named key anywhere in the
// subtree rooted at v, in depth-first order.
//
// When an object is visited, the value of its own member named key (if any)
// is reported before the values found in its members. Array elements are
// visited in order. Scalar values contain no members.
func Collect(v Value, key string) []Value {
	var out []Value

	stk := []Value{v}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		// N.B. Push in reverse order, so we visit in lexical order.
		switch t := next.(type) {
		case Object:
			if w, ok := t.vals[key]; ok {
				out = append(out, w)
			}
			for _, k := range slices.Backward(t.keys) {
				stk = append(stk, t.vals[k])
			}
		case Array:
			for _, elt := range slices.Backward(t.vals) {
				stk = append(stk, elt)
			}
		}
	}
	return out
}
