// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

// Kind identifies the type of a JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindInvalid Kind = iota // not a value
	KindNull                // null
	KindBool                // true, false
	KindNumber              // number
	KindString              // string
	KindArray               // [ ... ]
	KindObject              // { ... }
)

var kindStr = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "boolean",
	KindNumber:  "number",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[KindInvalid]
	}
	return kindStr[k]
}

// KindOf returns the kind of v, or KindInvalid if v == nil.
func KindOf(v Value) Kind {
	if v == nil {
		return KindInvalid
	}
	return v.Kind()
}
