// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"github.com/creachadair/jstream/internal/escape"
	"go4.org/mem"
)

// AppendJSON appends the compact JSON encoding of v to dst and returns the
// extended slice.
func AppendJSON(dst []byte, v Value) []byte {
	switch t := v.(type) {
	case Object:
		dst = append(dst, '{')
		for i, key := range t.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = escape.AppendQuote(dst, mem.S(key))
			dst = append(dst, ':')
			dst = AppendJSON(dst, t.vals[key])
		}
		return append(dst, '}')
	case Array:
		dst = append(dst, '[')
		for i, elt := range t.vals {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, elt)
		}
		return append(dst, ']')
	case String:
		return escape.AppendQuote(dst, mem.S(string(t)))
	case nil:
		return append(dst, "null"...)
	default:
		return append(dst, v.JSON()...)
	}
}

// Quote encodes s as a JSON string literal, with quotation marks.
func Quote(s string) string { return string(escape.Quote(mem.S(s))) }
