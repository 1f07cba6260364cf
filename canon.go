// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"github.com/creachadair/jstream/jval"
	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Canonical returns the RFC 8785 (JCS) canonical encoding of v: object
// members are sorted by the UTF-16 code units of their keys, strings use
// minimal escapes, and numbers are formatted as IEEE 754 doubles.
//
// Numbers that cannot be represented exactly as a double are rounded to the
// nearest one, as JCS requires.
func Canonical(v jval.Value) ([]byte, error) {
	return jsoncanonicalizer.Transform(ToBytes(v))
}
