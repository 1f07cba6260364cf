// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/jval"
	"github.com/google/go-cmp/cmp"
)

// MustParse parses text as a single JSON document, or fails t.
func MustParse(t testing.TB, text string) jval.Structure {
	t.Helper()
	v, err := jstream.ParseString(text)
	if err != nil {
		t.Fatalf("Parse %#q: unexpected error: %v", text, err)
	}
	return v
}

// Diff reports the differences between want and got as a diff of their
// indented JSON text, or "" if the values are equal.
func Diff(want, got jval.Value) string {
	if want == nil || got == nil {
		return cmp.Diff(want, got)
	} else if want.Equal(got) {
		return ""
	}
	return cmp.Diff(pretty(want), pretty(got))
}

func pretty(v jval.Value) string {
	s, err := jstream.ToPrettyText(v, "  ")
	if err != nil {
		panic(err)
	}
	return s
}
