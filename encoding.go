// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"strings"

	"github.com/creachadair/jstream/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Surrogate pairs are combined, and unpaired surrogates are replaced by the
// Unicode replacement rune. Unquote reports an error for an incomplete escape
// sequence.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	return string(dec), err
}

// unquoteToken decodes the text of a String token.
func unquoteToken(text []byte) (string, error) {
	dec, err := escape.Unquote(mem.B(text[1 : len(text)-1]))
	return string(dec), err
}
