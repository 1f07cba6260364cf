// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bytes"
	"io"
	"os"

	"github.com/creachadair/jstream/jval"
)

// Write writes the compact JSON encoding of v to w.
func Write(w io.Writer, v jval.Value) error {
	return writeValue(NewGenerator(w), w, v)
}

// WritePretty writes the JSON encoding of v to w, with each member and
// element on its own line indented by copies of indent.  It reports
// ErrInvalidIndent if indent contains anything but whitespace.
func WritePretty(w io.Writer, v jval.Value, indent string) error {
	g, err := NewPrettyGenerator(w, indent)
	if err != nil {
		return err
	}
	return writeValue(g, w, v)
}

func writeValue(g *Generator, w io.Writer, v jval.Value) error {
	if _, ok := v.(jval.Structure); !ok && v != nil {
		_, err := io.WriteString(w, v.JSON())
		return err
	}
	if err := g.Value(v); err != nil {
		return err
	}
	return g.Close()
}

// ToText returns the compact JSON encoding of v.
func ToText(v jval.Value) string { return string(ToBytes(v)) }

// ToBytes returns the compact JSON encoding of v.
func ToBytes(v jval.Value) []byte { return jval.AppendJSON(nil, v) }

// ToPrettyText returns the JSON encoding of v with each member and element on
// its own line, indented by copies of indent.
func ToPrettyText(v jval.Value, indent string) (string, error) {
	var buf bytes.Buffer
	if err := WritePretty(&buf, v, indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile writes the JSON encoding of v to the named file, creating or
// truncating it. If indent == "", the output is compact; otherwise it is
// indented as for WritePretty.
func WriteFile(path string, v jval.Value, indent string) (err error) {
	if err := checkIndent(indent); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if indent == "" {
		return Write(f, v)
	}
	return WritePretty(f, v, indent)
}
