// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/creachadair/jstream/jval"
)

// Parse parses a single JSON object or array from r and returns its value.
// The input must contain exactly one document, optionally surrounded by
// whitespace. In case of a syntax error, the returned error has concrete
// type [*SyntaxError].
func Parse(r io.Reader) (jval.Structure, error) {
	rd := NewReader(r)
	v, err := rd.Read()
	if err == io.EOF {
		return nil, rd.p.syntaxError(io.ErrUnexpectedEOF, "unexpected end of input")
	} else if err != nil {
		return nil, err
	}
	if err := rd.p.s.Next(); err == nil {
		return nil, rd.p.syntaxError(nil, "extra %v after document", rd.p.s.Token())
	} else if err != io.EOF {
		return nil, rd.p.scanError(err)
	}
	return v, nil
}

// ParseString parses a single JSON object or array from s.
func ParseString(s string) (jval.Structure, error) { return Parse(strings.NewReader(s)) }

// ParseBytes parses a single JSON object or array from data.
func ParseBytes(data []byte) (jval.Structure, error) { return Parse(bytes.NewReader(data)) }

// ParseFile parses a single JSON object or array from the named file.
func ParseFile(path string) (jval.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ParseAll parses all the whitespace-separated JSON objects and arrays in r.
func ParseAll(r io.Reader) ([]jval.Structure, error) {
	var out []jval.Structure
	rd := NewReader(r)
	for {
		v, err := rd.Read()
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// A Reader reads a sequence of JSON documents from an input stream.
type Reader struct {
	s        *Scanner
	p        *Parser
	maxDepth int
}

// NewReader constructs a Reader that consumes input from r.
func NewReader(r io.Reader) *Reader {
	s := NewScanner(r)
	return &Reader{s: s, p: NewParserWithScanner(s)}
}

// SetMaxDepth sets the maximum nesting depth of documents read by r.
// See [Parser.SetMaxDepth].
func (r *Reader) SetMaxDepth(n int) { r.maxDepth = n; r.p.SetMaxDepth(n) }

// Read reads the next complete document from the input and returns its
// value. When no further documents are available, Read returns io.EOF.
// A syntax error is reported as a [*SyntaxError], and ends the stream.
func (r *Reader) Read() (jval.Structure, error) {
	if r.p.done {
		r.p = NewParserWithScanner(r.s)
		r.p.SetMaxDepth(r.maxDepth)
	}
	v, err := r.p.assemble()
	if err != nil && r.p.Empty() {
		// The input ended cleanly between documents.
		r.p.err = io.EOF
		return nil, io.EOF
	}
	return v, err
}
