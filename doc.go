// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstream implements a streaming JSON parser and generator over the
// immutable value model of package jval.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jstream.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input.
//
// # Parsing
//
// The Parser type reads a single JSON object or array and reports its
// structure as a sequence of events, pulled one at a time by the caller:
//
//	p := jstream.NewParser(input)
//	for p.HasNext() {
//	   evt, err := p.Next()
//	   if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	   log.Printf("Event: %v", evt)
//	}
//
// The events of a document are:
//
//	Event        | Description
//	------------ | ------------------------------------------
//	StartObject  | "{" opening an object
//	Key          | the key of an object member, decoded
//	Value        | true, false, null, number, or string
//	EndObject    | "}" closing an object
//	StartArray   | "[" opening an array
//	EndArray     | "]" closing an array
//
// Nesting is tracked with an explicit stack rather than by recursion.  In
// case of error, parsing stops and an error of concrete type
// *jstream.SyntaxError is returned, giving the character offset, line, and
// column at which the problem was found.
//
// After StartObject or StartArray, the ReadObject and ReadArray methods
// consume the rest of the container and return it as a value.
//
// # Reading and Writing
//
// To read a complete document into memory, use Parse (or ParseString,
// ParseBytes, ParseFile). To read a sequence of documents, use a Reader.
//
// To write values, use Write, WritePretty, or ToText.  To produce output
// incrementally, use a Generator, which checks that the sequence of calls
// describes a well-formed document:
//
//	g := jstream.NewGenerator(w)
//	g.BeginObject()
//	g.Field("name", jval.String("x"))
//	g.EndObject()
//	if err := g.Close(); err != nil {
//	   log.Fatalf("Write failed: %v", err)
//	}
package jstream
