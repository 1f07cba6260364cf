// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/creachadair/jstream/jval"
)

// EventType is the type of a parser event.
type EventType byte

// Constants defining the valid EventType values.
const (
	NoEvent     EventType = iota // no event (zero value)
	StartObject                  // open brace of an object
	EndObject                    // close brace of an object
	StartArray                   // open bracket of an array
	EndArray                     // close bracket of an array
	Key                          // object member key
	Value                        // scalar value: string, number, true, false, null
)

var eventStr = [...]string{
	NoEvent:     "NoEvent",
	StartObject: "StartObject",
	EndObject:   "EndObject",
	StartArray:  "StartArray",
	EndArray:    "EndArray",
	Key:         "Key",
	Value:       "Value",
}

func (e EventType) String() string {
	if int(e) >= len(eventStr) {
		return eventStr[NoEvent]
	}
	return eventStr[e]
}

// An Event is a single unit of structure reported by a Parser.
type Event struct {
	Type   EventType
	Key    string     // for Key events, the decoded key
	Value  jval.Value // for Value events, the decoded scalar
	Offset int        // character offset of the token that produced the event
}

func (e Event) String() string {
	switch e.Type {
	case Key:
		return fmt.Sprintf("Key(%s)", Quote(e.Key))
	case Value:
		return fmt.Sprintf("Value(%s)", e.Value.JSON())
	default:
		return e.Type.String()
	}
}

// ErrWrongContext is reported by ReadObject and ReadArray when the innermost
// open context of the parser is not of the requested kind.
var ErrWrongContext = errors.New("wrong parser context")

// A Parser reads a JSON object or array from an input stream and reports its
// structure as a sequence of events. Nesting is tracked with an explicit
// stack, so the depth of the input is limited only by memory (see
// SetMaxDepth).
//
// Once Next reports an error, the parser is finished and every subsequent
// call reports the same error.
type Parser struct {
	s        *Scanner
	stk      []frame
	key      bool // a key has been read; its value is awaited
	comma    bool // a comma has been read; an element is awaited
	started  bool // the root container has been opened
	done     bool // the root container has been closed
	eof      bool // the scanner reached the end of input
	maxDepth int
	err      error
}

// A frame records the state of an open object or array.
type frame struct {
	obj bool // true for an object, false for an array
	n   int  // number of members or elements begun so far
}

// NewParser constructs a new Parser that consumes input from r.
func NewParser(r io.Reader) *Parser { return &Parser{s: NewScanner(r)} }

// NewParserWithScanner constructs a new Parser that consumes input from s.
func NewParserWithScanner(s *Scanner) *Parser { return &Parser{s: s} }

// SetMaxDepth sets the maximum nesting depth of containers the parser will
// accept. If n <= 0, the depth is unlimited. Exceeding the limit is reported
// as a syntax error.
func (p *Parser) SetMaxDepth(n int) { p.maxDepth = max(n, 0) }

// Depth reports the number of containers currently open.
func (p *Parser) Depth() int { return len(p.stk) }

// Empty reports whether the input ended cleanly before the root container
// was opened, so that there was no document to read.
func (p *Parser) Empty() bool { return p.eof && !p.started }

// HasNext reports whether a call to Next may return another event. It is
// false once the root container has been closed, or after an error.
func (p *Parser) HasNext() bool { return p.err == nil && !p.done }

// Next returns the next event from the input. After the root container is
// closed, Next returns io.EOF. In case of a syntax error, the returned error
// has type [*SyntaxError].
func (p *Parser) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	} else if p.done {
		return Event{}, io.EOF
	}
	evt, err := p.next()
	if err != nil {
		p.err = err
		return Event{}, err
	}
	return evt, nil
}

// Events is a range function over the events of p. If an error occurs, it
// is reported once as the final pair of the sequence.
func (p *Parser) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for p.HasNext() {
			evt, err := p.Next()
			if !yield(evt, err) || err != nil {
				return
			}
		}
	}
}

func (p *Parser) next() (Event, error) {
	tok, err := p.advance()
	if err != nil {
		return Event{}, err
	}

	// The first token must open the root container.
	if !p.started {
		if tok != LBrace && tok != LSquare {
			return Event{}, p.syntaxError(nil, "expected %s, got %v", tokLabel(LBrace, LSquare), tok)
		}
		p.started = true
		return p.open(tok)
	}

	top := &p.stk[len(p.stk)-1]
	if p.key {
		// The value of an object member.
		p.key = false
		top.n++
		return p.value(tok)
	}

	// After the first member or element, require a separator or the end of
	// the container.
	end := RSquare
	if top.obj {
		end = RBrace
	}
	if top.n > 0 && !p.comma {
		if tok == end {
			return p.close()
		} else if tok != Comma {
			return Event{}, p.syntaxError(nil, "expected %s, got %v", tokLabel(Comma, end), tok)
		}
		p.comma = true
		tok, err = p.advance()
		if err != nil {
			return Event{}, err
		}
	} else if tok == end && !p.comma {
		return p.close()
	}

	if !top.obj {
		p.comma = false
		top.n++
		return p.value(tok)
	}

	// An object member begins with a string key followed by a colon.
	if tok != String {
		return Event{}, p.syntaxError(nil, "expected string key, got %v", tok)
	}
	key, err := unquoteToken(p.s.Text())
	if err != nil {
		return Event{}, p.syntaxError(err, "invalid key: %v", err)
	}
	evt := Event{Type: Key, Key: key, Offset: p.s.pos}
	if tok, err := p.advance(); err != nil {
		return Event{}, err
	} else if tok != Colon {
		return Event{}, p.syntaxError(nil, "expected %v, got %v", Colon, tok)
	}
	p.key, p.comma = true, false
	return evt, nil
}

// value reports an event for a value beginning with tok.
func (p *Parser) value(tok Token) (Event, error) {
	evt := Event{Type: Value, Offset: p.s.pos}
	switch tok {
	case LBrace, LSquare:
		return p.open(tok)
	case String:
		s, err := unquoteToken(p.s.Text())
		if err != nil {
			return Event{}, p.syntaxError(err, "invalid string: %v", err)
		}
		evt.Value = jval.String(s)
	case Integer, Number:
		n, err := jval.ParseNumber(string(p.s.Text()))
		if err != nil {
			return Event{}, p.syntaxError(err, "%v", err)
		}
		evt.Value = n
	case True:
		evt.Value = jval.True
	case False:
		evt.Value = jval.False
	case Null:
		evt.Value = jval.Null
	default:
		return Event{}, p.syntaxError(nil, "unexpected %v", tok)
	}
	return evt, nil
}

func (p *Parser) open(tok Token) (Event, error) {
	if p.maxDepth > 0 && len(p.stk) >= p.maxDepth {
		return Event{}, p.syntaxError(nil, "maximum depth %d exceeded", p.maxDepth)
	}
	p.comma = false
	p.stk = append(p.stk, frame{obj: tok == LBrace})
	if tok == LBrace {
		return Event{Type: StartObject, Offset: p.s.pos}, nil
	}
	return Event{Type: StartArray, Offset: p.s.pos}, nil
}

func (p *Parser) close() (Event, error) {
	top := p.stk[len(p.stk)-1]
	p.stk = p.stk[:len(p.stk)-1]
	p.done = len(p.stk) == 0
	if top.obj {
		return Event{Type: EndObject, Offset: p.s.pos}, nil
	}
	return Event{Type: EndArray, Offset: p.s.pos}, nil
}

// advance reads the next token, converting scanner failures into syntax
// errors. The end of input is an error, since the root is not closed.
func (p *Parser) advance() (Token, error) {
	if err := p.s.Next(); err != nil {
		p.eof = err == io.EOF
		return Invalid, p.scanError(err)
	}
	return p.s.Token(), nil
}

// scanError converts an error reported by the scanner into a syntax error.
func (p *Parser) scanError(err error) error {
	if err == io.EOF {
		return p.syntaxError(io.ErrUnexpectedEOF, "unexpected end of input")
	}
	var pe posError
	if errors.As(err, &pe) {
		return &SyntaxError{
			Offset:  pe.pos,
			Line:    pe.lc.Line,
			Column:  pe.lc.Column,
			Message: pe.err.Error(),
			err:     pe.err,
		}
	}
	return p.syntaxError(err, "%v", err)
}

// ReadObject consumes the remaining members of the innermost open object and
// returns them as a value, as if the members had been read with Next. The
// object's EndObject event is consumed. It reports ErrWrongContext if the
// innermost context is not an object, or if a key is awaiting its value.
func (p *Parser) ReadObject() (jval.Object, error) {
	if err := p.checkContext(true); err != nil {
		return jval.Object{}, err
	}
	v, err := p.assemble(&partial{obj: true})
	if err != nil {
		return jval.Object{}, err
	}
	return v.(jval.Object), nil
}

// ReadArray consumes the remaining elements of the innermost open array and
// returns them as a value, as if the elements had been read with Next. The
// array's EndArray event is consumed. It reports ErrWrongContext if the
// innermost context is not an array.
func (p *Parser) ReadArray() (jval.Array, error) {
	if err := p.checkContext(false); err != nil {
		return jval.Array{}, err
	}
	v, err := p.assemble(&partial{})
	if err != nil {
		return jval.Array{}, err
	}
	return v.(jval.Array), nil
}

func (p *Parser) checkContext(obj bool) error {
	if p.err != nil {
		return p.err
	}
	want := "array"
	if obj {
		want = "object"
	}
	if len(p.stk) == 0 || p.stk[len(p.stk)-1].obj != obj {
		return fmt.Errorf("%w: no open %s", ErrWrongContext, want)
	} else if p.key {
		return fmt.Errorf("%w: a key is awaiting its value", ErrWrongContext)
	}
	return nil
}

// A partial is an object or array under construction.
type partial struct {
	obj bool
	key string // the most recent key, for an object
	ob  jval.ObjectBuilder
	ab  jval.ArrayBuilder
}

func (b *partial) add(v jval.Value) {
	if b.obj {
		b.ob.Set(b.key, v)
	} else {
		b.ab.Add(v)
	}
}

func (b *partial) build() jval.Structure {
	// Parser values are never nil, so the builders cannot fail.
	if b.obj {
		o, _ := b.ob.Build()
		return o
	}
	a, _ := b.ab.Build()
	return a
}

// assemble reads events from p to complete the containers on stk, and
// returns the outermost one when it closes. If stk is empty, the next event
// must open a container. The key of an object is not disturbed while one of
// its member values is open.
func (p *Parser) assemble(stk ...*partial) (jval.Structure, error) {
	for {
		evt, err := p.Next()
		if err != nil {
			return nil, err
		}
		var top *partial
		if len(stk) != 0 {
			top = stk[len(stk)-1]
		}
		switch evt.Type {
		case StartObject, StartArray:
			stk = append(stk, &partial{obj: evt.Type == StartObject})
		case Key:
			top.key = evt.Key
		case Value:
			top.add(evt.Value)
		case EndObject, EndArray:
			v := top.build()
			stk = stk[:len(stk)-1]
			if len(stk) == 0 {
				return v, nil
			}
			stk[len(stk)-1].add(v)
		}
	}
}

func (p *Parser) syntaxError(err error, msg string, args ...any) error {
	loc := p.s.Location().First
	return &SyntaxError{
		Offset:  p.s.pos,
		Line:    loc.Line,
		Column:  loc.Column,
		Message: fmt.Sprintf(msg, args...),
		err:     err,
	}
}

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Offset int // character offset of the error, 0-based
	Line   int // line number, 1-based
	Column int // character offset in the line, 0-based

	Message string // describes the problem

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %d:%d (offset %d): %s", s.Line, s.Column, s.Offset, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens ...Token) string {
	ss := make([]string, len(tokens))
	for i, tok := range tokens {
		ss[i] = tok.String()
	}
	if len(ss) <= 1 {
		return strings.Join(ss, "")
	}
	return strings.Join(ss[:len(ss)-1], ", ") + " or " + ss[len(ss)-1]
}
