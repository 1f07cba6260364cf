// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jstream/internal/escape"
	"github.com/creachadair/jstream/jval"
	"go4.org/mem"
)

// ErrInvalidIndent is reported by NewPrettyGenerator for an indentation
// string containing characters other than space, tab, CR, and LF.
var ErrInvalidIndent = errors.New("invalid indentation")

// A Generator writes JSON text to an output stream as a sequence of calls
// that open and close containers and emit keys and values. The generator
// checks that the calls describe a well-formed document: a value must be
// written inside an open container, a member value requires a key, and every
// container must be closed.
//
// Successive top-level documents are separated by a newline. Output is
// buffered: Flush writes what has been generated so far, and Close flushes
// and also reports an error if any container is still open.
// Once a method reports an error, the generator is finished and every
// subsequent call reports the same error.
type Generator struct {
	w      *bufio.Writer
	pretty bool
	indent string
	stk    []frame
	key    bool // a key has been written; its value is awaited
	roots  int  // number of root documents begun
	buf    []byte
	err    error
}

// NewGenerator constructs a Generator that writes compact JSON to w.
func NewGenerator(w io.Writer) *Generator { return &Generator{w: bufio.NewWriter(w)} }

// NewPrettyGenerator constructs a Generator that writes JSON to w, placing
// each member and element on its own line indented by copies of indent.
// It reports ErrInvalidIndent if indent contains anything but whitespace.
func NewPrettyGenerator(w io.Writer, indent string) (*Generator, error) {
	if err := checkIndent(indent); err != nil {
		return nil, err
	}
	return &Generator{w: bufio.NewWriter(w), pretty: true, indent: indent}, nil
}

func checkIndent(indent string) error {
	if i := strings.IndexFunc(indent, func(r rune) bool { return !isSpace(r) }); i >= 0 {
		return fmt.Errorf("%w: %q at offset %d", ErrInvalidIndent, indent[i], i)
	}
	return nil
}

// GeneratorError is the concrete type of errors reported when the calls to
// a Generator do not describe a well-formed document.
type GeneratorError struct {
	Op      string // the method that failed, e.g., "Key"
	Message string // describes the problem
}

// Error satisfies the error interface.
func (e *GeneratorError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Message) }

func (g *Generator) fail(op, msg string, args ...any) error {
	g.err = &GeneratorError{Op: op, Message: fmt.Sprintf(msg, args...)}
	return g.err
}

// BeginObject opens a new object.
func (g *Generator) BeginObject() error { return g.begin("BeginObject", '{', true) }

// BeginArray opens a new array.
func (g *Generator) BeginArray() error { return g.begin("BeginArray", '[', false) }

// EndObject closes the innermost open object.
func (g *Generator) EndObject() error { return g.end("EndObject", '}', true) }

// EndArray closes the innermost open array.
func (g *Generator) EndArray() error { return g.end("EndArray", ']', false) }

// Key writes the key of an object member. The next call must write the
// member's value.
func (g *Generator) Key(key string) error {
	if g.err != nil {
		return g.err
	} else if len(g.stk) == 0 {
		return g.fail("Key", "no open object")
	} else if top := g.stk[len(g.stk)-1]; !top.obj {
		return g.fail("Key", "key %q inside an array", key)
	} else if g.key {
		return g.fail("Key", "key %q while a key is pending", key)
	}
	g.separate()
	g.buf = escape.AppendQuote(g.buf[:0], mem.S(key))
	g.buf = append(g.buf, ':')
	if g.pretty {
		g.buf = append(g.buf, ' ')
	}
	g.w.Write(g.buf)
	g.key = true
	return nil
}

// Value writes v as the next member value or array element. At the top
// level, v must be an object or an array, which is written as a complete
// document.
func (g *Generator) Value(v jval.Value) error {
	if g.err != nil {
		return g.err
	} else if v == nil {
		return g.fail("Value", "nil value")
	}
	if len(g.stk) == 0 {
		if _, ok := v.(jval.Structure); !ok {
			return g.fail("Value", "%v value outside an object or array", v.Kind())
		}
	} else if err := g.checkValue("Value"); err != nil {
		return err
	}
	return g.write(v)
}

// Field writes a complete object member with the given key and value.
func (g *Generator) Field(key string, v jval.Value) error {
	if err := g.Key(key); err != nil {
		return err
	}
	return g.Value(v)
}

// Flush writes any buffered output to the underlying writer.  It reports an
// error if the generator or the underlying writer has failed.
func (g *Generator) Flush() error {
	if g.err != nil {
		return g.err
	}
	return g.w.Flush()
}

// Close flushes any buffered output and reports an error if any container
// is still open. The generator is finished after Close.
func (g *Generator) Close() error {
	if g.err != nil {
		return g.err
	} else if n := len(g.stk); n > 0 {
		return g.fail("Close", "%d unclosed containers", n)
	}
	if err := g.w.Flush(); err != nil {
		return err
	}
	g.err = &GeneratorError{Op: "Close", Message: "generator is closed"}
	return nil
}

// Depth reports the number of containers currently open.
func (g *Generator) Depth() int { return len(g.stk) }

// write emits a complete value, recurring into the members of objects and
// arrays.
func (g *Generator) write(v jval.Value) error {
	switch t := v.(type) {
	case jval.Object:
		g.begin("BeginObject", '{', true)
		for key, elt := range t.All() {
			g.Key(key)
			g.write(elt)
		}
		return g.end("EndObject", '}', true)
	case jval.Array:
		g.begin("BeginArray", '[', false)
		for _, elt := range t.All() {
			g.write(elt)
		}
		return g.end("EndArray", ']', false)
	default:
		if len(g.stk) == 0 {
			return g.fail("Value", "%v value outside an object or array", v.Kind())
		}
		g.separate()
		g.buf = jval.AppendJSON(g.buf[:0], v)
		g.w.Write(g.buf)
		return nil
	}
}

// checkValue reports whether a value may be written in the current context.
func (g *Generator) checkValue(op string) error {
	if top := g.stk[len(g.stk)-1]; top.obj && !g.key {
		return g.fail(op, "object member without a key")
	}
	return nil
}

func (g *Generator) begin(op string, open byte, obj bool) error {
	if g.err != nil {
		return g.err
	}
	if len(g.stk) == 0 {
		if g.roots > 0 {
			g.w.WriteByte('\n')
		}
		g.roots++
	} else if err := g.checkValue(op); err != nil {
		return err
	} else {
		g.separate()
	}
	g.w.WriteByte(open)
	g.stk = append(g.stk, frame{obj: obj})
	return nil
}

func (g *Generator) end(op string, close byte, obj bool) error {
	if g.err != nil {
		return g.err
	}
	want := "array"
	if obj {
		want = "object"
	}
	if len(g.stk) == 0 {
		return g.fail(op, "no open %s", want)
	}
	top := g.stk[len(g.stk)-1]
	if top.obj != obj {
		return g.fail(op, "innermost context is not an %s", want)
	} else if g.key {
		return g.fail(op, "key without a value")
	}
	g.stk = g.stk[:len(g.stk)-1]
	if g.pretty && top.n > 0 {
		g.newline()
	}
	g.w.WriteByte(close)
	return nil
}

// separate writes the separator and line break preceding a member or
// element, and counts it in the innermost context. A member value follows
// its key directly.
func (g *Generator) separate() {
	if g.key {
		g.key = false
		return
	}
	top := &g.stk[len(g.stk)-1]
	if top.n > 0 {
		g.w.WriteByte(',')
	}
	top.n++
	if g.pretty {
		g.newline()
	}
}

func (g *Generator) newline() {
	g.w.WriteByte('\n')
	for range len(g.stk) {
		g.w.WriteString(g.indent)
	}
}
