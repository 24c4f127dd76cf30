// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/jdom/internal/escape"
	"github.com/creachadair/mds/stack"
	"github.com/shopspring/decimal"
	"go4.org/mem"
)

// genFrame records an open container of a Generator.
type genFrame struct {
	object bool
	n      int // number of elements or members written
}

// A Generator writes a single JSON document to an output stream from a
// sequence of calls. It enforces the structure of the document: a member of
// an object must be preceded by a call to Key, containers must be balanced,
// and nothing may follow the root value.
//
// Sequencing errors have concrete type *GenerationError. Output errors from
// the underlying writer are returned as-is.
//
// A Generator is not safe for concurrent use by multiple goroutines.
type Generator struct {
	w    *bufio.Writer
	sink io.Writer
	stk  stack.Stack[*genFrame]

	indent  string // if non-empty, pretty-print with this unit
	hasKey  bool   // a key has been written and awaits its value
	done    bool   // the root value is complete
	closed  bool
	scratch []byte
}

// NewGenerator constructs a Generator that writes compact output to w.
// The generator takes ownership of w: if w implements io.Closer, it is closed
// when a complete document is closed.
func NewGenerator(w io.Writer) *Generator {
	return &Generator{w: bufio.NewWriter(w), sink: w}
}

// Depth reports the number of containers currently open.
func (g *Generator) Depth() int { return g.stk.Len() }

// StartObject begins a new object.
func (g *Generator) StartObject() error { return g.start(true) }

// StartArray begins a new array.
func (g *Generator) StartArray() error { return g.start(false) }

func (g *Generator) start(object bool) error {
	if err := g.beginValue(); err != nil {
		return err
	}
	g.stk.Push(&genFrame{object: object})
	if object {
		return g.w.WriteByte('{')
	}
	return g.w.WriteByte('[')
}

// Key writes the key of an object member. The next call must write its value.
func (g *Generator) Key(name string) error {
	if err := g.check(); err != nil {
		return err
	}
	f := g.stk.Top()
	if f == nil || !f.object {
		return generationErrorf("key %q outside an object", name)
	} else if g.hasKey {
		return generationErrorf("key %q follows a key without a value", name)
	}
	g.separate(f)
	g.hasKey = true
	g.scratch = escape.AppendQuote(g.scratch[:0], mem.S(name))
	if _, err := g.w.Write(g.scratch); err != nil {
		return err
	}
	if g.indent != "" {
		_, err := g.w.WriteString(": ")
		return err
	}
	return g.w.WriteByte(':')
}

// End closes the innermost open container.
func (g *Generator) End() error {
	if err := g.check(); err != nil {
		return err
	}
	f, ok := g.stk.Pop()
	if !ok {
		return generationErrorf("end without a matching start")
	} else if f.object && g.hasKey {
		g.stk.Push(f)
		return generationErrorf("end of object after a key without a value")
	}
	if g.indent != "" && f.n > 0 {
		g.newline()
	}
	delim := byte(']')
	if f.object {
		delim = '}'
	}
	err := g.w.WriteByte(delim)
	g.endValue()
	return err
}

// WriteString writes a string value.
func (g *Generator) WriteString(s string) error {
	return g.scalarBytes(escape.AppendQuote(g.scratch[:0], mem.S(s)))
}

// WriteInt writes an integer value.
func (g *Generator) WriteInt(v int64) error {
	return g.scalarBytes(strconv.AppendInt(g.scratch[:0], v, 10))
}

// WriteUint writes an unsigned integer value.
func (g *Generator) WriteUint(v uint64) error {
	return g.scalarBytes(strconv.AppendUint(g.scratch[:0], v, 10))
}

// WriteFloat writes a floating-point value in its shortest representation.
// If v is NaN or infinite, WriteFloat reports a *NumberError and the state of
// the generator is unchanged.
func (g *Generator) WriteFloat(v float64) error {
	if err := g.check(); err != nil {
		return err
	} else if err := CheckFloat(v); err != nil {
		return err
	}
	return g.scalarBytes(strconv.AppendFloat(g.scratch[:0], v, 'g', -1, 64))
}

// WriteDecimal writes an exact decimal value.
func (g *Generator) WriteDecimal(d decimal.Decimal) error { return g.scalar(d.String()) }

// WriteNumber writes the lexical form of a number verbatim. If text is not a
// valid JSON number, WriteNumber reports a *GenerationError and the state of
// the generator is unchanged.
func (g *Generator) WriteNumber(text string) error {
	if !IsNumber(text) {
		return generationErrorf("invalid number %q", text)
	}
	return g.scalar(text)
}

// WriteBool writes a Boolean constant.
func (g *Generator) WriteBool(v bool) error {
	if v {
		return g.scalar("true")
	}
	return g.scalar("false")
}

// WriteNull writes the null constant.
func (g *Generator) WriteNull() error { return g.scalar("null") }

// Field writes an object member whose value is a scalar. The concrete type
// of v must be nil, bool, string, a built-in integer or float type, or
// decimal.Decimal.
func (g *Generator) Field(key string, v any) error {
	if err := g.check(); err != nil {
		return err
	}
	text, err := scalarText(v)
	if err != nil {
		return err
	}
	if err := g.Key(key); err != nil {
		return err
	}
	return g.scalar(text)
}

func scalarText(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(t), nil
	case string:
		return Quote(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return floatText(float64(t), 32)
	case float64:
		return floatText(t, 64)
	case decimal.Decimal:
		return t.String(), nil
	}
	return "", generationErrorf("unsupported field type %T", v)
}

func floatText(f float64, bits int) (string, error) {
	if err := CheckFloat(f); err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'g', -1, bits), nil
}

// Flush writes any buffered output to the underlying writer.
func (g *Generator) Flush() error { return g.w.Flush() }

// Close completes the document. If the document is incomplete, Close flushes
// what has been written and reports a *GenerationError, but does not close
// the underlying writer. Otherwise, Close flushes the output and closes the
// underlying writer if it implements io.Closer.
func (g *Generator) Close() error {
	if g.closed {
		return generationErrorf("generator is already closed")
	}
	g.closed = true
	if !g.done {
		msg := "close with no value written"
		if !g.stk.IsEmpty() {
			msg = fmt.Sprintf("close with %d unterminated containers", g.stk.Len())
		}
		return &GenerationError{Message: msg, Err: g.w.Flush()}
	}
	if err := g.w.Flush(); err != nil {
		return err
	}
	if c, ok := g.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// check reports an error if the generator does not accept further writes.
func (g *Generator) check() error {
	if g.closed {
		return generationErrorf("write after close")
	} else if g.done {
		return generationErrorf("write after the end of the document")
	}
	return nil
}

// beginValue verifies that a value is permitted at this point and writes any
// separator that must precede it.
func (g *Generator) beginValue() error {
	if err := g.check(); err != nil {
		return err
	}
	f := g.stk.Top()
	if f == nil {
		return nil
	} else if f.object {
		if !g.hasKey {
			return generationErrorf("value in an object without a key")
		}
		g.hasKey = false
		return nil
	}
	g.separate(f)
	return nil
}

// separate writes the separator before the next element of f.
func (g *Generator) separate(f *genFrame) {
	if f.n > 0 {
		g.w.WriteByte(',')
	}
	f.n++
	if g.indent != "" {
		g.newline()
	}
}

func (g *Generator) newline() {
	g.w.WriteByte('\n')
	g.w.WriteString(strings.Repeat(g.indent, g.stk.Len()))
}

func (g *Generator) endValue() {
	if g.stk.IsEmpty() {
		g.done = true
	}
}

func (g *Generator) scalar(text string) error {
	if err := g.beginValue(); err != nil {
		return err
	}
	_, err := g.w.WriteString(text)
	g.endValue()
	return err
}

func (g *Generator) scalarBytes(text []byte) error {
	if err := g.beginValue(); err != nil {
		return err
	}
	_, err := g.w.Write(text)
	g.scratch = text
	g.endValue()
	return err
}
