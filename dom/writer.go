// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jdom"
	"github.com/creachadair/mds/stack"
)

// A writeFrame is a container whose contents are being written.
type writeFrame struct {
	obj  *Object
	arr  *Array
	next int // offset of the next member or element
}

func (f *writeFrame) len() int {
	if f.obj != nil {
		return f.obj.Len()
	}
	return f.arr.Len()
}

// Write writes v to g as a sequence of generator calls. Containers are
// traversed with an explicit stack, so the depth of v is bounded only by
// memory. Write does not flush or close g.
func Write(g *jdom.Generator, v Value) error {
	var stk stack.Stack[*writeFrame]

	// emit writes a single value, or starts a container and pushes its frame.
	emit := func(v Value) error {
		switch t := v.(type) {
		case *Object:
			stk.Push(&writeFrame{obj: t})
			return g.StartObject()
		case *Array:
			stk.Push(&writeFrame{arr: t})
			return g.StartArray()
		case String:
			return g.WriteString(string(t))
		case Number:
			return g.WriteNumber(t.Text())
		case Bool:
			return g.WriteBool(bool(t))
		case Null:
			return g.WriteNull()
		}
		return fmt.Errorf("unsupported value type %T", v)
	}

	if err := emit(v); err != nil {
		return err
	}
	for !stk.IsEmpty() {
		f := stk.Top()
		if f.next == f.len() {
			stk.Pop()
			if err := g.End(); err != nil {
				return err
			}
			continue
		}
		i := f.next
		f.next++
		if f.obj != nil {
			m := f.obj.members[i]
			if err := g.Key(m.Key); err != nil {
				return err
			}
			if err := emit(m.Value); err != nil {
				return err
			}
		} else if err := emit(f.arr.elems[i]); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the JSON encoding of v to w as configured by cfg. The output
// is flushed, but w is not closed.
func Encode(w io.Writer, v Value, cfg jdom.Config) error {
	g := cfg.NewGenerator(w)
	if err := Write(g, v); err != nil {
		return err
	}
	return g.Flush()
}

func encodeString(v Value) string {
	var sb strings.Builder
	if err := Encode(&sb, v, jdom.Config{}); err != nil {
		panic(fmt.Sprintf("dom: encoding %T: %v", v, err))
	}
	return sb.String()
}

// A Writer writes a single JSON document from a tree. Like a Reader, a Writer
// may be used only once.
type Writer struct {
	g      *jdom.Generator
	used   bool
	closed bool
}

// NewWriter constructs a Writer that emits to w as configured by cfg. The
// Writer takes ownership of w: if w implements io.Closer, it is closed when
// the Writer is closed after a complete document.
func NewWriter(w io.Writer, cfg jdom.Config) *Writer { return &Writer{g: cfg.NewGenerator(w)} }

// Write writes v as the document.
func (w *Writer) Write(v Value) error {
	if w.closed {
		return fmt.Errorf("write after close: %w", ErrIllegalState)
	} else if w.used {
		return fmt.Errorf("document already written: %w", ErrIllegalState)
	}
	w.used = true
	if err := Write(w.g, v); err != nil {
		return err
	}
	return w.g.Flush()
}

// WriteObject writes o as the document.
func (w *Writer) WriteObject(o *Object) error { return w.Write(o) }

// WriteArray writes a as the document.
func (w *Writer) WriteArray(a *Array) error { return w.Write(a) }

// Close completes the document and closes the underlying writer. If no
// document was written, Close reports an error and leaves the underlying
// writer open. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.g.Close()
}
