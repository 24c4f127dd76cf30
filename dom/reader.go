// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jdom"
	"github.com/creachadair/mds/stack"
)

// ErrIllegalState is reported by a Reader or Writer used more than once, or
// after it has been closed.
var ErrIllegalState = jdom.ErrIllegalState

// Parse parses a single JSON document from r with the default configuration.
func Parse(r io.Reader) (Value, error) { return NewReader(r, jdom.Config{}).Read() }

// ParseString parses a single JSON document from s.
func ParseString(s string) (Value, error) { return Parse(strings.NewReader(s)) }

// ParseBytes parses a single JSON document from data. The encoding of data is
// detected from its first bytes.
func ParseBytes(data []byte) (Value, error) { return Parse(bytes.NewReader(data)) }

// MustParseString is as ParseString, but panics on error.
func MustParseString(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// A Reader reads a single JSON document into a tree. A Reader may be read
// only once; the source is closed when the read completes, whether or not it
// succeeds.
type Reader struct {
	r      io.Reader
	cfg    jdom.Config
	used   bool
	closed bool
}

// NewReader constructs a Reader that consumes r as configured by cfg. The
// Reader takes ownership of r: if r implements io.Closer, it is closed when
// the read completes or the Reader is closed.
func NewReader(r io.Reader, cfg jdom.Config) *Reader { return &Reader{r: r, cfg: cfg} }

// Read reads a document of any type.
func (r *Reader) Read() (Value, error) {
	if r.closed {
		return nil, fmt.Errorf("read after close: %w", ErrIllegalState)
	} else if r.used {
		return nil, fmt.Errorf("document already read: %w", ErrIllegalState)
	}
	r.used = true
	defer r.Close()

	p, err := r.cfg.NewParser(r.r)
	if err != nil {
		return nil, err
	}
	h := &treeHandler{policy: r.cfg.DuplicateKeys}
	if err := jdom.NewStreamWithParser(p).Parse(h); err != nil {
		return nil, err
	}
	return h.root, nil
}

// ReadObject reads a document that must be an object.
func (r *Reader) ReadObject() (*Object, error) {
	v, err := r.Read()
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("document is %v, not object", v.Kind())
	}
	return obj, nil
}

// ReadArray reads a document that must be an array.
func (r *Reader) ReadArray() (*Array, error) {
	v, err := r.Read()
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, fmt.Errorf("document is %v, not array", v.Kind())
	}
	return arr, nil
}

// Close closes the source of r if it implements io.Closer. After Close, any
// read reports ErrIllegalState. Close is idempotent.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// A treeFrame is a container under construction.
type treeFrame struct {
	obj  *Object // nil for an array
	elts []Value
	key  string // key of the member being read
}

// A treeHandler implements the jdom.Handler interface to construct a tree.
type treeHandler struct {
	policy jdom.DuplicateKeyPolicy
	stk    stack.Stack[*treeFrame]
	root   Value
}

// put adds a complete value to the innermost open container, or makes it the
// root if there is none.
func (h *treeHandler) put(v Value) {
	f := h.stk.Top()
	if f == nil {
		h.root = v
	} else if f.obj == nil {
		f.elts = append(f.elts, v)
	} else if i, ok := f.obj.index[f.key]; ok {
		if h.policy == jdom.KeepLast {
			f.obj.members[i].Value = v
		}
	} else {
		f.obj.put(f.key, v)
	}
}

func (h *treeHandler) BeginObject(jdom.Anchor) error {
	h.stk.Push(&treeFrame{obj: &Object{index: make(map[string]int)}})
	return nil
}

func (h *treeHandler) EndObject(jdom.Anchor) error {
	f, _ := h.stk.Pop()
	h.put(f.obj)
	return nil
}

func (h *treeHandler) BeginArray(jdom.Anchor) error {
	h.stk.Push(new(treeFrame))
	return nil
}

func (h *treeHandler) EndArray(jdom.Anchor) error {
	f, _ := h.stk.Pop()
	h.put(&Array{elems: f.elts})
	return nil
}

func (h *treeHandler) BeginMember(loc jdom.Anchor) error {
	key, err := jdom.Unquote(string(loc.Text()))
	if err != nil {
		return err
	}
	f := h.stk.Top()
	f.key = string(key)
	if h.policy == jdom.RejectDuplicates && f.obj.Has(f.key) {
		pos := loc.Location()
		return &jdom.SyntaxError{
			Kind:     jdom.GrammarError,
			Location: pos.First,
			Offset:   pos.Pos,
			Message:  fmt.Sprintf("duplicate key %q", f.key),
		}
	}
	return nil
}

func (h *treeHandler) EndMember(jdom.Anchor) error { return nil }

func (h *treeHandler) Value(loc jdom.Anchor) error {
	switch loc.Event() {
	case jdom.ValueString:
		s, err := jdom.Unquote(string(loc.Text()))
		if err != nil {
			return err
		}
		h.put(String(s))
	case jdom.ValueNumber:
		h.put(Number{text: string(loc.Text())})
	case jdom.ValueTrue:
		h.put(Bool(true))
	case jdom.ValueFalse:
		h.put(Bool(false))
	case jdom.ValueNull:
		h.put(Null{})
	default:
		return fmt.Errorf("unexpected event %v", loc.Event())
	}
	return nil
}

func (h *treeHandler) EndOfInput(jdom.Anchor) {}
