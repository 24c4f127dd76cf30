// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package patch implements JSON Patch (RFC 6902) over dom values.
//
// A Patch is an ordered sequence of operations. Applying a patch folds the
// operations over a document, each operation producing a new document from
// the result of the previous one. The input document is never modified, and
// if any operation fails, Apply reports an error and no result.
package patch

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/jdom/pointer"
)

// Op is the name of a patch operation.
type Op string

// The operations defined by RFC 6902.
const (
	Add     Op = "add"
	Remove  Op = "remove"
	Replace Op = "replace"
	Move    Op = "move"
	Copy    Op = "copy"
	Test    Op = "test"
)

// Valid reports whether o is one of the defined operations.
func (o Op) Valid() bool {
	switch o {
	case Add, Remove, Replace, Move, Copy, Test:
		return true
	}
	return false
}

// hasValue reports whether operations of type o require a value.
func (o Op) hasValue() bool { return o == Add || o == Replace || o == Test }

// hasFrom reports whether operations of type o require a source pointer.
func (o Op) hasFrom() bool { return o == Move || o == Copy }

// ErrMoveIntoChild is reported by a move operation whose target lies inside
// the value being moved.
var ErrMoveIntoChild = errors.New("cannot move a value into one of its children")

// Operation is a single patch step.
type Operation struct {
	Op    Op
	Path  pointer.Pointer
	From  pointer.Pointer // for move and copy
	Value dom.Value       // for add, replace, and test
}

func (o Operation) String() string {
	switch {
	case o.Op.hasFrom():
		return fmt.Sprintf("%s %q from %q", o.Op, o.Path, o.From)
	case o.Op.hasValue():
		return fmt.Sprintf("%s %q value %s", o.Op, o.Path, dom.Describe(o.Value))
	default:
		return fmt.Sprintf("%s %q", o.Op, o.Path)
	}
}

// check reports an *OpError if o is not a well-formed operation.
func (o Operation) check() *OpError {
	if !o.Op.Valid() {
		return &OpError{Op: string(o.Op), Message: "unknown operation"}
	} else if o.Op.hasValue() && o.Value == nil {
		return &OpError{Op: string(o.Op), Message: `missing "value"`}
	}
	return nil
}

// Apply applies o to doc and returns the resulting document. A malformed
// operation is reported as an *OpError and doc is not examined.
func (o Operation) Apply(doc dom.Value) (dom.Value, error) {
	if oerr := o.check(); oerr != nil {
		return nil, oerr
	}
	switch o.Op {
	case Add:
		return o.Path.Add(doc, o.Value)
	case Remove:
		return o.Path.Remove(doc)
	case Replace:
		return o.Path.Replace(doc, o.Value)
	case Copy:
		v, err := o.From.Get(doc)
		if err != nil {
			return nil, err
		}
		return o.Path.Add(doc, v)
	case Move:
		v, err := o.From.Get(doc)
		if err != nil {
			return nil, err
		} else if o.Path.Equal(o.From) {
			return doc, nil
		} else if o.Path.HasPrefix(o.From) {
			return nil, ErrMoveIntoChild
		}
		rest, err := o.From.Remove(doc)
		if err != nil {
			return nil, err
		}
		return o.Path.Add(rest, v)
	}

	// Test
	got, err := o.Path.Get(doc)
	if err != nil {
		return nil, err
	} else if !dom.Equal(got, o.Value) {
		return nil, &TestError{Path: o.Path, Want: o.Value, Got: got}
	}
	return doc, nil
}

// A Patch is an ordered sequence of operations.
type Patch []Operation

// Apply applies each operation of p in order to doc, and returns the final
// document. If an operation fails, Apply returns nil and an *ApplyError
// identifying the operation. In either case doc is not modified.
func (p Patch) Apply(doc dom.Value) (dom.Value, error) {
	cur := doc
	for i, op := range p {
		if oerr := op.check(); oerr != nil {
			oerr.Index = i
			return nil, &ApplyError{Index: i, Op: op, Err: oerr}
		}
		next, err := op.Apply(cur)
		if err != nil {
			return nil, &ApplyError{Index: i, Op: op, Err: err}
		}
		cur = next
	}
	return cur, nil
}

// ToValue returns the representation of p as a JSON array.
func (p Patch) ToValue() *dom.Array {
	ab := dom.NewArrayBuilder()
	for _, op := range p {
		ob := dom.NewObjectBuilder().
			AddString("op", string(op.Op)).
			AddString("path", op.Path.String())
		if op.Op.hasFrom() {
			ob.AddString("from", op.From.String())
		}
		if op.Op.hasValue() {
			ob.Add("value", op.Value)
		}
		ab.AddObject(ob)
	}
	return ab.Build()
}

// JSON returns the compact JSON encoding of p.
func (p Patch) JSON() string { return p.ToValue().JSON() }

// Parse reads a patch document from r.
func Parse(r io.Reader) (Patch, error) {
	v, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromValue(v)
}

// ParseString reads a patch document from s.
func ParseString(s string) (Patch, error) { return Parse(strings.NewReader(s)) }

// FromValue converts a JSON array of operation objects into a Patch. Every
// operation is checked before FromValue returns: a missing or malformed
// member, or an unknown operation name, is reported as an *OpError.
func FromValue(v dom.Value) (Patch, error) {
	arr, ok := v.(*dom.Array)
	if !ok {
		return nil, fmt.Errorf("patch must be an array, not %v", dom.Describe(v))
	}
	p := make(Patch, 0, arr.Len())
	for i, elt := range arr.All() {
		op, err := operationFromValue(elt)
		if err != nil {
			err.Index = i
			return nil, err
		}
		p = append(p, op)
	}
	return p, nil
}

func operationFromValue(v dom.Value) (Operation, *OpError) {
	obj, ok := v.(*dom.Object)
	if !ok {
		return Operation{}, &OpError{Message: "operation must be an object, not " + v.Kind().String()}
	}
	name, err := stringMember(obj, "op")
	if err != nil {
		return Operation{}, err
	}
	op := Operation{Op: Op(name)}
	if !op.Op.Valid() {
		return op, &OpError{Op: name, Message: "unknown operation"}
	}
	path, err := pointerMember(obj, "path")
	if err != nil {
		err.Op = name
		return op, err
	}
	op.Path = path
	if op.Op.hasFrom() {
		from, err := pointerMember(obj, "from")
		if err != nil {
			err.Op = name
			return op, err
		}
		op.From = from
	}
	if op.Op.hasValue() {
		val, ok := obj.Get("value")
		if !ok {
			return op, &OpError{Op: name, Message: `missing "value"`}
		}
		op.Value = val
	}
	return op, nil
}

func stringMember(obj *dom.Object, key string) (string, *OpError) {
	v, ok := obj.Get(key)
	if !ok {
		return "", &OpError{Message: fmt.Sprintf("missing %q", key)}
	}
	s, ok := v.(dom.String)
	if !ok {
		return "", &OpError{Message: fmt.Sprintf("%q must be a string, not %v", key, v.Kind())}
	}
	return string(s), nil
}

func pointerMember(obj *dom.Object, key string) (pointer.Pointer, *OpError) {
	s, oerr := stringMember(obj, key)
	if oerr != nil {
		return nil, oerr
	}
	p, err := pointer.Parse(s)
	if err != nil {
		return nil, &OpError{Message: fmt.Sprintf("invalid %q: %v", key, err), Err: err}
	}
	return p, nil
}
