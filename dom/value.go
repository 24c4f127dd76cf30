// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package dom defines an immutable tree representation of JSON values, along
// with readers and writers that convert between trees and JSON text.
//
// A Value is one of *Object, *Array, String, Number, Bool, or Null. Values
// are never modified once constructed. Methods that appear to modify a
// container, such as Object.With or Array.Remove, return a new container that
// shares the untouched children of the original.
package dom

import (
	"fmt"
	"iter"
	"slices"

	"github.com/creachadair/jdom"
)

// Kind identifies the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind Kind = iota
	FalseKind
	TrueKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	FalseKind:  "false",
	TrueKind:   "true",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid kind"
	}
	return kindStr[k]
}

// IsStructure reports whether k is ObjectKind or ArrayKind.
func (k Kind) IsStructure() bool { return k == ObjectKind || k == ArrayKind }

// A Value is an arbitrary JSON value.
type Value interface {
	// Kind reports the type of the value.
	Kind() Kind

	// JSON returns the compact JSON encoding of the value.
	JSON() string

	isValue()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// An Object is an ordered collection of members with unique keys.
// The zero value is an empty object.
type Object struct {
	members []Member
	index   map[string]int // key → offset in members
}

// NewObject constructs an object from the given members, in order. If a key
// repeats, the last value is kept in the position of the first.
func NewObject(ms ...Member) *Object {
	o := &Object{members: make([]Member, 0, len(ms)), index: make(map[string]int, len(ms))}
	for _, m := range ms {
		o.put(m.Key, m.Value)
	}
	return o
}

// put adds or replaces the member with the given key. It must only be used
// while o is under construction.
func (o *Object) put(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

func (*Object) isValue() {}

// Kind satisfies the Value interface.
func (*Object) Kind() Kind { return ObjectKind }

// JSON satisfies the Value interface.
func (o *Object) JSON() string { return encodeString(o) }

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", o.Len()) }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.members) }

// Get reports the value of the member with the given key, if it exists.
func (o *Object) Get(key string) (Value, bool) {
	if i, ok := o.index[key]; ok {
		return o.members[i].Value, true
	}
	return nil, false
}

// Has reports whether o has a member with the given key.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Keys returns the keys of o in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the members of o in order.
func (o *Object) Members() []Member { return slices.Clone(o.members) }

// All iterates over the members of o in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// With returns a copy of o in which key has the value v. If o already has a
// member with that key, its value is replaced in place; otherwise the member
// is added at the end.
func (o *Object) With(key string, v Value) *Object {
	out := &Object{members: make([]Member, len(o.members), len(o.members)+1)}
	copy(out.members, o.members)
	if i, ok := o.index[key]; ok {
		out.index = o.index
		out.members[i].Value = v
		return out
	}
	out.index = make(map[string]int, len(o.members)+1)
	for k, i := range o.index {
		out.index[k] = i
	}
	out.index[key] = len(out.members)
	out.members = append(out.members, Member{Key: key, Value: v})
	return out
}

// Without returns a copy of o without the member with the given key.
// If o has no such member, Without returns o.
func (o *Object) Without(key string) *Object {
	i, ok := o.index[key]
	if !ok {
		return o
	}
	ms := make([]Member, 0, len(o.members)-1)
	ms = append(ms, o.members[:i]...)
	ms = append(ms, o.members[i+1:]...)
	return NewObject(ms...)
}

// An Array is an ordered sequence of values. The zero value is an empty array.
type Array struct {
	elems []Value
}

// NewArray constructs an array of the given values, in order.
func NewArray(vs ...Value) *Array { return &Array{elems: slices.Clone(vs)} }

func (*Array) isValue() {}

// Kind satisfies the Value interface.
func (*Array) Kind() Kind { return ArrayKind }

// JSON satisfies the Value interface.
func (a *Array) JSON() string { return encodeString(a) }

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", a.Len()) }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.elems) }

// At returns the element of a at offset i. It panics if i is out of range.
func (a *Array) At(i int) Value { return a.elems[i] }

// Values returns a copy of the elements of a.
func (a *Array) Values() []Value { return slices.Clone(a.elems) }

// All iterates over the elements of a in order.
func (a *Array) All() iter.Seq2[int, Value] { return slices.All(a.elems) }

// Set returns a copy of a with the element at offset i replaced by v.
// It panics if i is out of range.
func (a *Array) Set(i int, v Value) *Array {
	out := slices.Clone(a.elems)
	out[i] = v
	return &Array{elems: out}
}

// Insert returns a copy of a with v inserted at offset i, shifting the
// element at i and any after it up by one. Offset a.Len() appends.
// It panics if i is out of range.
func (a *Array) Insert(i int, v Value) *Array {
	out := make([]Value, 0, len(a.elems)+1)
	out = append(out, a.elems[:i]...)
	out = append(out, v)
	out = append(out, a.elems[i:]...)
	return &Array{elems: out}
}

// Append returns a copy of a with v added at the end.
func (a *Array) Append(v Value) *Array { return a.Insert(len(a.elems), v) }

// Remove returns a copy of a without the element at offset i.
// It panics if i is out of range.
func (a *Array) Remove(i int) *Array {
	_ = a.elems[i]
	out := make([]Value, 0, len(a.elems)-1)
	out = append(out, a.elems[:i]...)
	out = append(out, a.elems[i+1:]...)
	return &Array{elems: out}
}

// A String is a string value.
type String string

func (String) isValue() {}

// Kind satisfies the Value interface.
func (String) Kind() Kind { return StringKind }

// JSON satisfies the Value interface.
func (s String) JSON() string { return jdom.Quote(string(s)) }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) isValue() {}

// Kind satisfies the Value interface.
func (b Bool) Kind() Kind {
	if b {
		return TrueKind
	}
	return FalseKind
}

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Null represents the null constant.
type Null struct{}

func (Null) isValue() {}

// Kind satisfies the Value interface.
func (Null) Kind() Kind { return NullKind }

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// IsNull reports whether v is nil or the null constant.
func IsNull(v Value) bool { return v == nil || v.Kind() == NullKind }

// Describe returns a short human-readable description of v for use in
// diagnostics. Long values are truncated.
func Describe(v Value) string {
	if v == nil {
		return "absent"
	}
	s := []rune(v.JSON())
	if len(s) > 40 {
		return v.Kind().String() + " " + string(s[:37]) + "..."
	}
	return v.Kind().String() + " " + string(s)
}
