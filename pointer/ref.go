// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package pointer

import (
	"strconv"
	"strings"

	"github.com/creachadair/jdom/dom"
)

// RefKind identifies the kind of location a Ref denotes.
type RefKind byte

const (
	RootRef    RefKind = iota // the document root
	MemberRef                 // a member of an object
	ElementRef                // an element of an array, or the append position
)

func (k RefKind) String() string {
	switch k {
	case RootRef:
		return "root"
	case MemberRef:
		return "member"
	case ElementRef:
		return "element"
	default:
		return "invalid"
	}
}

// A Ref is a resolved location in a document. The location need not hold a
// value: a Ref may denote an absent object member, or the position one past
// the end of an array.
//
// The Add, Replace, and Remove methods of a Ref return a new document root.
// The document the Ref was resolved against is not modified.
type Ref struct {
	ptr  Pointer
	root dom.Value

	// path[i] is the container addressed by ptr[:i]. For a non-root Ref the
	// last entry is the parent of the location.
	path []dom.Value
	idx  []int // array offsets for the tokens of ptr; unused for members
}

// Resolve resolves ptr against the document root. Every token but the last
// must refer to an existing value. The last token must name a member of an
// object, or an index of an array no greater than its length (or "-").
func Resolve(root dom.Value, ptr Pointer) (*Ref, error) {
	ref := &Ref{ptr: ptr, root: root}
	if ptr.IsRoot() {
		return ref, nil
	}
	ref.path = make([]dom.Value, 0, len(ptr))
	ref.idx = make([]int, len(ptr))
	cur := root
	for i, tok := range ptr {
		ref.path = append(ref.path, cur)
		last := i == len(ptr)-1
		switch t := cur.(type) {
		case *dom.Object:
			if last {
				break
			}
			next, ok := t.Get(tok)
			if !ok {
				return nil, ref.errorf("resolve", ErrNotFound)
			}
			cur = next
		case *dom.Array:
			pos, err := arrayIndex(tok, t.Len())
			if err != nil {
				return nil, ref.errorf("resolve", err)
			}
			ref.idx[i] = pos
			if last {
				break
			} else if pos == t.Len() {
				return nil, ref.errorf("resolve", ErrRange)
			}
			cur = t.At(pos)
		default:
			return nil, ref.errorf("resolve", ErrNotContainer)
		}
	}
	return ref, nil
}

// arrayIndex parses an array reference token for an array of length n. The
// result is in the range [0, n], where n denotes the append position.
func arrayIndex(tok string, n int) (int, error) {
	if tok == AppendIndex {
		return n, nil
	}
	digits := strings.TrimPrefix(tok, "-")
	if digits == "" || (digits[0] == '0' && len(digits) > 1) {
		return 0, ErrIndex
	}
	for _, c := range []byte(digits) {
		if c < '0' || c > '9' {
			return 0, ErrIndex
		}
	}
	v, err := strconv.Atoi(digits)
	if err != nil || v > n || digits != tok {
		return 0, ErrRange
	}
	return v, nil
}

func (r *Ref) errorf(op string, err error) error {
	return &Error{Op: op, Pointer: r.ptr.String(), Err: err}
}

// Pointer returns the pointer r was resolved from.
func (r *Ref) Pointer() Pointer { return r.ptr }

// Kind reports the kind of location r denotes.
func (r *Ref) Kind() RefKind {
	switch r.Parent().(type) {
	case *dom.Object:
		return MemberRef
	case *dom.Array:
		return ElementRef
	}
	return RootRef
}

// Parent returns the container of the location r denotes, or nil for the root.
func (r *Ref) Parent() dom.Value {
	if len(r.path) == 0 {
		return nil
	}
	return r.path[len(r.path)-1]
}

// Index reports the array offset of an element reference. An offset equal to
// the length of the array denotes the append position. For other kinds of
// reference, Index returns -1.
func (r *Ref) Index() int {
	if r.Kind() != ElementRef {
		return -1
	}
	return r.idx[len(r.idx)-1]
}

// Exists reports whether a value is present at the location r denotes.
func (r *Ref) Exists() bool {
	switch p := r.Parent().(type) {
	case *dom.Object:
		return p.Has(r.ptr.Last())
	case *dom.Array:
		return r.Index() < p.Len()
	}
	return r.root != nil
}

// Get returns the value at the location r denotes.
func (r *Ref) Get() (dom.Value, error) {
	switch p := r.Parent().(type) {
	case *dom.Object:
		if v, ok := p.Get(r.ptr.Last()); ok {
			return v, nil
		}
		return nil, r.errorf("get", ErrNotFound)
	case *dom.Array:
		if i := r.Index(); i < p.Len() {
			return p.At(i), nil
		}
		return nil, r.errorf("get", ErrRange)
	}
	return r.root, nil
}

// Add returns a new document with v added at the location r denotes. An
// object member is added or, if it exists, replaced. An array element is
// inserted before the element at its index, or appended at the append
// position. Adding at the root replaces the whole document, and v must be an
// object or array. Add reports ErrNoValue if v is nil.
func (r *Ref) Add(v dom.Value) (dom.Value, error) {
	if v == nil {
		return nil, r.errorf("add", ErrNoValue)
	}
	switch p := r.Parent().(type) {
	case *dom.Object:
		return r.rebuild(p.With(r.ptr.Last(), v)), nil
	case *dom.Array:
		return r.rebuild(p.Insert(r.Index(), v)), nil
	}
	if !v.Kind().IsStructure() {
		return nil, r.errorf("add", ErrNotStructure)
	}
	return v, nil
}

// Replace returns a new document with the existing value at the location r
// denotes replaced by v. Replacing the root returns v. Replace reports
// ErrNoValue if v is nil.
func (r *Ref) Replace(v dom.Value) (dom.Value, error) {
	if v == nil {
		return nil, r.errorf("replace", ErrNoValue)
	}
	switch p := r.Parent().(type) {
	case *dom.Object:
		if !p.Has(r.ptr.Last()) {
			return nil, r.errorf("replace", ErrNotFound)
		}
		return r.rebuild(p.With(r.ptr.Last(), v)), nil
	case *dom.Array:
		i := r.Index()
		if i >= p.Len() {
			return nil, r.errorf("replace", ErrRange)
		}
		return r.rebuild(p.Set(i, v)), nil
	}
	return v, nil
}

// Remove returns a new document without the value at the location r
// denotes. The root cannot be removed.
func (r *Ref) Remove() (dom.Value, error) {
	switch p := r.Parent().(type) {
	case *dom.Object:
		if !p.Has(r.ptr.Last()) {
			return nil, r.errorf("remove", ErrNotFound)
		}
		return r.rebuild(p.Without(r.ptr.Last())), nil
	case *dom.Array:
		i := r.Index()
		if i >= p.Len() {
			return nil, r.errorf("remove", ErrRange)
		}
		return r.rebuild(p.Remove(i)), nil
	}
	return nil, r.errorf("remove", ErrRoot)
}

// rebuild returns a copy of the document in which the parent of r is
// replaced by c. Only the containers on the path to the parent are copied.
func (r *Ref) rebuild(c dom.Value) dom.Value {
	for i := len(r.path) - 2; i >= 0; i-- {
		switch p := r.path[i].(type) {
		case *dom.Object:
			c = p.With(r.ptr[i], c)
		case *dom.Array:
			c = p.Set(r.idx[i], c)
		}
	}
	return c
}
