// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package patch

import (
	"errors"

	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/jdom/pointer"
)

// A Builder accumulates the operations of a Patch. Paths are given in string
// form; a malformed path is reported by Build. The methods of a Builder
// return the builder itself so that calls may be chained:
//
//	p, err := patch.NewBuilder().
//	   Add("/a/-", dom.Int(1)).
//	   Move("/b", "/c").
//	   Build()
type Builder struct {
	patch Patch
	errs  []error
}

// NewBuilder returns a new empty Builder.
func NewBuilder() *Builder { return new(Builder) }

func (b *Builder) parse(op Op, s string) pointer.Pointer {
	p, err := pointer.Parse(s)
	if err != nil {
		b.errs = append(b.errs, &OpError{
			Index:   len(b.patch),
			Op:      string(op),
			Message: err.Error(),
			Err:     err,
		})
	}
	return p
}

func (b *Builder) withValue(op Op, path string, v dom.Value) *Builder {
	if v == nil {
		b.errs = append(b.errs, &OpError{Index: len(b.patch), Op: string(op), Message: `missing "value"`})
	}
	b.patch = append(b.patch, Operation{Op: op, Path: b.parse(op, path), Value: v})
	return b
}

func (b *Builder) withFrom(op Op, path, from string) *Builder {
	b.patch = append(b.patch, Operation{Op: op, Path: b.parse(op, path), From: b.parse(op, from)})
	return b
}

// Add adds an add operation.
func (b *Builder) Add(path string, v dom.Value) *Builder { return b.withValue(Add, path, v) }

// Replace adds a replace operation.
func (b *Builder) Replace(path string, v dom.Value) *Builder { return b.withValue(Replace, path, v) }

// Test adds a test operation.
func (b *Builder) Test(path string, v dom.Value) *Builder { return b.withValue(Test, path, v) }

// Remove adds a remove operation.
func (b *Builder) Remove(path string) *Builder {
	b.patch = append(b.patch, Operation{Op: Remove, Path: b.parse(Remove, path)})
	return b
}

// Move adds a move operation.
func (b *Builder) Move(path, from string) *Builder { return b.withFrom(Move, path, from) }

// Copy adds a copy operation.
func (b *Builder) Copy(path, from string) *Builder { return b.withFrom(Copy, path, from) }

// Build returns the accumulated patch, or an error describing every invalid
// operation that was added.
func (b *Builder) Build() (Patch, error) {
	if len(b.errs) != 0 {
		return nil, errors.Join(b.errs...)
	}
	return append(Patch(nil), b.patch...), nil
}
