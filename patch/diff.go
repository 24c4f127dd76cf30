// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package patch

import (
	"slices"
	"strconv"

	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/jdom/pointer"
	"github.com/creachadair/mds/mapset"
)

// Diff returns a patch that transforms src into dst, so that applying the
// result to src yields a value equal to dst.
//
// Objects are compared member by member, in lexicographic order of keys.
// Arrays are compared position by position over their common prefix; extra
// elements of src are removed from the end, and extra elements of dst are
// appended. An insertion or deletion in the middle of an array is therefore
// reported as a sequence of replacements rather than a single operation.
func Diff(src, dst dom.Value) Patch {
	c := &collector{patch: make(Patch, 0)}
	c.diff(src, dst)
	return c.patch
}

type collector struct {
	path  pointer.Pointer
	patch Patch
}

func (c *collector) at(token string) pointer.Pointer { return c.path.Append(token) }

func (c *collector) push(token string) { c.path = append(c.path, token) }

func (c *collector) pop() { c.path = c.path[:len(c.path)-1] }

func (c *collector) emit(op Operation) { c.patch = append(c.patch, op) }

func (c *collector) replaceOp(v dom.Value) {
	c.emit(Operation{Op: Replace, Path: slices.Clone(c.path), Value: v})
}

func (c *collector) addOp(token string, v dom.Value) {
	c.emit(Operation{Op: Add, Path: c.at(token), Value: v})
}

func (c *collector) removeOp(token string) {
	c.emit(Operation{Op: Remove, Path: c.at(token)})
}

func (c *collector) diff(src, dst dom.Value) {
	if dom.Equal(src, dst) {
		return
	}
	switch s := src.(type) {
	case *dom.Object:
		if d, ok := dst.(*dom.Object); ok {
			c.diffObjects(s, d)
			return
		}
	case *dom.Array:
		if d, ok := dst.(*dom.Array); ok {
			c.diffArrays(s, d)
			return
		}
	}
	c.replaceOp(dst)
}

func (c *collector) diffObjects(src, dst *dom.Object) {
	keys := mapset.New(src.Keys()...)
	keys.Add(dst.Keys()...)
	sorted := keys.Slice()
	slices.Sort(sorted)
	for _, key := range sorted {
		sv, inSrc := src.Get(key)
		dv, inDst := dst.Get(key)
		switch {
		case !inDst:
			c.removeOp(key)
		case !inSrc:
			c.addOp(key, dv)
		default:
			c.push(key)
			c.diff(sv, dv)
			c.pop()
		}
	}
}

func (c *collector) diffArrays(src, dst *dom.Array) {
	n := min(src.Len(), dst.Len())
	for i := range n {
		c.push(strconv.Itoa(i))
		c.diff(src.At(i), dst.At(i))
		c.pop()
	}
	for i := src.Len() - 1; i >= n; i-- {
		c.removeOp(strconv.Itoa(i))
	}
	for i := n; i < dst.Len(); i++ {
		c.addOp(pointer.AppendIndex, dst.At(i))
	}
}
