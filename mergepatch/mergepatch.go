// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package mergepatch implements JSON Merge Patch (RFC 7396) over dom values.
//
// A merge patch is an object that describes changes to the members of a
// target object: a member whose value is null removes that member from the
// target, and any other member is merged recursively. A patch that is not an
// object replaces the target entirely.
package mergepatch

import (
	"slices"

	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/mds/mapset"
)

// Apply returns the result of applying the merge patch to target. A nil
// target denotes an absent value. Neither argument is modified.
//
// If patch is not an object, the result is patch. If target is not an object
// but patch is, the patch is merged into an empty object, so the result is a
// copy of patch with its null members removed.
func Apply(target, patch dom.Value) dom.Value {
	pobj, ok := patch.(*dom.Object)
	if !ok {
		return patch
	}
	tobj, ok := target.(*dom.Object)
	if !ok {
		tobj = new(dom.Object)
	}
	out := tobj
	for key, pv := range pobj.All() {
		if pv.Kind() == dom.NullKind {
			out = out.Without(key)
			continue
		}
		tv, _ := out.Get(key)
		out = out.With(key, Apply(tv, pv))
	}
	return out
}

// Diff returns a merge patch that transforms src into dst: Apply(src,
// Diff(src, dst)) is equal to dst, provided dst contains no null members
// inside objects (a merge patch cannot express setting a member to null).
// If either argument is not an object, the result is dst.
func Diff(src, dst dom.Value) dom.Value {
	sobj, sok := src.(*dom.Object)
	dobj, dok := dst.(*dom.Object)
	if !sok || !dok {
		return dst
	}
	keys := mapset.New(sobj.Keys()...)
	keys.Add(dobj.Keys()...)
	sorted := keys.Slice()
	slices.Sort(sorted)

	b := dom.NewObjectBuilder()
	for _, key := range sorted {
		sv, inSrc := sobj.Get(key)
		dv, inDst := dobj.Get(key)
		switch {
		case !inDst:
			b.AddNull(key)
		case !inSrc:
			b.Add(key, dv)
		case !dom.Equal(sv, dv):
			b.Add(key, Diff(sv, dv))
		}
	}
	return b.Build()
}
