// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package pointer

import "github.com/creachadair/jdom/dom"

// Get returns the value p refers to in root.
func (p Pointer) Get(root dom.Value) (dom.Value, error) {
	ref, err := Resolve(root, p)
	if err != nil {
		return nil, err
	}
	return ref.Get()
}

// Contains reports whether p refers to a value present in root.
func (p Pointer) Contains(root dom.Value) bool {
	ref, err := Resolve(root, p)
	return err == nil && ref.Exists()
}

// Add returns a copy of root with v added at the location p refers to.
// See Ref.Add.
func (p Pointer) Add(root, v dom.Value) (dom.Value, error) {
	ref, err := Resolve(root, p)
	if err != nil {
		return nil, err
	}
	return ref.Add(v)
}

// Replace returns a copy of root with the value p refers to replaced by v.
func (p Pointer) Replace(root, v dom.Value) (dom.Value, error) {
	ref, err := Resolve(root, p)
	if err != nil {
		return nil, err
	}
	return ref.Replace(v)
}

// Remove returns a copy of root without the value p refers to.
func (p Pointer) Remove(root dom.Value) (dom.Value, error) {
	ref, err := Resolve(root, p)
	if err != nil {
		return nil, err
	}
	return ref.Remove()
}
