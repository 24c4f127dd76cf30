// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

// An ObjectBuilder accumulates the members of an Object. The methods of a
// builder return the builder itself so that calls may be chained:
//
//	obj := dom.NewObjectBuilder().
//	   AddString("name", "Alice").
//	   AddInt("age", 33).
//	   Build()
//
// Once Build has been called, the builder is finished, and any further call
// to a method that adds or removes members will panic.
type ObjectBuilder struct {
	obj  *Object
	done bool
}

// NewObjectBuilder returns a new empty ObjectBuilder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{obj: &Object{index: make(map[string]int)}}
}

// NewObjectBuilderFrom returns an ObjectBuilder whose initial members are
// those of o.
func NewObjectBuilderFrom(o *Object) *ObjectBuilder {
	b := NewObjectBuilder()
	for _, m := range o.members {
		b.obj.put(m.Key, m.Value)
	}
	return b
}

func (b *ObjectBuilder) check() {
	if b.done {
		panic("dom: object builder used after Build")
	}
}

// Add adds a member with the given key and value. If a member with that key
// was already added, its value is replaced in place. Add panics if v == nil.
func (b *ObjectBuilder) Add(key string, v Value) *ObjectBuilder {
	b.check()
	if v == nil {
		panic("dom: nil value for key " + key)
	}
	b.obj.put(key, v)
	return b
}

// AddString adds a member with a string value.
func (b *ObjectBuilder) AddString(key, s string) *ObjectBuilder { return b.Add(key, String(s)) }

// AddInt adds a member with an integer value.
func (b *ObjectBuilder) AddInt(key string, v int64) *ObjectBuilder { return b.Add(key, Int(v)) }

// AddBool adds a member with a Boolean value.
func (b *ObjectBuilder) AddBool(key string, v bool) *ObjectBuilder { return b.Add(key, Bool(v)) }

// AddNull adds a member with a null value.
func (b *ObjectBuilder) AddNull(key string) *ObjectBuilder { return b.Add(key, Null{}) }

// AddObject adds a member whose value is built by ob. This finishes ob.
func (b *ObjectBuilder) AddObject(key string, ob *ObjectBuilder) *ObjectBuilder {
	return b.Add(key, ob.Build())
}

// AddArray adds a member whose value is built by ab. This finishes ab.
func (b *ObjectBuilder) AddArray(key string, ab *ArrayBuilder) *ObjectBuilder {
	return b.Add(key, ab.Build())
}

// Remove removes the member with the given key, if it exists.
func (b *ObjectBuilder) Remove(key string) *ObjectBuilder {
	b.check()
	if b.obj.Has(key) {
		b.obj = b.obj.Without(key)
	}
	return b
}

// Build returns the completed Object and finishes the builder. Calling Build
// again returns the same Object.
func (b *ObjectBuilder) Build() *Object {
	b.done = true
	return b.obj
}

// An ArrayBuilder accumulates the elements of an Array. Like ObjectBuilder,
// its methods may be chained, and it panics if used after Build.
type ArrayBuilder struct {
	elems []Value
	arr   *Array
}

// NewArrayBuilder returns a new empty ArrayBuilder.
func NewArrayBuilder() *ArrayBuilder { return new(ArrayBuilder) }

// NewArrayBuilderFrom returns an ArrayBuilder whose initial elements are
// those of a.
func NewArrayBuilderFrom(a *Array) *ArrayBuilder { return &ArrayBuilder{elems: a.Values()} }

func (b *ArrayBuilder) check() {
	if b.arr != nil {
		panic("dom: array builder used after Build")
	}
}

// Add appends v. Add panics if v == nil.
func (b *ArrayBuilder) Add(v Value) *ArrayBuilder {
	b.check()
	if v == nil {
		panic("dom: nil array element")
	}
	b.elems = append(b.elems, v)
	return b
}

// AddString appends a string value.
func (b *ArrayBuilder) AddString(s string) *ArrayBuilder { return b.Add(String(s)) }

// AddInt appends an integer value.
func (b *ArrayBuilder) AddInt(v int64) *ArrayBuilder { return b.Add(Int(v)) }

// AddBool appends a Boolean value.
func (b *ArrayBuilder) AddBool(v bool) *ArrayBuilder { return b.Add(Bool(v)) }

// AddNull appends a null value.
func (b *ArrayBuilder) AddNull() *ArrayBuilder { return b.Add(Null{}) }

// AddObject appends the object built by ob. This finishes ob.
func (b *ArrayBuilder) AddObject(ob *ObjectBuilder) *ArrayBuilder { return b.Add(ob.Build()) }

// AddArray appends the array built by ab. This finishes ab.
func (b *ArrayBuilder) AddArray(ab *ArrayBuilder) *ArrayBuilder { return b.Add(ab.Build()) }

// Insert inserts v at offset i, shifting later elements up.
// It panics if i < 0 or i > the number of elements.
func (b *ArrayBuilder) Insert(i int, v Value) *ArrayBuilder {
	b.check()
	if v == nil {
		panic("dom: nil array element")
	}
	b.elems = append(b.elems, nil)
	copy(b.elems[i+1:], b.elems[i:])
	b.elems[i] = v
	return b
}

// Set replaces the element at offset i with v. It panics if i is out of range.
func (b *ArrayBuilder) Set(i int, v Value) *ArrayBuilder {
	b.check()
	if v == nil {
		panic("dom: nil array element")
	}
	b.elems[i] = v
	return b
}

// Remove removes the element at offset i. It panics if i is out of range.
func (b *ArrayBuilder) Remove(i int) *ArrayBuilder {
	b.check()
	b.elems = append(b.elems[:i], b.elems[i+1:]...)
	return b
}

// Build returns the completed Array and finishes the builder. Calling Build
// again returns the same Array.
func (b *ArrayBuilder) Build() *Array {
	if b.arr == nil {
		b.arr = &Array{elems: b.elems}
		b.elems = nil
	}
	return b.arr
}
