// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// Equal reports whether a and b are structurally equal JSON values. Objects
// are equal if they have the same keys with equal values, regardless of the
// order of their members. Numbers are equal if they have the same numeric
// value, regardless of their lexical forms. A nil Value is equal only to nil.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	} else if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Object:
		y := b.(*Object)
		if x == y {
			return true
		} else if x.Len() != y.Len() {
			return false
		}
		for _, m := range x.members {
			w, ok := y.Get(m.Key)
			if !ok || !Equal(m.Value, w) {
				return false
			}
		}
		return true
	case *Array:
		y := b.(*Array)
		if x == y {
			return true
		}
		return slices.EqualFunc(x.elems, y.elems, Equal)
	case Number:
		return x.Equal(b.(Number))
	case String:
		return x == b.(String)
	default:
		return true // the Kind determines the value of Bool and Null
	}
}

// ToValue converts v into a Value. The concrete type of v must be nil, a
// Value, bool, string, a built-in integer or floating-point type,
// decimal.Decimal, []any, []Value, map[string]any, or map[string]Value, and
// elements of slices and maps are converted recursively. The members of a map
// are ordered by key. ToValue panics if v or any element has another type,
// or for a NaN or infinite float.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return NumberFromDecimal(decimal.NewFromUint64(uint64(t)))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return NumberFromDecimal(decimal.NewFromUint64(t))
	case float32:
		return mustFloat(float64(t))
	case float64:
		return mustFloat(t)
	case decimal.Decimal:
		return NumberFromDecimal(t)
	case []Value:
		return NewArray(t...)
	case []any:
		vs := make([]Value, len(t))
		for i, elt := range t {
			vs[i] = ToValue(elt)
		}
		return &Array{elems: vs}
	case map[string]Value:
		b := NewObjectBuilder()
		for _, key := range slices.Sorted(maps.Keys(t)) {
			b.Add(key, ToValue(t[key]))
		}
		return b.Build()
	case map[string]any:
		b := NewObjectBuilder()
		for _, key := range slices.Sorted(maps.Keys(t)) {
			b.Add(key, ToValue(t[key]))
		}
		return b.Build()
	}
	panic(fmt.Sprintf("dom: unsupported value type %T", v))
}

func mustFloat(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("dom: number %v has no JSON representation", f))
	}
	n, _ := Float(f)
	return n
}
