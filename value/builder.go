// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"slices"

	"github.com/creachadair/mds/omap"
)

// A ListBuilder accumulates the elements of a List. Each method returns a new
// builder and leaves its receiver unchanged, so a partial builder may be
// extended more than once. The zero value is ready for use.
type ListBuilder struct {
	elts []Value
}

// NewList returns an empty ListBuilder.
func NewList() ListBuilder { return ListBuilder{} }

// Push appends ToValue(v) to the list.
func (b ListBuilder) Push(v any) ListBuilder {
	b.elts = append(slices.Clip(b.elts), ToValue(v))
	return b
}

// PushList appends a nested list built by f from an empty builder.
func (b ListBuilder) PushList(f func(ListBuilder) ListBuilder) ListBuilder {
	return b.Push(f(NewList()).Build())
}

// PushObject appends a nested object built by f from an empty builder.
func (b ListBuilder) PushObject(f func(ObjectBuilder) ObjectBuilder) ListBuilder {
	return b.Push(f(NewObject()).Build())
}

// Len reports the number of elements pushed so far.
func (b ListBuilder) Len() int { return len(b.elts) }

// Build returns the completed list. The result is never nil.
func (b ListBuilder) Build() List { return append(List{}, b.elts...) }

// An ObjectBuilder accumulates the members of an Object. Each method returns
// a new builder and leaves its receiver unchanged. If a key is inserted more
// than once, the last insertion wins. The zero value is ready for use.
type ObjectBuilder struct {
	mems []Member // in insertion order, keys may repeat
}

// NewObject returns an empty ObjectBuilder.
func NewObject() ObjectBuilder { return ObjectBuilder{} }

// Insert adds a member with the given key and value ToValue(v).
func (b ObjectBuilder) Insert(key string, v any) ObjectBuilder {
	b.mems = append(slices.Clip(b.mems), Member{Key: key, Value: ToValue(v)})
	return b
}

// InsertList adds a member whose value is a nested list built by f.
func (b ObjectBuilder) InsertList(key string, f func(ListBuilder) ListBuilder) ObjectBuilder {
	return b.Insert(key, f(NewList()).Build())
}

// InsertObject adds a member whose value is a nested object built by f.
func (b ObjectBuilder) InsertObject(key string, f func(ObjectBuilder) ObjectBuilder) ObjectBuilder {
	return b.Insert(key, f(NewObject()).Build())
}

// Build returns the completed object, with members in ascending key order.
// The result is never nil.
func (b ObjectBuilder) Build() Object {
	m := omap.New[string, Value]()
	for _, mem := range b.mems {
		m.Set(mem.Key, mem.Value)
	}
	return objectOf(m)
}
