// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sample

import "github.com/creachadair/serde/value"

// ToValue implements value.ToValuer. A Dog is its variant name.
func (d Dog) ToValue() value.Value { return value.String(d.variant()) }

// ToValue implements value.ToValuer. A Frog is an object mapping its variant
// name to the list of its arguments.
func (f Frog) ToValue() value.Value {
	return value.NewObject().InsertList(f.variant(), func(b value.ListBuilder) value.ListBuilder {
		return b.Push(f.Name).Push(f.Age)
	}).Build()
}

// ToValue implements value.ToValuer.
func (o Outer) ToValue() value.Value {
	return value.NewObject().InsertList("inner", func(b value.ListBuilder) value.ListBuilder {
		for _, in := range o.Inner {
			b = b.Push(in)
		}
		return b
	}).Build()
}

// ToValue implements value.ToValuer. An absent mapping value is null.
func (in Inner) ToValue() value.Value {
	return value.NewObject().
		Insert("a", nil).
		Insert("b", in.B).
		InsertObject("c", func(b value.ObjectBuilder) value.ObjectBuilder {
			for it := in.C.First(); it.IsValid(); it.Next() {
				if c, ok := it.Value().Get(); ok {
					b = b.Insert(it.Key(), string(c))
				} else {
					b = b.Insert(it.Key(), nil)
				}
			}
			return b
		}).
		Build()
}
