// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sample

import (
	"slices"

	"github.com/creachadair/mds/omap"
	"github.com/creachadair/serde"
)

// Outer is a struct holding a sequence of Inner values.
type Outer struct {
	Inner []Inner
}

// Equal reports whether o and p hold equal Inner values in the same order.
// Nil and empty sequences are equal.
func (o Outer) Equal(p Outer) bool { return slices.EqualFunc(o.Inner, p.Inner, Inner.Equal) }

// Inner is a struct holding a unit, an unsigned integer, and a mapping from
// strings to optional characters. The mapping is ordered by key.
// Use NewInner to construct a value; the zero Inner has no mapping.
type Inner struct {
	A struct{}
	B uint
	C omap.Map[string, serde.Option[rune]]
}

// NewInner constructs an Inner with the given integer and mapping entries.
func NewInner(b uint, entries map[string]serde.Option[rune]) Inner {
	c := omap.New[string, serde.Option[rune]]()
	for k, v := range entries {
		c.Set(k, v)
	}
	return Inner{B: b, C: c}
}

// Equal reports whether in and o have the same integer and the same mapping.
func (in Inner) Equal(o Inner) bool {
	if in.B != o.B || in.C.Len() != o.C.Len() {
		return false
	}
	for it := in.C.First(); it.IsValid(); it.Next() {
		w, ok := o.C.GetOK(it.Key())
		if !ok || !it.Value().Equal(w) {
			return false
		}
	}
	return true
}

// Decode implements serde.Decodable.
func (o *Outer) Decode(d serde.Decoder) error {
	return d.ReadStruct("Outer", 1, func(d serde.Decoder) error {
		return d.ReadStructField("inner", 0, func(d serde.Decoder) (err error) {
			o.Inner, err = serde.DecodeSeq(d, func(d serde.Decoder) (Inner, error) {
				var in Inner
				err := in.Decode(d)
				return in, err
			})
			return
		})
	})
}

// Decode implements serde.Decodable.
func (in *Inner) Decode(d serde.Decoder) error {
	return d.ReadStruct("Inner", 3, func(d serde.Decoder) error {
		if err := d.ReadStructField("a", 0, func(d serde.Decoder) error {
			return d.ReadNil()
		}); err != nil {
			return err
		}
		if err := d.ReadStructField("b", 1, func(d serde.Decoder) (err error) {
			in.B, err = d.ReadUint()
			return
		}); err != nil {
			return err
		}
		return d.ReadStructField("c", 2, func(d serde.Decoder) error {
			in.C = omap.New[string, serde.Option[rune]]()
			return serde.DecodeMap(d,
				func(d serde.Decoder) (string, error) { return d.ReadString() },
				func(d serde.Decoder) (serde.Option[rune], error) {
					return serde.DecodeOption(d, func(d serde.Decoder) (rune, error) { return d.ReadChar() })
				},
				func(k string, v serde.Option[rune]) { in.C.Set(k, v) },
			)
		})
	})
}

// Deserialize implements serde.Deserializable.
func (o *Outer) Deserialize(r *serde.Reader) error {
	return r.Struct("Outer", serde.Field{
		Name: "inner",
		Read: func(r *serde.Reader) (err error) {
			o.Inner, err = serde.ReadSeq(r, func(r *serde.Reader) (Inner, error) {
				var in Inner
				err := in.Deserialize(r)
				return in, err
			})
			return
		},
	})
}

// Deserialize implements serde.Deserializable.
func (in *Inner) Deserialize(r *serde.Reader) error {
	in.C = omap.New[string, serde.Option[rune]]()
	return r.Struct("Inner",
		serde.Field{Name: "a", Read: func(r *serde.Reader) error { return r.Null() }},
		serde.Field{Name: "b", Read: func(r *serde.Reader) (err error) {
			in.B, err = r.Uint()
			return
		}},
		serde.Field{Name: "c", Read: func(r *serde.Reader) error {
			return serde.ReadMap(r, (*serde.Reader).String,
				func(r *serde.Reader) (serde.Option[rune], error) {
					return serde.ReadOption(r, (*serde.Reader).Char)
				},
				func(k string, v serde.Option[rune]) { in.C.Set(k, v) },
			)
		}},
	)
}
