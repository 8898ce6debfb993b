// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package value defines a generic tree of JSON-like values, with builders
// for constructing them and adapters between values and serde token streams.
package value

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/mds/omap"
	"github.com/creachadair/serde/internal/escape"
)

// A Value is an arbitrary JSON-like value. The concrete types are Null, Bool,
// Integer, Float, String, List, and Object.
type Value interface {
	// JSON renders the value as compact JSON text.
	JSON() string

	isValue()
}

// Null is the null constant.
type Null struct{}

func (Null) JSON() string { return "null" }

// A Bool is a Boolean constant.
type Bool bool

func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// An Integer is a signed integer value.
type Integer int64

func (z Integer) JSON() string { return strconv.FormatInt(int64(z), 10) }

// A Float is a floating-point value. Non-finite values render as null.
type Float float64

func (f Float) JSON() string {
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return "null"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// A String is a string value.
type String string

func (s String) JSON() string { return escape.Quote(string(s)) }

// A List is an ordered sequence of values.
type List []Value

// Len reports the number of elements in a.
func (a List) Len() int { return len(a) }

func (a List) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// An Object is a collection of members with distinct keys, in ascending
// order by key. Use an ObjectBuilder to construct one.
type Object []Member

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	i, ok := slices.BinarySearchFunc(o, key, func(m Member, key string) int {
		return strings.Compare(m.Key, key)
	})
	if !ok {
		return nil
	}
	return &o[i]
}

func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(escape.Quote(m.Key))
		sb.WriteByte(':')
		sb.WriteString(m.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Integer) isValue() {}
func (Float) isValue()   {}
func (String) isValue()  {}
func (List) isValue()    {}
func (Object) isValue()  {}

// objectOf constructs an Object from the entries of m, which is ordered by
// key.
func objectOf(m omap.Map[string, Value]) Object {
	out := make(Object, 0, m.Len())
	for it := m.First(); it.IsValid(); it.Next() {
		out = append(out, Member{Key: it.Key(), Value: it.Value()})
	}
	return out
}

// A ToValuer is a type that can convert itself into a Value.
type ToValuer interface {
	ToValue() Value
}

// ToValue converts v into a Value. It accepts nil, a Value, a ToValuer, and
// the built-in Boolean, string, integer, and floating-point types. Unsigned
// integers too large for an Integer are converted to Float. It panics if v
// does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case ToValuer:
		return t.ToValue()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Integer(t)
	case int8:
		return Integer(t)
	case int16:
		return Integer(t)
	case int32:
		return Integer(t)
	case int64:
		return Integer(t)
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Integer(t)
	case uint16:
		return Integer(t)
	case uint32:
		return Integer(t)
	case uint64:
		return fromUint(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(u)
	}
	return Integer(u)
}
