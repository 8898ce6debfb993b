// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package serde

import (
	"fmt"
	"strconv"
)

// Kind is the type of a token in the pull-style protocol.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid token

	Null       // null or unit value
	Bool       // Boolean
	Int        // signed integer, platform size
	Int8       // signed integer, 8 bits
	Int16      // signed integer, 16 bits
	Int32      // signed integer, 32 bits
	Int64      // signed integer, 64 bits
	Uint       // unsigned integer, platform size
	Uint8      // unsigned integer, 8 bits
	Uint16     // unsigned integer, 16 bits
	Uint32     // unsigned integer, 32 bits
	Uint64     // unsigned integer, 64 bits
	Float32    // floating point, 32 bits
	Float64    // floating point, 64 bits
	Char       // a single Unicode code point
	String     // string
	OptionMark // option presence marker

	SeqStart    // start of a sequence
	MapStart    // start of a mapping
	StructStart // start of a struct
	EnumStart   // start of an enum variant
	End         // end of the innermost open compound

	// Do not modify the order of these constants without updating the
	// classification methods below.
)

var kindStr = [...]string{
	Invalid:     "invalid token",
	Null:        "null",
	Bool:        "bool",
	Int:         "int",
	Int8:        "int8",
	Int16:       "int16",
	Int32:       "int32",
	Int64:       "int64",
	Uint:        "uint",
	Uint8:       "uint8",
	Uint16:      "uint16",
	Uint32:      "uint32",
	Uint64:      "uint64",
	Float32:     "float32",
	Float64:     "float64",
	Char:        "char",
	String:      "string",
	OptionMark:  "option",
	SeqStart:    "sequence start",
	MapStart:    "map start",
	StructStart: "struct start",
	EnumStart:   "enum start",
	End:         "end",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// IsStart reports whether k opens a compound that is closed by End.
func (k Kind) IsStart() bool { return k >= SeqStart && k <= EnumStart }

// IsScalar reports whether k is a self-contained scalar value.
func (k Kind) IsScalar() bool { return k >= Null && k <= String }

// IsSigned reports whether k is one of the signed integer kinds.
func (k Kind) IsSigned() bool { return k >= Int && k <= Int64 }

// IsUnsigned reports whether k is one of the unsigned integer kinds.
func (k Kind) IsUnsigned() bool { return k >= Uint && k <= Uint64 }

// IsFloat reports whether k is one of the floating-point kinds.
func (k Kind) IsFloat() bool { return k == Float32 || k == Float64 }

// A Token is one unit of serialized information. Which fields are meaningful
// depends on Kind:
//
//	Kind             | Fields
//	---------------- | -----------------------------------------------
//	Bool, OptionMark | Bool (for OptionMark, whether a value follows)
//	Int, Int*        | Int
//	Uint, Uint*      | Uint
//	Float*           | Float
//	Char             | Char
//	String           | Str
//	SeqStart         | Len (element count)
//	MapStart         | Len (entry count)
//	StructStart      | Str (struct name), Len (field count)
//	EnumStart        | Str (enum name), Variant, Len (argument count)
//
// Tokens are comparable with ==.
type Token struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Uint    uint64
	Float   float64
	Char    rune
	Str     string
	Variant string
	Len     int
}

var (
	// NullToken is the token for a null or unit value.
	NullToken = Token{Kind: Null}

	// EndToken closes the innermost open compound.
	EndToken = Token{Kind: End}
)

// BoolToken returns a Bool token for v.
func BoolToken(v bool) Token { return Token{Kind: Bool, Bool: v} }

// IntToken returns an Int token for v.
func IntToken(v int64) Token { return Token{Kind: Int, Int: v} }

// UintToken returns a Uint token for v.
func UintToken(v uint64) Token { return Token{Kind: Uint, Uint: v} }

// FloatToken returns a Float64 token for v.
func FloatToken(v float64) Token { return Token{Kind: Float64, Float: v} }

// CharToken returns a Char token for c.
func CharToken(c rune) Token { return Token{Kind: Char, Char: c} }

// StringToken returns a String token for s.
func StringToken(s string) Token { return Token{Kind: String, Str: s} }

// OptionToken returns an OptionMark token. If present is true, the wrapped value
// follows as the next value in the stream.
func OptionToken(present bool) Token { return Token{Kind: OptionMark, Bool: present} }

// SeqStartToken returns a token opening a sequence of n elements.
func SeqStartToken(n int) Token { return Token{Kind: SeqStart, Len: n} }

// MapStartToken returns a token opening a mapping of n key/value entries.
func MapStartToken(n int) Token { return Token{Kind: MapStart, Len: n} }

// StructStartToken returns a token opening a struct with the given name and n
// fields.
func StructStartToken(name string, n int) Token {
	return Token{Kind: StructStart, Str: name, Len: n}
}

// EnumStartToken returns a token opening the named variant of an enum, which
// carries n arguments.
func EnumStartToken(enum, variant string, n int) Token {
	return Token{Kind: EnumStart, Str: enum, Variant: variant, Len: n}
}

// String renders a human-readable summary of t for diagnostics.
func (t Token) String() string {
	switch {
	case t.Kind == Null, t.Kind == End:
		return t.Kind.String()
	case t.Kind == Bool:
		return strconv.FormatBool(t.Bool)
	case t.Kind.IsSigned():
		return fmt.Sprintf("%v %d", t.Kind, t.Int)
	case t.Kind.IsUnsigned():
		return fmt.Sprintf("%v %d", t.Kind, t.Uint)
	case t.Kind.IsFloat():
		return fmt.Sprintf("%v %g", t.Kind, t.Float)
	case t.Kind == Char:
		return fmt.Sprintf("char %q", t.Char)
	case t.Kind == String:
		return fmt.Sprintf("string %q", t.Str)
	case t.Kind == OptionMark:
		if t.Bool {
			return "option (some)"
		}
		return "option (none)"
	case t.Kind == SeqStart, t.Kind == MapStart:
		return fmt.Sprintf("%v (len=%d)", t.Kind, t.Len)
	case t.Kind == StructStart:
		return fmt.Sprintf("struct start %s (len=%d)", t.Str, t.Len)
	case t.Kind == EnumStart:
		return fmt.Sprintf("enum start %s::%s (len=%d)", t.Str, t.Variant, t.Len)
	default:
		return Invalid.String()
	}
}
