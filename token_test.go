// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package serde_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/serde"
	"github.com/google/go-cmp/cmp"
)

// tokenList is a serde.TokenSource that delivers a fixed slice of tokens.
type tokenList struct{ toks []serde.Token }

func newTokens(toks ...serde.Token) *tokenList { return &tokenList{toks: toks} }

func (t *tokenList) Next() (serde.Token, error) {
	if len(t.toks) == 0 {
		return serde.Token{}, io.EOF
	}
	tok := t.toks[0]
	t.toks = t.toks[1:]
	return tok, nil
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		input serde.Token
		want  string
	}{
		{serde.Token{}, "invalid token"},
		{serde.NullToken, "null"},
		{serde.EndToken, "end"},
		{serde.BoolToken(true), "true"},
		{serde.IntToken(-3), "int -3"},
		{serde.Token{Kind: serde.Int8, Int: 4}, "int8 4"},
		{serde.UintToken(7), "uint 7"},
		{serde.FloatToken(0.25), "float64 0.25"},
		{serde.CharToken('q'), `char 'q'`},
		{serde.StringToken("a b"), `string "a b"`},
		{serde.OptionToken(true), "option (some)"},
		{serde.OptionToken(false), "option (none)"},
		{serde.SeqStartToken(3), "sequence start (len=3)"},
		{serde.MapStartToken(0), "map start (len=0)"},
		{serde.StructStartToken("Outer", 1), "struct start Outer (len=1)"},
		{serde.EnumStartToken("Animal", "Frog", 2), "enum start Animal::Frog (len=2)"},
	}
	for _, tc := range tests {
		if got := tc.input.String(); got != tc.want {
			t.Errorf("String(%#v): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestKindClasses(t *testing.T) {
	type class struct{ Start, Scalar, Signed, Unsigned, Float bool }
	tests := []struct {
		kind serde.Kind
		want class
	}{
		{serde.Invalid, class{}},
		{serde.Null, class{Scalar: true}},
		{serde.Int32, class{Scalar: true, Signed: true}},
		{serde.Uint, class{Scalar: true, Unsigned: true}},
		{serde.Float32, class{Scalar: true, Float: true}},
		{serde.String, class{Scalar: true}},
		{serde.OptionMark, class{}},
		{serde.SeqStart, class{Start: true}},
		{serde.EnumStart, class{Start: true}},
		{serde.End, class{}},
		{serde.Kind(200), class{}},
	}
	for _, tc := range tests {
		got := class{
			Start:    tc.kind.IsStart(),
			Scalar:   tc.kind.IsScalar(),
			Signed:   tc.kind.IsSigned(),
			Unsigned: tc.kind.IsUnsigned(),
			Float:    tc.kind.IsFloat(),
		}
		if diff := cmp.Diff(got, tc.want); diff != "" {
			t.Errorf("Kind %v (-got, +want):\n%s", tc.kind, diff)
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{serde.ErrSyntax, "syntax error"},
		{serde.Syntaxf("bad %d", 5), "syntax error: bad 5"},
		{serde.MissingField("b"), `missing field "b"`},
		{serde.Otherf("oops"), "error: oops"},
		{serde.WrapError(serde.ConversionErr, errors.New("nope")), "conversion error: nope"},
		{&serde.Error{}, "unknown error"},
	}
	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error: got %q, want %q", got, tc.want)
		}
	}

	t.Run("Is", func(t *testing.T) {
		err := fmt.Errorf("context: %w", serde.MissingField("b"))
		if !errors.Is(err, serde.ErrMissingField) {
			t.Errorf("Is(%v, ErrMissingField): got false, want true", err)
		}
		if !errors.Is(err, &serde.Error{Kind: serde.MissingFieldErr, Field: "b"}) {
			t.Errorf("Is(%v, field b): got false, want true", err)
		}
		if errors.Is(err, &serde.Error{Kind: serde.MissingFieldErr, Field: "c"}) {
			t.Errorf("Is(%v, field c): got true, want false", err)
		}
		if errors.Is(err, serde.ErrSyntax) {
			t.Errorf("Is(%v, ErrSyntax): got true, want false", err)
		}
	})
	t.Run("Unwrap", func(t *testing.T) {
		err := serde.WrapError(serde.OtherErr, io.ErrUnexpectedEOF)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("Is(%v, ErrUnexpectedEOF): got false, want true", err)
		}
		if !errors.Is(err, serde.ErrOther) {
			t.Errorf("Is(%v, ErrOther): got false, want true", err)
		}
	})
}

func TestOption(t *testing.T) {
	some, none := serde.Some(3), serde.None[int]()
	if v, ok := some.Get(); !ok || v != 3 {
		t.Errorf("Some(3).Get: got (%v, %v), want (3, true)", v, ok)
	}
	if v, ok := none.Get(); ok || v != 0 {
		t.Errorf("None.Get: got (%v, %v), want (0, false)", v, ok)
	}
	if !some.Equal(serde.Some(3)) || some.Equal(serde.Some(4)) || some.Equal(none) || !none.Equal(serde.Option[int]{}) {
		t.Error("Equal: wrong result")
	}
	if got := some.String(); got != "Some(3)" {
		t.Errorf("String: got %q, want Some(3)", got)
	}
	if got := none.String(); got != "None" {
		t.Errorf("String: got %q, want None", got)
	}
}
