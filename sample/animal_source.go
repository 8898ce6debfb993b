// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sample

import (
	"fmt"
	"io"
	"slices"

	"github.com/creachadair/mds/stack"
	"github.com/creachadair/serde"
)

type animalKind byte

const (
	animalRoot   animalKind = iota // a whole Animal
	animalInt                      // an int argument
	animalString                   // a string argument
	animalEnd                      // end of the variant
)

var animalKindStr = [...]string{
	animalRoot:   "Animal",
	animalInt:    "int",
	animalString: "string",
	animalEnd:    "end",
}

func (k animalKind) String() string { return animalKindStr[k] }

type animalItem struct {
	kind   animalKind
	animal Animal
	i      int
	s      string
}

// An AnimalSource delivers a single Animal through both the push-style
// serde.Decoder and the pull-style serde.Deserializer interfaces. It can be
// used for exactly one traversal.
//
// All failures other than the end of the token stream are reported as syntax
// errors.
type AnimalSource struct {
	serde.BaseDecoder

	stk *stack.Stack[animalItem]
}

var (
	_ serde.Decoder      = (*AnimalSource)(nil)
	_ serde.Deserializer = (*AnimalSource)(nil)
)

// NewAnimalSource constructs a source for a.
func NewAnimalSource(a Animal) *AnimalSource {
	s := &AnimalSource{stk: stack.New[animalItem]()}
	s.stk.Add(animalItem{kind: animalRoot, animal: a})
	return s
}

// expand pushes the arguments of a in reverse order, so that the first
// argument is on top, and returns the name of the variant and its argument
// count. If a is not a known variant, expand reports n < 0.
func (s *AnimalSource) expand(a Animal) (name string, n int) {
	switch t := a.(type) {
	case Dog:
		return t.variant(), 0
	case Frog:
		s.stk.Add(animalItem{kind: animalInt, i: t.Age})
		s.stk.Add(animalItem{kind: animalString, s: t.Name})
		return t.variant(), 2
	default:
		return fmt.Sprintf("%T", a), -1
	}
}

func (s *AnimalSource) pop(want animalKind) (animalItem, error) {
	it, ok := s.stk.Pop()
	if !ok {
		return it, serde.Syntaxf("expected %v, no value pending", want)
	} else if it.kind != want {
		return it, serde.Syntaxf("expected %v, found %v", want, it.kind)
	}
	return it, nil
}

// ReadInt implements part of serde.Decoder.
func (s *AnimalSource) ReadInt() (int, error) {
	it, err := s.pop(animalInt)
	return it.i, err
}

// ReadString implements part of serde.Decoder.
func (s *AnimalSource) ReadString() (string, error) {
	it, err := s.pop(animalString)
	return it.s, err
}

// ReadEnum implements part of serde.Decoder.
func (s *AnimalSource) ReadEnum(name string, body func(serde.Decoder) error) error {
	it, err := s.pop(animalRoot)
	if err != nil {
		return err
	}
	s.stk.Add(it) // ReadEnumVariant decomposes it
	if name != "Animal" {
		return serde.Syntaxf("expected enum %s, found Animal", name)
	}
	return body(s)
}

// ReadEnumVariant implements part of serde.Decoder.
func (s *AnimalSource) ReadEnumVariant(names []string, body func(serde.Decoder, int) error) error {
	it, err := s.pop(animalRoot)
	if err != nil {
		return err
	}
	name, n := s.expand(it.animal)
	if n < 0 {
		return serde.Syntaxf("unknown Animal variant %s", name)
	}
	idx := slices.Index(names, name)
	if idx < 0 {
		return serde.Syntaxf("unknown variant %q", name)
	}
	return body(s, idx)
}

// ReadEnumVariantArg implements part of serde.Decoder.
func (s *AnimalSource) ReadEnumVariantArg(_ int, body func(serde.Decoder) error) error {
	return body(s)
}

// Next implements part of serde.Deserializer.
func (s *AnimalSource) Next() (serde.Token, error) {
	it, ok := s.stk.Pop()
	if !ok {
		return serde.Token{}, io.EOF
	}
	switch it.kind {
	case animalRoot:
		s.stk.Add(animalItem{kind: animalEnd})
		name, n := s.expand(it.animal)
		if n < 0 {
			return serde.Token{}, serde.Syntaxf("unknown Animal variant %s", name)
		}
		return serde.EnumStartToken("Animal", name, n), nil
	case animalInt:
		return serde.IntToken(int64(it.i)), nil
	case animalString:
		return serde.StringToken(it.s), nil
	default:
		return serde.EndToken, nil
	}
}

// EndOfStreamError implements part of serde.Deserializer.
func (*AnimalSource) EndOfStreamError() error { return serde.ErrEndOfStream }

// SyntaxError implements part of serde.Deserializer.
func (*AnimalSource) SyntaxError(tok serde.Token, _ ...serde.Kind) error {
	return serde.Syntaxf("unexpected %v", tok)
}

// UnexpectedNameError implements part of serde.Deserializer.
func (*AnimalSource) UnexpectedNameError(tok serde.Token) error {
	return serde.Syntaxf("unexpected name in %v", tok)
}

// ConversionError implements part of serde.Deserializer.
func (*AnimalSource) ConversionError(tok serde.Token) error {
	return serde.Syntaxf("cannot convert %v", tok)
}

// MissingField implements part of serde.Deserializer.
func (*AnimalSource) MissingField(name string) error {
	return serde.Syntaxf("missing field %q", name)
}
