// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sample

import (
	"io"

	"github.com/creachadair/mds/omap"
	"github.com/creachadair/mds/stack"
	"github.com/creachadair/serde"
)

type workKind byte

const (
	outerWork  workKind = iota // a whole Outer
	innerWork                  // a whole Inner
	fieldWork                  // a field name marker
	nullWork                   // a unit value
	uintWork                   // an unsigned integer
	charWork                   // a character
	stringWork                 // a string (map key)
	optionWork                 // an option presence marker
	seqWork                    // a sequence of Inner
	mapWork                    // a mapping of string to optional char
	endWork                    // end of a compound
)

var workKindStr = [...]string{
	outerWork:  "Outer",
	innerWork:  "Inner",
	fieldWork:  "field",
	nullWork:   "null",
	uintWork:   "uint",
	charWork:   "char",
	stringWork: "string",
	optionWork: "option",
	seqWork:    "sequence",
	mapWork:    "map",
	endWork:    "end",
}

func (k workKind) String() string { return workKindStr[k] }

// A work item is a pending value not yet delivered. Only the fields for its
// kind are set.
type work struct {
	kind  workKind
	outer Outer
	inner Inner
	seq   []Inner
	m     omap.Map[string, serde.Option[rune]]
	s     string // field name or string value
	u     uint
	c     rune
	ok    bool
}

// An OuterSource delivers a single Outer through both the push-style
// serde.Decoder and the pull-style serde.Deserializer interfaces. It can be
// used for exactly one traversal.
//
// Mapping entries are delivered in ascending key order, which is the order
// the mapping itself iterates.
type OuterSource struct {
	serde.BaseDecoder
	serde.BaseHooks

	stk *stack.Stack[work]
}

var (
	_ serde.Decoder      = (*OuterSource)(nil)
	_ serde.Deserializer = (*OuterSource)(nil)
)

// NewOuterSource constructs a source for o.
func NewOuterSource(o Outer) *OuterSource {
	s := &OuterSource{stk: stack.New[work]()}
	s.stk.Add(work{kind: outerWork, outer: o})
	return s
}

// NewInnerSource constructs a source for a single Inner value.
func NewInnerSource(in Inner) *OuterSource {
	s := &OuterSource{stk: stack.New[work]()}
	s.stk.Add(work{kind: innerWork, inner: in})
	return s
}

// pushField pushes the value of a field with its name marker on top.
func (s *OuterSource) pushField(name string, w work) {
	s.stk.Add(w)
	s.stk.Add(work{kind: fieldWork, s: name})
}

// expand pushes the children of the compound w in reverse order, so that the
// first child is on top, and returns the number of children.
func (s *OuterSource) expand(w work) int {
	switch w.kind {
	case outerWork:
		s.pushField("inner", work{kind: seqWork, seq: w.outer.Inner})
		return 1

	case innerWork:
		s.pushField("c", work{kind: mapWork, m: w.inner.C})
		s.pushField("b", work{kind: uintWork, u: w.inner.B})
		s.pushField("a", work{kind: nullWork})
		return 3

	case seqWork:
		for i := len(w.seq) - 1; i >= 0; i-- {
			s.stk.Add(work{kind: innerWork, inner: w.seq[i]})
		}
		return len(w.seq)

	case mapWork:
		type entry struct {
			key string
			val serde.Option[rune]
		}
		var es []entry
		for it := w.m.First(); it.IsValid(); it.Next() {
			es = append(es, entry{it.Key(), it.Value()})
		}
		for i := len(es) - 1; i >= 0; i-- {
			if c, ok := es[i].val.Get(); ok {
				s.stk.Add(work{kind: charWork, c: c})
				s.stk.Add(work{kind: optionWork, ok: true})
			} else {
				s.stk.Add(work{kind: optionWork})
			}
			s.stk.Add(work{kind: stringWork, s: es[i].key})
		}
		return len(es)
	}
	return 0
}

func (s *OuterSource) pop(want workKind) (work, error) {
	w, ok := s.stk.Pop()
	if !ok {
		return w, serde.Syntaxf("expected %v, no value pending", want)
	} else if w.kind != want {
		return w, serde.Syntaxf("expected %v, found %v", want, w.kind)
	}
	return w, nil
}

// ReadNil implements part of serde.Decoder.
func (s *OuterSource) ReadNil() error {
	_, err := s.pop(nullWork)
	return err
}

// ReadUint implements part of serde.Decoder.
func (s *OuterSource) ReadUint() (uint, error) {
	w, err := s.pop(uintWork)
	return w.u, err
}

// ReadChar implements part of serde.Decoder.
func (s *OuterSource) ReadChar() (rune, error) {
	w, err := s.pop(charWork)
	return w.c, err
}

// ReadString implements part of serde.Decoder.
func (s *OuterSource) ReadString() (string, error) {
	w, err := s.pop(stringWork)
	return w.s, err
}

// ReadStruct implements part of serde.Decoder.
func (s *OuterSource) ReadStruct(name string, n int, body func(serde.Decoder) error) error {
	w, ok := s.stk.Pop()
	if !ok {
		return serde.Syntaxf("expected struct %s, no value pending", name)
	} else if (w.kind != outerWork && w.kind != innerWork) || w.kind.String() != name {
		return serde.Syntaxf("expected struct %s, found %v", name, w.kind)
	}
	if got := s.expand(w); got != n {
		return serde.Syntaxf("struct %s has %d fields, not %d", name, got, n)
	}
	return body(s)
}

// ReadStructField implements part of serde.Decoder.
func (s *OuterSource) ReadStructField(name string, _ int, body func(serde.Decoder) error) error {
	w, err := s.pop(fieldWork)
	if err != nil {
		return err
	} else if w.s != name {
		return serde.Syntaxf("expected field %q, found %q", name, w.s)
	}
	return body(s)
}

// ReadOption implements part of serde.Decoder.
func (s *OuterSource) ReadOption(body func(serde.Decoder, bool) error) error {
	w, err := s.pop(optionWork)
	if err != nil {
		return err
	}
	return body(s, w.ok)
}

// ReadSeq implements part of serde.Decoder.
func (s *OuterSource) ReadSeq(body func(serde.Decoder, int) error) error {
	w, err := s.pop(seqWork)
	if err != nil {
		return err
	}
	return body(s, s.expand(w))
}

// ReadSeqElt implements part of serde.Decoder.
func (s *OuterSource) ReadSeqElt(_ int, body func(serde.Decoder) error) error { return body(s) }

// ReadMap implements part of serde.Decoder.
func (s *OuterSource) ReadMap(body func(serde.Decoder, int) error) error {
	w, err := s.pop(mapWork)
	if err != nil {
		return err
	}
	return body(s, s.expand(w))
}

// ReadMapEltKey implements part of serde.Decoder.
func (s *OuterSource) ReadMapEltKey(_ int, body func(serde.Decoder) error) error { return body(s) }

// ReadMapEltVal implements part of serde.Decoder.
func (s *OuterSource) ReadMapEltVal(_ int, body func(serde.Decoder) error) error { return body(s) }

// Next implements part of serde.Deserializer.
func (s *OuterSource) Next() (serde.Token, error) {
	w, ok := s.stk.Pop()
	if !ok {
		return serde.Token{}, io.EOF
	}
	switch w.kind {
	case outerWork, innerWork:
		s.stk.Add(work{kind: endWork})
		return serde.StructStartToken(w.kind.String(), s.expand(w)), nil
	case seqWork:
		s.stk.Add(work{kind: endWork})
		return serde.SeqStartToken(s.expand(w)), nil
	case mapWork:
		s.stk.Add(work{kind: endWork})
		return serde.MapStartToken(s.expand(w)), nil
	case fieldWork, stringWork:
		return serde.StringToken(w.s), nil
	case nullWork:
		return serde.NullToken, nil
	case uintWork:
		return serde.UintToken(uint64(w.u)), nil
	case charWork:
		return serde.CharToken(w.c), nil
	case optionWork:
		return serde.OptionToken(w.ok), nil
	default:
		return serde.EndToken, nil
	}
}
