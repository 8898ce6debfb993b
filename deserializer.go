// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package serde

import "fmt"

// A TokenSource is a pull-style source of structured values. Each call to
// Next returns the next token of a finite, forward-only sequence. When the
// sequence is exhausted, Next returns io.EOF. A TokenSource cannot be
// restarted.
//
// A conformant source emits properly nested tokens: every start token is
// matched by exactly one End once its declared children have been produced.
type TokenSource interface {
	Next() (Token, error)
}

// ErrorHooks is an optional interface that a TokenSource may implement to
// control the errors reported when its token sequence does not match what a
// Reader expects. If a source does not implement it, the reader uses
// BaseHooks.
type ErrorHooks interface {
	// EndOfStreamError reports that the sequence ended before the value was
	// complete.
	EndOfStreamError() error

	// SyntaxError reports that tok is not one of the expected kinds.
	// If expected is empty, tok was not expected at all.
	SyntaxError(tok Token, expected ...Kind) error

	// UnexpectedNameError reports that the name carried by tok does not match.
	UnexpectedNameError(tok Token) error

	// ConversionError reports that the value of tok cannot be converted to
	// the requested type.
	ConversionError(tok Token) error

	// MissingField is called when a struct ended without the named field and
	// the field has no default. If it returns nil, the field keeps its zero
	// value and reconstruction continues.
	MissingField(name string) error
}

// A Deserializer is a token source that also controls its error reports.
type Deserializer interface {
	TokenSource
	ErrorHooks
}

// HooksFor returns the error hooks for src: src itself if it implements
// ErrorHooks, otherwise BaseHooks.
func HooksFor(src TokenSource) ErrorHooks {
	if h, ok := src.(ErrorHooks); ok {
		return h
	}
	return BaseHooks{}
}

// BaseHooks implements ErrorHooks with the standard error taxonomy.
type BaseHooks struct{}

var _ ErrorHooks = BaseHooks{}

func (BaseHooks) EndOfStreamError() error { return &Error{Kind: EndOfStream} }

func (BaseHooks) SyntaxError(tok Token, expected ...Kind) error {
	return &Error{Kind: SyntaxErr, Message: kindLabel(expected, tok)}
}

func (BaseHooks) UnexpectedNameError(tok Token) error {
	return &Error{Kind: UnexpectedName, Message: fmt.Sprintf("found %v", tok)}
}

func (BaseHooks) ConversionError(tok Token) error {
	return &Error{Kind: ConversionErr, Message: fmt.Sprintf("cannot convert %v", tok)}
}

func (BaseHooks) MissingField(name string) error { return MissingField(name) }

// A Deserializable value knows how to reconstruct itself from a Reader.
type Deserializable interface {
	Deserialize(*Reader) error
}

// Deserialize reconstructs v from the tokens of src, and verifies that src has
// no tokens left over.
func Deserialize(src TokenSource, v Deserializable) error {
	r := NewReader(src)
	if err := v.Deserialize(r); err != nil {
		return err
	}
	return r.Finish()
}
