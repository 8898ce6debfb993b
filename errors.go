// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package serde

import (
	"fmt"
	"strings"
)

// ErrorKind classifies the failures reported by decoders and token readers.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	EndOfStream     ErrorKind = 1 + iota // input ended before the value was complete
	SyntaxErr                            // the input does not have the requested shape
	UnexpectedName                       // a struct, enum, variant, or field name did not match
	ConversionErr                        // a scalar could not be converted to the target type
	MissingFieldErr                      // a struct ended without a required field
	OtherErr                             // any other failure
)

var errorKindStr = [...]string{
	EndOfStream:     "end of stream",
	SyntaxErr:       "syntax error",
	UnexpectedName:  "unexpected name",
	ConversionErr:   "conversion error",
	MissingFieldErr: "missing field",
	OtherErr:        "error",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStr) || k == 0 {
		return "unknown error"
	}
	return errorKindStr[k]
}

// Error is the concrete type of errors reported by this package and by the
// sources that implement its interfaces.
type Error struct {
	Kind    ErrorKind
	Field   string // for MissingFieldErr, the name of the field
	Message string // optional detail

	err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Field != "" {
		fmt.Fprintf(&sb, " %q", e.Field)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error sentinel of the same kind, so that
// errors.Is(err, serde.ErrSyntax) matches any syntax error. A target with a
// Field set matches only errors for that field.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Kind != e.Kind || t.Message != "" {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

// Sentinel errors for use with errors.Is.
var (
	ErrEndOfStream    = &Error{Kind: EndOfStream}
	ErrSyntax         = &Error{Kind: SyntaxErr}
	ErrUnexpectedName = &Error{Kind: UnexpectedName}
	ErrConversion     = &Error{Kind: ConversionErr}
	ErrMissingField   = &Error{Kind: MissingFieldErr}
	ErrOther          = &Error{Kind: OtherErr}
)

// Syntaxf returns a syntax error with a formatted message.
func Syntaxf(msg string, args ...any) *Error {
	return &Error{Kind: SyntaxErr, Message: fmt.Sprintf(msg, args...)}
}

// Otherf returns an error of kind OtherErr with a formatted message.
func Otherf(msg string, args ...any) *Error {
	return &Error{Kind: OtherErr, Message: fmt.Sprintf(msg, args...)}
}

// MissingField returns a missing-field error for the named field.
func MissingField(name string) *Error {
	return &Error{Kind: MissingFieldErr, Field: name}
}

// WrapError returns an error of the given kind wrapping err.
func WrapError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), err: err}
}

// kindLabel makes a human-readable summary string for the given token kinds.
func kindLabel(kinds []Kind, got any) string {
	if len(kinds) == 0 {
		return fmt.Sprintf("unexpected %v", got)
	}
	var exp string
	if len(kinds) == 1 {
		exp = kinds[0].String()
	} else {
		last := len(kinds) - 1
		ss := make([]string, last)
		for i, k := range kinds[:last] {
			ss[i] = k.String()
		}
		exp = strings.Join(ss, ", ") + " or " + kinds[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
