// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package serde

import "fmt"

// An Option is a value of type T that may be absent.
// The zero value is an absent option.
type Option[T any] struct {
	value   T
	present bool
}

// Some returns a present option wrapping v.
func Some[T any](v T) Option[T] { return Option[T]{value: v, present: true} }

// None returns an absent option.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the wrapped value and reports whether it is present. If o is
// absent, Get returns a zero value.
func (o Option[T]) Get() (T, bool) { return o.value, o.present }

// IsPresent reports whether o wraps a value.
func (o Option[T]) IsPresent() bool { return o.present }

// Equal reports whether o and p are both absent, or both present with values
// that compare equal with ==.
func (o Option[T]) Equal(p Option[T]) bool {
	if o.present != p.present {
		return false
	} else if !o.present {
		return true
	}
	return any(o.value) == any(p.value)
}

func (o Option[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
