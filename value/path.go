// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import "fmt"

// Path traverses a sequential path through the structure of a value starting
// at v, where path elements are either strings (denoting object keys) or
// integers (denoting offsets into lists). If the path is valid, the element
// reached is returned. In case of error, the input v is returned along with
// the error.
//
// Negative list indices count backward from the end of the list (-1 is last).
//
// If a path element is a function with signature
//
//	func(value.Value) (value.Value, error)
//
// the function is applied and its result becomes the next value.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(Object)
			if !ok {
				return v, fmt.Errorf("cannot traverse %T with %q", cur, t)
			}
			m := obj.Find(t)
			if m == nil {
				return v, fmt.Errorf("key %q not found", t)
			}
			cur = m.Value
		case int:
			lst, ok := cur.(List)
			if !ok {
				return v, fmt.Errorf("cannot traverse %T with %d", cur, t)
			}
			i := t
			if i < 0 {
				i += len(lst)
			}
			if i < 0 || i >= len(lst) {
				return v, fmt.Errorf("list index %d out of bounds (n=%d)", t, len(lst))
			}
			cur = lst[i]
		case func(Value) (Value, error):
			next, err := t(cur)
			if err != nil {
				return v, err
			}
			cur = next
		default:
			return v, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}
