// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/creachadair/mds/omap"
	"github.com/creachadair/mds/stack"
	"github.com/creachadair/serde"
	"github.com/tailscale/hujson"
)

// A jsonPartial is an array or object whose elements are still arriving.
type jsonPartial struct {
	list    List
	obj     omap.Map[string, Value]
	isObj   bool
	key     string
	haveKey bool
}

func (p *jsonPartial) add(v Value) {
	if p.isObj {
		p.obj.Set(p.key, v)
		p.haveKey = false
	} else {
		p.list = append(p.list, v)
	}
}

func (p *jsonPartial) finish() Value {
	if p.isObj {
		return objectOf(p.obj)
	}
	return append(List{}, p.list...)
}

// ParseJSON parses a single value from data. The input may use the JWCC
// extensions to JSON (comments and trailing commas). If an object has
// duplicate keys, the last one wins. Numbers that are exact integers in the
// range of int64 become Integer; all others become Float.
//
// Errors are reported as *serde.Error values of kind serde.SyntaxErr.
func ParseJSON(data []byte) (Value, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, serde.WrapError(serde.SyntaxErr, err)
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()

	open := stack.New[*jsonPartial]()
	var cur *jsonPartial
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, serde.Syntaxf("incomplete value")
		} else if err != nil {
			return nil, serde.WrapError(serde.SyntaxErr, err)
		}

		// The decoder has already checked that object keys are strings.
		if s, ok := tok.(string); ok && cur != nil && cur.isObj && !cur.haveKey {
			cur.key, cur.haveKey = s, true
			continue
		}

		var v Value
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				if cur != nil {
					open.Add(cur)
				}
				cur = &jsonPartial{isObj: t == '{'}
				if cur.isObj {
					cur.obj = omap.New[string, Value]()
				}
				continue
			default:
				v = cur.finish()
				if p, ok := open.Pop(); ok {
					cur = p
				} else {
					cur = nil
				}
			}
		case nil:
			v = Null{}
		case bool:
			v = Bool(t)
		case string:
			v = String(t)
		case json.Number:
			if z, err := t.Int64(); err == nil {
				v = Integer(z)
			} else if f, err := t.Float64(); err == nil {
				v = Float(f)
			} else {
				return nil, serde.WrapError(serde.SyntaxErr, err)
			}
		default:
			return nil, serde.Syntaxf("unexpected token %v", tok)
		}
		if cur != nil {
			cur.add(v)
			continue
		}

		// A complete value must be the whole input.
		if _, err := dec.Token(); err != io.EOF {
			return nil, serde.Syntaxf("extra data after value at offset %d", dec.InputOffset())
		}
		return v, nil
	}
}

// MustParseJSON is as ParseJSON, but panics on error.
func MustParseJSON(s string) Value {
	v, err := ParseJSON([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("parse %q: %v", s, err))
	}
	return v
}
