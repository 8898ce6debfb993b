// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"io"
	"math"
	"strconv"

	"github.com/creachadair/mds/omap"
	"github.com/creachadair/mds/stack"
	"github.com/creachadair/serde"
)

// A partial is a compound value whose children are still arriving.
type partial struct {
	kind    serde.Kind
	variant string // for enums
	want    int    // declared length

	elts List                    // sequence elements or enum arguments
	mems omap.Map[string, Value] // struct fields or map entries
	n    int                     // children received

	key     string // pending key, valid if haveKey
	haveKey bool
}

func newPartial(tok serde.Token) *partial {
	p := &partial{kind: tok.Kind, variant: tok.Variant, want: tok.Len}
	if p.keyed() {
		p.mems = omap.New[string, Value]()
	}
	return p
}

// keyed reports whether the children of p are key-value pairs.
func (p *partial) keyed() bool { return p.kind == serde.StructStart || p.kind == serde.MapStart }

func (p *partial) add(v Value) {
	if p.keyed() {
		p.mems.Set(p.key, v)
		p.haveKey = false
	} else {
		p.elts = append(p.elts, v)
	}
	p.n++
}

// finish converts a complete partial to a value. Sequences become lists, and
// structs and maps become objects. An enum variant without arguments becomes
// its name as a string; otherwise it becomes an object with a single member
// mapping the variant name to its list of arguments.
func (p *partial) finish() Value {
	switch p.kind {
	case serde.SeqStart:
		return append(List{}, p.elts...)
	case serde.StructStart, serde.MapStart:
		return objectOf(p.mems)
	default:
		if len(p.elts) == 0 {
			return String(p.variant)
		}
		return Object{{Key: p.variant, Value: append(List{}, p.elts...)}}
	}
}

// keyText returns the key text of tok, which must be a string, a char, or an
// integer.
func keyText(tok serde.Token) (string, bool) {
	switch {
	case tok.Kind == serde.String:
		return tok.Str, true
	case tok.Kind == serde.Char:
		return string(tok.Char), true
	case tok.Kind.IsSigned():
		return strconv.FormatInt(tok.Int, 10), true
	case tok.Kind.IsUnsigned():
		return strconv.FormatUint(tok.Uint, 10), true
	}
	return "", false
}

// FromTokens reconstructs a single value from the tokens of src. It reads
// exactly the tokens of one value and does not consume any further tokens.
// Errors are reported through the hooks of src, as for a serde.Reader.
//
// Chars become one-character strings, and an absent option becomes Null.
// Map keys must be strings, chars, or integers; integer keys are rendered in
// decimal. A key repeated within one struct or map is a syntax error,
// including distinct keys that render to the same text.
func FromTokens(src serde.TokenSource) (Value, error) {
	hooks := serde.HooksFor(src)
	open := stack.New[*partial]()
	var cur *partial
	for {
		tok, err := src.Next()
		if err == io.EOF {
			return nil, hooks.EndOfStreamError()
		} else if err != nil {
			return nil, err
		}

		if cur != nil && cur.keyed() && !cur.haveKey && tok.Kind != serde.End {
			key, ok := keyText(tok)
			if !ok {
				if cur.kind == serde.StructStart {
					return nil, hooks.SyntaxError(tok, serde.String, serde.End)
				}
				return nil, hooks.ConversionError(tok)
			}
			if _, dup := cur.mems.GetOK(key); dup {
				return nil, serde.Syntaxf("duplicate key %q in %v", key, cur.kind)
			}
			cur.key, cur.haveKey = key, true
			continue
		}

		var v Value
		switch k := tok.Kind; {
		case k == serde.Null:
			v = Null{}
		case k == serde.Bool:
			v = Bool(tok.Bool)
		case k.IsSigned():
			v = Integer(tok.Int)
		case k.IsUnsigned():
			if tok.Uint > math.MaxInt64 {
				return nil, hooks.ConversionError(tok)
			}
			v = Integer(tok.Uint)
		case k.IsFloat():
			v = Float(tok.Float)
		case k == serde.Char:
			v = String(string(tok.Char))
		case k == serde.String:
			v = String(tok.Str)
		case k == serde.OptionMark:
			if tok.Bool {
				continue // the wrapped value follows
			}
			v = Null{}
		case k.IsStart():
			if tok.Len < 0 {
				return nil, hooks.SyntaxError(tok)
			}
			if cur != nil {
				open.Add(cur)
			}
			cur = newPartial(tok)
			continue
		case k == serde.End:
			if cur == nil {
				return nil, hooks.SyntaxError(tok)
			} else if cur.haveKey {
				return nil, hooks.SyntaxError(tok)
			} else if cur.n != cur.want {
				return nil, serde.Syntaxf("%v declared %d children, found %d", cur.kind, cur.want, cur.n)
			}
			v = cur.finish()
			if p, ok := open.Pop(); ok {
				cur = p
			} else {
				cur = nil
			}
		default:
			return nil, hooks.SyntaxError(tok)
		}
		if cur == nil {
			return v, nil
		}
		cur.add(v)
	}
}

// A treeItem is a pending part of a value not yet rendered as a token.
type treeItem struct {
	v     Value
	key   string
	isKey bool
	end   bool
}

// A treeSource is a serde.TokenSource that renders a value as tokens.
type treeSource struct {
	stk *stack.Stack[treeItem]
}

// Tokens returns a serde.TokenSource that produces the tokens of v. A List
// renders as a sequence and an Object as a map with string keys. The source
// reports io.EOF after the last token.
func Tokens(v Value) serde.TokenSource {
	s := &treeSource{stk: stack.New[treeItem]()}
	s.stk.Add(treeItem{v: v})
	return s
}

func (s *treeSource) Next() (serde.Token, error) {
	it, ok := s.stk.Pop()
	if !ok {
		return serde.Token{}, io.EOF
	} else if it.end {
		return serde.EndToken, nil
	} else if it.isKey {
		return serde.StringToken(it.key), nil
	}
	switch t := it.v.(type) {
	case nil, Null:
		return serde.NullToken, nil
	case Bool:
		return serde.BoolToken(bool(t)), nil
	case Integer:
		return serde.IntToken(int64(t)), nil
	case Float:
		return serde.FloatToken(float64(t)), nil
	case String:
		return serde.StringToken(string(t)), nil
	case List:
		s.stk.Add(treeItem{end: true})
		for i := len(t) - 1; i >= 0; i-- {
			s.stk.Add(treeItem{v: t[i]})
		}
		return serde.SeqStartToken(len(t)), nil
	case Object:
		s.stk.Add(treeItem{end: true})
		for i := len(t) - 1; i >= 0; i-- {
			s.stk.Add(treeItem{v: t[i].Value})
			s.stk.Add(treeItem{key: t[i].Key, isKey: true})
		}
		return serde.MapStartToken(len(t)), nil
	default:
		return serde.Token{}, serde.Otherf("unsupported value type %T", it.v)
	}
}

