// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package serde

import (
	"io"
	"math"
	"slices"

	"github.com/creachadair/mds/stack"
)

// maxPresize bounds the capacity reserved from a declared length, so that a
// source declaring a huge length cannot force a huge allocation.
const maxPresize = 1 << 12

// A Reader reconstructs values from the tokens of a TokenSource. It keeps an
// explicit stack of the compounds it has opened, and checks each token it
// consumes against what the caller asks for.
//
// Declared lengths are used to size results, and are also checked: a
// sequence, map, or struct whose declared length does not match the number of
// children actually produced is reported as a syntax error.
type Reader struct {
	src     TokenSource
	hooks   ErrorHooks
	unknown bool // skip unknown struct fields

	tok    Token // lookahead, valid if peeked
	peeked bool

	cur  *frame               // innermost open compound, or nil
	open *stack.Stack[*frame] // enclosing open compounds
}

// A frame records an open compound and how many of its children have been
// read.
type frame struct {
	kind Kind
	name string
	want int // declared length
	got  int
}

// NewReader constructs a Reader that consumes tokens from src. If src
// implements ErrorHooks, its hooks are used to report errors.
func NewReader(src TokenSource) *Reader {
	return &Reader{src: src, hooks: HooksFor(src), open: stack.New[*frame]()}
}

// AllowUnknownFields configures the reader to skip (true) or reject (false)
// struct fields that the caller did not declare.
func (r *Reader) AllowUnknownFields(ok bool) { r.unknown = ok }

// Depth reports the number of compounds currently open.
func (r *Reader) Depth() int {
	if r.cur == nil {
		return 0
	}
	return r.open.Len() + 1
}

func (r *Reader) peek() (Token, error) {
	if !r.peeked {
		tok, err := r.src.Next()
		if err == io.EOF {
			return Token{}, r.hooks.EndOfStreamError()
		} else if err != nil {
			return Token{}, err
		}
		r.tok, r.peeked = tok, true
	}
	return r.tok, nil
}

func (r *Reader) next() (Token, error) {
	tok, err := r.peek()
	r.peeked = false
	return tok, err
}

// PeekToken returns the next token without consuming it.
func (r *Reader) PeekToken() (Token, error) { return r.peek() }

func (r *Reader) push(kind Kind, name string, n int) {
	if r.cur != nil {
		r.open.Add(r.cur)
	}
	r.cur = &frame{kind: kind, name: name, want: n}
}

func (r *Reader) pop() {
	if f, ok := r.open.Pop(); ok {
		r.cur = f
	} else {
		r.cur = nil
	}
}

// expect consumes the next token and checks that it has one of the given
// kinds.
func (r *Reader) expect(kinds ...Kind) (Token, error) {
	tok, err := r.next()
	if err != nil {
		return tok, err
	} else if !slices.Contains(kinds, tok.Kind) {
		return tok, r.hooks.SyntaxError(tok, kinds...)
	}
	return tok, nil
}

// Null consumes a null token.
func (r *Reader) Null() error {
	_, err := r.expect(Null)
	return err
}

// Bool consumes a Boolean token.
func (r *Reader) Bool() (bool, error) {
	tok, err := r.expect(Bool)
	return tok.Bool, err
}

// Int consumes an integer token that fits in an int.
func (r *Reader) Int() (int, error) { return readSigned[int](r) }

// Int8 consumes an integer token that fits in an int8.
func (r *Reader) Int8() (int8, error) { return readSigned[int8](r) }

// Int16 consumes an integer token that fits in an int16.
func (r *Reader) Int16() (int16, error) { return readSigned[int16](r) }

// Int32 consumes an integer token that fits in an int32.
func (r *Reader) Int32() (int32, error) { return readSigned[int32](r) }

// Int64 consumes an integer token that fits in an int64.
func (r *Reader) Int64() (int64, error) { return readSigned[int64](r) }

// Uint consumes an integer token that fits in a uint.
func (r *Reader) Uint() (uint, error) { return readUnsigned[uint](r) }

// Uint8 consumes an integer token that fits in a uint8.
func (r *Reader) Uint8() (uint8, error) { return readUnsigned[uint8](r) }

// Uint16 consumes an integer token that fits in a uint16.
func (r *Reader) Uint16() (uint16, error) { return readUnsigned[uint16](r) }

// Uint32 consumes an integer token that fits in a uint32.
func (r *Reader) Uint32() (uint32, error) { return readUnsigned[uint32](r) }

// Uint64 consumes an integer token that fits in a uint64.
func (r *Reader) Uint64() (uint64, error) { return readUnsigned[uint64](r) }

// Float64 consumes a numeric token as a float64.
func (r *Reader) Float64() (float64, error) {
	tok, err := r.next()
	if err != nil {
		return 0, err
	}
	switch {
	case tok.Kind.IsFloat():
		return tok.Float, nil
	case tok.Kind.IsSigned():
		return float64(tok.Int), nil
	case tok.Kind.IsUnsigned():
		return float64(tok.Uint), nil
	}
	return 0, r.hooks.SyntaxError(tok, Float64, Int, Uint)
}

// Float32 consumes a numeric token whose magnitude fits in a float32.
func (r *Reader) Float32() (float32, error) {
	tok, err := r.peek()
	if err != nil {
		return 0, err
	}
	v, err := r.Float64()
	if err != nil {
		return 0, err
	}
	f := float32(v)
	if math.IsInf(float64(f), 0) && !math.IsInf(v, 0) {
		return 0, r.hooks.ConversionError(tok)
	}
	return f, nil
}

// Char consumes a char token, or a string token holding exactly one rune.
func (r *Reader) Char() (rune, error) {
	tok, err := r.expect(Char, String)
	if err != nil {
		return 0, err
	} else if tok.Kind == Char {
		return tok.Char, nil
	}
	rs := []rune(tok.Str)
	if len(rs) != 1 {
		return 0, r.hooks.ConversionError(tok)
	}
	return rs[0], nil
}

// String consumes a string token, or a char token as a one-rune string.
func (r *Reader) String() (string, error) {
	tok, err := r.expect(String, Char)
	if err != nil {
		return "", err
	} else if tok.Kind == Char {
		return string(tok.Char), nil
	}
	return tok.Str, nil
}

// Option consumes an option marker and reports whether a value follows.
// A null token is accepted as an absent option.
func (r *Reader) Option() (bool, error) {
	tok, err := r.expect(OptionMark, Null)
	if err != nil {
		return false, err
	}
	return tok.Kind == OptionMark && tok.Bool, nil
}

// BeginSeq consumes the start of a sequence and returns its declared length.
// Call More before reading each element. Once More reports false the sequence
// is closed, and End must not be called for it.
func (r *Reader) BeginSeq() (int, error) { return r.begin(SeqStart) }

// BeginMap consumes the start of a mapping and returns its declared number of
// entries. Call More before reading each key and value. Once More reports
// false the mapping is closed, and End must not be called for it.
func (r *Reader) BeginMap() (int, error) { return r.begin(MapStart) }

func (r *Reader) begin(kind Kind) (int, error) {
	tok, err := r.expect(kind)
	if err != nil {
		return 0, err
	} else if tok.Len < 0 {
		return 0, Syntaxf("invalid %v length %d", kind, tok.Len)
	}
	r.push(kind, "", tok.Len)
	return tok.Len, nil
}

// More reports whether the innermost open sequence or mapping has another
// element. When it returns false, the end of the compound has been consumed.
func (r *Reader) More() (bool, error) {
	f := r.cur
	if f == nil || (f.kind != SeqStart && f.kind != MapStart) {
		return false, Syntaxf("no open sequence or map")
	}
	tok, err := r.peek()
	if err != nil {
		return false, err
	} else if tok.Kind == End {
		r.peeked = false
		if f.got != f.want {
			return false, Syntaxf("%v declared %d elements, found %d", f.kind, f.want, f.got)
		}
		r.pop()
		return false, nil
	} else if f.got >= f.want {
		return false, Syntaxf("%v declared %d elements, found more", f.kind, f.want)
	}
	f.got++
	return true, nil
}

// BeginEnum consumes the start of a variant of the named enum, and returns the
// index of the variant in variants and its declared argument count. The caller
// reads the arguments and then calls End.
func (r *Reader) BeginEnum(name string, variants []string) (idx, n int, err error) {
	tok, err := r.expect(EnumStart)
	if err != nil {
		return 0, 0, err
	} else if tok.Str != name {
		return 0, 0, r.hooks.UnexpectedNameError(tok)
	}
	idx = slices.Index(variants, tok.Variant)
	if idx < 0 {
		return 0, 0, r.hooks.UnexpectedNameError(tok)
	}
	r.push(EnumStart, tok.Str, tok.Len)
	return idx, tok.Len, nil
}

// End consumes the end of the innermost open compound. A sequence or mapping
// may be closed by End once all its declared elements are read, in place of a
// final call to More.
func (r *Reader) End() error {
	f := r.cur
	if f == nil {
		return Syntaxf("no open compound")
	}
	if _, err := r.expect(End); err != nil {
		return err
	}
	if (f.kind == SeqStart || f.kind == MapStart) && f.got != f.want {
		return Syntaxf("%v declared %d elements, found %d", f.kind, f.want, f.got)
	}
	r.pop()
	return nil
}

// A Field describes one field of a struct for Reader.Struct.
type Field struct {
	Name string

	// Read decodes the value of the field.
	Read func(*Reader) error

	// If not nil, Default is called when the struct ends without this field.
	// Otherwise the source's MissingField hook decides.
	Default func() error
}

// Struct consumes a struct with the given name, calling the Read function of
// the matching field for each field that occurs. Fields may occur in any
// order, but at most once. When the struct ends, each field that did not occur
// is resolved by its Default, or by the source's MissingField hook.
func (r *Reader) Struct(name string, fields ...Field) error {
	tok, err := r.expect(StructStart)
	if err != nil {
		return err
	} else if tok.Str != name {
		return r.hooks.UnexpectedNameError(tok)
	} else if tok.Len < 0 {
		return Syntaxf("invalid struct length %d", tok.Len)
	}
	r.push(StructStart, name, tok.Len)
	f := r.cur

	seen := make([]bool, len(fields))
	for {
		key, err := r.expect(String, End)
		if err != nil {
			return err
		} else if key.Kind == End {
			break
		}
		f.got++

		i := slices.IndexFunc(fields, func(fd Field) bool { return fd.Name == key.Str })
		if i < 0 {
			if !r.unknown {
				return r.hooks.UnexpectedNameError(key)
			} else if err := r.Skip(); err != nil {
				return err
			}
			continue
		} else if seen[i] {
			return Syntaxf("duplicate field %q in struct %s", key.Str, name)
		}
		seen[i] = true
		if err := fields[i].Read(r); err != nil {
			return err
		}
	}
	if f.got != f.want {
		return Syntaxf("struct %s declared %d fields, found %d", name, f.want, f.got)
	}
	r.pop()

	for i, fd := range fields {
		if seen[i] {
			continue
		}
		if fd.Default != nil {
			err = fd.Default()
		} else {
			err = r.hooks.MissingField(fd.Name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Skip consumes one complete value of any shape.
func (r *Reader) Skip() error {
	depth := 0
	for {
		tok, err := r.next()
		if err != nil {
			return err
		}
		switch {
		case tok.Kind.IsStart():
			depth++
		case tok.Kind == End:
			if depth == 0 {
				return r.hooks.SyntaxError(tok)
			}
			depth--
		case tok.Kind == OptionMark:
			if tok.Bool {
				continue // the wrapped value follows
			}
		case !tok.Kind.IsScalar():
			return r.hooks.SyntaxError(tok)
		}
		if depth == 0 {
			return nil
		}
	}
}

// Finish reports an error if any compound is still open, or if the source has
// tokens left.
func (r *Reader) Finish() error {
	if r.cur != nil {
		return Syntaxf("unclosed %v", r.cur.kind)
	}
	if r.peeked {
		r.peeked = false
		return r.hooks.SyntaxError(r.tok)
	}
	tok, err := r.src.Next()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	return r.hooks.SyntaxError(tok)
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func readSigned[T signed](r *Reader) (T, error) {
	tok, err := r.next()
	if err != nil {
		return 0, err
	}
	switch {
	case tok.Kind.IsSigned():
		if v := T(tok.Int); int64(v) == tok.Int {
			return v, nil
		}
	case tok.Kind.IsUnsigned():
		if v := T(tok.Uint); v >= 0 && uint64(v) == tok.Uint {
			return v, nil
		}
	default:
		return 0, r.hooks.SyntaxError(tok, Int, Uint)
	}
	return 0, r.hooks.ConversionError(tok)
}

func readUnsigned[T unsigned](r *Reader) (T, error) {
	tok, err := r.next()
	if err != nil {
		return 0, err
	}
	switch {
	case tok.Kind.IsUnsigned():
		if v := T(tok.Uint); uint64(v) == tok.Uint {
			return v, nil
		}
	case tok.Kind.IsSigned():
		if v := T(tok.Int); tok.Int >= 0 && int64(v) == tok.Int {
			return v, nil
		}
	default:
		return 0, r.hooks.SyntaxError(tok, Uint, Int)
	}
	return 0, r.hooks.ConversionError(tok)
}

// ReadSeq reads a sequence whose elements are read by elt.
func ReadSeq[T any](r *Reader, elt func(*Reader) (T, error)) ([]T, error) {
	n, err := r.BeginSeq()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(n, maxPresize))
	for {
		ok, err := r.More()
		if err != nil {
			return nil, err
		} else if !ok {
			return out, nil
		}
		v, err := elt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// ReadMap reads a mapping, calling put with each key and value read by key
// and val, in the order the source produces them.
func ReadMap[K, V any](r *Reader, key func(*Reader) (K, error), val func(*Reader) (V, error), put func(K, V)) error {
	if _, err := r.BeginMap(); err != nil {
		return err
	}
	for {
		ok, err := r.More()
		if err != nil {
			return err
		} else if !ok {
			return nil
		}
		k, err := key(r)
		if err != nil {
			return err
		}
		v, err := val(r)
		if err != nil {
			return err
		}
		put(k, v)
	}
}

// ReadOption reads an optional value whose payload, if present, is read by
// elt.
func ReadOption[T any](r *Reader, elt func(*Reader) (T, error)) (Option[T], error) {
	ok, err := r.Option()
	if err != nil || !ok {
		return None[T](), err
	}
	v, err := elt(r)
	if err != nil {
		return None[T](), err
	}
	return Some(v), nil
}
