// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package serde

// A Decoder is a push-style source of structured values. The caller drives
// the decoder by asking for each piece of the value in turn. Compound
// operations delegate to a caller-supplied body, which the decoder invokes
// with itself as the driver once it has verified that the pending value has
// the requested shape.
//
// After any method reports an error the decoder is in an undefined state, and
// the caller must not continue decoding.
type Decoder interface {
	// Error returns an error of kind OtherErr carrying msg.
	Error(msg string) error

	ReadNil() error
	ReadBool() (bool, error)
	ReadInt() (int, error)
	ReadInt8() (int8, error)
	ReadInt16() (int16, error)
	ReadInt32() (int32, error)
	ReadInt64() (int64, error)
	ReadUint() (uint, error)
	ReadUint8() (uint8, error)
	ReadUint16() (uint16, error)
	ReadUint32() (uint32, error)
	ReadUint64() (uint64, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)
	ReadChar() (rune, error)
	ReadString() (string, error)

	// ReadEnum verifies that the pending value is an enum of the given name
	// and calls body, which will call ReadEnumVariant.
	ReadEnum(name string, body func(Decoder) error) error

	// ReadEnumVariant resolves the pending variant by its position in names
	// and calls body with that index. A variant whose name is not in names is
	// a syntax error.
	ReadEnumVariant(names []string, body func(d Decoder, idx int) error) error

	// ReadEnumVariantArg calls body to decode argument idx of the current
	// variant.
	ReadEnumVariantArg(idx int, body func(Decoder) error) error

	// ReadEnumStructVariant is as ReadEnumVariant, for a variant whose
	// arguments are named fields.
	ReadEnumStructVariant(names []string, body func(d Decoder, idx int) error) error

	// ReadEnumStructVariantField calls body to decode the named field of the
	// current struct variant.
	ReadEnumStructVariantField(name string, idx int, body func(Decoder) error) error

	// ReadStruct verifies that the pending value is a struct of the given name
	// with n fields, and calls body, which will call ReadStructField.
	ReadStruct(name string, n int, body func(Decoder) error) error

	// ReadStructField verifies that the pending field has the given name and
	// calls body to decode its value.
	ReadStructField(name string, idx int, body func(Decoder) error) error

	ReadTuple(body func(d Decoder, n int) error) error
	ReadTupleArg(idx int, body func(Decoder) error) error
	ReadTupleStruct(name string, body func(d Decoder, n int) error) error
	ReadTupleStructArg(idx int, body func(Decoder) error) error

	// ReadOption reports to body whether the pending option is present. If so,
	// body must decode the wrapped value.
	ReadOption(body func(d Decoder, present bool) error) error

	// ReadSeq calls body with the number of pending elements. The body will
	// call ReadSeqElt for each of them.
	ReadSeq(body func(d Decoder, n int) error) error
	ReadSeqElt(idx int, body func(Decoder) error) error

	// ReadMap calls body with the number of pending entries. The body will
	// call ReadMapEltKey and ReadMapEltVal for each of them.
	ReadMap(body func(d Decoder, n int) error) error
	ReadMapEltKey(idx int, body func(Decoder) error) error
	ReadMapEltVal(idx int, body func(Decoder) error) error
}

// BaseDecoder implements every method of Decoder by reporting a syntax error.
// Embed it in a concrete decoder and override the methods that the concrete
// shape supports.
type BaseDecoder struct{}

func unsupported(op string) error { return Syntaxf("unexpected %s", op) }

func (BaseDecoder) Error(msg string) error { return &Error{Kind: OtherErr, Message: msg} }

func (BaseDecoder) ReadNil() error                { return unsupported("nil") }
func (BaseDecoder) ReadBool() (bool, error)       { return false, unsupported("bool") }
func (BaseDecoder) ReadInt() (int, error)         { return 0, unsupported("int") }
func (BaseDecoder) ReadInt8() (int8, error)       { return 0, unsupported("int8") }
func (BaseDecoder) ReadInt16() (int16, error)     { return 0, unsupported("int16") }
func (BaseDecoder) ReadInt32() (int32, error)     { return 0, unsupported("int32") }
func (BaseDecoder) ReadInt64() (int64, error)     { return 0, unsupported("int64") }
func (BaseDecoder) ReadUint() (uint, error)       { return 0, unsupported("uint") }
func (BaseDecoder) ReadUint8() (uint8, error)     { return 0, unsupported("uint8") }
func (BaseDecoder) ReadUint16() (uint16, error)   { return 0, unsupported("uint16") }
func (BaseDecoder) ReadUint32() (uint32, error)   { return 0, unsupported("uint32") }
func (BaseDecoder) ReadUint64() (uint64, error)   { return 0, unsupported("uint64") }
func (BaseDecoder) ReadFloat32() (float32, error) { return 0, unsupported("float32") }
func (BaseDecoder) ReadFloat64() (float64, error) { return 0, unsupported("float64") }
func (BaseDecoder) ReadChar() (rune, error)       { return 0, unsupported("char") }
func (BaseDecoder) ReadString() (string, error)   { return "", unsupported("string") }

func (BaseDecoder) ReadEnum(string, func(Decoder) error) error { return unsupported("enum") }

func (BaseDecoder) ReadEnumVariant([]string, func(Decoder, int) error) error {
	return unsupported("enum variant")
}

func (BaseDecoder) ReadEnumVariantArg(int, func(Decoder) error) error {
	return unsupported("enum variant argument")
}

func (BaseDecoder) ReadEnumStructVariant([]string, func(Decoder, int) error) error {
	return unsupported("enum struct variant")
}

func (BaseDecoder) ReadEnumStructVariantField(string, int, func(Decoder) error) error {
	return unsupported("enum struct variant field")
}

func (BaseDecoder) ReadStruct(string, int, func(Decoder) error) error {
	return unsupported("struct")
}

func (BaseDecoder) ReadStructField(string, int, func(Decoder) error) error {
	return unsupported("struct field")
}

func (BaseDecoder) ReadTuple(func(Decoder, int) error) error { return unsupported("tuple") }

func (BaseDecoder) ReadTupleArg(int, func(Decoder) error) error {
	return unsupported("tuple argument")
}

func (BaseDecoder) ReadTupleStruct(string, func(Decoder, int) error) error {
	return unsupported("tuple struct")
}

func (BaseDecoder) ReadTupleStructArg(int, func(Decoder) error) error {
	return unsupported("tuple struct argument")
}

func (BaseDecoder) ReadOption(func(Decoder, bool) error) error { return unsupported("option") }

func (BaseDecoder) ReadSeq(func(Decoder, int) error) error { return unsupported("sequence") }

func (BaseDecoder) ReadSeqElt(int, func(Decoder) error) error {
	return unsupported("sequence element")
}

func (BaseDecoder) ReadMap(func(Decoder, int) error) error { return unsupported("map") }

func (BaseDecoder) ReadMapEltKey(int, func(Decoder) error) error { return unsupported("map key") }

func (BaseDecoder) ReadMapEltVal(int, func(Decoder) error) error { return unsupported("map value") }

// A Decodable value knows how to reconstruct itself by driving a Decoder.
type Decodable interface {
	Decode(Decoder) error
}

// Decode reconstructs v from d.
func Decode(d Decoder, v Decodable) error { return v.Decode(d) }

// DecodeSeq decodes a sequence whose elements are decoded by elt.
func DecodeSeq[T any](d Decoder, elt func(Decoder) (T, error)) ([]T, error) {
	var out []T
	err := d.ReadSeq(func(d Decoder, n int) error {
		if n < 0 {
			return Syntaxf("invalid sequence length %d", n)
		}
		out = make([]T, 0, min(n, maxPresize))
		for i := range n {
			err := d.ReadSeqElt(i, func(d Decoder) error {
				v, err := elt(d)
				if err == nil {
					out = append(out, v)
				}
				return err
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeMap decodes a mapping, calling put with each key and value decoded by
// key and val, in the order the decoder delivers them.
func DecodeMap[K, V any](d Decoder, key func(Decoder) (K, error), val func(Decoder) (V, error), put func(K, V)) error {
	return d.ReadMap(func(d Decoder, n int) error {
		for i := range n {
			var k K
			var v V
			if err := d.ReadMapEltKey(i, func(d Decoder) (err error) {
				k, err = key(d)
				return
			}); err != nil {
				return err
			}
			if err := d.ReadMapEltVal(i, func(d Decoder) (err error) {
				v, err = val(d)
				return
			}); err != nil {
				return err
			}
			put(k, v)
		}
		return nil
	})
}

// DecodeOption decodes an optional value whose payload, if present, is
// decoded by elt.
func DecodeOption[T any](d Decoder, elt func(Decoder) (T, error)) (Option[T], error) {
	var out Option[T]
	err := d.ReadOption(func(d Decoder, present bool) error {
		if !present {
			return nil
		}
		v, err := elt(d)
		if err == nil {
			out = Some(v)
		}
		return err
	})
	return out, err
}
