// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package serde implements a format-agnostic protocol for reconstructing
// structured values from a data source.
//
// The protocol has two styles, which a source may implement either or both of.
//
// # Decoding
//
// The Decoder interface is push-style: a target type drives the decoder by
// calling methods that name the shape it expects (a struct, a sequence, an
// enum variant), and the decoder calls back into a continuation to read the
// children of each compound:
//
//	err := d.ReadStruct("Point", 2, func(d serde.Decoder) error {
//	   if err := d.ReadStructField("x", 0, func(d serde.Decoder) (err error) {
//	      p.X, err = d.ReadInt()
//	      return
//	   }); err != nil {
//	      return err
//	   }
//	   ...
//	})
//
// A decoder that does not support a shape reports a syntax error. Embed
// BaseDecoder to inherit that behavior for the methods a source does not
// implement. The DecodeSeq, DecodeMap, and DecodeOption helpers cover the
// common generic shapes.
//
// # Deserializing
//
// The TokenSource interface is pull-style: it delivers a flat sequence of
// Token values, in which compound values are bracketed by a start token
// (SeqStart, MapStart, StructStart, EnumStart) and a matching End token. A
// Reader consumes the tokens of a source and checks each against what the
// caller asks for:
//
//	r := serde.NewReader(src)
//	n, err := r.BeginSeq()
//	for {
//	   more, err := r.More()
//	   if err != nil {
//	      return err
//	   } else if !more {
//	      break
//	   }
//	   v, err := r.Int()
//	   ...
//	}
//
// When More reports false it has already consumed the End token of the
// sequence, so the caller does not call End. Structs and enums are closed
// with End.
//
// The reader keeps its own stack of open compounds, so reconstruction does not
// consume the call stack in proportion to the nesting depth of the input.
// A source may implement ErrorHooks to control how mismatches are reported;
// otherwise the reader reports errors of concrete type *serde.Error.
//
// # Errors
//
// Failures are classified by ErrorKind. Use errors.Is with the sentinel values
// (ErrSyntax, ErrEndOfStream, and so on) to test the kind of an error.
package serde
