// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package serde_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/creachadair/serde"
	"github.com/google/go-cmp/cmp"
)

func TestBaseDecoder(t *testing.T) {
	var d serde.BaseDecoder
	noBody := func(serde.Decoder) error { t.Error("body called"); return nil }
	noIndexed := func(serde.Decoder, int) error { t.Error("body called"); return nil }

	errs := []error{
		d.ReadNil(),
		d.ReadEnum("E", noBody),
		d.ReadEnumVariant([]string{"A"}, noIndexed),
		d.ReadEnumStructVariant([]string{"A"}, noIndexed),
		d.ReadStruct("S", 0, noBody),
		d.ReadStructField("f", 0, noBody),
		d.ReadTuple(noIndexed),
		d.ReadTupleStruct("T", noIndexed),
		d.ReadOption(func(serde.Decoder, bool) error { t.Error("body called"); return nil }),
		d.ReadSeq(noIndexed),
		d.ReadMap(noIndexed),
	}
	_, err := d.ReadInt()
	errs = append(errs, err)
	_, err = d.ReadUint64()
	errs = append(errs, err)
	_, err = d.ReadFloat32()
	errs = append(errs, err)
	_, err = d.ReadString()
	errs = append(errs, err)
	for i, err := range errs {
		if !errors.Is(err, serde.ErrSyntax) {
			t.Errorf("Call %d: got %v, want %v", i, err, serde.ErrSyntax)
		}
	}
	if err := d.Error("custom"); !errors.Is(err, serde.ErrOther) || err.Error() != "error: custom" {
		t.Errorf("Error: got %v, want other error", err)
	}
}

// intsDecoder presents a fixed list of integers as a sequence, as a map from
// their decimal strings to their values, or as an option.
type intsDecoder struct {
	serde.BaseDecoder
	vals []int
	n    int // declared length, if not len(vals)
	pos  int
	key  bool
}

func (d *intsDecoder) length() int {
	if d.n != 0 {
		return d.n
	}
	return len(d.vals)
}

func (d *intsDecoder) ReadSeq(body func(serde.Decoder, int) error) error {
	return body(d, d.length())
}

func (d *intsDecoder) ReadSeqElt(_ int, body func(serde.Decoder) error) error { return body(d) }

func (d *intsDecoder) ReadMap(body func(serde.Decoder, int) error) error {
	return body(d, d.length())
}

func (d *intsDecoder) ReadMapEltKey(_ int, body func(serde.Decoder) error) error {
	d.key = true
	return body(d)
}

func (d *intsDecoder) ReadMapEltVal(_ int, body func(serde.Decoder) error) error {
	d.key = false
	return body(d)
}

func (d *intsDecoder) ReadOption(body func(serde.Decoder, bool) error) error {
	return body(d, len(d.vals) != 0)
}

func (d *intsDecoder) ReadInt() (int, error) {
	if d.pos >= len(d.vals) {
		return 0, serde.Syntaxf("no more values")
	}
	d.pos++
	return d.vals[d.pos-1], nil
}

func (d *intsDecoder) ReadString() (string, error) {
	if !d.key || d.pos >= len(d.vals) {
		return "", serde.Syntaxf("no key")
	}
	return strconv.Itoa(d.vals[d.pos]), nil
}

func TestDecodeHelpers(t *testing.T) {
	readInt := func(d serde.Decoder) (int, error) { return d.ReadInt() }

	t.Run("Seq", func(t *testing.T) {
		got, err := serde.DecodeSeq(&intsDecoder{vals: []int{3, 1, 4}}, readInt)
		if err != nil {
			t.Fatalf("DecodeSeq: unexpected error: %v", err)
		}
		if diff := cmp.Diff(got, []int{3, 1, 4}); diff != "" {
			t.Errorf("DecodeSeq (-got, +want):\n%s", diff)
		}
	})
	t.Run("SeqShort", func(t *testing.T) {
		got, err := serde.DecodeSeq(&intsDecoder{vals: []int{3}, n: 1 << 40}, readInt)
		if !errors.Is(err, serde.ErrSyntax) {
			t.Errorf("DecodeSeq: got (%v, %v), want syntax error", got, err)
		}
	})
	t.Run("SeqNegative", func(t *testing.T) {
		got, err := serde.DecodeSeq(&intsDecoder{n: -1}, readInt)
		if !errors.Is(err, serde.ErrSyntax) {
			t.Errorf("DecodeSeq: got (%v, %v), want syntax error", got, err)
		}
	})
	t.Run("Map", func(t *testing.T) {
		got := make(map[string]int)
		err := serde.DecodeMap(&intsDecoder{vals: []int{5, 8}},
			func(d serde.Decoder) (string, error) { return d.ReadString() },
			readInt,
			func(k string, v int) { got[k] = v },
		)
		if err != nil {
			t.Fatalf("DecodeMap: unexpected error: %v", err)
		}
		if diff := cmp.Diff(got, map[string]int{"5": 5, "8": 8}); diff != "" {
			t.Errorf("DecodeMap (-got, +want):\n%s", diff)
		}
	})
	t.Run("Option", func(t *testing.T) {
		some, err := serde.DecodeOption(&intsDecoder{vals: []int{7}}, readInt)
		if err != nil || !some.Equal(serde.Some(7)) {
			t.Errorf("DecodeOption: got (%v, %v), want Some(7)", some, err)
		}
		none, err := serde.DecodeOption(&intsDecoder{}, readInt)
		if err != nil || none.IsPresent() {
			t.Errorf("DecodeOption: got (%v, %v), want None", none, err)
		}
	})
}
