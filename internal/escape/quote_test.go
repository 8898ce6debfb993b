// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/serde/internal/escape"
	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{`a "b" c`, `"a \"b\" c"`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there\n", `"tab\there\n"`},
		{"\x00\x1f", `"\u0000\u001f"`},
		{"π is\u2028\u2029", `"π is\u2028\u2029"`},
		{"bad \xff byte", "\"bad � byte\""},
	}
	for _, tc := range tests {
		if got := escape.Quote(tc.input); got != tc.want {
			t.Errorf("Quote(%q): got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestAppendQuote(t *testing.T) {
	buf := []byte("x=")
	got := escape.AppendQuote(buf, mem.S("y"))
	if string(got) != `x="y"` {
		t.Errorf("AppendQuote: got %s, want x=\"y\"", got)
	}
}
