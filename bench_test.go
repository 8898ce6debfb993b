// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package serde_test

import (
	"fmt"
	"testing"

	"github.com/creachadair/serde"
	"github.com/creachadair/serde/value"
)

// benchValue constructs a moderately large nested value.
func benchValue() value.Value {
	list := value.NewList()
	for i := range 500 {
		list = list.PushObject(func(b value.ObjectBuilder) value.ObjectBuilder {
			return b.
				Insert("id", i).
				Insert("name", fmt.Sprintf("item %d", i)).
				Insert("ratio", float64(i)/7).
				InsertList("tags", func(b value.ListBuilder) value.ListBuilder {
					return b.Push("a").Push("b").Push(nil).Push(i%2 == 0)
				})
		})
	}
	return value.NewObject().Insert("items", list.Build()).Build()
}

func BenchmarkReader(b *testing.B) {
	input := benchValue()
	text := []byte(input.JSON())
	b.Logf("Benchmark input: %d bytes of JSON", len(text))

	b.Run("ParseJSON", func(b *testing.B) {
		for b.Loop() {
			if _, err := value.ParseJSON(text); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("FromTokens", func(b *testing.B) {
		for b.Loop() {
			if _, err := value.FromTokens(value.Tokens(input)); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Skip", func(b *testing.B) {
		for b.Loop() {
			r := serde.NewReader(value.Tokens(input))
			if err := r.Skip(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			} else if err := r.Finish(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
