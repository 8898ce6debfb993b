// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sample

import (
	"fmt"

	"github.com/creachadair/serde"
)

// An Animal is an enum whose variants are Dog, which carries no payload, and
// Frog, which carries a name and an age.
type Animal interface {
	variant() string
}

// Dog is the payload-free variant of Animal.
type Dog struct{}

func (Dog) variant() string { return "Dog" }

// Frog is the variant of Animal carrying a name and an age, in that order.
type Frog struct {
	Name string
	Age  int
}

func (Frog) variant() string { return "Frog" }

// animalVariants lists the variants of Animal in declaration order.
var animalVariants = []string{"Dog", "Frog"}

// DecodeAnimal reconstructs an Animal by driving d.
func DecodeAnimal(d serde.Decoder) (Animal, error) {
	var out Animal
	err := d.ReadEnum("Animal", func(d serde.Decoder) error {
		return d.ReadEnumVariant(animalVariants, func(d serde.Decoder, idx int) error {
			switch idx {
			case 0:
				out = Dog{}
				return nil
			case 1:
				var f Frog
				if err := d.ReadEnumVariantArg(0, func(d serde.Decoder) (err error) {
					f.Name, err = d.ReadString()
					return
				}); err != nil {
					return err
				}
				if err := d.ReadEnumVariantArg(1, func(d serde.Decoder) (err error) {
					f.Age, err = d.ReadInt()
					return
				}); err != nil {
					return err
				}
				out = f
				return nil
			}
			return d.Error(fmt.Sprintf("invalid Animal variant %d", idx))
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeserializeAnimal reconstructs an Animal from the tokens of r.
func DeserializeAnimal(r *serde.Reader) (Animal, error) {
	idx, _, err := r.BeginEnum("Animal", animalVariants)
	if err != nil {
		return nil, err
	}
	var out Animal
	switch idx {
	case 0:
		out = Dog{}
	case 1:
		var f Frog
		if f.Name, err = r.String(); err != nil {
			return nil, err
		}
		if f.Age, err = r.Int(); err != nil {
			return nil, err
		}
		out = f
	}
	if err := r.End(); err != nil {
		return nil, err
	}
	return out, nil
}
