// Package soul defines the ordered scales for soul magnitude and soul gem
// capacity, and the conversions between them. White souls live on the
// Petty..Grand scale; Black is a disjoint category that is only ever matched
// against gems capable of holding black souls.
package soul

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Size represents the magnitude of a soul. The zero value None means "no
// soul" (an empty gem, or a creature with nothing left to take).
type Size uint8

const (
	None Size = iota
	Petty
	Lesser
	Common
	Greater
	Grand
	// Black is disjoint from the white scale. It is never produced by
	// splitting and never compared against white sizes; the only ordering
	// guarantee is that it outranks every white soul in the victim queue.
	Black
)

// String returns the lowercase name used in configuration files and logs.
func (s Size) String() string {
	switch s {
	case None:
		return "none"
	case Petty:
		return "petty"
	case Lesser:
		return "lesser"
	case Common:
		return "common"
	case Greater:
		return "greater"
	case Grand:
		return "grand"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("size(%d)", uint8(s))
	}
}

// IsWhite reports whether the size is on the white Petty..Grand scale.
func (s Size) IsWhite() bool {
	return s >= Petty && s <= Grand
}

// Value returns the raw soul value used for gem charge. Black souls carry
// the same charge as grand souls.
func (s Size) Value() int {
	switch s {
	case Petty:
		return 250
	case Lesser:
		return 500
	case Common:
		return 1000
	case Greater:
		return 2000
	case Grand, Black:
		return 3000
	default:
		return 0
	}
}

// Split halves a white soul deterministically:
//
//	Grand   (3000) -> Greater (2000) + Common (1000)
//	Greater (2000) -> Common  (1000) + Common (1000)
//	Common  (1000) -> Lesser  (500)  + Lesser (500)
//	Lesser  (500)  -> Petty   (250)  + Petty  (250)
//
// Petty and Black souls are not splittable; ok is false for those.
func (s Size) Split() (a, b Size, ok bool) {
	switch s {
	case Grand:
		return Greater, Common, true
	case Greater:
		return Common, Common, true
	case Common:
		return Lesser, Lesser, true
	case Lesser:
		return Petty, Petty, true
	default:
		return None, None, false
	}
}

// ParseSize converts a configuration name into a Size.
func ParseSize(name string) (Size, error) {
	for s := None; s <= Black; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return None, fmt.Errorf("soul: unknown soul size %q", name)
}

// UnmarshalYAML decodes a Size from its configuration name.
func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseSize(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Capacity represents what a soul gem can hold. The white capacities mirror
// the white soul sizes. Dual gems hold any white soul up to Grand or a black
// soul; pure black gems hold only black souls.
type Capacity uint8

const (
	CapPetty Capacity = iota + 1
	CapLesser
	CapCommon
	CapGreater
	CapGrand
	CapDual
	CapBlack
)

// FirstCapacity is the smallest white capacity, used as the lower bound for
// shrink searches.
const FirstCapacity = CapPetty

// LastWhite bounds searches that may use a dual gem for a white soul.
const LastWhite = CapDual

// String returns the lowercase name used in configuration files and logs.
func (c Capacity) String() string {
	switch c {
	case CapPetty:
		return "petty"
	case CapLesser:
		return "lesser"
	case CapCommon:
		return "common"
	case CapGreater:
		return "greater"
	case CapGrand:
		return "grand"
	case CapDual:
		return "dual"
	case CapBlack:
		return "black"
	default:
		return fmt.Sprintf("capacity(%d)", uint8(c))
	}
}

// HoldsBlack reports whether a gem of this capacity can contain a black soul.
func (c Capacity) HoldsBlack() bool {
	return c == CapDual || c == CapBlack
}

// MaxContained returns the largest soul size a gem of this capacity can
// contain.
func (c Capacity) MaxContained() Size {
	switch c {
	case CapDual, CapBlack:
		return Black
	default:
		return Size(c)
	}
}

// ToSize returns the soul size that exactly fills a gem of this capacity.
// A shrunk soul placed in a dual gem counts as grand; a black gem holds a
// black soul.
func (c Capacity) ToSize() Size {
	switch c {
	case CapDual:
		return Grand
	case CapBlack:
		return Black
	default:
		return Size(c)
	}
}

// CapacityOf returns the smallest capacity able to hold a full soul of the
// given size.
func CapacityOf(s Size) Capacity {
	if s == Black {
		return CapBlack
	}
	return Capacity(s)
}

// ParseCapacity converts a configuration name into a Capacity.
func ParseCapacity(name string) (Capacity, error) {
	for c := CapPetty; c <= CapBlack; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("soul: unknown gem capacity %q", name)
}

// UnmarshalYAML decodes a Capacity from its configuration name.
func (c *Capacity) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseCapacity(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Level is the remaining-soul-level reported by the host for a victim. It
// only covers the white scale; hosts report black-souled victims as Grand
// and flag the black category on the actor itself.
type Level uint8

const (
	LevelNone Level = iota
	LevelPetty
	LevelLesser
	LevelCommon
	LevelGreater
	LevelGrand
)

// Size converts a reported soul level to the matching white soul size.
func (l Level) Size() Size {
	return Size(l)
}
