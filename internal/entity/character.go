// Package entity provides the persistent game character.
package entity

import (
	"errors"
	"slices"
	"strings"
)

// ErrEmptyName is returned for a character whose name is blank. The name is
// the storage key and must never be empty.
var ErrEmptyName = errors.New("entity: character name is empty")

// Character is the single adventurer kept in the store.
type Character struct {
	Name       string // Storage key
	Class      string // Display name of the class
	HP, MaxHP  uint32
	MP, MaxMP  uint32
	Level      uint8
	Experience uint32
	Inventory  []string
}

// Key returns the storage key of the character.
func (c Character) Key() string {
	return strings.TrimSpace(c.Name)
}

// Validate checks the invariants the store relies on. HP and MP above their
// maximum are accepted; renderers clamp them.
func (c Character) Validate() error {
	if c.Key() == "" {
		return ErrEmptyName
	}
	return nil
}

// Equal reports whether c and o hold the same values. A nil and an empty
// inventory are equal.
func (c Character) Equal(o Character) bool {
	return c.Name == o.Name &&
		c.Class == o.Class &&
		c.HP == o.HP && c.MaxHP == o.MaxHP &&
		c.MP == o.MP && c.MaxMP == o.MaxMP &&
		c.Level == o.Level &&
		c.Experience == o.Experience &&
		slices.Equal(c.Inventory, o.Inventory)
}

// Clone returns a copy of c that shares no memory with it.
func (c Character) Clone() Character {
	c.Inventory = slices.Clone(c.Inventory)
	return c
}
