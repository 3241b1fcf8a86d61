package entity

import (
	"fmt"

	"github.com/samdwyer/inkquest/internal/gamedata"
)

// FromSeed builds a fresh character from a seed definition. Hit points and
// mana start full at the class maximum; the class gear comes before the
// seed's own inventory.
func FromSeed(seed gamedata.SeedDef, classes *gamedata.ClassRegistry) (Character, error) {
	def := classes.GetByID(seed.Class)
	if def == nil {
		return Character{}, fmt.Errorf("seed %q: unknown class %q", seed.Name, seed.Class)
	}

	inventory := make([]string, 0, len(def.Gear)+len(seed.Inventory))
	inventory = append(inventory, def.Gear...)
	inventory = append(inventory, seed.Inventory...)

	c := Character{
		Name:       seed.Name,
		Class:      def.Name,
		HP:         uint32(def.HP),
		MaxHP:      uint32(def.HP),
		MP:         uint32(def.MP),
		MaxMP:      uint32(def.MP),
		Level:      seed.Level,
		Experience: seed.Experience,
		Inventory:  inventory,
	}
	if err := c.Validate(); err != nil {
		return Character{}, fmt.Errorf("seed: %w", err)
	}
	return c, nil
}

// LoadSeed builds the seed character from the embedded game data.
func LoadSeed() (Character, error) {
	seed, err := gamedata.LoadSeedCharacter()
	if err != nil {
		return Character{}, err
	}
	classes, err := gamedata.LoadClassRegistry()
	if err != nil {
		return Character{}, err
	}
	return FromSeed(seed, classes)
}
