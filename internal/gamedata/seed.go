package gamedata

import "errors"

// SeedDef describes the character written to an empty store.
type SeedDef struct {
	Name       string   `json:"name"`
	Class      string   `json:"class"` // ClassDef ID
	Level      uint8    `json:"level"`
	Experience uint32   `json:"experience"`
	Inventory  []string `json:"inventory"` // Appended to the class gear
}

// LoadSeedCharacter loads the seed character from the embedded seed.json.
func LoadSeedCharacter() (SeedDef, error) {
	seed, err := Load[SeedDef]("seed.json")
	if err != nil {
		return SeedDef{}, err
	}
	if seed.Name == "" || seed.Class == "" {
		return SeedDef{}, errors.New("seed.json needs a name and a class")
	}
	return seed, nil
}
