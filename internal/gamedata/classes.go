package gamedata

// ClassDef defines a playable class loaded from JSON.
type ClassDef struct {
	ID   string   `json:"id"`   // Unique identifier (e.g., "ranger")
	Name string   `json:"name"` // Display name (e.g., "Ranger")
	HP   int      `json:"hp"`   // Base hit points
	MP   int      `json:"mp"`   // Base mana points
	Gear []string `json:"gear"` // Starting inventory
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}
