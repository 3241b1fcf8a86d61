package gamedata

import (
	"testing"
)

func TestLoadClasses(t *testing.T) {
	classes, err := LoadClasses()
	if err != nil {
		t.Fatalf("Failed to load classes: %v", err)
	}

	if len(classes) != 4 {
		t.Errorf("Expected 4 classes, got %d", len(classes))
	}

	for _, c := range classes {
		if c.HP <= 0 {
			t.Errorf("Class %q has non-positive HP %d", c.ID, c.HP)
		}
		if c.Name == "" {
			t.Errorf("Class %q has no name", c.ID)
		}
	}
}

func TestClassRegistry(t *testing.T) {
	registry, err := LoadClassRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 4 {
		t.Errorf("Expected 4 classes, got %d", registry.Count())
	}

	ranger := registry.GetByID("ranger")
	if ranger == nil {
		t.Fatal("Ranger not found by ID")
	}
	if ranger.Name != "Ranger" {
		t.Errorf("Expected name 'Ranger', got %q", ranger.Name)
	}
	if ranger.HP != 100 {
		t.Errorf("Expected ranger HP 100, got %d", ranger.HP)
	}

	if registry.GetByID("bard") != nil {
		t.Error("Expected nil for unknown class")
	}
}

func TestLoadSeedCharacter(t *testing.T) {
	seed, err := LoadSeedCharacter()
	if err != nil {
		t.Fatalf("Failed to load seed: %v", err)
	}

	if seed.Name != "Aragorn" {
		t.Errorf("Expected seed name 'Aragorn', got %q", seed.Name)
	}
	if seed.Level != 5 {
		t.Errorf("Expected seed level 5, got %d", seed.Level)
	}

	registry, err := LoadClassRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}
	if registry.GetByID(seed.Class) == nil {
		t.Errorf("Seed class %q is not defined in classes.json", seed.Class)
	}
}

func TestLoadSprites(t *testing.T) {
	sprites, err := LoadSprites()
	if err != nil {
		t.Fatalf("Failed to load sprites: %v", err)
	}

	tests := []struct {
		name string
		size int
		got  int
	}{
		{"portrait", 48, sprites.Portrait.Bounds().Dx()},
		{"hero", 40, sprites.Hero.Bounds().Dx()},
		{"enemy", 40, sprites.Enemy.Bounds().Dx()},
	}
	for _, tt := range tests {
		if tt.got != tt.size {
			t.Errorf("%s sprite width = %d, want %d", tt.name, tt.got, tt.size)
		}
	}
}

func TestLoadImageMissing(t *testing.T) {
	if _, err := LoadImage("sprites/missing.png"); err == nil {
		t.Error("LoadImage(missing) should fail")
	}
}

func TestLoadTheme(t *testing.T) {
	theme, err := LoadTheme()
	if err != nil {
		t.Fatalf("Failed to load theme: %v", err)
	}
	if theme.Ink == theme.Paper {
		t.Errorf("Ink and paper share color %q", theme.Ink)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}
